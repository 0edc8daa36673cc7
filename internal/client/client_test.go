package client

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/hrhouma1/brocante/internal/api"
	"github.com/hrhouma1/brocante/internal/db"
	"github.com/hrhouma1/brocante/internal/model"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()
	database := db.NewTestDB(t)
	server := httptest.NewServer(api.NewRouter(database))
	t.Cleanup(server.Close)
	return New(server.URL)
}

func TestClientUserItemFlow(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	info, err := c.Root(ctx)
	if err != nil {
		t.Fatalf("Root: %v", err)
	}
	if info["message"] == "" {
		t.Error("expected a welcome message")
	}

	user, err := c.CreateUser(ctx, "alice@example.com", "Martin", "Alice")
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	item, err := c.CreateItem(ctx, user.ID, "Widget", "test widget", 4999)
	if err != nil {
		t.Fatalf("CreateItem: %v", err)
	}
	if item.Price != 4999 || item.OwnerID != user.ID {
		t.Errorf("unexpected item: %+v", item)
	}

	fetched, err := c.GetUser(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetUser: %v", err)
	}
	if len(fetched.Items) != 1 {
		t.Errorf("expected 1 nested item, got %d", len(fetched.Items))
	}

	results, err := c.SearchItems(ctx, "widg", 50)
	if err != nil {
		t.Fatalf("SearchItems: %v", err)
	}
	if len(results) != 1 || results[0].ID != item.ID {
		t.Errorf("expected the widget, got %+v", results)
	}

	result, err := c.DeleteUser(ctx, user.ID)
	if err != nil {
		t.Fatalf("DeleteUser: %v", err)
	}
	if result.DeletedItems != 1 {
		t.Errorf("expected 1 cascaded item, got %d", result.DeletedItems)
	}

	_, err = c.GetItem(ctx, item.ID)
	if !IsNotFound(err) {
		t.Errorf("expected not-found after cascade, got %v", err)
	}
}

func TestClientErrorMapping(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	if _, err := c.CreateUser(ctx, "dup@example.com", "One", "User"); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	_, err := c.CreateUser(ctx, "dup@example.com", "Two", "User")
	apiErr, ok := err.(*APIError)
	if !ok || apiErr.Status != 400 {
		t.Fatalf("expected APIError 400, got %v", err)
	}
	if apiErr.Message == "" {
		t.Error("expected the server's error message to be carried over")
	}

	_, err = c.GetUser(ctx, 9999)
	if !IsNotFound(err) {
		t.Errorf("expected not-found, got %v", err)
	}
}

func TestClientPartialUpdate(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	user, err := c.CreateUser(ctx, "bob@example.com", "Wilson", "Bob")
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	inactive := false
	updated, err := c.UpdateUser(ctx, user.ID, model.UserPatch{IsActive: &inactive})
	if err != nil {
		t.Fatalf("UpdateUser: %v", err)
	}
	if updated.IsActive || updated.Email != "bob@example.com" {
		t.Errorf("unexpected update result: %+v", updated)
	}
}
