package store

import (
	"context"
	"errors"
	"testing"

	"github.com/hrhouma1/brocante/internal/db"
	"github.com/hrhouma1/brocante/internal/model"
)

func TestCreateAndGetUser(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	user, err := CreateUser(ctx, database, "alice@example.com", "Martin", "Alice", true)
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if user.Email != "alice@example.com" {
		t.Errorf("expected email 'alice@example.com', got %q", user.Email)
	}
	if !user.IsActive {
		t.Error("expected user to be active by default")
	}
	if user.ID == 0 {
		t.Error("expected a generated id")
	}

	got, err := GetUser(ctx, database, user.ID)
	if err != nil {
		t.Fatalf("GetUser: %v", err)
	}
	if got == nil || got.Email != user.Email {
		t.Errorf("expected to fetch created user, got %+v", got)
	}

	absent, err := GetUser(ctx, database, 9999)
	if err != nil {
		t.Fatalf("GetUser(9999): %v", err)
	}
	if absent != nil {
		t.Errorf("expected nil for unknown id, got %+v", absent)
	}
}

func TestDuplicateEmail(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	if _, err := CreateUser(ctx, database, "a@x.com", "One", "User", true); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	_, err := CreateUser(ctx, database, "a@x.com", "Two", "User", true)
	if !errors.Is(err, model.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}

	// Exactly one row with that email.
	var count int
	if err := database.QueryRow(`SELECT COUNT(*) FROM users WHERE email = 'a@x.com'`).Scan(&count); err != nil {
		t.Fatalf("counting: %v", err)
	}
	if count != 1 {
		t.Errorf("expected exactly 1 row, got %d", count)
	}
}

func TestGetUserByEmail(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	created, _ := CreateUser(ctx, database, "bob@example.com", "Wilson", "Bob", true)

	user, err := GetUserByEmail(ctx, database, "bob@example.com")
	if err != nil {
		t.Fatalf("GetUserByEmail: %v", err)
	}
	if user == nil || user.ID != created.ID {
		t.Errorf("expected user %d, got %+v", created.ID, user)
	}

	absent, err := GetUserByEmail(ctx, database, "nobody@example.com")
	if err != nil {
		t.Fatalf("GetUserByEmail: %v", err)
	}
	if absent != nil {
		t.Errorf("expected nil for unknown email, got %+v", absent)
	}
}

func TestListUsersPagination(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	emails := []string{"u1@x.com", "u2@x.com", "u3@x.com"}
	for _, e := range emails {
		if _, err := CreateUser(ctx, database, e, "Last", "First", true); err != nil {
			t.Fatalf("CreateUser(%s): %v", e, err)
		}
	}

	all, err := ListUsers(ctx, database, 0, 100)
	if err != nil {
		t.Fatalf("ListUsers: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 users, got %d", len(all))
	}
	// Primary-key order.
	if all[0].Email != "u1@x.com" || all[2].Email != "u3@x.com" {
		t.Errorf("unexpected order: %q, %q, %q", all[0].Email, all[1].Email, all[2].Email)
	}

	page, err := ListUsers(ctx, database, 1, 1)
	if err != nil {
		t.Fatalf("ListUsers(1, 1): %v", err)
	}
	if len(page) != 1 || page[0].Email != "u2@x.com" {
		t.Errorf("expected only u2@x.com, got %+v", page)
	}
}

func TestUpdateUserPartial(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	user, _ := CreateUser(ctx, database, "claire@example.com", "Dubois", "Claire", true)

	inactive := false
	updated, err := UpdateUser(ctx, database, user.ID, model.UserPatch{IsActive: &inactive})
	if err != nil {
		t.Fatalf("UpdateUser: %v", err)
	}
	if updated.IsActive {
		t.Error("expected is_active to be updated to false")
	}
	// Untouched fields retain prior values.
	if updated.Email != "claire@example.com" || updated.LastName != "Dubois" || updated.FirstName != "Claire" {
		t.Errorf("untouched fields changed: %+v", updated)
	}

	newName := "Durand"
	updated, err = UpdateUser(ctx, database, user.ID, model.UserPatch{LastName: &newName})
	if err != nil {
		t.Fatalf("UpdateUser: %v", err)
	}
	if updated.LastName != "Durand" {
		t.Errorf("expected last name 'Durand', got %q", updated.LastName)
	}
	if updated.IsActive {
		t.Error("earlier update lost: is_active flipped back to true")
	}
}

func TestUpdateUserUnknownID(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	name := "Ghost"
	updated, err := UpdateUser(ctx, database, 42, model.UserPatch{LastName: &name})
	if err != nil {
		t.Fatalf("UpdateUser: %v", err)
	}
	if updated != nil {
		t.Errorf("expected nil for unknown id, got %+v", updated)
	}
}

func TestUpdateUserDuplicateEmail(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	CreateUser(ctx, database, "first@x.com", "First", "User", true)
	second, _ := CreateUser(ctx, database, "second@x.com", "Second", "User", true)

	taken := "first@x.com"
	_, err := UpdateUser(ctx, database, second.ID, model.UserPatch{Email: &taken})
	if !errors.Is(err, model.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestDeleteUserCascades(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	user, _ := CreateUser(ctx, database, "seller@example.com", "Seller", "Sam", true)
	var itemIDs []int64
	for _, title := range []string{"One", "Two", "Three"} {
		item, err := CreateItem(ctx, database, user.ID, title, "", 1000, true)
		if err != nil {
			t.Fatalf("CreateItem(%s): %v", title, err)
		}
		itemIDs = append(itemIDs, item.ID)
	}

	deleted, cascaded, err := DeleteUser(ctx, database, user.ID)
	if err != nil {
		t.Fatalf("DeleteUser: %v", err)
	}
	if !deleted {
		t.Fatal("expected delete to report success")
	}
	if cascaded != 3 {
		t.Errorf("expected 3 cascaded items, got %d", cascaded)
	}

	for _, id := range itemIDs {
		item, err := GetItem(ctx, database, id)
		if err != nil {
			t.Fatalf("GetItem(%d): %v", id, err)
		}
		if item != nil {
			t.Errorf("item %d survived the cascade", id)
		}
	}

	got, _ := GetUser(ctx, database, user.ID)
	if got != nil {
		t.Error("user still present after delete")
	}
}

func TestDeleteUserUnknownID(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	deleted, cascaded, err := DeleteUser(ctx, database, 42)
	if err != nil {
		t.Fatalf("DeleteUser: %v", err)
	}
	if deleted || cascaded != 0 {
		t.Errorf("expected (false, 0), got (%v, %d)", deleted, cascaded)
	}
}

func TestUserExists(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	user, _ := CreateUser(ctx, database, "exists@example.com", "Is", "Here", true)

	exists, err := UserExists(ctx, database, user.ID)
	if err != nil {
		t.Fatalf("UserExists: %v", err)
	}
	if !exists {
		t.Error("expected user to exist")
	}

	exists, err = UserExists(ctx, database, 9999)
	if err != nil {
		t.Fatalf("UserExists: %v", err)
	}
	if exists {
		t.Error("expected user 9999 to be absent")
	}
}

func TestGetUserIncludesItems(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	user, _ := CreateUser(ctx, database, "owner@example.com", "Owner", "Olive", true)
	CreateItem(ctx, database, user.ID, "Chair", "", 2500, true)
	CreateItem(ctx, database, user.ID, "Table", "", 7500, true)

	got, err := GetUser(ctx, database, user.ID)
	if err != nil {
		t.Fatalf("GetUser: %v", err)
	}
	if len(got.Items) != 2 {
		t.Fatalf("expected 2 nested items, got %d", len(got.Items))
	}
	if got.Items[0].Title != "Chair" || got.Items[1].Title != "Table" {
		t.Errorf("unexpected nested items: %+v", got.Items)
	}
}
