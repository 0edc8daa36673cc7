// Package client is a typed HTTP client for the brocante API, used by the
// smoke tester and suitable for external callers.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/hrhouma1/brocante/internal/model"
)

// Client calls the brocante HTTP API.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a client for the API at baseURL (e.g. "http://localhost:8000").
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// APIError is a non-2xx response from the server.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

// IsNotFound reports whether err is a 404 from the API.
func IsNotFound(err error) bool {
	apiErr, ok := err.(*APIError)
	return ok && apiErr.Status == http.StatusNotFound
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errBody struct {
			Error string `json:"error"`
		}
		json.NewDecoder(resp.Body).Decode(&errBody)
		return &APIError{Status: resp.StatusCode, Message: errBody.Error}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}
	return nil
}

func pageQuery(skip, limit int) string {
	return "?skip=" + strconv.Itoa(skip) + "&limit=" + strconv.Itoa(limit)
}

// Root fetches the liveness/info message from GET /.
func (c *Client) Root(ctx context.Context) (map[string]string, error) {
	var info map[string]string
	if err := c.do(ctx, http.MethodGet, "/", nil, &info); err != nil {
		return nil, err
	}
	return info, nil
}

// CreateUser creates a user.
func (c *Client) CreateUser(ctx context.Context, email, lastName, firstName string) (*model.User, error) {
	body := map[string]any{
		"email":      email,
		"last_name":  lastName,
		"first_name": firstName,
	}
	var user model.User
	if err := c.do(ctx, http.MethodPost, "/users/", body, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUser fetches a user with its items.
func (c *Client) GetUser(ctx context.Context, id int64) (*model.User, error) {
	var user model.User
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/users/%d", id), nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ListUsers lists users with offset/limit.
func (c *Client) ListUsers(ctx context.Context, skip, limit int) ([]model.User, error) {
	var users []model.User
	if err := c.do(ctx, http.MethodGet, "/users/"+pageQuery(skip, limit), nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// UpdateUser applies a partial update to a user.
func (c *Client) UpdateUser(ctx context.Context, id int64, patch model.UserPatch) (*model.User, error) {
	var user model.User
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/users/%d", id), patch, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// DeleteUserResult reports a user deletion and its cascaded item count.
type DeleteUserResult struct {
	Message      string `json:"message"`
	DeletedItems int    `json:"deleted_items"`
}

// DeleteUser deletes a user and all of its items.
func (c *Client) DeleteUser(ctx context.Context, id int64) (*DeleteUserResult, error) {
	var result DeleteUserResult
	if err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/users/%d", id), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ListUserItems lists a user's items with offset/limit.
func (c *Client) ListUserItems(ctx context.Context, userID int64, skip, limit int) ([]model.Item, error) {
	var items []model.Item
	path := fmt.Sprintf("/users/%d/items/%s", userID, pageQuery(skip, limit))
	if err := c.do(ctx, http.MethodGet, path, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// CreateItem creates an item owned by userID. Price is in cents.
func (c *Client) CreateItem(ctx context.Context, userID int64, title, description string, price int64) (*model.Item, error) {
	body := map[string]any{
		"title":       title,
		"description": description,
		"price":       price,
	}
	var item model.Item
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/users/%d/items/", userID), body, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// GetItem fetches an item.
func (c *Client) GetItem(ctx context.Context, id int64) (*model.Item, error) {
	var item model.Item
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/items/%d", id), nil, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// ListItems lists items with offset/limit.
func (c *Client) ListItems(ctx context.Context, skip, limit int) ([]model.Item, error) {
	var items []model.Item
	if err := c.do(ctx, http.MethodGet, "/items/"+pageQuery(skip, limit), nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// UpdateItem applies a partial update to an item.
func (c *Client) UpdateItem(ctx context.Context, id int64, patch model.ItemPatch) (*model.Item, error) {
	var item model.Item
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/items/%d", id), patch, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// DeleteItem deletes an item.
func (c *Client) DeleteItem(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/items/%d", id), nil, nil)
}

// SearchItems searches item titles and descriptions for a substring.
func (c *Client) SearchItems(ctx context.Context, query string, limit int) ([]model.Item, error) {
	var items []model.Item
	path := "/search/items?q=" + url.QueryEscape(query) + "&limit=" + strconv.Itoa(limit)
	if err := c.do(ctx, http.MethodGet, path, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}
