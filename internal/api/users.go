package api

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/hrhouma1/brocante/internal/model"
	"github.com/hrhouma1/brocante/internal/store"
)

// UsersHandler handles user CRUD endpoints.
type UsersHandler struct {
	DB *sql.DB
}

type createUserRequest struct {
	Email     string `json:"email"`
	LastName  string `json:"last_name"`
	FirstName string `json:"first_name"`
	IsActive  *bool  `json:"is_active"`
}

// Create handles POST /users/.
func (h *UsersHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Email == "" || req.LastName == "" || req.FirstName == "" {
		jsonError(w, http.StatusBadRequest, "email, last_name, and first_name required")
		return
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	user, err := store.CreateUser(r.Context(), h.DB, req.Email, req.LastName, req.FirstName, isActive)
	if errors.Is(err, model.ErrDuplicateEmail) {
		jsonError(w, http.StatusBadRequest, "email already registered")
		return
	}
	if err != nil {
		slog.Error("failed to create user", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to create user")
		return
	}

	jsonResponse(w, http.StatusOK, user)
}

// List handles GET /users/.
func (h *UsersHandler) List(w http.ResponseWriter, r *http.Request) {
	skip := queryInt(r, "skip", 0)
	limit := queryInt(r, "limit", 100)

	users, err := store.ListUsers(r.Context(), h.DB, skip, limit)
	if err != nil {
		slog.Error("failed to list users", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to list users")
		return
	}
	if users == nil {
		users = []model.User{}
	}
	jsonResponse(w, http.StatusOK, users)
}

// Get handles GET /users/{id}.
func (h *UsersHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	user, err := store.GetUser(r.Context(), h.DB, id)
	if err != nil {
		slog.Error("failed to get user", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to get user")
		return
	}
	if user == nil {
		jsonError(w, http.StatusNotFound, "user not found")
		return
	}

	jsonResponse(w, http.StatusOK, user)
}

// Update handles PUT /users/{id}. Only fields present in the body change.
func (h *UsersHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	var patch model.UserPatch
	if err := decodeJSON(r, &patch); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if patch.Email != nil && *patch.Email == "" {
		jsonError(w, http.StatusBadRequest, "email cannot be empty")
		return
	}

	user, err := store.UpdateUser(r.Context(), h.DB, id, patch)
	if errors.Is(err, model.ErrDuplicateEmail) {
		jsonError(w, http.StatusBadRequest, "email already registered")
		return
	}
	if err != nil {
		slog.Error("failed to update user", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to update user")
		return
	}
	if user == nil {
		jsonError(w, http.StatusNotFound, "user not found")
		return
	}

	jsonResponse(w, http.StatusOK, user)
}

// Delete handles DELETE /users/{id}. The storage-level cascade removes the
// user's items; the response reports how many.
func (h *UsersHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	deleted, itemCount, err := store.DeleteUser(r.Context(), h.DB, id)
	if err != nil {
		slog.Error("failed to delete user", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to delete user")
		return
	}
	if !deleted {
		jsonError(w, http.StatusNotFound, "user not found")
		return
	}

	message := "user deleted"
	if itemCount > 0 {
		message = fmt.Sprintf("user deleted along with %d item(s)", itemCount)
	}
	slog.Info("user deleted", "id", id, "items_removed", itemCount)
	jsonResponse(w, http.StatusOK, map[string]any{
		"message":       message,
		"deleted_items": itemCount,
	})
}

// ListItems handles GET /users/{id}/items/.
func (h *UsersHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	exists, err := store.UserExists(r.Context(), h.DB, id)
	if err != nil {
		slog.Error("failed to check user", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to check user")
		return
	}
	if !exists {
		jsonError(w, http.StatusNotFound, "user not found")
		return
	}

	skip := queryInt(r, "skip", 0)
	limit := queryInt(r, "limit", 100)

	items, err := store.ListItemsByOwner(r.Context(), h.DB, id, skip, limit)
	if err != nil {
		slog.Error("failed to list user items", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to list user items")
		return
	}
	if items == nil {
		items = []model.Item{}
	}
	jsonResponse(w, http.StatusOK, items)
}

type createItemRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Price       int64  `json:"price"`
	IsAvailable *bool  `json:"is_available"`
}

// CreateItem handles POST /users/{id}/items/.
func (h *UsersHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	var req createItemRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Title == "" {
		jsonError(w, http.StatusBadRequest, "title required")
		return
	}
	if req.Price < 0 {
		jsonError(w, http.StatusBadRequest, "price must be a non-negative integer (cents)")
		return
	}

	isAvailable := true
	if req.IsAvailable != nil {
		isAvailable = *req.IsAvailable
	}

	item, err := store.CreateItem(r.Context(), h.DB, id, req.Title, req.Description, req.Price, isAvailable)
	if errors.Is(err, model.ErrOwnerNotFound) {
		jsonError(w, http.StatusNotFound, "user not found, create the user first")
		return
	}
	if err != nil {
		slog.Error("failed to create item", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to create item")
		return
	}

	jsonResponse(w, http.StatusOK, item)
}
