package api

import (
	"database/sql"
	"net/http"
)

// NewRouter creates the API router with all endpoints registered.
func NewRouter(db *sql.DB) http.Handler {
	mux := http.NewServeMux()

	usersHandler := &UsersHandler{DB: db}
	itemsHandler := &ItemsHandler{DB: db}
	searchHandler := &SearchHandler{DB: db}

	// Liveness/info.
	mux.HandleFunc("GET /{$}", root)

	// Users.
	mux.HandleFunc("POST /users/{$}", usersHandler.Create)
	mux.HandleFunc("GET /users/{$}", usersHandler.List)
	mux.HandleFunc("GET /users/{id}", usersHandler.Get)
	mux.HandleFunc("PUT /users/{id}", usersHandler.Update)
	mux.HandleFunc("DELETE /users/{id}", usersHandler.Delete)

	// A user's items.
	mux.HandleFunc("GET /users/{id}/items/{$}", usersHandler.ListItems)
	mux.HandleFunc("POST /users/{id}/items/{$}", usersHandler.CreateItem)

	// Items.
	mux.HandleFunc("GET /items/{$}", itemsHandler.List)
	mux.HandleFunc("GET /items/{id}", itemsHandler.Get)
	mux.HandleFunc("PUT /items/{id}", itemsHandler.Update)
	mux.HandleFunc("DELETE /items/{id}", itemsHandler.Delete)

	// Search.
	mux.HandleFunc("GET /search/items", searchHandler.Items)

	return mux
}

// root handles GET /.
func root(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, http.StatusOK, map[string]string{
		"message": "welcome to the brocante API",
		"users":   "/users/",
		"items":   "/items/",
		"search":  "/search/items",
	})
}
