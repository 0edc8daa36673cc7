package api

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/hrhouma1/brocante/internal/model"
	"github.com/hrhouma1/brocante/internal/store"
)

// Search limits: default result cap and the hard ceiling a caller cannot
// raise past.
const (
	defaultSearchLimit = 50
	maxSearchLimit     = 100
)

// SearchHandler handles the item search endpoint.
type SearchHandler struct {
	DB *sql.DB
}

// Items handles GET /search/items?q=&limit=. Matches the query as a
// case-insensitive substring of title or description.
func (h *SearchHandler) Items(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if utf8.RuneCountInString(query) < 2 {
		jsonError(w, http.StatusBadRequest, "search query must be at least 2 characters")
		return
	}

	limit := queryInt(r, "limit", defaultSearchLimit)
	if limit > maxSearchLimit {
		limit = maxSearchLimit
	}

	items, err := store.SearchItems(r.Context(), h.DB, query, limit)
	if err != nil {
		slog.Error("failed to search items", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to search items")
		return
	}
	if items == nil {
		items = []model.Item{}
	}
	jsonResponse(w, http.StatusOK, items)
}
