package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/hrhouma1/brocante/internal/model"
)

// CreateItem creates a new item owned by ownerID. A nonexistent owner is
// reported as model.ErrOwnerNotFound (foreign key violation), distinct
// from a plain not-found so callers can explain the fix.
func CreateItem(ctx context.Context, db *sql.DB, ownerID int64, title, description string, price int64, isAvailable bool) (*model.Item, error) {
	result, err := db.ExecContext(ctx,
		`INSERT INTO items (title, description, price, is_available, owner_id)
		 VALUES (?, ?, ?, ?, ?)`,
		title, nullable(description), price, isAvailable, ownerID,
	)
	if isForeignKeyViolation(err) {
		return nil, model.ErrOwnerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("creating item: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting item id: %w", err)
	}

	return GetItem(ctx, db, id)
}

// GetItem returns an item by ID, or nil if absent.
func GetItem(ctx context.Context, db *sql.DB, id int64) (*model.Item, error) {
	i := &model.Item{}
	var description sql.NullString
	err := db.QueryRowContext(ctx,
		`SELECT id, title, description, price, is_available, owner_id, created_at, updated_at
		 FROM items WHERE id = ?`, id,
	).Scan(&i.ID, &i.Title, &description, &i.Price, &i.IsAvailable, &i.OwnerID, &i.CreatedAt, &i.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting item: %w", err)
	}
	i.Description = description.String
	return i, nil
}

// ListItems returns items in primary-key order, bounded by skip/limit.
func ListItems(ctx context.Context, db *sql.DB, skip, limit int) ([]model.Item, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, title, description, price, is_available, owner_id, created_at, updated_at
		 FROM items ORDER BY id LIMIT ? OFFSET ?`, limit, skip,
	)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	defer rows.Close()

	return scanItems(rows)
}

// ListItemsByOwner returns a user's items in primary-key order. A negative
// limit means no limit (SQLite semantics).
func ListItemsByOwner(ctx context.Context, db *sql.DB, ownerID int64, skip, limit int) ([]model.Item, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, title, description, price, is_available, owner_id, created_at, updated_at
		 FROM items WHERE owner_id = ? ORDER BY id LIMIT ? OFFSET ?`,
		ownerID, limit, skip,
	)
	if err != nil {
		return nil, fmt.Errorf("listing items by owner: %w", err)
	}
	defer rows.Close()

	return scanItems(rows)
}

// UpdateItem applies a partial update to an item and returns the updated
// row, or nil if the id is unknown. The owner reference never changes.
func UpdateItem(ctx context.Context, db *sql.DB, id int64, patch model.ItemPatch) (*model.Item, error) {
	i, err := GetItem(ctx, db, id)
	if err != nil {
		return nil, err
	}
	if i == nil {
		return nil, nil
	}

	patch.Apply(i)

	_, err = db.ExecContext(ctx,
		`UPDATE items SET title = ?, description = ?, price = ?, is_available = ?,
		        updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		i.Title, nullable(i.Description), i.Price, i.IsAvailable, id,
	)
	if err != nil {
		return nil, fmt.Errorf("updating item: %w", err)
	}

	return GetItem(ctx, db, id)
}

// DeleteItem deletes an item. Returns false if the id is unknown.
func DeleteItem(ctx context.Context, db *sql.DB, id int64) (bool, error) {
	result, err := db.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("deleting item: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("checking deleted rows: %w", err)
	}
	return affected > 0, nil
}

// SearchItems returns items whose title or description contains query as a
// case-insensitive substring, in primary-key order, capped at limit. No
// relevance ranking.
func SearchItems(ctx context.Context, db *sql.DB, query string, limit int) ([]model.Item, error) {
	pattern := "%" + escapeLike(strings.ToLower(query)) + "%"
	rows, err := db.QueryContext(ctx,
		`SELECT id, title, description, price, is_available, owner_id, created_at, updated_at
		 FROM items
		 WHERE LOWER(title) LIKE ? ESCAPE '\'
		    OR LOWER(COALESCE(description, '')) LIKE ? ESCAPE '\'
		 ORDER BY id LIMIT ?`,
		pattern, pattern, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("searching items: %w", err)
	}
	defer rows.Close()

	return scanItems(rows)
}

func scanItems(rows *sql.Rows) ([]model.Item, error) {
	var items []model.Item
	for rows.Next() {
		var i model.Item
		var description sql.NullString
		if err := rows.Scan(&i.ID, &i.Title, &description, &i.Price, &i.IsAvailable, &i.OwnerID, &i.CreatedAt, &i.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning item: %w", err)
		}
		i.Description = description.String
		items = append(items, i)
	}
	return items, rows.Err()
}

// escapeLike escapes LIKE metacharacters so user input matches literally.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// nullable maps an empty string to NULL.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
