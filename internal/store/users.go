package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hrhouma1/brocante/internal/model"
)

// CreateUser creates a new user. The unique constraint on email is the
// source of truth for duplicates; a violation is reported as
// model.ErrDuplicateEmail so two concurrent creates cannot both succeed.
func CreateUser(ctx context.Context, db *sql.DB, email, lastName, firstName string, isActive bool) (*model.User, error) {
	result, err := db.ExecContext(ctx,
		`INSERT INTO users (email, last_name, first_name, is_active) VALUES (?, ?, ?, ?)`,
		email, lastName, firstName, isActive,
	)
	if isUniqueViolation(err) {
		return nil, model.ErrDuplicateEmail
	}
	if err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting user id: %w", err)
	}

	return GetUser(ctx, db, id)
}

// GetUser returns a user by ID with its items, or nil if absent.
func GetUser(ctx context.Context, db *sql.DB, id int64) (*model.User, error) {
	u := &model.User{}
	err := db.QueryRowContext(ctx,
		`SELECT id, email, last_name, first_name, is_active, created_at, updated_at
		 FROM users WHERE id = ?`, id,
	).Scan(&u.ID, &u.Email, &u.LastName, &u.FirstName, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting user: %w", err)
	}

	items, err := ListItemsByOwner(ctx, db, u.ID, 0, -1)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []model.Item{}
	}
	u.Items = items
	return u, nil
}

// GetUserByEmail returns a user by email (without items), or nil if absent.
func GetUserByEmail(ctx context.Context, db *sql.DB, email string) (*model.User, error) {
	u := &model.User{}
	err := db.QueryRowContext(ctx,
		`SELECT id, email, last_name, first_name, is_active, created_at, updated_at
		 FROM users WHERE email = ?`, email,
	).Scan(&u.ID, &u.Email, &u.LastName, &u.FirstName, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting user by email: %w", err)
	}
	return u, nil
}

// UserExists reports whether a user with the given id exists.
func UserExists(ctx context.Context, db *sql.DB, id int64) (bool, error) {
	var one int
	err := db.QueryRowContext(ctx, `SELECT 1 FROM users WHERE id = ?`, id).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking user: %w", err)
	}
	return true, nil
}

// ListUsers returns users in primary-key order, bounded by skip/limit,
// each with its items attached.
func ListUsers(ctx context.Context, db *sql.DB, skip, limit int) ([]model.User, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, email, last_name, first_name, is_active, created_at, updated_at
		 FROM users ORDER BY id LIMIT ? OFFSET ?`, limit, skip,
	)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Email, &u.LastName, &u.FirstName, &u.IsActive, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range users {
		items, err := ListItemsByOwner(ctx, db, users[i].ID, 0, -1)
		if err != nil {
			return nil, err
		}
		if items == nil {
			items = []model.Item{}
		}
		users[i].Items = items
	}
	return users, nil
}

// UpdateUser applies a partial update to a user and returns the updated
// row, or nil if the id is unknown. Only populated patch fields change.
func UpdateUser(ctx context.Context, db *sql.DB, id int64, patch model.UserPatch) (*model.User, error) {
	u, err := GetUser(ctx, db, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, nil
	}

	patch.Apply(u)

	_, err = db.ExecContext(ctx,
		`UPDATE users SET email = ?, last_name = ?, first_name = ?, is_active = ?,
		        updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		u.Email, u.LastName, u.FirstName, u.IsActive, id,
	)
	if isUniqueViolation(err) {
		return nil, model.ErrDuplicateEmail
	}
	if err != nil {
		return nil, fmt.Errorf("updating user: %w", err)
	}

	return GetUser(ctx, db, id)
}

// DeleteUser deletes a user and, through the storage-level cascade, all of
// its items. Returns whether the user existed and how many items were
// removed with it. Count and delete run in one transaction so the reported
// count matches what the cascade removed.
func DeleteUser(ctx context.Context, db *sql.DB, id int64) (bool, int, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return false, 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var itemCount int
	err = tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM items WHERE owner_id = ?`, id,
	).Scan(&itemCount)
	if err != nil {
		return false, 0, fmt.Errorf("counting user items: %w", err)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return false, 0, fmt.Errorf("deleting user: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, 0, fmt.Errorf("checking deleted rows: %w", err)
	}
	if affected == 0 {
		return false, 0, nil
	}

	if err := tx.Commit(); err != nil {
		return false, 0, fmt.Errorf("committing user delete: %w", err)
	}

	return true, itemCount, nil
}
