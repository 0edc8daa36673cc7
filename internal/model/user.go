package model

import "time"

// User represents a registered user. Users own items; deleting a user
// cascades to its items at the storage level.
type User struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	LastName  string    `json:"last_name"`
	FirstName string    `json:"first_name"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Items     []Item    `json:"items"`
}

// UserPatch holds a partial update. Nil fields are left unchanged; an
// explicit null in the request body is not distinguished from an omitted
// field, both mean "do not change".
type UserPatch struct {
	Email     *string `json:"email"`
	LastName  *string `json:"last_name"`
	FirstName *string `json:"first_name"`
	IsActive  *bool   `json:"is_active"`
}

// Apply overlays the populated patch fields onto u.
func (p UserPatch) Apply(u *User) {
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.LastName != nil {
		u.LastName = *p.LastName
	}
	if p.FirstName != nil {
		u.FirstName = *p.FirstName
	}
	if p.IsActive != nil {
		u.IsActive = *p.IsActive
	}
}
