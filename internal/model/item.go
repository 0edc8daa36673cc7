package model

import "time"

// Item represents an item listed for sale by a user. Price is stored in
// minor currency units (cents), never floating point. The owner reference
// is set at creation and never reassigned.
type Item struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Price       int64     `json:"price"`
	IsAvailable bool      `json:"is_available"`
	OwnerID     int64     `json:"owner_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ItemPatch holds a partial update. Nil fields are left unchanged.
type ItemPatch struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Price       *int64  `json:"price"`
	IsAvailable *bool   `json:"is_available"`
}

// Apply overlays the populated patch fields onto i.
func (p ItemPatch) Apply(i *Item) {
	if p.Title != nil {
		i.Title = *p.Title
	}
	if p.Description != nil {
		i.Description = *p.Description
	}
	if p.Price != nil {
		i.Price = *p.Price
	}
	if p.IsAvailable != nil {
		i.IsAvailable = *p.IsAvailable
	}
}
