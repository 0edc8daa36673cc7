package model

import (
	"encoding/json"
	"testing"
)

func TestUserPatchApply(t *testing.T) {
	u := User{Email: "old@example.com", LastName: "Old", FirstName: "Name", IsActive: true}

	email := "new@example.com"
	inactive := false
	UserPatch{Email: &email, IsActive: &inactive}.Apply(&u)

	if u.Email != "new@example.com" || u.IsActive {
		t.Errorf("patched fields not applied: %+v", u)
	}
	if u.LastName != "Old" || u.FirstName != "Name" {
		t.Errorf("unpatched fields changed: %+v", u)
	}
}

func TestItemPatchApplyEmpty(t *testing.T) {
	i := Item{Title: "Lamp", Description: "desk lamp", Price: 3000, IsAvailable: true}
	ItemPatch{}.Apply(&i)

	if i.Title != "Lamp" || i.Description != "desk lamp" || i.Price != 3000 || !i.IsAvailable {
		t.Errorf("empty patch changed fields: %+v", i)
	}
}

func TestPatchDecodingOmittedFields(t *testing.T) {
	// A field absent from the body must decode to nil, meaning "unchanged".
	var p ItemPatch
	if err := json.Unmarshal([]byte(`{"price": 2500}`), &p); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if p.Price == nil || *p.Price != 2500 {
		t.Errorf("expected price pointer to 2500, got %+v", p.Price)
	}
	if p.Title != nil || p.Description != nil || p.IsAvailable != nil {
		t.Errorf("omitted fields should be nil: %+v", p)
	}
}
