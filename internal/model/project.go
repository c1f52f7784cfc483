package model

import "time"

// DefaultProjectColor is applied when a project is created without a color.
// The UI treats colors as free-form tokens; the server does not enforce a
// palette.
const DefaultProjectColor = "#1d4ed8"

// Project is a named grouping bucket for one user's tasks. Names are unique
// per owner; tasks reference projects by name, not by id.
type Project struct {
	ID        string    `json:"id" db:"id"`
	OwnerID   string    `json:"owner" db:"owner_id"`
	Name      string    `json:"name" db:"name"`
	Color     string    `json:"color" db:"color"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
