package model

import "time"

// Timestamps is composed into every persisted entity. gorm fills both
// fields on create and bumps UpdatedAt on save.
type Timestamps struct {
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
