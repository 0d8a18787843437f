package models

import "github.com/google/uuid"

// Tag is a recipe label. Color is a hex string (#RGB or #RRGGBB), slug is URL-safe.
type Tag struct {
	ID    uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Name  string    `json:"name" db:"name" gorm:"type:text;not null;unique"`
	Color string    `json:"color" db:"color" gorm:"type:text;not null;unique"`
	Slug  string    `json:"slug" db:"slug" gorm:"type:text;not null;unique"`
}
