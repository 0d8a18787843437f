package models

import "github.com/google/uuid"

// Ingredient is a measurable food item. The same name may exist under
// different measurement units as distinct rows, so uniqueness is on the pair.
type Ingredient struct {
	ID              uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Name            string    `json:"name" db:"name" gorm:"type:text;not null;uniqueIndex:idx_ingredient_name_unit"`
	MeasurementUnit string    `json:"measurement_unit" db:"measurement_unit" gorm:"type:text;not null;uniqueIndex:idx_ingredient_name_unit"`
}
