package models

import (
	"time"

	"github.com/google/uuid"
)

// Bounds shared by cooking time and ingredient amounts.
const (
	AmountMin = 1
	AmountMax = 32000
)

// Recipe is the central entity: authored content with tags and a set of
// ingredient rows carrying per-recipe amounts.
//
// IsFavorited and IsInShoppingCart are not columns. They are filled by the
// recipe repository from per-viewer EXISTS subqueries and are always false
// for anonymous viewers.
type Recipe struct {
	ID          uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	AuthorID    uuid.UUID `json:"-" db:"author_id" gorm:"type:uuid;not null;index:idx_recipe_author"`
	Name        string    `json:"name" db:"name" gorm:"type:text;not null"`
	Text        string    `json:"text" db:"text" gorm:"type:text;not null"`
	CookingTime int       `json:"cooking_time" db:"cooking_time" gorm:"type:integer;not null"`
	Image       string    `json:"image" db:"image" gorm:"type:text;not null"`
	PublishedAt time.Time `json:"published_at" db:"published_at" gorm:"type:timestamp;not null"`

	Author      User               `json:"-" gorm:"foreignKey:AuthorID;references:ID;constraint:OnDelete:CASCADE"`
	Ingredients []RecipeIngredient `json:"-" gorm:"foreignKey:RecipeID;references:ID;constraint:OnDelete:CASCADE"`
	Tags        []Tag              `json:"-" gorm:"many2many:recipe_tags;constraint:OnDelete:CASCADE"`

	IsFavorited      bool `json:"is_favorited" gorm:"->;-:migration"`
	IsInShoppingCart bool `json:"is_in_shopping_cart" gorm:"->;-:migration"`
}

// RecipeIngredient ties one recipe to one ingredient with an amount. Rows are
// created in bulk on recipe create and fully replaced on update, never
// patched one by one.
type RecipeIngredient struct {
	ID           uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	RecipeID     uuid.UUID `json:"recipe_id" db:"recipe_id" gorm:"type:uuid;not null;index:idx_recipe_ingredient_recipe;uniqueIndex:idx_recipe_ingredient_unique"`
	IngredientID uuid.UUID `json:"ingredient_id" db:"ingredient_id" gorm:"type:uuid;not null;uniqueIndex:idx_recipe_ingredient_unique"`
	Amount       int       `json:"amount" db:"amount" gorm:"type:integer;not null"`

	Ingredient Ingredient `json:"-" gorm:"foreignKey:IngredientID;references:ID;constraint:OnDelete:CASCADE"`
}
