package database

import (
	"github.com/foodgram/backend/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CartRepo struct {
	db *gorm.DB
}

func NewCartRepo(db *gorm.DB) *CartRepo {
	return &CartRepo{db}
}

// Exists reports whether the recipe is already in the user's cart.
func (r *CartRepo) Exists(userID, recipeID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.Model(&models.CartItem{}).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&count).Error
	return count > 0, err
}

// Add inserts a cart row. The unique index on (user_id, recipe_id) backs up
// the handler's existence check under concurrent duplicate adds.
func (r *CartRepo) Add(item *models.CartItem) error {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	return r.db.Create(item).Error
}

// Remove deletes the membership row and reports how many rows went away.
func (r *CartRepo) Remove(userID, recipeID uuid.UUID) (int64, error) {
	result := r.db.Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&models.CartItem{})
	return result.RowsAffected, result.Error
}

// ShoppingList consolidates the ingredients of every recipe in the user's
// cart into one list. Grouping is by the user-facing (name, measurement unit)
// pair rather than ingredient id, amounts are summed in int64, and the output
// order is alphabetical by name then unit so repeated exports are identical.
// An empty cart yields an empty slice.
func (r *CartRepo) ShoppingList(userID uuid.UUID) ([]models.ShoppingItem, error) {
	var items []models.ShoppingItem
	err := r.db.Table("recipe_ingredients").
		Select("ingredients.name AS name, ingredients.measurement_unit AS measurement_unit, SUM(recipe_ingredients.amount) AS total_amount").
		Joins("JOIN ingredients ON ingredients.id = recipe_ingredients.ingredient_id").
		Joins("JOIN cart_items ON cart_items.recipe_id = recipe_ingredients.recipe_id").
		Where("cart_items.user_id = ?", userID).
		Group("ingredients.name, ingredients.measurement_unit").
		Order("ingredients.name, ingredients.measurement_unit").
		Scan(&items).Error
	return items, err
}
