package database

import (
	"github.com/foodgram/backend/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FavoriteRepo struct {
	db *gorm.DB
}

func NewFavoriteRepo(db *gorm.DB) *FavoriteRepo {
	return &FavoriteRepo{db}
}

// Exists reports whether the user already favorited the recipe.
func (r *FavoriteRepo) Exists(userID, recipeID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.Model(&models.Favorite{}).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&count).Error
	return count > 0, err
}

// Add inserts a favorite row. The store-level unique index on
// (user_id, recipe_id) is the race-proof guard; a lost race comes back as a
// duplicate-key error.
func (r *FavoriteRepo) Add(favorite *models.Favorite) error {
	if favorite.ID == uuid.Nil {
		favorite.ID = uuid.New()
	}
	return r.db.Create(favorite).Error
}

// Remove deletes the membership row and reports how many rows went away.
func (r *FavoriteRepo) Remove(userID, recipeID uuid.UUID) (int64, error) {
	result := r.db.Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&models.Favorite{})
	return result.RowsAffected, result.Error
}
