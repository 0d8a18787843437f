package database

import (
	"github.com/foodgram/backend/errs"
	"github.com/foodgram/backend/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type IngredientRepo struct {
	db *gorm.DB
}

func NewIngredientRepo(db *gorm.DB) *IngredientRepo {
	return &IngredientRepo{db}
}

// FindAll returns ingredients ordered by name, optionally narrowed to a
// case-insensitive name prefix.
func (r *IngredientRepo) FindAll(namePrefix string) ([]*models.Ingredient, error) {
	q := r.db.Order("name, measurement_unit")
	if namePrefix != "" {
		q = q.Where("LOWER(name) LIKE LOWER(?)", namePrefix+"%")
	}

	var ingredients []*models.Ingredient
	err := q.Find(&ingredients).Error
	return ingredients, err
}

// FindByID returns an ingredient by its ID
func (r *IngredientRepo) FindByID(id uuid.UUID) (*models.Ingredient, error) {
	var ingredient models.Ingredient
	if err := r.db.First(&ingredient, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &ingredient, nil
}

// FindByIDs resolves a set of ingredient IDs, failing if any of them is unknown.
func (r *IngredientRepo) FindByIDs(ids []uuid.UUID) ([]models.Ingredient, error) {
	var ingredients []models.Ingredient
	if err := r.db.Where("id IN ?", ids).Find(&ingredients).Error; err != nil {
		return nil, err
	}
	if len(ingredients) != len(ids) {
		return nil, errs.NewNotFound("ingredient")
	}
	return ingredients, nil
}

// Add inserts a new ingredient into the database
func (r *IngredientRepo) Add(ingredient *models.Ingredient) error {
	if ingredient.ID == uuid.Nil {
		ingredient.ID = uuid.New()
	}
	return r.db.Create(ingredient).Error
}

// BulkImport inserts seed ingredients, skipping (name, unit) pairs that
// already exist so re-imports are harmless.
func (r *IngredientRepo) BulkImport(ingredients []models.Ingredient) error {
	if len(ingredients) == 0 {
		return nil
	}
	for i := range ingredients {
		if ingredients[i].ID == uuid.Nil {
			ingredients[i].ID = uuid.New()
		}
	}
	return r.db.Clauses(clause.OnConflict{DoNothing: true}).CreateInBatches(ingredients, 500).Error
}
