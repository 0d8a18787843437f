package database

import (
	"github.com/foodgram/backend/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RecipeFilter narrows a recipe listing. Favorited and InCart are tri-state:
// nil means "don't care", false passes content through unfiltered, true keeps
// only recipes the viewer has the corresponding membership for.
type RecipeFilter struct {
	Author    *uuid.UUID
	TagSlugs  []string
	Favorited *bool
	InCart    *bool
}

type RecipeRepo struct {
	db *gorm.DB
}

func NewRecipeRepo(db *gorm.DB) *RecipeRepo {
	return &RecipeRepo{db}
}

// annotated selects recipes together with the viewer's two membership flags.
// The flags are correlated EXISTS subqueries so the cost does not depend on
// how many favorites exist sitewide and no per-row queries are issued. An
// anonymous viewer gets constant false for both.
func (r *RecipeRepo) annotated(viewer *uuid.UUID) *gorm.DB {
	if viewer == nil {
		return r.db.Model(&models.Recipe{}).
			Select("recipes.*, FALSE AS is_favorited, FALSE AS is_in_shopping_cart")
	}
	return r.db.Model(&models.Recipe{}).Select(
		"recipes.*, "+
			"EXISTS(SELECT 1 FROM favorites WHERE favorites.recipe_id = recipes.id AND favorites.user_id = ?) AS is_favorited, "+
			"EXISTS(SELECT 1 FROM cart_items WHERE cart_items.recipe_id = recipes.id AND cart_items.user_id = ?) AS is_in_shopping_cart",
		*viewer, *viewer)
}

// applyFilter returns a scope with the filter's WHERE clauses. Membership
// filters assume an authenticated viewer; FindPage short-circuits the
// anonymous case before ever reaching here.
func applyFilter(filter RecipeFilter, viewer *uuid.UUID) func(*gorm.DB) *gorm.DB {
	return func(q *gorm.DB) *gorm.DB {
		if filter.Author != nil {
			q = q.Where("recipes.author_id = ?", *filter.Author)
		}
		if len(filter.TagSlugs) > 0 {
			q = q.Where(
				"recipes.id IN (SELECT rt.recipe_id FROM recipe_tags rt JOIN tags ON tags.id = rt.tag_id WHERE tags.slug IN ?)",
				filter.TagSlugs)
		}
		if viewer != nil {
			if filter.Favorited != nil && *filter.Favorited {
				q = q.Where("EXISTS(SELECT 1 FROM favorites WHERE favorites.recipe_id = recipes.id AND favorites.user_id = ?)", *viewer)
			}
			if filter.InCart != nil && *filter.InCart {
				q = q.Where("EXISTS(SELECT 1 FROM cart_items WHERE cart_items.recipe_id = recipes.id AND cart_items.user_id = ?)", *viewer)
			}
		}
		return q
	}
}

// FindPage returns one page of annotated recipes, newest first, plus the
// total matching count. Annotation runs on the page only, not on the whole
// result set.
func (r *RecipeRepo) FindPage(filter RecipeFilter, viewer *uuid.UUID, limit, offset int) ([]*models.Recipe, int64, error) {
	// An anonymous viewer has no favorites and no cart, so a =true
	// membership filter can never match anything.
	if viewer == nil &&
		((filter.Favorited != nil && *filter.Favorited) || (filter.InCart != nil && *filter.InCart)) {
		return nil, 0, nil
	}

	var total int64
	countQuery := r.db.Model(&models.Recipe{}).Scopes(applyFilter(filter, viewer))
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var recipes []*models.Recipe
	err := r.annotated(viewer).
		Scopes(applyFilter(filter, viewer)).
		Order("published_at DESC, recipes.id").
		Limit(limit).
		Offset(offset).
		Preload("Author").
		Preload("Tags").
		Preload("Ingredients.Ingredient").
		Find(&recipes).Error
	return recipes, total, err
}

// FindByID returns one annotated recipe with author, tags and ingredient rows.
func (r *RecipeRepo) FindByID(id uuid.UUID, viewer *uuid.UUID) (*models.Recipe, error) {
	var recipe models.Recipe
	err := r.annotated(viewer).
		Preload("Author").
		Preload("Tags").
		Preload("Ingredients.Ingredient").
		First(&recipe, "recipes.id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &recipe, nil
}

// FindCompactByAuthors returns all recipes of the given authors, newest
// first, without associations. Used to inline recipes into subscription
// listings.
func (r *RecipeRepo) FindCompactByAuthors(authorIDs []uuid.UUID) ([]models.Recipe, error) {
	if len(authorIDs) == 0 {
		return nil, nil
	}
	var recipes []models.Recipe
	err := r.db.Where("author_id IN ?", authorIDs).
		Order("published_at DESC, id").
		Find(&recipes).Error
	return recipes, err
}

// Add creates the recipe, its tag links and its ingredient rows in a single
// transaction: either the whole submission lands or none of it does.
func (r *RecipeRepo) Add(recipe *models.Recipe, tags []models.Tag, rows []models.RecipeIngredient) error {
	if recipe.ID == uuid.Nil {
		recipe.ID = uuid.New()
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Author", "Tags", "Ingredients").Create(recipe).Error; err != nil {
			return err
		}
		if err := replaceTagLinks(tx, recipe.ID, tags); err != nil {
			return err
		}
		return createIngredientRows(tx, recipe.ID, rows)
	})
}

// Update saves the recipe's own columns and replaces both association sets
// atomically. Ingredient rows are deleted and reinserted wholesale, never
// partially patched.
func (r *RecipeRepo) Update(recipe *models.Recipe, tags []models.Tag, rows []models.RecipeIngredient) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Author", "Tags", "Ingredients").Save(recipe).Error; err != nil {
			return err
		}
		if err := replaceTagLinks(tx, recipe.ID, tags); err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.RecipeIngredient{}).Error; err != nil {
			return err
		}
		return createIngredientRows(tx, recipe.ID, rows)
	})
}

// Delete removes a recipe and cascades over its ingredient rows, favorites,
// cart entries and tag links in one transaction.
func (r *RecipeRepo) Delete(id uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", id).Delete(&models.RecipeIngredient{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&models.Favorite{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM recipe_tags WHERE recipe_id = ?", id).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.Recipe{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func createIngredientRows(tx *gorm.DB, recipeID uuid.UUID, rows []models.RecipeIngredient) error {
	if len(rows) == 0 {
		return nil
	}
	for i := range rows {
		rows[i].RecipeID = recipeID
		if rows[i].ID == uuid.Nil {
			rows[i].ID = uuid.New()
		}
	}
	return tx.Omit("Ingredient").Create(&rows).Error
}

// replaceTagLinks swaps the recipe's tag set wholesale. The join table is
// managed explicitly so tag rows themselves are never touched.
func replaceTagLinks(tx *gorm.DB, recipeID uuid.UUID, tags []models.Tag) error {
	if err := tx.Exec("DELETE FROM recipe_tags WHERE recipe_id = ?", recipeID).Error; err != nil {
		return err
	}
	for _, tag := range tags {
		if err := tx.Exec("INSERT INTO recipe_tags (recipe_id, tag_id) VALUES (?, ?)", recipeID, tag.ID).Error; err != nil {
			return err
		}
	}
	return nil
}
