package api

import (
	"time"

	"github.com/foodgram/backend/models"
	"github.com/google/uuid"
)

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	authHandler       authHandler
	userHandler       userHandler
	tagHandler        tagHandler
	ingredientHandler ingredientHandler
	recipeHandler     recipeHandler
}

// Page is the envelope every paginated listing is wrapped in.
type Page struct {
	Count   int64 `json:"count"`
	Results any   `json:"results"`
}

// ErrorResponse represents an error response from the API
type ErrorResponse struct {
	Error   string `json:"error"`
	Status  string `json:"status"`
	Field   string `json:"field,omitempty"`
	Details string `json:"details,omitempty"`
}

// UserResponse is the fixed shape a user is rendered as, including whether
// the viewer follows them.
type UserResponse struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	IsSubscribed bool      `json:"is_subscribed"`
}

func newUserResponse(user *models.User, isSubscribed bool) UserResponse {
	return UserResponse{
		ID:           user.ID,
		Email:        user.Email,
		Username:     user.Username,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		IsSubscribed: isSubscribed,
	}
}

// CompactRecipe is the short recipe form returned by membership mutators and
// inlined into subscription listings.
type CompactRecipe struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Image       string    `json:"image"`
	CookingTime int       `json:"cooking_time"`
}

func newCompactRecipe(recipe *models.Recipe) CompactRecipe {
	return CompactRecipe{
		ID:          recipe.ID,
		Name:        recipe.Name,
		Image:       recipe.Image,
		CookingTime: recipe.CookingTime,
	}
}

// RecipeIngredientResponse flattens one ingredient row of a recipe: the
// ingredient's identity plus the per-recipe amount.
type RecipeIngredientResponse struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	MeasurementUnit string    `json:"measurement_unit"`
	Amount          int       `json:"amount"`
}

// RecipeResponse is the full recipe shape for list and detail views.
type RecipeResponse struct {
	ID               uuid.UUID                  `json:"id"`
	Tags             []models.Tag               `json:"tags"`
	Author           UserResponse               `json:"author"`
	Ingredients      []RecipeIngredientResponse `json:"ingredients"`
	Name             string                     `json:"name"`
	Text             string                     `json:"text"`
	CookingTime      int                        `json:"cooking_time"`
	Image            string                     `json:"image"`
	PublishedAt      time.Time                  `json:"published_at"`
	IsFavorited      bool                       `json:"is_favorited"`
	IsInShoppingCart bool                       `json:"is_in_shopping_cart"`
}

func newRecipeResponse(recipe *models.Recipe, authorSubscribed bool) RecipeResponse {
	ingredients := make([]RecipeIngredientResponse, len(recipe.Ingredients))
	for i, row := range recipe.Ingredients {
		ingredients[i] = RecipeIngredientResponse{
			ID:              row.IngredientID,
			Name:            row.Ingredient.Name,
			MeasurementUnit: row.Ingredient.MeasurementUnit,
			Amount:          row.Amount,
		}
	}

	tags := recipe.Tags
	if tags == nil {
		tags = []models.Tag{}
	}

	return RecipeResponse{
		ID:               recipe.ID,
		Tags:             tags,
		Author:           newUserResponse(&recipe.Author, authorSubscribed),
		Ingredients:      ingredients,
		Name:             recipe.Name,
		Text:             recipe.Text,
		CookingTime:      recipe.CookingTime,
		Image:            recipe.Image,
		PublishedAt:      recipe.PublishedAt,
		IsFavorited:      recipe.IsFavorited,
		IsInShoppingCart: recipe.IsInShoppingCart,
	}
}

// SubscriptionResponse is one followed author with their recipes inlined in
// compact form.
type SubscriptionResponse struct {
	UserResponse
	Recipes      []CompactRecipe `json:"recipes"`
	RecipesCount int             `json:"recipes_count"`
}
