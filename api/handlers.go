package api

import (
	"github.com/foodgram/backend/database"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(db database.Database, issuer TokenIssuer, mediaRoot string) *routeHandlers {
	return &routeHandlers{
		authHandler:       newAuthHandler(db.UserRepo(), issuer),
		userHandler:       newUserHandler(db),
		tagHandler:        newTagHandler(db.TagRepo()),
		ingredientHandler: newIngredientHandler(db.IngredientRepo()),
		recipeHandler:     newRecipeHandler(db, mediaRoot),
	}
}
