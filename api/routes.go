package api

import (
	"github.com/go-chi/chi/v5"
)

// setupRoutes wires the API surface. Read endpoints take an optional viewer
// so anonymous browsing works; every mutating endpoint requires one.
func setupRoutes(r chi.Router, handlers *routeHandlers, auth authMiddleware) {
	r.Group(func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)

		r.Route("/api", func(r chi.Router) {
			r.Post("/auth/token/login", handlers.authHandler.login())

			r.Route("/users", func(r chi.Router) {
				r.Post("/", handlers.userHandler.register())
				r.With(auth.optional).Get("/", handlers.userHandler.listUsers())
				r.With(auth.require).Get("/me", handlers.userHandler.me())
				r.With(auth.require).Get("/subscriptions", handlers.userHandler.listSubscriptions())
				r.With(auth.optional).Get("/{userID}", handlers.userHandler.getUser())
				r.With(auth.require).Post("/{userID}/subscribe", handlers.userHandler.subscribe())
				r.With(auth.require).Delete("/{userID}/subscribe", handlers.userHandler.unsubscribe())
			})

			r.Route("/tags", func(r chi.Router) {
				r.Get("/", handlers.tagHandler.listTags())
				r.Get("/{tagID}", handlers.tagHandler.getTag())
			})

			r.Route("/ingredients", func(r chi.Router) {
				r.Get("/", handlers.ingredientHandler.listIngredients())
				r.Get("/{ingredientID}", handlers.ingredientHandler.getIngredient())
			})

			r.Route("/recipes", func(r chi.Router) {
				r.With(auth.optional).Get("/", handlers.recipeHandler.listRecipes())
				r.With(auth.require).Post("/", handlers.recipeHandler.createRecipe())
				r.With(auth.require).Get("/download_shopping_cart", handlers.recipeHandler.downloadShoppingCart())
				r.With(auth.optional).Get("/{recipeID}", handlers.recipeHandler.getRecipe())
				r.With(auth.require).Patch("/{recipeID}", handlers.recipeHandler.updateRecipe())
				r.With(auth.require).Delete("/{recipeID}", handlers.recipeHandler.deleteRecipe())
				r.With(auth.require).Post("/{recipeID}/favorite", handlers.recipeHandler.addFavorite())
				r.With(auth.require).Delete("/{recipeID}/favorite", handlers.recipeHandler.removeFavorite())
				r.With(auth.require).Post("/{recipeID}/shopping_cart", handlers.recipeHandler.addToCart())
				r.With(auth.require).Delete("/{recipeID}/shopping_cart", handlers.recipeHandler.removeFromCart())
			})
		})
	})
}
