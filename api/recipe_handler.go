package api

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/foodgram/backend/database"
	"github.com/foodgram/backend/errs"
	"github.com/foodgram/backend/models"
	"github.com/foodgram/backend/services"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type recipeHandler struct {
	responder        Responder
	logger           zerolog.Logger
	recipeRepo       *database.RecipeRepo
	tagRepo          *database.TagRepo
	ingredientRepo   *database.IngredientRepo
	favoriteRepo     *database.FavoriteRepo
	cartRepo         *database.CartRepo
	subscriptionRepo *database.SubscriptionRepo
	userRepo         *database.UserRepo
	mediaRoot        string
}

func newRecipeHandler(db database.Database, mediaRoot string) recipeHandler {
	logger := log.With().Str("handlerName", "recipeHandler").Logger()

	return recipeHandler{
		responder:        NewResponder(logger),
		logger:           logger,
		recipeRepo:       db.RecipeRepo(),
		tagRepo:          db.TagRepo(),
		ingredientRepo:   db.IngredientRepo(),
		favoriteRepo:     db.FavoriteRepo(),
		cartRepo:         db.CartRepo(),
		subscriptionRepo: db.SubscriptionRepo(),
		userRepo:         db.UserRepo(),
		mediaRoot:        mediaRoot,
	}
}

type recipeIngredientRequest struct {
	ID     uuid.UUID `json:"id" validate:"required"`
	Amount int       `json:"amount" validate:"required,min=1,max=32000"`
}

type recipeRequest struct {
	Name        string                    `json:"name" validate:"required,max=200"`
	Text        string                    `json:"text" validate:"required"`
	CookingTime int                       `json:"cooking_time" validate:"required,min=1,max=32000"`
	Image       string                    `json:"image"`
	Ingredients []recipeIngredientRequest `json:"ingredients" validate:"required,min=1,dive"`
	Tags        []uuid.UUID               `json:"tags" validate:"required,min=1"`
}

// checkNoDuplicates rejects payloads naming the same ingredient or tag twice.
// This runs before anything is persisted.
func (req recipeRequest) checkNoDuplicates() error {
	seenIngredients := make(map[uuid.UUID]bool, len(req.Ingredients))
	for _, row := range req.Ingredients {
		if seenIngredients[row.ID] {
			return errs.NewValidationError("ingredients", "ingredient ids must be unique within one recipe")
		}
		seenIngredients[row.ID] = true
	}

	seenTags := make(map[uuid.UUID]bool, len(req.Tags))
	for _, id := range req.Tags {
		if seenTags[id] {
			return errs.NewValidationError("tags", "tag ids must be unique within one recipe")
		}
		seenTags[id] = true
	}
	return nil
}

func (req recipeRequest) ingredientRows() []models.RecipeIngredient {
	rows := make([]models.RecipeIngredient, len(req.Ingredients))
	for i, row := range req.Ingredients {
		rows[i] = models.RecipeIngredient{IngredientID: row.ID, Amount: row.Amount}
	}
	return rows
}

func boolParam(query url.Values, key string) *bool {
	switch strings.ToLower(query.Get(key)) {
	case "1", "true":
		value := true
		return &value
	case "0", "false":
		value := false
		return &value
	}
	return nil
}

// listRecipes returns one annotated page of recipes, newest first. Anonymous
// viewers see both membership flags as false; membership filters set to true
// yield an empty page for them.
func (h recipeHandler) listRecipes() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewer := viewerFromCtx(r.Context())
		query := r.URL.Query()

		filter := database.RecipeFilter{
			TagSlugs:  query["tags"],
			Favorited: boolParam(query, "is_favorited"),
			InCart:    boolParam(query, "is_in_shopping_cart"),
		}
		if raw := query.Get("author"); raw != "" {
			authorID, err := uuid.Parse(raw)
			if err != nil {
				h.responder.WriteError(w, errs.NewBadRequestError("invalid author"))
				return
			}
			filter.Author = &authorID
		}

		limit, offset := pageParams(r)
		recipes, total, err := h.recipeRepo.FindPage(filter, viewer, limit, offset)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "recipes", err))
			return
		}

		subscribed, err := h.subscribedAuthors(viewer, recipes)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "subscriptions", err))
			return
		}

		results := make([]RecipeResponse, len(recipes))
		for i, recipe := range recipes {
			results[i] = newRecipeResponse(recipe, subscribed[recipe.AuthorID])
		}

		h.responder.WriteJSON(w, Page{Count: total, Results: results})
	}
}

// subscribedAuthors resolves, in one query, which of the page's authors the
// viewer follows.
func (h recipeHandler) subscribedAuthors(viewer *uuid.UUID, recipes []*models.Recipe) (map[uuid.UUID]bool, error) {
	if viewer == nil || len(recipes) == 0 {
		return map[uuid.UUID]bool{}, nil
	}
	authorIDs := make([]uuid.UUID, 0, len(recipes))
	seen := make(map[uuid.UUID]bool, len(recipes))
	for _, recipe := range recipes {
		if !seen[recipe.AuthorID] {
			seen[recipe.AuthorID] = true
			authorIDs = append(authorIDs, recipe.AuthorID)
		}
	}
	return h.subscriptionRepo.SubscribedSet(*viewer, authorIDs)
}

func (h recipeHandler) getRecipe() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewer := viewerFromCtx(r.Context())

		recipeID, err := uuid.Parse(chi.URLParam(r, "recipeID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid recipeID"))
			return
		}

		recipe, err := h.recipeRepo.FindByID(recipeID, viewer)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "recipe", err))
			return
		}

		authorSubscribed := false
		if viewer != nil {
			authorSubscribed, err = h.subscriptionRepo.Exists(*viewer, recipe.AuthorID)
			if err != nil {
				h.responder.WriteError(w, wrapDatabaseError("find", "subscription", err))
				return
			}
		}

		h.responder.WriteJSON(w, newRecipeResponse(recipe, authorSubscribed))
	}
}

func (h recipeHandler) createRecipe() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewer := viewerFromCtx(r.Context())

		var req recipeRequest
		if err := decodeAndValidate(r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := req.checkNoDuplicates(); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		tags, err := h.tagRepo.FindByIDs(req.Tags)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if _, err := h.ingredientRepo.FindByIDs(ingredientIDs(req.Ingredients)); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		imagePath, err := services.SaveRecipeImage(h.mediaRoot, req.Image)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		recipe := models.Recipe{
			AuthorID:    *viewer,
			Name:        req.Name,
			Text:        req.Text,
			CookingTime: req.CookingTime,
			Image:       imagePath,
			PublishedAt: time.Now().UTC(),
		}

		if err := h.recipeRepo.Add(&recipe, tags, req.ingredientRows()); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "recipe", err))
			return
		}

		created, err := h.recipeRepo.FindByID(recipe.ID, viewer)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find created", "recipe", err))
			return
		}

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, newRecipeResponse(created, false))
	}
}

func (h recipeHandler) updateRecipe() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewer := viewerFromCtx(r.Context())

		recipeID, err := uuid.Parse(chi.URLParam(r, "recipeID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid recipeID"))
			return
		}

		existing, err := h.recipeRepo.FindByID(recipeID, viewer)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "recipe", err))
			return
		}
		if existing.AuthorID != *viewer {
			h.responder.WriteError(w, errs.NewForbiddenError("only the author may modify a recipe"))
			return
		}

		var req recipeRequest
		if err := decodeAndValidate(r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := req.checkNoDuplicates(); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		tags, err := h.tagRepo.FindByIDs(req.Tags)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if _, err := h.ingredientRepo.FindByIDs(ingredientIDs(req.Ingredients)); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		// Image is optional on update; the stored one is kept when omitted.
		imagePath := existing.Image
		if req.Image != "" {
			imagePath, err = services.SaveRecipeImage(h.mediaRoot, req.Image)
			if err != nil {
				h.responder.WriteError(w, err)
				return
			}
		}

		updated := models.Recipe{
			ID:          existing.ID,
			AuthorID:    existing.AuthorID,
			Name:        req.Name,
			Text:        req.Text,
			CookingTime: req.CookingTime,
			Image:       imagePath,
			PublishedAt: existing.PublishedAt,
		}

		if err := h.recipeRepo.Update(&updated, tags, req.ingredientRows()); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "recipe", err))
			return
		}

		reloaded, err := h.recipeRepo.FindByID(recipeID, viewer)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find updated", "recipe", err))
			return
		}

		h.responder.WriteJSON(w, newRecipeResponse(reloaded, false))
	}
}

func (h recipeHandler) deleteRecipe() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewer := viewerFromCtx(r.Context())

		recipeID, err := uuid.Parse(chi.URLParam(r, "recipeID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid recipeID"))
			return
		}

		existing, err := h.recipeRepo.FindByID(recipeID, viewer)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "recipe", err))
			return
		}
		if existing.AuthorID != *viewer {
			actor, err := h.userRepo.FindByID(*viewer)
			if err != nil {
				h.responder.WriteError(w, wrapDatabaseError("find", "user", err))
				return
			}
			if !actor.IsAdmin {
				h.responder.WriteError(w, errs.NewForbiddenError("only the author or an admin may delete a recipe"))
				return
			}
		}

		if err := h.recipeRepo.Delete(recipeID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "recipe", err))
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// addFavorite puts the recipe in the viewer's favorites. A duplicate add is a
// conflict; success returns the compact recipe form.
func (h recipeHandler) addFavorite() http.HandlerFunc {
	return h.addMembership("favorited", h.favoriteRepo.Exists, func(userID, recipeID uuid.UUID) error {
		return h.favoriteRepo.Add(&models.Favorite{UserID: userID, RecipeID: recipeID})
	})
}

func (h recipeHandler) removeFavorite() http.HandlerFunc {
	return h.removeMembership("favorited", h.favoriteRepo.Remove)
}

func (h recipeHandler) addToCart() http.HandlerFunc {
	return h.addMembership("in the shopping cart", h.cartRepo.Exists, func(userID, recipeID uuid.UUID) error {
		return h.cartRepo.Add(&models.CartItem{UserID: userID, RecipeID: recipeID})
	})
}

func (h recipeHandler) removeFromCart() http.HandlerFunc {
	return h.removeMembership("in the shopping cart", h.cartRepo.Remove)
}

// addMembership is the shared add shape for favorites and cart entries:
// 404 when the recipe does not exist, 409 when the membership already does.
// The repo-level unique constraint backs up the existence check under racing
// duplicate adds.
func (h recipeHandler) addMembership(
	relation string,
	exists func(userID, recipeID uuid.UUID) (bool, error),
	add func(userID, recipeID uuid.UUID) error,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewer := viewerFromCtx(r.Context())

		recipeID, err := uuid.Parse(chi.URLParam(r, "recipeID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid recipeID"))
			return
		}

		recipe, err := h.recipeRepo.FindByID(recipeID, viewer)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "recipe", err))
			return
		}

		alreadyExists, err := exists(*viewer, recipeID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("check", "membership", err))
			return
		}
		if alreadyExists {
			h.responder.WriteError(w, errs.NewConflictError("recipe is already "+relation))
			return
		}

		if err := add(*viewer, recipeID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "membership", err))
			return
		}

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, newCompactRecipe(recipe))
	}
}

// removeMembership is the shared remove shape: 404 when the recipe does not
// exist at all, 400 when there is no membership row to remove.
func (h recipeHandler) removeMembership(
	relation string,
	remove func(userID, recipeID uuid.UUID) (int64, error),
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewer := viewerFromCtx(r.Context())

		recipeID, err := uuid.Parse(chi.URLParam(r, "recipeID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid recipeID"))
			return
		}

		if _, err := h.recipeRepo.FindByID(recipeID, viewer); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "recipe", err))
			return
		}

		removed, err := remove(*viewer, recipeID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "membership", err))
			return
		}
		if removed == 0 {
			h.responder.WriteError(w, errs.NewBadRequestError("recipe is not "+relation))
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// downloadShoppingCart renders the viewer's consolidated shopping list as a
// plain-text attachment. An empty cart downloads as an empty document.
func (h recipeHandler) downloadShoppingCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewer := viewerFromCtx(r.Context())

		items, err := h.cartRepo.ShoppingList(*viewer)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("aggregate", "shopping list", err))
			return
		}

		h.responder.WriteAttachment(w,
			services.ShoppingListFilename,
			services.ShoppingListContentType,
			services.RenderShoppingList(items))
	}
}

func ingredientIDs(rows []recipeIngredientRequest) []uuid.UUID {
	ids := make([]uuid.UUID, len(rows))
	for i, row := range rows {
		ids[i] = row.ID
	}
	return ids
}
