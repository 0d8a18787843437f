package api

import (
	"net/http"
	"strconv"

	"github.com/foodgram/backend/database"
	"github.com/foodgram/backend/errs"
	"github.com/foodgram/backend/models"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type userHandler struct {
	responder        Responder
	logger           zerolog.Logger
	userRepo         *database.UserRepo
	subscriptionRepo *database.SubscriptionRepo
	recipeRepo       *database.RecipeRepo
}

func newUserHandler(db database.Database) userHandler {
	logger := log.With().Str("handlerName", "userHandler").Logger()

	return userHandler{
		responder:        NewResponder(logger),
		logger:           logger,
		userRepo:         db.UserRepo(),
		subscriptionRepo: db.SubscriptionRepo(),
		recipeRepo:       db.RecipeRepo(),
	}
}

type registerRequest struct {
	Email     string `json:"email" validate:"required,email,max=254"`
	Username  string `json:"username" validate:"required,max=150"`
	FirstName string `json:"first_name" validate:"required,max=150"`
	LastName  string `json:"last_name" validate:"required,max=150"`
	Password  string `json:"password" validate:"required,min=8,max=150"`
}

func (h userHandler) register() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerRequest
		if err := decodeAndValidate(r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		passwordHash, err := hashPassword(req.Password)
		if err != nil {
			h.responder.WriteError(w, errs.NewInternalError("failed to hash password"))
			return
		}

		user := models.User{
			Email:        req.Email,
			Username:     req.Username,
			FirstName:    req.FirstName,
			LastName:     req.LastName,
			PasswordHash: passwordHash,
		}
		if err := h.userRepo.Add(&user); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "user", err))
			return
		}

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, newUserResponse(&user, false))
	}
}

func (h userHandler) listUsers() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewer := viewerFromCtx(r.Context())

		limit, offset := pageParams(r)
		users, total, err := h.userRepo.FindPage(limit, offset)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "users", err))
			return
		}

		subscribed := map[uuid.UUID]bool{}
		if viewer != nil {
			ids := make([]uuid.UUID, len(users))
			for i, user := range users {
				ids[i] = user.ID
			}
			subscribed, err = h.subscriptionRepo.SubscribedSet(*viewer, ids)
			if err != nil {
				h.responder.WriteError(w, wrapDatabaseError("find", "subscriptions", err))
				return
			}
		}

		results := make([]UserResponse, len(users))
		for i, user := range users {
			results[i] = newUserResponse(user, subscribed[user.ID])
		}
		h.responder.WriteJSON(w, Page{Count: total, Results: results})
	}
}

func (h userHandler) getUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewer := viewerFromCtx(r.Context())

		userID, err := uuid.Parse(chi.URLParam(r, "userID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid userID"))
			return
		}

		user, err := h.userRepo.FindByID(userID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "user", err))
			return
		}

		isSubscribed := false
		if viewer != nil {
			isSubscribed, err = h.subscriptionRepo.Exists(*viewer, user.ID)
			if err != nil {
				h.responder.WriteError(w, wrapDatabaseError("find", "subscription", err))
				return
			}
		}
		h.responder.WriteJSON(w, newUserResponse(user, isSubscribed))
	}
}

func (h userHandler) me() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewer := viewerFromCtx(r.Context())

		user, err := h.userRepo.FindByID(*viewer)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "user", err))
			return
		}
		h.responder.WriteJSON(w, newUserResponse(user, false))
	}
}

// subscribe makes the viewer follow the target user. Following yourself is a
// 400, following someone twice is a 409.
func (h userHandler) subscribe() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewer := viewerFromCtx(r.Context())

		targetID, err := uuid.Parse(chi.URLParam(r, "userID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid userID"))
			return
		}

		target, err := h.userRepo.FindByID(targetID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "user", err))
			return
		}
		if targetID == *viewer {
			h.responder.WriteError(w, errs.NewBadRequestError("cannot subscribe to yourself"))
			return
		}

		alreadyExists, err := h.subscriptionRepo.Exists(*viewer, targetID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("check", "subscription", err))
			return
		}
		if alreadyExists {
			h.responder.WriteError(w, errs.NewConflictError("already subscribed to this user"))
			return
		}

		subscription := models.Subscription{SubscriberID: *viewer, SubscribedToID: targetID}
		if err := h.subscriptionRepo.Add(&subscription); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "subscription", err))
			return
		}

		response, err := h.subscriptionResponse(target, recipesLimit(r))
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "recipes", err))
			return
		}

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, response)
	}
}

func (h userHandler) unsubscribe() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewer := viewerFromCtx(r.Context())

		targetID, err := uuid.Parse(chi.URLParam(r, "userID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid userID"))
			return
		}

		if _, err := h.userRepo.FindByID(targetID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "user", err))
			return
		}

		removed, err := h.subscriptionRepo.Remove(*viewer, targetID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "subscription", err))
			return
		}
		if removed == 0 {
			h.responder.WriteError(w, errs.NewBadRequestError("not subscribed to this user"))
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// listSubscriptions returns the authors the viewer follows, each with their
// recipes inlined in compact form, trimmed by the recipes_limit parameter.
func (h userHandler) listSubscriptions() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewer := viewerFromCtx(r.Context())

		limit, offset := pageParams(r)
		authors, total, err := h.subscriptionRepo.FindAuthorsPage(*viewer, limit, offset)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "subscriptions", err))
			return
		}

		perAuthor := recipesLimit(r)
		authorIDs := make([]uuid.UUID, len(authors))
		for i, author := range authors {
			authorIDs[i] = author.ID
		}
		recipes, err := h.recipeRepo.FindCompactByAuthors(authorIDs)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "recipes", err))
			return
		}

		byAuthor := make(map[uuid.UUID][]CompactRecipe, len(authors))
		counts := make(map[uuid.UUID]int, len(authors))
		for i := range recipes {
			authorID := recipes[i].AuthorID
			counts[authorID]++
			if perAuthor <= 0 || len(byAuthor[authorID]) < perAuthor {
				byAuthor[authorID] = append(byAuthor[authorID], newCompactRecipe(&recipes[i]))
			}
		}

		results := make([]SubscriptionResponse, len(authors))
		for i, author := range authors {
			inlined := byAuthor[author.ID]
			if inlined == nil {
				inlined = []CompactRecipe{}
			}
			results[i] = SubscriptionResponse{
				UserResponse: newUserResponse(author, true),
				Recipes:      inlined,
				RecipesCount: counts[author.ID],
			}
		}
		h.responder.WriteJSON(w, Page{Count: total, Results: results})
	}
}

// subscriptionResponse builds the follow-confirmation body: the target user
// plus their recipes in compact form.
func (h userHandler) subscriptionResponse(target *models.User, perAuthor int) (SubscriptionResponse, error) {
	recipes, err := h.recipeRepo.FindCompactByAuthors([]uuid.UUID{target.ID})
	if err != nil {
		return SubscriptionResponse{}, err
	}

	inlined := []CompactRecipe{}
	for i := range recipes {
		if perAuthor <= 0 || len(inlined) < perAuthor {
			inlined = append(inlined, newCompactRecipe(&recipes[i]))
		}
	}
	return SubscriptionResponse{
		UserResponse: newUserResponse(target, true),
		Recipes:      inlined,
		RecipesCount: len(recipes),
	}, nil
}

// recipesLimit reads the recipes_limit query parameter; 0 means unlimited.
func recipesLimit(r *http.Request) int {
	raw := r.URL.Query().Get("recipes_limit")
	if raw == "" {
		return 0
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil || parsed < 0 {
		return 0
	}
	return parsed
}
