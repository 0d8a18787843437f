package api

import (
	"net/http"

	"github.com/foodgram/backend/database"
	"github.com/foodgram/backend/errs"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type authHandler struct {
	responder Responder
	logger    zerolog.Logger
	userRepo  *database.UserRepo
	issuer    TokenIssuer
}

func newAuthHandler(userRepo *database.UserRepo, issuer TokenIssuer) authHandler {
	logger := log.With().Str("handlerName", "authHandler").Logger()

	return authHandler{
		responder: NewResponder(logger),
		logger:    logger,
		userRepo:  userRepo,
		issuer:    issuer,
	}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type tokenResponse struct {
	AuthToken string `json:"auth_token"`
}

// login exchanges email + password for a bearer token. Unknown email and
// wrong password are deliberately indistinguishable to the caller.
func (h authHandler) login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := decodeAndValidate(r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		user, err := h.userRepo.FindByEmail(req.Email)
		if err != nil || !checkPassword(user.PasswordHash, req.Password) {
			h.responder.WriteError(w, errs.NewUnauthorizedError("invalid credentials"))
			return
		}

		token, err := h.issuer.Issue(user.ID)
		if err != nil {
			h.logger.Error().Err(err).Msg("Failed to sign token")
			h.responder.WriteError(w, errs.NewInternalError("failed to issue token"))
			return
		}

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, tokenResponse{AuthToken: token})
	}
}
