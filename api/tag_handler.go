package api

import (
	"net/http"

	"github.com/foodgram/backend/database"
	"github.com/foodgram/backend/errs"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type tagHandler struct {
	responder Responder
	logger    zerolog.Logger
	tagRepo   *database.TagRepo
}

func newTagHandler(tagRepo *database.TagRepo) tagHandler {
	logger := log.With().Str("handlerName", "tagHandler").Logger()

	return tagHandler{
		responder: NewResponder(logger),
		logger:    logger,
		tagRepo:   tagRepo,
	}
}

func (h tagHandler) listTags() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tags, err := h.tagRepo.FindAll()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "tags", err))
			return
		}
		h.responder.WriteJSON(w, tags)
	}
}

func (h tagHandler) getTag() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tagID, err := uuid.Parse(chi.URLParam(r, "tagID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid tagID"))
			return
		}

		tag, err := h.tagRepo.FindByID(tagID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "tag", err))
			return
		}
		h.responder.WriteJSON(w, tag)
	}
}
