package api

import (
	"context"

	"github.com/google/uuid"
)

type keyType string

const viewerKey keyType = "viewer"

// ctxWithViewer adds the authenticated user's ID to the context
func ctxWithViewer(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, viewerKey, userID)
}

// viewerFromCtx returns the authenticated user's ID, or nil for an anonymous
// request. Every operation that depends on the viewing identity takes the
// result explicitly instead of reaching into ambient request state.
func viewerFromCtx(ctx context.Context) *uuid.UUID {
	value := ctx.Value(viewerKey)
	if value == nil {
		return nil
	}
	userID, ok := value.(uuid.UUID)
	if !ok {
		return nil
	}
	return &userID
}
