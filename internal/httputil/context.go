package httputil

import (
	"context"
	"net/http"

	"gradebook/internal/domain/models"
)

// Context key type to avoid collisions
type contextKey string

const actorKey contextKey = "actor"

// WithActor adds the authenticated actor to the request context
func WithActor(r *http.Request, actor models.Actor) *http.Request {
	ctx := context.WithValue(r.Context(), actorKey, actor)
	return r.WithContext(ctx)
}

// GetActor retrieves the authenticated actor from context. The zero
// Actor (empty ID, empty role) means the request was unauthenticated;
// the authorization gate denies it uniformly.
func GetActor(r *http.Request) models.Actor {
	actor, _ := r.Context().Value(actorKey).(models.Actor)
	return actor
}
