package entity

import (
	"context"

	"github.com/google/uuid"
)

// Actor identifies the principal on whose behalf a write is performed.
type Actor string

// SystemActor is recorded when a write happens without an authenticated principal,
// e.g. self registration or a password reset.
const SystemActor Actor = "system"

type actorContextKey struct{}

// ActorFromUserID builds the actor for an authenticated user.
func ActorFromUserID(id uuid.UUID) Actor {
	return Actor(id.String())
}

// String returns the string representation of the Actor.
func (a Actor) String() string {
	return string(a)
}

// UserID parses the actor back into a user ID. System and malformed actors report false.
func (a Actor) UserID() (uuid.UUID, bool) {
	id, err := uuid.Parse(string(a))
	if err != nil {
		return uuid.Nil, false
	}

	return id, true
}

// ContextWithActor returns a copy of ctx carrying the actor.
func ContextWithActor(ctx context.Context, actor Actor) context.Context {
	return context.WithValue(ctx, actorContextKey{}, actor)
}

// ActorFromContext extracts the actor stored by ContextWithActor, falling back to SystemActor.
func ActorFromContext(ctx context.Context) Actor {
	if ctx == nil {
		return SystemActor
	}
	if actor, ok := ctx.Value(actorContextKey{}).(Actor); ok && actor != "" {
		return actor
	}

	return SystemActor
}
