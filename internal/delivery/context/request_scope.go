// Package context carries the per-request state shared by the HTTP middleware
// and the usecase layer: the request ID and a logger tagged with it and, once
// the caller is authenticated, with the acting principal.
package context

import (
	"context"
	"log/slog"

	"identity/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// ContextKey is a custom type for context keys to avoid collisions.
type ContextKey string

const (
	// KeyRequestID is the echo.Context key holding the request ID.
	KeyRequestID ContextKey = "request_id"

	// KeyLogger is the context.Context key holding the request-scoped logger.
	KeyLogger ContextKey = "logger"

	// HeaderXRequestID is the HTTP header name for request ID.
	HeaderXRequestID = "X-Request-Id"
)

// GetRequestID returns the ID assigned by the request ID middleware, or a fresh
// UUID on routes that bypassed it.
func GetRequestID(c echo.Context) string {
	if id, ok := c.Get(string(KeyRequestID)).(string); ok && id != "" {
		return id
	}

	return uuid.New().String()
}

// SetRequestID sets the request ID in echo.Context.
func SetRequestID(c echo.Context, requestID string) {
	c.Set(string(KeyRequestID), requestID)
}

// WithRequestLogger stores base tagged with request_id as the request-scoped logger.
func WithRequestLogger(ctx context.Context, base *slog.Logger, requestID string) context.Context {
	return WithLogger(ctx, base.With(slog.String("request_id", requestID)))
}

// WithActor records the authenticated principal on ctx for audit stamping and
// tags the request-scoped logger with it, so every later log line of the
// request names who made it.
func WithActor(ctx context.Context, actor entity.Actor) context.Context {
	ctx = entity.ContextWithActor(ctx, actor)

	if logger := loggerFrom(ctx); logger != nil {
		ctx = WithLogger(ctx, logger.With(slog.String("actor", actor.String())))
	}

	return ctx
}

// GetLoggerOrDefault returns the request-scoped logger, or fallback outside a request.
func GetLoggerOrDefault(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if logger := loggerFrom(ctx); logger != nil {
		return logger
	}

	return fallback
}

// WithLogger returns a new context with the logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, KeyLogger, logger)
}

func loggerFrom(ctx context.Context) *slog.Logger {
	logger, _ := ctx.Value(KeyLogger).(*slog.Logger)

	return logger
}
