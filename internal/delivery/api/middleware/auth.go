package middleware

import (
	"strings"

	deliverycontext "identity/internal/delivery/context"
	"identity/internal/domain/entity"
	domainerrors "identity/internal/domain/errors"
	"identity/internal/domain/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	contextKeyUserID = "userID"
	contextKeyClaims = "claims"

	bearerPrefix = "Bearer "
)

// AuthMiddleware authenticates requests carrying a bearer access token.
type AuthMiddleware struct {
	tokenSvc service.TokenService
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc}
}

// Authenticate validates the access token and stores the caller's identity on the context.
// Any failure is rendered as 401 by the central error handler.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
		if authHeader == "" {
			return domainerrors.ErrUnauthorized.WithDetails("authorization header is missing")
		}

		if len(authHeader) <= len(bearerPrefix) || !strings.EqualFold(authHeader[:len(bearerPrefix)], bearerPrefix) {
			return domainerrors.ErrInvalidToken.WithDetails("token must use the Bearer scheme")
		}

		claims, err := m.tokenSvc.Validate(strings.TrimSpace(authHeader[len(bearerPrefix):]))
		if err != nil {
			return err
		}

		userID, err := claims.UserID()
		if err != nil {
			return domainerrors.ErrInvalidToken.WithDetails("invalid subject")
		}

		c.Set(contextKeyUserID, userID)
		c.Set(contextKeyClaims, claims)

		ctx := deliverycontext.WithActor(c.Request().Context(), entity.ActorFromUserID(userID))
		c.SetRequest(c.Request().WithContext(ctx))

		return next(c)
	}
}

// GetUserID returns the authenticated user ID set by Authenticate.
func GetUserID(c echo.Context) (uuid.UUID, bool) {
	userID, ok := c.Get(contextKeyUserID).(uuid.UUID)

	return userID, ok
}

// GetClaims returns the validated token claims set by Authenticate.
func GetClaims(c echo.Context) (*service.Claims, bool) {
	claims, ok := c.Get(contextKeyClaims).(*service.Claims)

	return claims, ok
}

// ActorOf returns the acting principal of the request: the authenticated user,
// or entity.SystemActor on anonymous routes.
func ActorOf(c echo.Context) entity.Actor {
	if userID, ok := GetUserID(c); ok {
		return entity.ActorFromUserID(userID)
	}

	return entity.SystemActor
}
