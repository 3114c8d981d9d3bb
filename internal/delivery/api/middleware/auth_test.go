package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	deliverycontext "identity/internal/delivery/context"
	"identity/internal/domain/entity"
	domainerrors "identity/internal/domain/errors"
	"identity/internal/domain/service"
	mockSvc "identity/internal/mocks/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthContext(authorization string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodGet, "/api/users/profile", nil)
	if authorization != "" {
		req.Header.Set(echo.HeaderAuthorization, authorization)
	}
	rec := httptest.NewRecorder()

	return echo.New().NewContext(req, rec), rec
}

func TestAuthMiddleware_Authenticate(t *testing.T) {
	userID := uuid.New()
	claims := &service.Claims{
		Username:         "grace",
		RegisteredClaims: jwt.RegisteredClaims{Subject: userID.String()},
	}

	tokenSvc := mockSvc.NewMockTokenService(t)
	tokenSvc.EXPECT().Validate("good-token").Return(claims, nil)

	c, _ := newAuthContext("Bearer good-token")

	var gotActor entity.Actor
	err := NewAuthMiddleware(tokenSvc).Authenticate(func(c echo.Context) error {
		gotActor = entity.ActorFromContext(c.Request().Context())

		return nil
	})(c)
	require.NoError(t, err)

	gotID, ok := GetUserID(c)
	require.True(t, ok)
	assert.Equal(t, userID, gotID)
	assert.Equal(t, entity.ActorFromUserID(userID), gotActor)
	assert.Equal(t, entity.ActorFromUserID(userID), ActorOf(c))

	gotClaims, ok := GetClaims(c)
	require.True(t, ok)
	assert.Equal(t, "grace", gotClaims.Username)
}

func TestAuthMiddleware_TagsRequestLoggerWithActor(t *testing.T) {
	userID := uuid.New()
	tokenSvc := mockSvc.NewMockTokenService(t)
	tokenSvc.EXPECT().Validate("good-token").Return(&service.Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: userID.String()},
	}, nil)

	buf := &bytes.Buffer{}
	base := slog.New(slog.NewTextHandler(buf, nil))

	c, _ := newAuthContext("Bearer good-token")
	ctx := deliverycontext.WithRequestLogger(c.Request().Context(), base, "req-1")
	c.SetRequest(c.Request().WithContext(ctx))

	err := NewAuthMiddleware(tokenSvc).Authenticate(func(c echo.Context) error {
		deliverycontext.GetLoggerOrDefault(c.Request().Context(), nil).Info("profile read")

		return nil
	})(c)
	require.NoError(t, err)

	line := buf.String()
	assert.Contains(t, line, "request_id=req-1")
	assert.Contains(t, line, "actor="+userID.String())
}

func TestAuthMiddleware_Rejects(t *testing.T) {
	tests := []struct {
		name          string
		authorization string
		validateErr   error
		want          error
	}{
		{name: "missing header", want: domainerrors.ErrUnauthorized},
		{name: "wrong scheme", authorization: "Basic Zm9vOmJhcg==", want: domainerrors.ErrInvalidToken},
		{name: "empty bearer", authorization: "Bearer ", want: domainerrors.ErrInvalidToken},
		{name: "invalid token", authorization: "Bearer bad-token", validateErr: domainerrors.ErrInvalidToken, want: domainerrors.ErrInvalidToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokenSvc := mockSvc.NewMockTokenService(t)
			if tt.validateErr != nil {
				tokenSvc.EXPECT().Validate("bad-token").Return(nil, tt.validateErr)
			}

			c, _ := newAuthContext(tt.authorization)
			called := false
			err := NewAuthMiddleware(tokenSvc).Authenticate(func(echo.Context) error {
				called = true

				return nil
			})(c)

			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
			assert.False(t, called)
			_, ok := GetUserID(c)
			assert.False(t, ok)
		})
	}
}

func TestActorOf_Anonymous(t *testing.T) {
	c, _ := newAuthContext("")

	assert.Equal(t, entity.SystemActor, ActorOf(c))
}
