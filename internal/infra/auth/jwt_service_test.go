package auth

import (
	"testing"
	"time"

	"identity/config"
	"identity/internal/domain/entity"
	domainerrors "identity/internal/domain/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSigningKey = "test_signing_key_very_long_for_testing_purposes"

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Key:            testSigningKey,
		Issuer:         "identity",
		Audience:       "healthcare",
		AccessTokenTTL: 15 * time.Minute,
	}
}

func testUser() *entity.User {
	return &entity.User{
		Base:     entity.NewBase(),
		Username: "ada",
		Email:    "ada@example.com",
	}
}

func TestJWTService_IssueAndValidate(t *testing.T) {
	jwtService, err := NewJWTService(&config.Config{JWT: testJWTConfig()})
	require.NoError(t, err)

	user := testUser()
	token, expiresAt, err := jwtService.Issue(user)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), expiresAt, 2*time.Second)

	claims, err := jwtService.Validate(token)
	require.NoError(t, err)

	userID, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, user.ID, userID)
	assert.Equal(t, "ada", claims.Username)
	assert.Equal(t, "ada@example.com", claims.Email)
	assert.Equal(t, "identity", claims.Issuer)
	assert.Equal(t, jwt.ClaimStrings{"healthcare"}, claims.Audience)
	assert.NotEmpty(t, claims.ID)
	require.NotNil(t, claims.ExpiresAt)
	assert.Equal(t, expiresAt.Unix(), claims.ExpiresAt.Unix())
}

func TestJWTService_TokenIDsAreUnique(t *testing.T) {
	jwtService, err := NewJWTService(&config.Config{JWT: testJWTConfig()})
	require.NoError(t, err)

	user := testUser()
	first, _, err := jwtService.Issue(user)
	require.NoError(t, err)
	second, _, err := jwtService.Issue(user)
	require.NoError(t, err)

	firstClaims, err := jwtService.Validate(first)
	require.NoError(t, err)
	secondClaims, err := jwtService.Validate(second)
	require.NoError(t, err)
	assert.NotEqual(t, firstClaims.ID, secondClaims.ID)
}

func TestJWTService_Rejects(t *testing.T) {
	issuer, err := newJWTService(testJWTConfig(), time.Now)
	require.NoError(t, err)

	user := testUser()
	valid, _, err := issuer.Issue(user)
	require.NoError(t, err)

	otherAudience := testJWTConfig()
	otherAudience.Audience = "billing"
	otherAudienceSvc, err := newJWTService(otherAudience, time.Now)
	require.NoError(t, err)

	otherIssuer := testJWTConfig()
	otherIssuer.Issuer = "someone-else"
	otherIssuerSvc, err := newJWTService(otherIssuer, time.Now)
	require.NoError(t, err)

	otherKey := testJWTConfig()
	otherKey.Key = "a_completely_different_signing_key_value"
	otherKeySvc, err := newJWTService(otherKey, time.Now)
	require.NoError(t, err)

	past := func() time.Time { return time.Now().Add(-time.Hour) }
	expiredSvc, err := newJWTService(testJWTConfig(), past)
	require.NoError(t, err)
	expired, _, err := expiredSvc.Issue(user)
	require.NoError(t, err)

	noneToken, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Subject:   user.ID.String(),
		Issuer:    "identity",
		Audience:  jwt.ClaimStrings{"healthcare"},
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	badSubject, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "not-a-uuid",
		Issuer:    "identity",
		Audience:  jwt.ClaimStrings{"healthcare"},
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString([]byte(testSigningKey))
	require.NoError(t, err)

	tests := []struct {
		name      string
		validator *jwtService
		token     string
	}{
		{name: "garbage", validator: issuer, token: "clearly-not-a-jwt-token-format"},
		{name: "wrong audience", validator: otherAudienceSvc, token: valid},
		{name: "wrong issuer", validator: otherIssuerSvc, token: valid},
		{name: "wrong key", validator: otherKeySvc, token: valid},
		{name: "expired", validator: issuer, token: expired},
		{name: "none algorithm", validator: issuer, token: noneToken},
		{name: "subject not a user id", validator: issuer, token: badSubject},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := tt.validator.Validate(tt.token)
			require.Error(t, err)
			assert.Nil(t, claims)
			assert.True(t, errors.Is(err, domainerrors.ErrInvalidToken))
			assert.True(t, errors.Is(err, domainerrors.ErrUnauthorized))
		})
	}
}

func TestJWTService_IssueRequiresUserID(t *testing.T) {
	jwtService, err := NewJWTService(&config.Config{JWT: testJWTConfig()})
	require.NoError(t, err)

	_, _, err = jwtService.Issue(&entity.User{Base: entity.Base{ID: uuid.Nil}})
	assert.True(t, errors.Is(err, domainerrors.ErrTokenIssueFailed))
}

func TestNewJWTService_ValidatesConfig(t *testing.T) {
	shortKey := testJWTConfig()
	shortKey.Key = "short"

	noIssuer := testJWTConfig()
	noIssuer.Issuer = ""

	noTTL := testJWTConfig()
	noTTL.AccessTokenTTL = 0

	for name, cfg := range map[string]config.JWTConfig{
		"short key": shortKey,
		"no issuer": noIssuer,
		"no ttl":    noTTL,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := NewJWTService(&config.Config{JWT: cfg})
			assert.Error(t, err)
		})
	}
}
