package auth

import (
	"time"

	"identity/config"
	"identity/internal/domain/entity"
	domainerrors "identity/internal/domain/errors"
	"identity/internal/domain/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// minSigningKeyBytes is the shortest HS256 key accepted (256 bits).
const minSigningKeyBytes = 32

// jwtService is a concrete implementation of the TokenService interface using the JWT standard.
type jwtService struct {
	key       []byte
	issuer    string
	audience  string
	accessTTL time.Duration
	now       func() time.Time
	parser    *jwt.Parser
}

// NewJWTService is the constructor for jwtService.
// It takes configuration values to create a new token service instance.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	return newJWTService(cfg.JWT, time.Now)
}

func newJWTService(cfg config.JWTConfig, now func() time.Time) (*jwtService, error) {
	if len(cfg.Key) < minSigningKeyBytes {
		return nil, errors.Errorf("jwt key must be at least %d bytes", minSigningKeyBytes)
	}
	if cfg.Issuer == "" || cfg.Audience == "" {
		return nil, errors.New("jwt issuer and audience must be provided")
	}
	if cfg.AccessTokenTTL <= 0 {
		return nil, errors.New("jwt access token ttl must be positive")
	}

	return &jwtService{
		key:       []byte(cfg.Key),
		issuer:    cfg.Issuer,
		audience:  cfg.Audience,
		accessTTL: cfg.AccessTokenTTL,
		now:       now,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithIssuer(cfg.Issuer),
			jwt.WithAudience(cfg.Audience),
			jwt.WithExpirationRequired(),
			jwt.WithIssuedAt(),
			jwt.WithTimeFunc(now),
		),
	}, nil
}

// Issue signs an access token whose subject is the user ID.
func (s *jwtService) Issue(user *entity.User) (string, time.Time, error) {
	if user == nil || user.ID == uuid.Nil {
		return "", time.Time{}, domainerrors.ErrTokenIssueFailed.WithDetails("user id is required")
	}

	issuedAt := s.now().UTC().Truncate(time.Second)
	expiresAt := issuedAt.Add(s.accessTTL)

	claims := service.Claims{
		Username: user.Username,
		Email:    user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			Issuer:    s.issuer,
			Audience:  jwt.ClaimStrings{s.audience},
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			NotBefore: jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			ID:        uuid.NewString(),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.key)
	if err != nil {
		return "", time.Time{}, domainerrors.ErrTokenIssueFailed.WithDetails(err.Error())
	}

	return signed, expiresAt, nil
}

// Validate checks the signature, method, issuer, audience and lifetime of the token.
func (s *jwtService) Validate(tokenString string) (*service.Claims, error) {
	claims := &service.Claims{}

	token, err := s.parser.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return s.key, nil
	})
	if err != nil {
		return nil, errors.Wrap(domainerrors.ErrInvalidToken, err.Error())
	}
	if !token.Valid {
		return nil, domainerrors.ErrInvalidToken
	}
	if _, err := claims.UserID(); err != nil {
		return nil, errors.Wrap(domainerrors.ErrInvalidToken, "subject is not a user id")
	}

	return claims, nil
}
