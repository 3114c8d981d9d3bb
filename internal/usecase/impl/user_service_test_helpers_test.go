package impl

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"identity/config"
	"identity/internal/domain/entity"
	"identity/internal/domain/repository"
	"identity/internal/domain/service"
	"identity/internal/infra/auth"
	"identity/internal/infra/persistence/model"
	"identity/internal/infra/persistence/postgres"
	"identity/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	gormlogger "gorm.io/gorm/logger"
)

const testPassword = "Correct-Horse-42"

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestConfig() *config.Config {
	cfg := &config.Config{
		Auth: &config.AuthConfig{BcryptCost: bcrypt.MinCost},
		JWT: config.JWTConfig{
			Key:            "usecase_test_signing_key_long_enough_for_hs256",
			Issuer:         "identity",
			Audience:       "healthcare",
			AccessTokenTTL: time.Hour,
		},
		PasswordStrength: &config.PasswordStrengthConfig{
			MinLength:        8,
			RequireUppercase: true,
			RequireLowercase: true,
			RequireNumbers:   true,
		},
	}
	cfg.Database.Driver = config.DriverSQLite
	cfg.Database.SQLite.DSN = fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())

	return cfg
}

// userServiceStack wires the service over a private in-memory SQLite store.
type userServiceStack struct {
	service      usecase.UserUsecase
	userRepo     repository.UserRepository
	tokenService service.TokenService
	hasher       service.PasswordHasher
}

func newUserServiceStack(t *testing.T) userServiceStack {
	t.Helper()

	cfg := newTestConfig()

	db, err := postgres.Open(cfg, gormlogger.Discard)
	require.NoError(t, err)
	require.NoError(t, model.AutoMigrate(context.Background(), db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	tokenService, err := auth.NewJWTService(cfg)
	require.NoError(t, err)

	userRepo := postgres.NewUserRepository(db)
	hasher := auth.NewBcryptHasher(cfg)

	srv := NewUserService(UserServiceParams{
		TxManager:      postgres.NewTransactionManager(db),
		UserRepo:       userRepo,
		Hasher:         hasher,
		TokenService:   tokenService,
		TokenGenerator: auth.NewVerificationTokenGenerator(),
		Logger:         newDiscardLogger(),
	})

	return userServiceStack{
		service:      srv,
		userRepo:     userRepo,
		tokenService: tokenService,
		hasher:       hasher,
	}
}

func registerInput(username, email string) *usecase.RegisterInput {
	return &usecase.RegisterInput{
		Username:    username,
		Email:       email,
		Password:    testPassword,
		FirstName:   "Ada",
		LastName:    "Lovelace",
		PhoneNumber: "555-0100",
	}
}

func (s userServiceStack) mustRegister(t *testing.T, username, email string) *entity.User {
	t.Helper()

	user, err := s.service.Register(context.Background(), entity.SystemActor, registerInput(username, email))
	require.NoError(t, err)

	return user
}
