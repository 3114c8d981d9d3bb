// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"
	"time"

	"identity/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new user.
type RegisterInput struct {
	Username    string
	Email       string
	Password    string
	FirstName   string
	LastName    string
	PhoneNumber string
}

// LoginInput defines the data required for a user to log in.
type LoginInput struct {
	Email    string
	Password string
}

// UpdateProfileInput carries the fields a user may change on their own account.
type UpdateProfileInput struct {
	Username    string
	Email       string
	FirstName   string
	LastName    string
	PhoneNumber string
}

// UpdateUserInput is the full user representation sent to PUT /api/users/{id}.
// ID must match the path id.
type UpdateUserInput struct {
	ID          uuid.UUID
	Username    string
	Email       string
	FirstName   string
	LastName    string
	PhoneNumber string
}

// UpdatePasswordInput defines the data required to change the actor's password.
type UpdatePasswordInput struct {
	CurrentPassword string
	NewPassword     string
}

// ConfirmEmailInput defines the data required to confirm an email address.
type ConfirmEmailInput struct {
	Email string
	Token string
}

// ResetPasswordInput defines the data required to reset a password.
type ResetPasswordInput struct {
	Email       string
	Token       string
	NewPassword string
}

// --- Output DTOs ---

// LoginOutput returns the access token generated after a successful login.
type LoginOutput struct {
	Token     string
	ExpiresAt time.Time
	User      *entity.User
}

// EmailTokenOutput pairs an email address with a freshly generated verification token.
type EmailTokenOutput struct {
	Email string
	Token string
}

// UserUsecase defines the interface for user-related business operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
// Operations that write on behalf of someone take the acting principal explicitly;
// anonymous entry points run as entity.SystemActor.
type UserUsecase interface {
	ListUsers(ctx context.Context, actor entity.Actor) ([]*entity.User, error)
	GetUser(ctx context.Context, actor entity.Actor, id uuid.UUID) (*entity.User, error)
	Register(ctx context.Context, actor entity.Actor, input *RegisterInput) (*entity.User, error)
	Login(ctx context.Context, input *LoginInput) (*LoginOutput, error)

	GetProfile(ctx context.Context, actor entity.Actor, userID uuid.UUID) (*entity.User, error)
	UpdateProfile(ctx context.Context, actor entity.Actor, userID uuid.UUID, input *UpdateProfileInput) error
	UpdateUser(ctx context.Context, actor entity.Actor, pathID uuid.UUID, input *UpdateUserInput) error
	DeleteUser(ctx context.Context, actor entity.Actor, id uuid.UUID) error
	UpdatePassword(ctx context.Context, actor entity.Actor, input *UpdatePasswordInput) error

	SendConfirmationEmail(ctx context.Context, email string) (*EmailTokenOutput, error)
	ConfirmEmail(ctx context.Context, input *ConfirmEmailInput) error
	SendResetPasswordEmail(ctx context.Context, email string) (*EmailTokenOutput, error)
	ResetPassword(ctx context.Context, input *ResetPasswordInput) error
}
