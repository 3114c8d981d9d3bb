package handler

import (
	"bytes"
	"encoding/json"
	"time"

	"identity/internal/domain/entity"
	"identity/internal/errors"
	"identity/internal/usecase"

	"github.com/google/uuid"
)

// RegisterRequest is the body of POST /api/users/register.
type RegisterRequest struct {
	Username    string `json:"username" validate:"required,max=50"`
	Email       string `json:"email" validate:"required,email,max=100"`
	Password    string `json:"password" validate:"required"`
	FirstName   string `json:"firstName" validate:"max=50"`
	LastName    string `json:"lastName" validate:"max=50"`
	PhoneNumber string `json:"phoneNumber" validate:"max=20"`
}

func (r *RegisterRequest) toInput() *usecase.RegisterInput {
	return &usecase.RegisterInput{
		Username:    r.Username,
		Email:       r.Email,
		Password:    r.Password,
		FirstName:   r.FirstName,
		LastName:    r.LastName,
		PhoneNumber: r.PhoneNumber,
	}
}

// LoginRequest is the body of POST /api/users/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateProfileRequest is the body of PUT /api/users/profile.
type UpdateProfileRequest struct {
	Username    string `json:"username" validate:"required,max=50"`
	Email       string `json:"email" validate:"required,email,max=100"`
	FirstName   string `json:"firstName" validate:"max=50"`
	LastName    string `json:"lastName" validate:"max=50"`
	PhoneNumber string `json:"phoneNumber" validate:"max=20"`
}

// UpdateUserRequest is the body of PUT /api/users/{id}. ID must repeat the path id.
type UpdateUserRequest struct {
	ID          uuid.UUID `json:"id"`
	Username    string    `json:"username" validate:"required,max=50"`
	Email       string    `json:"email" validate:"required,email,max=100"`
	FirstName   string    `json:"firstName" validate:"max=50"`
	LastName    string    `json:"lastName" validate:"max=50"`
	PhoneNumber string    `json:"phoneNumber" validate:"max=20"`
}

// UpdatePasswordRequest is the body of POST /api/users/update-password.
type UpdatePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required"`
}

// ConfirmEmailRequest is the body of POST /api/users/confirm-email.
type ConfirmEmailRequest struct {
	Email string `json:"email" validate:"required,email"`
	Token string `json:"token" validate:"required"`
}

// ResetPasswordRequest is the body of POST /api/users/reset-password.
type ResetPasswordRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required"`
}

// EmailRequest is the body of the send-*-email endpoints. It accepts either a bare
// JSON string or an object with an "email" field.
type EmailRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// UnmarshalJSON implements json.Unmarshaler.
func (r *EmailRequest) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '"' {
		return errors.WithStack(json.Unmarshal(trimmed, &r.Email))
	}

	var body struct {
		Email string `json:"email"`
	}
	if err := json.Unmarshal(trimmed, &body); err != nil {
		return errors.WithStack(err)
	}
	r.Email = body.Email

	return nil
}

// UserResponse is the outward representation of a user. The password hash is never included.
type UserResponse struct {
	ID             uuid.UUID  `json:"id"`
	Username       string     `json:"username"`
	Email          string     `json:"email"`
	FirstName      string     `json:"firstName"`
	LastName       string     `json:"lastName"`
	PhoneNumber    string     `json:"phoneNumber"`
	EmailConfirmed bool       `json:"emailConfirmed"`
	CreatedAt      time.Time  `json:"createdAt"`
	CreatedBy      string     `json:"createdBy"`
	ModifiedAt     *time.Time `json:"modifiedAt,omitempty"`
	ModifiedBy     string     `json:"modifiedBy,omitempty"`
}

func newUserResponse(user *entity.User) *UserResponse {
	return &UserResponse{
		ID:             user.ID,
		Username:       user.Username,
		Email:          user.Email,
		FirstName:      user.FirstName,
		LastName:       user.LastName,
		PhoneNumber:    user.PhoneNumber,
		EmailConfirmed: user.EmailConfirmed,
		CreatedAt:      user.CreatedAt,
		CreatedBy:      user.CreatedBy,
		ModifiedAt:     user.ModifiedAt,
		ModifiedBy:     user.ModifiedBy,
	}
}

func newUserResponses(users []*entity.User) []*UserResponse {
	out := make([]*UserResponse, 0, len(users))
	for _, user := range users {
		out = append(out, newUserResponse(user))
	}

	return out
}

// LoginResponse carries the access token issued on login.
type LoginResponse struct {
	Token     string        `json:"token"`
	ExpiresAt time.Time     `json:"expiresAt"`
	User      *UserResponse `json:"user"`
}

// EmailTokenResponse pairs an email with the verification token generated for it.
type EmailTokenResponse struct {
	Email string `json:"email"`
	Token string `json:"token"`
}
