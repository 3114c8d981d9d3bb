package repository

import (
	"identity/internal/domain/entity"
	domainerrors "identity/internal/domain/errors"
)

// ErrUserNotFound is returned when a user is not found. It matches ErrNotFound.
var ErrUserNotFound = domainerrors.ErrUserNotFound

// Filterable user fields.
const (
	UserFieldID             = "id"
	UserFieldUsername       = "username"
	UserFieldEmail          = "email"
	UserFieldFirstName      = "firstName"
	UserFieldLastName       = "lastName"
	UserFieldPhoneNumber    = "phoneNumber"
	UserFieldEmailConfirmed = "emailConfirmed"
)

// UserRepository defines the standard operations for user persistence.
// The application layer will depend on this interface, not the concrete implementation.
type UserRepository interface {
	Repository[*entity.User]
}
