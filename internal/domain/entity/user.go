package entity

// User is the account of a person known to the identity service.
type User struct {
	Base

	Username       string // Unique login name across all live users.
	Email          string // Unique contact address across all live users, used to log in.
	PasswordHash   string // bcrypt hash of the password. The raw password is never stored.
	FirstName      string
	LastName       string
	PhoneNumber    string
	EmailConfirmed bool // Set once the user confirmed their email address.
}

// AccountState describes where a user is in the credential lifecycle.
type AccountState string

const (
	// AccountUnconfirmed is a registered account whose email is not confirmed yet.
	AccountUnconfirmed AccountState = "unconfirmed"
	// AccountConfirmed is a registered account with a confirmed email.
	AccountConfirmed AccountState = "confirmed"
)

// State reports the lifecycle state of the account.
func (u *User) State() AccountState {
	if u.EmailConfirmed {
		return AccountConfirmed
	}

	return AccountUnconfirmed
}
