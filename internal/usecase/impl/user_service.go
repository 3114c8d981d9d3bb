// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"

	deliverycontext "identity/internal/delivery/context"
	"identity/internal/domain/entity"
	domainerrors "identity/internal/domain/errors"
	"identity/internal/domain/repository"
	"identity/internal/domain/service"
	"identity/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// userService implements the UserUsecase interface.
type userService struct {
	txManager      repository.TransactionManager
	userRepo       repository.UserRepository
	hasher         service.PasswordHasher
	tokenService   service.TokenService
	tokenGenerator service.VerificationTokenGenerator
	logger         *slog.Logger
}

// UserServiceParams holds dependencies for UserService, injected by Fx.
type UserServiceParams struct {
	fx.In

	TxManager      repository.TransactionManager
	UserRepo       repository.UserRepository
	Hasher         service.PasswordHasher
	TokenService   service.TokenService
	TokenGenerator service.VerificationTokenGenerator
	Logger         *slog.Logger
}

// NewUserService is the constructor for userService. It receives all dependencies as interfaces.
func NewUserService(params UserServiceParams) usecase.UserUsecase {
	return &userService{
		txManager:      params.TxManager,
		userRepo:       params.UserRepo,
		hasher:         params.Hasher,
		tokenService:   params.TokenService,
		tokenGenerator: params.TokenGenerator,
		logger:         params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *userService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ListUsers returns every live user.
func (srv *userService) ListUsers(ctx context.Context, actor entity.Actor) ([]*entity.User, error) {
	ctx = entity.ContextWithActor(ctx, actor)

	users, err := srv.userRepo.GetAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list users")
	}

	return users, nil
}

// GetUser returns a single live user.
func (srv *userService) GetUser(ctx context.Context, actor entity.Actor, id uuid.UUID) (*entity.User, error) {
	ctx = entity.ContextWithActor(ctx, actor)

	user, err := srv.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get user")
	}

	return user, nil
}

// Register creates a new unconfirmed account. The username/email pre-check gives a
// friendly answer in the common case; the unique indexes decide concurrent races.
func (srv *userService) Register(ctx context.Context, actor entity.Actor, input *usecase.RegisterInput) (*entity.User, error) {
	ctx = entity.ContextWithActor(ctx, actor)
	srv.log(ctx).Info("Starting registration", slog.String("username", input.Username), slog.String("email", input.Email))

	if err := srv.hasher.ValidatePasswordStrength(input.Password); err != nil {
		return nil, errors.Wrap(err, "password does not meet policy")
	}

	hash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		return nil, errors.Wrap(err, "failed to hash password")
	}

	newUser := &entity.User{
		Base:         entity.NewBase(),
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hash,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		PhoneNumber:  input.PhoneNumber,
	}

	var created *entity.User
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		existing, err := userRepo.Get(ctx, repository.Or(
			repository.Eq(repository.UserFieldEmail, input.Email),
			repository.Eq(repository.UserFieldUsername, input.Username),
		))
		if err != nil {
			return errors.Wrap(err, "failed to check existing users")
		}
		if len(existing) > 0 {
			return domainerrors.ErrUserAlreadyExists.WrapMessage("email or username already registered")
		}

		created, err = userRepo.Add(ctx, newUser)
		if errors.Is(err, repository.ErrConflict) {
			return domainerrors.ErrUserAlreadyExists.WrapMessage(err.Error())
		}
		if err != nil {
			return errors.Wrap(err, "failed to create user")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Registration failed", slog.String("email", input.Email), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute user registration transaction")
	}

	srv.log(ctx).Info("Registration completed", slog.Any("userID", created.ID))

	return created, nil
}

// Login verifies the credentials and issues an access token.
func (srv *userService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	ctx = entity.ContextWithActor(ctx, entity.SystemActor)

	users, err := srv.userRepo.Get(ctx, repository.Eq(repository.UserFieldEmail, input.Email))
	if err != nil {
		return nil, errors.Wrap(err, "failed to look up user")
	}
	if len(users) == 0 {
		srv.log(ctx).Info("Login rejected: unknown email", slog.String("email", input.Email))

		return nil, domainerrors.ErrInvalidCredentials
	}

	user := users[0]
	if !srv.hasher.Check(input.Password, user.PasswordHash) {
		srv.log(ctx).Info("Login rejected: wrong password", slog.Any("userID", user.ID))

		return nil, domainerrors.ErrInvalidCredentials
	}

	token, expiresAt, err := srv.tokenService.Issue(user)
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue token")
	}

	srv.log(ctx).Info("Login succeeded", slog.Any("userID", user.ID))

	return &usecase.LoginOutput{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      user,
	}, nil
}

// GetProfile returns the actor's own account.
func (srv *userService) GetProfile(ctx context.Context, actor entity.Actor, userID uuid.UUID) (*entity.User, error) {
	if err := requireOwner(actor, userID); err != nil {
		return nil, err
	}

	return srv.GetUser(ctx, actor, userID)
}

// UpdateProfile replaces the names, phone number, username and email of the actor's own account.
func (srv *userService) UpdateProfile(ctx context.Context, actor entity.Actor, userID uuid.UUID, input *usecase.UpdateProfileInput) error {
	if err := requireOwner(actor, userID); err != nil {
		return err
	}

	return srv.modifyUser(entity.ContextWithActor(ctx, actor), userID, "update profile", func(user *entity.User) error {
		user.Username = input.Username
		user.Email = input.Email
		user.FirstName = input.FirstName
		user.LastName = input.LastName
		user.PhoneNumber = input.PhoneNumber

		return nil
	})
}

// UpdateUser replaces the mutable fields of any user. The body id must match the path id.
func (srv *userService) UpdateUser(ctx context.Context, actor entity.Actor, pathID uuid.UUID, input *usecase.UpdateUserInput) error {
	if input.ID != pathID {
		return domainerrors.ErrIDMismatch.WithDetails("path " + pathID.String() + ", body " + input.ID.String())
	}

	return srv.modifyUser(entity.ContextWithActor(ctx, actor), pathID, "update user", func(user *entity.User) error {
		user.Username = input.Username
		user.Email = input.Email
		user.FirstName = input.FirstName
		user.LastName = input.LastName
		user.PhoneNumber = input.PhoneNumber

		return nil
	})
}

// DeleteUser soft deletes a live user.
func (srv *userService) DeleteUser(ctx context.Context, actor entity.Actor, id uuid.UUID) error {
	ctx = entity.ContextWithActor(ctx, actor)

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		user, err := userRepo.GetByID(ctx, id)
		if err != nil {
			return errors.Wrap(err, "failed to load user")
		}

		return userRepo.Delete(ctx, user)
	})
	if err != nil {
		return errors.Wrap(err, "failed to delete user")
	}

	srv.log(ctx).Info("User deleted", slog.Any("userID", id), slog.String("actor", actor.String()))

	return nil
}

// UpdatePassword changes the actor's password after verifying the current one.
func (srv *userService) UpdatePassword(ctx context.Context, actor entity.Actor, input *usecase.UpdatePasswordInput) error {
	userID, ok := actor.UserID()
	if !ok {
		return domainerrors.ErrUnauthorized
	}
	if err := srv.hasher.ValidatePasswordStrength(input.NewPassword); err != nil {
		return errors.Wrap(err, "password does not meet policy")
	}

	return srv.modifyUser(entity.ContextWithActor(ctx, actor), userID, "update password", func(user *entity.User) error {
		if !srv.hasher.Check(input.CurrentPassword, user.PasswordHash) {
			return domainerrors.ErrWrongPassword
		}

		hash, err := srv.hasher.Hash(input.NewPassword)
		if err != nil {
			return errors.Wrap(err, "failed to hash password")
		}
		user.PasswordHash = hash

		return nil
	})
}

// SendConfirmationEmail hands out a confirmation token for the address.
// Nothing is stored or sent.
func (srv *userService) SendConfirmationEmail(ctx context.Context, email string) (*usecase.EmailTokenOutput, error) {
	return srv.issueEmailToken(ctx, email, "confirmation")
}

// ConfirmEmail marks the account owning the address as confirmed.
// The token is not checked against anything.
func (srv *userService) ConfirmEmail(ctx context.Context, input *usecase.ConfirmEmailInput) error {
	ctx = entity.ContextWithActor(ctx, entity.SystemActor)

	return srv.modifyUserByEmail(ctx, input.Email, "confirm email", func(user *entity.User) error {
		user.EmailConfirmed = true

		return nil
	})
}

// SendResetPasswordEmail hands out a password reset token for the address.
// Nothing is stored or sent.
func (srv *userService) SendResetPasswordEmail(ctx context.Context, email string) (*usecase.EmailTokenOutput, error) {
	return srv.issueEmailToken(ctx, email, "reset password")
}

// ResetPassword sets a new password on the account owning the address.
// The token is not checked against anything and confirmation state is kept.
func (srv *userService) ResetPassword(ctx context.Context, input *usecase.ResetPasswordInput) error {
	ctx = entity.ContextWithActor(ctx, entity.SystemActor)

	if err := srv.hasher.ValidatePasswordStrength(input.NewPassword); err != nil {
		return errors.Wrap(err, "password does not meet policy")
	}

	hash, err := srv.hasher.Hash(input.NewPassword)
	if err != nil {
		return errors.Wrap(err, "failed to hash password")
	}

	return srv.modifyUserByEmail(ctx, input.Email, "reset password", func(user *entity.User) error {
		user.PasswordHash = hash

		return nil
	})
}

func (srv *userService) issueEmailToken(ctx context.Context, email, purpose string) (*usecase.EmailTokenOutput, error) {
	token, err := srv.tokenGenerator.Generate()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to generate %s token", purpose)
	}

	srv.log(ctx).Info("Verification token generated", slog.String("purpose", purpose), slog.String("email", email))

	return &usecase.EmailTokenOutput{Email: email, Token: token}, nil
}

// modifyUser loads a live user, applies mutate and persists the result in one transaction.
func (srv *userService) modifyUser(ctx context.Context, id uuid.UUID, op string, mutate func(*entity.User) error) error {
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		user, err := userRepo.GetByID(ctx, id)
		if err != nil {
			return errors.Wrap(err, "failed to load user")
		}

		return srv.applyAndSave(ctx, userRepo, user, mutate)
	})
	if err != nil {
		srv.log(ctx).Warn("User modification failed", slog.String("op", op), slog.Any("userID", id), slog.Any("error", err))

		return errors.Wrapf(err, "failed to %s", op)
	}

	srv.log(ctx).Info("User modified", slog.String("op", op), slog.Any("userID", id))

	return nil
}

// modifyUserByEmail is modifyUser keyed by email address.
func (srv *userService) modifyUserByEmail(ctx context.Context, email, op string, mutate func(*entity.User) error) error {
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		users, err := userRepo.Get(ctx, repository.Eq(repository.UserFieldEmail, email))
		if err != nil {
			return errors.Wrap(err, "failed to look up user")
		}
		if len(users) == 0 {
			return domainerrors.ErrUserNotFound.WrapMessage("no user with email " + email)
		}

		return srv.applyAndSave(ctx, userRepo, users[0], mutate)
	})
	if err != nil {
		srv.log(ctx).Warn("User modification failed", slog.String("op", op), slog.String("email", email), slog.Any("error", err))

		return errors.Wrapf(err, "failed to %s", op)
	}

	srv.log(ctx).Info("User modified", slog.String("op", op), slog.String("email", email))

	return nil
}

func (srv *userService) applyAndSave(ctx context.Context, userRepo repository.UserRepository, user *entity.User, mutate func(*entity.User) error) error {
	if err := mutate(user); err != nil {
		return err
	}

	err := userRepo.Update(ctx, user)
	if errors.Is(err, repository.ErrConflict) {
		return domainerrors.ErrUserAlreadyExists.WrapMessage(err.Error())
	}
	if err != nil {
		return errors.Wrap(err, "failed to save user")
	}

	return nil
}

// requireOwner rejects actors other than the account owner.
func requireOwner(actor entity.Actor, userID uuid.UUID) error {
	actorID, ok := actor.UserID()
	if !ok || actorID != userID {
		return domainerrors.ErrNotResourceOwner
	}

	return nil
}
