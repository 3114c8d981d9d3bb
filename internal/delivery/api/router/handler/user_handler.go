package handler

import (
	"log/slog"
	"net/http"

	"identity/internal/delivery/api/middleware"
	"identity/internal/delivery/api/response"
	domainerrors "identity/internal/domain/errors"
	"identity/internal/errors"
	"identity/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

const usersBasePath = "/api/users/"

// UserHandlerParams holds dependencies for UserHandler, injected by Fx.
type UserHandlerParams struct {
	fx.In

	UserUC usecase.UserUsecase
	Logger *slog.Logger
}

// UserHandler holds dependencies for user-related handlers.
type UserHandler struct {
	uc     usecase.UserUsecase
	logger *slog.Logger
}

// NewUserHandler is the constructor for UserHandler.
func NewUserHandler(params UserHandlerParams) *UserHandler {
	return &UserHandler{
		uc:     params.UserUC,
		logger: params.Logger,
	}
}

// ListUsers returns every live user.
func (h *UserHandler) ListUsers(c echo.Context) error {
	users, err := h.uc.ListUsers(c.Request().Context(), middleware.ActorOf(c))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newUserResponses(users))
}

// GetUser returns the user identified by the path id.
func (h *UserHandler) GetUser(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	user, err := h.uc.GetUser(c.Request().Context(), middleware.ActorOf(c), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newUserResponse(user))
}

// Register creates a new account and answers 201 with the Location of the new user.
func (h *UserHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.uc.Register(c.Request().Context(), middleware.ActorOf(c), req.toInput())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Created(c, usersBasePath+user.ID.String(), newUserResponse(user))
}

// Login exchanges credentials for an access token.
func (h *UserHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	output, err := h.uc.Login(c.Request().Context(), &usecase.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, &LoginResponse{
		Token:     output.Token,
		ExpiresAt: output.ExpiresAt,
		User:      newUserResponse(output.User),
	})
}

// GetProfile returns the authenticated user's own account.
func (h *UserHandler) GetProfile(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return domainerrors.ErrUnauthorized
	}

	user, err := h.uc.GetProfile(c.Request().Context(), middleware.ActorOf(c), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newUserResponse(user))
}

// UpdateProfile changes the authenticated user's own account.
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return domainerrors.ErrUnauthorized
	}

	var req UpdateProfileRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	err := h.uc.UpdateProfile(c.Request().Context(), middleware.ActorOf(c), userID, &usecase.UpdateProfileInput{
		Username:    req.Username,
		Email:       req.Email,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.NoContent(c)
}

// UpdateUser replaces the mutable fields of the user identified by the path id.
func (h *UserHandler) UpdateUser(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req UpdateUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	err = h.uc.UpdateUser(c.Request().Context(), middleware.ActorOf(c), id, &usecase.UpdateUserInput{
		ID:          req.ID,
		Username:    req.Username,
		Email:       req.Email,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.NoContent(c)
}

// DeleteUser soft deletes the user identified by the path id.
func (h *UserHandler) DeleteUser(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.uc.DeleteUser(c.Request().Context(), middleware.ActorOf(c), id); err != nil {
		return errors.WithStack(err)
	}

	return response.NoContent(c)
}

// UpdatePassword changes the authenticated user's password.
func (h *UserHandler) UpdatePassword(c echo.Context) error {
	var req UpdatePasswordRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	err := h.uc.UpdatePassword(c.Request().Context(), middleware.ActorOf(c), &usecase.UpdatePasswordInput{
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.NoContent(c)
}

// SendConfirmationEmail generates an email confirmation token.
func (h *UserHandler) SendConfirmationEmail(c echo.Context) error {
	var req EmailRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	output, err := h.uc.SendConfirmationEmail(c.Request().Context(), req.Email)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, &EmailTokenResponse{Email: output.Email, Token: output.Token})
}

// ConfirmEmail marks the user's email address as confirmed.
func (h *UserHandler) ConfirmEmail(c echo.Context) error {
	var req ConfirmEmailRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	err := h.uc.ConfirmEmail(c.Request().Context(), &usecase.ConfirmEmailInput{
		Email: req.Email,
		Token: req.Token,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"email": req.Email})
}

// SendResetPasswordEmail generates a password reset token.
func (h *UserHandler) SendResetPasswordEmail(c echo.Context) error {
	var req EmailRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	output, err := h.uc.SendResetPasswordEmail(c.Request().Context(), req.Email)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, &EmailTokenResponse{Email: output.Email, Token: output.Token})
}

// ResetPassword sets a new password for the account registered under the email.
func (h *UserHandler) ResetPassword(c echo.Context) error {
	var req ResetPasswordRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	err := h.uc.ResetPassword(c.Request().Context(), &usecase.ResetPasswordInput{
		Email:       req.Email,
		Token:       req.Token,
		NewPassword: req.NewPassword,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"email": req.Email})
}

func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return domainerrors.ErrBadRequest.WithDetails("invalid request body")
	}

	return errors.WithStack(c.Validate(req))
}

func pathID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, domainerrors.ErrBadRequest.WithDetails("id must be a UUID")
	}

	return id, nil
}
