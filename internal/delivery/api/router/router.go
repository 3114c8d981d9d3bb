// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"identity/internal/delivery/api/middleware"
	"identity/internal/delivery/api/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	UserHandler    *handler.UserHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	userHandler    *handler.UserHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		userHandler:    params.UserHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	users := e.Group("/api/users")
	auth := r.authMiddleware.Authenticate

	// Anonymous routes
	{
		users.POST("/register", r.userHandler.Register)
		users.POST("/login", r.userHandler.Login)
		users.POST("/send-confirmation-email", r.userHandler.SendConfirmationEmail)
		users.POST("/confirm-email", r.userHandler.ConfirmEmail)
		users.POST("/send-reset-password-email", r.userHandler.SendResetPasswordEmail)
		users.POST("/reset-password", r.userHandler.ResetPassword)
	}

	// Authenticated routes. Static paths take precedence over /:id in echo's router.
	{
		users.GET("", r.userHandler.ListUsers, auth)
		users.GET("/", r.userHandler.ListUsers, auth)
		users.GET("/profile", r.userHandler.GetProfile, auth)
		users.PUT("/profile", r.userHandler.UpdateProfile, auth)
		users.POST("/update-password", r.userHandler.UpdatePassword, auth)
		users.GET("/:id", r.userHandler.GetUser, auth)
		users.PUT("/:id", r.userHandler.UpdateUser, auth)
		users.DELETE("/:id", r.userHandler.DeleteUser, auth)
	}
}
