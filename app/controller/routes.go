package controller

import (
	"github.com/vibast-solutions/ms-go-accounts/app/middleware"

	"github.com/labstack/echo/v4"
)

func RegisterRoutes(e *echo.Echo, authController *AuthController, userController *UserController, authMiddleware *middleware.AuthMiddleware) {
	auth := e.Group("/auth")
	auth.POST("/signup", authController.Signup)
	auth.POST("/login", authController.Login)
	auth.POST("/validate-token", authController.ValidateToken)

	authProtected := auth.Group("")
	authProtected.Use(authMiddleware.RequireAuth)
	authProtected.POST("/logout", authController.Logout)
	authProtected.POST("/reset-password", authController.ResetPassword)
	authProtected.POST("/new-access-token", authController.NewAccessToken)

	users := e.Group("/users", authMiddleware.RequireAuth)
	users.GET("", userController.FindUser)
	users.GET("/:id", userController.GetUser)
	users.PUT("/:id/username", userController.UpdateUsername)
}
