package controller

import (
	"net/http"

	"github.com/vibast-solutions/ms-go-accounts/app/middleware"
	"github.com/vibast-solutions/ms-go-accounts/app/service"
	"github.com/vibast-solutions/ms-go-accounts/app/types"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

type AuthController struct {
	sessionService service.SessionService
}

func NewAuthController(sessionService service.SessionService) *AuthController {
	return &AuthController{sessionService: sessionService}
}

func (c *AuthController) Signup(ctx echo.Context) error {
	req, err := types.NewSignupRequestFromContext(ctx)
	if err != nil {
		logrus.WithError(err).Debug("Failed to bind signup request")
		return ctx.JSON(http.StatusBadRequest, types.ErrorResponse{Error: "invalid request body"})
	}

	if err = req.Validate(); err != nil {
		logrus.WithField("username", req.GetUsername()).Debug("Signup validation failed")
		return ctx.JSON(http.StatusBadRequest, types.ErrorResponse{Error: err.Error()})
	}

	logrus.WithField("username", req.GetUsername()).Info("Signup request received")
	result, err := c.sessionService.Signup(ctx.Request().Context(), req.GetUsername(), req.GetPassword())
	if err != nil {
		status, message := errorStatus(err)
		if status == http.StatusInternalServerError {
			logrus.WithError(err).WithField("username", req.GetUsername()).Error("Signup failed")
		} else {
			logrus.WithField("username", req.GetUsername()).Warnf("Signup failed: %s", message)
		}
		return ctx.JSON(status, types.ErrorResponse{Error: message})
	}

	logrus.WithFields(logrus.Fields{
		"user_id":  result.User.ID,
		"username": result.User.Username,
	}).Info("User signed up")

	return ctx.JSON(http.StatusCreated, types.NewSessionResponse(result))
}

func (c *AuthController) Login(ctx echo.Context) error {
	req, err := types.NewLoginRequestFromContext(ctx)
	if err != nil {
		logrus.WithError(err).Debug("Failed to bind login request")
		return ctx.JSON(http.StatusBadRequest, types.ErrorResponse{Error: "invalid request body"})
	}

	if err = req.Validate(); err != nil {
		logrus.WithField("username", req.GetUsername()).Debug("Login validation failed")
		return ctx.JSON(http.StatusBadRequest, types.ErrorResponse{Error: err.Error()})
	}

	logrus.WithField("username", req.GetUsername()).Info("Login request received")
	result, err := c.sessionService.Login(ctx.Request().Context(), req.GetUsername(), req.GetPassword())
	if err != nil {
		status, message := errorStatus(err)
		if status == http.StatusInternalServerError {
			logrus.WithError(err).WithField("username", req.GetUsername()).Error("Login failed")
		} else {
			logrus.WithField("username", req.GetUsername()).Warn("Login failed: invalid credentials")
		}
		return ctx.JSON(status, types.ErrorResponse{Error: message})
	}

	logrus.WithField("user_id", result.User.ID).Info("Login successful")
	return ctx.JSON(http.StatusOK, types.NewSessionResponse(result))
}

func (c *AuthController) ValidateToken(ctx echo.Context) error {
	req, err := types.NewValidateTokenRequestFromContext(ctx)
	if err != nil {
		logrus.WithError(err).Debug("Failed to bind validate token request")
		return ctx.JSON(http.StatusBadRequest, types.ErrorResponse{Error: "invalid request body"})
	}

	if err = req.Validate(); err != nil {
		return ctx.JSON(http.StatusBadRequest, types.ErrorResponse{Error: err.Error()})
	}

	user, err := c.sessionService.ValidateAccessToken(req.GetAccessToken())
	if err != nil {
		logrus.Debug("Token validation failed")
		return ctx.JSON(http.StatusOK, types.ValidateTokenResponse{Valid: false})
	}

	return ctx.JSON(http.StatusOK, types.ValidateTokenResponse{
		Valid:    true,
		Sub:      user.Sub,
		Username: user.Username,
	})
}

func (c *AuthController) Logout(ctx echo.Context) error {
	requestUser, ok := middleware.RequestUser(ctx)
	if !ok {
		logrus.Warn("Logout failed: missing user in context")
		return ctx.JSON(http.StatusUnauthorized, types.ErrorResponse{Error: "unauthorized"})
	}

	logrus.WithField("user_id", requestUser.Sub).Info("Logout request received")
	if err := c.sessionService.Logout(ctx.Request().Context(), requestUser); err != nil {
		logrus.WithError(err).WithField("user_id", requestUser.Sub).Error("Logout failed")
		return ctx.JSON(http.StatusInternalServerError, types.ErrorResponse{Error: "internal server error"})
	}

	logrus.WithField("user_id", requestUser.Sub).Info("Logout successful")
	return ctx.JSON(http.StatusOK, types.MessageResponse{Message: "Logged out successfully"})
}

func (c *AuthController) ResetPassword(ctx echo.Context) error {
	req, err := types.NewResetPasswordRequestFromContext(ctx)
	if err != nil {
		logrus.WithError(err).Debug("Failed to bind reset password request")
		return ctx.JSON(http.StatusBadRequest, types.ErrorResponse{Error: "invalid request body"})
	}

	if err = req.Validate(); err != nil {
		return ctx.JSON(http.StatusBadRequest, types.ErrorResponse{Error: err.Error()})
	}

	requestUser, ok := middleware.RequestUser(ctx)
	if !ok {
		logrus.Warn("Reset password failed: missing user in context")
		return ctx.JSON(http.StatusUnauthorized, types.ErrorResponse{Error: "unauthorized"})
	}

	logrus.WithField("user_id", requestUser.Sub).Info("Reset password request received")
	result, err := c.sessionService.ResetPassword(ctx.Request().Context(), req.GetOldPassword(), req.GetNewPassword(), requestUser)
	if err != nil {
		status, message := errorStatus(err)
		if status == http.StatusInternalServerError {
			logrus.WithError(err).WithField("user_id", requestUser.Sub).Error("Reset password failed")
		} else {
			logrus.WithField("user_id", requestUser.Sub).Warnf("Reset password failed: %s", message)
		}
		return ctx.JSON(status, types.ErrorResponse{Error: message})
	}

	logrus.WithField("user_id", requestUser.Sub).Info("Password reset")
	return ctx.JSON(http.StatusCreated, types.NewSessionResponse(result))
}

func (c *AuthController) NewAccessToken(ctx echo.Context) error {
	req, err := types.NewNewAccessTokenRequestFromContext(ctx)
	if err != nil {
		logrus.WithError(err).Debug("Failed to bind new access token request")
		return ctx.JSON(http.StatusBadRequest, types.ErrorResponse{Error: "invalid request body"})
	}

	if err = req.Validate(); err != nil {
		return ctx.JSON(http.StatusBadRequest, types.ErrorResponse{Error: err.Error()})
	}

	requestUser, ok := middleware.RequestUser(ctx)
	if !ok {
		logrus.Warn("New access token failed: missing user in context")
		return ctx.JSON(http.StatusUnauthorized, types.ErrorResponse{Error: "unauthorized"})
	}

	result, err := c.sessionService.NewAccessToken(ctx.Request().Context(), req.GetRefreshToken(), requestUser)
	if err != nil {
		status, message := errorStatus(err)
		if status == http.StatusInternalServerError {
			logrus.WithError(err).WithField("user_id", requestUser.Sub).Error("New access token failed")
		} else {
			logrus.WithField("user_id", requestUser.Sub).Warn("New access token failed: invalid refresh token")
		}
		return ctx.JSON(status, types.ErrorResponse{Error: message})
	}

	logrus.WithField("user_id", requestUser.Sub).Info("Access token renewed")
	return ctx.JSON(http.StatusOK, types.AccessTokenResponse{AccessToken: result.AccessToken})
}
