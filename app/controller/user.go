package controller

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/vibast-solutions/ms-go-accounts/app/middleware"
	"github.com/vibast-solutions/ms-go-accounts/app/service"
	"github.com/vibast-solutions/ms-go-accounts/app/types"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

type UserController struct {
	userService    service.UserService
	sessionService service.SessionService
}

func NewUserController(userService service.UserService, sessionService service.SessionService) *UserController {
	return &UserController{userService: userService, sessionService: sessionService}
}

func (c *UserController) GetUser(ctx echo.Context) error {
	id, err := parseUserID(ctx)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, types.ErrorResponse{Error: "invalid user id"})
	}

	user, err := c.userService.GetUser(ctx.Request().Context(), id)
	if err != nil {
		status, message := errorStatus(err)
		if status == http.StatusInternalServerError {
			logrus.WithError(err).WithField("user_id", id).Error("Get user failed")
		}
		return ctx.JSON(status, types.ErrorResponse{Error: message})
	}

	return ctx.JSON(http.StatusOK, types.NewUserResponse(user))
}

// FindUser answers with the user or a JSON null when the name is free.
func (c *UserController) FindUser(ctx echo.Context) error {
	username := ctx.QueryParam("username")
	if strings.TrimSpace(username) == "" {
		return ctx.JSON(http.StatusBadRequest, types.ErrorResponse{Error: "username is required"})
	}

	user, err := c.userService.FindByUsername(ctx.Request().Context(), username)
	if err != nil {
		logrus.WithError(err).WithField("username", username).Error("Find user failed")
		return ctx.JSON(http.StatusInternalServerError, types.ErrorResponse{Error: "internal server error"})
	}

	return ctx.JSON(http.StatusOK, types.NewUserResponse(user))
}

func (c *UserController) UpdateUsername(ctx echo.Context) error {
	id, err := parseUserID(ctx)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, types.ErrorResponse{Error: "invalid user id"})
	}

	req, err := types.NewUpdateUsernameRequestFromContext(ctx)
	if err != nil {
		logrus.WithError(err).Debug("Failed to bind update username request")
		return ctx.JSON(http.StatusBadRequest, types.ErrorResponse{Error: "invalid request body"})
	}

	if err = req.Validate(); err != nil {
		return ctx.JSON(http.StatusBadRequest, types.ErrorResponse{Error: err.Error()})
	}

	requestUser, ok := middleware.RequestUser(ctx)
	if !ok {
		logrus.Warn("Update username failed: missing user in context")
		return ctx.JSON(http.StatusUnauthorized, types.ErrorResponse{Error: "unauthorized"})
	}

	logrus.WithFields(logrus.Fields{
		"user_id":      id,
		"requested_by": requestUser.Sub,
	}).Info("Update username request received")

	result, err := c.sessionService.UpdateUsername(ctx.Request().Context(), id, req.GetUsername(), requestUser)
	if err != nil {
		status, message := errorStatus(err)
		if status == http.StatusInternalServerError {
			logrus.WithError(err).WithField("user_id", id).Error("Update username failed")
		} else {
			logrus.WithField("user_id", id).Warnf("Update username failed: %s", message)
		}
		return ctx.JSON(status, types.ErrorResponse{Error: message})
	}

	logrus.WithFields(logrus.Fields{
		"user_id":  id,
		"username": result.User.Username,
	}).Info("Username updated")
	return ctx.JSON(http.StatusOK, types.NewSessionResponse(result))
}

func parseUserID(ctx echo.Context) (uint64, error) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, echo.ErrBadRequest
	}
	return id, nil
}
