package middleware

import (
	"net/http"
	"strings"

	"github.com/vibast-solutions/ms-go-accounts/app/service"
	"github.com/vibast-solutions/ms-go-accounts/app/types"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

const requestUserKey = "user"

type accessTokenValidator interface {
	ValidateAccessToken(tokenString string) (*service.JWTUser, error)
}

type AuthMiddleware struct {
	sessionService accessTokenValidator
}

func NewAuthMiddleware(sessionService accessTokenValidator) *AuthMiddleware {
	return &AuthMiddleware{sessionService: sessionService}
}

func (m *AuthMiddleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
		if authHeader == "" {
			logrus.Debug("Missing authorization header")
			return c.JSON(http.StatusUnauthorized, types.ErrorResponse{Error: "missing authorization header"})
		}

		tokenString, ok := BearerToken(authHeader)
		if !ok {
			logrus.Debug("Invalid authorization header format")
			return c.JSON(http.StatusUnauthorized, types.ErrorResponse{Error: "invalid authorization header format"})
		}

		user, err := m.sessionService.ValidateAccessToken(tokenString)
		if err != nil {
			logrus.Debug("Invalid or expired access token")
			return c.JSON(http.StatusUnauthorized, types.ErrorResponse{Error: "invalid or expired token"})
		}

		c.Set(requestUserKey, *user)

		return next(c)
	}
}

// RequestUser returns the identity stored by RequireAuth.
func RequestUser(c echo.Context) (service.JWTUser, bool) {
	user, ok := c.Get(requestUserKey).(service.JWTUser)
	return user, ok
}

// BearerToken extracts the token from an "Authorization: Bearer <token>"
// value. The scheme is case-insensitive.
func BearerToken(header string) (string, bool) {
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}
	return parts[1], true
}
