package controller

import (
	"errors"
	"net/http"

	"github.com/vibast-solutions/ms-go-accounts/app/service"
)

// errorStatus maps a service error to the HTTP status and message returned
// to the client. Unknown errors are reported as a generic 500.
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrUsernameTaken):
		return http.StatusConflict, service.ErrUsernameTaken.Error()
	case errors.Is(err, service.ErrWeakPassword):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized, service.ErrInvalidCredentials.Error()
	case errors.Is(err, service.ErrInvalidRefreshToken):
		return http.StatusUnauthorized, service.ErrInvalidRefreshToken.Error()
	case errors.Is(err, service.ErrInvalidToken):
		return http.StatusUnauthorized, service.ErrInvalidToken.Error()
	case errors.Is(err, service.ErrForbiddenUser):
		return http.StatusUnauthorized, service.ErrForbiddenUser.Error()
	case errors.Is(err, service.ErrUserNotFound):
		return http.StatusNotFound, service.ErrUserNotFound.Error()
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}
