package types

import (
	"errors"
	"strings"

	"github.com/vibast-solutions/ms-go-accounts/app/dto"
	"github.com/vibast-solutions/ms-go-accounts/app/entity"

	"github.com/labstack/echo/v4"
)

func NewSignupRequestFromContext(ctx echo.Context) (*SignupRequest, error) {
	var body SignupRequest
	if err := ctx.Bind(&body); err != nil {
		return nil, err
	}

	return &body, nil
}

// Validate only checks presence. Password strength is enforced by the
// configured policy in the session service.
func (r *SignupRequest) Validate() error {
	if strings.TrimSpace(r.GetUsername()) == "" || r.GetPassword() == "" {
		return errors.New("username and password are required")
	}

	return nil
}

func NewLoginRequestFromContext(ctx echo.Context) (*LoginRequest, error) {
	var body LoginRequest
	if err := ctx.Bind(&body); err != nil {
		return nil, err
	}

	return &body, nil
}

func (r *LoginRequest) Validate() error {
	if strings.TrimSpace(r.GetUsername()) == "" || r.GetPassword() == "" {
		return errors.New("username and password are required")
	}

	return nil
}

func NewResetPasswordRequestFromContext(ctx echo.Context) (*ResetPasswordRequest, error) {
	var body ResetPasswordRequest
	if err := ctx.Bind(&body); err != nil {
		return nil, err
	}

	return &body, nil
}

func (r *ResetPasswordRequest) Validate() error {
	if r.GetOldPassword() == "" || r.GetNewPassword() == "" {
		return errors.New("oldPassword and newPassword are required")
	}

	return nil
}

func NewNewAccessTokenRequestFromContext(ctx echo.Context) (*NewAccessTokenRequest, error) {
	var body NewAccessTokenRequest
	if err := ctx.Bind(&body); err != nil {
		return nil, err
	}

	return &body, nil
}

func (r *NewAccessTokenRequest) Validate() error {
	if strings.TrimSpace(r.GetRefreshToken()) == "" {
		return errors.New("refreshToken is required")
	}

	return nil
}

func NewUpdateUsernameRequestFromContext(ctx echo.Context) (*UpdateUsernameRequest, error) {
	var body UpdateUsernameRequest
	if err := ctx.Bind(&body); err != nil {
		return nil, err
	}

	return &body, nil
}

func (r *UpdateUsernameRequest) Validate() error {
	if strings.TrimSpace(r.GetUsername()) == "" {
		return errors.New("username is required")
	}

	return nil
}

func NewValidateTokenRequestFromContext(ctx echo.Context) (*ValidateTokenRequest, error) {
	var body ValidateTokenRequest
	if err := ctx.Bind(&body); err != nil {
		return nil, err
	}

	return &body, nil
}

func (r *ValidateTokenRequest) Validate() error {
	if strings.TrimSpace(r.GetAccessToken()) == "" {
		return errors.New("accessToken is required")
	}

	return nil
}

func NewUserResponse(user *entity.User) *UserResponse {
	if user == nil {
		return nil
	}
	return &UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

func NewSessionResponse(result *dto.SessionResult) *SessionResponse {
	return &SessionResponse{
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
		User:         NewUserResponse(result.User),
	}
}
