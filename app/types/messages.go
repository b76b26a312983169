package types

import "time"

// Request and response messages shared by the HTTP and gRPC transports.

type SignupRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (r *SignupRequest) GetUsername() string {
	if r == nil {
		return ""
	}
	return r.Username
}

func (r *SignupRequest) GetPassword() string {
	if r == nil {
		return ""
	}
	return r.Password
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (r *LoginRequest) GetUsername() string {
	if r == nil {
		return ""
	}
	return r.Username
}

func (r *LoginRequest) GetPassword() string {
	if r == nil {
		return ""
	}
	return r.Password
}

type LogoutRequest struct{}

type ResetPasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

func (r *ResetPasswordRequest) GetOldPassword() string {
	if r == nil {
		return ""
	}
	return r.OldPassword
}

func (r *ResetPasswordRequest) GetNewPassword() string {
	if r == nil {
		return ""
	}
	return r.NewPassword
}

type NewAccessTokenRequest struct {
	RefreshToken string `json:"refreshToken"`
}

func (r *NewAccessTokenRequest) GetRefreshToken() string {
	if r == nil {
		return ""
	}
	return r.RefreshToken
}

type UpdateUsernameRequest struct {
	Username string `json:"username"`
}

func (r *UpdateUsernameRequest) GetUsername() string {
	if r == nil {
		return ""
	}
	return r.Username
}

type ValidateTokenRequest struct {
	AccessToken string `json:"accessToken"`
}

func (r *ValidateTokenRequest) GetAccessToken() string {
	if r == nil {
		return ""
	}
	return r.AccessToken
}

type UserResponse struct {
	ID        uint64    `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type SessionResponse struct {
	AccessToken  string        `json:"accessToken"`
	RefreshToken string        `json:"refreshToken,omitempty"`
	User         *UserResponse `json:"user,omitempty"`
}

type AccessTokenResponse struct {
	AccessToken string `json:"accessToken"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ValidateTokenResponse struct {
	Valid    bool   `json:"valid"`
	Sub      uint64 `json:"sub,omitempty"`
	Username string `json:"username,omitempty"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
