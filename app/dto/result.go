package dto

import "github.com/vibast-solutions/ms-go-accounts/app/entity"

// SessionResult is returned by operations that (re)issue a token pair.
// RefreshToken is empty when no refresh token could be generated; User is
// nil for operations that do not echo the account back.
type SessionResult struct {
	AccessToken  string
	RefreshToken string
	User         *entity.User
}

type AccessTokenResult struct {
	AccessToken string
}
