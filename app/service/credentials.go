package service

import (
	"context"

	"github.com/vibast-solutions/ms-go-accounts/app/entity"
)

type userFinder interface {
	FindByUsername(ctx context.Context, username string) (*entity.User, error)
	FindByID(ctx context.Context, id uint64) (*entity.User, error)
}

// CredentialValidator checks a password against the stored hash. A missing
// user and a wrong password both yield (nil, nil); only store failures are
// errors.
type CredentialValidator struct {
	users  userFinder
	hasher *PasswordHasher
}

func NewCredentialValidator(users userFinder, hasher *PasswordHasher) *CredentialValidator {
	return &CredentialValidator{users: users, hasher: hasher}
}

func (v *CredentialValidator) Validate(ctx context.Context, username, password string) (*entity.User, error) {
	user, err := v.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return v.check(user, password), nil
}

func (v *CredentialValidator) ValidateID(ctx context.Context, id uint64, password string) (*entity.User, error) {
	user, err := v.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return v.check(user, password), nil
}

func (v *CredentialValidator) check(user *entity.User, password string) *entity.User {
	if user == nil {
		v.hasher.VerifyMissing(password)
		return nil
	}
	if !v.hasher.Verify(password, user.PasswordHash) {
		return nil
	}
	return user.WithoutPassword()
}
