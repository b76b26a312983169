package service

import (
	"context"

	"github.com/vibast-solutions/ms-go-accounts/app/entity"
)

type UserService interface {
	GetUser(ctx context.Context, id uint64) (*entity.User, error)
	FindByUsername(ctx context.Context, username string) (*entity.User, error)
}

type userService struct {
	users userFinder
}

func NewUserService(users userFinder) UserService {
	return &userService{users: users}
}

func (s *userService) GetUser(ctx context.Context, id uint64) (*entity.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user.WithoutPassword(), nil
}

// FindByUsername returns nil without error when no account has the name.
func (s *userService) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return user.WithoutPassword(), nil
}
