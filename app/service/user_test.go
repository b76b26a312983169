package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/vibast-solutions/ms-go-accounts/app/repository"
	"github.com/vibast-solutions/ms-go-accounts/app/service"

	"github.com/DATA-DOG/go-sqlmock"
)

func newUserServiceWithMock(t *testing.T) (service.UserService, sqlmock.Sqlmock, func()) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	return service.NewUserService(repository.NewUserRepository(db)), mock, func() { _ = db.Close() }
}

func TestUserService_GetUser(t *testing.T) {
	svc, mock, cleanup := newUserServiceWithMock(t)
	defer cleanup()

	mock.ExpectQuery(findByIDQuery).
		WithArgs(uint64(1)).
		WillReturnRows(sqlmock.NewRows(userColumns).AddRow(uint64(1), "alice", "hash", fixedNow, fixedNow, nil))

	user, err := svc.GetUser(context.Background(), 1)
	if err != nil {
		t.Fatalf("get user failed: %v", err)
	}
	if user.Username != "alice" || user.PasswordHash != "" {
		t.Fatalf("unexpected user: %+v", user)
	}
}

func TestUserService_GetUser_NotFound(t *testing.T) {
	svc, mock, cleanup := newUserServiceWithMock(t)
	defer cleanup()

	mock.ExpectQuery(findByIDQuery).
		WithArgs(uint64(9)).
		WillReturnRows(sqlmock.NewRows(userColumns))

	if _, err := svc.GetUser(context.Background(), 9); !errors.Is(err, service.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserService_FindByUsername(t *testing.T) {
	svc, mock, cleanup := newUserServiceWithMock(t)
	defer cleanup()

	mock.ExpectQuery(findByUsernameQuery).
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows(userColumns).AddRow(uint64(1), "alice", "hash", fixedNow, fixedNow, nil))
	mock.ExpectQuery(findByUsernameQuery).
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows(userColumns))

	user, err := svc.FindByUsername(context.Background(), "alice")
	if err != nil || user == nil || user.PasswordHash != "" {
		t.Fatalf("unexpected result: %+v %v", user, err)
	}

	missing, err := svc.FindByUsername(context.Background(), "ghost")
	if err != nil {
		t.Fatalf("expected no error for missing user, got %v", err)
	}
	if missing != nil {
		t.Fatalf("expected nil user, got %+v", missing)
	}
}
