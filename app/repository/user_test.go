package repository_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/vibast-solutions/ms-go-accounts/app/entity"
	"github.com/vibast-solutions/ms-go-accounts/app/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
)

const (
	insertUserQuery     = `(?s)INSERT INTO users \(username, password_hash, created_at, updated_at\)\s+VALUES \(\?, \?, \?, \?\)`
	updateUserQuery     = `(?s)UPDATE users SET\s+username = \?,\s+password_hash = \?,\s+updated_at = \?\s+WHERE id = \?`
	findByUsernameQuery = `(?s)SELECT id, username, password_hash, created_at, updated_at, deleted_at\s+FROM users WHERE username = \? AND deleted_at IS NULL`
	findByIDQuery       = `(?s)SELECT id, username, password_hash, created_at, updated_at, deleted_at\s+FROM users WHERE id = \? AND deleted_at IS NULL`
)

var userColumns = []string{
	"id",
	"username",
	"password_hash",
	"created_at",
	"updated_at",
	"deleted_at",
}

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock, func()) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	return db, mock, func() { _ = db.Close() }
}

func TestUserRepository_Create(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()

	repo := repository.NewUserRepository(db)
	now := time.Now()
	user := &entity.User{
		Username:     "alice",
		PasswordHash: "hash",
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	mock.ExpectExec(insertUserQuery).
		WithArgs(user.Username, user.PasswordHash, user.CreatedAt, user.UpdatedAt).
		WillReturnResult(sqlmock.NewResult(7, 1))

	if err := repo.Create(context.Background(), user); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if user.ID != 7 {
		t.Fatalf("expected ID 7, got %d", user.ID)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUserRepository_Create_DuplicateUsername(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()

	repo := repository.NewUserRepository(db)
	now := time.Now()
	user := &entity.User{Username: "alice", PasswordHash: "hash", CreatedAt: now, UpdatedAt: now}

	mock.ExpectExec(insertUserQuery).
		WithArgs(user.Username, user.PasswordHash, user.CreatedAt, user.UpdatedAt).
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'alice' for key 'uq_users_username'"})

	err := repo.Create(context.Background(), user)
	if !errors.Is(err, repository.ErrDuplicateUsername) {
		t.Fatalf("expected ErrDuplicateUsername, got %v", err)
	}
	if user.ID != 0 {
		t.Fatalf("expected ID to stay unset, got %d", user.ID)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUserRepository_Create_OtherErrorPassesThrough(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()

	repo := repository.NewUserRepository(db)
	dbErr := &mysql.MySQLError{Number: 1205, Message: "Lock wait timeout exceeded"}

	mock.ExpectExec(insertUserQuery).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnError(dbErr)

	err := repo.Create(context.Background(), &entity.User{Username: "alice"})
	if errors.Is(err, repository.ErrDuplicateUsername) {
		t.Fatalf("did not expect ErrDuplicateUsername")
	}
	if !errors.Is(err, dbErr) {
		t.Fatalf("expected original error, got %v", err)
	}
}

func TestUserRepository_FindByUsername(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()

	repo := repository.NewUserRepository(db)
	now := time.Now()

	mock.ExpectQuery(findByUsernameQuery).
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows(userColumns).AddRow(uint64(1), "alice", "hash", now, now, nil))

	user, err := repo.FindByUsername(context.Background(), "alice")
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if user == nil || user.ID != 1 || user.Username != "alice" || user.PasswordHash != "hash" {
		t.Fatalf("unexpected user: %+v", user)
	}
	if user.DeletedAt.Valid {
		t.Fatalf("expected deleted_at to be NULL")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUserRepository_FindByUsername_NotFound(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()

	repo := repository.NewUserRepository(db)

	mock.ExpectQuery(findByUsernameQuery).
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows(userColumns))

	user, err := repo.FindByUsername(context.Background(), "ghost")
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if user != nil {
		t.Fatalf("expected nil user, got %+v", user)
	}
}

func TestUserRepository_FindByID(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()

	repo := repository.NewUserRepository(db)
	now := time.Now()

	mock.ExpectQuery(findByIDQuery).
		WithArgs(uint64(3)).
		WillReturnRows(sqlmock.NewRows(userColumns).AddRow(uint64(3), "bob", "hash", now, now, nil))

	user, err := repo.FindByID(context.Background(), 3)
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if user == nil || user.Username != "bob" {
		t.Fatalf("unexpected user: %+v", user)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUserRepository_FindByID_QueryError(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()

	repo := repository.NewUserRepository(db)

	mock.ExpectQuery(findByIDQuery).
		WithArgs(uint64(3)).
		WillReturnError(errors.New("connection reset"))

	user, err := repo.FindByID(context.Background(), 3)
	if err == nil {
		t.Fatalf("expected error")
	}
	if user != nil {
		t.Fatalf("expected nil user on error")
	}
}

func TestUserRepository_Update(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()

	repo := repository.NewUserRepository(db)
	user := &entity.User{ID: 1, Username: "alice2", PasswordHash: "newhash"}

	mock.ExpectExec(updateUserQuery).
		WithArgs("alice2", "newhash", sqlmock.AnyArg(), uint64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Update(context.Background(), user); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if user.UpdatedAt.IsZero() {
		t.Fatalf("expected updated_at to be set")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUserRepository_Update_DuplicateUsername(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()

	repo := repository.NewUserRepository(db)

	mock.ExpectExec(updateUserQuery).
		WithArgs("taken", "hash", sqlmock.AnyArg(), uint64(1)).
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})

	err := repo.Update(context.Background(), &entity.User{ID: 1, Username: "taken", PasswordHash: "hash"})
	if !errors.Is(err, repository.ErrDuplicateUsername) {
		t.Fatalf("expected ErrDuplicateUsername, got %v", err)
	}
}
