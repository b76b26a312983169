package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/vibast-solutions/ms-go-accounts/app/entity"
)

type RefreshTokenRepository struct {
	db DBTX
}

func NewRefreshTokenRepository(db DBTX) *RefreshTokenRepository {
	return &RefreshTokenRepository{db: db}
}

// Upsert writes the user's single refresh token row, replacing any previous
// value and expiration.
func (r *RefreshTokenRepository) Upsert(ctx context.Context, token *entity.RefreshToken) error {
	query := `
		INSERT INTO refresh_tokens (user_id, value, expires_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
			value = VALUES(value),
			expires_at = VALUES(expires_at),
			updated_at = VALUES(updated_at)
	`
	_, err := r.db.ExecContext(ctx, query,
		token.UserID,
		token.Value,
		token.ExpiresAt,
		token.CreatedAt,
		token.UpdatedAt,
	)
	return err
}

// FindActive returns the user's token if value matches and it expires after
// now, with its owner joined. It returns nil when nothing matches.
func (r *RefreshTokenRepository) FindActive(ctx context.Context, userID uint64, value string, now time.Time) (*entity.RefreshToken, error) {
	query := `
		SELECT rt.id, rt.user_id, rt.value, rt.expires_at, rt.created_at, rt.updated_at,
		       u.id, u.username, u.password_hash, u.created_at, u.updated_at, u.deleted_at
		FROM refresh_tokens rt
		INNER JOIN users u ON u.id = rt.user_id AND u.deleted_at IS NULL
		WHERE rt.user_id = ? AND rt.value = ? AND rt.expires_at > ?
	`
	rt := &entity.RefreshToken{User: &entity.User{}}
	err := r.db.QueryRowContext(ctx, query, userID, value, now).Scan(
		&rt.ID,
		&rt.UserID,
		&rt.Value,
		&rt.ExpiresAt,
		&rt.CreatedAt,
		&rt.UpdatedAt,
		&rt.User.ID,
		&rt.User.Username,
		&rt.User.PasswordHash,
		&rt.User.CreatedAt,
		&rt.User.UpdatedAt,
		&rt.User.DeletedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return rt, nil
}

// Revoke tombstones the user's token: an empty value is never issued, and
// the expiration is moved to now.
func (r *RefreshTokenRepository) Revoke(ctx context.Context, userID uint64, now time.Time) error {
	query := `UPDATE refresh_tokens SET value = '', expires_at = ?, updated_at = ? WHERE user_id = ?`
	_, err := r.db.ExecContext(ctx, query, now, now, userID)
	return err
}

func (r *RefreshTokenRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	query := `DELETE FROM refresh_tokens WHERE expires_at < ?`
	result, err := r.db.ExecContext(ctx, query, before)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
