package entity

import (
	"database/sql"
	"time"
)

type User struct {
	ID           uint64
	Username     string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    sql.NullTime
}

// WithoutPassword returns a copy of the user with the password hash cleared.
func (u *User) WithoutPassword() *User {
	if u == nil {
		return nil
	}
	clone := *u
	clone.PasswordHash = ""
	return &clone
}

// RefreshToken is the single refresh token row a user may own. User is only
// populated by lookups that join the owner.
type RefreshToken struct {
	ID        uint64
	UserID    uint64
	Value     string
	ExpiresAt time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
	User      *User
}
