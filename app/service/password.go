package service

import (
	"errors"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

type PasswordHasher struct {
	cost int

	dummyOnce sync.Once
	dummyHash []byte
}

// NewPasswordHasher returns a bcrypt hasher. Costs below bcrypt.MinCost fall
// back to bcrypt.DefaultCost.
func NewPasswordHasher(cost int) *PasswordHasher {
	return &PasswordHasher{cost: cost}
}

func (h *PasswordHasher) Hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", fmt.Errorf("%w: password must be at most 72 bytes", ErrWeakPassword)
		}
		return "", err
	}
	return string(hashed), nil
}

func (h *PasswordHasher) Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// VerifyMissing burns one comparison against a throwaway hash so that an
// unknown user costs as much as a wrong password. It always reports false.
func (h *PasswordHasher) VerifyMissing(password string) bool {
	h.dummyOnce.Do(func() {
		hash, err := bcrypt.GenerateFromPassword([]byte("missing-user"), h.cost)
		if err != nil {
			logrus.WithError(err).WithField("cost", h.cost).Warn("Unable to build dummy hash, falling back to default cost")
			hash, err = bcrypt.GenerateFromPassword([]byte("missing-user"), bcrypt.DefaultCost)
		}
		if err != nil {
			logrus.WithError(err).Error("Unable to build dummy hash")
			return
		}
		h.dummyHash = hash
	})
	_ = bcrypt.CompareHashAndPassword(h.dummyHash, []byte(password))
	return false
}
