package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vibast-solutions/ms-go-accounts/app/dto"
	"github.com/vibast-solutions/ms-go-accounts/app/entity"
	"github.com/vibast-solutions/ms-go-accounts/app/repository"
	"github.com/vibast-solutions/ms-go-accounts/config"

	"github.com/sirupsen/logrus"
)

var (
	ErrUsernameTaken       = errors.New("username already exists")
	ErrUserNotFound        = errors.New("user not found")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	ErrInvalidToken        = errors.New("invalid or expired token")
	ErrForbiddenUser       = errors.New("cannot modify another user")
	ErrWeakPassword        = errors.New("password does not meet policy requirements")
)

type userRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindByUsername(ctx context.Context, username string) (*entity.User, error)
	FindByID(ctx context.Context, id uint64) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
}

type refreshTokenRepository interface {
	Upsert(ctx context.Context, token *entity.RefreshToken) error
	FindActive(ctx context.Context, userID uint64, value string, now time.Time) (*entity.RefreshToken, error)
	Revoke(ctx context.Context, userID uint64, now time.Time) error
}

type SessionService interface {
	Signup(ctx context.Context, username, password string) (*dto.SessionResult, error)
	Login(ctx context.Context, username, password string) (*dto.SessionResult, error)
	Logout(ctx context.Context, requestUser JWTUser) error
	ResetPassword(ctx context.Context, oldPassword, newPassword string, requestUser JWTUser) (*dto.SessionResult, error)
	NewAccessToken(ctx context.Context, refreshToken string, requestUser JWTUser) (*dto.AccessTokenResult, error)
	UpdateUsername(ctx context.Context, id uint64, username string, requestUser JWTUser) (*dto.SessionResult, error)
	ValidateAccessToken(tokenString string) (*JWTUser, error)
}

type SessionServiceOption func(*sessionService)

type sessionService struct {
	userRepo         userRepository
	refreshTokenRepo refreshTokenRepository
	cfg              *config.Config
	hasher           *PasswordHasher
	credentials      *CredentialValidator
	issuer           *AccessTokenIssuer
	tokens           TokenGenerator
	now              func() time.Time
}

func NewSessionService(
	userRepo userRepository,
	refreshTokenRepo refreshTokenRepository,
	cfg *config.Config,
	opts ...SessionServiceOption,
) SessionService {
	hasher := NewPasswordHasher(cfg.Password.BcryptCost)
	svc := &sessionService{
		userRepo:         userRepo,
		refreshTokenRepo: refreshTokenRepo,
		cfg:              cfg,
		hasher:           hasher,
		credentials:      NewCredentialValidator(userRepo, hasher),
		issuer:           NewAccessTokenIssuer(cfg.JWT.Secret, cfg.JWT.AccessTokenTTL),
		tokens:           NewRandomTokenGenerator(cfg.RefreshToken.ByteLength),
		now:              time.Now,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

func WithTokenGenerator(generator TokenGenerator) SessionServiceOption {
	return func(s *sessionService) {
		if generator != nil {
			s.tokens = generator
		}
	}
}

// WithClock replaces the time source for token issuance and expiry checks.
func WithClock(now func() time.Time) SessionServiceOption {
	return func(s *sessionService) {
		if now != nil {
			s.now = now
			s.issuer.now = now
		}
	}
}

func (s *sessionService) Signup(ctx context.Context, username, password string) (*dto.SessionResult, error) {
	if err := s.cfg.Password.Policy.Validate(password); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrWeakPassword, err.Error())
	}

	hashedPassword, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	now := s.now()
	user := &entity.User{
		Username:     username,
		PasswordHash: hashedPassword,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err = s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateUsername) {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}

	return s.issueSession(ctx, user)
}

func (s *sessionService) Login(ctx context.Context, username, password string) (*dto.SessionResult, error) {
	user, err := s.credentials.Validate(ctx, username, password)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	return s.issueSession(ctx, user)
}

func (s *sessionService) Logout(ctx context.Context, requestUser JWTUser) error {
	return s.refreshTokenRepo.Revoke(ctx, requestUser.Sub, s.now())
}

func (s *sessionService) ResetPassword(ctx context.Context, oldPassword, newPassword string, requestUser JWTUser) (*dto.SessionResult, error) {
	user, err := s.credentials.ValidateID(ctx, requestUser.Sub, oldPassword)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if err = s.cfg.Password.Policy.Validate(newPassword); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrWeakPassword, err.Error())
	}

	hashedPassword, err := s.hasher.Hash(newPassword)
	if err != nil {
		return nil, err
	}

	user.PasswordHash = hashedPassword
	if err = s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	result, err := s.issueSession(ctx, user)
	if err != nil {
		return nil, err
	}
	result.User = nil
	return result, nil
}

// NewAccessToken mints an access token for the owner of a live refresh
// token. The refresh token itself is left untouched.
func (s *sessionService) NewAccessToken(ctx context.Context, refreshToken string, requestUser JWTUser) (*dto.AccessTokenResult, error) {
	if refreshToken == "" {
		return nil, ErrInvalidRefreshToken
	}

	token, err := s.refreshTokenRepo.FindActive(ctx, requestUser.Sub, refreshToken, s.now())
	if err != nil {
		return nil, err
	}
	if token == nil || token.User == nil || token.User.ID == 0 {
		return nil, ErrInvalidRefreshToken
	}

	accessToken, err := s.issuer.Issue(JWTUser{Sub: token.User.ID, Username: token.User.Username})
	if err != nil {
		return nil, err
	}

	return &dto.AccessTokenResult{AccessToken: accessToken}, nil
}

func (s *sessionService) UpdateUsername(ctx context.Context, id uint64, username string, requestUser JWTUser) (*dto.SessionResult, error) {
	if requestUser.Sub != id {
		return nil, ErrForbiddenUser
	}

	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	user.Username = username
	if err = s.userRepo.Update(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateUsername) {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}

	return s.issueSession(ctx, user)
}

func (s *sessionService) ValidateAccessToken(tokenString string) (*JWTUser, error) {
	return s.issuer.Verify(tokenString)
}

func (s *sessionService) issueSession(ctx context.Context, user *entity.User) (*dto.SessionResult, error) {
	accessToken, err := s.issuer.Issue(JWTUser{Sub: user.ID, Username: user.Username})
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.issueRefreshToken(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	return &dto.SessionResult{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user.WithoutPassword(),
	}, nil
}

// issueRefreshToken replaces the user's refresh token. A generator failure
// is logged and yields an empty token; a store failure is returned.
func (s *sessionService) issueRefreshToken(ctx context.Context, userID uint64) (string, error) {
	value, err := s.tokens.Generate()
	if err != nil || value == "" {
		logrus.WithError(err).WithField("user_id", userID).Warn("Unable to generate refresh token, continuing without one")
		return "", nil
	}

	now := s.now()
	token := &entity.RefreshToken{
		UserID:    userID,
		Value:     value,
		ExpiresAt: s.cfg.RefreshToken.ExpiresAt(now),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err = s.refreshTokenRepo.Upsert(ctx, token); err != nil {
		return "", err
	}

	return value, nil
}
