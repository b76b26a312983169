package grpc

import (
	"context"
	"errors"

	"github.com/vibast-solutions/ms-go-accounts/app/service"
	"github.com/vibast-solutions/ms-go-accounts/app/types"

	"github.com/sirupsen/logrus"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type AuthServer struct {
	sessionService service.SessionService
}

func NewAuthServer(sessionService service.SessionService) *AuthServer {
	return &AuthServer{sessionService: sessionService}
}

func (s *AuthServer) Signup(ctx context.Context, req *types.SignupRequest) (*types.SessionResponse, error) {
	if err := req.Validate(); err != nil {
		logrus.WithField("username", req.GetUsername()).Debug("Signup validation failed (grpc)")
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	logrus.WithField("username", req.GetUsername()).Info("Signup request received (grpc)")
	result, err := s.sessionService.Signup(ctx, req.GetUsername(), req.GetPassword())
	if err != nil {
		return nil, toStatus(err, logrus.WithField("username", req.GetUsername()), "Signup failed (grpc)")
	}

	logrus.WithField("user_id", result.User.ID).Info("User signed up (grpc)")
	return types.NewSessionResponse(result), nil
}

func (s *AuthServer) Login(ctx context.Context, req *types.LoginRequest) (*types.SessionResponse, error) {
	if err := req.Validate(); err != nil {
		logrus.WithField("username", req.GetUsername()).Debug("Login validation failed (grpc)")
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	logrus.WithField("username", req.GetUsername()).Info("Login request received (grpc)")
	result, err := s.sessionService.Login(ctx, req.GetUsername(), req.GetPassword())
	if err != nil {
		return nil, toStatus(err, logrus.WithField("username", req.GetUsername()), "Login failed (grpc)")
	}

	logrus.WithField("user_id", result.User.ID).Info("Login successful (grpc)")
	return types.NewSessionResponse(result), nil
}

func (s *AuthServer) Logout(ctx context.Context, _ *types.LogoutRequest) (*types.MessageResponse, error) {
	requestUser, ok := RequestUserFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "unauthorized")
	}

	logrus.WithField("user_id", requestUser.Sub).Info("Logout request received (grpc)")
	if err := s.sessionService.Logout(ctx, requestUser); err != nil {
		return nil, toStatus(err, logrus.WithField("user_id", requestUser.Sub), "Logout failed (grpc)")
	}

	return &types.MessageResponse{Message: "Logged out successfully"}, nil
}

func (s *AuthServer) ResetPassword(ctx context.Context, req *types.ResetPasswordRequest) (*types.SessionResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	requestUser, ok := RequestUserFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "unauthorized")
	}

	logrus.WithField("user_id", requestUser.Sub).Info("Reset password request received (grpc)")
	result, err := s.sessionService.ResetPassword(ctx, req.GetOldPassword(), req.GetNewPassword(), requestUser)
	if err != nil {
		return nil, toStatus(err, logrus.WithField("user_id", requestUser.Sub), "Reset password failed (grpc)")
	}

	return types.NewSessionResponse(result), nil
}

func (s *AuthServer) NewAccessToken(ctx context.Context, req *types.NewAccessTokenRequest) (*types.AccessTokenResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	requestUser, ok := RequestUserFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "unauthorized")
	}

	result, err := s.sessionService.NewAccessToken(ctx, req.GetRefreshToken(), requestUser)
	if err != nil {
		return nil, toStatus(err, logrus.WithField("user_id", requestUser.Sub), "New access token failed (grpc)")
	}

	return &types.AccessTokenResponse{AccessToken: result.AccessToken}, nil
}

func (s *AuthServer) ValidateToken(_ context.Context, req *types.ValidateTokenRequest) (*types.ValidateTokenResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	user, err := s.sessionService.ValidateAccessToken(req.GetAccessToken())
	if err != nil {
		return &types.ValidateTokenResponse{Valid: false}, nil
	}

	return &types.ValidateTokenResponse{Valid: true, Sub: user.Sub, Username: user.Username}, nil
}

// toStatus maps service errors onto gRPC codes and logs the failure at a
// level matching its severity.
func toStatus(err error, entry *logrus.Entry, msg string) error {
	var code codes.Code
	message := err.Error()

	switch {
	case errors.Is(err, service.ErrUsernameTaken):
		code, message = codes.AlreadyExists, service.ErrUsernameTaken.Error()
	case errors.Is(err, service.ErrWeakPassword):
		code = codes.InvalidArgument
	case errors.Is(err, service.ErrInvalidCredentials):
		code, message = codes.Unauthenticated, service.ErrInvalidCredentials.Error()
	case errors.Is(err, service.ErrInvalidRefreshToken):
		code, message = codes.Unauthenticated, service.ErrInvalidRefreshToken.Error()
	case errors.Is(err, service.ErrInvalidToken):
		code, message = codes.Unauthenticated, service.ErrInvalidToken.Error()
	case errors.Is(err, service.ErrForbiddenUser):
		code, message = codes.PermissionDenied, service.ErrForbiddenUser.Error()
	case errors.Is(err, service.ErrUserNotFound):
		code, message = codes.NotFound, service.ErrUserNotFound.Error()
	default:
		entry.WithError(err).Error(msg)
		return status.Error(codes.Internal, "internal server error")
	}

	entry.Warnf("%s: %s", msg, message)
	return status.Error(code, message)
}
