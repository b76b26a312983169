package grpc

import (
	"context"

	"github.com/vibast-solutions/ms-go-accounts/app/middleware"
	"github.com/vibast-solutions/ms-go-accounts/app/service"

	"github.com/sirupsen/logrus"
	gogrpc "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type requestUserKey struct{}

type accessTokenValidator interface {
	ValidateAccessToken(tokenString string) (*service.JWTUser, error)
}

var protectedMethods = map[string]struct{}{
	AuthServiceLogoutFullMethodName:         {},
	AuthServiceResetPasswordFullMethodName:  {},
	AuthServiceNewAccessTokenFullMethodName: {},
}

// BearerUnaryInterceptor authenticates the session-bound methods from the
// "authorization" metadata. Other methods pass through untouched.
func BearerUnaryInterceptor(validator accessTokenValidator) gogrpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *gogrpc.UnaryServerInfo, handler gogrpc.UnaryHandler) (any, error) {
		if _, ok := protectedMethods[info.FullMethod]; !ok {
			return handler(ctx, req)
		}

		tokenString, ok := middleware.BearerToken(incomingAuthorization(ctx))
		if !ok {
			logrus.WithField("method", info.FullMethod).Debug("Missing or malformed authorization metadata (grpc)")
			return nil, status.Error(codes.Unauthenticated, "missing authorization")
		}

		user, err := validator.ValidateAccessToken(tokenString)
		if err != nil {
			logrus.WithField("method", info.FullMethod).Debug("Invalid or expired access token (grpc)")
			return nil, status.Error(codes.Unauthenticated, "invalid or expired token")
		}

		return handler(context.WithValue(ctx, requestUserKey{}, *user), req)
	}
}

func RequestUserFromContext(ctx context.Context) (service.JWTUser, bool) {
	user, ok := ctx.Value(requestUserKey{}).(service.JWTUser)
	return user, ok
}

func incomingAuthorization(ctx context.Context) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}
	values := md.Get("authorization")
	if len(values) == 0 {
		return ""
	}
	return values[0]
}
