package grpc

import (
	"context"

	"github.com/vibast-solutions/ms-go-accounts/app/types"

	gogrpc "google.golang.org/grpc"
)

const (
	AuthServiceName = "accounts.v1.AuthService"

	AuthServiceSignupFullMethodName         = "/accounts.v1.AuthService/Signup"
	AuthServiceLoginFullMethodName          = "/accounts.v1.AuthService/Login"
	AuthServiceLogoutFullMethodName         = "/accounts.v1.AuthService/Logout"
	AuthServiceResetPasswordFullMethodName  = "/accounts.v1.AuthService/ResetPassword"
	AuthServiceNewAccessTokenFullMethodName = "/accounts.v1.AuthService/NewAccessToken"
	AuthServiceValidateTokenFullMethodName  = "/accounts.v1.AuthService/ValidateToken"
)

type AuthServiceServer interface {
	Signup(context.Context, *types.SignupRequest) (*types.SessionResponse, error)
	Login(context.Context, *types.LoginRequest) (*types.SessionResponse, error)
	Logout(context.Context, *types.LogoutRequest) (*types.MessageResponse, error)
	ResetPassword(context.Context, *types.ResetPasswordRequest) (*types.SessionResponse, error)
	NewAccessToken(context.Context, *types.NewAccessTokenRequest) (*types.AccessTokenResponse, error)
	ValidateToken(context.Context, *types.ValidateTokenRequest) (*types.ValidateTokenResponse, error)
}

func RegisterAuthServiceServer(s gogrpc.ServiceRegistrar, srv AuthServiceServer) {
	s.RegisterService(&AuthServiceDesc, srv)
}

// unaryHandler adapts one AuthServiceServer method to a grpc.MethodHandler.
func unaryHandler[Req any, Res any](fullMethod string, call func(AuthServiceServer, context.Context, *Req) (*Res, error)) func(srv any, ctx context.Context, dec func(any) error, interceptor gogrpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor gogrpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(AuthServiceServer), ctx, in)
		}
		info := &gogrpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod,
		}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(AuthServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

var AuthServiceDesc = gogrpc.ServiceDesc{
	ServiceName: AuthServiceName,
	HandlerType: (*AuthServiceServer)(nil),
	Methods: []gogrpc.MethodDesc{
		{
			MethodName: "Signup",
			Handler:    unaryHandler(AuthServiceSignupFullMethodName, AuthServiceServer.Signup),
		},
		{
			MethodName: "Login",
			Handler:    unaryHandler(AuthServiceLoginFullMethodName, AuthServiceServer.Login),
		},
		{
			MethodName: "Logout",
			Handler:    unaryHandler(AuthServiceLogoutFullMethodName, AuthServiceServer.Logout),
		},
		{
			MethodName: "ResetPassword",
			Handler:    unaryHandler(AuthServiceResetPasswordFullMethodName, AuthServiceServer.ResetPassword),
		},
		{
			MethodName: "NewAccessToken",
			Handler:    unaryHandler(AuthServiceNewAccessTokenFullMethodName, AuthServiceServer.NewAccessToken),
		},
		{
			MethodName: "ValidateToken",
			Handler:    unaryHandler(AuthServiceValidateTokenFullMethodName, AuthServiceServer.ValidateToken),
		},
	},
	Streams:  []gogrpc.StreamDesc{},
	Metadata: "accounts/v1/auth.proto",
}

type AuthServiceClient struct {
	cc gogrpc.ClientConnInterface
}

func NewAuthServiceClient(cc gogrpc.ClientConnInterface) *AuthServiceClient {
	return &AuthServiceClient{cc: cc}
}

func invoke[Res any](ctx context.Context, cc gogrpc.ClientConnInterface, method string, in any, opts []gogrpc.CallOption) (*Res, error) {
	out := new(Res)
	opts = append([]gogrpc.CallOption{gogrpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *AuthServiceClient) Signup(ctx context.Context, in *types.SignupRequest, opts ...gogrpc.CallOption) (*types.SessionResponse, error) {
	return invoke[types.SessionResponse](ctx, c.cc, AuthServiceSignupFullMethodName, in, opts)
}

func (c *AuthServiceClient) Login(ctx context.Context, in *types.LoginRequest, opts ...gogrpc.CallOption) (*types.SessionResponse, error) {
	return invoke[types.SessionResponse](ctx, c.cc, AuthServiceLoginFullMethodName, in, opts)
}

func (c *AuthServiceClient) Logout(ctx context.Context, in *types.LogoutRequest, opts ...gogrpc.CallOption) (*types.MessageResponse, error) {
	return invoke[types.MessageResponse](ctx, c.cc, AuthServiceLogoutFullMethodName, in, opts)
}

func (c *AuthServiceClient) ResetPassword(ctx context.Context, in *types.ResetPasswordRequest, opts ...gogrpc.CallOption) (*types.SessionResponse, error) {
	return invoke[types.SessionResponse](ctx, c.cc, AuthServiceResetPasswordFullMethodName, in, opts)
}

func (c *AuthServiceClient) NewAccessToken(ctx context.Context, in *types.NewAccessTokenRequest, opts ...gogrpc.CallOption) (*types.AccessTokenResponse, error) {
	return invoke[types.AccessTokenResponse](ctx, c.cc, AuthServiceNewAccessTokenFullMethodName, in, opts)
}

func (c *AuthServiceClient) ValidateToken(ctx context.Context, in *types.ValidateTokenRequest, opts ...gogrpc.CallOption) (*types.ValidateTokenResponse, error) {
	return invoke[types.ValidateTokenResponse](ctx, c.cc, AuthServiceValidateTokenFullMethodName, in, opts)
}
