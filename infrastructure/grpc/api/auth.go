package api

import (
	"context"
	"time"

	"google.golang.org/grpc"
)

const (
	AuthService_Register_FullMethodName        = "/social.auth.v1.AuthService/Register"
	AuthService_Login_FullMethodName           = "/social.auth.v1.AuthService/Login"
	AuthService_GetUser_FullMethodName         = "/social.auth.v1.AuthService/GetUser"
	AuthService_ResolveIdentity_FullMethodName = "/social.auth.v1.AuthService/ResolveIdentity"
)

type CredentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type SessionResponse struct {
	UserID string `json:"user_id"`
	Token  string `json:"token"`
}

type GetUserRequest struct {
	UserID string `json:"user_id"`
}

type UserResponse struct {
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

type ResolveIdentityRequest struct {
	Token string `json:"token"`
}

type ResolveIdentityResponse struct {
	UserID string `json:"user_id"`
}

type AuthServiceClient interface {
	Register(ctx context.Context, in *CredentialsRequest, opts ...grpc.CallOption) (*SessionResponse, error)
	Login(ctx context.Context, in *CredentialsRequest, opts ...grpc.CallOption) (*SessionResponse, error)
	GetUser(ctx context.Context, in *GetUserRequest, opts ...grpc.CallOption) (*UserResponse, error)
	ResolveIdentity(ctx context.Context, in *ResolveIdentityRequest, opts ...grpc.CallOption) (*ResolveIdentityResponse, error)
}

type authServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewAuthServiceClient(cc grpc.ClientConnInterface) AuthServiceClient {
	return &authServiceClient{cc}
}

func (c *authServiceClient) Register(ctx context.Context, in *CredentialsRequest, opts ...grpc.CallOption) (*SessionResponse, error) {
	return invoke[SessionResponse](ctx, c.cc, AuthService_Register_FullMethodName, in, opts...)
}

func (c *authServiceClient) Login(ctx context.Context, in *CredentialsRequest, opts ...grpc.CallOption) (*SessionResponse, error) {
	return invoke[SessionResponse](ctx, c.cc, AuthService_Login_FullMethodName, in, opts...)
}

func (c *authServiceClient) GetUser(ctx context.Context, in *GetUserRequest, opts ...grpc.CallOption) (*UserResponse, error) {
	return invoke[UserResponse](ctx, c.cc, AuthService_GetUser_FullMethodName, in, opts...)
}

func (c *authServiceClient) ResolveIdentity(ctx context.Context, in *ResolveIdentityRequest, opts ...grpc.CallOption) (*ResolveIdentityResponse, error) {
	return invoke[ResolveIdentityResponse](ctx, c.cc, AuthService_ResolveIdentity_FullMethodName, in, opts...)
}

type AuthServiceServer interface {
	Register(context.Context, *CredentialsRequest) (*SessionResponse, error)
	Login(context.Context, *CredentialsRequest) (*SessionResponse, error)
	GetUser(context.Context, *GetUserRequest) (*UserResponse, error)
	ResolveIdentity(context.Context, *ResolveIdentityRequest) (*ResolveIdentityResponse, error)
}

func RegisterAuthServiceServer(s grpc.ServiceRegistrar, srv AuthServiceServer) {
	s.RegisterService(&AuthService_ServiceDesc, srv)
}

var AuthService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "social.auth.v1.AuthService",
	HandlerType: (*AuthServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Register",
			Handler:    unary(AuthService_Register_FullMethodName, AuthServiceServer.Register),
		},
		{
			MethodName: "Login",
			Handler:    unary(AuthService_Login_FullMethodName, AuthServiceServer.Login),
		},
		{
			MethodName: "GetUser",
			Handler:    unary(AuthService_GetUser_FullMethodName, AuthServiceServer.GetUser),
		},
		{
			MethodName: "ResolveIdentity",
			Handler:    unary(AuthService_ResolveIdentity_FullMethodName, AuthServiceServer.ResolveIdentity),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "api/auth.go",
}
