package server

import (
	"context"
	"log/slog"
	"social-lab/errors"
	pb "social-lab/infrastructure/grpc/api"
	"social-lab/services"
)

type AuthServer struct {
	authService services.IAuthService
	log         *slog.Logger
}

func NewAuthServer(log *slog.Logger, authService services.IAuthService) *AuthServer {
	return &AuthServer{authService: authService, log: log}
}

func (s *AuthServer) Register(_ context.Context, req *pb.CredentialsRequest) (*pb.SessionResponse, error) {
	session, err := s.authService.Register(req.Username, req.Password)
	if err != nil {
		return nil, errors.MapToGRPCError(err)
	}
	s.log.Info("User registered", "user_id", session.UserID)
	return &pb.SessionResponse{UserID: session.UserID, Token: session.Token.String()}, nil
}

func (s *AuthServer) Login(_ context.Context, req *pb.CredentialsRequest) (*pb.SessionResponse, error) {
	session, err := s.authService.Login(req.Username, req.Password)
	if err != nil {
		s.log.Debug("Login refused", "username", req.Username)
		return nil, errors.MapToGRPCError(err)
	}
	return &pb.SessionResponse{UserID: session.UserID, Token: session.Token.String()}, nil
}

func (s *AuthServer) GetUser(_ context.Context, req *pb.GetUserRequest) (*pb.UserResponse, error) {
	user, err := s.authService.GetUser(req.UserID)
	if err != nil {
		return nil, errors.MapToGRPCError(err)
	}
	return &pb.UserResponse{UserID: user.ID, Username: user.Username, CreatedAt: user.CreatedAt}, nil
}

func (s *AuthServer) ResolveIdentity(_ context.Context, req *pb.ResolveIdentityRequest) (*pb.ResolveIdentityResponse, error) {
	userID, err := s.authService.ResolveIdentity(req.Token)
	if err != nil {
		return nil, errors.MapToGRPCError(err)
	}
	return &pb.ResolveIdentityResponse{UserID: userID}, nil
}
