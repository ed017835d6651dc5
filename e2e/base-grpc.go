package e2e

import (
	"context"
	"fmt"
	pb "social-lab/infrastructure/grpc/api"
	"social-lab/infrastructure/grpc/client"
	"strings"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gookit/color"
	"github.com/stretchr/testify/suite"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type BaseGrpcSuite struct {
	suite.Suite
	Config Config
}

// SetupSuite loads the environment configuration before running tests.
// Without addresses the whole suite is skipped.
func (s *BaseGrpcSuite) SetupSuite() {
	var err error
	s.Config, err = LoadConfig()
	s.Require().NoError(err)
	if !s.Config.Enabled() {
		s.T().Skip("REGISTRY_ADDR, AUTH_ADDR and MESSAGE_ADDR must point to a running platform")
	}
}

// GrpcConn initializes a gRPC connection with logging, colors, and JSON debugging
func (s *BaseGrpcSuite) GrpcConn(t *testing.T, name string, addr string) *grpc.ClientConn {
	header := fmt.Sprintf("  ====== %s ======", name)
	if s.Config.Colours {
		header = color.New(color.BgBlack, color.FgGreen).Render(header)
	}
	t.Log(header)

	opts := append(client.DialOptions(),
		grpc.WithUnaryInterceptor(func(ctx context.Context, method string, req, reply any, cc *grpc.ClientConn, invoker grpc.UnaryInvoker, opts ...grpc.CallOption) error {
			start := time.Now()
			err := invoker(ctx, method, req, reply, cc, opts...)

			logBuilder := strings.Builder{}
			fmt.Fprintf(&logBuilder, "GRPC %s [%s] in %v", method, status.Code(err), time.Since(start))

			// Log full JSON request/response bodies if E2E_DEBUG_JSON is enabled
			if s.Config.DebugJSON {
				fmt.Fprintln(&logBuilder, "\nREQUEST:")
				fmt.Fprintln(&logBuilder, indent(req))
				if err != nil {
					fmt.Fprintln(&logBuilder, "ERROR:", err)
				} else {
					fmt.Fprintln(&logBuilder, "RESPONSE:")
					fmt.Fprintln(&logBuilder, indent(reply))
				}
			}
			t.Log(logBuilder.String())
			return err
		}),
	)
	conn, err := grpc.NewClient(addr, opts...)
	s.Require().NoError(err, "Failed to connect to gRPC server at "+addr)
	return conn
}

// WithAuth provides an AuthService client within a contextual test step
func (s *BaseGrpcSuite) WithAuth(name string, fn func(ctx context.Context, client pb.AuthServiceClient)) {
	conn := s.GrpcConn(s.T(), name, s.Config.AuthAddr)
	defer conn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	fn(ctx, pb.NewAuthServiceClient(conn))
}

// WithChat provides a ChatService client authenticated with token
func (s *BaseGrpcSuite) WithChat(name, token string, fn func(ctx context.Context, client pb.ChatServiceClient)) {
	conn := s.GrpcConn(s.T(), name, s.Config.MessageAddr)
	defer conn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	ctx = metadata.AppendToOutgoingContext(ctx, "authorization", "Bearer "+token)
	fn(ctx, pb.NewChatServiceClient(conn))
}

// WithRegistry provides a RegistryService client within a contextual test step
func (s *BaseGrpcSuite) WithRegistry(name string, fn func(ctx context.Context, client pb.RegistryServiceClient)) {
	conn := s.GrpcConn(s.T(), name, s.Config.RegistryAddr)
	defer conn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	fn(ctx, pb.NewRegistryServiceClient(conn))
}

func indent(v any) string {
	b, err := sonic.ConfigStd.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf("%+v", v)
	}
	return string(b)
}
