package client

import (
	"context"
	"social-lab/errors"
	pb "social-lab/infrastructure/grpc/api"
	"testing"

	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// mockRegistryClient simulates the registry client.
// It embeds the interface to avoid implementing the methods the test doesn't call.
type mockRegistryClient struct {
	pb.RegistryServiceClient
	resp *pb.LocateResponse
	err  error
}

func (m *mockRegistryClient) Locate(_ context.Context, _ *pb.LocateRequest, _ ...grpc.CallOption) (*pb.LocateResponse, error) {
	return m.resp, m.err
}

func TestRegistryLocator_Locate(t *testing.T) {
	t.Run("active service", func(t *testing.T) {
		req := require.New(t)
		locator := &RegistryLocator{client: &mockRegistryClient{resp: &pb.LocateResponse{Address: "localhost:50052", IsActive: true}}}

		endpoint, err := locator.Locate(context.Background(), "message_service")
		req.NoError(err)
		req.Equal("localhost:50052", endpoint.Address)
		req.True(endpoint.IsActive)
	})

	t.Run("unknown service becomes a domain error", func(t *testing.T) {
		req := require.New(t)
		locator := &RegistryLocator{client: &mockRegistryClient{err: status.Error(codes.NotFound, "service")}}

		_, err := locator.Locate(context.Background(), "message_service")
		req.ErrorIs(err, errors.ErrServiceNotFound)
	})

	t.Run("transport failure is kept", func(t *testing.T) {
		req := require.New(t)
		locator := &RegistryLocator{client: &mockRegistryClient{err: status.Error(codes.Unavailable, "registry down")}}

		_, err := locator.Locate(context.Background(), "message_service")
		req.Equal(codes.Unavailable, status.Code(err))
	})
}

func TestConnPool_ReusesConnections(t *testing.T) {
	req := require.New(t)
	pool := NewConnPool()

	first, err := pool.Get("localhost:50052")
	req.NoError(err)
	again, err := pool.Get("localhost:50052")
	req.NoError(err)
	req.Same(first, again)

	other, err := pool.Get("localhost:50053")
	req.NoError(err)
	req.NotSame(first, other)

	req.NoError(pool.Close())
}
