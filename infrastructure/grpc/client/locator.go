package client

import (
	"context"
	"social-lab/domain/registry"
	"social-lab/errors"
	pb "social-lab/infrastructure/grpc/api"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// RegistryLocator answers Locate by asking the registry service.
type RegistryLocator struct {
	client pb.RegistryServiceClient
}

func NewRegistryLocator(cc grpc.ClientConnInterface) *RegistryLocator {
	return &RegistryLocator{client: pb.NewRegistryServiceClient(cc)}
}

func (l *RegistryLocator) Locate(ctx context.Context, name string) (registry.Endpoint, error) {
	resp, err := l.client.Locate(ctx, &pb.LocateRequest{Name: name})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return registry.Endpoint{}, errors.ErrServiceNotFound
		}
		return registry.Endpoint{}, err
	}
	return registry.Endpoint{Address: resp.Address, IsActive: resp.IsActive}, nil
}
