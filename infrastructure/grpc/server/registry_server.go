package server

import (
	"context"
	"social-lab/domain/registry"
	"social-lab/errors"
	pb "social-lab/infrastructure/grpc/api"
	"social-lab/services"

	"github.com/samber/lo"
)

type RegistryServer struct {
	registry *services.ServiceRegistry
}

func NewRegistryServer(r *services.ServiceRegistry) *RegistryServer {
	return &RegistryServer{registry: r}
}

func (s *RegistryServer) Register(_ context.Context, req *pb.RegisterServiceRequest) (*pb.Ack, error) {
	if err := s.registry.Register(req.Name, req.Address, toStats(req.Stats)); err != nil {
		return nil, errors.MapToGRPCError(err)
	}
	return &pb.Ack{Success: true}, nil
}

func (s *RegistryServer) Heartbeat(_ context.Context, req *pb.HeartbeatRequest) (*pb.Ack, error) {
	if err := s.registry.Heartbeat(req.Name, toStats(req.Stats)); err != nil {
		return nil, errors.MapToGRPCError(err)
	}
	return &pb.Ack{Success: true}, nil
}

func (s *RegistryServer) Locate(ctx context.Context, req *pb.LocateRequest) (*pb.LocateResponse, error) {
	endpoint, err := s.registry.Locate(ctx, req.Name)
	if err != nil {
		return nil, errors.MapToGRPCError(err)
	}
	return &pb.LocateResponse{Address: endpoint.Address, IsActive: endpoint.IsActive}, nil
}

func (s *RegistryServer) List(_ context.Context, _ *pb.ListServicesRequest) (*pb.ListServicesResponse, error) {
	return &pb.ListServicesResponse{
		Services: lo.Map(s.registry.List(), func(h registry.ServiceHealth, _ int) pb.ServiceHealth {
			return pb.ServiceHealth{
				Name:         h.Name,
				Address:      h.Address,
				Status:       string(h.Status),
				Stats:        pb.Stats{PID: h.Stats.PID, CPUPercent: h.Stats.CPUPercent, RAMBytes: h.Stats.RAMBytes},
				RegisteredAt: h.RegisteredAt,
				LastSeen:     h.LastSeen,
			}
		}),
	}, nil
}

func toStats(s pb.Stats) registry.Stats {
	return registry.Stats{PID: s.PID, CPUPercent: s.CPUPercent, RAMBytes: s.RAMBytes}
}
