package api

import (
	"context"
	"time"

	"google.golang.org/grpc"
)

const (
	RegistryService_Register_FullMethodName  = "/social.registry.v1.RegistryService/Register"
	RegistryService_Heartbeat_FullMethodName = "/social.registry.v1.RegistryService/Heartbeat"
	RegistryService_Locate_FullMethodName    = "/social.registry.v1.RegistryService/Locate"
	RegistryService_List_FullMethodName      = "/social.registry.v1.RegistryService/List"
)

type Stats struct {
	PID        int64   `json:"pid"`
	CPUPercent float64 `json:"cpu_percent"`
	RAMBytes   uint64  `json:"ram_bytes"`
}

type RegisterServiceRequest struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Stats   Stats  `json:"stats"`
}

type HeartbeatRequest struct {
	Name  string `json:"name"`
	Stats Stats  `json:"stats"`
}

type Ack struct {
	Success bool `json:"success"`
}

type LocateRequest struct {
	Name string `json:"name"`
}

type LocateResponse struct {
	Address  string `json:"address"`
	IsActive bool   `json:"is_active"`
}

type ListServicesRequest struct{}

type ServiceHealth struct {
	Name         string    `json:"name"`
	Address      string    `json:"address"`
	Status       string    `json:"status"`
	Stats        Stats     `json:"stats"`
	RegisteredAt time.Time `json:"registered_at"`
	LastSeen     time.Time `json:"last_seen"`
}

type ListServicesResponse struct {
	Services []ServiceHealth `json:"services"`
}

type RegistryServiceClient interface {
	Register(ctx context.Context, in *RegisterServiceRequest, opts ...grpc.CallOption) (*Ack, error)
	Heartbeat(ctx context.Context, in *HeartbeatRequest, opts ...grpc.CallOption) (*Ack, error)
	Locate(ctx context.Context, in *LocateRequest, opts ...grpc.CallOption) (*LocateResponse, error)
	List(ctx context.Context, in *ListServicesRequest, opts ...grpc.CallOption) (*ListServicesResponse, error)
}

type registryServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewRegistryServiceClient(cc grpc.ClientConnInterface) RegistryServiceClient {
	return &registryServiceClient{cc}
}

func (c *registryServiceClient) Register(ctx context.Context, in *RegisterServiceRequest, opts ...grpc.CallOption) (*Ack, error) {
	return invoke[Ack](ctx, c.cc, RegistryService_Register_FullMethodName, in, opts...)
}

func (c *registryServiceClient) Heartbeat(ctx context.Context, in *HeartbeatRequest, opts ...grpc.CallOption) (*Ack, error) {
	return invoke[Ack](ctx, c.cc, RegistryService_Heartbeat_FullMethodName, in, opts...)
}

func (c *registryServiceClient) Locate(ctx context.Context, in *LocateRequest, opts ...grpc.CallOption) (*LocateResponse, error) {
	return invoke[LocateResponse](ctx, c.cc, RegistryService_Locate_FullMethodName, in, opts...)
}

func (c *registryServiceClient) List(ctx context.Context, in *ListServicesRequest, opts ...grpc.CallOption) (*ListServicesResponse, error) {
	return invoke[ListServicesResponse](ctx, c.cc, RegistryService_List_FullMethodName, in, opts...)
}

type RegistryServiceServer interface {
	Register(context.Context, *RegisterServiceRequest) (*Ack, error)
	Heartbeat(context.Context, *HeartbeatRequest) (*Ack, error)
	Locate(context.Context, *LocateRequest) (*LocateResponse, error)
	List(context.Context, *ListServicesRequest) (*ListServicesResponse, error)
}

func RegisterRegistryServiceServer(s grpc.ServiceRegistrar, srv RegistryServiceServer) {
	s.RegisterService(&RegistryService_ServiceDesc, srv)
}

var RegistryService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "social.registry.v1.RegistryService",
	HandlerType: (*RegistryServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Register",
			Handler:    unary(RegistryService_Register_FullMethodName, RegistryServiceServer.Register),
		},
		{
			MethodName: "Heartbeat",
			Handler:    unary(RegistryService_Heartbeat_FullMethodName, RegistryServiceServer.Heartbeat),
		},
		{
			MethodName: "Locate",
			Handler:    unary(RegistryService_Locate_FullMethodName, RegistryServiceServer.Locate),
		},
		{
			MethodName: "List",
			Handler:    unary(RegistryService_List_FullMethodName, RegistryServiceServer.List),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "api/registry.go",
}
