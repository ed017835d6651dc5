package workers

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	pb "social-lab/infrastructure/grpc/api"
	"time"

	"github.com/shirou/gopsutil/process"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// StatsSampler reports the resource usage of the current process.
type StatsSampler func() (pb.Stats, error)

// HeartbeatWorker keeps a service listed as alive in the registry.
type HeartbeatWorker struct {
	log      *slog.Logger
	client   pb.RegistryServiceClient
	name     string
	address  string
	interval time.Duration
	sampler  StatsSampler
}

func NewHeartbeatWorker(log *slog.Logger, client pb.RegistryServiceClient,
	name, address string, interval time.Duration) *HeartbeatWorker {
	return &HeartbeatWorker{
		log:      log,
		client:   client,
		name:     name,
		address:  address,
		interval: interval,
		sampler:  SelfStats,
	}
}

// WithSampler replaces the gopsutil sampler, mostly for tests.
func (w *HeartbeatWorker) WithSampler(sampler StatsSampler) *HeartbeatWorker {
	w.sampler = sampler
	return w
}

// Run registers the service then heartbeats every interval. A registry that
// forgot the service (restart) answers NotFound and gets a new registration.
// Returning an error lets the supervisor restart the worker.
func (w *HeartbeatWorker) Run(ctx context.Context) error {
	if err := w.register(ctx); err != nil {
		return err
	}
	w.log.Info("Service registered in registry", "name", w.name, "address", w.address)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			w.beat(ctx)
		}
	}
}

func (w *HeartbeatWorker) beat(ctx context.Context) {
	stats := w.stats()
	_, err := w.client.Heartbeat(ctx, &pb.HeartbeatRequest{Name: w.name, Stats: stats})
	switch {
	case err == nil:
	case status.Code(err) == codes.NotFound:
		w.log.Warn("Registry forgot the service, registering again", "name", w.name)
		if err := w.register(ctx); err != nil {
			w.log.Warn("Registration failed", "name", w.name, "error", err)
		}
	default:
		w.log.Warn("Registry unreachable for heartbeat", "name", w.name, "error", err)
	}
}

func (w *HeartbeatWorker) register(ctx context.Context) error {
	_, err := w.client.Register(ctx, &pb.RegisterServiceRequest{
		Name:    w.name,
		Address: w.address,
		Stats:   w.stats(),
	})
	if err != nil {
		return fmt.Errorf("register %s: %w", w.name, err)
	}
	return nil
}

func (w *HeartbeatWorker) stats() pb.Stats {
	stats, err := w.sampler()
	if err != nil {
		w.log.Debug("Failed to collect self stats", "error", err)
		return pb.Stats{PID: int64(os.Getpid())}
	}
	return stats
}

// SelfStats reads RSS and CPU usage of the running process.
func SelfStats() (pb.Stats, error) {
	pid := os.Getpid()
	p, err := process.NewProcess(int32(pid))
	if err != nil {
		return pb.Stats{}, err
	}
	memInfo, err := p.MemoryInfo()
	if err != nil {
		return pb.Stats{}, err
	}
	cpuPercent, err := p.CPUPercent()
	if err != nil {
		return pb.Stats{}, err
	}
	return pb.Stats{PID: int64(pid), CPUPercent: cpuPercent, RAMBytes: memInfo.RSS}, nil
}
