package services

import (
	"context"
	"log/slog"
	"social-lab/domain/registry"
	"social-lab/errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestRegistry(ttl time.Duration) (*ServiceRegistry, *fakeClock) {
	clock := &fakeClock{now: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)}
	r := NewServiceRegistry(slog.New(slog.DiscardHandler), ttl)
	r.now = clock.Now
	return r, clock
}

func TestServiceRegistry_LocateLifecycle(t *testing.T) {
	req := require.New(t)
	r, clock := newTestRegistry(15 * time.Second)
	ctx := context.Background()

	_, err := r.Locate(ctx, registry.MessageService)
	req.ErrorIs(err, errors.ErrServiceNotFound)

	req.NoError(r.Register(registry.MessageService, "localhost:50052", registry.Stats{PID: 42}))

	endpoint, err := r.Locate(ctx, registry.MessageService)
	req.NoError(err)
	req.Equal("localhost:50052", endpoint.Address)
	req.True(endpoint.IsActive)

	clock.Advance(16 * time.Second)
	endpoint, err = r.Locate(ctx, registry.MessageService)
	req.NoError(err)
	req.False(endpoint.IsActive, "a silent service must be reported inactive, not forgotten")

	req.NoError(r.Heartbeat(registry.MessageService, registry.Stats{PID: 42, CPUPercent: 3.5}))
	endpoint, err = r.Locate(ctx, registry.MessageService)
	req.NoError(err)
	req.True(endpoint.IsActive)
}

func TestServiceRegistry_HeartbeatUnknownService(t *testing.T) {
	req := require.New(t)
	r, _ := newTestRegistry(time.Second)

	err := r.Heartbeat(registry.AuthService, registry.Stats{})
	req.ErrorIs(err, errors.ErrServiceNotFound)
	req.ErrorIs(err, errors.ErrNotFound)
}

func TestServiceRegistry_RegisterValidation(t *testing.T) {
	req := require.New(t)
	r, _ := newTestRegistry(time.Second)

	req.ErrorIs(r.Register("", "localhost:1", registry.Stats{}), errors.ErrInvalidArgument)
	req.ErrorIs(r.Register(registry.AuthService, "", registry.Stats{}), errors.ErrInvalidArgument)
	req.Empty(r.List())
}

func TestServiceRegistry_ReRegisterMovesService(t *testing.T) {
	req := require.New(t)
	r, clock := newTestRegistry(15 * time.Second)

	req.NoError(r.Register(registry.AuthService, "10.0.0.1:50051", registry.Stats{PID: 1}))
	first := r.List()[0].RegisteredAt

	clock.Advance(time.Second)
	req.NoError(r.Register(registry.AuthService, "10.0.0.1:50051", registry.Stats{PID: 1}))
	req.Equal(first, r.List()[0].RegisteredAt)

	clock.Advance(time.Second)
	req.NoError(r.Register(registry.AuthService, "10.0.0.2:50051", registry.Stats{PID: 7}))
	services := r.List()
	req.Len(services, 1)
	req.Equal("10.0.0.2:50051", services[0].Address)
	req.Equal(int64(7), services[0].Stats.PID)
	req.True(services[0].RegisteredAt.After(first))
}

func TestServiceRegistry_ListReportsGhosts(t *testing.T) {
	req := require.New(t)
	r, clock := newTestRegistry(10 * time.Second)

	req.NoError(r.Register(registry.MessageService, "localhost:50052", registry.Stats{}))
	clock.Advance(8 * time.Second)
	req.NoError(r.Register(registry.AuthService, "localhost:50051", registry.Stats{}))
	clock.Advance(5 * time.Second)

	services := r.List()
	req.Len(services, 2)
	req.Equal(registry.AuthService, services[0].Name)
	req.Equal(registry.ALIVE, services[0].Status)
	req.Equal(registry.MessageService, services[1].Name)
	req.Equal(registry.GHOST, services[1].Status)
}

func TestServiceRegistry_ConcurrentAccess(t *testing.T) {
	r, _ := newTestRegistry(time.Minute)
	ctx := context.Background()
	require.NoError(t, r.Register(registry.MessageService, "localhost:50052", registry.Stats{}))

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = r.Heartbeat(registry.MessageService, registry.Stats{PID: 1})
		}()
		go func() {
			defer wg.Done()
			_, _ = r.Locate(ctx, registry.MessageService)
			_ = r.List()
		}()
	}
	wg.Wait()

	endpoint, err := r.Locate(ctx, registry.MessageService)
	require.NoError(t, err)
	require.True(t, endpoint.IsActive)
}
