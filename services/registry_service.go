package services

import (
	"context"
	"log/slog"
	"social-lab/domain/registry"
	"social-lab/errors"
	"sort"
	"sync"
	"time"
)

// ServiceRegistry keeps the address and the last heartbeat of every service.
// A service is active as long as its last heartbeat is younger than ttl.
type ServiceRegistry struct {
	mu       sync.RWMutex
	log      *slog.Logger
	ttl      time.Duration
	now      func() time.Time
	services map[string]registry.ServiceHealth
}

func NewServiceRegistry(log *slog.Logger, ttl time.Duration) *ServiceRegistry {
	return &ServiceRegistry{
		log:      log,
		ttl:      ttl,
		now:      time.Now,
		services: make(map[string]registry.ServiceHealth),
	}
}

// Register records (or moves) a service. A registration counts as a heartbeat.
func (r *ServiceRegistry) Register(name, address string, stats registry.Stats) error {
	if name == "" || address == "" {
		return errors.ErrInvalidArgument
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	health, known := r.services[name]
	if !known || health.Address != address {
		health = registry.ServiceHealth{Name: name, Address: address, RegisteredAt: now}
	}
	health.Stats = stats
	health.LastSeen = now
	health.Status = registry.ALIVE
	r.services[name] = health

	r.log.Info("Service registered", "name", name, "address", address, "pid", stats.PID)
	return nil
}

// Heartbeat refreshes a known service. An unknown service must register first.
func (r *ServiceRegistry) Heartbeat(name string, stats registry.Stats) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	health, ok := r.services[name]
	if !ok {
		return errors.ErrServiceNotFound
	}
	health.Stats = stats
	health.LastSeen = r.now()
	health.Status = registry.ALIVE
	r.services[name] = health
	return nil
}

// Locate answers "where is the service and is it alive". A stale service is
// still returned, flagged inactive, so that callers can tell both cases apart.
func (r *ServiceRegistry) Locate(_ context.Context, name string) (registry.Endpoint, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	health, ok := r.services[name]
	if !ok {
		return registry.Endpoint{}, errors.ErrServiceNotFound
	}
	return registry.Endpoint{
		Address:  health.Address,
		IsActive: health.StatusAt(r.now(), r.ttl) == registry.ALIVE,
	}, nil
}

// List returns a snapshot of every known service, sorted by name.
func (r *ServiceRegistry) List() []registry.ServiceHealth {
	r.mu.RLock()
	defer r.mu.RUnlock()

	now := r.now()
	snapshot := make([]registry.ServiceHealth, 0, len(r.services))
	for _, health := range r.services {
		health.Status = health.StatusAt(now, r.ttl)
		snapshot = append(snapshot, health)
	}
	sort.Slice(snapshot, func(i, j int) bool { return snapshot[i].Name < snapshot[j].Name })
	return snapshot
}
