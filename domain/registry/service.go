// Package registry describes the liveness bookkeeping of the services
// that make up the platform.
package registry

import "time"

type Status string

const (
	ALIVE Status = "ALIVE"
	GHOST Status = "GHOST"
)

const (
	AuthService    = "auth_service"
	MessageService = "message_service"
)

// Stats is what a service reports about its own process on each heartbeat.
type Stats struct {
	PID        int64
	CPUPercent float64
	RAMBytes   uint64
}

type ServiceHealth struct {
	Name         string
	Address      string
	Status       Status
	Stats        Stats
	RegisteredAt time.Time
	LastSeen     time.Time
}

// Endpoint is the answer to a lookup: where the service lives and
// whether it heartbeated recently enough to receive traffic.
type Endpoint struct {
	Address  string
	IsActive bool
}

// StatusAt computes the liveness of a service at a given instant.
func (s ServiceHealth) StatusAt(now time.Time, ttl time.Duration) Status {
	if now.Sub(s.LastSeen) > ttl {
		return GHOST
	}
	return ALIVE
}
