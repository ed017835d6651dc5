package workers

import (
	"context"
	"log/slog"
	"social-lab/domain/registry"
	"time"
)

// ServiceLister returns the current view of the registry.
type ServiceLister func() []registry.ServiceHealth

// HealthMonitoringWorker runs inside the registry and logs every service
// that goes silent (ALIVE -> GHOST) or comes back.
type HealthMonitoringWorker struct {
	log      *slog.Logger
	list     ServiceLister
	interval time.Duration
	last     map[string]registry.Status
}

func NewHealthMonitoringWorker(log *slog.Logger, list ServiceLister, interval time.Duration) *HealthMonitoringWorker {
	return &HealthMonitoringWorker{
		log:      log,
		list:     list,
		interval: interval,
		last:     make(map[string]registry.Status),
	}
}

func (w *HealthMonitoringWorker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			w.log.Debug("Context done, stopping health monitoring")
			return nil
		case <-ticker.C:
			w.Check()
		}
	}
}

// Check compares the registry with the previous check and returns the
// services whose status changed.
func (w *HealthMonitoringWorker) Check() []registry.ServiceHealth {
	var changed []registry.ServiceHealth
	for _, health := range w.list() {
		previous, seen := w.last[health.Name]
		w.last[health.Name] = health.Status
		if seen && previous == health.Status {
			continue
		}
		changed = append(changed, health)

		switch health.Status {
		case registry.GHOST:
			w.log.Warn("Service stopped heartbeating",
				"name", health.Name,
				"address", health.Address,
				"last_seen", health.LastSeen)
		case registry.ALIVE:
			w.log.Info("Service alive",
				"name", health.Name,
				"address", health.Address,
				"pid", health.Stats.PID,
				"cpu_percent", health.Stats.CPUPercent,
				"ram_bytes", health.Stats.RAMBytes)
		}
	}
	return changed
}
