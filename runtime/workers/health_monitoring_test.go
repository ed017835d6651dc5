package workers

import (
	"log/slog"
	"social-lab/domain/registry"
	"testing"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

func TestHealthMonitoringWorker_ReportsTransitions(t *testing.T) {
	req := require.New(t)

	snapshot := []registry.ServiceHealth{
		{Name: registry.AuthService, Status: registry.ALIVE},
		{Name: registry.MessageService, Status: registry.ALIVE},
	}
	worker := NewHealthMonitoringWorker(logs.GetLoggerFromLevel(slog.LevelError),
		func() []registry.ServiceHealth { return snapshot }, 0)

	// First check reports everything
	req.Len(worker.Check(), 2)

	// Nothing moved
	req.Empty(worker.Check())

	// Message service goes silent
	snapshot[1].Status = registry.GHOST
	changed := worker.Check()
	req.Len(changed, 1)
	req.Equal(registry.MessageService, changed[0].Name)
	req.Equal(registry.GHOST, changed[0].Status)

	// And comes back
	snapshot[1].Status = registry.ALIVE
	changed = worker.Check()
	req.Len(changed, 1)
	req.Equal(registry.ALIVE, changed[0].Status)
}
