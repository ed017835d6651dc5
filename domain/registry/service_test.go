package registry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestServiceHealth_StatusAt(t *testing.T) {
	req := require.New(t)
	seen := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	health := ServiceHealth{Name: MessageService, LastSeen: seen}

	req.Equal(ALIVE, health.StatusAt(seen.Add(10*time.Second), 15*time.Second))
	req.Equal(ALIVE, health.StatusAt(seen.Add(15*time.Second), 15*time.Second))
	req.Equal(GHOST, health.StatusAt(seen.Add(16*time.Second), 15*time.Second))
}
