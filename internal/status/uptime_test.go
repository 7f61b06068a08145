package status_test

import (
	"testing"
	"time"

	"github.com/statushub-dev/statushub/internal/models"
	"github.com/statushub-dev/statushub/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func addHistory(t *testing.T, kit *testKit, status string, at time.Time) {
	t.Helper()
	require.NoError(t, kit.db.Create(&models.StatusHistory{
		ServiceID: kit.service.ID,
		Status:    status,
		Timestamp: at,
	}).Error)
}

func TestCalculateUptime_NoHistoryFailsOpen(t *testing.T) {
	kit := setupEngine(t)

	uptime, err := kit.engine.CalculateUptime(kit.service.ID, time.Now().UTC())
	require.NoError(t, err)
	assert.Equal(t, 100.0, uptime)
}

func TestCalculateUptime_SingleEntryFailsOpen(t *testing.T) {
	kit := setupEngine(t)
	now := time.Now().UTC()

	addHistory(t, kit, types.StatusOutage, now.Add(-time.Hour))

	uptime, err := kit.engine.CalculateUptime(kit.service.ID, now)
	require.NoError(t, err)
	assert.Equal(t, 100.0, uptime)
}

// An interval belongs to the status recorded at its start: a transition row's
// status holds until the next one. Outage at hour 0 followed by Operational
// at hour 24, observed at hour 24, means the whole observed span was outage.
func TestCalculateUptime_IntervalBelongsToOlderEntry(t *testing.T) {
	kit := setupEngine(t)
	now := time.Now().UTC()

	addHistory(t, kit, types.StatusOutage, now.Add(-24*time.Hour))
	addHistory(t, kit, types.StatusOperational, now)

	uptime, err := kit.engine.CalculateUptime(kit.service.ID, now)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, uptime, 0.001)
}

func TestCalculateUptime_MixedSpans(t *testing.T) {
	kit := setupEngine(t)
	now := time.Now().UTC()

	// Outage for 10h, then Operational for 10h, then Degraded onward.
	addHistory(t, kit, types.StatusOutage, now.Add(-20*time.Hour))
	addHistory(t, kit, types.StatusOperational, now.Add(-10*time.Hour))
	addHistory(t, kit, types.StatusDegraded, now)

	uptime, err := kit.engine.CalculateUptime(kit.service.ID, now)
	require.NoError(t, err)
	assert.InDelta(t, 50.0, uptime, 0.001)
}

func TestCalculateUptime_IgnoresEntriesOutsideWindow(t *testing.T) {
	kit := setupEngine(t)
	now := time.Now().UTC()

	// Old outage outside the 30-day window must not drag the figure down.
	addHistory(t, kit, types.StatusOutage, now.Add(-40*24*time.Hour))
	addHistory(t, kit, types.StatusOperational, now.Add(-35*24*time.Hour))

	uptime, err := kit.engine.CalculateUptime(kit.service.ID, now)
	require.NoError(t, err)
	assert.Equal(t, 100.0, uptime)
}

func TestCalculateUptime_FullyOperationalWindow(t *testing.T) {
	kit := setupEngine(t)
	now := time.Now().UTC()

	addHistory(t, kit, types.StatusOperational, now.Add(-48*time.Hour))
	addHistory(t, kit, types.StatusOperational, now.Add(-24*time.Hour))
	addHistory(t, kit, types.StatusOperational, now)

	uptime, err := kit.engine.CalculateUptime(kit.service.ID, now)
	require.NoError(t, err)
	assert.Equal(t, 100.0, uptime)
}
