package status

import (
	"time"

	"github.com/statushub-dev/statushub/internal/models"
	"github.com/statushub-dev/statushub/internal/types"
)

// uptimeWindow is the rolling window uptime is computed over.
const uptimeWindow = 30 * 24 * time.Hour

// CalculateUptime walks the service's history inside the window, newest
// first. Each span between adjacent entries belongs to the older entry's
// status, since a history row marks a transition and its status holds until
// superseded. With no history, or a window too sparse to contain a span, the
// result fails open to 100.
func (e *Engine) CalculateUptime(serviceID uint, now time.Time) (float64, error) {
	windowStart := now.Add(-uptimeWindow)

	var history []models.StatusHistory

	err := e.db.Where("service_id = ? AND timestamp >= ?", serviceID, windowStart).
		Order("timestamp DESC").
		Find(&history).Error

	if err != nil {
		return 0, err
	}

	if len(history) == 0 {
		return 100.0, nil
	}

	var totalTime, operationalTime float64

	for i := 0; i < len(history)-1; i++ {
		newer := history[i]
		older := history[i+1]

		span := newer.Timestamp.Sub(older.Timestamp).Seconds()
		totalTime += span

		if older.Status == types.StatusOperational {
			operationalTime += span
		}
	}

	if totalTime == 0 {
		return 100.0, nil
	}

	return (operationalTime / totalTime) * 100, nil
}
