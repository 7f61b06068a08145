package overview

import (
	"time"

	"github.com/statushub-dev/statushub/internal/incident"
	"github.com/statushub-dev/statushub/internal/models"
	"github.com/statushub-dev/statushub/internal/types"
	"gorm.io/gorm"
)

// OverallStatus picks the single representative status for a set of services
// by severity rank. Ties go to the first service encountered; an empty set
// maps to Unknown.
func OverallStatus(services []models.Service) string {
	if len(services) == 0 {
		return types.StatusUnknown
	}

	current := services[0]
	for _, service := range services[1:] {
		if types.SeverityRank(service.Status) > types.SeverityRank(current.Status) {
			current = service
		}
	}

	return current.Status
}

// View assembles the derived, read-only status payloads. Nothing here is
// persisted.
type View struct {
	db *gorm.DB
}

func NewView(conn *gorm.DB) *View {
	return &View{db: conn}
}

type IncidentSummary struct {
	ID          uint      `json:"id"`
	Status      string    `json:"status"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	Resolved    bool      `json:"resolved"`
}

type HistoryEntry struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

type ServiceStatus struct {
	ID            uint              `json:"id"`
	Name          string            `json:"name"`
	Status        string            `json:"status"`
	Incidents     []IncidentSummary `json:"incidents"`
	StatusHistory []HistoryEntry    `json:"status_history,omitempty"`
}

type IncidentCount struct {
	Total   int `json:"total"`
	Ongoing int `json:"ongoing"`
}

type Snapshot struct {
	OverallStatus string          `json:"overall_status"`
	LastUpdated   time.Time       `json:"last_updated"`
	Services      []ServiceStatus `json:"services"`
	IncidentCount IncidentCount   `json:"incident_count"`
}

// PublicSnapshot builds the public status page payload: every service with
// its unresolved incidents and 30 newest history entries, the system-wide
// overall status and incident counts.
func (v *View) PublicSnapshot() (*Snapshot, error) {
	var services []models.Service

	if err := v.db.Find(&services).Error; err != nil {
		return nil, err
	}

	snapshot := &Snapshot{
		OverallStatus: OverallStatus(services),
		LastUpdated:   time.Now().UTC(),
		Services:      make([]ServiceStatus, 0, len(services)),
	}

	for _, service := range services {
		var unresolved []models.Incident

		err := v.db.Where("service_id = ? AND resolved = ?", service.ID, false).
			Find(&unresolved).Error

		if err != nil {
			return nil, err
		}

		var history []models.StatusHistory

		err = v.db.Where("service_id = ?", service.ID).
			Order("timestamp DESC").
			Limit(30).
			Find(&history).Error

		if err != nil {
			return nil, err
		}

		entries := make([]HistoryEntry, 0, len(history))
		for _, h := range history {
			entries = append(entries, HistoryEntry{Status: h.Status, Timestamp: h.Timestamp})
		}

		snapshot.Services = append(snapshot.Services, ServiceStatus{
			ID:            service.ID,
			Name:          service.Name,
			Status:        service.Status,
			Incidents:     summarize(unresolved),
			StatusHistory: entries,
		})

		var total, ongoing int64

		if err := v.db.Model(&models.Incident{}).Where("service_id = ?", service.ID).Count(&total).Error; err != nil {
			return nil, err
		}

		if err := v.db.Model(&models.Incident{}).Where("service_id = ? AND resolved = ?", service.ID, false).Count(&ongoing).Error; err != nil {
			return nil, err
		}

		snapshot.IncidentCount.Total += int(total)
		snapshot.IncidentCount.Ongoing += int(ongoing)
	}

	return snapshot, nil
}

// Dashboard builds the operator view: every service with its incidents from
// the last 24 hours, newest first.
func (v *View) Dashboard(incidents *incident.Engine) (*Snapshot, error) {
	var services []models.Service

	if err := v.db.Find(&services).Error; err != nil {
		return nil, err
	}

	recent, err := incidents.ListRecent(incident.RecentWindow)

	if err != nil {
		return nil, err
	}

	byService := make(map[uint][]IncidentSummary)
	ongoing := 0
	for _, record := range recent {
		byService[record.ServiceID] = append(byService[record.ServiceID], IncidentSummary{
			ID:          record.ID,
			Status:      record.Status,
			Description: record.Description,
			CreatedAt:   record.CreatedAt,
			Resolved:    record.Resolved,
		})
		if !record.Resolved {
			ongoing++
		}
	}

	snapshot := &Snapshot{
		OverallStatus: OverallStatus(services),
		LastUpdated:   time.Now().UTC(),
		Services:      make([]ServiceStatus, 0, len(services)),
		IncidentCount: IncidentCount{Total: len(recent), Ongoing: ongoing},
	}

	for _, service := range services {
		summaries := byService[service.ID]
		if summaries == nil {
			summaries = []IncidentSummary{}
		}

		snapshot.Services = append(snapshot.Services, ServiceStatus{
			ID:        service.ID,
			Name:      service.Name,
			Status:    service.Status,
			Incidents: summaries,
		})
	}

	return snapshot, nil
}

func summarize(incidents []models.Incident) []IncidentSummary {
	summaries := make([]IncidentSummary, 0, len(incidents))
	for _, record := range incidents {
		summaries = append(summaries, IncidentSummary{
			ID:          record.ID,
			Status:      record.Status,
			Description: record.Description,
			CreatedAt:   record.CreatedAt,
			Resolved:    record.Resolved,
		})
	}
	return summaries
}
