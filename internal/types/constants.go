package types

const (
	StatusOperational = "Operational"
	StatusDegraded    = "Degraded"
	StatusOutage      = "Outage"

	StatusUnknown = "Unknown"
)

const (
	IncidentOngoing   = "Ongoing"
	IncidentResolved  = "Resolved"
	IncidentScheduled = "Scheduled"
)

var (
	ServiceStatuses  = []string{StatusOperational, StatusDegraded, StatusOutage}
	IncidentStatuses = []string{IncidentOngoing, IncidentResolved, IncidentScheduled}

	// severityRank orders service statuses for aggregation. Anything outside
	// the enum ranks below Operational.
	severityRank = map[string]int{
		StatusOutage:      3,
		StatusDegraded:    2,
		StatusOperational: 1,
	}
)

func ValidServiceStatus(status string) bool {
	for _, s := range ServiceStatuses {
		if s == status {
			return true
		}
	}
	return false
}

func ValidIncidentStatus(status string) bool {
	for _, s := range IncidentStatuses {
		if s == status {
			return true
		}
	}
	return false
}

func SeverityRank(status string) int {
	return severityRank[status]
}

const ContextActorKey = "actor"

const RoleAdmin = "admin"

// Actor is the already-authenticated caller identity handed to the engines.
// The request boundary resolves it; the engines only inspect the role set.
type Actor struct {
	ID    uint
	Email string
	Roles []string
}

func (a Actor) HasRole(name string) bool {
	for _, role := range a.Roles {
		if role == name {
			return true
		}
	}
	return false
}

func (a Actor) IsAdmin() bool {
	return a.HasRole(RoleAdmin)
}
