package domain

import (
	"sort"
	"time"
)

// HealthStatus is the overall service status. Anything but healthy is degraded.
type HealthStatus string

// StatusHealthy is the only status treated as fully healthy.
const StatusHealthy HealthStatus = "healthy"

// ServiceState is the state of one backing service (database, ocr, ai).
type ServiceState string

// ServiceOnline is the only state treated as available.
const ServiceOnline ServiceState = "online"

// HealthSnapshot is one observation of the service's health.
type HealthSnapshot struct {
	Status    HealthStatus
	Timestamp time.Time
	Services  map[string]ServiceState

	// TotalProcessed is the document count the health endpoint reports, if any.
	TotalProcessed int
}

// IsHealthy reports whether the service reports itself healthy.
func (h HealthSnapshot) IsHealthy() bool {
	return h.Status == StatusHealthy
}

// ServiceNames returns the reported service names sorted for stable display.
func (h HealthSnapshot) ServiceNames() []string {
	names := make([]string, 0, len(h.Services))
	for name := range h.Services {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// StatsSnapshot holds aggregate counts.
type StatsSnapshot struct {
	TotalDocuments int
	ByUser         map[string]int
	ByDocumentType map[string]int
	Recent24h      int
}

// UniqueUsers is derived from the ByUser key set.
func (s StatsSnapshot) UniqueUsers() int {
	return len(s.ByUser)
}

// DashboardSnapshot is the combined view state. All three parts always come
// from the same refresh.
type DashboardSnapshot struct {
	Health    HealthSnapshot
	Documents []DocumentRecord
	Stats     StatsSnapshot

	// Generation identifies the refresh that produced this snapshot.
	Generation uint64

	// FetchedAt is when the refresh settled.
	FetchedAt time.Time
}

// NoticeLevel classifies user-visible notices.
type NoticeLevel string

// Notice levels.
const (
	NoticeInfo  NoticeLevel = "info"
	NoticeError NoticeLevel = "error"
)

// Notice is a single user-visible message about an action's outcome.
type Notice struct {
	Level   NoticeLevel
	Message string
}

// IsError reports whether the notice signals a failure.
func (n Notice) IsError() bool {
	return n.Level == NoticeError
}
