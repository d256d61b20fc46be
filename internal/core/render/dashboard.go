package render

import (
	"sort"
	"strings"

	"github.com/custodia-labs/docparse-cli/internal/core/domain"
)

// UnknownStatus is shown when the service has not reported a status.
const UnknownStatus = "UNKNOWN"

// UnknownService is shown for a backing service missing from the health report.
const UnknownService = "Unknown"

// knownServices are always listed, in this order, with their labels.
var knownServices = []struct {
	name  string
	label string
}{
	{"database", "Database"},
	{"ocr", "OCR Service"},
	{"ai", "AI Service"},
}

// ServiceView is one backing service's state.
type ServiceView struct {
	Name   string `json:"name" yaml:"name"`
	Label  string `json:"label" yaml:"label"`
	State  string `json:"state" yaml:"state"`
	Online bool   `json:"online" yaml:"online"`
}

// HealthPanel is the service health summary.
type HealthPanel struct {
	Status         string        `json:"status" yaml:"status"`
	Healthy        bool          `json:"healthy" yaml:"healthy"`
	LastUpdated    string        `json:"last_updated" yaml:"last_updated"`
	Services       []ServiceView `json:"services" yaml:"services"`
	TotalProcessed int           `json:"total_processed,omitempty" yaml:"total_processed,omitempty"`
}

// Count is a named counter.
type Count struct {
	Name  string `json:"name" yaml:"name"`
	Count int    `json:"count" yaml:"count"`
}

// StatsPanel is the aggregate statistics summary.
type StatsPanel struct {
	TotalDocuments int     `json:"total_documents" yaml:"total_documents"`
	UniqueUsers    int     `json:"unique_users" yaml:"unique_users"`
	Recent24h      int     `json:"recent_24h" yaml:"recent_24h"`
	ByUser         []Count `json:"by_user,omitempty" yaml:"by_user,omitempty"`
	ByDocumentType []Count `json:"by_document_type,omitempty" yaml:"by_document_type,omitempty"`
}

// DocumentRow is one line of the documents table.
type DocumentRow struct {
	ID           int    `json:"id" yaml:"id"`
	Label        string `json:"label" yaml:"label"`
	Username     string `json:"username" yaml:"username"`
	Filename     string `json:"filename" yaml:"filename"`
	DocumentType string `json:"document_type" yaml:"document_type"`
	Timestamp    string `json:"timestamp" yaml:"timestamp"`
}

// Dashboard is the whole dashboard view.
type Dashboard struct {
	Health    HealthPanel   `json:"health" yaml:"health"`
	Stats     StatsPanel    `json:"stats" yaml:"stats"`
	Documents []DocumentRow `json:"documents" yaml:"documents"`
}

// DashboardView renders a snapshot.
func DashboardView(s domain.DashboardSnapshot) Dashboard {
	return Dashboard{
		Health:    Health(s.Health),
		Stats:     Stats(s.Stats),
		Documents: DocumentRows(s.Documents),
	}
}

// Health renders a health snapshot.
func Health(h domain.HealthSnapshot) HealthPanel {
	status := strings.ToUpper(string(h.Status))
	if status == "" {
		status = UnknownStatus
	}
	lastUpdated := NotAvailable
	if !h.Timestamp.IsZero() {
		lastUpdated = h.Timestamp.Local().Format(TimeLayout)
	}

	services := make([]ServiceView, 0, len(knownServices)+len(h.Services))
	seen := make(map[string]bool, len(knownServices))
	for _, k := range knownServices {
		seen[k.name] = true
		services = append(services, serviceView(k.name, k.label, h.Services[k.name]))
	}
	for _, name := range h.ServiceNames() {
		if !seen[name] {
			services = append(services, serviceView(name, name, h.Services[name]))
		}
	}

	return HealthPanel{
		Status:         status,
		Healthy:        h.IsHealthy(),
		LastUpdated:    lastUpdated,
		Services:       services,
		TotalProcessed: h.TotalProcessed,
	}
}

func serviceView(name, label string, state domain.ServiceState) ServiceView {
	shown := string(state)
	if shown == "" {
		shown = UnknownService
	}
	return ServiceView{
		Name:   name,
		Label:  label,
		State:  shown,
		Online: state == domain.ServiceOnline,
	}
}

// Stats renders aggregate counts. Unique users come from the by-user keys.
func Stats(s domain.StatsSnapshot) StatsPanel {
	return StatsPanel{
		TotalDocuments: s.TotalDocuments,
		UniqueUsers:    s.UniqueUsers(),
		Recent24h:      s.Recent24h,
		ByUser:         counts(s.ByUser),
		ByDocumentType: counts(s.ByDocumentType),
	}
}

// counts sorts by count descending then name.
func counts(m map[string]int) []Count {
	out := make([]Count, 0, len(m))
	for name, n := range m {
		out = append(out, Count{Name: name, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// DocumentRows renders the documents table in the order given.
func DocumentRows(records []domain.DocumentRecord) []DocumentRow {
	rows := make([]DocumentRow, 0, len(records))
	for _, r := range records {
		rows = append(rows, DocumentRow{
			ID:           r.ID,
			Label:        DocumentID(r.ID),
			Username:     r.Username,
			Filename:     r.OriginalFilename,
			DocumentType: r.DocumentType,
			Timestamp:    Timestamp(r.Timestamp, r.TimestampRaw),
		})
	}
	return rows
}
