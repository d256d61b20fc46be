// Package tui provides the interactive terminal interface for docparse.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/docparse-cli/internal/adapters/driving/tui/views/upload"
	"github.com/custodia-labs/docparse-cli/internal/core/ports/driving"
)

// Ports aggregates the driving ports used by the TUI.
// Either screen may be left out; the other then runs on its own.
type Ports struct {
	// Dashboard keeps the health, documents and stats panels refreshed.
	Dashboard driving.DashboardPoller

	// Upload owns the selected-file queue.
	Upload driving.UploadOrchestrator

	// Inspect describes a local file before it is queued.
	Inspect upload.InspectFunc
}

// Validate ensures the ports can drive at least one screen.
func (p *Ports) Validate() error {
	if p.Dashboard == nil && p.Upload == nil {
		return ErrMissingScreens
	}
	if p.Upload != nil && p.Inspect == nil {
		return ErrMissingInspector
	}
	return nil
}
