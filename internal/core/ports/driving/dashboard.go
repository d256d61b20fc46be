package driving

import (
	"context"

	"github.com/custodia-labs/docparse-cli/internal/core/domain"
)

// ConfirmFunc asks the user to confirm a destructive action.
type ConfirmFunc func(prompt string) bool

// DashboardPoller keeps the dashboard snapshot refreshed and runs document actions.
type DashboardPoller interface {
	// Start refreshes immediately and then on every poll interval.
	// It does not block. Calling Start twice is a no-op.
	Start(ctx context.Context) error

	// Stop ends polling. Refreshes still in flight are ignored when they settle.
	Stop() error

	// RefreshAll fetches health, documents and stats together and applies
	// them atomically unless a newer refresh has already been applied.
	RefreshAll(ctx context.Context) error

	// Snapshot returns the last applied snapshot and whether one exists.
	Snapshot() (domain.DashboardSnapshot, bool)

	// ViewDocument fetches a record and makes it the current detail.
	ViewDocument(ctx context.Context, id int) (*domain.DocumentRecord, error)

	// Detail returns the current detail, nil when none is open.
	Detail() *domain.DocumentRecord

	// CloseDetail clears the current detail.
	CloseDetail()

	// DeleteDocument deletes a record after confirm returns true,
	// then refreshes the dashboard once.
	DeleteDocument(ctx context.Context, id int, confirm ConfirmFunc) error

	// LastError returns the error of the last failed refresh, nil after a success.
	LastError() error
}

// DashboardObserver receives dashboard state changes.
type DashboardObserver interface {
	// OnSnapshot is called after a snapshot has been applied.
	OnSnapshot(snapshot domain.DashboardSnapshot)

	// OnDetail is called when a document detail has been loaded.
	OnDetail(record domain.DocumentRecord)

	// OnNotice is called with a user-visible message.
	OnNotice(notice domain.Notice)
}

// NopDashboardObserver ignores every event.
type NopDashboardObserver struct{}

// OnSnapshot implements DashboardObserver.
func (NopDashboardObserver) OnSnapshot(domain.DashboardSnapshot) {}

// OnDetail implements DashboardObserver.
func (NopDashboardObserver) OnDetail(domain.DocumentRecord) {}

// OnNotice implements DashboardObserver.
func (NopDashboardObserver) OnNotice(domain.Notice) {}
