// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/docparse-cli/internal/core/domain"
)

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewDashboard shows health, stats and the documents table.
	ViewDashboard ViewType = iota
	// ViewDocDetail shows one stored document.
	ViewDocDetail
	// ViewUpload is the file queue and results screen.
	ViewUpload
	// ViewConfirm is the confirmation dialog.
	ViewConfirm
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewDashboard:
		return "dashboard"
	case ViewDocDetail:
		return "doc_detail"
	case ViewUpload:
		return "upload"
	case ViewConfirm:
		return "confirm"
	default:
		return "unknown"
	}
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}

// SnapshotApplied carries a newly applied dashboard snapshot.
type SnapshotApplied struct {
	Snapshot domain.DashboardSnapshot
}

// DetailLoaded carries a document fetched for the detail view.
type DetailLoaded struct {
	Record domain.DocumentRecord
}

// NoticeRaised carries a user-visible message about an action's outcome.
type NoticeRaised struct {
	Notice domain.Notice
}

// RefreshRequested asks the dashboard to refresh now.
type RefreshRequested struct{}

// DocumentRequested asks for a document's detail.
type DocumentRequested struct {
	ID int
}

// DeleteRequested asks the user to confirm deleting a document.
type DeleteRequested struct {
	ID int
}

// ConfirmAnswered carries the user's answer to a confirmation dialog.
type ConfirmAnswered struct {
	ID        int
	Confirmed bool
}

// ActionFinished signals a background action returned.
type ActionFinished struct {
	Err error
}

// UploadStarted signals a batch was sent.
type UploadStarted struct {
	Batch domain.UploadBatch
}

// UploadCompleted carries the results of a successful submission.
type UploadCompleted struct {
	Results []domain.ProcessingResult
}

// UploadFailed carries the notice of a failed submission.
type UploadFailed struct {
	Notice domain.Notice
}

// QueueChanged signals the upload queue changed outside the view.
type QueueChanged struct {
	Added []string
	Err   error
}
