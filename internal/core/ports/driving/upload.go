package driving

import (
	"context"

	"github.com/custodia-labs/docparse-cli/internal/core/domain"
)

// UploadOrchestrator owns the upload queue and submits it as one batch.
type UploadOrchestrator interface {
	// AddFiles appends files to the queue in the given order.
	// The whole call is rejected if any file is unsupported or too large.
	AddFiles(files ...domain.SelectedFile) error

	// RemoveFile removes the queued file at index.
	RemoveFile(index int) error

	// Queue returns a copy of the queued files.
	Queue() []domain.SelectedFile

	// Results returns a copy of the results of the last successful submission.
	Results() []domain.ProcessingResult

	// InFlight reports whether a submission is running.
	InFlight() bool

	// CanSubmit reports whether Submit would pass its preconditions.
	CanSubmit(username string) bool

	// Submit sends every queued file in one request.
	// Validation failures return a domain sentinel without any network call.
	Submit(ctx context.Context, username string) ([]domain.ProcessingResult, error)
}

// UploadObserver receives submission lifecycle events.
type UploadObserver interface {
	// OnStart is called once the batch has been accepted for sending.
	OnStart(batch domain.UploadBatch)

	// OnComplete is called with the new results after a successful submission.
	OnComplete(results []domain.ProcessingResult)

	// OnFailure is called when the request failed. The queue is kept.
	OnFailure(notice domain.Notice)
}

// NopUploadObserver ignores every event.
type NopUploadObserver struct{}

// OnStart implements UploadObserver.
func (NopUploadObserver) OnStart(domain.UploadBatch) {}

// OnComplete implements UploadObserver.
func (NopUploadObserver) OnComplete([]domain.ProcessingResult) {}

// OnFailure implements UploadObserver.
func (NopUploadObserver) OnFailure(domain.Notice) {}
