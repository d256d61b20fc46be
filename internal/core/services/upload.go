package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/custodia-labs/docparse-cli/internal/core/domain"
	"github.com/custodia-labs/docparse-cli/internal/core/ports/driven"
	"github.com/custodia-labs/docparse-cli/internal/core/ports/driving"
	"github.com/custodia-labs/docparse-cli/internal/logger"
)

// Ensure UploadOrchestrator implements the interface.
var _ driving.UploadOrchestrator = (*UploadOrchestrator)(nil)

// UploadFailedPrefix starts every failed submission notice.
const UploadFailedPrefix = "Upload failed: "

// UploadOrchestrator owns the selected-file queue and submits it as one batch.
type UploadOrchestrator struct {
	api       driven.DocumentAPI
	observer  driving.UploadObserver
	telemetry driven.Telemetry
	maxSize   int64

	mu       sync.Mutex
	queue    []domain.SelectedFile
	results  []domain.ProcessingResult
	inFlight bool
}

// NewUploadOrchestrator creates an orchestrator.
// The observer and telemetry are optional.
func NewUploadOrchestrator(
	api driven.DocumentAPI,
	settings domain.ClientSettings,
	observer driving.UploadObserver,
	telemetry driven.Telemetry,
) *UploadOrchestrator {
	if observer == nil {
		observer = driving.NopUploadObserver{}
	}
	return &UploadOrchestrator{
		api:       api,
		observer:  observer,
		telemetry: telemetry,
		maxSize:   settings.MaxUploadSize,
	}
}

// AddFiles appends files to the queue in call order.
func (o *UploadOrchestrator) AddFiles(files ...domain.SelectedFile) error {
	for _, f := range files {
		if !f.IsAccepted() {
			return fmt.Errorf("%w: %s", domain.ErrUnsupportedFile, f.Name)
		}
		if o.maxSize > 0 && f.SizeBytes > o.maxSize {
			return fmt.Errorf("%w: %s", domain.ErrFileTooLarge, f.Name)
		}
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	if o.inFlight {
		return domain.ErrUploadInProgress
	}
	o.queue = append(o.queue, files...)
	logger.Debug("upload: queued %d file(s), %d total", len(files), len(o.queue))
	return nil
}

// RemoveFile removes the queued file at index.
func (o *UploadOrchestrator) RemoveFile(index int) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.inFlight {
		return domain.ErrUploadInProgress
	}
	if index < 0 || index >= len(o.queue) {
		return fmt.Errorf("%w: %d", domain.ErrIndexOutOfRange, index)
	}
	o.queue = append(o.queue[:index], o.queue[index+1:]...)
	return nil
}

// Queue returns a copy of the queued files.
func (o *UploadOrchestrator) Queue() []domain.SelectedFile {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]domain.SelectedFile(nil), o.queue...)
}

// Results returns a copy of the last successful submission's results.
func (o *UploadOrchestrator) Results() []domain.ProcessingResult {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]domain.ProcessingResult(nil), o.results...)
}

// InFlight reports whether a submission is running.
func (o *UploadOrchestrator) InFlight() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.inFlight
}

// CanSubmit reports whether Submit would pass its preconditions.
func (o *UploadOrchestrator) CanSubmit(username string) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.checkLocked(username) == nil
}

func (o *UploadOrchestrator) checkLocked(username string) error {
	if o.inFlight {
		return domain.ErrUploadInProgress
	}
	return domain.UploadBatch{Username: username, Files: o.queue}.Validate()
}

// Submit sends the whole queue in one request.
// On failure the queue and the previous results are left as they were.
func (o *UploadOrchestrator) Submit(ctx context.Context, username string) ([]domain.ProcessingResult, error) {
	o.mu.Lock()
	if err := o.checkLocked(username); err != nil {
		o.mu.Unlock()
		return nil, err
	}
	batch := domain.UploadBatch{
		Username: strings.TrimSpace(username),
		Files:    append([]domain.SelectedFile(nil), o.queue...),
	}
	o.inFlight = true
	o.mu.Unlock()

	logger.Info("upload: submitting %d file(s) for %s", len(batch.Files), batch.Username)
	o.observer.OnStart(batch)

	results, err := o.api.Upload(ctx, batch)
	if o.telemetry != nil {
		o.telemetry.UploadFinished(len(batch.Files), err)
	}

	o.mu.Lock()
	o.inFlight = false
	if err != nil {
		o.mu.Unlock()
		logger.Warn("upload: batch failed: %v", err)
		o.observer.OnFailure(domain.Notice{
			Level:   domain.NoticeError,
			Message: UploadFailedPrefix + domain.UserMessage(err),
		})
		return nil, fmt.Errorf("upload: %w", err)
	}
	o.results = append([]domain.ProcessingResult(nil), results...)
	o.queue = nil
	out := append([]domain.ProcessingResult(nil), o.results...)
	o.mu.Unlock()

	logger.Info("upload: received %d result(s)", len(out))
	o.observer.OnComplete(out)
	return out, nil
}
