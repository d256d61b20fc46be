package driven

import (
	"context"

	"github.com/custodia-labs/docparse-cli/internal/core/domain"
)

// DocumentAPI is the remote document-processing service.
// Every method is a single blocking request; failures are returned, never retried.
type DocumentAPI interface {
	// Upload submits the whole batch in one request and returns one result
	// per file in the order the service reports them.
	Upload(ctx context.Context, batch domain.UploadBatch) ([]domain.ProcessingResult, error)

	// Health returns the service health.
	Health(ctx context.Context) (*domain.HealthSnapshot, error)

	// ListDocuments returns stored documents, newest first.
	// An empty username lists all users.
	ListDocuments(ctx context.Context, username string) ([]domain.DocumentRecord, error)

	// GetDocument returns a single record with its full detail.
	// Returns an error matching domain.ErrNotFound if the id does not exist.
	GetDocument(ctx context.Context, id int) (*domain.DocumentRecord, error)

	// DeleteDocument removes a record by id.
	DeleteDocument(ctx context.Context, id int) error

	// Stats returns aggregate counts.
	Stats(ctx context.Context) (*domain.StatsSnapshot, error)
}
