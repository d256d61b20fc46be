package driven

import (
	"context"

	"github.com/custodia-labs/docparse-cli/internal/core/domain"
)

// FileInspector turns a local path into a SelectedFile.
type FileInspector interface {
	// Inspect stats the path and detects its kind.
	// The returned file may have MimeKindOther; callers decide whether to queue it.
	Inspect(path string) (domain.SelectedFile, error)
}

// DropWatcher reports files that appear in a watched folder.
type DropWatcher interface {
	// Watch blocks until ctx is cancelled or Close is called, invoking onFile
	// once for every file created or moved into dir.
	Watch(ctx context.Context, dir string, onFile func(path string)) error

	// Close stops watching.
	Close() error
}
