package render

import (
	"fmt"

	"github.com/docker/go-units"

	"github.com/custodia-labs/docparse-cli/internal/core/domain"
)

// ProcessingLabel replaces the upload action label while a batch is in flight.
const ProcessingLabel = "Processing..."

// QueueItem is one selected file in the upload list.
type QueueItem struct {
	Index     int    `json:"index" yaml:"index"`
	Name      string `json:"name" yaml:"name"`
	Kind      string `json:"kind" yaml:"kind"`
	Size      string `json:"size" yaml:"size"`
	HumanSize string `json:"human_size" yaml:"human_size"`
	Pages     int    `json:"pages,omitempty" yaml:"pages,omitempty"`
}

// QueueItems renders the selected files.
func QueueItems(files []domain.SelectedFile) []QueueItem {
	items := make([]QueueItem, 0, len(files))
	for i, f := range files {
		items = append(items, QueueItem{
			Index:     i,
			Name:      f.Name,
			Kind:      string(f.MimeKind),
			Size:      Megabytes(f.SizeBytes),
			HumanSize: units.HumanSize(float64(f.SizeBytes)),
			Pages:     f.PageCount,
		})
	}
	return items
}

// Megabytes formats a byte count with two decimals.
func Megabytes(size int64) string {
	return fmt.Sprintf("%.2f MB", float64(size)/1024/1024)
}

// UploadButtonLabel returns the submit action label.
func UploadButtonLabel(queued int, inFlight bool) string {
	if inFlight {
		return ProcessingLabel
	}
	if queued == 1 {
		return "Upload 1 File"
	}
	return fmt.Sprintf("Upload %d Files", queued)
}
