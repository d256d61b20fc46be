package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docparse-cli/internal/core/domain"
)

func TestQueueItems(t *testing.T) {
	items := QueueItems([]domain.SelectedFile{
		{Name: "resume.pdf", SizeBytes: 1_500_000, MimeKind: domain.MimeKindPDF, PageCount: 2},
		{Name: "scan.png", SizeBytes: 0, MimeKind: domain.MimeKindImage},
	})

	require.Len(t, items, 2)
	assert.Equal(t, 0, items[0].Index)
	assert.Equal(t, "1.43 MB", items[0].Size)
	assert.Equal(t, "1.5MB", items[0].HumanSize)
	assert.Equal(t, "pdf", items[0].Kind)
	assert.Equal(t, 2, items[0].Pages)
	assert.Equal(t, "0.00 MB", items[1].Size)
}

func TestMegabytes(t *testing.T) {
	assert.Equal(t, "1.00 MB", Megabytes(1024*1024))
	assert.Equal(t, "0.50 MB", Megabytes(512*1024))
}

func TestUploadButtonLabel(t *testing.T) {
	assert.Equal(t, "Processing...", UploadButtonLabel(3, true))
	assert.Equal(t, "Upload 1 File", UploadButtonLabel(1, false))
	assert.Equal(t, "Upload 2 Files", UploadButtonLabel(2, false))
	assert.Equal(t, "Upload 0 Files", UploadButtonLabel(0, false))
}
