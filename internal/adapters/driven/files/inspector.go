// Package files provides local file inspection and drop-folder watching.
package files

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/custodia-labs/docparse-cli/internal/core/domain"
	"github.com/custodia-labs/docparse-cli/internal/core/ports/driven"
	"github.com/custodia-labs/docparse-cli/internal/logger"
)

// Ensure Inspector implements the interface.
var _ driven.FileInspector = (*Inspector)(nil)

// Inspector detects a file's kind from its content and counts PDF pages.
type Inspector struct{}

// NewInspector creates an inspector.
func NewInspector() *Inspector {
	return &Inspector{}
}

// Inspect stats path and detects its kind.
// Content detection wins over the extension; unreadable content falls back to it.
func (i *Inspector) Inspect(path string) (domain.SelectedFile, error) {
	info, err := os.Stat(path)
	if err != nil {
		return domain.SelectedFile{}, fmt.Errorf("inspect %s: %w", path, err)
	}
	if info.IsDir() {
		return domain.SelectedFile{}, fmt.Errorf("%w: %s is a directory", domain.ErrInvalidInput, path)
	}

	f := domain.SelectedFile{
		Name:      filepath.Base(path),
		Path:      path,
		SizeBytes: info.Size(),
		MimeKind:  detectKind(path),
	}
	if f.MimeKind == domain.MimeKindPDF {
		f.PageCount = pageCount(path)
	}
	logger.Debug("files: %s is %s (%d bytes, %d pages)", f.Name, f.MimeKind, f.SizeBytes, f.PageCount)
	return f, nil
}

func detectKind(path string) domain.MimeKind {
	mt, err := mimetype.DetectFile(path)
	if err != nil {
		return domain.KindFromExtension(path)
	}
	switch {
	case mt.Is("application/pdf"):
		return domain.MimeKindPDF
	case mt.Is("image/png"), mt.Is("image/jpeg"):
		return domain.MimeKindImage
	default:
		return domain.MimeKindOther
	}
}

// pageCount returns 0 when the PDF cannot be parsed.
func pageCount(path string) int {
	src, err := os.Open(path)
	if err != nil {
		return 0
	}
	defer src.Close()

	count, err := api.PageCount(src, model.NewDefaultConfiguration())
	if err != nil {
		logger.Debug("files: page count for %s: %v", path, err)
		return 0
	}
	return count
}
