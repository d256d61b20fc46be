package domain

import (
	"path/filepath"
	"strings"
)

// MimeKind is the coarse kind of a selected file.
type MimeKind string

// Recognised file kinds.
const (
	// MimeKindImage covers PNG and JPEG scans.
	MimeKindImage MimeKind = "image"

	// MimeKindPDF covers PDF documents.
	MimeKindPDF MimeKind = "pdf"

	// MimeKindOther is anything the service does not accept.
	MimeKindOther MimeKind = "other"
)

// acceptedExtensions maps the extensions the service accepts to their kind.
var acceptedExtensions = map[string]MimeKind{
	".pdf":  MimeKindPDF,
	".png":  MimeKindImage,
	".jpg":  MimeKindImage,
	".jpeg": MimeKindImage,
}

// KindFromExtension returns the kind implied by a file name's extension.
func KindFromExtension(name string) MimeKind {
	if kind, ok := acceptedExtensions[strings.ToLower(filepath.Ext(name))]; ok {
		return kind
	}
	return MimeKindOther
}

// AcceptedExtensions returns the upload extensions in display order.
func AcceptedExtensions() []string {
	return []string{".pdf", ".jpg", ".jpeg", ".png"}
}

// ContentType returns the MIME type used for the multipart part.
func (k MimeKind) ContentType(name string) string {
	switch k {
	case MimeKindPDF:
		return "application/pdf"
	case MimeKindImage:
		if strings.ToLower(filepath.Ext(name)) == ".png" {
			return "image/png"
		}
		return "image/jpeg"
	default:
		return "application/octet-stream"
	}
}

// SelectedFile is a local file chosen for upload. It is never persisted.
type SelectedFile struct {
	// Name is the file name sent to the service.
	Name string

	// Path is the local path the bytes are read from.
	Path string

	// SizeBytes is the file size.
	SizeBytes int64

	// MimeKind is the detected kind.
	MimeKind MimeKind

	// PageCount is the number of pages for PDFs, 0 when unknown.
	PageCount int
}

// IsAccepted reports whether the service accepts this file.
// Both the detected kind and the name's extension must be recognised,
// since the service validates by extension.
func (f SelectedFile) IsAccepted() bool {
	return f.MimeKind != MimeKindOther && KindFromExtension(f.Name) != MimeKindOther
}

// UploadBatch is one submission: every queued file plus the username.
type UploadBatch struct {
	// Username organises documents on the server. Required.
	Username string

	// Files are sent in queue order.
	Files []SelectedFile
}

// Validate checks the submission preconditions that do not depend on state.
func (b UploadBatch) Validate() error {
	if strings.TrimSpace(b.Username) == "" {
		return ErrUsernameRequired
	}
	if len(b.Files) == 0 {
		return ErrQueueEmpty
	}
	return nil
}
