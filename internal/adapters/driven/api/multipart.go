package api

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"os"
	"strings"

	"github.com/custodia-labs/docparse-cli/internal/core/domain"
)

// Form field names expected by the upload endpoint.
const (
	fieldUsername = "username"
	fieldFiles    = "files"
)

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// multipartBody streams the batch as a multipart form. Files are read from
// disk while the request is being sent, so large batches are never buffered.
func multipartBody(batch domain.UploadBatch) (io.ReadCloser, string) {
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	go func() {
		pw.CloseWithError(writeMultipart(mw, batch))
	}()

	return pr, mw.FormDataContentType()
}

func writeMultipart(mw *multipart.Writer, batch domain.UploadBatch) error {
	if err := mw.WriteField(fieldUsername, batch.Username); err != nil {
		return err
	}
	for _, f := range batch.Files {
		if err := writeFilePart(mw, f); err != nil {
			return err
		}
	}
	return mw.Close()
}

func writeFilePart(mw *multipart.Writer, f domain.SelectedFile) error {
	src, err := os.Open(f.Path)
	if err != nil {
		return fmt.Errorf("open %s: %w", f.Name, err)
	}
	defer src.Close()

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
		fieldFiles, quoteEscaper.Replace(f.Name)))
	h.Set("Content-Type", f.MimeKind.ContentType(f.Name))

	part, err := mw.CreatePart(h)
	if err != nil {
		return err
	}
	if _, err := io.Copy(part, src); err != nil {
		return fmt.Errorf("read %s: %w", f.Name, err)
	}
	return nil
}
