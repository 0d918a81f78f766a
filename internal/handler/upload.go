package handler

import (
	"fmt"
	"io"
	"net/http"

	"github.com/claimdesk/claimdesk/internal/ctxkeys"
	"github.com/claimdesk/claimdesk/internal/service"
	"github.com/claimdesk/claimdesk/internal/validation"
)

const maxUploadMemory = 32 << 20 // 32MB buffered in memory, rest spills to disk

// readUploads validates and reads the "files" parts of a multipart form.
func readUploads(r *http.Request) ([]service.MediaUpload, error) {
	if r.MultipartForm == nil {
		return nil, nil
	}

	headers := r.MultipartForm.File["files"]
	uploads := make([]service.MediaUpload, 0, len(headers))
	for _, header := range headers {
		err := validation.ValidateFile(header, validation.PhotoConstraints)
		if err != nil {
			return nil, service.NewValidationError("file %s: %v", header.Filename, err)
		}

		file, err := header.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open upload %s: %w", header.Filename, err)
		}
		data, err := io.ReadAll(file)
		_ = file.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read upload %s: %w", header.Filename, err)
		}

		uploads = append(uploads, service.MediaUpload{
			Filename:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Data:        data,
		})
	}

	return uploads, nil
}

// uploader returns the identity that owns new media: the authenticated token
// subject when present, the form field otherwise.
func uploader(r *http.Request) string {
	if id := ctxkeys.Uploader(r.Context()); id != "" {
		return id
	}
	return r.FormValue("uploaded_by")
}
