package validation

import (
	"bytes"
	"mime/multipart"
	"testing"
)

var (
	jpegHeader = []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F'}
	pngHeader  = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1A, '\n'}
)

func fileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("files", filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("write part: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(32 << 20)
	if err != nil {
		t.Fatalf("read form: %v", err)
	}
	t.Cleanup(func() { _ = form.RemoveAll() })

	return form.File["files"][0]
}

func TestValidateFile(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		content  []byte
		wantErr  bool
	}{
		{name: "jpeg", filename: "photo.jpg", content: jpegHeader},
		{name: "png", filename: "photo.png", content: pngHeader},
		{name: "text masquerading as jpeg", filename: "notes.jpg", content: []byte("just some text"), wantErr: true},
		{name: "valid content wrong extension", filename: "photo.gif", content: jpegHeader, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			header := fileHeader(t, tt.filename, tt.content)
			err := ValidateFile(header, PhotoConstraints)
			if tt.wantErr && err == nil {
				t.Fatal("expected error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestValidateFileTooLarge(t *testing.T) {
	header := fileHeader(t, "photo.jpg", jpegHeader)
	header.Size = PhotoConstraints.MaxSize + 1

	if err := ValidateFile(header, PhotoConstraints); err == nil {
		t.Fatal("expected size error, got nil")
	}
}
