package service

import (
	"fmt"
)

// ValidationError is a client input error: malformed metadata, a
// file/description count mismatch, an empty file list, or deleting the last
// photo of a claim. No side effects have occurred; safe to retry corrected.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// UploadError means a blob write failed mid-batch. Uploads completed earlier
// in the same batch have been compensated; no database rows were written.
type UploadError struct {
	Filename string
	Err      error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("uploading %s: %v", e.Filename, e.Err)
}

func (e *UploadError) Unwrap() error {
	return e.Err
}

// PersistenceError means a database write failed after all uploads succeeded.
// The batch's uploaded blobs have been compensated.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persisting %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// ClassificationError wraps any non-success response from the damage
// classifier.
type ClassificationError struct {
	Err error
}

func (e *ClassificationError) Error() string {
	return fmt.Sprintf("damage analysis failed: %v", e.Err)
}

func (e *ClassificationError) Unwrap() error {
	return e.Err
}
