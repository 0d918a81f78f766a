package model

import (
	"time"
)

type ClaimMedia struct {
	ID          int64     `db:"id" json:"id"` // assigned by the database on insert
	ClaimID     string    `db:"claim_id" json:"claim_id"`
	StoragePath string    `db:"storage_path" json:"storage_path"`
	Description string    `db:"description" json:"description,omitempty"`
	UploadedBy  string    `db:"uploaded_by" json:"uploaded_by"`
	ContentType string    `db:"content_type" json:"content_type"`
	SizeBytes   int64     `db:"size_bytes" json:"size_bytes"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`

	// URL is the public locator for the blob, derived from StoragePath by the
	// service layer; it is not stored.
	URL string `db:"-" json:"url,omitempty"`
}
