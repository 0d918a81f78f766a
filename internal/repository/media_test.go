package repository

import (
	"errors"
	"testing"

	"github.com/claimdesk/claimdesk/internal/model"
)

func TestMediaCreateBatchAssignsIDs(t *testing.T) {
	conn := testDB(t)
	claims := NewClaimRepository(conn)
	media := NewMediaRepository(conn)

	if err := claims.CreateWithMedia(testClaim("CL-1"), nil); err != nil {
		t.Fatalf("seed claim: %v", err)
	}

	rows := []*model.ClaimMedia{
		testMedia("CL-1", "claims/CL-1/a.jpg"),
		testMedia("CL-1", "claims/CL-1/b.jpg"),
	}
	if err := media.CreateBatch(rows); err != nil {
		t.Fatalf("create batch: %v", err)
	}
	if rows[0].ID == 0 || rows[1].ID == 0 || rows[0].ID == rows[1].ID {
		t.Fatalf("expected distinct assigned IDs, got %d and %d", rows[0].ID, rows[1].ID)
	}

	got, err := media.ByID(rows[0].ID)
	if err != nil {
		t.Fatalf("by id: %v", err)
	}
	if got.StoragePath != "claims/CL-1/a.jpg" || got.UploadedBy != "adjuster-7" {
		t.Fatalf("media fields did not round-trip: %+v", got)
	}
}

func TestMediaByIDNotFound(t *testing.T) {
	conn := testDB(t)
	media := NewMediaRepository(conn)

	_, err := media.ByID(99)
	if !errors.Is(err, ErrMediaNotFound) {
		t.Fatalf("expected ErrMediaNotFound, got %v", err)
	}
}

func TestMediaForClaimIsScoped(t *testing.T) {
	conn := testDB(t)
	claims := NewClaimRepository(conn)
	media := NewMediaRepository(conn)

	if err := claims.CreateWithMedia(testClaim("CL-1"), []*model.ClaimMedia{
		testMedia("CL-1", "claims/CL-1/a.jpg"),
		testMedia("CL-1", "claims/CL-1/b.jpg"),
	}); err != nil {
		t.Fatalf("seed CL-1: %v", err)
	}
	if err := claims.CreateWithMedia(testClaim("CL-2"), []*model.ClaimMedia{
		testMedia("CL-2", "claims/CL-2/c.jpg"),
	}); err != nil {
		t.Fatalf("seed CL-2: %v", err)
	}

	got, err := media.ForClaim("CL-1")
	if err != nil {
		t.Fatalf("for claim: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 rows for CL-1, got %d", len(got))
	}
	for _, m := range got {
		if m.ClaimID != "CL-1" {
			t.Fatalf("row from wrong claim: %+v", m)
		}
	}
	if got[0].ID > got[1].ID {
		t.Fatalf("expected insertion order, got IDs %d, %d", got[0].ID, got[1].ID)
	}

	count, err := media.CountForClaim("CL-2")
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 row for CL-2, got %d", count)
	}
}

func TestMediaUpdateDescription(t *testing.T) {
	conn := testDB(t)
	claims := NewClaimRepository(conn)
	media := NewMediaRepository(conn)

	rows := []*model.ClaimMedia{testMedia("CL-1", "claims/CL-1/a.jpg")}
	if err := claims.CreateWithMedia(testClaim("CL-1"), rows); err != nil {
		t.Fatalf("seed: %v", err)
	}

	if err := media.UpdateDescription(rows[0].ID, "left door"); err != nil {
		t.Fatalf("update description: %v", err)
	}

	got, err := media.ByID(rows[0].ID)
	if err != nil {
		t.Fatalf("by id: %v", err)
	}
	if got.Description != "left door" {
		t.Fatalf("expected updated description, got %q", got.Description)
	}

	if err := media.UpdateDescription(99, "x"); !errors.Is(err, ErrMediaNotFound) {
		t.Fatalf("expected ErrMediaNotFound, got %v", err)
	}
}

func TestMediaDelete(t *testing.T) {
	conn := testDB(t)
	claims := NewClaimRepository(conn)
	media := NewMediaRepository(conn)

	rows := []*model.ClaimMedia{
		testMedia("CL-1", "claims/CL-1/a.jpg"),
		testMedia("CL-1", "claims/CL-1/b.jpg"),
	}
	if err := claims.CreateWithMedia(testClaim("CL-1"), rows); err != nil {
		t.Fatalf("seed: %v", err)
	}

	affected, err := media.Delete(rows[0].ID)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if affected != 1 {
		t.Fatalf("expected 1 row deleted, got %d", affected)
	}

	// Delete is idempotent at the SQL level.
	affected, err = media.Delete(rows[0].ID)
	if err != nil {
		t.Fatalf("second delete: %v", err)
	}
	if affected != 0 {
		t.Fatalf("expected 0 rows on repeat delete, got %d", affected)
	}

	count, err := media.CountForClaim("CL-1")
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected sibling row to survive, got %d", count)
	}
}
