package service

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/claimdesk/claimdesk/internal/model"
	"github.com/claimdesk/claimdesk/internal/repository"
	"github.com/claimdesk/claimdesk/internal/saga"
	"github.com/claimdesk/claimdesk/internal/storage"
	"github.com/claimdesk/claimdesk/internal/validation"
	"github.com/google/uuid"
)

// MediaUpload is one photo payload of a submission.
type MediaUpload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ClaimService drives the multi-step claim+media submissions. Every mutation
// writes to two independently-failing stores (the bucket and the database);
// blobs are always written first and compensated with deletes when a later
// step fails, so neither orphaned blobs nor dangling rows persist.
type ClaimService struct {
	claimRepo repository.ClaimRepository
	mediaRepo repository.MediaRepository
	storage   storage.Storage
	email     *EmailService
}

func NewClaimService(claimRepo repository.ClaimRepository, mediaRepo repository.MediaRepository, storage storage.Storage, email *EmailService) *ClaimService {
	return &ClaimService{
		claimRepo: claimRepo,
		mediaRepo: mediaRepo,
		storage:   storage,
		email:     email,
	}
}

// normalizeDescriptions aligns per-file descriptions with the file list.
// A single comma-bearing entry addressed at multiple files is split into one
// entry per file, for clients that cannot submit parallel list fields. An
// empty list means no descriptions. Anything else must match the file count.
func normalizeDescriptions(descriptions []string, files int) ([]string, error) {
	if len(descriptions) == 1 && files > 1 && strings.Contains(descriptions[0], ",") {
		parts := strings.Split(descriptions[0], ",")
		descriptions = make([]string, 0, len(parts))
		for _, p := range parts {
			descriptions = append(descriptions, strings.TrimSpace(p))
		}
	}

	if len(descriptions) == 0 {
		return make([]string, files), nil
	}
	if len(descriptions) != files {
		return nil, NewValidationError("got %d descriptions for %d files", len(descriptions), files)
	}
	return descriptions, nil
}

// mediaPath returns a fresh per-claim-scoped unique blob path for an upload.
func mediaPath(claimID, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	return fmt.Sprintf("claims/%s/%s%s", claimID, uuid.New().String(), ext)
}

// addUploadSteps appends the upload phase: a leading step whose compensation
// batch-deletes every blob the phase has written, then one upload step per
// file in input order. A file only joins the cleanup list once its write
// succeeded, so a failure anywhere later unwinds exactly the blobs that exist.
func (s *ClaimService) addUploadSteps(sg *saga.Saga, claimID string, files []MediaUpload) []string {
	paths := make([]string, len(files))
	uploaded := make([]string, 0, len(files))

	sg.AddFunc("track uploaded blobs",
		func(ctx context.Context) error { return nil },
		func(ctx context.Context) error {
			return s.storage.DeleteAll(uploaded)
		},
	)

	for i := range files {
		file := files[i]
		path := mediaPath(claimID, file.Filename)
		paths[i] = path

		sg.AddFunc(fmt.Sprintf("upload %s", file.Filename),
			func(ctx context.Context) error {
				err := s.storage.Save(path, bytes.NewReader(file.Data), file.ContentType)
				if err != nil {
					return &UploadError{Filename: file.Filename, Err: err}
				}
				uploaded = append(uploaded, path)
				return nil
			},
			nil,
		)
	}
	return paths
}

func buildMediaRows(claimID, uploadedBy string, files []MediaUpload, descriptions, paths []string, now time.Time) []*model.ClaimMedia {
	media := make([]*model.ClaimMedia, len(files))
	for i, file := range files {
		media[i] = &model.ClaimMedia{
			ClaimID:     claimID,
			StoragePath: paths[i],
			Description: descriptions[i],
			UploadedBy:  uploadedBy,
			ContentType: file.ContentType,
			SizeBytes:   int64(len(file.Data)),
			CreatedAt:   now,
		}
	}
	return media
}

// CreateClaimWithMedia creates a claim together with its first photos. The
// metadata is validated before any side effect; then each photo is uploaded
// in input order, and only after all uploads succeed are the claim row and
// media rows inserted (one transaction). A failure at any step compensates
// the blobs written so far and surfaces the original error.
func (s *ClaimService) CreateClaimWithMedia(ctx context.Context, meta validation.ClaimMetadata, uploadedBy string, files []MediaUpload, descriptions []string) (*model.Claim, []*model.ClaimMedia, error) {
	if len(files) == 0 {
		return nil, nil, NewValidationError("at least one photo is required")
	}
	descriptions, err := normalizeDescriptions(descriptions, len(files))
	if err != nil {
		return nil, nil, err
	}
	if err := validation.ValidateClaimMetadata(meta); err != nil {
		return nil, nil, &ValidationError{Message: err.Error()}
	}

	now := time.Now()
	claim := &model.Claim{
		ID:               "CL-" + uuid.New().String(),
		PolicyNumber:     meta.PolicyNumber,
		CustomerID:       meta.CustomerID,
		IncidentDate:     meta.IncidentDate,
		IncidentTime:     meta.IncidentTime,
		IncidentLocation: meta.IncidentLocation,
		Description:      meta.Description,
		Status:           model.ClaimStatusPending,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	sg := saga.New("create_claim")
	paths := s.addUploadSteps(sg, claim.ID, files)
	media := buildMediaRows(claim.ID, uploadedBy, files, descriptions, paths, now)

	sg.AddFunc("persist claim and media",
		func(ctx context.Context) error {
			err := s.claimRepo.CreateWithMedia(claim, media)
			if err != nil {
				return &PersistenceError{Op: "claim and media", Err: err}
			}
			return nil
		},
		nil,
	)

	if err := sg.Execute(ctx); err != nil {
		return nil, nil, err
	}

	s.markActive(claim)
	s.notifySubmitted(claim, len(media))
	s.locate(media...)

	return claim, media, nil
}

// AddMediaToClaim attaches more photos to an existing claim, with the same
// upload-then-compensate discipline. The post-insert status transition to
// active is best-effort: its failure is logged and does not fail the call.
func (s *ClaimService) AddMediaToClaim(ctx context.Context, claimID, uploadedBy string, files []MediaUpload, descriptions []string) ([]*model.ClaimMedia, error) {
	claim, err := s.claimRepo.ByID(claimID)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, NewValidationError("at least one photo is required")
	}
	descriptions, err = normalizeDescriptions(descriptions, len(files))
	if err != nil {
		return nil, err
	}

	now := time.Now()
	sg := saga.New("add_media")
	paths := s.addUploadSteps(sg, claim.ID, files)
	media := buildMediaRows(claim.ID, uploadedBy, files, descriptions, paths, now)

	sg.AddFunc("persist media",
		func(ctx context.Context) error {
			err := s.mediaRepo.CreateBatch(media)
			if err != nil {
				return &PersistenceError{Op: "media", Err: err}
			}
			return nil
		},
		nil,
	)

	if err := sg.Execute(ctx); err != nil {
		return nil, err
	}

	if claim.Status != model.ClaimStatusActive {
		s.markActive(claim)
	}
	s.locate(media...)

	return media, nil
}

// UpdateClaimAndMedia applies a merge-patch to claim metadata and attaches any
// new photos. Fields absent from the patch are left untouched. A failure after
// the new files were uploaded compensates only those blobs; pre-existing media
// is never touched. Returns the claim, whether any text field changed, and
// the newly added media records.
func (s *ClaimService) UpdateClaimAndMedia(ctx context.Context, claimID string, patch model.ClaimPatch, uploadedBy string, files []MediaUpload, descriptions []string) (*model.Claim, bool, []*model.ClaimMedia, error) {
	claim, err := s.claimRepo.ByID(claimID)
	if err != nil {
		return nil, false, nil, err
	}
	descriptions, err = normalizeDescriptions(descriptions, len(files))
	if err != nil {
		return nil, false, nil, err
	}
	if err := validatePatch(patch); err != nil {
		return nil, false, nil, err
	}

	now := time.Now()
	sg := saga.New("update_claim")
	paths := s.addUploadSteps(sg, claim.ID, files)
	media := buildMediaRows(claim.ID, uploadedBy, files, descriptions, paths, now)

	var changed bool
	sg.AddFunc("persist claim patch and media",
		func(ctx context.Context) error {
			if !patch.Empty() {
				applied, err := s.claimRepo.Update(claim.ID, patch)
				if err != nil {
					return &PersistenceError{Op: "claim patch", Err: err}
				}
				changed = applied
			}
			if len(media) > 0 {
				err := s.mediaRepo.CreateBatch(media)
				if err != nil {
					return &PersistenceError{Op: "media", Err: err}
				}
			}
			return nil
		},
		nil,
	)

	if err := sg.Execute(ctx); err != nil {
		return nil, false, nil, err
	}

	if changed {
		updated, err := s.claimRepo.ByID(claim.ID)
		if err != nil {
			slog.Warn("failed to reload claim after update", "claim_id", claim.ID, "error", err)
		} else {
			claim = updated
		}
	}

	s.locate(media...)
	return claim, changed, media, nil
}

// DeleteMedia removes one photo: blob first (best-effort), then the row. A
// claim that has photos must never be reduced to zero, so deleting the last
// one is rejected before any side effect.
func (s *ClaimService) DeleteMedia(ctx context.Context, mediaID int64) (*model.ClaimMedia, error) {
	media, err := s.mediaRepo.ByID(mediaID)
	if err != nil {
		return nil, err
	}

	count, err := s.mediaRepo.CountForClaim(media.ClaimID)
	if err != nil {
		return nil, &PersistenceError{Op: "media count", Err: err}
	}
	if count <= 1 {
		return nil, NewValidationError("cannot delete the last photo of claim %s", media.ClaimID)
	}

	// Favor no dangling rows over a potential orphaned blob: a failed blob
	// removal is logged and the row is deleted regardless.
	if err := s.storage.Delete(media.StoragePath); err != nil {
		slog.Warn("failed to delete blob, removing row anyway",
			"media_id", media.ID,
			"storage_path", media.StoragePath,
			"error", err,
		)
	}

	affected, err := s.mediaRepo.Delete(media.ID)
	if err != nil {
		return nil, &PersistenceError{Op: "media delete", Err: err}
	}
	if affected == 0 {
		return nil, repository.ErrMediaNotFound
	}

	return media, nil
}

// UpdateMediaDescription is a metadata-only update on one media row.
func (s *ClaimService) UpdateMediaDescription(mediaID int64, description string) (*model.ClaimMedia, error) {
	err := s.mediaRepo.UpdateDescription(mediaID, description)
	if err != nil {
		return nil, err
	}
	media, err := s.mediaRepo.ByID(mediaID)
	if err != nil {
		return nil, err
	}
	s.locate(media)
	return media, nil
}

// MediaDownloadURL returns a time-limited link for downloading one photo.
func (s *ClaimService) MediaDownloadURL(mediaID int64) (string, error) {
	media, err := s.mediaRepo.ByID(mediaID)
	if err != nil {
		return "", err
	}
	return s.storage.PresignedURL(media.StoragePath)
}

func (s *ClaimService) Claims() ([]*model.Claim, error) {
	return s.claimRepo.All()
}

func (s *ClaimService) ClaimByID(id string) (*model.Claim, error) {
	return s.claimRepo.ByID(id)
}

func (s *ClaimService) MediaForClaim(claimID string) ([]*model.ClaimMedia, error) {
	_, err := s.claimRepo.ByID(claimID)
	if err != nil {
		return nil, err
	}
	media, err := s.mediaRepo.ForClaim(claimID)
	if err != nil {
		return nil, err
	}
	s.locate(media...)
	return media, nil
}

func (s *ClaimService) AllMedia() ([]*model.ClaimMedia, error) {
	media, err := s.mediaRepo.All()
	if err != nil {
		return nil, err
	}
	s.locate(media...)
	return media, nil
}

func (s *ClaimService) MediaByID(id int64) (*model.ClaimMedia, error) {
	media, err := s.mediaRepo.ByID(id)
	if err != nil {
		return nil, err
	}
	s.locate(media)
	return media, nil
}

// locate fills the public locator of each media record from its storage path.
func (s *ClaimService) locate(media ...*model.ClaimMedia) {
	for _, m := range media {
		if m != nil {
			m.URL = s.storage.URL(m.StoragePath)
		}
	}
}

// markActive transitions a claim to active once media is durably attached.
// Best-effort: media persistence already succeeded, a failed status update
// must not fail the operation.
func (s *ClaimService) markActive(claim *model.Claim) {
	err := s.claimRepo.UpdateStatus(claim.ID, model.ClaimStatusActive)
	if err != nil {
		slog.Warn("failed to mark claim active", "claim_id", claim.ID, "error", err)
		return
	}
	claim.Status = model.ClaimStatusActive
}

func (s *ClaimService) notifySubmitted(claim *model.Claim, mediaCount int) {
	if s.email == nil {
		return
	}
	err := s.email.SendClaimSubmitted(claim.ID, claim.PolicyNumber, mediaCount)
	if err != nil {
		slog.Warn("failed to send claim notification", "claim_id", claim.ID, "error", err)
	}
}

func validatePatch(patch model.ClaimPatch) error {
	check := func(field string, value *string) error {
		if value != nil && strings.TrimSpace(*value) == "" {
			return NewValidationError("%s cannot be set to empty", field)
		}
		return nil
	}
	if err := check("policy_number", patch.PolicyNumber); err != nil {
		return err
	}
	if err := check("customer_id", patch.CustomerID); err != nil {
		return err
	}
	if err := check("incident_location", patch.IncidentLocation); err != nil {
		return err
	}
	if patch.IncidentDate != nil {
		if err := validation.ValidateDate(*patch.IncidentDate); err != nil {
			return &ValidationError{Message: err.Error()}
		}
	}
	if patch.IncidentTime != nil {
		if err := validation.ValidateTime(*patch.IncidentTime); err != nil {
			return &ValidationError{Message: err.Error()}
		}
	}
	return nil
}
