package repository

import (
	"database/sql"
	"errors"

	"github.com/claimdesk/claimdesk/internal/model"
	"github.com/jmoiron/sqlx"
)

var (
	ErrMediaNotFound = errors.New("media not found")
)

type MediaRepository interface {
	// CreateBatch inserts all media rows in one transaction. IDs are assigned
	// by the database and written back to the passed items.
	CreateBatch(media []*model.ClaimMedia) error
	ByID(id int64) (*model.ClaimMedia, error)
	ForClaim(claimID string) ([]*model.ClaimMedia, error)
	All() ([]*model.ClaimMedia, error)
	CountForClaim(claimID string) (int, error)
	UpdateDescription(id int64, description string) error
	Delete(id int64) (int64, error)
}

type mediaRepository struct {
	db *sqlx.DB
}

func NewMediaRepository(db *sqlx.DB) *mediaRepository {
	return &mediaRepository{db: db}
}

// insertMedia is shared with the claim repository so claim + media creation
// can run in a single transaction. The id write-back uses RETURNING, which
// works on both drivers (the pgx Result has no LastInsertId).
func insertMedia(tx *sqlx.Tx, media []*model.ClaimMedia) error {
	query := `INSERT INTO claim_media (claim_id, storage_path, description, uploaded_by, content_type, size_bytes, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)
	          RETURNING id`

	for _, m := range media {
		err := tx.QueryRow(query,
			m.ClaimID,
			m.StoragePath,
			m.Description,
			m.UploadedBy,
			m.ContentType,
			m.SizeBytes,
			m.CreatedAt,
		).Scan(&m.ID)
		if err != nil {
			return err
		}
	}

	return nil
}

func (r *mediaRepository) CreateBatch(media []*model.ClaimMedia) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	err = insertMedia(tx, media)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (r *mediaRepository) ByID(id int64) (*model.ClaimMedia, error) {
	media := &model.ClaimMedia{}
	query := `SELECT * FROM claim_media WHERE id = $1`

	err := r.db.Get(media, query, id)
	if err == sql.ErrNoRows {
		return nil, ErrMediaNotFound
	}

	return media, err
}

func (r *mediaRepository) ForClaim(claimID string) ([]*model.ClaimMedia, error) {
	var media []*model.ClaimMedia
	query := `SELECT * FROM claim_media WHERE claim_id = $1 ORDER BY created_at, id`

	err := r.db.Select(&media, query, claimID)
	if err != nil {
		return nil, err
	}

	return media, nil
}

func (r *mediaRepository) All() ([]*model.ClaimMedia, error) {
	var media []*model.ClaimMedia
	query := `SELECT * FROM claim_media ORDER BY created_at DESC, id DESC`

	err := r.db.Select(&media, query)
	if err != nil {
		return nil, err
	}

	return media, nil
}

func (r *mediaRepository) CountForClaim(claimID string) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM claim_media WHERE claim_id = $1`

	err := r.db.Get(&count, query, claimID)
	return count, err
}

func (r *mediaRepository) UpdateDescription(id int64, description string) error {
	query := `UPDATE claim_media SET description = $1 WHERE id = $2`

	result, err := r.db.Exec(query, description, id)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrMediaNotFound
	}

	return nil
}

func (r *mediaRepository) Delete(id int64) (int64, error) {
	query := `DELETE FROM claim_media WHERE id = $1`

	result, err := r.db.Exec(query, id)
	if err != nil {
		return 0, err
	}

	return result.RowsAffected()
}
