package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/claimdesk/claimdesk/internal/model"
	"github.com/jmoiron/sqlx"
)

var (
	ErrClaimNotFound = errors.New("claim not found")
)

type ClaimRepository interface {
	// CreateWithMedia inserts the claim row and all of its media rows in one
	// transaction. Media IDs are assigned by the database and written back.
	CreateWithMedia(claim *model.Claim, media []*model.ClaimMedia) error
	ByID(id string) (*model.Claim, error)
	All() ([]*model.Claim, error)
	// Update applies a merge-patch: only non-nil fields are written. Returns
	// true when at least one field was applied.
	Update(id string, patch model.ClaimPatch) (bool, error)
	UpdateStatus(id, status string) error
}

type claimRepository struct {
	db *sqlx.DB
}

func NewClaimRepository(db *sqlx.DB) *claimRepository {
	return &claimRepository{db: db}
}

func (r *claimRepository) CreateWithMedia(claim *model.Claim, media []*model.ClaimMedia) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	query := `INSERT INTO claims (id, policy_number, customer_id, incident_date, incident_time, incident_location, description, status, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err = tx.Exec(query,
		claim.ID,
		claim.PolicyNumber,
		claim.CustomerID,
		claim.IncidentDate,
		claim.IncidentTime,
		claim.IncidentLocation,
		claim.Description,
		claim.Status,
		claim.CreatedAt,
		claim.UpdatedAt,
	)
	if err != nil {
		return err
	}

	err = insertMedia(tx, media)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (r *claimRepository) ByID(id string) (*model.Claim, error) {
	claim := &model.Claim{}
	query := `SELECT * FROM claims WHERE id = $1`

	err := r.db.Get(claim, query, id)
	if err == sql.ErrNoRows {
		return nil, ErrClaimNotFound
	}

	return claim, err
}

func (r *claimRepository) All() ([]*model.Claim, error) {
	var claims []*model.Claim
	query := `SELECT * FROM claims ORDER BY created_at DESC`

	err := r.db.Select(&claims, query)
	if err != nil {
		return nil, err
	}

	return claims, nil
}

func (r *claimRepository) Update(id string, patch model.ClaimPatch) (bool, error) {
	var sets []string
	var args []any

	add := func(column string, value *string) {
		if value == nil {
			return
		}
		args = append(args, *value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	add("policy_number", patch.PolicyNumber)
	add("customer_id", patch.CustomerID)
	add("incident_date", patch.IncidentDate)
	add("incident_time", patch.IncidentTime)
	add("incident_location", patch.IncidentLocation)
	add("description", patch.Description)

	if len(sets) == 0 {
		return false, nil
	}

	args = append(args, time.Now())
	sets = append(sets, fmt.Sprintf("updated_at = $%d", len(args)))

	args = append(args, id)
	query := fmt.Sprintf("UPDATE claims SET %s WHERE id = $%d", strings.Join(sets, ", "), len(args))

	result, err := r.db.Exec(query, args...)
	if err != nil {
		return false, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	if affected == 0 {
		return false, ErrClaimNotFound
	}

	return true, nil
}

func (r *claimRepository) UpdateStatus(id, status string) error {
	query := `UPDATE claims SET status = $1, updated_at = $2 WHERE id = $3`

	result, err := r.db.Exec(query, status, time.Now(), id)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrClaimNotFound
	}

	return nil
}
