package model

import (
	"time"
)

const (
	ClaimStatusPending = "pending"
	ClaimStatusActive  = "active"
)

type Claim struct {
	ID               string    `db:"id" json:"id"` // "CL-" + UUID, generated at submission
	PolicyNumber     string    `db:"policy_number" json:"policy_number"`
	CustomerID       string    `db:"customer_id" json:"customer_id"`
	IncidentDate     string    `db:"incident_date" json:"incident_date"` // YYYY-MM-DD
	IncidentTime     string    `db:"incident_time" json:"incident_time"` // HH:MM
	IncidentLocation string    `db:"incident_location" json:"incident_location"`
	Description      string    `db:"description" json:"description,omitempty"`
	Status           string    `db:"status" json:"status"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time `db:"updated_at" json:"updated_at"`
}

// ClaimPatch is a merge-patch for claim metadata. Nil fields are left untouched.
type ClaimPatch struct {
	PolicyNumber     *string `json:"policy_number,omitempty"`
	CustomerID       *string `json:"customer_id,omitempty"`
	IncidentDate     *string `json:"incident_date,omitempty"`
	IncidentTime     *string `json:"incident_time,omitempty"`
	IncidentLocation *string `json:"incident_location,omitempty"`
	Description      *string `json:"description,omitempty"`
}

// Empty reports whether the patch carries no fields at all.
func (p ClaimPatch) Empty() bool {
	return p.PolicyNumber == nil &&
		p.CustomerID == nil &&
		p.IncidentDate == nil &&
		p.IncidentTime == nil &&
		p.IncidentLocation == nil &&
		p.Description == nil
}
