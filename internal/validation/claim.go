package validation

import (
	"fmt"
	"strings"
	"time"
)

// ClaimMetadata holds the text fields of a claim submission before they are
// turned into a model. All validation failures here are client input errors;
// no side effects have occurred yet.
type ClaimMetadata struct {
	PolicyNumber     string
	CustomerID       string
	IncidentDate     string
	IncidentTime     string
	IncidentLocation string
	Description      string
}

// ValidateClaimMetadata checks required fields and date/time formats.
func ValidateClaimMetadata(m ClaimMetadata) error {
	if strings.TrimSpace(m.PolicyNumber) == "" {
		return fmt.Errorf("policy_number is required")
	}
	if strings.TrimSpace(m.CustomerID) == "" {
		return fmt.Errorf("customer_id is required")
	}
	if strings.TrimSpace(m.IncidentLocation) == "" {
		return fmt.Errorf("incident_location is required")
	}
	if err := ValidateDate(m.IncidentDate); err != nil {
		return err
	}
	return ValidateTime(m.IncidentTime)
}

// ValidateDate checks YYYY-MM-DD.
func ValidateDate(s string) error {
	if _, err := time.Parse("2006-01-02", s); err != nil {
		return fmt.Errorf("incident_date must be YYYY-MM-DD: %q", s)
	}
	return nil
}

// ValidateTime checks HH:MM, with seconds accepted.
func ValidateTime(s string) error {
	if _, err := time.Parse("15:04", s); err == nil {
		return nil
	}
	if _, err := time.Parse("15:04:05", s); err == nil {
		return nil
	}
	return fmt.Errorf("incident_time must be HH:MM: %q", s)
}
