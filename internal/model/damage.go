package model

// DamageReport is the consolidated result of analyzing all photos of one
// damaged vehicle. Not persisted; returned to the caller as-is.
type DamageReport struct {
	Parts   []string `json:"parts"` // unique damaged part names across all images
	Summary string   `json:"summary"`
}
