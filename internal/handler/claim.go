package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/claimdesk/claimdesk/internal/model"
	"github.com/claimdesk/claimdesk/internal/service"
	"github.com/claimdesk/claimdesk/internal/validation"
)

type ClaimHandler struct {
	claimService *service.ClaimService
}

func NewClaimHandler(claimService *service.ClaimService) *ClaimHandler {
	return &ClaimHandler{claimService: claimService}
}

// Create handles POST /claims: multipart form with claim metadata fields,
// "files" parts and optional "descriptions" values.
func (h *ClaimHandler) Create(w http.ResponseWriter, r *http.Request) {
	err := r.ParseMultipartForm(maxUploadMemory)
	if err != nil {
		Error(w, service.NewValidationError("invalid multipart form: %v", err))
		return
	}

	meta := validation.ClaimMetadata{
		PolicyNumber:     r.FormValue("policy_number"),
		CustomerID:       r.FormValue("customer_id"),
		IncidentDate:     r.FormValue("incident_date"),
		IncidentTime:     r.FormValue("incident_time"),
		IncidentLocation: r.FormValue("incident_location"),
		Description:      r.FormValue("description"),
	}

	files, err := readUploads(r)
	if err != nil {
		Error(w, err)
		return
	}
	descriptions := r.MultipartForm.Value["descriptions"]

	claim, media, err := h.claimService.CreateClaimWithMedia(r.Context(), meta, uploader(r), files, descriptions)
	if err != nil {
		Error(w, err)
		return
	}

	slog.Info("claim created", "claim_id", claim.ID, "media", len(media))
	JSON(w, http.StatusCreated, map[string]any{
		"claim": claim,
		"media": media,
	})
}

// List handles GET /claims.
func (h *ClaimHandler) List(w http.ResponseWriter, r *http.Request) {
	claims, err := h.claimService.Claims()
	if err != nil {
		Error(w, err)
		return
	}
	JSON(w, http.StatusOK, claims)
}

// Show handles GET /claims/{id}.
func (h *ClaimHandler) Show(w http.ResponseWriter, r *http.Request) {
	claim, err := h.claimService.ClaimByID(r.PathValue("id"))
	if err != nil {
		Error(w, err)
		return
	}
	JSON(w, http.StatusOK, claim)
}

// Update handles PUT /claims/{id}: multipart form carrying a merge-patch
// (only present fields are applied) and optionally new "files" parts.
func (h *ClaimHandler) Update(w http.ResponseWriter, r *http.Request) {
	err := r.ParseMultipartForm(maxUploadMemory)
	if err != nil {
		Error(w, service.NewValidationError("invalid multipart form: %v", err))
		return
	}

	patch := claimPatchFromForm(r)
	files, err := readUploads(r)
	if err != nil {
		Error(w, err)
		return
	}
	descriptions := r.MultipartForm.Value["descriptions"]

	claim, changed, media, err := h.claimService.UpdateClaimAndMedia(r.Context(), r.PathValue("id"), patch, uploader(r), files, descriptions)
	if err != nil {
		Error(w, err)
		return
	}

	JSON(w, http.StatusOK, map[string]any{
		"claim":   claim,
		"changed": changed,
		"media":   media,
	})
}

// AddMedia handles POST /claims/{id}/media.
func (h *ClaimHandler) AddMedia(w http.ResponseWriter, r *http.Request) {
	err := r.ParseMultipartForm(maxUploadMemory)
	if err != nil {
		Error(w, service.NewValidationError("invalid multipart form: %v", err))
		return
	}

	files, err := readUploads(r)
	if err != nil {
		Error(w, err)
		return
	}
	descriptions := r.MultipartForm.Value["descriptions"]

	media, err := h.claimService.AddMediaToClaim(r.Context(), r.PathValue("id"), uploader(r), files, descriptions)
	if err != nil {
		Error(w, err)
		return
	}

	JSON(w, http.StatusCreated, media)
}

// ClaimMedia handles GET /claims/{id}/media.
func (h *ClaimHandler) ClaimMedia(w http.ResponseWriter, r *http.Request) {
	media, err := h.claimService.MediaForClaim(r.PathValue("id"))
	if err != nil {
		Error(w, err)
		return
	}
	JSON(w, http.StatusOK, media)
}

// claimPatchFromForm builds a merge-patch from the form: only fields present
// in the request are set, so absent fields stay untouched.
func claimPatchFromForm(r *http.Request) model.ClaimPatch {
	patch := model.ClaimPatch{}
	get := func(key string) *string {
		values, ok := r.MultipartForm.Value[key]
		if !ok || len(values) == 0 {
			return nil
		}
		return &values[0]
	}
	patch.PolicyNumber = get("policy_number")
	patch.CustomerID = get("customer_id")
	patch.IncidentDate = get("incident_date")
	patch.IncidentTime = get("incident_time")
	patch.IncidentLocation = get("incident_location")
	patch.Description = get("description")
	return patch
}

// decodeJSONBody is shared by the JSON-body endpoints.
func decodeJSONBody(r *http.Request, v any) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if err != nil {
		return service.NewValidationError("invalid JSON body: %v", err)
	}
	return nil
}
