package handler

import (
	"net/http"

	"github.com/claimdesk/claimdesk/internal/service"
)

type DamageHandler struct {
	damageService *service.DamageService
}

func NewDamageHandler(damageService *service.DamageService) *DamageHandler {
	return &DamageHandler{damageService: damageService}
}

// AnalyzeClaim handles POST /claims/{id}/analyze: fetches all stored photos
// of the claim and returns the consolidated damage report.
func (h *DamageHandler) AnalyzeClaim(w http.ResponseWriter, r *http.Request) {
	report, err := h.damageService.AnalyzeClaim(r.Context(), r.PathValue("id"))
	if err != nil {
		Error(w, err)
		return
	}
	JSON(w, http.StatusOK, report)
}

// Analyze handles POST /analyze: analyzes directly uploaded photos without
// touching any claim.
func (h *DamageHandler) Analyze(w http.ResponseWriter, r *http.Request) {
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
	if len(files) == 0 {
		Error(w, service.NewValidationError("no images provided"))
		return
	}

	images := make([]service.Image, 0, len(files))
	for _, f := range files {
		images = append(images, service.Image{Data: f.Data, ContentType: f.ContentType})
	}

	report, err := h.damageService.Analyze(r.Context(), images)
	if err != nil {
		Error(w, err)
		return
	}
	JSON(w, http.StatusOK, report)
}
