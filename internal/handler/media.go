package handler

import (
	"net/http"
	"strconv"

	"github.com/claimdesk/claimdesk/internal/service"
)

type MediaHandler struct {
	claimService *service.ClaimService
}

func NewMediaHandler(claimService *service.ClaimService) *MediaHandler {
	return &MediaHandler{claimService: claimService}
}

// List handles GET /media.
func (h *MediaHandler) List(w http.ResponseWriter, r *http.Request) {
	media, err := h.claimService.AllMedia()
	if err != nil {
		Error(w, err)
		return
	}
	JSON(w, http.StatusOK, media)
}

// Show handles GET /media/{id}.
func (h *MediaHandler) Show(w http.ResponseWriter, r *http.Request) {
	id, err := mediaID(r)
	if err != nil {
		Error(w, err)
		return
	}

	media, err := h.claimService.MediaByID(id)
	if err != nil {
		Error(w, err)
		return
	}
	JSON(w, http.StatusOK, media)
}

// UpdateDescription handles PATCH /media/{id} with a JSON body
// {"description": "..."}.
func (h *MediaHandler) UpdateDescription(w http.ResponseWriter, r *http.Request) {
	id, err := mediaID(r)
	if err != nil {
		Error(w, err)
		return
	}

	var body struct {
		Description string `json:"description"`
	}
	if err := decodeJSONBody(r, &body); err != nil {
		Error(w, err)
		return
	}

	media, err := h.claimService.UpdateMediaDescription(id, body.Description)
	if err != nil {
		Error(w, err)
		return
	}
	JSON(w, http.StatusOK, media)
}

// Download handles GET /media/{id}/download: responds with a time-limited
// link to the blob, for clients that cannot read the bucket directly.
func (h *MediaHandler) Download(w http.ResponseWriter, r *http.Request) {
	id, err := mediaID(r)
	if err != nil {
		Error(w, err)
		return
	}

	url, err := h.claimService.MediaDownloadURL(id)
	if err != nil {
		Error(w, err)
		return
	}
	JSON(w, http.StatusOK, map[string]string{"url": url})
}

// Delete handles DELETE /media/{id}.
func (h *MediaHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := mediaID(r)
	if err != nil {
		Error(w, err)
		return
	}

	deleted, err := h.claimService.DeleteMedia(r.Context(), id)
	if err != nil {
		Error(w, err)
		return
	}
	JSON(w, http.StatusOK, map[string]any{
		"message":        "media deleted",
		"deleted_record": deleted,
	})
}

func mediaID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		return 0, service.NewValidationError("invalid media id: %q", r.PathValue("id"))
	}
	return id, nil
}
