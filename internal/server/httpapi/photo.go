package httpapi

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/dmitrijs2005/tagme/internal/common"
	"github.com/dmitrijs2005/tagme/internal/photo"
)

// PhotoUploader stores a new card photo.
type PhotoUploader interface {
	Upload(ctx context.Context, id string, image []byte) (photo.Photo, error)
}

// WithUploader enables POST /api/edit/photo.
func WithUploader(u PhotoUploader) Option {
	return func(h *Handler) { h.uploader = u }
}

type photoResponse struct {
	PhotoURL string `json:"photo_url"`
	PhotoB64 string `json:"photo_b64"`
	Error    string `json:"error,omitempty"`
}

// UploadPhoto takes the raw image as the request body. When only the inline
// copy could be produced the response still carries it, with the upload
// error alongside, so the client keeps whatever succeeded.
func (h *Handler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		respondError(w, http.StatusBadRequest, msgNoID)
		return
	}

	image, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		respondError(w, http.StatusBadRequest, "failed to read image")
		return
	}

	p, err := h.uploader.Upload(r.Context(), id, image)
	switch {
	case errors.Is(err, common.ErrNotImage):
		respondError(w, http.StatusBadRequest, err.Error())
	case err != nil && p.B64 == "":
		h.logger.Error(r.Context(), "photo upload failed", "id", id, "error", err)
		respondError(w, http.StatusInternalServerError, "Upload error: "+err.Error())
	case err != nil:
		h.logger.Warn(r.Context(), "photo stored inline only", "id", id, "error", err)
		respondJSON(w, http.StatusOK, photoResponse{PhotoB64: p.B64, Error: "Upload error: " + err.Error()})
	default:
		respondJSON(w, http.StatusCreated, photoResponse{PhotoURL: p.URL, PhotoB64: p.B64})
	}
}
