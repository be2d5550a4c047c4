package handlers

import (
	"bytes"
	"io"
	"net/http"

	"github.com/crownsite/server/internal/models"
	"github.com/crownsite/server/internal/observability"
	"github.com/crownsite/server/internal/services"
)

// MediaHandler handles admin media uploads. Uploaded images get a grid
// thumbnail alongside the original; videos are stored as-is.
type MediaHandler struct {
	storage    *services.MediaStorageService
	thumbnails *services.ThumbnailService
	metrics    *observability.BusinessMetrics
}

// NewMediaHandler creates a new MediaHandler
func NewMediaHandler(storage *services.MediaStorageService, thumbnails *services.ThumbnailService, metrics *observability.BusinessMetrics) *MediaHandler {
	return &MediaHandler{
		storage:    storage,
		thumbnails: thumbnails,
		metrics:    metrics,
	}
}

func (h *MediaHandler) recordUpload(r *http.Request, size int64, success bool) {
	if h.metrics != nil {
		h.metrics.RecordMediaUpload(r.Context(), size, success)
	}
}

// Upload accepts one multipart file (field "file") and returns its public
// URL plus a thumbnail URL for images.
func (h *MediaHandler) Upload(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("file")
	if err != nil {
		respondBadRequest(w, "file field is required")
		return
	}
	defer file.Close()

	// Images are buffered so the thumbnail pass can reuse the bytes
	// without re-reading from disk.
	if services.IsSupportedImage(header.Filename) {
		data, err := io.ReadAll(file)
		if err != nil {
			respondError(w, err)
			return
		}

		storedPath, err := h.storage.Store(bytes.NewReader(data), header.Filename, int64(len(data)))
		h.recordUpload(r, int64(len(data)), err == nil)
		if err != nil {
			respondError(w, err)
			return
		}

		response := models.UploadResponse{URL: h.storage.PublicURL(storedPath)}

		thumbs, err := h.thumbnails.GenerateThumbnails(data, models.NewImageID(), storedPath)
		if err == nil {
			response.ThumbnailURL = h.storage.PublicURL(thumbs.GridPath)
		}
		// A failed thumbnail never fails the upload; the original serves.

		respondJSON(w, http.StatusCreated, response)
		return
	}

	storedPath, err := h.storage.Store(file, header.Filename, header.Size)
	h.recordUpload(r, header.Size, err == nil)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, models.UploadResponse{URL: h.storage.PublicURL(storedPath)})
}
