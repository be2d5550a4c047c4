package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/crownsite/server/internal/collection"
	"github.com/crownsite/server/internal/middleware"
	"github.com/crownsite/server/internal/models"
	"github.com/crownsite/server/internal/observability"
	"github.com/crownsite/server/internal/services"
)

// RegistrationHandler handles the public registration form and the admin
// view over submitted registrations.
type RegistrationHandler struct {
	registrationService *services.RegistrationService
	dashboard           *services.DashboardService
	metrics             *observability.BusinessMetrics
	maxBodyBytes        int64
}

// NewRegistrationHandler creates a new RegistrationHandler
func NewRegistrationHandler(registrationService *services.RegistrationService, dashboard *services.DashboardService, metrics *observability.BusinessMetrics, maxBodyMB int64) *RegistrationHandler {
	if maxBodyMB <= 0 {
		maxBodyMB = 50
	}
	return &RegistrationHandler{
		registrationService: registrationService,
		dashboard:           dashboard,
		metrics:             metrics,
		maxBodyBytes:        maxBodyMB * 1024 * 1024,
	}
}

// Submit accepts the multipart registration form from the public site.
// Text fields: fullName, email, phone, country. File field: photos.
func (h *RegistrationHandler) Submit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodyBytes)
	if err := r.ParseMultipartForm(h.maxBodyBytes); err != nil {
		respondBadRequest(w, "invalid multipart body")
		return
	}

	var photos []services.PhotoUpload
	if r.MultipartForm != nil {
		for _, header := range r.MultipartForm.File["photos"] {
			file, err := header.Open()
			if err != nil {
				respondBadRequest(w, "unreadable photo upload")
				return
			}
			defer file.Close()
			photos = append(photos, services.PhotoUpload{
				Reader:   file,
				Filename: header.Filename,
				Size:     header.Size,
			})
		}
	}

	reg, err := h.registrationService.Submit(
		r.Context(),
		r.FormValue("fullName"),
		r.FormValue("email"),
		r.FormValue("phone"),
		r.FormValue("country"),
		photos,
	)
	if h.metrics != nil {
		h.metrics.RecordRegistration(r.Context(), r.FormValue("country"), len(photos), err == nil)
	}
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, reg)
}

// List returns the admin's paged view over registrations.
func (h *RegistrationHandler) List(w http.ResponseWriter, r *http.Request) {
	ws, ok := h.workspace(w, r)
	if !ok {
		return
	}
	listCollection(w, r, ws, "registrations", ws.Registrations)
}

// Delete removes a registration and its stored photos.
func (h *RegistrationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	ws, ok := h.workspace(w, r)
	if !ok {
		return
	}

	if err := ensureLoaded(r, ws, "registrations", ws.Registrations); err != nil {
		respondError(w, err)
		return
	}

	reg, ok := ws.Registrations.Get(id)
	if !ok {
		respondError(w, collection.ErrNotFound)
		return
	}

	// Remove the row through the controller so the mirror and page state
	// stay consistent, then sweep the photo files.
	if err := ws.Registrations.Delete(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	for _, p := range reg.PhotoPaths {
		h.registrationService.DeletePhotoFile(p)
	}

	respondJSON(w, http.StatusNoContent, nil)
}

// workspace resolves the caller's workspace, answering 401 when the
// session is missing from context.
func (h *RegistrationHandler) workspace(w http.ResponseWriter, r *http.Request) (*services.Workspace, bool) {
	session := middleware.GetSessionFromContext(r.Context())
	if session == nil {
		respondError(w, models.ErrSessionNotFound)
		return nil, false
	}
	return h.dashboard.Workspace(session.ID), true
}
