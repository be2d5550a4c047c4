package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/crownsite/server/internal/collection"
	"github.com/crownsite/server/internal/middleware"
	"github.com/crownsite/server/internal/models"
	"github.com/crownsite/server/internal/repository"
	"github.com/crownsite/server/internal/services"
)

// AlbumHandler manages albums and their image arrays from the dashboard.
// Album CRUD goes through the workspace controller like any collection;
// image operations hit the repository's read-modify-write directly and
// push the returned album back into the mirror.
type AlbumHandler struct {
	dashboard *services.DashboardService
	albumRepo repository.AlbumRepo
	hub       *services.WebSocketHub
}

// NewAlbumHandler creates a new AlbumHandler
func NewAlbumHandler(dashboard *services.DashboardService, albumRepo repository.AlbumRepo, hub *services.WebSocketHub) *AlbumHandler {
	return &AlbumHandler{
		dashboard: dashboard,
		albumRepo: albumRepo,
		hub:       hub,
	}
}

func (h *AlbumHandler) notify(action, recordID string) {
	h.hub.BroadcastToTopic(services.TopicAdmin, services.WSMessage{
		Type: services.WSTypeContentUpdated,
		Payload: services.ContentUpdatedPayload{
			Collection: "albums",
			Action:     action,
			RecordID:   recordID,
		},
	})
}

// workspace resolves the caller's workspace, answering 401 when the
// session is missing from context.
func (h *AlbumHandler) workspace(w http.ResponseWriter, r *http.Request) (*services.Workspace, bool) {
	session := middleware.GetSessionFromContext(r.Context())
	if session == nil {
		respondError(w, models.ErrSessionNotFound)
		return nil, false
	}
	return h.dashboard.Workspace(session.ID), true
}

// ListAlbums returns the current page of the album manager, honoring the
// name search filter (q) and page selection.
func (h *AlbumHandler) ListAlbums(w http.ResponseWriter, r *http.Request) {
	ws, ok := h.workspace(w, r)
	if !ok {
		return
	}
	listCollection(w, r, ws, "albums", ws.Albums)
}

func (h *AlbumHandler) CreateAlbum(w http.ResponseWriter, r *http.Request) {
	var req models.CreateAlbumRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}

	album, err := models.NewAlbum(req.Name)
	if err != nil {
		respondError(w, err)
		return
	}

	ws, ok := h.workspace(w, r)
	if !ok {
		return
	}
	if err := ensureLoaded(r, ws, "albums", ws.Albums); err != nil {
		respondError(w, err)
		return
	}
	stored, err := ws.Albums.Create(r.Context(), album)
	if err != nil {
		respondError(w, err)
		return
	}

	h.notify("created", stored.ID)
	respondJSON(w, http.StatusCreated, stored)
}

func (h *AlbumHandler) UpdateAlbum(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req models.UpdateAlbumRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}

	ws, ok := h.workspace(w, r)
	if !ok {
		return
	}
	if err := ensureLoaded(r, ws, "albums", ws.Albums); err != nil {
		respondError(w, err)
		return
	}

	existing, ok := ws.Albums.Get(id)
	if !ok {
		respondError(w, collection.ErrNotFound)
		return
	}

	updated := *existing
	if req.Name != nil {
		updated.Name = *req.Name
	}
	if req.CoverURL != nil {
		updated.CoverURL = *req.CoverURL
	}

	stored, err := ws.Albums.Update(r.Context(), id, &updated)
	if err != nil {
		respondError(w, err)
		return
	}

	h.notify("updated", id)
	respondJSON(w, http.StatusOK, stored)
}

func (h *AlbumHandler) DeleteAlbum(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	ws, ok := h.workspace(w, r)
	if !ok {
		return
	}

	if err := ensureLoaded(r, ws, "albums", ws.Albums); err != nil {
		respondError(w, err)
		return
	}
	if err := ws.Albums.Delete(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}

	h.notify("deleted", id)
	respondJSON(w, http.StatusNoContent, nil)
}

// AddImage appends an image to the album's array and returns the updated
// album.
func (h *AlbumHandler) AddImage(w http.ResponseWriter, r *http.Request) {
	albumID := chi.URLParam(r, "id")

	var req models.AddImageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}

	image, err := models.NewImage(req.URL, req.Caption)
	if err != nil {
		respondError(w, err)
		return
	}

	album, err := h.albumRepo.AppendImage(r.Context(), albumID, *image)
	if err != nil {
		respondError(w, err)
		return
	}

	h.applyToWorkspace(r, album)
	h.notify("image_added", albumID)
	respondJSON(w, http.StatusCreated, album)
}

// UpdateImage edits an image's caption in place.
func (h *AlbumHandler) UpdateImage(w http.ResponseWriter, r *http.Request) {
	albumID := chi.URLParam(r, "id")
	imageID := chi.URLParam(r, "imageId")

	var req models.UpdateImageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}

	current, err := h.albumRepo.GetByID(r.Context(), albumID)
	if err != nil {
		respondError(w, err)
		return
	}
	if current == nil {
		respondError(w, models.ErrAlbumNotFound)
		return
	}

	var image *models.Image
	for i := range current.Images {
		if current.Images[i].ID == imageID {
			image = &current.Images[i]
			break
		}
	}
	if image == nil {
		respondError(w, models.ErrImageNotFound)
		return
	}

	if req.Caption != nil {
		image.Caption = *req.Caption
	}

	album, err := h.albumRepo.ReplaceImage(r.Context(), albumID, *image)
	if err != nil {
		respondError(w, err)
		return
	}

	h.applyToWorkspace(r, album)
	h.notify("image_updated", albumID)
	respondJSON(w, http.StatusOK, album)
}

// DeleteImage removes an image from the album's array.
func (h *AlbumHandler) DeleteImage(w http.ResponseWriter, r *http.Request) {
	albumID := chi.URLParam(r, "id")
	imageID := chi.URLParam(r, "imageId")

	album, err := h.albumRepo.RemoveImage(r.Context(), albumID, imageID)
	if err != nil {
		respondError(w, err)
		return
	}

	h.applyToWorkspace(r, album)
	h.notify("image_removed", albumID)
	respondJSON(w, http.StatusOK, album)
}

// applyToWorkspace pushes the canonical album into this session's mirror
// so the manager view reflects the image change without a refetch.
func (h *AlbumHandler) applyToWorkspace(r *http.Request, album *models.Album) {
	session := middleware.GetSessionFromContext(r.Context())
	if session == nil {
		return
	}
	h.dashboard.Workspace(session.ID).Albums.Apply(album)
}
