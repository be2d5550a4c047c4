package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/crownsite/server/internal/services"
)

// SiteHandler serves the public read-only content endpoints
type SiteHandler struct {
	content *services.SiteContentService
}

// NewSiteHandler creates a new SiteHandler
func NewSiteHandler(content *services.SiteContentService) *SiteHandler {
	return &SiteHandler{content: content}
}

// Landing returns the landing page content in one response.
func (h *SiteHandler) Landing(w http.ResponseWriter, r *http.Request) {
	landing, err := h.content.Landing(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, landing)
}

// Countries returns the alphabetical country list.
func (h *SiteHandler) Countries(w http.ResponseWriter, r *http.Request) {
	countries, err := h.content.Countries(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, countries)
}

// Albums returns one page of the public gallery, filtered by q.
func (h *SiteHandler) Albums(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}

	albums, err := h.content.Albums(r.Context(), page, r.URL.Query().Get("q"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, albums)
}

// AlbumBySlug returns one album with its images.
func (h *SiteHandler) AlbumBySlug(w http.ResponseWriter, r *http.Request) {
	album, err := h.content.AlbumBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, album)
}

// News returns one page of news items, newest first.
func (h *SiteHandler) News(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}

	news, err := h.content.News(r.Context(), page)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, news)
}
