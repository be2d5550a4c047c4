package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/crownsite/server/internal/collection"
	"github.com/crownsite/server/internal/middleware"
	"github.com/crownsite/server/internal/models"
	"github.com/crownsite/server/internal/observability"
	"github.com/crownsite/server/internal/services"
)

// DashboardHandler exposes the admin content manager. Every route runs
// behind session auth; the session id keys the workspace so all tabs of
// one login share mirrors, filters, and page positions.
type DashboardHandler struct {
	dashboard *services.DashboardService
	hub       *services.WebSocketHub
	metrics   *observability.BusinessMetrics
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(dashboard *services.DashboardService, hub *services.WebSocketHub, metrics *observability.BusinessMetrics) *DashboardHandler {
	return &DashboardHandler{
		dashboard: dashboard,
		hub:       hub,
		metrics:   metrics,
	}
}

// workspace resolves the caller's workspace. These routes run behind
// session auth, but a missing session still answers 401 instead of
// dereferencing a nil workspace.
func (h *DashboardHandler) workspace(w http.ResponseWriter, r *http.Request) (*services.Workspace, bool) {
	session := middleware.GetSessionFromContext(r.Context())
	if session == nil {
		respondError(w, models.ErrSessionNotFound)
		return nil, false
	}
	return h.dashboard.Workspace(session.ID), true
}

func (h *DashboardHandler) notify(collectionName, action, recordID string) {
	if h.metrics != nil {
		h.metrics.RecordAdminMutation(context.Background(), collectionName, action, true)
	}
	h.hub.BroadcastToTopic(services.TopicAdmin, services.WSMessage{
		Type: services.WSTypeContentUpdated,
		Payload: services.ContentUpdatedPayload{
			Collection: collectionName,
			Action:     action,
			RecordID:   recordID,
		},
	})
}

// CollectionPage is one page of a managed collection plus its window.
type CollectionPage[T collection.Record] struct {
	Items []T                 `json:"items"`
	Info  collection.PageInfo `json:"info"`
}

// listCollection applies the view parameters (page, q, reload) and
// returns the current page. The first list for a collection in a
// workspace fetches the store; later calls work off the mirror.
func listCollection[T collection.Record](w http.ResponseWriter, r *http.Request, ws *services.Workspace, name string, ctrl *collection.Controller[T]) {
	force := r.URL.Query().Get("reload") == "1"
	if err := ws.EnsureLoaded(r.Context(), name, force, ctrl.Load); err != nil {
		respondError(w, err)
		return
	}

	if r.URL.Query().Has("q") {
		ctrl.SetFilter(r.URL.Query().Get("q"))
	}
	if page, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && page > 0 {
		ctrl.SetPage(page)
	}

	respondJSON(w, http.StatusOK, CollectionPage[T]{Items: ctrl.Page(), Info: ctrl.Info()})
}

// ensureLoaded loads the collection before a mutation so the mirror the
// coordinator works against is populated.
func ensureLoaded[T collection.Record](r *http.Request, ws *services.Workspace, name string, ctrl *collection.Controller[T]) error {
	return ws.EnsureLoaded(r.Context(), name, false, ctrl.Load)
}

// Hero slides

func (h *DashboardHandler) ListSlides(w http.ResponseWriter, r *http.Request) {
	ws, ok := h.workspace(w, r)
	if !ok {
		return
	}
	listCollection(w, r, ws, "slides", ws.Slides)
}

func (h *DashboardHandler) CreateSlide(w http.ResponseWriter, r *http.Request) {
	var req models.CreateSlideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}

	slide, err := models.NewHeroSlide(req.MediaURL, req.MediaKind, req.CTALabel, req.CTAURL, req.Position)
	if err != nil {
		respondError(w, err)
		return
	}

	ws, ok := h.workspace(w, r)
	if !ok {
		return
	}
	if err := ensureLoaded(r, ws, "slides", ws.Slides); err != nil {
		respondError(w, err)
		return
	}
	stored, err := ws.Slides.Create(r.Context(), slide)
	if err != nil {
		respondError(w, err)
		return
	}

	h.notify("slides", "created", stored.ID)
	respondJSON(w, http.StatusCreated, stored)
}

func (h *DashboardHandler) UpdateSlide(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req models.UpdateSlideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}

	ws, ok := h.workspace(w, r)
	if !ok {
		return
	}
	if err := ensureLoaded(r, ws, "slides", ws.Slides); err != nil {
		respondError(w, err)
		return
	}

	existing, ok := ws.Slides.Get(id)
	if !ok {
		respondError(w, collection.ErrNotFound)
		return
	}

	updated := *existing
	if req.MediaURL != nil {
		updated.MediaURL = *req.MediaURL
	}
	if req.MediaKind != nil {
		if !models.IsValidMediaKind(*req.MediaKind) {
			respondError(w, models.ErrInvalidMediaKind)
			return
		}
		updated.MediaKind = models.MediaKind(*req.MediaKind)
	}
	if req.CTALabel != nil {
		updated.CTALabel = *req.CTALabel
	}
	if req.CTAURL != nil {
		updated.CTAURL = *req.CTAURL
	}
	if req.Position != nil {
		updated.Position = *req.Position
	}

	stored, err := ws.Slides.Update(r.Context(), id, &updated)
	if err != nil {
		respondError(w, err)
		return
	}

	h.notify("slides", "updated", id)
	respondJSON(w, http.StatusOK, stored)
}

func (h *DashboardHandler) DeleteSlide(w http.ResponseWriter, r *http.Request) {
	h.deleteFrom(w, r, "slides", func(ws *services.Workspace, id string) error {
		if err := ensureLoaded(r, ws, "slides", ws.Slides); err != nil {
			return err
		}
		return ws.Slides.Delete(r.Context(), id)
	})
}

// deleteFrom runs the shared delete flow: confirm with the store through
// the controller, then notify admin tabs.
func (h *DashboardHandler) deleteFrom(w http.ResponseWriter, r *http.Request, name string, del func(*services.Workspace, string) error) {
	id := chi.URLParam(r, "id")
	ws, ok := h.workspace(w, r)
	if !ok {
		return
	}

	if err := del(ws, id); err != nil {
		respondError(w, err)
		return
	}

	h.notify(name, "deleted", id)
	respondJSON(w, http.StatusNoContent, nil)
}

// Featured posts

func (h *DashboardHandler) ListPosts(w http.ResponseWriter, r *http.Request) {
	ws, ok := h.workspace(w, r)
	if !ok {
		return
	}
	listCollection(w, r, ws, "posts", ws.Posts)
}

func (h *DashboardHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	var req models.CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}

	post, err := models.NewFeaturedPost(req.MediaURL, req.MediaKind, req.Caption, req.Link, req.Position)
	if err != nil {
		respondError(w, err)
		return
	}

	ws, ok := h.workspace(w, r)
	if !ok {
		return
	}
	if err := ensureLoaded(r, ws, "posts", ws.Posts); err != nil {
		respondError(w, err)
		return
	}
	stored, err := ws.Posts.Create(r.Context(), post)
	if err != nil {
		respondError(w, err)
		return
	}

	h.notify("posts", "created", stored.ID)
	respondJSON(w, http.StatusCreated, stored)
}

func (h *DashboardHandler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req models.UpdatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}

	ws, ok := h.workspace(w, r)
	if !ok {
		return
	}
	if err := ensureLoaded(r, ws, "posts", ws.Posts); err != nil {
		respondError(w, err)
		return
	}

	existing, ok := ws.Posts.Get(id)
	if !ok {
		respondError(w, collection.ErrNotFound)
		return
	}

	updated := *existing
	if req.MediaURL != nil {
		updated.MediaURL = *req.MediaURL
	}
	if req.MediaKind != nil {
		if !models.IsValidMediaKind(*req.MediaKind) {
			respondError(w, models.ErrInvalidMediaKind)
			return
		}
		updated.MediaKind = models.MediaKind(*req.MediaKind)
	}
	if req.Caption != nil {
		updated.Caption = *req.Caption
	}
	if req.Link != nil {
		updated.Link = *req.Link
	}
	if req.Position != nil {
		updated.Position = *req.Position
	}

	stored, err := ws.Posts.Update(r.Context(), id, &updated)
	if err != nil {
		respondError(w, err)
		return
	}

	h.notify("posts", "updated", id)
	respondJSON(w, http.StatusOK, stored)
}

func (h *DashboardHandler) DeletePost(w http.ResponseWriter, r *http.Request) {
	h.deleteFrom(w, r, "posts", func(ws *services.Workspace, id string) error {
		if err := ensureLoaded(r, ws, "posts", ws.Posts); err != nil {
			return err
		}
		return ws.Posts.Delete(r.Context(), id)
	})
}

// Stats

func (h *DashboardHandler) ListStats(w http.ResponseWriter, r *http.Request) {
	ws, ok := h.workspace(w, r)
	if !ok {
		return
	}
	listCollection(w, r, ws, "stats", ws.Stats)
}

func (h *DashboardHandler) CreateStat(w http.ResponseWriter, r *http.Request) {
	var req models.CreateStatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}

	stat, err := models.NewStat(req.Icon, req.Title, req.Value, req.Position)
	if err != nil {
		respondError(w, err)
		return
	}

	ws, ok := h.workspace(w, r)
	if !ok {
		return
	}
	if err := ensureLoaded(r, ws, "stats", ws.Stats); err != nil {
		respondError(w, err)
		return
	}
	stored, err := ws.Stats.Create(r.Context(), stat)
	if err != nil {
		respondError(w, err)
		return
	}

	h.notify("stats", "created", stored.ID)
	respondJSON(w, http.StatusCreated, stored)
}

func (h *DashboardHandler) UpdateStat(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req models.UpdateStatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}

	ws, ok := h.workspace(w, r)
	if !ok {
		return
	}
	if err := ensureLoaded(r, ws, "stats", ws.Stats); err != nil {
		respondError(w, err)
		return
	}

	existing, ok := ws.Stats.Get(id)
	if !ok {
		respondError(w, collection.ErrNotFound)
		return
	}

	updated := *existing
	if req.Icon != nil {
		// Unknown icons render as the fallback rather than failing.
		updated.Icon = models.ResolveStatIcon(*req.Icon)
	}
	if req.Title != nil {
		updated.Title = *req.Title
	}
	if req.Value != nil {
		updated.Value = *req.Value
	}
	if req.Position != nil {
		updated.Position = *req.Position
	}

	stored, err := ws.Stats.Update(r.Context(), id, &updated)
	if err != nil {
		respondError(w, err)
		return
	}

	h.notify("stats", "updated", id)
	respondJSON(w, http.StatusOK, stored)
}

func (h *DashboardHandler) DeleteStat(w http.ResponseWriter, r *http.Request) {
	h.deleteFrom(w, r, "stats", func(ws *services.Workspace, id string) error {
		if err := ensureLoaded(r, ws, "stats", ws.Stats); err != nil {
			return err
		}
		return ws.Stats.Delete(r.Context(), id)
	})
}

// Countries

func (h *DashboardHandler) ListCountries(w http.ResponseWriter, r *http.Request) {
	ws, ok := h.workspace(w, r)
	if !ok {
		return
	}
	listCollection(w, r, ws, "countries", ws.Countries)
}

func (h *DashboardHandler) CreateCountry(w http.ResponseWriter, r *http.Request) {
	var req models.CreateCountryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}

	country, err := models.NewCountry(req.Name)
	if err != nil {
		respondError(w, err)
		return
	}

	ws, ok := h.workspace(w, r)
	if !ok {
		return
	}
	if err := ensureLoaded(r, ws, "countries", ws.Countries); err != nil {
		respondError(w, err)
		return
	}
	stored, err := ws.Countries.Create(r.Context(), country)
	if err != nil {
		respondError(w, err)
		return
	}

	h.notify("countries", "created", stored.ID)
	respondJSON(w, http.StatusCreated, stored)
}

func (h *DashboardHandler) UpdateCountry(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req models.UpdateCountryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}
	if req.Name == nil {
		respondBadRequest(w, "name is required")
		return
	}

	ws, ok := h.workspace(w, r)
	if !ok {
		return
	}
	if err := ensureLoaded(r, ws, "countries", ws.Countries); err != nil {
		respondError(w, err)
		return
	}

	existing, ok := ws.Countries.Get(id)
	if !ok {
		respondError(w, collection.ErrNotFound)
		return
	}

	updated := *existing
	updated.Name = *req.Name

	stored, err := ws.Countries.Update(r.Context(), id, &updated)
	if err != nil {
		respondError(w, err)
		return
	}

	h.notify("countries", "updated", id)
	respondJSON(w, http.StatusOK, stored)
}

func (h *DashboardHandler) DeleteCountry(w http.ResponseWriter, r *http.Request) {
	h.deleteFrom(w, r, "countries", func(ws *services.Workspace, id string) error {
		if err := ensureLoaded(r, ws, "countries", ws.Countries); err != nil {
			return err
		}
		return ws.Countries.Delete(r.Context(), id)
	})
}

// News

func (h *DashboardHandler) ListNews(w http.ResponseWriter, r *http.Request) {
	ws, ok := h.workspace(w, r)
	if !ok {
		return
	}
	listCollection(w, r, ws, "news", ws.News)
}

func (h *DashboardHandler) CreateNews(w http.ResponseWriter, r *http.Request) {
	var req models.CreateNewsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}

	publishedAt := timeOrNow(req.PublishedAt)
	item, err := models.NewNewsItem(req.Title, req.Body, req.MediaURL, publishedAt)
	if err != nil {
		respondError(w, err)
		return
	}

	ws, ok := h.workspace(w, r)
	if !ok {
		return
	}
	if err := ensureLoaded(r, ws, "news", ws.News); err != nil {
		respondError(w, err)
		return
	}
	stored, err := ws.News.Create(r.Context(), item)
	if err != nil {
		respondError(w, err)
		return
	}

	h.notify("news", "created", stored.ID)
	respondJSON(w, http.StatusCreated, stored)
}

func (h *DashboardHandler) UpdateNews(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req models.UpdateNewsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}

	ws, ok := h.workspace(w, r)
	if !ok {
		return
	}
	if err := ensureLoaded(r, ws, "news", ws.News); err != nil {
		respondError(w, err)
		return
	}

	existing, ok := ws.News.Get(id)
	if !ok {
		respondError(w, collection.ErrNotFound)
		return
	}

	updated := *existing
	if req.Title != nil {
		updated.Title = *req.Title
	}
	if req.Body != nil {
		updated.Body = *req.Body
	}
	if req.MediaURL != nil {
		updated.MediaURL = *req.MediaURL
	}
	if req.PublishedAt != nil {
		updated.PublishedAt = *req.PublishedAt
	}

	stored, err := ws.News.Update(r.Context(), id, &updated)
	if err != nil {
		respondError(w, err)
		return
	}

	h.notify("news", "updated", id)
	respondJSON(w, http.StatusOK, stored)
}

func (h *DashboardHandler) DeleteNews(w http.ResponseWriter, r *http.Request) {
	h.deleteFrom(w, r, "news", func(ws *services.Workspace, id string) error {
		if err := ensureLoaded(r, ws, "news", ws.News); err != nil {
			return err
		}
		return ws.News.Delete(r.Context(), id)
	})
}

// Sponsors

func (h *DashboardHandler) ListSponsors(w http.ResponseWriter, r *http.Request) {
	ws, ok := h.workspace(w, r)
	if !ok {
		return
	}
	listCollection(w, r, ws, "sponsors", ws.Sponsors)
}

func (h *DashboardHandler) CreateSponsor(w http.ResponseWriter, r *http.Request) {
	var req models.CreateSponsorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}

	sponsor, err := models.NewSponsor(req.Name, req.LogoURL, req.Link, req.Position)
	if err != nil {
		respondError(w, err)
		return
	}

	ws, ok := h.workspace(w, r)
	if !ok {
		return
	}
	if err := ensureLoaded(r, ws, "sponsors", ws.Sponsors); err != nil {
		respondError(w, err)
		return
	}
	stored, err := ws.Sponsors.Create(r.Context(), sponsor)
	if err != nil {
		respondError(w, err)
		return
	}

	h.notify("sponsors", "created", stored.ID)
	respondJSON(w, http.StatusCreated, stored)
}

func (h *DashboardHandler) UpdateSponsor(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req models.UpdateSponsorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}

	ws, ok := h.workspace(w, r)
	if !ok {
		return
	}
	if err := ensureLoaded(r, ws, "sponsors", ws.Sponsors); err != nil {
		respondError(w, err)
		return
	}

	existing, ok := ws.Sponsors.Get(id)
	if !ok {
		respondError(w, collection.ErrNotFound)
		return
	}

	updated := *existing
	if req.Name != nil {
		updated.Name = *req.Name
	}
	if req.LogoURL != nil {
		updated.LogoURL = *req.LogoURL
	}
	if req.Link != nil {
		updated.Link = *req.Link
	}
	if req.Position != nil {
		updated.Position = *req.Position
	}

	stored, err := ws.Sponsors.Update(r.Context(), id, &updated)
	if err != nil {
		respondError(w, err)
		return
	}

	h.notify("sponsors", "updated", id)
	respondJSON(w, http.StatusOK, stored)
}

func (h *DashboardHandler) DeleteSponsor(w http.ResponseWriter, r *http.Request) {
	h.deleteFrom(w, r, "sponsors", func(ws *services.Workspace, id string) error {
		if err := ensureLoaded(r, ws, "sponsors", ws.Sponsors); err != nil {
			return err
		}
		return ws.Sponsors.Delete(r.Context(), id)
	})
}
