package handlers

import (
	"encoding/json"
	"net"
	"net/http"

	"github.com/crownsite/server/internal/middleware"
	"github.com/crownsite/server/internal/models"
	"github.com/crownsite/server/internal/observability"
	"github.com/crownsite/server/internal/services"
)

// AuthHandler handles admin login and logout
type AuthHandler struct {
	authService *services.AuthService
	dashboard   *services.DashboardService
	metrics     *observability.BusinessMetrics
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService *services.AuthService, dashboard *services.DashboardService, metrics *observability.BusinessMetrics) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		dashboard:   dashboard,
		metrics:     metrics,
	}
}

// Login verifies the passcode and returns a session token. The token is
// also set as an HttpOnly cookie for browser clients.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}

	session, token, err := h.authService.Login(r.Context(), req.Passcode, clientIP(r))
	if h.metrics != nil {
		h.metrics.RecordAuthAttempt(r.Context(), err == nil)
	}
	if err != nil {
		respondError(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "session_token",
		Value:    token,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})

	respondJSON(w, http.StatusOK, models.LoginResponse{
		Token:     token,
		ExpiresAt: session.ExpiresAt,
	})
}

// Logout invalidates the session and drops its workspace.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	session := middleware.GetSessionFromContext(r.Context())
	if session != nil {
		h.dashboard.Release(session.ID)
	}

	if token := bearerOrCookieToken(r); token != "" {
		if err := h.authService.Logout(r.Context(), token); err != nil {
			respondError(w, err)
			return
		}
	}

	if h.metrics != nil {
		h.metrics.RecordLogout(r.Context())
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "session_token",
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	respondJSON(w, http.StatusNoContent, nil)
}

// Session returns the current session for a "still logged in?" probe.
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	session := middleware.GetSessionFromContext(r.Context())
	if session == nil {
		respondError(w, models.ErrSessionNotFound)
		return
	}
	respondJSON(w, http.StatusOK, session)
}

func bearerOrCookieToken(r *http.Request) string {
	if auth := r.Header.Get("Authorization"); len(auth) > 7 && auth[:7] == "Bearer " {
		return auth[7:]
	}
	if cookie, err := r.Cookie("session_token"); err == nil {
		return cookie.Value
	}
	return ""
}

func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		return fwd
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
