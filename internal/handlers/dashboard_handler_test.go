package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crownsite/server/internal/models"
	"github.com/crownsite/server/internal/services"
)

func TestWorkspaceRoutesRequireSession(t *testing.T) {
	hub := services.NewWebSocketHub()
	dashboards := NewDashboardHandler(nil, hub, nil)
	albums := NewAlbumHandler(nil, nil, hub)
	registrations := NewRegistrationHandler(nil, nil, nil, 1)

	cases := []struct {
		name string
		call http.HandlerFunc
	}{
		{"list slides", dashboards.ListSlides},
		{"delete slide", dashboards.DeleteSlide},
		{"list countries", dashboards.ListCountries},
		{"list albums", albums.ListAlbums},
		{"delete album", albums.DeleteAlbum},
		{"list registrations", registrations.List},
		{"delete registration", registrations.Delete},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/", nil)

			require.NotPanics(t, func() { tc.call(rr, req) })
			assert.Equal(t, http.StatusUnauthorized, rr.Code)

			var resp models.ErrorResponse
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
			assert.Equal(t, "unauthorized", resp.Kind)
		})
	}
}
