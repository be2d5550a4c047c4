package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/crownsite/server/internal/collection"
	"github.com/crownsite/server/internal/models"
	"github.com/crownsite/server/internal/repository"
)

func timeOrNow(t *time.Time) time.Time {
	if t != nil {
		return *t
	}
	return time.Now().UTC()
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		json.NewEncoder(w).Encode(payload)
	}
}

// respondError maps domain errors to HTTP status codes and the uniform
// error body. The kind field carries the failure taxonomy so clients can
// phrase the message per action instead of parsing error strings.
func respondError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	kind := "unavailable"

	switch err {
	case collection.ErrBusy:
		status = http.StatusConflict
		kind = "busy"
	case collection.ErrTimeout:
		status = http.StatusGatewayTimeout
		kind = "timeout"
	case collection.ErrNotFound,
		models.ErrAlbumNotFound,
		models.ErrImageNotFound,
		models.ErrCountryNotFound,
		models.ErrRegistrationNotFound,
		repository.ErrRowNotFound:
		status = http.StatusNotFound
		kind = "not_found"
	case models.ErrCountryNameTaken:
		status = http.StatusConflict
		kind = "conflict"
	case models.ErrImagesMalformed:
		status = http.StatusUnprocessableEntity
		kind = "malformed_data"
	case models.ErrSessionNotFound, models.ErrSessionExpired,
		models.ErrInvalidPasscode, models.ErrPasscodeRequired:
		status = http.StatusUnauthorized
		kind = "unauthorized"
	case models.ErrFileTooLarge:
		status = http.StatusRequestEntityTooLarge
		kind = "malformed_data"
	default:
		// Validation failures from model constructors are client errors.
		switch err.(type) {
		case models.MediaError, models.StatError, models.CountryError,
			models.AlbumError, models.NewsError, models.SponsorError,
			models.RegistrationError:
			status = http.StatusBadRequest
			kind = "malformed_data"
		}
	}

	respondJSON(w, status, models.ErrorResponse{Error: err.Error(), Kind: kind})
}

func respondBadRequest(w http.ResponseWriter, message string) {
	respondJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: message, Kind: "malformed_data"})
}
