package models

import (
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Registration is a contestant registration submitted from the public
// site's multi-part form, with uploaded photos stored separately and
// referenced here by their storage paths.
type Registration struct {
	ID          string    `json:"id"`
	FullName    string    `json:"fullName"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone,omitempty"`
	Country     string    `json:"country"`
	PhotoPaths  []string  `json:"photoPaths"`
	SubmittedAt time.Time `json:"submittedAt"`
}

// RecordID returns the stable identifier for collection mirroring.
func (r *Registration) RecordID() string { return r.ID }

// NewRegistration creates a registration with a generated ID
func NewRegistration(fullName, email, phone, country string, photoPaths []string) (*Registration, error) {
	fullName = strings.TrimSpace(fullName)
	if fullName == "" {
		return nil, ErrRegistrationNameRequired
	}

	email = strings.TrimSpace(email)
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, ErrRegistrationEmailInvalid
	}

	country = strings.TrimSpace(country)
	if country == "" {
		return nil, ErrRegistrationCountryRequired
	}

	if photoPaths == nil {
		photoPaths = []string{}
	}

	return &Registration{
		ID:          uuid.New().String(),
		FullName:    fullName,
		Email:       strings.ToLower(email),
		Phone:       strings.TrimSpace(phone),
		Country:     country,
		PhotoPaths:  photoPaths,
		SubmittedAt: time.Now().UTC(),
	}, nil
}

// Registration errors
type RegistrationError struct {
	Message string
}

func (e RegistrationError) Error() string {
	return e.Message
}

var (
	ErrRegistrationNameRequired    = RegistrationError{"full name is required"}
	ErrRegistrationEmailInvalid    = RegistrationError{"a valid email address is required"}
	ErrRegistrationCountryRequired = RegistrationError{"country is required"}
	ErrRegistrationNotFound        = RegistrationError{"registration not found"}
)
