package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Country is a participating country available to registration forms.
type Country struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// RecordID returns the stable identifier for collection mirroring.
func (c *Country) RecordID() string { return c.ID }

// NewCountry creates a country with a generated ID
func NewCountry(name string) (*Country, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrCountryNameRequired
	}

	return &Country{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// Country errors
type CountryError struct {
	Message string
}

func (e CountryError) Error() string {
	return e.Message
}

var (
	ErrCountryNameRequired = CountryError{"country name is required"}
	ErrCountryNameTaken    = CountryError{"country name already exists"}
	ErrCountryNotFound     = CountryError{"country not found"}
)
