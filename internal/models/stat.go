package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// StatIcon identifies one of the closed set of icons a statistic may use.
// The set is enumerated here so stored values can be validated and unknown
// identifiers render with a defined fallback instead of failing a lookup.
type StatIcon string

const (
	IconCrown    StatIcon = "crown"
	IconGlobe    StatIcon = "globe"
	IconUsers    StatIcon = "users"
	IconTrophy   StatIcon = "trophy"
	IconCalendar StatIcon = "calendar"
	IconStar     StatIcon = "star"
	IconCamera   StatIcon = "camera"
	IconHeart    StatIcon = "heart"

	// IconFallback is used when a stored icon identifier is not in the set.
	IconFallback StatIcon = "star"
)

var statIcons = map[StatIcon]bool{
	IconCrown:    true,
	IconGlobe:    true,
	IconUsers:    true,
	IconTrophy:   true,
	IconCalendar: true,
	IconStar:     true,
	IconCamera:   true,
	IconHeart:    true,
}

// IsValidStatIcon checks if an icon identifier is in the closed set
func IsValidStatIcon(icon string) bool {
	return statIcons[StatIcon(icon)]
}

// ResolveStatIcon maps a stored identifier to a renderable icon, falling
// back for unknown values.
func ResolveStatIcon(icon string) StatIcon {
	if statIcons[StatIcon(icon)] {
		return StatIcon(icon)
	}
	return IconFallback
}

// Stat is one headline figure shown on the landing page.
type Stat struct {
	ID        string    `json:"id"`
	Icon      StatIcon  `json:"icon"`
	Title     string    `json:"title"`
	Value     string    `json:"value"`
	Position  int       `json:"position"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// RecordID returns the stable identifier for collection mirroring.
func (s *Stat) RecordID() string { return s.ID }

// NewStat creates a stat with a generated ID. Unknown icons are accepted
// and resolved to the fallback so a stale admin client cannot wedge the
// landing page.
func NewStat(icon, title, value string, position int) (*Stat, error) {
	if strings.TrimSpace(title) == "" {
		return nil, ErrStatTitleRequired
	}
	if strings.TrimSpace(value) == "" {
		return nil, ErrStatValueRequired
	}

	now := time.Now().UTC()
	return &Stat{
		ID:        uuid.New().String(),
		Icon:      ResolveStatIcon(icon),
		Title:     strings.TrimSpace(title),
		Value:     strings.TrimSpace(value),
		Position:  position,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Stat errors
type StatError struct {
	Message string
}

func (e StatError) Error() string {
	return e.Message
}

var (
	ErrStatTitleRequired = StatError{"stat title is required"}
	ErrStatValueRequired = StatError{"stat value is required"}
)
