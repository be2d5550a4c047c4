package models

import "time"

// Admin login

type LoginRequest struct {
	Passcode string `json:"passcode"`
}

type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Hero slides

type CreateSlideRequest struct {
	MediaURL  string `json:"mediaUrl"`
	MediaKind string `json:"mediaKind"`
	CTALabel  string `json:"ctaLabel"`
	CTAURL    string `json:"ctaUrl"`
	Position  int    `json:"position"`
}

type UpdateSlideRequest struct {
	MediaURL  *string `json:"mediaUrl,omitempty"`
	MediaKind *string `json:"mediaKind,omitempty"`
	CTALabel  *string `json:"ctaLabel,omitempty"`
	CTAURL    *string `json:"ctaUrl,omitempty"`
	Position  *int    `json:"position,omitempty"`
}

// Featured posts

type CreatePostRequest struct {
	MediaURL  string `json:"mediaUrl"`
	MediaKind string `json:"mediaKind"`
	Caption   string `json:"caption"`
	Link      string `json:"link"`
	Position  int    `json:"position"`
}

type UpdatePostRequest struct {
	MediaURL  *string `json:"mediaUrl,omitempty"`
	MediaKind *string `json:"mediaKind,omitempty"`
	Caption   *string `json:"caption,omitempty"`
	Link      *string `json:"link,omitempty"`
	Position  *int    `json:"position,omitempty"`
}

// Stats

type CreateStatRequest struct {
	Icon     string `json:"icon"`
	Title    string `json:"title"`
	Value    string `json:"value"`
	Position int    `json:"position"`
}

type UpdateStatRequest struct {
	Icon     *string `json:"icon,omitempty"`
	Title    *string `json:"title,omitempty"`
	Value    *string `json:"value,omitempty"`
	Position *int    `json:"position,omitempty"`
}

// Countries

type CreateCountryRequest struct {
	Name string `json:"name"`
}

type UpdateCountryRequest struct {
	Name *string `json:"name,omitempty"`
}

type NameCheckResponse struct {
	Name      string `json:"name"`
	Available bool   `json:"available"`
}

// Albums

type CreateAlbumRequest struct {
	Name string `json:"name"`
}

type UpdateAlbumRequest struct {
	Name     *string `json:"name,omitempty"`
	CoverURL *string `json:"coverUrl,omitempty"`
}

type AddImageRequest struct {
	URL     string `json:"url"`
	Caption string `json:"caption,omitempty"`
}

type UpdateImageRequest struct {
	Caption *string `json:"caption,omitempty"`
}

// News

type CreateNewsRequest struct {
	Title       string     `json:"title"`
	Body        string     `json:"body"`
	MediaURL    string     `json:"mediaUrl"`
	PublishedAt *time.Time `json:"publishedAt,omitempty"`
}

type UpdateNewsRequest struct {
	Title       *string    `json:"title,omitempty"`
	Body        *string    `json:"body,omitempty"`
	MediaURL    *string    `json:"mediaUrl,omitempty"`
	PublishedAt *time.Time `json:"publishedAt,omitempty"`
}

// Sponsors

type CreateSponsorRequest struct {
	Name     string `json:"name"`
	LogoURL  string `json:"logoUrl"`
	Link     string `json:"link"`
	Position int    `json:"position"`
}

type UpdateSponsorRequest struct {
	Name     *string `json:"name,omitempty"`
	LogoURL  *string `json:"logoUrl,omitempty"`
	Link     *string `json:"link,omitempty"`
	Position *int    `json:"position,omitempty"`
}

// Media upload

type UploadResponse struct {
	URL          string `json:"url"`
	ThumbnailURL string `json:"thumbnailUrl,omitempty"`
}

// Health

type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// ErrorResponse is the uniform error body for API failures. Kind conveys
// the failure taxonomy (unavailable, timeout, conflict, not_found,
// malformed_data, busy) so clients can phrase the message per action.
type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}
