package models

// MediaKind distinguishes image from video media references
type MediaKind string

const (
	MediaImage MediaKind = "image"
	MediaVideo MediaKind = "video"
)

// IsValidMediaKind checks if a media kind value is valid
func IsValidMediaKind(k string) bool {
	switch MediaKind(k) {
	case MediaImage, MediaVideo:
		return true
	}
	return false
}

// MediaError is the error type for media validation failures
type MediaError struct {
	Message string
}

func (e MediaError) Error() string {
	return e.Message
}

var (
	ErrInvalidMediaKind = MediaError{"media kind must be image or video"}
	ErrMediaURLRequired = MediaError{"media URL is required"}
	ErrFileTooLarge     = MediaError{"file exceeds the maximum allowed size"}
	ErrInvalidExtension = MediaError{"file extension is not allowed"}
	ErrPathTraversal    = MediaError{"path escapes the storage root"}
)
