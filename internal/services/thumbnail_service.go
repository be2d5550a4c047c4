package services

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
)

// ThumbnailSize represents a thumbnail size configuration
type ThumbnailSize struct {
	Name    string
	MaxDim  int // Maximum dimension (width or height)
	Quality int // JPEG quality (1-100)
}

var (
	// ThumbGrid is the gallery-grid rendition
	ThumbGrid = ThumbnailSize{Name: "grid", MaxDim: 400, Quality: 80}
	// ThumbDisplay is the lightbox/display rendition
	ThumbDisplay = ThumbnailSize{Name: "display", MaxDim: 1280, Quality: 85}
)

// ThumbnailResult contains paths to generated thumbnails
type ThumbnailResult struct {
	GridPath    string
	DisplayPath string
	Width       int
	Height      int
}

// ThumbnailService generates JPEG renditions for uploaded images. Thumbs
// live in a .thumbs directory beside the original so deleting a month's
// folder takes its renditions with it.
type ThumbnailService struct {
	basePath string
}

// NewThumbnailService creates a new ThumbnailService
func NewThumbnailService(basePath string) *ThumbnailService {
	return &ThumbnailService{basePath: basePath}
}

// GenerateThumbnails creates the grid and display renditions for an image
// and returns their relative paths.
func (s *ThumbnailService) GenerateThumbnails(imageData []byte, mediaID string, storedPath string) (*ThumbnailResult, error) {
	img, _, err := image.Decode(bytes.NewReader(imageData))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	// storedPath is like "2026/01/IMG_001.jpg"
	dir := filepath.Dir(storedPath)
	thumbDir := filepath.Join(dir, ".thumbs")

	fullThumbDir := filepath.Join(s.basePath, thumbDir)
	if err := os.MkdirAll(fullThumbDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create thumbnail directory: %w", err)
	}

	result := &ThumbnailResult{
		Width:  width,
		Height: height,
	}

	sizes := []struct {
		size    ThumbnailSize
		pathPtr *string
	}{
		{ThumbGrid, &result.GridPath},
		{ThumbDisplay, &result.DisplayPath},
	}

	for _, sizeItem := range sizes {
		thumbPath, err := s.generateThumbnail(img, mediaID, thumbDir, sizeItem.size)
		if err != nil {
			return nil, fmt.Errorf("failed to generate %s thumbnail: %w", sizeItem.size.Name, err)
		}
		*sizeItem.pathPtr = thumbPath
	}

	return result, nil
}

// generateThumbnail creates a single thumbnail and returns its relative path
func (s *ThumbnailService) generateThumbnail(img image.Image, mediaID string, thumbDir string, size ThumbnailSize) (string, error) {
	resized := resizeToFit(img, size.MaxDim)

	// Filename: {mediaID}_{size}.jpg
	filename := fmt.Sprintf("%s_%s.jpg", mediaID, size.Name)
	relativePath := filepath.Join(thumbDir, filename)
	fullPath := filepath.Join(s.basePath, relativePath)

	out, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("failed to create thumbnail file: %w", err)
	}
	defer out.Close()

	opts := &jpeg.Options{Quality: size.Quality}
	if err := jpeg.Encode(out, resized, opts); err != nil {
		os.Remove(fullPath) // Clean up on failure
		return "", fmt.Errorf("failed to encode thumbnail: %w", err)
	}

	return strings.ReplaceAll(relativePath, string(os.PathSeparator), "/"), nil
}

// resizeToFit scales the image down so neither dimension exceeds maxDim,
// preserving aspect ratio. Images already within bounds pass through at
// their original size.
func resizeToFit(img image.Image, maxDim int) image.Image {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	var newWidth, newHeight int
	if width > height {
		if width > maxDim {
			newWidth = maxDim
			newHeight = height * maxDim / width
		} else {
			newWidth = width
			newHeight = height
		}
	} else {
		if height > maxDim {
			newHeight = maxDim
			newWidth = width * maxDim / height
		} else {
			newWidth = width
			newHeight = height
		}
	}

	return imaging.Resize(img, newWidth, newHeight, imaging.Lanczos)
}

// GetThumbnailPath returns the full filesystem path for a thumbnail
func (s *ThumbnailService) GetThumbnailPath(relativePath string) string {
	return filepath.Join(s.basePath, relativePath)
}

// DeleteThumbnails removes the renditions for a media item
func (s *ThumbnailService) DeleteThumbnails(gridPath, displayPath string) {
	for _, p := range []string{gridPath, displayPath} {
		if p != "" {
			os.Remove(filepath.Join(s.basePath, p)) // Ignore errors for non-existent files
		}
	}
}

// IsSupportedImage checks if the file extension can be thumbnailed
func IsSupportedImage(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	supported := map[string]bool{
		".jpg":  true,
		".jpeg": true,
		".png":  true,
		".gif":  true,
		".webp": true,
	}
	return supported[ext]
}

// GenerateSingleThumbnail creates one rendition in memory and returns the
// JPEG bytes. Used for previews that never touch disk.
func (s *ThumbnailService) GenerateSingleThumbnail(imageData []byte, maxDim int) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(imageData))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	resized := resizeToFit(img, maxDim)

	var buf bytes.Buffer
	opts := &jpeg.Options{Quality: 80}
	if err := jpeg.Encode(&buf, resized, opts); err != nil {
		return nil, fmt.Errorf("failed to encode thumbnail: %w", err)
	}

	return buf.Bytes(), nil
}
