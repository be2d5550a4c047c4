package models

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAlbum(t *testing.T) {
	t.Run("creates album with generated id and slug", func(t *testing.T) {
		album, err := NewAlbum("Miss World 2026")

		require.NoError(t, err)
		assert.NotEmpty(t, album.ID)
		assert.True(t, strings.HasPrefix(album.Slug, "miss-world-2026-"))
		assert.NotNil(t, album.Images)
		assert.Empty(t, album.Images)
	})

	t.Run("rejects blank name", func(t *testing.T) {
		_, err := NewAlbum("   ")
		assert.ErrorIs(t, err, ErrAlbumNameRequired)
	})
}

func TestNewImageID(t *testing.T) {
	t.Run("generates unique identifiers", func(t *testing.T) {
		seen := make(map[string]bool)
		for i := 0; i < 100; i++ {
			id := NewImageID()
			assert.False(t, seen[id], "duplicate id %s", id)
			seen[id] = true
		}
	})
}

func TestImagesFromJSON(t *testing.T) {
	t.Run("decodes a stored array", func(t *testing.T) {
		raw := `[{"id":"1700000000000-abcd1234","url":"/media/a.jpg","caption":"Finals"}]`

		images, err := ImagesFromJSON(raw)

		require.NoError(t, err)
		require.Len(t, images, 1)
		assert.Equal(t, "/media/a.jpg", images[0].URL)
		assert.Equal(t, "Finals", images[0].Caption)
	})

	t.Run("empty value is an empty album", func(t *testing.T) {
		for _, raw := range []string{"", "  ", "[]"} {
			images, err := ImagesFromJSON(raw)
			require.NoError(t, err)
			assert.NotNil(t, images)
			assert.Empty(t, images)
		}
	})

	t.Run("malformed value degrades to empty plus a typed error", func(t *testing.T) {
		for _, raw := range []string{"{", `{"not":"an array"}`, "12", `"text"`} {
			images, err := ImagesFromJSON(raw)

			assert.ErrorIs(t, err, ErrImagesMalformed, "input %q", raw)
			assert.NotNil(t, images)
			assert.Empty(t, images)
		}
	})

	t.Run("null decodes to an empty slice", func(t *testing.T) {
		images, err := ImagesFromJSON("null")
		require.NoError(t, err)
		assert.NotNil(t, images)
		assert.Empty(t, images)
	})
}

func TestImagesToJSON(t *testing.T) {
	t.Run("nil encodes as an empty array", func(t *testing.T) {
		raw, err := ImagesToJSON(nil)
		require.NoError(t, err)
		assert.Equal(t, "[]", raw)
	})
}
