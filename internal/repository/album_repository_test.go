package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crownsite/server/internal/models"
)

func newAlbumTestRepo(t *testing.T) (*AlbumRepository, *sql.DB) {
	t.Helper()
	db, err := NewSQLiteDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewAlbumRepository(db), db
}

func insertAlbumRow(t *testing.T, db *sql.DB, id, slug, rawImages string) {
	t.Helper()
	now := time.Now().UTC()
	_, err := db.Exec(
		`INSERT INTO albums (id, slug, name, cover_url, images, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		id, slug, "Gala "+id, "", rawImages, now, now,
	)
	require.NoError(t, err)
}

func TestAlbumImageMutations(t *testing.T) {
	repo, _ := newAlbumTestRepo(t)
	ctx := context.Background()

	album, err := models.NewAlbum("Evening Gowns")
	require.NoError(t, err)
	_, err = repo.Insert(ctx, album)
	require.NoError(t, err)

	image, err := models.NewImage("/media/2026/01/gown.jpg", "Finals")
	require.NoError(t, err)

	stored, err := repo.AppendImage(ctx, album.ID, *image)
	require.NoError(t, err)
	require.Len(t, stored.Images, 1)

	image.Caption = "Crowning"
	stored, err = repo.ReplaceImage(ctx, album.ID, *image)
	require.NoError(t, err)
	assert.Equal(t, "Crowning", stored.Images[0].Caption)

	stored, err = repo.RemoveImage(ctx, album.ID, image.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.Images)

	// Removing an absent image is success, not an error.
	_, err = repo.RemoveImage(ctx, album.ID, image.ID)
	assert.NoError(t, err)
}

func TestFetchAllDegradesMalformedImageRows(t *testing.T) {
	repo, db := newAlbumTestRepo(t)

	insertAlbumRow(t, db, "a1", "gala-a1", `[{"id":"1700000000000-abcd1234","url":"/media/a.jpg"}]`)
	insertAlbumRow(t, db, "a2", "gala-a2", `{"not":"an array"}`)

	albums, err := repo.FetchAll(context.Background())
	require.NoError(t, err)
	require.Len(t, albums, 2)

	byID := make(map[string]*models.Album, len(albums))
	for _, a := range albums {
		byID[a.ID] = a
	}

	require.Len(t, byID["a1"].Images, 1)
	assert.False(t, byID["a1"].ImagesMalformed)

	assert.Empty(t, byID["a2"].Images)
	assert.True(t, byID["a2"].ImagesMalformed)
}

func TestGetBySlugSurfacesMalformedImages(t *testing.T) {
	repo, db := newAlbumTestRepo(t)
	insertAlbumRow(t, db, "a2", "gala-a2", `{"not":"an array"}`)

	album, err := repo.GetBySlug(context.Background(), "gala-a2")

	assert.ErrorIs(t, err, models.ErrImagesMalformed)
	require.NotNil(t, album)
	assert.True(t, album.ImagesMalformed)
}

func TestImageMutationsRefuseCorruptArray(t *testing.T) {
	repo, db := newAlbumTestRepo(t)
	const corrupt = `{"not":"an array"}`
	insertAlbumRow(t, db, "a2", "gala-a2", corrupt)

	image, err := models.NewImage("/media/2026/01/late.jpg", "")
	require.NoError(t, err)

	_, err = repo.AppendImage(context.Background(), "a2", *image)
	assert.ErrorIs(t, err, models.ErrImagesMalformed)

	_, err = repo.RemoveImage(context.Background(), "a2", image.ID)
	assert.ErrorIs(t, err, models.ErrImagesMalformed)

	// The stored value stays untouched; rewriting it would destroy
	// whatever the row still holds.
	var raw string
	require.NoError(t, db.QueryRow(`SELECT images FROM albums WHERE id = $1`, "a2").Scan(&raw))
	assert.Equal(t, corrupt, raw)
}
