package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/crownsite/server/internal/models"
)

// AlbumRepository implements AlbumRepo for PostgreSQL/SQLite.
//
// An album's images are stored as one JSON array value on the album row,
// so every image mutation is a read-modify-write of the whole array. That
// cycle lives here, behind AppendImage/ReplaceImage/RemoveImage, inside a
// transaction so two concurrent image writes cannot silently drop each
// other's entries.
type AlbumRepository struct {
	db DB
}

// NewAlbumRepository creates a new AlbumRepository
func NewAlbumRepository(db DB) *AlbumRepository {
	return &AlbumRepository{db: db}
}

const albumColumns = `id, slug, name, cover_url, images, created_at, updated_at`

func scanAlbum(scan func(dest ...interface{}) error) (*models.Album, error) {
	var a models.Album
	var rawImages string
	if err := scan(&a.ID, &a.Slug, &a.Name, &a.CoverURL, &rawImages, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return nil, err
	}

	images, err := models.ImagesFromJSON(rawImages)
	a.Images = images
	if err != nil {
		// Row exists but the stored array is unreadable; the caller
		// decides whether to surface or degrade.
		a.ImagesMalformed = true
		return &a, err
	}
	return &a, nil
}

// FetchAll returns all albums, newest first. A malformed image array on
// one row degrades that album to an empty image list rather than failing
// the whole listing; single-album reads surface the error instead.
func (r *AlbumRepository) FetchAll(ctx context.Context) ([]*models.Album, error) {
	query := `SELECT ` + albumColumns + ` FROM albums ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var albums []*models.Album
	for rows.Next() {
		album, err := scanAlbum(rows.Scan)
		if err != nil && err != models.ErrImagesMalformed {
			return nil, err
		}
		albums = append(albums, album)
	}
	return albums, rows.Err()
}

func (r *AlbumRepository) GetByID(ctx context.Context, id string) (*models.Album, error) {
	query := `SELECT ` + albumColumns + ` FROM albums WHERE id = $1`

	album, err := scanAlbum(r.db.QueryRowContext(ctx, query, id).Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil && err != models.ErrImagesMalformed {
		return nil, err
	}
	return album, err
}

func (r *AlbumRepository) GetBySlug(ctx context.Context, slug string) (*models.Album, error) {
	query := `SELECT ` + albumColumns + ` FROM albums WHERE slug = $1`

	album, err := scanAlbum(r.db.QueryRowContext(ctx, query, slug).Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil && err != models.ErrImagesMalformed {
		return nil, err
	}
	return album, err
}

func (r *AlbumRepository) Insert(ctx context.Context, album *models.Album) (*models.Album, error) {
	rawImages, err := models.ImagesToJSON(album.Images)
	if err != nil {
		return nil, err
	}

	query := `INSERT INTO albums (id, slug, name, cover_url, images, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err = r.db.ExecContext(ctx, query,
		album.ID, album.Slug, album.Name, album.CoverURL, rawImages,
		album.CreatedAt, album.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return album, nil
}

// UpdateByID updates the album's own fields. Images are not written here;
// they change only through the image operations below.
func (r *AlbumRepository) UpdateByID(ctx context.Context, id string, album *models.Album) (*models.Album, error) {
	query := `UPDATE albums SET name = $2, cover_url = $3, updated_at = $4 WHERE id = $1`

	album.UpdatedAt = time.Now().UTC()
	result, err := r.db.ExecContext(ctx, query, id, album.Name, album.CoverURL, album.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return nil, ErrRowNotFound
	}

	album.ID = id
	return album, nil
}

func (r *AlbumRepository) DeleteByID(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM albums WHERE id = $1`, id)
	return err
}

// AppendImage adds an image to the end of the album's array.
func (r *AlbumRepository) AppendImage(ctx context.Context, albumID string, image models.Image) (*models.Album, error) {
	return r.mutateImages(ctx, albumID, func(images []models.Image) ([]models.Image, error) {
		return append(images, image), nil
	})
}

// ReplaceImage swaps the image with a matching id in place.
func (r *AlbumRepository) ReplaceImage(ctx context.Context, albumID string, image models.Image) (*models.Album, error) {
	return r.mutateImages(ctx, albumID, func(images []models.Image) ([]models.Image, error) {
		for i := range images {
			if images[i].ID == image.ID {
				images[i] = image
				return images, nil
			}
		}
		return nil, models.ErrImageNotFound
	})
}

// RemoveImage filters the image with the given id out of the array.
// Absence is treated as success.
func (r *AlbumRepository) RemoveImage(ctx context.Context, albumID, imageID string) (*models.Album, error) {
	return r.mutateImages(ctx, albumID, func(images []models.Image) ([]models.Image, error) {
		out := images[:0]
		for _, img := range images {
			if img.ID != imageID {
				out = append(out, img)
			}
		}
		return out, nil
	})
}

// mutateImages runs the read-modify-write cycle on the album's image
// array. A malformed stored array aborts the write: overwriting it with a
// reconstructed value would destroy whatever the row still holds.
func (r *AlbumRepository) mutateImages(ctx context.Context, albumID string, mutate func([]models.Image) ([]models.Image, error)) (*models.Album, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	query := `SELECT ` + albumColumns + ` FROM albums WHERE id = $1`
	album, err := scanAlbum(tx.QueryRowContext(ctx, query, albumID).Scan)
	if err == sql.ErrNoRows {
		return nil, models.ErrAlbumNotFound
	}
	if err != nil {
		return nil, err
	}

	images, err := mutate(album.Images)
	if err != nil {
		return nil, err
	}

	rawImages, err := models.ImagesToJSON(images)
	if err != nil {
		return nil, err
	}

	album.Images = images
	album.UpdatedAt = time.Now().UTC()
	_, err = tx.ExecContext(ctx, `UPDATE albums SET images = $2, updated_at = $3 WHERE id = $1`,
		albumID, rawImages, album.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return album, nil
}
