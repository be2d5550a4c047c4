package repository

import (
	"context"
	"time"

	"github.com/crownsite/server/internal/models"
)

// SlideRepository implements SlideRepo for PostgreSQL/SQLite
type SlideRepository struct {
	db DB
}

// NewSlideRepository creates a new SlideRepository
func NewSlideRepository(db DB) *SlideRepository {
	return &SlideRepository{db: db}
}

func (r *SlideRepository) FetchAll(ctx context.Context) ([]*models.HeroSlide, error) {
	query := `SELECT id, media_url, media_kind, cta_label, cta_url, position, created_at, updated_at
			  FROM hero_slides ORDER BY position, created_at`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var slides []*models.HeroSlide
	for rows.Next() {
		var s models.HeroSlide
		if err := rows.Scan(&s.ID, &s.MediaURL, &s.MediaKind, &s.CTALabel, &s.CTAURL,
			&s.Position, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		slides = append(slides, &s)
	}
	return slides, rows.Err()
}

func (r *SlideRepository) Insert(ctx context.Context, slide *models.HeroSlide) (*models.HeroSlide, error) {
	query := `INSERT INTO hero_slides (id, media_url, media_kind, cta_label, cta_url, position, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.ExecContext(ctx, query,
		slide.ID, slide.MediaURL, slide.MediaKind, slide.CTALabel, slide.CTAURL,
		slide.Position, slide.CreatedAt, slide.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return slide, nil
}

func (r *SlideRepository) UpdateByID(ctx context.Context, id string, slide *models.HeroSlide) (*models.HeroSlide, error) {
	query := `UPDATE hero_slides SET media_url = $2, media_kind = $3, cta_label = $4,
			  cta_url = $5, position = $6, updated_at = $7 WHERE id = $1`

	slide.UpdatedAt = time.Now().UTC()
	result, err := r.db.ExecContext(ctx, query,
		id, slide.MediaURL, slide.MediaKind, slide.CTALabel, slide.CTAURL,
		slide.Position, slide.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return nil, ErrRowNotFound
	}

	slide.ID = id
	return slide, nil
}

func (r *SlideRepository) DeleteByID(ctx context.Context, id string) error {
	// Absence is success: the row may already be gone.
	_, err := r.db.ExecContext(ctx, `DELETE FROM hero_slides WHERE id = $1`, id)
	return err
}
