package repository

import (
	"context"
	"time"

	"github.com/crownsite/server/internal/models"
)

// NewsRepository implements NewsRepo for PostgreSQL/SQLite
type NewsRepository struct {
	db DB
}

// NewNewsRepository creates a new NewsRepository
func NewNewsRepository(db DB) *NewsRepository {
	return &NewsRepository{db: db}
}

func (r *NewsRepository) FetchAll(ctx context.Context) ([]*models.NewsItem, error) {
	query := `SELECT id, title, body, media_url, published_at, created_at, updated_at
			  FROM news_items ORDER BY published_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*models.NewsItem
	for rows.Next() {
		var n models.NewsItem
		if err := rows.Scan(&n.ID, &n.Title, &n.Body, &n.MediaURL, &n.PublishedAt,
			&n.CreatedAt, &n.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, &n)
	}
	return items, rows.Err()
}

func (r *NewsRepository) Insert(ctx context.Context, item *models.NewsItem) (*models.NewsItem, error) {
	query := `INSERT INTO news_items (id, title, body, media_url, published_at, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.ExecContext(ctx, query,
		item.ID, item.Title, item.Body, item.MediaURL, item.PublishedAt,
		item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (r *NewsRepository) UpdateByID(ctx context.Context, id string, item *models.NewsItem) (*models.NewsItem, error) {
	query := `UPDATE news_items SET title = $2, body = $3, media_url = $4, published_at = $5, updated_at = $6
			  WHERE id = $1`

	item.UpdatedAt = time.Now().UTC()
	result, err := r.db.ExecContext(ctx, query,
		id, item.Title, item.Body, item.MediaURL, item.PublishedAt, item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return nil, ErrRowNotFound
	}

	item.ID = id
	return item, nil
}

func (r *NewsRepository) DeleteByID(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM news_items WHERE id = $1`, id)
	return err
}
