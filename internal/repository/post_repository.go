package repository

import (
	"context"
	"time"

	"github.com/crownsite/server/internal/models"
)

// PostRepository implements PostRepo for PostgreSQL/SQLite
type PostRepository struct {
	db DB
}

// NewPostRepository creates a new PostRepository
func NewPostRepository(db DB) *PostRepository {
	return &PostRepository{db: db}
}

func (r *PostRepository) FetchAll(ctx context.Context) ([]*models.FeaturedPost, error) {
	query := `SELECT id, media_url, media_kind, caption, link, position, created_at, updated_at
			  FROM featured_posts ORDER BY position, created_at`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []*models.FeaturedPost
	for rows.Next() {
		var p models.FeaturedPost
		if err := rows.Scan(&p.ID, &p.MediaURL, &p.MediaKind, &p.Caption, &p.Link,
			&p.Position, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		posts = append(posts, &p)
	}
	return posts, rows.Err()
}

func (r *PostRepository) Insert(ctx context.Context, post *models.FeaturedPost) (*models.FeaturedPost, error) {
	query := `INSERT INTO featured_posts (id, media_url, media_kind, caption, link, position, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.ExecContext(ctx, query,
		post.ID, post.MediaURL, post.MediaKind, post.Caption, post.Link,
		post.Position, post.CreatedAt, post.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return post, nil
}

func (r *PostRepository) UpdateByID(ctx context.Context, id string, post *models.FeaturedPost) (*models.FeaturedPost, error) {
	query := `UPDATE featured_posts SET media_url = $2, media_kind = $3, caption = $4,
			  link = $5, position = $6, updated_at = $7 WHERE id = $1`

	post.UpdatedAt = time.Now().UTC()
	result, err := r.db.ExecContext(ctx, query,
		id, post.MediaURL, post.MediaKind, post.Caption, post.Link,
		post.Position, post.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return nil, ErrRowNotFound
	}

	post.ID = id
	return post, nil
}

func (r *PostRepository) DeleteByID(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM featured_posts WHERE id = $1`, id)
	return err
}
