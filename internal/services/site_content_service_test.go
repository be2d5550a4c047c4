package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crownsite/server/internal/models"
	"github.com/crownsite/server/internal/repository"
)

// degradedAlbumRepo serves one album whose stored image array failed to
// decode, the way the SQL repository reports it.
type degradedAlbumRepo struct {
	memAlbumRepo
	album *models.Album
}

func (r *degradedAlbumRepo) FetchAll(ctx context.Context) ([]*models.Album, error) {
	return []*models.Album{r.album}, nil
}

func (r *degradedAlbumRepo) GetBySlug(ctx context.Context, slug string) (*models.Album, error) {
	if slug == r.album.Slug {
		return r.album, models.ErrImagesMalformed
	}
	return nil, nil
}

func newTestSiteContent(albums repository.AlbumRepo) *SiteContentService {
	return NewSiteContentService(
		&memRepo[*models.HeroSlide]{},
		&memRepo[*models.FeaturedPost]{},
		&memRepo[*models.Stat]{},
		&fakeCountryRepo{},
		albums,
		&memRepo[*models.NewsItem]{},
		&memRepo[*models.Sponsor]{},
		6,
	)
}

func newDegradedAlbum(t *testing.T) *models.Album {
	t.Helper()
	album, err := models.NewAlbum("Grand Final")
	require.NoError(t, err)
	album.ImagesMalformed = true
	return album
}

func TestAlbumBySlugSurfacesMalformedImages(t *testing.T) {
	album := newDegradedAlbum(t)
	svc := newTestSiteContent(&degradedAlbumRepo{album: album})

	_, err := svc.AlbumBySlug(context.Background(), album.Slug)

	assert.ErrorIs(t, err, models.ErrImagesMalformed)
}

func TestAlbumBySlugUnknownSlug(t *testing.T) {
	svc := newTestSiteContent(&degradedAlbumRepo{album: newDegradedAlbum(t)})

	_, err := svc.AlbumBySlug(context.Background(), "no-such-album")

	assert.ErrorIs(t, err, models.ErrAlbumNotFound)
}

func TestAlbumListingFlagsDegradedRows(t *testing.T) {
	album := newDegradedAlbum(t)
	svc := newTestSiteContent(&degradedAlbumRepo{album: album})

	page, err := svc.Albums(context.Background(), 1, "")

	require.NoError(t, err)
	require.Len(t, page.Albums, 1)
	assert.True(t, page.Albums[0].ImagesMalformed)
	assert.Empty(t, page.Albums[0].Images)
}
