package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/crownsite/server/internal/collection"
	"github.com/crownsite/server/internal/models"
	"github.com/crownsite/server/internal/repository"
)

// LandingContent is everything the landing page renders in one fetch.
type LandingContent struct {
	Slides   []*models.HeroSlide    `json:"slides"`
	Posts    []*models.FeaturedPost `json:"posts"`
	Stats    []*models.Stat         `json:"stats"`
	Sponsors []*models.Sponsor      `json:"sponsors"`
}

// PagedAlbums is one page of the public gallery listing.
type PagedAlbums struct {
	Albums []*models.Album     `json:"albums"`
	Info   collection.PageInfo `json:"info"`
}

// PagedNews is one page of the public news listing.
type PagedNews struct {
	Items []*models.NewsItem  `json:"items"`
	Info  collection.PageInfo `json:"info"`
}

// SiteContentService serves the public read side. It reads straight from
// the repositories; the mirrored collections exist for the dashboard,
// where a user holds a working set across many operations.
type SiteContentService struct {
	slideRepo   repository.SlideRepo
	postRepo    repository.PostRepo
	statRepo    repository.StatRepo
	countryRepo repository.CountryRepo
	albumRepo   repository.AlbumRepo
	newsRepo    repository.NewsRepo
	sponsorRepo repository.SponsorRepo
	pageSize    int
}

// NewSiteContentService creates a new SiteContentService
func NewSiteContentService(
	slideRepo repository.SlideRepo,
	postRepo repository.PostRepo,
	statRepo repository.StatRepo,
	countryRepo repository.CountryRepo,
	albumRepo repository.AlbumRepo,
	newsRepo repository.NewsRepo,
	sponsorRepo repository.SponsorRepo,
	pageSize int,
) *SiteContentService {
	if pageSize <= 0 {
		pageSize = 12
	}
	return &SiteContentService{
		slideRepo:   slideRepo,
		postRepo:    postRepo,
		statRepo:    statRepo,
		countryRepo: countryRepo,
		albumRepo:   albumRepo,
		newsRepo:    newsRepo,
		sponsorRepo: sponsorRepo,
		pageSize:    pageSize,
	}
}

// Landing returns the landing page content.
func (s *SiteContentService) Landing(ctx context.Context) (*LandingContent, error) {
	slides, err := s.slideRepo.FetchAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch slides: %w", err)
	}
	posts, err := s.postRepo.FetchAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch posts: %w", err)
	}
	stats, err := s.statRepo.FetchAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch stats: %w", err)
	}
	sponsors, err := s.sponsorRepo.FetchAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch sponsors: %w", err)
	}

	return &LandingContent{
		Slides:   slides,
		Posts:    posts,
		Stats:    stats,
		Sponsors: sponsors,
	}, nil
}

// Countries returns the full alphabetical country list for the
// registration form's select.
func (s *SiteContentService) Countries(ctx context.Context) ([]*models.Country, error) {
	return s.countryRepo.FetchAll(ctx)
}

// Albums returns one page of albums, optionally filtered by a
// case-insensitive name substring.
func (s *SiteContentService) Albums(ctx context.Context, page int, query string) (*PagedAlbums, error) {
	albums, err := s.albumRepo.FetchAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch albums: %w", err)
	}

	if query != "" {
		needle := strings.ToLower(query)
		filtered := albums[:0]
		for _, a := range albums {
			if strings.Contains(strings.ToLower(a.Name), needle) {
				filtered = append(filtered, a)
			}
		}
		albums = filtered
	}

	p := collection.NewPaginator(s.pageSize)
	p.SetTotal(len(albums))
	p.SetPage(page)

	return &PagedAlbums{
		Albums: collection.PageSlice(albums, p),
		Info: collection.PageInfo{
			Page:       p.Page(),
			PageSize:   p.PageSize(),
			TotalItems: len(albums),
			TotalPages: p.TotalPages(),
			Window:     p.Window(),
		},
	}, nil
}

// AlbumBySlug returns one album with its images for the gallery detail
// page. A malformed stored image array surfaces as a data-format error
// so the page never passes an empty album off as "no photos yet".
func (s *SiteContentService) AlbumBySlug(ctx context.Context, slug string) (*models.Album, error) {
	album, err := s.albumRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if album == nil {
		return nil, models.ErrAlbumNotFound
	}
	return album, nil
}

// News returns one page of news items, newest first.
func (s *SiteContentService) News(ctx context.Context, page int) (*PagedNews, error) {
	items, err := s.newsRepo.FetchAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch news: %w", err)
	}

	p := collection.NewPaginator(s.pageSize)
	p.SetTotal(len(items))
	p.SetPage(page)

	return &PagedNews{
		Items: collection.PageSlice(items, p),
		Info: collection.PageInfo{
			Page:       p.Page(),
			PageSize:   p.PageSize(),
			TotalItems: len(items),
			TotalPages: p.TotalPages(),
			Window:     p.Window(),
		},
	}, nil
}
