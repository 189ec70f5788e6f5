package service

import (
	"fmt"
	"strings"
	"time"

	"konsert-backend/internal/models"
	"konsert-backend/internal/repository"
	"konsert-backend/pkg/cache"
	"konsert-backend/pkg/validator"
)

const artistKind = "artist"

type ArtistService struct {
	artistRepo repository.ArtistRepository
	cache      *cache.Cache
	now        func() time.Time
}

func NewArtistService(artistRepo repository.ArtistRepository, cacheService *cache.Cache) *ArtistService {
	return &ArtistService{
		artistRepo: artistRepo,
		cache:      cacheService,
		now:        time.Now,
	}
}

func (s *ArtistService) Create(req models.CreateArtistRequest) (*models.Artist, error) {
	title, err := cleanTitle(req.Title)
	if err != nil {
		return nil, err
	}

	slug, err := resolveNewSlug(s.artistRepo, req.Slug, title)
	if err != nil {
		return nil, err
	}

	artist := &models.Artist{
		Document: models.Document{
			Title:     title,
			Slug:      slug,
			Published: req.Published,
		},
		Bio:      validator.SanitizeHTML(req.Bio),
		ImageURL: strings.TrimSpace(req.ImageURL),
		Website:  strings.TrimSpace(req.Website),
		Genres:   cleanList(req.Genres),
	}
	artist.PublishedAt = publicationTimestamp(artist.Published, nil, s.now())

	if err := s.artistRepo.Create(artist); err != nil {
		return nil, fmt.Errorf("failed to create artist: %w", err)
	}

	invalidate(s.cache, artistKind, artist.Slug)

	return artist, nil
}

func (s *ArtistService) Update(id uint, req models.UpdateArtistRequest) (*models.Artist, error) {
	artist, err := s.artistRepo.GetByID(id)
	if err != nil {
		return nil, translateNotFound(err)
	}

	originalSlug := artist.Slug

	if req.Title != nil {
		title, err := cleanTitle(*req.Title)
		if err != nil {
			return nil, err
		}
		artist.Title = title
	}
	if req.Slug != nil && *req.Slug != artist.Slug {
		slug, err := resolveEditedSlug(s.artistRepo, *req.Slug, artist.Title, artist.ID)
		if err != nil {
			return nil, err
		}
		artist.Slug = slug
	}
	if req.Bio != nil {
		artist.Bio = validator.SanitizeHTML(*req.Bio)
	}
	if req.ImageURL != nil {
		artist.ImageURL = strings.TrimSpace(*req.ImageURL)
	}
	if req.Website != nil {
		artist.Website = strings.TrimSpace(*req.Website)
	}
	if req.Genres != nil {
		artist.Genres = cleanList(*req.Genres)
	}
	if req.Published != nil {
		artist.Published = *req.Published
	}
	artist.PublishedAt = publicationTimestamp(artist.Published, artist.PublishedAt, s.now())

	if err := s.artistRepo.Update(artist); err != nil {
		return nil, fmt.Errorf("failed to update artist: %w", err)
	}

	invalidate(s.cache, artistKind, originalSlug, artist.Slug)

	return artist, nil
}

func (s *ArtistService) Delete(id uint) error {
	artist, err := s.artistRepo.GetByID(id)
	if err != nil {
		return translateNotFound(err)
	}

	if err := s.artistRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete artist: %w", err)
	}

	invalidate(s.cache, artistKind, artist.Slug)
	return nil
}

func (s *ArtistService) GetByID(id uint) (*models.Artist, error) {
	artist, err := s.artistRepo.GetByID(id)
	if err != nil {
		return nil, translateNotFound(err)
	}
	return artist, nil
}

// GetBySlug returns the published artist, or any artist when draft is set.
// Draft reads never touch the cache.
func (s *ArtistService) GetBySlug(slug string, draft bool) (*models.Artist, error) {
	if draft {
		artist, err := s.artistRepo.GetBySlugAny(slug)
		if err != nil {
			return nil, translateNotFound(err)
		}
		return artist, nil
	}
	return cachedDocument(s.cache, artistKind, slug, s.artistRepo.GetBySlug)
}

func (s *ArtistService) GetAll(draft bool) ([]models.Artist, error) {
	if draft {
		return s.artistRepo.GetAllAdmin()
	}
	return cachedList(s.cache, artistKind, s.artistRepo.GetAll)
}

func (s *ArtistService) GetAllAdmin() ([]models.Artist, error) {
	return s.artistRepo.GetAllAdmin()
}

// GetByIDs keeps the order of ids and hides unpublished artists unless draft
// is set.
func (s *ArtistService) GetByIDs(ids []uint, draft bool) ([]models.Artist, error) {
	artists, err := s.artistRepo.GetByIDs(ids)
	if err != nil {
		return nil, err
	}

	ordered := orderByIDs(ids, artists, func(a models.Artist) uint { return a.ID })
	if draft {
		return ordered, nil
	}

	visible := ordered[:0]
	for _, artist := range ordered {
		if artist.Published {
			visible = append(visible, artist)
		}
	}
	return visible, nil
}

func (s *ArtistService) Publish(id uint) (*models.Artist, error) {
	published := true
	return s.Update(id, models.UpdateArtistRequest{Published: &published})
}

func (s *ArtistService) Unpublish(id uint) (*models.Artist, error) {
	published := false
	return s.Update(id, models.UpdateArtistRequest{Published: &published})
}
