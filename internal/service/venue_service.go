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

const venueKind = "venue"

type VenueService struct {
	venueRepo repository.VenueRepository
	cache     *cache.Cache
	now       func() time.Time
}

func NewVenueService(venueRepo repository.VenueRepository, cacheService *cache.Cache) *VenueService {
	return &VenueService{
		venueRepo: venueRepo,
		cache:     cacheService,
		now:       time.Now,
	}
}

func (s *VenueService) Create(req models.CreateVenueRequest) (*models.Venue, error) {
	title, err := cleanTitle(req.Title)
	if err != nil {
		return nil, err
	}

	slug, err := resolveNewSlug(s.venueRepo, req.Slug, title)
	if err != nil {
		return nil, err
	}

	venue := &models.Venue{
		Document: models.Document{
			Title:     title,
			Slug:      slug,
			Published: req.Published,
		},
		Description: validator.SanitizeHTML(req.Description),
		Address:     validator.NormalizeSpaces(req.Address),
		City:        validator.NormalizeSpaces(req.City),
		Capacity:    req.Capacity,
		Website:     strings.TrimSpace(req.Website),
	}
	venue.PublishedAt = publicationTimestamp(venue.Published, nil, s.now())

	if err := s.venueRepo.Create(venue); err != nil {
		return nil, fmt.Errorf("failed to create venue: %w", err)
	}

	invalidate(s.cache, venueKind, venue.Slug)

	return venue, nil
}

func (s *VenueService) Update(id uint, req models.UpdateVenueRequest) (*models.Venue, error) {
	venue, err := s.venueRepo.GetByID(id)
	if err != nil {
		return nil, translateNotFound(err)
	}

	originalSlug := venue.Slug

	if req.Title != nil {
		title, err := cleanTitle(*req.Title)
		if err != nil {
			return nil, err
		}
		venue.Title = title
	}
	if req.Slug != nil && *req.Slug != venue.Slug {
		slug, err := resolveEditedSlug(s.venueRepo, *req.Slug, venue.Title, venue.ID)
		if err != nil {
			return nil, err
		}
		venue.Slug = slug
	}
	if req.Description != nil {
		venue.Description = validator.SanitizeHTML(*req.Description)
	}
	if req.Address != nil {
		venue.Address = validator.NormalizeSpaces(*req.Address)
	}
	if req.City != nil {
		venue.City = validator.NormalizeSpaces(*req.City)
	}
	if req.Capacity != nil {
		venue.Capacity = *req.Capacity
	}
	if req.Website != nil {
		venue.Website = strings.TrimSpace(*req.Website)
	}
	if req.Published != nil {
		venue.Published = *req.Published
	}
	venue.PublishedAt = publicationTimestamp(venue.Published, venue.PublishedAt, s.now())

	if err := s.venueRepo.Update(venue); err != nil {
		return nil, fmt.Errorf("failed to update venue: %w", err)
	}

	invalidate(s.cache, venueKind, originalSlug, venue.Slug)

	return venue, nil
}

func (s *VenueService) Delete(id uint) error {
	venue, err := s.venueRepo.GetByID(id)
	if err != nil {
		return translateNotFound(err)
	}

	if err := s.venueRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete venue: %w", err)
	}

	invalidate(s.cache, venueKind, venue.Slug)
	return nil
}

func (s *VenueService) GetByID(id uint) (*models.Venue, error) {
	venue, err := s.venueRepo.GetByID(id)
	if err != nil {
		return nil, translateNotFound(err)
	}
	return venue, nil
}

func (s *VenueService) GetBySlug(slug string, draft bool) (*models.Venue, error) {
	if draft {
		venue, err := s.venueRepo.GetBySlugAny(slug)
		if err != nil {
			return nil, translateNotFound(err)
		}
		return venue, nil
	}
	return cachedDocument(s.cache, venueKind, slug, s.venueRepo.GetBySlug)
}

func (s *VenueService) GetAll(draft bool) ([]models.Venue, error) {
	if draft {
		return s.venueRepo.GetAllAdmin()
	}
	return cachedList(s.cache, venueKind, s.venueRepo.GetAll)
}

func (s *VenueService) GetAllAdmin() ([]models.Venue, error) {
	return s.venueRepo.GetAllAdmin()
}

func (s *VenueService) GetByIDs(ids []uint, draft bool) ([]models.Venue, error) {
	venues, err := s.venueRepo.GetByIDs(ids)
	if err != nil {
		return nil, err
	}

	ordered := orderByIDs(ids, venues, func(v models.Venue) uint { return v.ID })
	if draft {
		return ordered, nil
	}

	visible := ordered[:0]
	for _, venue := range ordered {
		if venue.Published {
			visible = append(visible, venue)
		}
	}
	return visible, nil
}

func (s *VenueService) Publish(id uint) (*models.Venue, error) {
	published := true
	return s.Update(id, models.UpdateVenueRequest{Published: &published})
}

func (s *VenueService) Unpublish(id uint) (*models.Venue, error) {
	published := false
	return s.Update(id, models.UpdateVenueRequest{Published: &published})
}
