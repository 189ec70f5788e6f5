package service

import (
	"encoding/json"
	"errors"
	"fmt"

	"konsert-backend/internal/models"
	"konsert-backend/internal/repository"
	"konsert-backend/pkg/cache"
	"konsert-backend/pkg/logger"
	"konsert-backend/pkg/validator"

	"gorm.io/gorm"
)

const (
	settingKeySiteHomepage = "site.homepage"
	homepageKind           = "homepage"
)

type HomepageService struct {
	settingRepo repository.SettingRepository
	artists     *ArtistService
	venues      *VenueService
	cache       *cache.Cache
	siteName    string
}

func NewHomepageService(
	settingRepo repository.SettingRepository,
	artistService *ArtistService,
	venueService *VenueService,
	cacheService *cache.Cache,
	siteName string,
) *HomepageService {
	return &HomepageService{
		settingRepo: settingRepo,
		artists:     artistService,
		venues:      venueService,
		cache:       cacheService,
		siteName:    siteName,
	}
}

// Get returns the stored homepage, or the defaults when none has been saved.
func (s *HomepageService) Get() (*models.Homepage, error) {
	setting, err := s.settingRepo.Get(settingKeySiteHomepage)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return s.defaults(), nil
		}
		return nil, err
	}

	homepage := s.defaults()
	if err := json.Unmarshal([]byte(setting.Value), homepage); err != nil {
		return nil, fmt.Errorf("failed to decode homepage: %w", err)
	}
	if homepage.FeaturedArtistIDs == nil {
		homepage.FeaturedArtistIDs = []uint{}
	}
	if homepage.FeaturedVenueIDs == nil {
		homepage.FeaturedVenueIDs = []uint{}
	}
	return homepage, nil
}

func (s *HomepageService) Update(req models.UpdateHomepageRequest) (*models.Homepage, error) {
	homepage, err := s.Get()
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		title, err := cleanTitle(*req.Title)
		if err != nil {
			return nil, err
		}
		homepage.Title = title
	}
	if req.Intro != nil {
		homepage.Intro = validator.SanitizeHTML(*req.Intro)
	}
	if req.FeaturedArtistIDs != nil {
		ids := uniqueIDs(*req.FeaturedArtistIDs)
		found, err := s.artists.GetByIDs(ids, true)
		if err != nil {
			return nil, err
		}
		if len(found) != len(ids) {
			return nil, fmt.Errorf("%w: artist", ErrFeaturedNotFound)
		}
		homepage.FeaturedArtistIDs = ids
	}
	if req.FeaturedVenueIDs != nil {
		ids := uniqueIDs(*req.FeaturedVenueIDs)
		found, err := s.venues.GetByIDs(ids, true)
		if err != nil {
			return nil, err
		}
		if len(found) != len(ids) {
			return nil, fmt.Errorf("%w: venue", ErrFeaturedNotFound)
		}
		homepage.FeaturedVenueIDs = ids
	}

	payload, err := json.Marshal(homepage)
	if err != nil {
		return nil, fmt.Errorf("failed to encode homepage: %w", err)
	}
	if err := s.settingRepo.Set(settingKeySiteHomepage, string(payload)); err != nil {
		return nil, fmt.Errorf("failed to save homepage: %w", err)
	}

	if s.cache.Enabled() {
		if err := s.cache.Delete(cache.ListKey(homepageKind)); err != nil {
			logger.Warn("Failed to invalidate homepage cache", map[string]interface{}{"error": err.Error()})
		}
	}

	return homepage, nil
}

// Resolve expands the featured ids into documents. Unpublished documents are
// only included in draft mode.
func (s *HomepageService) Resolve(draft bool) (*models.HomepageView, error) {
	if !draft && s.cache.Enabled() {
		var view models.HomepageView
		if err := s.cache.Get(cache.ListKey(homepageKind), &view); err == nil {
			return &view, nil
		}
	}

	homepage, err := s.Get()
	if err != nil {
		return nil, err
	}

	artists, err := s.artists.GetByIDs(homepage.FeaturedArtistIDs, draft)
	if err != nil {
		return nil, err
	}
	venues, err := s.venues.GetByIDs(homepage.FeaturedVenueIDs, draft)
	if err != nil {
		return nil, err
	}

	view := &models.HomepageView{
		Title:           homepage.Title,
		Intro:           homepage.Intro,
		FeaturedArtists: artists,
		FeaturedVenues:  venues,
	}

	if !draft && s.cache.Enabled() {
		if err := s.cache.Set(cache.ListKey(homepageKind), view, s.cache.TTL()); err != nil {
			logger.Warn("Failed to cache homepage", map[string]interface{}{"error": err.Error()})
		}
	}

	return view, nil
}

func (s *HomepageService) defaults() *models.Homepage {
	return &models.Homepage{
		Title:             s.siteName,
		FeaturedArtistIDs: []uint{},
		FeaturedVenueIDs:  []uint{},
	}
}

func uniqueIDs(ids []uint) []uint {
	result := make([]uint, 0, len(ids))
	seen := make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}
	return result
}
