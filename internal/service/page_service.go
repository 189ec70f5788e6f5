package service

import (
	"errors"
	"fmt"
	"time"

	"konsert-backend/internal/models"
	"konsert-backend/internal/repository"
	"konsert-backend/pkg/cache"
	"konsert-backend/pkg/validator"

	"gorm.io/gorm"
)

const pageKind = "page"

type PageService struct {
	pageRepo repository.PageRepository
	cache    *cache.Cache
	now      func() time.Time
}

func NewPageService(pageRepo repository.PageRepository, cacheService *cache.Cache) *PageService {
	return &PageService{
		pageRepo: pageRepo,
		cache:    cacheService,
		now:      time.Now,
	}
}

func (s *PageService) Create(req models.CreatePageRequest) (*models.Page, error) {
	title, err := cleanTitle(req.Title)
	if err != nil {
		return nil, err
	}

	slug, err := resolveNewSlug(s.pageRepo, req.Slug, title)
	if err != nil {
		return nil, err
	}

	page := &models.Page{
		Document: models.Document{
			Title:     title,
			Slug:      slug,
			Published: req.Published,
		},
		Description: validator.SanitizeString(req.Description),
		Body:        validator.SanitizeHTML(req.Body),
		Order:       req.Order,
	}
	page.PublishedAt = publicationTimestamp(page.Published, nil, s.now())

	if err := s.pageRepo.Create(page); err != nil {
		return nil, fmt.Errorf("failed to create page: %w", err)
	}

	invalidate(s.cache, pageKind, page.Slug)

	return page, nil
}

// Ensure creates the page described by req unless a page already owns the
// slug derived from it. Existing pages are left untouched.
func (s *PageService) Ensure(req models.CreatePageRequest) (*models.Page, bool, error) {
	slug := req.Slug
	if slug == "" {
		slug = slugFromTitle(req.Title)
	}
	slug = repairSlug(slug)

	existing, err := s.pageRepo.GetBySlugAny(slug)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	req.Slug = slug
	page, err := s.Create(req)
	if err != nil {
		return nil, false, err
	}
	return page, true, nil
}

func (s *PageService) Update(id uint, req models.UpdatePageRequest) (*models.Page, error) {
	page, err := s.pageRepo.GetByID(id)
	if err != nil {
		return nil, translateNotFound(err)
	}

	originalSlug := page.Slug

	if req.Title != nil {
		title, err := cleanTitle(*req.Title)
		if err != nil {
			return nil, err
		}
		page.Title = title
	}
	if req.Slug != nil && *req.Slug != page.Slug {
		slug, err := resolveEditedSlug(s.pageRepo, *req.Slug, page.Title, page.ID)
		if err != nil {
			return nil, err
		}
		page.Slug = slug
	}
	if req.Description != nil {
		page.Description = validator.SanitizeString(*req.Description)
	}
	if req.Body != nil {
		page.Body = validator.SanitizeHTML(*req.Body)
	}
	if req.Order != nil {
		page.Order = *req.Order
	}
	if req.Published != nil {
		page.Published = *req.Published
	}
	page.PublishedAt = publicationTimestamp(page.Published, page.PublishedAt, s.now())

	if err := s.pageRepo.Update(page); err != nil {
		return nil, fmt.Errorf("failed to update page: %w", err)
	}

	invalidate(s.cache, pageKind, originalSlug, page.Slug)

	return page, nil
}

func (s *PageService) Delete(id uint) error {
	page, err := s.pageRepo.GetByID(id)
	if err != nil {
		return translateNotFound(err)
	}

	if err := s.pageRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete page: %w", err)
	}

	invalidate(s.cache, pageKind, page.Slug)
	return nil
}

func (s *PageService) GetByID(id uint) (*models.Page, error) {
	page, err := s.pageRepo.GetByID(id)
	if err != nil {
		return nil, translateNotFound(err)
	}
	return page, nil
}

func (s *PageService) GetBySlug(slug string, draft bool) (*models.Page, error) {
	if draft {
		page, err := s.pageRepo.GetBySlugAny(slug)
		if err != nil {
			return nil, translateNotFound(err)
		}
		return page, nil
	}
	return cachedDocument(s.cache, pageKind, slug, s.pageRepo.GetBySlug)
}

func (s *PageService) GetAll(draft bool) ([]models.Page, error) {
	if draft {
		return s.pageRepo.GetAllAdmin()
	}
	return cachedList(s.cache, pageKind, s.pageRepo.GetAll)
}

func (s *PageService) GetAllAdmin() ([]models.Page, error) {
	return s.pageRepo.GetAllAdmin()
}

func (s *PageService) Publish(id uint) (*models.Page, error) {
	published := true
	return s.Update(id, models.UpdatePageRequest{Published: &published})
}

func (s *PageService) Unpublish(id uint) (*models.Page, error) {
	published := false
	return s.Update(id, models.UpdatePageRequest{Published: &published})
}
