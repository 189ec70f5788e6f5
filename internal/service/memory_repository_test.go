package service

import (
	"sort"
	"strings"

	"konsert-backend/internal/models"
	"konsert-backend/internal/repository"

	"gorm.io/gorm"
)

// memoryDocuments is an in-memory stand-in for the gorm document repository.
type memoryDocuments[T any] struct {
	rows   map[uint]*T
	nextID uint
	doc    func(*T) *models.Document

	creates int
	updates int
}

func newMemoryDocuments[T any](doc func(*T) *models.Document) *memoryDocuments[T] {
	return &memoryDocuments[T]{rows: make(map[uint]*T), nextID: 1, doc: doc}
}

func (m *memoryDocuments[T]) Create(document *T) error {
	m.creates++
	d := m.doc(document)
	d.ID = m.nextID
	m.nextID++
	stored := *document
	m.rows[d.ID] = &stored
	return nil
}

func (m *memoryDocuments[T]) Update(document *T) error {
	m.updates++
	d := m.doc(document)
	if _, ok := m.rows[d.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	stored := *document
	m.rows[d.ID] = &stored
	return nil
}

func (m *memoryDocuments[T]) Delete(id uint) error {
	delete(m.rows, id)
	return nil
}

func (m *memoryDocuments[T]) GetByID(id uint) (*T, error) {
	row, ok := m.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *row
	return &copied, nil
}

func (m *memoryDocuments[T]) GetByIDs(ids []uint) ([]T, error) {
	var result []T
	for _, row := range m.sorted() {
		for _, id := range ids {
			if m.doc(&row).ID == id {
				result = append(result, row)
				break
			}
		}
	}
	return result, nil
}

func (m *memoryDocuments[T]) GetBySlug(slug string) (*T, error) {
	for _, row := range m.rows {
		if d := m.doc(row); d.Slug == slug && d.Published {
			copied := *row
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memoryDocuments[T]) GetBySlugAny(slug string) (*T, error) {
	for _, row := range m.rows {
		if m.doc(row).Slug == slug {
			copied := *row
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memoryDocuments[T]) GetAll() ([]T, error) {
	var result []T
	for _, row := range m.sorted() {
		if m.doc(&row).Published {
			result = append(result, row)
		}
	}
	return result, nil
}

func (m *memoryDocuments[T]) GetAllAdmin() ([]T, error) {
	return m.sorted(), nil
}

func (m *memoryDocuments[T]) ExistsBySlug(slug string) (bool, error) {
	_, err := m.GetBySlugAny(slug)
	return err == nil, nil
}

func (m *memoryDocuments[T]) ExistsBySlugExceptID(slug string, excludeID uint) (bool, error) {
	for _, row := range m.rows {
		if d := m.doc(row); d.Slug == slug && d.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (m *memoryDocuments[T]) sorted() []T {
	result := make([]T, 0, len(m.rows))
	for _, row := range m.rows {
		result = append(result, *row)
	}
	sort.Slice(result, func(i, j int) bool {
		return strings.Compare(m.doc(&result[i]).Title, m.doc(&result[j]).Title) < 0
	})
	return result
}

func newMemoryArtistRepository() *memoryDocuments[models.Artist] {
	return newMemoryDocuments(func(a *models.Artist) *models.Document { return &a.Document })
}

func newMemoryVenueRepository() *memoryDocuments[models.Venue] {
	return newMemoryDocuments(func(v *models.Venue) *models.Document { return &v.Document })
}

func newMemoryPageRepository() *memoryDocuments[models.Page] {
	return newMemoryDocuments(func(p *models.Page) *models.Document { return &p.Document })
}

type memorySettingRepository struct {
	store map[string]string
}

func newMemorySettingRepository() *memorySettingRepository {
	return &memorySettingRepository{store: make(map[string]string)}
}

func (m *memorySettingRepository) Get(key string) (*models.Setting, error) {
	if value, ok := m.store[key]; ok {
		return &models.Setting{Key: key, Value: value}, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memorySettingRepository) Set(key, value string) error {
	m.store[key] = value
	return nil
}

func (m *memorySettingRepository) Delete(key string) error {
	delete(m.store, key)
	return nil
}

var (
	_ repository.ArtistRepository  = (*memoryDocuments[models.Artist])(nil)
	_ repository.VenueRepository   = (*memoryDocuments[models.Venue])(nil)
	_ repository.PageRepository    = (*memoryDocuments[models.Page])(nil)
	_ repository.SettingRepository = (*memorySettingRepository)(nil)
)
