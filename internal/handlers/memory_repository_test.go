package handlers

import (
	"konsert-backend/internal/config"
	"konsert-backend/internal/models"
	"konsert-backend/internal/service"

	"gorm.io/gorm"
)

// memoryDocuments backs the services with a map so handlers can be tested
// without a database.
type memoryDocuments[T any] struct {
	rows   []*T
	nextID uint
	doc    func(*T) *models.Document
}

func newMemoryDocuments[T any](doc func(*T) *models.Document) *memoryDocuments[T] {
	return &memoryDocuments[T]{nextID: 1, doc: doc}
}

func (m *memoryDocuments[T]) find(match func(*models.Document) bool) (*T, error) {
	for _, row := range m.rows {
		if match(m.doc(row)) {
			copied := *row
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memoryDocuments[T]) list(match func(*models.Document) bool) ([]T, error) {
	result := make([]T, 0, len(m.rows))
	for _, row := range m.rows {
		if match(m.doc(row)) {
			result = append(result, *row)
		}
	}
	return result, nil
}

func (m *memoryDocuments[T]) Create(document *T) error {
	m.doc(document).ID = m.nextID
	m.nextID++
	stored := *document
	m.rows = append(m.rows, &stored)
	return nil
}

func (m *memoryDocuments[T]) Update(document *T) error {
	id := m.doc(document).ID
	for i, row := range m.rows {
		if m.doc(row).ID == id {
			stored := *document
			m.rows[i] = &stored
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (m *memoryDocuments[T]) Delete(id uint) error {
	for i, row := range m.rows {
		if m.doc(row).ID == id {
			m.rows = append(m.rows[:i], m.rows[i+1:]...)
			break
		}
	}
	return nil
}

func (m *memoryDocuments[T]) GetByID(id uint) (*T, error) {
	return m.find(func(d *models.Document) bool { return d.ID == id })
}

func (m *memoryDocuments[T]) GetByIDs(ids []uint) ([]T, error) {
	wanted := make(map[uint]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	return m.list(func(d *models.Document) bool { return wanted[d.ID] })
}

func (m *memoryDocuments[T]) GetBySlug(slug string) (*T, error) {
	return m.find(func(d *models.Document) bool { return d.Slug == slug && d.Published })
}

func (m *memoryDocuments[T]) GetBySlugAny(slug string) (*T, error) {
	return m.find(func(d *models.Document) bool { return d.Slug == slug })
}

func (m *memoryDocuments[T]) GetAll() ([]T, error) {
	return m.list(func(d *models.Document) bool { return d.Published })
}

func (m *memoryDocuments[T]) GetAllAdmin() ([]T, error) {
	return m.list(func(*models.Document) bool { return true })
}

func (m *memoryDocuments[T]) ExistsBySlug(slug string) (bool, error) {
	_, err := m.GetBySlugAny(slug)
	return err == nil, nil
}

func (m *memoryDocuments[T]) ExistsBySlugExceptID(slug string, excludeID uint) (bool, error) {
	_, err := m.find(func(d *models.Document) bool { return d.Slug == slug && d.ID != excludeID })
	return err == nil, nil
}

type memorySettings map[string]string

func (m memorySettings) Get(key string) (*models.Setting, error) {
	if value, ok := m[key]; ok {
		return &models.Setting{Key: key, Value: value}, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m memorySettings) Set(key, value string) error {
	m[key] = value
	return nil
}

func (m memorySettings) Delete(key string) error {
	delete(m, key)
	return nil
}

type testServices struct {
	artists  *service.ArtistService
	venues   *service.VenueService
	pages    *service.PageService
	homepage *service.HomepageService
	config   *config.Config
}

func newTestServices() testServices {
	artists := service.NewArtistService(newMemoryDocuments(func(a *models.Artist) *models.Document { return &a.Document }), nil)
	venues := service.NewVenueService(newMemoryDocuments(func(v *models.Venue) *models.Document { return &v.Document }), nil)
	pages := service.NewPageService(newMemoryDocuments(func(p *models.Page) *models.Document { return &p.Document }), nil)

	return testServices{
		artists:  artists,
		venues:   venues,
		pages:    pages,
		homepage: service.NewHomepageService(memorySettings{}, artists, venues, nil, "Konsert"),
		config: &config.Config{
			SiteName:        "Konsert",
			SiteDescription: "Artister og scener",
			SiteURL:         "https://konsert.example/",
		},
	}
}
