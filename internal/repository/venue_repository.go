package repository

import (
	"konsert-backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type VenueRepository interface {
	Create(venue *models.Venue) error
	Update(venue *models.Venue) error
	Delete(id uint) error
	GetByID(id uint) (*models.Venue, error)
	GetByIDs(ids []uint) ([]models.Venue, error)
	GetBySlug(slug string) (*models.Venue, error)
	GetBySlugAny(slug string) (*models.Venue, error)
	GetAll() ([]models.Venue, error)
	GetAllAdmin() ([]models.Venue, error)
	ExistsBySlug(slug string) (bool, error)
	ExistsBySlugExceptID(slug string, excludeID uint) (bool, error)
}

func NewVenueRepository(db *gorm.DB) VenueRepository {
	return &documentRepository[models.Venue]{
		db:    db,
		order: []clause.OrderByColumn{byColumn("city", false), byColumn("title", false)},
	}
}
