package repository

import (
	"konsert-backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ArtistRepository interface {
	Create(artist *models.Artist) error
	Update(artist *models.Artist) error
	Delete(id uint) error
	GetByID(id uint) (*models.Artist, error)
	GetByIDs(ids []uint) ([]models.Artist, error)
	GetBySlug(slug string) (*models.Artist, error)
	GetBySlugAny(slug string) (*models.Artist, error)
	GetAll() ([]models.Artist, error)
	GetAllAdmin() ([]models.Artist, error)
	ExistsBySlug(slug string) (bool, error)
	ExistsBySlugExceptID(slug string, excludeID uint) (bool, error)
}

func NewArtistRepository(db *gorm.DB) ArtistRepository {
	return &documentRepository[models.Artist]{
		db:    db,
		order: []clause.OrderByColumn{byColumn("title", false)},
	}
}
