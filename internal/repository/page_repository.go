package repository

import (
	"konsert-backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PageRepository interface {
	Create(page *models.Page) error
	Update(page *models.Page) error
	Delete(id uint) error
	GetByID(id uint) (*models.Page, error)
	GetBySlug(slug string) (*models.Page, error)
	GetBySlugAny(slug string) (*models.Page, error)
	GetAll() ([]models.Page, error)
	GetAllAdmin() ([]models.Page, error)
	ExistsBySlug(slug string) (bool, error)
	ExistsBySlugExceptID(slug string, excludeID uint) (bool, error)
}

func NewPageRepository(db *gorm.DB) PageRepository {
	return &documentRepository[models.Page]{
		db: db,
		order: []clause.OrderByColumn{
			byColumn("order", false),
			byColumn("created_at", true),
		},
	}
}
