package repository

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// documentRepository implements the slug-addressed CRUD shared by artists,
// venues and pages. T must embed models.Document.
type documentRepository[T any] struct {
	db    *gorm.DB
	order []clause.OrderByColumn
}

func (r *documentRepository[T]) Create(document *T) error {
	return r.db.Create(document).Error
}

func (r *documentRepository[T]) Update(document *T) error {
	return r.db.Save(document).Error
}

// Delete removes the row for good so the slug can be reused.
func (r *documentRepository[T]) Delete(id uint) error {
	return r.db.Unscoped().Delete(new(T), id).Error
}

func (r *documentRepository[T]) GetByID(id uint) (*T, error) {
	var document T
	if err := r.db.First(&document, id).Error; err != nil {
		return nil, err
	}
	return &document, nil
}

func (r *documentRepository[T]) GetByIDs(ids []uint) ([]T, error) {
	var documents []T
	if len(ids) == 0 {
		return documents, nil
	}
	if err := r.db.Where("id IN ?", ids).Find(&documents).Error; err != nil {
		return nil, err
	}
	return documents, nil
}

func (r *documentRepository[T]) GetBySlug(slug string) (*T, error) {
	var document T
	if err := r.db.Where("slug = ? AND published = ?", slug, true).
		First(&document).Error; err != nil {
		return nil, err
	}
	return &document, nil
}

func (r *documentRepository[T]) GetBySlugAny(slug string) (*T, error) {
	var document T
	if err := r.db.Where("slug = ?", slug).First(&document).Error; err != nil {
		return nil, err
	}
	return &document, nil
}

func (r *documentRepository[T]) GetAll() ([]T, error) {
	var documents []T
	if err := r.ordered(r.db.Where("published = ?", true)).
		Find(&documents).Error; err != nil {
		return nil, err
	}
	return documents, nil
}

func (r *documentRepository[T]) GetAllAdmin() ([]T, error) {
	var documents []T
	if err := r.ordered(r.db).Find(&documents).Error; err != nil {
		return nil, err
	}
	return documents, nil
}

func (r *documentRepository[T]) ExistsBySlug(slug string) (bool, error) {
	var count int64
	if err := r.db.Model(new(T)).Where("slug = ?", slug).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *documentRepository[T]) ExistsBySlugExceptID(slug string, excludeID uint) (bool, error) {
	var count int64
	if err := r.db.Model(new(T)).
		Where("slug = ? AND id <> ?", slug, excludeID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *documentRepository[T]) ordered(db *gorm.DB) *gorm.DB {
	for _, column := range r.order {
		db = db.Order(column)
	}
	return db
}

func byColumn(name string, desc bool) clause.OrderByColumn {
	return clause.OrderByColumn{Column: clause.Column{Name: name}, Desc: desc}
}
