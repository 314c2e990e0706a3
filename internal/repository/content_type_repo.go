package repository

import (
	"github.com/venueflow/portal-backend/internal/domain"
	"gorm.io/gorm"
)

// ContentTypeRepository content type data access
type ContentTypeRepository interface {
	Create(ct *domain.ContentType) error
	Update(ct *domain.ContentType) error
	FindByID(id uint64) (*domain.ContentType, error)
	FindByName(name string) (*domain.ContentType, error)
	FindActive() ([]*domain.ContentType, error)
	FindAll() ([]*domain.ContentType, error)
}

type contentTypeRepository struct {
	db *gorm.DB
}

// NewContentTypeRepository creates a new ContentTypeRepository
func NewContentTypeRepository(db *gorm.DB) ContentTypeRepository {
	return &contentTypeRepository{db: db}
}

func (r *contentTypeRepository) Create(ct *domain.ContentType) error {
	return r.db.Create(ct).Error
}

func (r *contentTypeRepository) Update(ct *domain.ContentType) error {
	return r.db.Save(ct).Error
}

func (r *contentTypeRepository) FindByID(id uint64) (*domain.ContentType, error) {
	var ct domain.ContentType
	err := r.db.First(&ct, id).Error
	if err != nil {
		return nil, err
	}
	return &ct, nil
}

func (r *contentTypeRepository) FindByName(name string) (*domain.ContentType, error) {
	var ct domain.ContentType
	err := r.db.Where("name = ?", name).First(&ct).Error
	if err != nil {
		return nil, err
	}
	return &ct, nil
}

func (r *contentTypeRepository) FindActive() ([]*domain.ContentType, error) {
	var types []*domain.ContentType
	err := r.db.Where("is_active = ?", true).Order("name ASC").Find(&types).Error
	return types, err
}

func (r *contentTypeRepository) FindAll() ([]*domain.ContentType, error) {
	var types []*domain.ContentType
	err := r.db.Order("name ASC").Find(&types).Error
	return types, err
}
