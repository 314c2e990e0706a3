package repository

import (
	"github.com/venueflow/portal-backend/internal/domain"
	"gorm.io/gorm"
)

// ContentItemRepository content item data access
type ContentItemRepository interface {
	Create(item *domain.ContentItem) error
	Save(item *domain.ContentItem) error
	FindByID(id uint64) (*domain.ContentItem, error)
	FindByKey(key string) (*domain.ContentItem, error)
	FindByTypeID(contentTypeID uint64) ([]*domain.ContentItem, error)
	FindAll() ([]*domain.ContentItem, error)
	FindPublishedByKey(key string) (*domain.ContentItem, error)
	FindPublishedByKeys(keys []string) ([]*domain.ContentItem, error)
	Delete(id uint64) (int64, error)
	ExistsByKey(key string) (bool, error)
}

type contentItemRepository struct {
	db *gorm.DB
}

// NewContentItemRepository creates a new ContentItemRepository
func NewContentItemRepository(db *gorm.DB) ContentItemRepository {
	return &contentItemRepository{db: db}
}

func (r *contentItemRepository) Create(item *domain.ContentItem) error {
	return r.db.Create(item).Error
}

func (r *contentItemRepository) Save(item *domain.ContentItem) error {
	return r.db.Save(item).Error
}

func (r *contentItemRepository) FindByID(id uint64) (*domain.ContentItem, error) {
	var item domain.ContentItem
	err := r.db.First(&item, id).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *contentItemRepository) FindByKey(key string) (*domain.ContentItem, error) {
	var item domain.ContentItem
	err := r.db.Where("item_key = ?", key).First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *contentItemRepository) FindByTypeID(contentTypeID uint64) ([]*domain.ContentItem, error) {
	var items []*domain.ContentItem
	err := r.db.Where("content_type_id = ?", contentTypeID).
		Order("updated_at DESC").Find(&items).Error
	return items, err
}

func (r *contentItemRepository) FindAll() ([]*domain.ContentItem, error) {
	var items []*domain.ContentItem
	err := r.db.Order("updated_at DESC").Find(&items).Error
	return items, err
}

func (r *contentItemRepository) FindPublishedByKey(key string) (*domain.ContentItem, error) {
	var item domain.ContentItem
	err := r.db.Where("item_key = ? AND is_published = ?", key, true).First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *contentItemRepository) FindPublishedByKeys(keys []string) ([]*domain.ContentItem, error) {
	var items []*domain.ContentItem
	err := r.db.Where("item_key IN ? AND is_published = ?", keys, true).Find(&items).Error
	return items, err
}

// Delete removes the item row and returns the number of rows affected
func (r *contentItemRepository) Delete(id uint64) (int64, error) {
	res := r.db.Delete(&domain.ContentItem{}, id)
	return res.RowsAffected, res.Error
}

func (r *contentItemRepository) ExistsByKey(key string) (bool, error) {
	var count int64
	err := r.db.Model(&domain.ContentItem{}).Where("item_key = ?", key).Count(&count).Error
	return count > 0, err
}
