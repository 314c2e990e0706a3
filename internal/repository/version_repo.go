package repository

import (
	"github.com/venueflow/portal-backend/internal/domain"
	"gorm.io/gorm"
)

// VersionRepository content version data access
type VersionRepository interface {
	Create(version *domain.ContentVersion) error
	FindByItemID(itemID uint64) ([]*domain.ContentVersion, error)
	FindByID(id uint64) (*domain.ContentVersion, error)
	NextVersionNumber(itemID uint64) (uint, error)
	DeleteByItemID(itemID uint64) error
	CountByItemID(itemID uint64) (int64, error)
}

type versionRepository struct {
	db *gorm.DB
}

// NewVersionRepository creates a new VersionRepository
func NewVersionRepository(db *gorm.DB) VersionRepository {
	return &versionRepository{db: db}
}

func (r *versionRepository) Create(version *domain.ContentVersion) error {
	return r.db.Create(version).Error
}

func (r *versionRepository) FindByItemID(itemID uint64) ([]*domain.ContentVersion, error) {
	var versions []*domain.ContentVersion
	err := r.db.Where("content_item_id = ?", itemID).
		Order("version_number DESC").Find(&versions).Error
	return versions, err
}

func (r *versionRepository) FindByID(id uint64) (*domain.ContentVersion, error) {
	var version domain.ContentVersion
	err := r.db.First(&version, id).Error
	if err != nil {
		return nil, err
	}
	return &version, nil
}

// NextVersionNumber returns max(version_number)+1 for the item, starting at 1
func (r *versionRepository) NextVersionNumber(itemID uint64) (uint, error) {
	var maxVersion *uint
	err := r.db.Model(&domain.ContentVersion{}).
		Where("content_item_id = ?", itemID).
		Select("MAX(version_number)").
		Scan(&maxVersion).Error
	if err != nil {
		return 1, err
	}
	if maxVersion == nil {
		return 1, nil
	}
	return *maxVersion + 1, nil
}

func (r *versionRepository) DeleteByItemID(itemID uint64) error {
	return r.db.Where("content_item_id = ?", itemID).Delete(&domain.ContentVersion{}).Error
}

func (r *versionRepository) CountByItemID(itemID uint64) (int64, error) {
	var count int64
	err := r.db.Model(&domain.ContentVersion{}).
		Where("content_item_id = ?", itemID).Count(&count).Error
	return count, err
}
