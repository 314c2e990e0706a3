package service

import (
	"errors"
	"time"

	"github.com/venueflow/portal-backend/internal/common"
	"github.com/venueflow/portal-backend/internal/domain"
	"github.com/venueflow/portal-backend/internal/repository"
	"gorm.io/gorm"
)

// ContentService handles the content item lifecycle: create, mutate,
// publish and delete. Every content mutation snapshots the new payload as a
// ContentVersion inside the same transaction, so history can never drift
// from the item row.
type ContentService struct {
	db       *gorm.DB
	typeRepo repository.ContentTypeRepository
	itemRepo repository.ContentItemRepository
}

// NewContentService creates a new ContentService
func NewContentService(db *gorm.DB) *ContentService {
	return &ContentService{
		db:       db,
		typeRepo: repository.NewContentTypeRepository(db),
		itemRepo: repository.NewContentItemRepository(db),
	}
}

// CreateItemInput fields for creating a content item
type CreateItemInput struct {
	Key           string
	ContentTypeID uint64
	Title         string
	Content       domain.JSONMap
}

// UpdateItemInput partial update; nil fields are left untouched.
// A non-nil Content triggers a new version snapshot.
type UpdateItemInput struct {
	Title             *string
	ContentTypeID     *uint64
	Content           domain.JSONMap
	ChangeDescription string
}

// ListActiveTypes returns all active content types
func (s *ContentService) ListActiveTypes() ([]*domain.ContentType, error) {
	return s.typeRepo.FindActive()
}

// CreateType registers a new content type
func (s *ContentService) CreateType(ct *domain.ContentType) error {
	if ct.Name == "" {
		return common.ErrInvalidInput
	}
	if _, err := s.typeRepo.FindByName(ct.Name); err == nil {
		return common.ErrDuplicateKey
	}
	return s.typeRepo.Create(ct)
}

// GetType returns a content type by id
func (s *ContentService) GetType(id uint64) (*domain.ContentType, error) {
	ct, err := s.typeRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrContentTypeNotFound
		}
		return nil, err
	}
	return ct, nil
}

// UpdateType updates a content type. Types are never hard-deleted;
// deactivation goes through IsActive.
func (s *ContentService) UpdateType(ct *domain.ContentType) error {
	if _, err := s.typeRepo.FindByID(ct.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return common.ErrContentTypeNotFound
		}
		return err
	}
	return s.typeRepo.Update(ct)
}

// Create inserts a new draft item and its initial version in one transaction
func (s *ContentService) Create(in CreateItemInput, adminID string) (*domain.ContentItem, error) {
	if in.Key == "" || in.Title == "" {
		return nil, common.ErrInvalidInput
	}

	exists, err := s.itemRepo.ExistsByKey(in.Key)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, common.ErrDuplicateKey
	}

	item := &domain.ContentItem{
		Key:           in.Key,
		ContentTypeID: in.ContentTypeID,
		Title:         in.Title,
		Content:       in.Content,
		CreatedBy:     adminID,
		UpdatedBy:     adminID,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := repository.NewContentItemRepository(tx).Create(item); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return common.ErrDuplicateKey
			}
			return err
		}
		return repository.NewVersionRepository(tx).Create(&domain.ContentVersion{
			ContentItemID:     item.ID,
			VersionNumber:     1,
			Content:           in.Content,
			ChangeDescription: "Initial version",
			CreatedBy:         adminID,
		})
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

// GetByID returns an item by id
func (s *ContentService) GetByID(id uint64) (*domain.ContentItem, error) {
	item, err := s.itemRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, err
	}
	return item, nil
}

// GetByKey returns an item by its stable key
func (s *ContentService) GetByKey(key string) (*domain.ContentItem, error) {
	item, err := s.itemRepo.FindByKey(key)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, err
	}
	return item, nil
}

// List returns items ordered by updated_at descending, optionally filtered
// by content type name
func (s *ContentService) List(typeName string) ([]*domain.ContentItem, error) {
	if typeName == "" {
		return s.itemRepo.FindAll()
	}
	ct, err := s.typeRepo.FindByName(typeName)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrContentTypeNotFound
		}
		return nil, err
	}
	return s.itemRepo.FindByTypeID(ct.ID)
}

// Update applies a partial update. When Content is present the prior state
// is superseded by a new version row written in the same transaction as the
// item update; a partial write of either is rolled back.
func (s *ContentService) Update(id uint64, in UpdateItemInput, adminID string) (*domain.ContentItem, error) {
	var updated *domain.ContentItem

	err := s.db.Transaction(func(tx *gorm.DB) error {
		itemRepo := repository.NewContentItemRepository(tx)
		item, err := itemRepo.FindByID(id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return common.ErrNotFound
			}
			return err
		}

		if in.Content != nil {
			versionRepo := repository.NewVersionRepository(tx)
			next, err := versionRepo.NextVersionNumber(id)
			if err != nil {
				return err
			}
			desc := in.ChangeDescription
			if desc == "" {
				desc = "Content updated"
			}
			if err := versionRepo.Create(&domain.ContentVersion{
				ContentItemID:     id,
				VersionNumber:     next,
				Content:           in.Content,
				ChangeDescription: desc,
				CreatedBy:         adminID,
			}); err != nil {
				return err
			}
			item.Content = in.Content
		}

		if in.Title != nil {
			item.Title = *in.Title
		}
		if in.ContentTypeID != nil {
			item.ContentTypeID = *in.ContentTypeID
		}
		item.UpdatedBy = adminID
		item.UpdatedAt = time.Now()

		if err := itemRepo.Save(item); err != nil {
			return err
		}
		updated = item
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete hard-deletes an item and cascades its versions and lock.
// Returns false when nothing was deleted, which is not an error.
func (s *ContentService) Delete(id uint64) (bool, error) {
	var deleted bool
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := repository.NewLockRepository(tx).DeleteByItemID(id); err != nil {
			return err
		}
		if err := repository.NewVersionRepository(tx).DeleteByItemID(id); err != nil {
			return err
		}
		rows, err := repository.NewContentItemRepository(tx).Delete(id)
		if err != nil {
			return err
		}
		deleted = rows > 0
		return nil
	})
	return deleted, err
}

// Publish marks the item's current content as externally visible.
// Metadata-only: no version is created. Idempotent; republishing just
// refreshes the timestamp.
func (s *ContentService) Publish(id uint64, adminID string) (*domain.ContentItem, error) {
	item, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	item.IsPublished = true
	item.PublishedAt = &now
	item.UpdatedBy = adminID
	if err := s.itemRepo.Save(item); err != nil {
		return nil, err
	}
	return item, nil
}

// Unpublish hides the item from the public read API
func (s *ContentService) Unpublish(id uint64, adminID string) (*domain.ContentItem, error) {
	item, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	item.IsPublished = false
	item.PublishedAt = nil
	item.UpdatedBy = adminID
	if err := s.itemRepo.Save(item); err != nil {
		return nil, err
	}
	return item, nil
}

// PublishedByKey returns a published item by key; unpublished items are
// indistinguishable from missing ones
func (s *ContentService) PublishedByKey(key string) (*domain.ContentItem, error) {
	item, err := s.itemRepo.FindPublishedByKey(key)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, err
	}
	return item, nil
}

// PublishedByKeys returns published items for the given keys, mapped by key.
// Unpublished or missing keys are simply absent from the result.
func (s *ContentService) PublishedByKeys(keys []string) (map[string]*domain.ContentItem, error) {
	items, err := s.itemRepo.FindPublishedByKeys(keys)
	if err != nil {
		return nil, err
	}
	result := make(map[string]*domain.ContentItem, len(items))
	for _, item := range items {
		result[item.Key] = item
	}
	return result, nil
}
