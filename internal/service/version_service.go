package service

import (
	"errors"
	"fmt"

	"github.com/venueflow/portal-backend/internal/common"
	"github.com/venueflow/portal-backend/internal/domain"
	"github.com/venueflow/portal-backend/internal/repository"
	"gorm.io/gorm"
)

// VersionService exposes the append-only edit history of content items and
// point-in-time restore. A restore is a forward-moving content mutation, so
// the full history stays auditable and version numbers are never reused.
type VersionService struct {
	versionRepo repository.VersionRepository
	itemRepo    repository.ContentItemRepository
	content     *ContentService
}

// NewVersionService creates a new VersionService
func NewVersionService(db *gorm.DB, content *ContentService) *VersionService {
	return &VersionService{
		versionRepo: repository.NewVersionRepository(db),
		itemRepo:    repository.NewContentItemRepository(db),
		content:     content,
	}
}

// List returns all versions for an item, newest first
func (s *VersionService) List(itemID uint64) ([]*domain.ContentVersion, error) {
	if _, err := s.itemRepo.FindByID(itemID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, err
	}
	return s.versionRepo.FindByItemID(itemID)
}

// Get returns a single version by id
func (s *VersionService) Get(versionID uint64) (*domain.ContentVersion, error) {
	version, err := s.versionRepo.FindByID(versionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, err
	}
	return version, nil
}

// Restore rewinds an item's content to a prior snapshot by writing it as a
// brand new version. Restoring the current version is legal and produces an
// identical-content version.
func (s *VersionService) Restore(itemID, versionID uint64, adminID string) (*domain.ContentItem, error) {
	version, err := s.Get(versionID)
	if err != nil {
		return nil, err
	}
	if version.ContentItemID != itemID {
		return nil, common.ErrNotFound
	}

	return s.content.Update(itemID, UpdateItemInput{
		Content:           version.Content,
		ChangeDescription: fmt.Sprintf("Restored from version %d", version.VersionNumber),
	}, adminID)
}
