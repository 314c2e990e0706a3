package repository

import (
	"time"

	"github.com/venueflow/portal-backend/internal/domain"
	"gorm.io/gorm"
)

// LockRepository content lock data access
type LockRepository interface {
	Create(lock *domain.ContentLock) error
	FindActiveByItemID(itemID uint64, now time.Time) (*domain.ContentLock, error)
	FindByToken(token string) (*domain.ContentLock, error)
	UpdateExpiry(id uint64, expiresAt time.Time) error
	DeleteByID(id uint64) error
	DeleteByItemID(itemID uint64) error
	DeleteExpired(now time.Time) (int64, error)
	DeleteExpiredByItemID(itemID uint64, now time.Time) error
}

type lockRepository struct {
	db *gorm.DB
}

// NewLockRepository creates a new LockRepository
func NewLockRepository(db *gorm.DB) LockRepository {
	return &lockRepository{db: db}
}

func (r *lockRepository) Create(lock *domain.ContentLock) error {
	return r.db.Create(lock).Error
}

func (r *lockRepository) FindActiveByItemID(itemID uint64, now time.Time) (*domain.ContentLock, error) {
	var lock domain.ContentLock
	err := r.db.Where("content_item_id = ? AND expires_at > ?", itemID, now).First(&lock).Error
	if err != nil {
		return nil, err
	}
	return &lock, nil
}

func (r *lockRepository) FindByToken(token string) (*domain.ContentLock, error) {
	var lock domain.ContentLock
	err := r.db.Where("lock_token = ?", token).First(&lock).Error
	if err != nil {
		return nil, err
	}
	return &lock, nil
}

func (r *lockRepository) UpdateExpiry(id uint64, expiresAt time.Time) error {
	return r.db.Model(&domain.ContentLock{}).Where("id = ?", id).
		Update("expires_at", expiresAt).Error
}

func (r *lockRepository) DeleteByID(id uint64) error {
	return r.db.Delete(&domain.ContentLock{}, id).Error
}

func (r *lockRepository) DeleteByItemID(itemID uint64) error {
	return r.db.Where("content_item_id = ?", itemID).Delete(&domain.ContentLock{}).Error
}

// DeleteExpired reaps all lapsed locks and returns the count removed
func (r *lockRepository) DeleteExpired(now time.Time) (int64, error) {
	res := r.db.Where("expires_at < ?", now).Delete(&domain.ContentLock{})
	return res.RowsAffected, res.Error
}

func (r *lockRepository) DeleteExpiredByItemID(itemID uint64, now time.Time) error {
	return r.db.Where("content_item_id = ? AND expires_at < ?", itemID, now).
		Delete(&domain.ContentLock{}).Error
}
