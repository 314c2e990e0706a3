package service

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/venueflow/portal-backend/internal/common"
	"github.com/venueflow/portal-backend/internal/domain"
	"github.com/venueflow/portal-backend/internal/repository"
	"gorm.io/gorm"
)

// DefaultLockDuration is used when a client does not ask for a specific
// editing window.
const DefaultLockDuration = 30 * time.Minute

// LockService grants time-boxed exclusive edit claims on content items.
// Locks are advisory: nothing stops a caller from mutating content without
// one, but the admin UI always acquires before editing. Conflicts are
// normal control flow, not errors worth logging.
type LockService struct {
	lockRepo        repository.LockRepository
	itemRepo        repository.ContentItemRepository
	defaultDuration time.Duration
}

// NewLockService creates a new LockService. A non-positive defaultDuration
// falls back to DefaultLockDuration.
func NewLockService(db *gorm.DB, defaultDuration time.Duration) *LockService {
	if defaultDuration <= 0 {
		defaultDuration = DefaultLockDuration
	}
	return &LockService{
		lockRepo:        repository.NewLockRepository(db),
		itemRepo:        repository.NewContentItemRepository(db),
		defaultDuration: defaultDuration,
	}
}

// Acquire claims an item for editing. A still-valid lock held by the same
// admin is returned as-is; one held by anyone else yields a
// LockConflictError carrying the holder and expiry for the UI.
func (s *LockService) Acquire(itemID uint64, adminID, adminName string, duration time.Duration) (*domain.ContentLock, error) {
	if duration <= 0 {
		duration = s.defaultDuration
	}

	if _, err := s.itemRepo.FindByID(itemID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, err
	}

	now := time.Now()

	// Reap stale rows first so an expired lock never blocks a new claim
	if err := s.lockRepo.DeleteExpiredByItemID(itemID, now); err != nil {
		return nil, err
	}

	if existing, err := s.lockRepo.FindActiveByItemID(itemID, now); err == nil {
		return s.resolveExisting(existing, adminID)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	lock := &domain.ContentLock{
		ContentItemID: itemID,
		LockedBy:      adminID,
		LockedByName:  adminName,
		LockToken:     uuid.NewString(),
		ExpiresAt:     now.Add(duration),
	}
	if err := s.lockRepo.Create(lock); err != nil {
		// Lost the insert race on the content_item_id unique index;
		// whoever won owns the item now, so apply the same rules.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			winner, ferr := s.lockRepo.FindActiveByItemID(itemID, time.Now())
			if ferr != nil {
				return nil, err
			}
			return s.resolveExisting(winner, adminID)
		}
		return nil, err
	}
	return lock, nil
}

func (s *LockService) resolveExisting(lock *domain.ContentLock, adminID string) (*domain.ContentLock, error) {
	if lock.LockedBy == adminID {
		return lock, nil
	}
	return nil, &common.LockConflictError{
		LockedBy:     lock.LockedBy,
		LockedByName: lock.LockedByName,
		ExpiresAt:    lock.ExpiresAt,
	}
}

// Release frees a lock by token. Returns false without further detail when
// the token does not match an active lock owned by the calling admin, so a
// stale tab cannot probe for or drop someone else's claim.
func (s *LockService) Release(token, adminID string) (bool, error) {
	lock, err := s.lockRepo.FindByToken(token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	if lock.LockedBy != adminID {
		return false, nil
	}
	if lock.Expired(time.Now()) {
		// Stale row; reap it but the caller no longer held anything
		_ = s.lockRepo.DeleteByID(lock.ID)
		return false, nil
	}
	if err := s.lockRepo.DeleteByID(lock.ID); err != nil {
		return false, err
	}
	return true, nil
}

// Renew pushes the expiry of a held lock forward. Token or owner mismatch
// surfaces as not-found to avoid leaking lock state.
func (s *LockService) Renew(token, adminID string, duration time.Duration) (*domain.ContentLock, error) {
	if duration <= 0 {
		duration = s.defaultDuration
	}

	lock, err := s.lockRepo.FindByToken(token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, err
	}
	if lock.LockedBy != adminID || lock.Expired(time.Now()) {
		return nil, common.ErrNotFound
	}

	lock.ExpiresAt = time.Now().Add(duration)
	if err := s.lockRepo.UpdateExpiry(lock.ID, lock.ExpiresAt); err != nil {
		return nil, err
	}
	return lock, nil
}

// Status returns the active lock on an item, or nil when unlocked
func (s *LockService) Status(itemID uint64) (*domain.ContentLock, error) {
	lock, err := s.lockRepo.FindActiveByItemID(itemID, time.Now())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return lock, nil
}

// CleanupExpired reaps every lapsed lock and returns the count removed.
// Runs opportunistically inside Acquire and from the periodic sweep.
func (s *LockService) CleanupExpired() (int64, error) {
	return s.lockRepo.DeleteExpired(time.Now())
}
