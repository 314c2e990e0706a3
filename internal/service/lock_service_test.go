package service

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/venueflow/portal-backend/internal/common"
	"github.com/venueflow/portal-backend/internal/domain"
	"github.com/venueflow/portal-backend/internal/repository"
)

func expireLock(t *testing.T, svc *ContentService, lockID uint64) {
	t.Helper()
	// Backdate the expiry instead of sleeping through a real window
	err := svc.db.Model(&domain.ContentLock{}).
		Where("id = ?", lockID).
		Update("expires_at", time.Now().Add(-time.Minute)).Error
	require.NoError(t, err)
}

func TestAcquire_GrantsLock(t *testing.T) {
	db := newTestDB(t)
	content := NewContentService(db)
	locks := NewLockService(db, 0)

	item := createItem(t, content, "hero", "Hero", domain.JSONMap{"x": 1})

	lock, err := locks.Acquire(item.ID, "admin-1", "Alice", 0)
	require.NoError(t, err)
	assert.Equal(t, item.ID, lock.ContentItemID)
	assert.Equal(t, "admin-1", lock.LockedBy)
	assert.Equal(t, "Alice", lock.LockedByName)
	assert.NotEmpty(t, lock.LockToken)
	assert.WithinDuration(t, time.Now().Add(DefaultLockDuration), lock.ExpiresAt, 5*time.Second)
}

func TestAcquire_MissingItem(t *testing.T) {
	db := newTestDB(t)
	locks := NewLockService(db, 0)

	_, err := locks.Acquire(99999, "admin-1", "Alice", 0)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestAcquire_ConflictCarriesHolder(t *testing.T) {
	db := newTestDB(t)
	content := NewContentService(db)
	locks := NewLockService(db, 0)

	item := createItem(t, content, "hero", "Hero", domain.JSONMap{"x": 1})
	held, err := locks.Acquire(item.ID, "admin-1", "Alice", 0)
	require.NoError(t, err)

	_, err = locks.Acquire(item.ID, "admin-2", "Bob", 0)
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrLockConflict)

	var conflict *common.LockConflictError
	require.True(t, errors.As(err, &conflict))
	assert.Equal(t, "admin-1", conflict.LockedBy)
	assert.Equal(t, "Alice", conflict.LockedByName)
	assert.Equal(t, held.ExpiresAt.Unix(), conflict.ExpiresAt.Unix())
}

func TestAcquire_SameAdminReusesLock(t *testing.T) {
	db := newTestDB(t)
	content := NewContentService(db)
	locks := NewLockService(db, 0)

	item := createItem(t, content, "hero", "Hero", domain.JSONMap{"x": 1})
	first, err := locks.Acquire(item.ID, "admin-1", "Alice", 0)
	require.NoError(t, err)

	second, err := locks.Acquire(item.ID, "admin-1", "Alice", 0)
	require.NoError(t, err)
	assert.Equal(t, first.LockToken, second.LockToken)
}

func TestAcquire_ExpiredLockIsReplaced(t *testing.T) {
	db := newTestDB(t)
	content := NewContentService(db)
	locks := NewLockService(db, 0)

	item := createItem(t, content, "hero", "Hero", domain.JSONMap{"x": 1})
	stale, err := locks.Acquire(item.ID, "admin-1", "Alice", 0)
	require.NoError(t, err)
	expireLock(t, content, stale.ID)

	fresh, err := locks.Acquire(item.ID, "admin-2", "Bob", 0)
	require.NoError(t, err)
	assert.Equal(t, "admin-2", fresh.LockedBy)
	assert.NotEqual(t, stale.LockToken, fresh.LockToken)
}

// racingLockRepo slips a competing lock row in between the service's
// availability check and its own insert, reproducing two admins acquiring
// the same unlocked item at once. The second insert then trips the unique
// index on content_item_id.
type racingLockRepo struct {
	repository.LockRepository
	winner   *domain.ContentLock
	injected bool
}

func (r *racingLockRepo) Create(lock *domain.ContentLock) error {
	if !r.injected {
		r.injected = true
		if err := r.LockRepository.Create(r.winner); err != nil {
			return err
		}
	}
	return r.LockRepository.Create(lock)
}

func TestAcquire_LostInsertRaceConflicts(t *testing.T) {
	db := newTestDB(t)
	content := NewContentService(db)
	locks := NewLockService(db, 0)

	item := createItem(t, content, "hero", "Hero", domain.JSONMap{"x": 1})

	winner := &domain.ContentLock{
		ContentItemID: item.ID,
		LockedBy:      "admin-1",
		LockedByName:  "Alice",
		LockToken:     "winner-token-1",
		ExpiresAt:     time.Now().Add(30 * time.Minute),
	}
	locks.lockRepo = &racingLockRepo{
		LockRepository: repository.NewLockRepository(db),
		winner:         winner,
	}

	_, err := locks.Acquire(item.ID, "admin-2", "Bob", 0)
	require.Error(t, err)

	var conflict *common.LockConflictError
	require.True(t, errors.As(err, &conflict))
	assert.Equal(t, "admin-1", conflict.LockedBy)
	assert.Equal(t, "Alice", conflict.LockedByName)
	assert.Equal(t, winner.ExpiresAt.Unix(), conflict.ExpiresAt.Unix())

	// The winner's row is the only one left standing
	var count int64
	require.NoError(t, db.Model(&domain.ContentLock{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestAcquire_LostInsertRaceSameAdmin(t *testing.T) {
	db := newTestDB(t)
	content := NewContentService(db)
	locks := NewLockService(db, 0)

	item := createItem(t, content, "hero", "Hero", domain.JSONMap{"x": 1})

	// The same admin won from another tab; the loser gets that lock back
	winner := &domain.ContentLock{
		ContentItemID: item.ID,
		LockedBy:      "admin-1",
		LockedByName:  "Alice",
		LockToken:     "winner-token-2",
		ExpiresAt:     time.Now().Add(30 * time.Minute),
	}
	locks.lockRepo = &racingLockRepo{
		LockRepository: repository.NewLockRepository(db),
		winner:         winner,
	}

	lock, err := locks.Acquire(item.ID, "admin-1", "Alice", 0)
	require.NoError(t, err)
	assert.Equal(t, winner.LockToken, lock.LockToken)
}

func TestRelease(t *testing.T) {
	db := newTestDB(t)
	content := NewContentService(db)
	locks := NewLockService(db, 0)

	item := createItem(t, content, "hero", "Hero", domain.JSONMap{"x": 1})
	lock, err := locks.Acquire(item.ID, "admin-1", "Alice", 0)
	require.NoError(t, err)

	// Wrong admin: no-op, lock survives
	released, err := locks.Release(lock.LockToken, "admin-2")
	require.NoError(t, err)
	assert.False(t, released)

	status, err := locks.Status(item.ID)
	require.NoError(t, err)
	require.NotNil(t, status)
	assert.Equal(t, "admin-1", status.LockedBy)

	// Unknown token: same shape, no detail leaked
	released, err = locks.Release("no-such-token", "admin-1")
	require.NoError(t, err)
	assert.False(t, released)

	// Owner releases
	released, err = locks.Release(lock.LockToken, "admin-1")
	require.NoError(t, err)
	assert.True(t, released)

	status, err = locks.Status(item.ID)
	require.NoError(t, err)
	assert.Nil(t, status)
}

func TestRelease_ExpiredLockReturnsFalse(t *testing.T) {
	db := newTestDB(t)
	content := NewContentService(db)
	locks := NewLockService(db, 0)

	item := createItem(t, content, "hero", "Hero", domain.JSONMap{"x": 1})
	lock, err := locks.Acquire(item.ID, "admin-1", "Alice", 0)
	require.NoError(t, err)
	expireLock(t, content, lock.ID)

	released, err := locks.Release(lock.LockToken, "admin-1")
	require.NoError(t, err)
	assert.False(t, released)
}

func TestRenew(t *testing.T) {
	db := newTestDB(t)
	content := NewContentService(db)
	locks := NewLockService(db, 0)

	item := createItem(t, content, "hero", "Hero", domain.JSONMap{"x": 1})
	lock, err := locks.Acquire(item.ID, "admin-1", "Alice", 10*time.Minute)
	require.NoError(t, err)

	renewed, err := locks.Renew(lock.LockToken, "admin-1", time.Hour)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), renewed.ExpiresAt, 5*time.Second)

	_, err = locks.Renew(lock.LockToken, "admin-2", time.Hour)
	assert.ErrorIs(t, err, common.ErrNotFound)

	_, err = locks.Renew("no-such-token", "admin-1", time.Hour)
	assert.ErrorIs(t, err, common.ErrNotFound)

	expireLock(t, content, lock.ID)
	_, err = locks.Renew(lock.LockToken, "admin-1", time.Hour)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestCleanupExpired(t *testing.T) {
	db := newTestDB(t)
	content := NewContentService(db)
	locks := NewLockService(db, 0)

	a := createItem(t, content, "item_a", "A", domain.JSONMap{"x": 1})
	b := createItem(t, content, "item_b", "B", domain.JSONMap{"x": 2})
	c := createItem(t, content, "item_c", "C", domain.JSONMap{"x": 3})

	lockA, err := locks.Acquire(a.ID, "admin-1", "Alice", 0)
	require.NoError(t, err)
	lockB, err := locks.Acquire(b.ID, "admin-1", "Alice", 0)
	require.NoError(t, err)
	_, err = locks.Acquire(c.ID, "admin-2", "Bob", 0)
	require.NoError(t, err)

	expireLock(t, content, lockA.ID)
	expireLock(t, content, lockB.ID)

	removed, err := locks.CleanupExpired()
	require.NoError(t, err)
	assert.EqualValues(t, 2, removed)

	// The live lock is untouched
	status, err := locks.Status(c.ID)
	require.NoError(t, err)
	require.NotNil(t, status)
	assert.Equal(t, "admin-2", status.LockedBy)
}
