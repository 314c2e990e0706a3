package domain

import "time"

// ContentLock is a time-boxed advisory claim on a content item for editing.
// The unique index on content_item_id guarantees at most one lock row per
// item; expiry is checked against wall-clock time and stale rows are
// lazily reaped.
type ContentLock struct {
	ID            uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	ContentItemID uint64    `gorm:"column:content_item_id;uniqueIndex" json:"content_item_id"`
	LockedBy      string    `gorm:"column:locked_by;type:varchar(64)" json:"locked_by"`
	LockedByName  string    `gorm:"column:locked_by_name;type:varchar(100)" json:"locked_by_name"`
	LockToken     string    `gorm:"column:lock_token;type:varchar(36);uniqueIndex" json:"lock_token"`
	ExpiresAt     time.Time `gorm:"column:expires_at;index" json:"expires_at"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (ContentLock) TableName() string { return "cms_content_locks" }

// Expired reports whether the lock has lapsed at the given instant
func (l *ContentLock) Expired(now time.Time) bool {
	return !l.ExpiresAt.After(now)
}
