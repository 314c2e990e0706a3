package middleware

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/venueflow/portal-backend/pkg/logger"
	"gorm.io/gorm"
)

// CmsActivityLog is the append-only audit record of admin actions against
// content. Write-only from the request path; read back by the admin
// activity listing.
type CmsActivityLog struct {
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`

	AdminID    string `gorm:"column:admin_id;index" json:"admin_id"`
	Action     string `gorm:"column:action;index" json:"action"` // content_item.create, content_item.publish, lock.acquire, etc.
	Resource   string `gorm:"column:resource" json:"resource"`   // content_item, content_type, content_lock
	ResourceID string `gorm:"column:resource_id" json:"resource_id"`
	Details    string `gorm:"column:details;type:text" json:"details"`
	ClientIP   string `gorm:"column:client_ip" json:"client_ip"`
	UserAgent  string `gorm:"column:user_agent" json:"user_agent"`
	RequestID  string `gorm:"column:request_id" json:"request_id"`

	ID int64 `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
}

func (CmsActivityLog) TableName() string {
	return "cms_activity_logs"
}

// ActivityLogger handles writing CMS audit entries
type ActivityLogger struct {
	db *gorm.DB
}

// NewActivityLogger creates a new ActivityLogger
func NewActivityLogger(db *gorm.DB) *ActivityLogger {
	if db != nil {
		_ = db.AutoMigrate(&CmsActivityLog{})
	}
	return &ActivityLogger{db: db}
}

// Record writes an audit entry for the current request, pulling client and
// request metadata from the gin context
func (a *ActivityLogger) Record(c *gin.Context, adminID, action, resource, resourceID, details string) {
	if a.db == nil {
		return
	}

	entry := &CmsActivityLog{
		AdminID:    adminID,
		Action:     action,
		Resource:   resource,
		ResourceID: resourceID,
		Details:    details,
		ClientIP:   c.ClientIP(),
		UserAgent:  c.GetHeader("User-Agent"),
		RequestID:  c.GetString("request_id"),
	}

	// Write async to avoid blocking the request
	go func() {
		if err := a.db.Create(entry).Error; err != nil {
			logger.GetLogger().Error().Err(err).
				Str("action", action).
				Str("admin_id", adminID).
				Msg("activity log write failed")
		}
	}()
}

// List retrieves paginated activity logs with optional filters
func (a *ActivityLogger) List(ctx context.Context, adminID, action string, page, perPage int) ([]CmsActivityLog, int64, error) {
	var logs []CmsActivityLog
	var total int64

	query := a.db.WithContext(ctx).Model(&CmsActivityLog{})
	if adminID != "" {
		query = query.Where("admin_id = ?", adminID)
	}
	if action != "" {
		query = query.Where("action = ?", action)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := query.Order("created_at DESC").
		Offset((page - 1) * perPage).Limit(perPage).
		Find(&logs).Error

	return logs, total, err
}
