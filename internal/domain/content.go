package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// JSONMap stores a loosely structured JSON document in a json column.
// Content payloads are opaque to the backend; the owning ContentType's
// schema describes the expected shape but is not enforced here.
type JSONMap map[string]interface{}

// Value implements driver.Valuer for JSONMap
func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

// Scan implements sql.Scanner for JSONMap
func (m *JSONMap) Scan(value interface{}) error {
	if value == nil {
		*m = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, m)
	case string:
		return json.Unmarshal([]byte(v), m)
	default:
		return fmt.Errorf("unsupported type for JSONMap: %T", value)
	}
}

// ContentType describes a class of editable content (e.g. venue_onboarding).
// Types are seeded at bootstrap and never hard-deleted, only deactivated.
type ContentType struct {
	ID          uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"column:name;type:varchar(100);uniqueIndex" json:"name"`
	DisplayName string    `gorm:"column:display_name;type:varchar(200)" json:"display_name"`
	Description *string   `gorm:"column:description;type:text" json:"description,omitempty"`
	Schema      JSONMap   `gorm:"column:schema;type:json" json:"schema,omitempty"`
	IsActive    bool      `gorm:"column:is_active;default:true" json:"is_active"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (ContentType) TableName() string { return "cms_content_types" }

// ContentItem is a single editable unit of content. Key is immutable after
// creation. PublishedAt is non-nil iff IsPublished.
type ContentItem struct {
	ID            uint64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Key           string     `gorm:"column:item_key;type:varchar(150);uniqueIndex" json:"key"`
	ContentTypeID uint64     `gorm:"column:content_type_id;index" json:"content_type_id"`
	Title         string     `gorm:"column:title;type:varchar(255)" json:"title"`
	Content       JSONMap    `gorm:"column:content;type:json" json:"content"`
	IsPublished   bool       `gorm:"column:is_published;default:false" json:"is_published"`
	PublishedAt   *time.Time `gorm:"column:published_at" json:"published_at,omitempty"`
	CreatedBy     string     `gorm:"column:created_by;type:varchar(64)" json:"created_by"`
	UpdatedBy     string     `gorm:"column:updated_by;type:varchar(64)" json:"updated_by"`
	CreatedAt     time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (ContentItem) TableName() string { return "cms_content_items" }
