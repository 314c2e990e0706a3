package domain

import "time"

// ContentVersion is an immutable full snapshot of a content item's payload.
// VersionNumber starts at 1 and is computed as max(existing)+1 per item;
// rows are never mutated, only cascade-deleted with the parent item.
type ContentVersion struct {
	ID                uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	ContentItemID     uint64    `gorm:"column:content_item_id;uniqueIndex:idx_item_version" json:"content_item_id"`
	VersionNumber     uint      `gorm:"column:version_number;uniqueIndex:idx_item_version" json:"version_number"`
	Content           JSONMap   `gorm:"column:content;type:json" json:"content"`
	ChangeDescription string    `gorm:"column:change_description;type:varchar(255)" json:"change_description"`
	CreatedBy         string    `gorm:"column:created_by;type:varchar(64)" json:"created_by"`
	CreatedAt         time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (ContentVersion) TableName() string { return "cms_content_versions" }
