package migration

import (
	"github.com/venueflow/portal-backend/internal/domain"
	"gorm.io/gorm"
)

// Run executes AutoMigrate for the CMS tables and seeds the default content
// types if the table is empty
func Run(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&domain.ContentType{},
		&domain.ContentItem{},
		&domain.ContentVersion{},
		&domain.ContentLock{},
	); err != nil {
		return err
	}

	var count int64
	db.Model(&domain.ContentType{}).Count(&count)
	if count == 0 {
		return seedContentTypes(db)
	}

	return nil
}

func seedContentTypes(db *gorm.DB) error {
	strPtr := func(s string) *string { return &s }

	types := []domain.ContentType{
		{
			Name:        "venue_onboarding",
			DisplayName: "Venue Onboarding",
			Description: strPtr("Copy and task lists shown to venues during onboarding"),
			Schema: domain.JSONMap{
				"fields": []interface{}{
					map[string]interface{}{"name": "title", "type": "string"},
					map[string]interface{}{"name": "intro", "type": "richtext"},
					map[string]interface{}{"name": "tasks", "type": "list"},
				},
			},
			IsActive: true,
		},
		{
			Name:        "training_modules",
			DisplayName: "Training Modules",
			Description: strPtr("Self-serve training content for venue staff"),
			Schema: domain.JSONMap{
				"fields": []interface{}{
					map[string]interface{}{"name": "title", "type": "string"},
					map[string]interface{}{"name": "body", "type": "richtext"},
					map[string]interface{}{"name": "video_url", "type": "url"},
				},
			},
			IsActive: true,
		},
		{
			Name:        "feature_pages",
			DisplayName: "Feature Pages",
			Description: strPtr("Marketing descriptions of product features"),
			Schema: domain.JSONMap{
				"fields": []interface{}{
					map[string]interface{}{"name": "headline", "type": "string"},
					map[string]interface{}{"name": "body", "type": "richtext"},
					map[string]interface{}{"name": "cta_label", "type": "string"},
				},
			},
			IsActive: true,
		},
		{
			Name:        "faq_entries",
			DisplayName: "FAQ Entries",
			Description: strPtr("Frequently asked questions on the onboarding portal"),
			Schema: domain.JSONMap{
				"fields": []interface{}{
					map[string]interface{}{"name": "question", "type": "string"},
					map[string]interface{}{"name": "answer", "type": "richtext"},
				},
			},
			IsActive: true,
		},
	}

	return db.Create(&types).Error
}
