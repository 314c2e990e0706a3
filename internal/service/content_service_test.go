package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/venueflow/portal-backend/internal/common"
	"github.com/venueflow/portal-backend/internal/domain"
)

func createItem(t *testing.T, svc *ContentService, key, title string, content domain.JSONMap) *domain.ContentItem {
	t.Helper()
	item, err := svc.Create(CreateItemInput{
		Key:           key,
		ContentTypeID: 1,
		Title:         title,
		Content:       content,
	}, "admin-1")
	require.NoError(t, err)
	return item
}

func TestCreate_WritesInitialVersion(t *testing.T) {
	db := newTestDB(t)
	svc := NewContentService(db)
	versions := NewVersionService(db, svc)

	item := createItem(t, svc, "home_hero", "Home Hero", domain.JSONMap{"title": "A"})
	assert.False(t, item.IsPublished)
	assert.Nil(t, item.PublishedAt)
	assert.Equal(t, "admin-1", item.CreatedBy)

	history, err := versions.List(item.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, uint(1), history[0].VersionNumber)
	assert.Equal(t, "Initial version", history[0].ChangeDescription)
	assert.Equal(t, "A", history[0].Content["title"])
}

func TestCreate_DuplicateKey(t *testing.T) {
	db := newTestDB(t)
	svc := NewContentService(db)

	createItem(t, svc, "home_hero", "Home Hero", domain.JSONMap{"title": "A"})

	_, err := svc.Create(CreateItemInput{
		Key:           "home_hero",
		ContentTypeID: 1,
		Title:         "Other",
		Content:       domain.JSONMap{"title": "B"},
	}, "admin-2")
	assert.ErrorIs(t, err, common.ErrDuplicateKey)
}

func TestCreate_MissingFields(t *testing.T) {
	db := newTestDB(t)
	svc := NewContentService(db)

	_, err := svc.Create(CreateItemInput{Key: "", Title: "x"}, "admin-1")
	assert.ErrorIs(t, err, common.ErrInvalidInput)
}

func TestUpdate_ContentMutationsVersionContiguously(t *testing.T) {
	db := newTestDB(t)
	svc := NewContentService(db)
	versions := NewVersionService(db, svc)

	item := createItem(t, svc, "faq_intro", "FAQ", domain.JSONMap{"body": "v1"})

	// N content mutations produce exactly N additional versions
	const n = 4
	for i := 0; i < n; i++ {
		_, err := svc.Update(item.ID, UpdateItemInput{
			Content: domain.JSONMap{"body": "edit"},
		}, "admin-1")
		require.NoError(t, err)
	}

	history, err := versions.List(item.ID)
	require.NoError(t, err)
	require.Len(t, history, n+1)

	// Newest first, strictly decreasing with no gaps
	for i, v := range history {
		assert.Equal(t, uint(n+1-i), v.VersionNumber)
	}
}

func TestUpdate_MetadataOnlyDoesNotVersion(t *testing.T) {
	db := newTestDB(t)
	svc := NewContentService(db)
	versions := NewVersionService(db, svc)

	item := createItem(t, svc, "faq_intro", "FAQ", domain.JSONMap{"body": "v1"})

	title := "FAQ (renamed)"
	updated, err := svc.Update(item.ID, UpdateItemInput{Title: &title}, "admin-2")
	require.NoError(t, err)
	assert.Equal(t, "FAQ (renamed)", updated.Title)
	assert.Equal(t, "admin-2", updated.UpdatedBy)

	history, err := versions.List(item.ID)
	require.NoError(t, err)
	assert.Len(t, history, 1)
}

func TestUpdate_NotFound(t *testing.T) {
	db := newTestDB(t)
	svc := NewContentService(db)

	_, err := svc.Update(9999, UpdateItemInput{Content: domain.JSONMap{"x": 1}}, "admin-1")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestPublish_MetadataOnly(t *testing.T) {
	db := newTestDB(t)
	svc := NewContentService(db)
	versions := NewVersionService(db, svc)

	item := createItem(t, svc, "welcome", "Welcome", domain.JSONMap{"body": "hi"})

	published, err := svc.Publish(item.ID, "admin-2")
	require.NoError(t, err)
	assert.True(t, published.IsPublished)
	require.NotNil(t, published.PublishedAt)
	assert.WithinDuration(t, time.Now(), *published.PublishedAt, 5*time.Second)
	assert.Equal(t, "admin-2", published.UpdatedBy)

	// Publishing must never create a version
	history, err := versions.List(item.ID)
	require.NoError(t, err)
	assert.Len(t, history, 1)

	// Republish is idempotent
	_, err = svc.Publish(item.ID, "admin-2")
	require.NoError(t, err)

	unpublished, err := svc.Unpublish(item.ID, "admin-2")
	require.NoError(t, err)
	assert.False(t, unpublished.IsPublished)
	assert.Nil(t, unpublished.PublishedAt)
}

func TestRestore_Scenario(t *testing.T) {
	db := newTestDB(t)
	svc := NewContentService(db)
	versions := NewVersionService(db, svc)

	// create {title:A} -> 1 version
	item := createItem(t, svc, "home_hero", "Home Hero", domain.JSONMap{"title": "A"})

	// update {title:B} -> 2 versions, content B
	updated, err := svc.Update(item.ID, UpdateItemInput{
		Content: domain.JSONMap{"title": "B"},
	}, "admin-1")
	require.NoError(t, err)
	assert.Equal(t, "B", updated.Content["title"])

	history, err := versions.List(item.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	versionOne := history[1]
	require.Equal(t, uint(1), versionOne.VersionNumber)

	// restore v1 -> 3 versions, content back to A
	restored, err := versions.Restore(item.ID, versionOne.ID, "admin-2")
	require.NoError(t, err)
	assert.Equal(t, "A", restored.Content["title"])

	history, err = versions.List(item.ID)
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, uint(3), history[0].VersionNumber)
	assert.Equal(t, "A", history[0].Content["title"])
	assert.Equal(t, "Restored from version 1", history[0].ChangeDescription)
}

func TestRestore_CurrentVersion(t *testing.T) {
	db := newTestDB(t)
	svc := NewContentService(db)
	versions := NewVersionService(db, svc)

	item := createItem(t, svc, "home_hero", "Home Hero", domain.JSONMap{"title": "A"})

	history, err := versions.List(item.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	current := history[0]
	require.Equal(t, uint(1), current.VersionNumber)

	// Restoring the latest version is legal and appends an identical-content
	// version rather than being detected as a no-op
	restored, err := versions.Restore(item.ID, current.ID, "admin-2")
	require.NoError(t, err)
	assert.Equal(t, "A", restored.Content["title"])

	history, err = versions.List(item.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, uint(2), history[0].VersionNumber)
	assert.Equal(t, "A", history[0].Content["title"])
	assert.Equal(t, "Restored from version 1", history[0].ChangeDescription)
}

func TestRestore_VersionFromAnotherItem(t *testing.T) {
	db := newTestDB(t)
	svc := NewContentService(db)
	versions := NewVersionService(db, svc)

	a := createItem(t, svc, "item_a", "A", domain.JSONMap{"x": "a"})
	b := createItem(t, svc, "item_b", "B", domain.JSONMap{"x": "b"})

	historyB, err := versions.List(b.ID)
	require.NoError(t, err)
	require.Len(t, historyB, 1)

	_, err = versions.Restore(a.ID, historyB[0].ID, "admin-1")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestDelete_CascadesVersionsAndLocks(t *testing.T) {
	db := newTestDB(t)
	svc := NewContentService(db)
	locks := NewLockService(db, 0)

	item := createItem(t, svc, "doomed", "Doomed", domain.JSONMap{"x": 1})
	_, err := svc.Update(item.ID, UpdateItemInput{Content: domain.JSONMap{"x": 2}}, "admin-1")
	require.NoError(t, err)
	_, err = locks.Acquire(item.ID, "admin-1", "Alice", 0)
	require.NoError(t, err)

	deleted, err := svc.Delete(item.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	var versionCount, lockCount int64
	db.Table("cms_content_versions").Where("content_item_id = ?", item.ID).Count(&versionCount)
	db.Table("cms_content_locks").Where("content_item_id = ?", item.ID).Count(&lockCount)
	assert.Zero(t, versionCount)
	assert.Zero(t, lockCount)

	_, err = svc.GetByKey("doomed")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestDelete_MissingIDIsNotAnError(t *testing.T) {
	db := newTestDB(t)
	svc := NewContentService(db)

	deleted, err := svc.Delete(424242)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestList_FiltersByTypeName(t *testing.T) {
	db := newTestDB(t)
	svc := NewContentService(db)

	types, err := svc.ListActiveTypes()
	require.NoError(t, err)
	require.NotEmpty(t, types)
	first, second := types[0], types[1]

	a, err := svc.Create(CreateItemInput{
		Key: "a", ContentTypeID: first.ID, Title: "A", Content: domain.JSONMap{"x": 1},
	}, "admin-1")
	require.NoError(t, err)
	_, err = svc.Create(CreateItemInput{
		Key: "b", ContentTypeID: second.ID, Title: "B", Content: domain.JSONMap{"x": 2},
	}, "admin-1")
	require.NoError(t, err)

	items, err := svc.List(first.Name)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, a.ID, items[0].ID)

	all, err := svc.List("")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	_, err = svc.List("no_such_type")
	assert.ErrorIs(t, err, common.ErrContentTypeNotFound)
}

func TestPublishedReads(t *testing.T) {
	db := newTestDB(t)
	svc := NewContentService(db)

	pub := createItem(t, svc, "pub_key", "Published", domain.JSONMap{"x": 1})
	createItem(t, svc, "draft_key", "Draft", domain.JSONMap{"x": 2})
	_, err := svc.Publish(pub.ID, "admin-1")
	require.NoError(t, err)

	got, err := svc.PublishedByKey("pub_key")
	require.NoError(t, err)
	assert.Equal(t, "pub_key", got.Key)

	// Drafts are indistinguishable from missing content
	_, err = svc.PublishedByKey("draft_key")
	assert.ErrorIs(t, err, common.ErrNotFound)
	_, err = svc.PublishedByKey("no_such_key")
	assert.ErrorIs(t, err, common.ErrNotFound)

	bulk, err := svc.PublishedByKeys([]string{"pub_key", "draft_key", "no_such_key"})
	require.NoError(t, err)
	require.Len(t, bulk, 1)
	assert.Contains(t, bulk, "pub_key")
}
