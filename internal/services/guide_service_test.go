package services

import (
	"testing"

	"guidehub_backend/internal/dto"
	"guidehub_backend/internal/models"
	"guidehub_backend/internal/repositories"
	"guidehub_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newGuideService() GuideService {
	return NewGuideService(repositories.NewGuideRepository())
}

func createGuide(t *testing.T, db *gorm.DB, svc GuideService, authorID, title string, premium, published bool) *dto.GuideResponse {
	t.Helper()
	resp, err := svc.Create(db, authorID, &dto.CreateGuideRequest{
		Title:     title,
		Summary:   "summary",
		Body:      "full body text",
		IsPremium: premium,
		Published: published,
	})
	require.NoError(t, err)
	return resp
}

func TestGuideCreate_SlugsAreUnique(t *testing.T) {
	db := newTestDB(t)
	svc := newGuideService()
	author := createTestUser(t, db, "author@test.local", models.UserRoleAdmin)

	first := createGuide(t, db, svc, author.ID, "Getting Started With UPI", false, true)
	second := createGuide(t, db, svc, author.ID, "Getting Started With UPI", false, true)
	third := createGuide(t, db, svc, author.ID, "Getting Started With UPI", false, true)

	assert.Equal(t, "getting-started-with-upi", first.Slug)
	assert.Equal(t, "getting-started-with-upi-2", second.Slug)
	assert.Equal(t, "getting-started-with-upi-3", third.Slug)
}

func TestGuideGetBySlug_PremiumBodyIsWithheld(t *testing.T) {
	db := newTestDB(t)
	svc := newGuideService()
	author := createTestUser(t, db, "author@test.local", models.UserRoleAdmin)
	guide := createGuide(t, db, svc, author.ID, "Premium Guide", true, true)

	reader := createTestUser(t, db, "reader@test.local", models.UserRoleUser)

	// Anonymous and non-premium readers see the guide but not its body.
	for _, u := range []*models.User{nil, reader} {
		resp, err := svc.GetBySlug(db, guide.Slug, u)
		require.NoError(t, err)
		assert.True(t, resp.Locked)
		assert.Empty(t, resp.Body)
	}

	reader.IsPremium = true
	resp, err := svc.GetBySlug(db, guide.Slug, reader)
	require.NoError(t, err)
	assert.False(t, resp.Locked)
	assert.Equal(t, "full body text", resp.Body)
}

func TestGuideGetBySlug_UnpublishedHiddenFromReaders(t *testing.T) {
	db := newTestDB(t)
	svc := newGuideService()
	admin := createTestUser(t, db, "admin@test.local", models.UserRoleAdmin)
	guide := createGuide(t, db, svc, admin.ID, "Draft Guide", false, false)

	_, err := svc.GetBySlug(db, guide.Slug, nil)
	assertAppErrorCode(t, err, apperrors.CodeNotFound)

	resp, err := svc.GetBySlug(db, guide.Slug, admin)
	require.NoError(t, err)
	assert.Equal(t, "Draft Guide", resp.Title)
}

func TestGuideGetBySlug_CountsViews(t *testing.T) {
	db := newTestDB(t)
	svc := newGuideService()
	author := createTestUser(t, db, "author@test.local", models.UserRoleAdmin)
	guide := createGuide(t, db, svc, author.ID, "Popular Guide", false, true)

	for i := 0; i < 3; i++ {
		_, err := svc.GetBySlug(db, guide.Slug, nil)
		require.NoError(t, err)
	}

	var stored models.Guide
	require.NoError(t, db.First(&stored, "id = ?", guide.ID).Error)
	assert.EqualValues(t, 3, stored.ViewCount)
}

func TestGuideUpdate_TitleChangeRegeneratesSlug(t *testing.T) {
	db := newTestDB(t)
	svc := newGuideService()
	author := createTestUser(t, db, "author@test.local", models.UserRoleAdmin)
	guide := createGuide(t, db, svc, author.ID, "Old Title", false, true)

	newTitle := "Completely New Title"
	resp, err := svc.Update(db, guide.ID, &dto.UpdateGuideRequest{Title: &newTitle})
	require.NoError(t, err)
	assert.Equal(t, "completely-new-title", resp.Slug)
}

func TestGuideList_NeverIncludesBody(t *testing.T) {
	db := newTestDB(t)
	svc := newGuideService()
	author := createTestUser(t, db, "author@test.local", models.UserRoleAdmin)
	createGuide(t, db, svc, author.ID, "Free Guide", false, true)
	createGuide(t, db, svc, author.ID, "Hidden Draft", false, false)

	resp, err := svc.List(db, dto.GuideCriteria{}, false)
	require.NoError(t, err)
	require.Len(t, resp.Guides, 1)
	assert.Equal(t, "Free Guide", resp.Guides[0].Title)
	assert.Empty(t, resp.Guides[0].Body)
}
