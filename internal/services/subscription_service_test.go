package services

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"guidehub_backend/internal/config"
	"guidehub_backend/internal/dto"
	"guidehub_backend/internal/email"
	"guidehub_backend/internal/models"
	"guidehub_backend/internal/repositories"
	"guidehub_backend/pkg/apperrors"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// --- test doubles ---

type fakeStorage struct {
	saved   map[string]string // path -> content type
	deleted []string
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{saved: make(map[string]string)}
}

func (f *fakeStorage) Save(ctx context.Context, path string, reader io.Reader, contentType string) error {
	if _, err := io.Copy(io.Discard, reader); err != nil {
		return err
	}
	f.saved[path] = contentType
	return nil
}

func (f *fakeStorage) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	return io.NopCloser(strings.NewReader("")), nil
}

func (f *fakeStorage) Delete(ctx context.Context, path string) error {
	delete(f.saved, path)
	f.deleted = append(f.deleted, path)
	return nil
}

func (f *fakeStorage) Exists(ctx context.Context, path string) (bool, error) {
	_, ok := f.saved[path]
	return ok, nil
}

func (f *fakeStorage) URL(path string) string {
	return "/files/" + path
}

type fakeSender struct {
	sent []string // recipient addresses in send order
}

func (f *fakeSender) Send(to, subject, htmlBody string) error {
	f.sent = append(f.sent, to)
	return nil
}

// --- fixtures ---

type subscriptionFixture struct {
	db     *gorm.DB
	svc    SubscriptionService
	store  *fakeStorage
	sender *fakeSender
	cfg    *config.Config
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Upload.MaxScreenshotSize = 5 * 1024 * 1024
	cfg.Upload.AllowedImageTypes = []string{"image/jpeg", "image/png", "image/gif", "image/webp"}
	cfg.Premium.Plans = map[string]float64{"basic": 499, "advanced": 999, "pro": 1999}
	cfg.Premium.Currency = "INR"
	cfg.Premium.UPIID = "guidehub@upi"
	cfg.Premium.PayeeName = "GuideHub"
	cfg.Premium.AdminEmail = "admin@guidehub.test"
	return cfg
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Subscription{},
		&models.Guide{},
		&models.Comment{},
		&models.Rating{},
		&models.Notification{},
		&models.NewsletterSubscriber{},
		&models.Announcement{},
		&models.Setting{},
	))
	return db
}

func newSubscriptionFixture(t *testing.T) *subscriptionFixture {
	t.Helper()
	db := newTestDB(t)
	cfg := testConfig()
	store := newFakeStorage()
	sender := &fakeSender{}
	mailer := email.NewMailer(sender, "http://test.local")

	settingSvc := NewSettingService(repositories.NewSettingRepository(), cfg)
	notificationSvc := NewNotificationService(repositories.NewNotificationRepository())
	svc := NewSubscriptionService(
		repositories.NewSubscriptionRepository(),
		repositories.NewUserRepository(),
		settingSvc,
		notificationSvc,
		mailer,
		store,
		cfg,
	)

	return &subscriptionFixture{db: db, svc: svc, store: store, sender: sender, cfg: cfg}
}

func createTestUser(t *testing.T, db *gorm.DB, email string, role models.UserRole) *models.User {
	t.Helper()
	user := &models.User{
		Name:         "Test User",
		Email:        email,
		PasswordHash: "x",
		Role:         role,
		Status:       models.UserStatusActive,
		IsVerified:   true,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func submitPayment(t *testing.T, f *subscriptionFixture, userID, plan, txID, refCode string) *dto.SubscriptionResponse {
	t.Helper()
	resp, err := f.svc.SubmitManualPayment(f.db, userID, &dto.ConfirmManualPaymentRequest{
		SelectedPlan:  plan,
		TransactionID: txID,
		ReferenceCode: refCode,
	})
	require.NoError(t, err)
	return resp
}

func reloadUser(t *testing.T, db *gorm.DB, id string) *models.User {
	t.Helper()
	var user models.User
	require.NoError(t, db.First(&user, "id = ?", id).Error)
	return &user
}

func reloadSubscription(t *testing.T, db *gorm.DB, id string) *models.Subscription {
	t.Helper()
	var sub models.Subscription
	require.NoError(t, db.First(&sub, "id = ?", id).Error)
	return &sub
}

func assertAppErrorCode(t *testing.T, err error, code apperrors.ErrorCode) {
	t.Helper()
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, code, appErr.Code)
}

// --- submit / resubmit ---

func TestSubmitManualPayment_CreatesPendingSubscription(t *testing.T) {
	f := newSubscriptionFixture(t)
	user := createTestUser(t, f.db, "buyer@test.local", models.UserRoleUser)

	resp := submitPayment(t, f, user.ID, "basic", "TXN-1", "REF-1")

	assert.Equal(t, models.SubscriptionStatusPending, resp.Status)
	assert.Equal(t, models.PlanBasic, resp.Plan)
	assert.Equal(t, 499.0, resp.Amount)
	assert.Equal(t, "INR", resp.Currency)
	assert.Equal(t, "REF-1", resp.ReferenceCode)
	assert.NotNil(t, resp.SubmittedAt)

	// Admin side effects: one broadcast notification and one email.
	var broadcasts int64
	require.NoError(t, f.db.Model(&models.Notification{}).Where("user_id IS NULL").Count(&broadcasts).Error)
	assert.EqualValues(t, 1, broadcasts)
	assert.Equal(t, []string{"admin@guidehub.test"}, f.sender.sent)
}

func TestSubmitManualPayment_ResubmitUpdatesInPlace(t *testing.T) {
	f := newSubscriptionFixture(t)
	user := createTestUser(t, f.db, "buyer@test.local", models.UserRoleUser)

	first := submitPayment(t, f, user.ID, "basic", "TXN-1", "REF-1")
	second := submitPayment(t, f, user.ID, "pro", "TXN-2", "REF-2")

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, models.PlanPro, second.Plan)
	assert.Equal(t, 1999.0, second.Amount)
	assert.Equal(t, "REF-2", second.ReferenceCode)

	var count int64
	require.NoError(t, f.db.Model(&models.Subscription{}).Where("user_id = ?", user.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestSubmitManualPayment_ResubmitMayKeepSameReference(t *testing.T) {
	f := newSubscriptionFixture(t)
	user := createTestUser(t, f.db, "buyer@test.local", models.UserRoleUser)

	first := submitPayment(t, f, user.ID, "basic", "TXN-1", "REF-1")
	second := submitPayment(t, f, user.ID, "advanced", "TXN-1b", "REF-1")

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, models.PlanAdvanced, second.Plan)
}

func TestSubmitManualPayment_RejectsWhenActiveExists(t *testing.T) {
	f := newSubscriptionFixture(t)
	user := createTestUser(t, f.db, "buyer@test.local", models.UserRoleUser)
	ref := "REF-OLD"
	require.NoError(t, f.db.Create(&models.Subscription{
		UserID:        user.ID,
		Plan:          models.PlanBasic,
		Status:        models.SubscriptionStatusActive,
		ReferenceCode: &ref,
	}).Error)

	_, err := f.svc.SubmitManualPayment(f.db, user.ID, &dto.ConfirmManualPaymentRequest{
		SelectedPlan: "basic", TransactionID: "TXN-1", ReferenceCode: "REF-1",
	})
	assertAppErrorCode(t, err, apperrors.CodeConflict)
}

func TestSubmitManualPayment_RejectsDuplicateReferenceCode(t *testing.T) {
	f := newSubscriptionFixture(t)
	first := createTestUser(t, f.db, "first@test.local", models.UserRoleUser)
	second := createTestUser(t, f.db, "second@test.local", models.UserRoleUser)

	submitPayment(t, f, first.ID, "basic", "TXN-1", "REF-SHARED")

	_, err := f.svc.SubmitManualPayment(f.db, second.ID, &dto.ConfirmManualPaymentRequest{
		SelectedPlan: "basic", TransactionID: "TXN-2", ReferenceCode: "REF-SHARED",
	})
	assertAppErrorCode(t, err, apperrors.CodeConflict)
}

func TestSubmitManualPayment_RejectsUnknownPlan(t *testing.T) {
	f := newSubscriptionFixture(t)
	user := createTestUser(t, f.db, "buyer@test.local", models.UserRoleUser)

	_, err := f.svc.SubmitManualPayment(f.db, user.ID, &dto.ConfirmManualPaymentRequest{
		SelectedPlan: "platinum", TransactionID: "TXN-1", ReferenceCode: "REF-1",
	})
	assertAppErrorCode(t, err, apperrors.CodeValidationFailed)
}

func TestSubmitManualPayment_MissingPriceIsConfigurationError(t *testing.T) {
	f := newSubscriptionFixture(t)
	delete(f.cfg.Premium.Plans, "pro")
	user := createTestUser(t, f.db, "buyer@test.local", models.UserRoleUser)

	_, err := f.svc.SubmitManualPayment(f.db, user.ID, &dto.ConfirmManualPaymentRequest{
		SelectedPlan: "pro", TransactionID: "TXN-1", ReferenceCode: "REF-1",
	})
	assertAppErrorCode(t, err, apperrors.CodeConfigurationError)
}

func TestSubmitManualPayment_SettingsOverrideConfigPrice(t *testing.T) {
	f := newSubscriptionFixture(t)
	require.NoError(t, f.db.Create(&models.Setting{Name: models.SettingPlanBasicPrice, Value: "299"}).Error)
	user := createTestUser(t, f.db, "buyer@test.local", models.UserRoleUser)

	resp := submitPayment(t, f, user.ID, "basic", "TXN-1", "REF-1")
	assert.Equal(t, 299.0, resp.Amount)
}

func TestSubmitManualPayment_RequiresVerifiedEmailWhenConfigured(t *testing.T) {
	f := newSubscriptionFixture(t)
	f.cfg.Premium.RequireVerifiedEmail = true
	user := createTestUser(t, f.db, "buyer@test.local", models.UserRoleUser)
	require.NoError(t, f.db.Model(user).Update("is_verified", false).Error)

	_, err := f.svc.SubmitManualPayment(f.db, user.ID, &dto.ConfirmManualPaymentRequest{
		SelectedPlan: "basic", TransactionID: "TXN-1", ReferenceCode: "REF-1",
	})
	assertAppErrorCode(t, err, apperrors.CodeForbidden)
}

// --- admin decision ---

func TestAdminDecision_ActivateGrantsPremiumForOneYear(t *testing.T) {
	f := newSubscriptionFixture(t)
	admin := createTestUser(t, f.db, "admin@test.local", models.UserRoleAdmin)
	user := createTestUser(t, f.db, "buyer@test.local", models.UserRoleUser)
	sub := submitPayment(t, f, user.ID, "basic", "TXN-1", "REF-1")

	before := time.Now()
	resp, err := f.svc.AdminDecision(f.db, admin.ID, sub.ID, &dto.AdminDecisionRequest{Status: "active"})
	require.NoError(t, err)

	assert.Equal(t, models.SubscriptionStatusActive, resp.Status)
	require.NotNil(t, resp.StartDate)
	require.NotNil(t, resp.EndDate)
	assert.Equal(t, resp.StartDate.AddDate(1, 0, 0), *resp.EndDate)
	assert.WithinDuration(t, before, *resp.StartDate, 5*time.Second)

	stored := reloadSubscription(t, f.db, sub.ID)
	assert.Equal(t, admin.ID, stored.VerifiedBy)
	assert.NotNil(t, stored.VerifiedAt)

	owner := reloadUser(t, f.db, user.ID)
	assert.True(t, owner.IsPremium)
	require.NotNil(t, owner.SubscriptionID)
	assert.Equal(t, sub.ID, *owner.SubscriptionID)
}

func TestAdminDecision_ActivateUsesLastPaymentAtAsEffectiveStart(t *testing.T) {
	f := newSubscriptionFixture(t)
	admin := createTestUser(t, f.db, "admin@test.local", models.UserRoleAdmin)
	user := createTestUser(t, f.db, "buyer@test.local", models.UserRoleUser)
	sub := submitPayment(t, f, user.ID, "basic", "TXN-1", "REF-1")

	paidAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, f.db.Model(&models.Subscription{}).Where("id = ?", sub.ID).
		Update("last_payment_at", paidAt).Error)

	resp, err := f.svc.AdminDecision(f.db, admin.ID, sub.ID, &dto.AdminDecisionRequest{Status: "active"})
	require.NoError(t, err)

	require.NotNil(t, resp.EndDate)
	assert.WithinDuration(t, paidAt.AddDate(1, 0, 0), *resp.EndDate, time.Minute)
}

func TestAdminDecision_IllegalTransitionLeavesRecordUnchanged(t *testing.T) {
	f := newSubscriptionFixture(t)
	admin := createTestUser(t, f.db, "admin@test.local", models.UserRoleAdmin)
	user := createTestUser(t, f.db, "buyer@test.local", models.UserRoleUser)
	sub := &models.Subscription{
		UserID: user.ID,
		Plan:   models.PlanBasic,
		Status: models.SubscriptionStatusCancelled,
	}
	require.NoError(t, f.db.Create(sub).Error)

	_, err := f.svc.AdminDecision(f.db, admin.ID, sub.ID, &dto.AdminDecisionRequest{Status: "active"})
	assertAppErrorCode(t, err, apperrors.CodeIllegalTransition)
	assert.Contains(t, err.Error(), "'cancelled'")
	assert.Contains(t, err.Error(), "'active'")

	stored := reloadSubscription(t, f.db, sub.ID)
	assert.Equal(t, models.SubscriptionStatusCancelled, stored.Status)
	assert.Empty(t, stored.VerifiedBy)
}

func TestAdminDecision_RejectRequiresAdminRole(t *testing.T) {
	f := newSubscriptionFixture(t)
	user := createTestUser(t, f.db, "buyer@test.local", models.UserRoleUser)
	sub := submitPayment(t, f, user.ID, "basic", "TXN-1", "REF-1")

	_, err := f.svc.AdminDecision(f.db, user.ID, sub.ID, &dto.AdminDecisionRequest{Status: "active"})
	assertAppErrorCode(t, err, apperrors.CodeForbidden)
}

func TestAdminDecision_FailedClearsPremiumOnlyThroughLinkedSubscription(t *testing.T) {
	f := newSubscriptionFixture(t)
	admin := createTestUser(t, f.db, "admin@test.local", models.UserRoleAdmin)
	user := createTestUser(t, f.db, "buyer@test.local", models.UserRoleUser)

	// Premium comes from an older, still-active subscription.
	otherRef := "REF-OTHER"
	other := &models.Subscription{
		UserID:        user.ID,
		Plan:          models.PlanBasic,
		Status:        models.SubscriptionStatusActive,
		ReferenceCode: &otherRef,
	}
	require.NoError(t, f.db.Create(other).Error)
	require.NoError(t, f.db.Model(user).Updates(map[string]interface{}{
		"is_premium": true, "subscription_id": other.ID,
	}).Error)

	pendingRef := "REF-PENDING"
	pending := &models.Subscription{
		UserID:        user.ID,
		Plan:          models.PlanPro,
		Status:        models.SubscriptionStatusPending,
		ReferenceCode: &pendingRef,
	}
	require.NoError(t, f.db.Create(pending).Error)

	resp, err := f.svc.AdminDecision(f.db, admin.ID, pending.ID, &dto.AdminDecisionRequest{
		Status: "failed", AdminNotes: "no payment found",
	})
	require.NoError(t, err)
	assert.Equal(t, "no payment found", resp.AdminNotes)

	// The other subscription and the premium it granted are untouched.
	assert.Equal(t, models.SubscriptionStatusActive, reloadSubscription(t, f.db, other.ID).Status)
	owner := reloadUser(t, f.db, user.ID)
	assert.True(t, owner.IsPremium)
	require.NotNil(t, owner.SubscriptionID)
	assert.Equal(t, other.ID, *owner.SubscriptionID)
}

func TestAdminDecision_FailedClearsPremiumWhenLinked(t *testing.T) {
	f := newSubscriptionFixture(t)
	admin := createTestUser(t, f.db, "admin@test.local", models.UserRoleAdmin)
	user := createTestUser(t, f.db, "buyer@test.local", models.UserRoleUser)
	sub := submitPayment(t, f, user.ID, "basic", "TXN-1", "REF-1")

	_, err := f.svc.AdminDecision(f.db, admin.ID, sub.ID, &dto.AdminDecisionRequest{Status: "active"})
	require.NoError(t, err)
	require.True(t, reloadUser(t, f.db, user.ID).IsPremium)

	_, err = f.svc.AdminDecision(f.db, admin.ID, sub.ID, &dto.AdminDecisionRequest{Status: "cancelled"})
	require.NoError(t, err)

	owner := reloadUser(t, f.db, user.ID)
	assert.False(t, owner.IsPremium)
	assert.Nil(t, owner.SubscriptionID)
}

// --- user cancellation ---

func TestCancel_RevokesPremiumImmediately(t *testing.T) {
	f := newSubscriptionFixture(t)
	admin := createTestUser(t, f.db, "admin@test.local", models.UserRoleAdmin)
	user := createTestUser(t, f.db, "buyer@test.local", models.UserRoleUser)
	sub := submitPayment(t, f, user.ID, "basic", "TXN-1", "REF-1")
	_, err := f.svc.AdminDecision(f.db, admin.ID, sub.ID, &dto.AdminDecisionRequest{Status: "active"})
	require.NoError(t, err)

	require.NoError(t, f.svc.Cancel(f.db, user.ID))

	assert.Equal(t, models.SubscriptionStatusCancelled, reloadSubscription(t, f.db, sub.ID).Status)
	owner := reloadUser(t, f.db, user.ID)
	assert.False(t, owner.IsPremium)
	assert.Nil(t, owner.SubscriptionID)
}

func TestCancel_WithoutActiveSubscriptionIsNotFound(t *testing.T) {
	f := newSubscriptionFixture(t)
	user := createTestUser(t, f.db, "buyer@test.local", models.UserRoleUser)

	err := f.svc.Cancel(f.db, user.ID)
	assertAppErrorCode(t, err, apperrors.CodeNotFound)
}

// --- status read / reconciliation ---

func TestStatus_NoSubscription(t *testing.T) {
	f := newSubscriptionFixture(t)
	user := createTestUser(t, f.db, "buyer@test.local", models.UserRoleUser)

	resp, err := f.svc.Status(f.db, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "none", resp.Status)
	assert.False(t, resp.IsPremium)
	assert.Nil(t, resp.Subscription)
}

func TestStatus_HealsDriftedPremiumFlag(t *testing.T) {
	f := newSubscriptionFixture(t)
	user := createTestUser(t, f.db, "buyer@test.local", models.UserRoleUser)
	ref := "REF-1"
	sub := &models.Subscription{
		UserID:        user.ID,
		Plan:          models.PlanBasic,
		Status:        models.SubscriptionStatusActive,
		ReferenceCode: &ref,
	}
	require.NoError(t, f.db.Create(sub).Error)

	resp, err := f.svc.Status(f.db, user.ID)
	require.NoError(t, err)
	assert.True(t, resp.IsPremium)

	owner := reloadUser(t, f.db, user.ID)
	assert.True(t, owner.IsPremium)
	require.NotNil(t, owner.SubscriptionID)
	assert.Equal(t, sub.ID, *owner.SubscriptionID)
}

func TestStatus_LatestSubscriptionWinsOverOlderActive(t *testing.T) {
	f := newSubscriptionFixture(t)
	user := createTestUser(t, f.db, "buyer@test.local", models.UserRoleUser)

	activeRef := "REF-ACTIVE"
	active := &models.Subscription{
		UserID:        user.ID,
		Plan:          models.PlanBasic,
		Status:        models.SubscriptionStatusActive,
		ReferenceCode: &activeRef,
	}
	require.NoError(t, f.db.Create(active).Error)
	require.NoError(t, f.db.Model(&models.Subscription{}).Where("id = ?", active.ID).
		Update("created_at", time.Now().Add(-time.Hour)).Error)
	require.NoError(t, f.db.Model(user).Updates(map[string]interface{}{
		"is_premium": true, "subscription_id": active.ID,
	}).Error)

	failedRef := "REF-FAILED"
	failed := &models.Subscription{
		UserID:        user.ID,
		Plan:          models.PlanPro,
		Status:        models.SubscriptionStatusFailed,
		ReferenceCode: &failedRef,
	}
	require.NoError(t, f.db.Create(failed).Error)

	resp, err := f.svc.Status(f.db, user.ID)
	require.NoError(t, err)
	assert.Equal(t, string(models.SubscriptionStatusFailed), resp.Status)
	assert.False(t, resp.IsPremium)
	assert.False(t, reloadUser(t, f.db, user.ID).IsPremium)
}

func TestStatus_ReconciliationIsIdempotent(t *testing.T) {
	f := newSubscriptionFixture(t)
	user := createTestUser(t, f.db, "buyer@test.local", models.UserRoleUser)
	ref := "REF-1"
	require.NoError(t, f.db.Create(&models.Subscription{
		UserID:        user.ID,
		Plan:          models.PlanBasic,
		Status:        models.SubscriptionStatusActive,
		ReferenceCode: &ref,
	}).Error)

	first, err := f.svc.Status(f.db, user.ID)
	require.NoError(t, err)
	second, err := f.svc.Status(f.db, user.ID)
	require.NoError(t, err)

	assert.Equal(t, first.IsPremium, second.IsPremium)
	assert.Equal(t, first.Status, second.Status)
}

// --- screenshots ---

func screenshotUpload(content string) *dto.ScreenshotUpload {
	return &dto.ScreenshotUpload{
		Filename:    "payment.png",
		ContentType: "image/png",
		Size:        int64(len(content)),
		Reader:      strings.NewReader(content),
	}
}

func TestAttachScreenshot_StoresFileAndRecordsURL(t *testing.T) {
	f := newSubscriptionFixture(t)
	user := createTestUser(t, f.db, "buyer@test.local", models.UserRoleUser)
	sub := submitPayment(t, f, user.ID, "basic", "TXN-1", "REF-1")

	resp, err := f.svc.AttachScreenshot(context.Background(), f.db, user.ID, sub.ID, screenshotUpload("image-bytes"))
	require.NoError(t, err)

	assert.NotEmpty(t, resp.ScreenshotURL)
	stored := reloadSubscription(t, f.db, sub.ID)
	assert.Contains(t, stored.ScreenshotPath, "screenshots/"+sub.ID+"/")
	assert.Contains(t, f.store.saved, stored.ScreenshotPath)
}

func TestAttachScreenshot_SecondUploadDeletesFirstFile(t *testing.T) {
	f := newSubscriptionFixture(t)
	user := createTestUser(t, f.db, "buyer@test.local", models.UserRoleUser)
	sub := submitPayment(t, f, user.ID, "basic", "TXN-1", "REF-1")

	_, err := f.svc.AttachScreenshot(context.Background(), f.db, user.ID, sub.ID, screenshotUpload("first"))
	require.NoError(t, err)
	firstPath := reloadSubscription(t, f.db, sub.ID).ScreenshotPath

	_, err = f.svc.AttachScreenshot(context.Background(), f.db, user.ID, sub.ID, screenshotUpload("second"))
	require.NoError(t, err)
	secondPath := reloadSubscription(t, f.db, sub.ID).ScreenshotPath

	assert.NotEqual(t, firstPath, secondPath)
	assert.Contains(t, f.store.deleted, firstPath)
	assert.NotContains(t, f.store.saved, firstPath)
	assert.Contains(t, f.store.saved, secondPath)
}

func TestAttachScreenshot_RejectsWrongOwner(t *testing.T) {
	f := newSubscriptionFixture(t)
	owner := createTestUser(t, f.db, "owner@test.local", models.UserRoleUser)
	other := createTestUser(t, f.db, "other@test.local", models.UserRoleUser)
	sub := submitPayment(t, f, owner.ID, "basic", "TXN-1", "REF-1")

	_, err := f.svc.AttachScreenshot(context.Background(), f.db, other.ID, sub.ID, screenshotUpload("x"))
	assertAppErrorCode(t, err, apperrors.CodeForbidden)
}

func TestAttachScreenshot_RejectsNonImageAndOversize(t *testing.T) {
	f := newSubscriptionFixture(t)
	user := createTestUser(t, f.db, "buyer@test.local", models.UserRoleUser)
	sub := submitPayment(t, f, user.ID, "basic", "TXN-1", "REF-1")

	pdf := screenshotUpload("not-an-image")
	pdf.ContentType = "application/pdf"
	_, err := f.svc.AttachScreenshot(context.Background(), f.db, user.ID, sub.ID, pdf)
	assertAppErrorCode(t, err, apperrors.CodeValidationFailed)

	big := screenshotUpload("x")
	big.Size = f.cfg.Upload.MaxScreenshotSize + 1
	_, err = f.svc.AttachScreenshot(context.Background(), f.db, user.ID, sub.ID, big)
	assertAppErrorCode(t, err, apperrors.CodeValidationFailed)
}

func TestAttachScreenshot_RejectsDecidedSubscription(t *testing.T) {
	f := newSubscriptionFixture(t)
	admin := createTestUser(t, f.db, "admin@test.local", models.UserRoleAdmin)
	user := createTestUser(t, f.db, "buyer@test.local", models.UserRoleUser)
	sub := submitPayment(t, f, user.ID, "basic", "TXN-1", "REF-1")
	_, err := f.svc.AdminDecision(f.db, admin.ID, sub.ID, &dto.AdminDecisionRequest{Status: "active"})
	require.NoError(t, err)

	_, err = f.svc.AttachScreenshot(context.Background(), f.db, user.ID, sub.ID, screenshotUpload("x"))
	assertAppErrorCode(t, err, apperrors.CodeConflict)
}

// --- features ---

func TestFeatures_ListsPurchasablePlans(t *testing.T) {
	f := newSubscriptionFixture(t)

	resp, err := f.svc.Features(f.db)
	require.NoError(t, err)

	require.Len(t, resp.Plans, 3)
	assert.Equal(t, models.PlanBasic, resp.Plans[0].Name)
	assert.Equal(t, 499.0, resp.Plans[0].Price)
	assert.Equal(t, "guidehub@upi", resp.UPIID)
	assert.NotEmpty(t, resp.Instructions)
}
