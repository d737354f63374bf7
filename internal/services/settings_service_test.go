package services

import (
	"testing"

	"guidehub_backend/internal/models"
	"guidehub_backend/internal/repositories"
	"guidehub_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPremiumSettings_ConfigDefaults(t *testing.T) {
	db := newTestDB(t)
	svc := NewSettingService(repositories.NewSettingRepository(), testConfig())

	settings, err := svc.PremiumSettings(db)
	require.NoError(t, err)

	assert.Equal(t, 499.0, settings.Plans[models.PlanBasic].Price)
	assert.Equal(t, 999.0, settings.Plans[models.PlanAdvanced].Price)
	assert.Equal(t, 1999.0, settings.Plans[models.PlanPro].Price)
	assert.Equal(t, "INR", settings.Currency)
	assert.Equal(t, "guidehub@upi", settings.UPIID)
}

func TestPremiumSettings_RowsOverrideConfig(t *testing.T) {
	db := newTestDB(t)
	svc := NewSettingService(repositories.NewSettingRepository(), testConfig())

	require.NoError(t, svc.Set(db, models.SettingPlanProPrice, "2499"))
	require.NoError(t, svc.Set(db, models.SettingUPIID, "newhandle@upi"))

	settings, err := svc.PremiumSettings(db)
	require.NoError(t, err)

	assert.Equal(t, 2499.0, settings.Plans[models.PlanPro].Price)
	assert.Equal(t, "newhandle@upi", settings.UPIID)
	// Untouched keys keep their config values.
	assert.Equal(t, 499.0, settings.Plans[models.PlanBasic].Price)
}

func TestPremiumSettings_NonNumericPriceIsConfigurationError(t *testing.T) {
	db := newTestDB(t)
	svc := NewSettingService(repositories.NewSettingRepository(), testConfig())

	require.NoError(t, svc.Set(db, models.SettingPlanBasicPrice, "four hundred"))

	_, err := svc.PremiumSettings(db)
	assertAppErrorCode(t, err, apperrors.CodeConfigurationError)
}

func TestSettingGet_FallbackWhenMissing(t *testing.T) {
	db := newTestDB(t)
	svc := NewSettingService(repositories.NewSettingRepository(), testConfig())

	value, err := svc.Get(db, "nonexistent_key", "fallback")
	require.NoError(t, err)
	assert.Equal(t, "fallback", value)
}

func TestSettingSet_UpdatesExistingRow(t *testing.T) {
	db := newTestDB(t)
	svc := NewSettingService(repositories.NewSettingRepository(), testConfig())

	require.NoError(t, svc.Set(db, "maintenance_banner", "first"))
	require.NoError(t, svc.Set(db, "maintenance_banner", "second"))

	value, err := svc.Get(db, "maintenance_banner", "")
	require.NoError(t, err)
	assert.Equal(t, "second", value)

	var count int64
	require.NoError(t, db.Model(&models.Setting{}).Where("name = ?", "maintenance_banner").Count(&count).Error)
	assert.EqualValues(t, 1, count)
}
