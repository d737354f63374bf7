package services

import (
	"errors"
	"fmt"
	"strconv"

	"guidehub_backend/internal/config"
	"guidehub_backend/internal/dto"
	"guidehub_backend/internal/models"
	"guidehub_backend/internal/repositories"
	"guidehub_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// SettingService resolves runtime configuration. Values come from the config
// file and can be overridden per key through the settings table without a
// restart.
type SettingService interface {
	Get(db *gorm.DB, name, fallback string) (string, error)
	Set(db *gorm.DB, name, value string) error
	All(db *gorm.DB) ([]*dto.SettingResponse, error)
	PremiumSettings(db *gorm.DB) (*dto.PremiumSettings, error)
}

type SettingServiceImpl struct {
	settingRepo repositories.SettingRepository
	cfg         *config.Config
}

func NewSettingService(settingRepo repositories.SettingRepository, cfg *config.Config) SettingService {
	return &SettingServiceImpl{settingRepo: settingRepo, cfg: cfg}
}

func (s *SettingServiceImpl) Get(db *gorm.DB, name, fallback string) (string, error) {
	setting, err := s.settingRepo.Get(db, name)
	if err != nil {
		if errors.Is(err, repositories.ErrSettingNotFound) {
			return fallback, nil
		}
		return "", apperrors.InternalError(err)
	}
	return setting.Value, nil
}

func (s *SettingServiceImpl) Set(db *gorm.DB, name, value string) error {
	if err := s.settingRepo.Set(db, name, value); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *SettingServiceImpl) All(db *gorm.DB) ([]*dto.SettingResponse, error) {
	settings, err := s.settingRepo.All(db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	result := make([]*dto.SettingResponse, 0, len(settings))
	for _, setting := range settings {
		result = append(result, &dto.SettingResponse{Name: setting.Name, Value: setting.Value})
	}
	return result, nil
}

// PremiumSettings builds the typed premium schema the subscription lifecycle
// consumes. A malformed price override is an operator problem, not a user
// input problem, so it surfaces as a configuration error.
func (s *SettingServiceImpl) PremiumSettings(db *gorm.DB) (*dto.PremiumSettings, error) {
	result := &dto.PremiumSettings{
		Plans:                make(map[models.PlanName]dto.PlanPricing, len(s.cfg.Premium.Plans)),
		Currency:             s.cfg.Premium.Currency,
		UPIID:                s.cfg.Premium.UPIID,
		PayeeName:            s.cfg.Premium.PayeeName,
		AdminEmail:           s.cfg.Premium.AdminEmail,
		RequireVerifiedEmail: s.cfg.Premium.RequireVerifiedEmail,
	}

	var err error
	if result.Currency, err = s.Get(db, models.SettingPremiumCurrency, result.Currency); err != nil {
		return nil, err
	}
	if result.UPIID, err = s.Get(db, models.SettingUPIID, result.UPIID); err != nil {
		return nil, err
	}
	if result.PayeeName, err = s.Get(db, models.SettingPayeeName, result.PayeeName); err != nil {
		return nil, err
	}
	if result.AdminEmail, err = s.Get(db, models.SettingAdminEmail, result.AdminEmail); err != nil {
		return nil, err
	}

	priceKeys := map[models.PlanName]string{
		models.PlanBasic:    models.SettingPlanBasicPrice,
		models.PlanAdvanced: models.SettingPlanAdvancedPrice,
		models.PlanPro:      models.SettingPlanProPrice,
	}
	for plan, key := range priceKeys {
		price, ok := s.cfg.Premium.Plans[string(plan)]
		raw, err := s.Get(db, key, "")
		if err != nil {
			return nil, err
		}
		if raw != "" {
			price, err = strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, apperrors.ConfigurationError(
					fmt.Sprintf("setting %s holds a non-numeric price: %q", key, raw))
			}
			ok = true
		}
		if ok {
			result.Plans[plan] = dto.PlanPricing{Price: price, Currency: result.Currency}
		}
	}

	return result, nil
}
