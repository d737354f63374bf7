package models

// Setting is one named configuration value. The enumerated key set and its
// defaults live in the typed premium settings schema; rows here override the
// config file at runtime.
type Setting struct {
	BaseModel
	Name  string `gorm:"uniqueIndex;not null"`
	Value string `gorm:"type:text"`
}

// Known setting names.
const (
	SettingPlanBasicPrice    = "premium_plan_basic_price"
	SettingPlanAdvancedPrice = "premium_plan_advanced_price"
	SettingPlanProPrice      = "premium_plan_pro_price"
	SettingPremiumCurrency   = "premium_currency"
	SettingUPIID             = "premium_upi_id"
	SettingPayeeName         = "premium_payee_name"
	SettingAdminEmail        = "admin_contact_email"
)
