package dto

import (
	"io"
	"time"

	"guidehub_backend/internal/models"
)

type ConfirmManualPaymentRequest struct {
	SelectedPlan  string `json:"selectedPlan" binding:"required" validate:"required"`
	TransactionID string `json:"transactionId" binding:"required" validate:"required"`
	ReferenceCode string `json:"referenceCode" binding:"required" validate:"required"`
}

// ScreenshotUpload carries an evidence file from the multipart handler into
// the lifecycle service.
type ScreenshotUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Reader      io.Reader
}

type AdminDecisionRequest struct {
	Status     string `json:"status" binding:"required" validate:"required,oneof=active failed cancelled"`
	AdminNotes string `json:"adminNotes" validate:"max=2000"`
}

type SubscriptionResponse struct {
	ID            string                    `json:"id"`
	UserID        string                    `json:"user_id"`
	Plan          models.PlanName           `json:"plan"`
	Status        models.SubscriptionStatus `json:"status"`
	Amount        float64                   `json:"amount"`
	Currency      string                    `json:"currency"`
	ReferenceCode string                    `json:"reference_code,omitempty"`
	TransactionID string                    `json:"transaction_id,omitempty"`
	ScreenshotURL string                    `json:"screenshot_url,omitempty"`
	SubmittedAt   *time.Time                `json:"submitted_at,omitempty"`
	StartDate     *time.Time                `json:"start_date,omitempty"`
	EndDate       *time.Time                `json:"end_date,omitempty"`
	AdminNotes    string                    `json:"admin_notes,omitempty"`
	VerifiedAt    *time.Time                `json:"verified_at,omitempty"`
	CreatedAt     time.Time                 `json:"created_at"`
}

// SubscriptionStatusResponse is the reconciled read: the latest subscription
// (if any) plus the possibly just-corrected premium flag.
type SubscriptionStatusResponse struct {
	Status       string                `json:"status"` // subscription status or "none"
	IsPremium    bool                  `json:"is_premium"`
	Subscription *SubscriptionResponse `json:"subscription,omitempty"`
}

type PlanInfo struct {
	Name     models.PlanName `json:"name"`
	Price    float64         `json:"price"`
	Currency string          `json:"currency"`
}

type PremiumFeaturesResponse struct {
	Plans        []PlanInfo `json:"plans"`
	UPIID        string     `json:"upi_id"`
	PayeeName    string     `json:"payee_name"`
	Instructions string     `json:"instructions"`
}

type SubscriptionCriteria struct {
	Status   string `form:"status"`
	Plan     string `form:"plan"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

type SubscriptionListResponse struct {
	Subscriptions []*SubscriptionResponse `json:"subscriptions"`
	Total         int64                   `json:"total"`
	Page          int                     `json:"page"`
	PageSize      int                     `json:"page_size"`
}

// PlanPricing is one plan's resolved price snapshot source.
type PlanPricing struct {
	Price    float64
	Currency string
}

// PremiumSettings is the typed configuration schema consumed by the
// subscription lifecycle: config-file defaults overridden by settings rows.
type PremiumSettings struct {
	Plans                map[models.PlanName]PlanPricing
	Currency             string
	UPIID                string
	PayeeName            string
	AdminEmail           string
	RequireVerifiedEmail bool
}
