package models

type UserRole string
type UserStatus string
type SubscriptionStatus string
type PlanName string

const (
	UserRoleUser  UserRole = "user"
	UserRoleAdmin UserRole = "admin"

	UserStatusActive    UserStatus = "active"
	UserStatusSuspended UserStatus = "suspended"

	SubscriptionStatusInitiated SubscriptionStatus = "initiated"
	SubscriptionStatusPending   SubscriptionStatus = "pending_manual_verification"
	SubscriptionStatusActive    SubscriptionStatus = "active"
	SubscriptionStatusCancelled SubscriptionStatus = "cancelled"
	SubscriptionStatusExpired   SubscriptionStatus = "expired"
	SubscriptionStatusFailed    SubscriptionStatus = "failed"

	PlanBasic        PlanName = "basic"
	PlanAdvanced     PlanName = "advanced"
	PlanPro          PlanName = "pro"
	PlanAdminGranted PlanName = "admin_granted"
)

// PurchasablePlans are the plans a subscriber can select; admin_granted is
// only ever set through the admin decision path.
var PurchasablePlans = []PlanName{PlanBasic, PlanAdvanced, PlanPro}

func IsPurchasablePlan(p PlanName) bool {
	for _, plan := range PurchasablePlans {
		if plan == p {
			return true
		}
	}
	return false
}
