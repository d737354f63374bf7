package dto

type UserCriteria struct {
	Role     string `form:"role"`
	Search   string `form:"search"`
	Premium  *bool  `form:"premium"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

type UserListResponse struct {
	Users    []*UserResponse `json:"users"`
	Total    int64           `json:"total"`
	Page     int             `json:"page"`
	PageSize int             `json:"page_size"`
}

type UpdateSettingRequest struct {
	Value string `json:"value" binding:"required" validate:"required"`
}

type SettingResponse struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type PlatformStats struct {
	TotalUsers           int64            `json:"total_users"`
	PremiumUsers         int64            `json:"premium_users"`
	TotalGuides          int64            `json:"total_guides"`
	SubscriptionsByState map[string]int64 `json:"subscriptions_by_status"`
	SubscriptionsByPlan  map[string]int64 `json:"subscriptions_by_plan"`
}
