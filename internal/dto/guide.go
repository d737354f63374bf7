package dto

import "time"

type CreateGuideRequest struct {
	Title     string `json:"title" binding:"required" validate:"required,min=3,max=200"`
	Summary   string `json:"summary" validate:"max=500"`
	Body      string `json:"body" binding:"required" validate:"required"`
	Tags      string `json:"tags"`
	CoverURL  string `json:"cover_url" validate:"omitempty,url"`
	IsPremium bool   `json:"is_premium"`
	Published bool   `json:"published"`
}

type UpdateGuideRequest struct {
	Title     *string `json:"title" validate:"omitempty,min=3,max=200"`
	Summary   *string `json:"summary" validate:"omitempty,max=500"`
	Body      *string `json:"body"`
	Tags      *string `json:"tags"`
	CoverURL  *string `json:"cover_url" validate:"omitempty,url"`
	IsPremium *bool   `json:"is_premium"`
	Published *bool   `json:"published"`
}

type GuideResponse struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Summary     string     `json:"summary"`
	Body        string     `json:"body,omitempty"` // omitted for locked premium guides
	Tags        string     `json:"tags"`
	CoverURL    string     `json:"cover_url,omitempty"`
	IsPremium   bool       `json:"is_premium"`
	Locked      bool       `json:"locked"` // true when the caller lacks premium access
	Published   bool       `json:"published"`
	ViewCount   int64      `json:"view_count"`
	AvgRating   float64    `json:"avg_rating"`
	RatingCount int64      `json:"rating_count"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

type GuideCriteria struct {
	Tag         string `form:"tag"`
	PremiumOnly *bool  `form:"premium"`
	Page        int    `form:"page"`
	PageSize    int    `form:"page_size"`
}

type GuideListResponse struct {
	Guides   []*GuideResponse `json:"guides"`
	Total    int64            `json:"total"`
	Page     int              `json:"page"`
	PageSize int              `json:"page_size"`
}
