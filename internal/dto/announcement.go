package dto

import "time"

type CreateAnnouncementRequest struct {
	Title string `json:"title" binding:"required" validate:"required,min=3,max=200"`
	Body  string `json:"body" binding:"required" validate:"required"`
}

type UpdateAnnouncementRequest struct {
	Title    *string `json:"title" validate:"omitempty,min=3,max=200"`
	Body     *string `json:"body"`
	IsActive *bool   `json:"is_active"`
}

type AnnouncementResponse struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Body        string     `json:"body"`
	IsActive    bool       `json:"is_active"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}
