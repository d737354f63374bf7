package dto

import "time"

type CreateCommentRequest struct {
	Body string `json:"body" binding:"required" validate:"required,min=1,max=5000"`
}

type CommentResponse struct {
	ID         string    `json:"id"`
	GuideID    string    `json:"guide_id"`
	UserID     string    `json:"user_id"`
	AuthorName string    `json:"author_name"`
	Body       string    `json:"body"`
	CreatedAt  time.Time `json:"created_at"`
}

type CommentListResponse struct {
	Comments []*CommentResponse `json:"comments"`
	Total    int64              `json:"total"`
	Page     int                `json:"page"`
	PageSize int                `json:"page_size"`
}

type RateGuideRequest struct {
	Value int `json:"value" binding:"required" validate:"required,min=1,max=5"`
}
