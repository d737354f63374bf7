package models

import "time"

type Guide struct {
	BaseModel
	Title     string `gorm:"not null"`
	Slug      string `gorm:"uniqueIndex;not null"`
	Summary   string
	Body      string `gorm:"type:text"`
	Tags      string `gorm:"index"` // comma-separated
	CoverURL  string
	AuthorID  string `gorm:"type:uuid;not null;index"`
	IsPremium bool   `gorm:"default:false;index"` // body gated behind premium access
	Published bool   `gorm:"default:false;index"`
	ViewCount int64  `gorm:"default:0"`

	PublishedAt *time.Time

	// Relations
	Author   *User     `gorm:"foreignKey:AuthorID"`
	Comments []Comment `gorm:"foreignKey:GuideID"`
	Ratings  []Rating  `gorm:"foreignKey:GuideID"`
}
