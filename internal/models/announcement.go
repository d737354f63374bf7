package models

import "time"

type Announcement struct {
	BaseModel
	Title       string `gorm:"not null"`
	Body        string `gorm:"type:text"`
	IsActive    bool   `gorm:"default:true;index"`
	CreatedBy   string `gorm:"type:uuid"`
	PublishedAt *time.Time
}
