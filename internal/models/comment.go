package models

type Comment struct {
	BaseModel
	GuideID string `gorm:"type:uuid;not null;index"`
	UserID  string `gorm:"type:uuid;not null;index"`
	Body    string `gorm:"type:text;not null"`

	// Relations
	User *User `gorm:"foreignKey:UserID"`
}

// Rating is one user's 1-5 score for a guide; one row per (guide, user).
type Rating struct {
	BaseModel
	GuideID string `gorm:"type:uuid;not null;uniqueIndex:idx_rating_guide_user"`
	UserID  string `gorm:"type:uuid;not null;uniqueIndex:idx_rating_guide_user"`
	Value   int    `gorm:"not null"`
}
