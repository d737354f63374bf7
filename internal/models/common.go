package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BaseModel struct {
	ID        string    `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// BeforeCreate assigns an application-side UUID so the same models work on
// both postgres and the sqlite test database.
func (m *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}
