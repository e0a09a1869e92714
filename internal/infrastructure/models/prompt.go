package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Prompt struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	Image         string    `gorm:"type:text;not null"`
	Title         string    `gorm:"type:varchar(255);not null"`
	Content       string    `gorm:"type:text;not null"`
	Category      string    `gorm:"type:varchar(100);not null;default:'Other'"`
	Price         float64   `gorm:"not null"`
	Rating        int       `gorm:"not null;default:3"`
	PromptTokenID int64     `gorm:"uniqueIndex;not null"`
	OwnerID       uuid.UUID `gorm:"type:uuid;index;not null"`
	Owner         *User     `gorm:"foreignKey:OwnerID"`
	TxHash        *string   `gorm:"type:varchar(80)"`
	SoldAt        *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeletedAt     gorm.DeletedAt `gorm:"index"`
}
