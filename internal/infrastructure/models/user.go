package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	WalletAddress string    `gorm:"type:varchar(64);uniqueIndex;not null"`
	Username      string    `gorm:"type:varchar(100);not null"`
	Rating        int       `gorm:"not null;default:4"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeletedAt     gorm.DeletedAt `gorm:"index"`
}
