package model

import (
	"time"

	"gorm.io/gorm"
)

type UserModel struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	Email         string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Username      string         `gorm:"type:varchar(100);uniqueIndex;not null" json:"username"`
	Password      string         `gorm:"type:varchar(255);not null" json:"-"`
	IsAdmin       bool           `gorm:"not null;default:false" json:"is_admin"`
	HasUsedFreeAd bool           `gorm:"not null;default:false" json:"has_used_free_ad"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

func (UserModel) TableName() string { return "users" }
