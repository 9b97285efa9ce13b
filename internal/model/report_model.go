package model

import "time"

type ReportModel struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	ListingID  uint      `gorm:"not null;index" json:"listing_id"`
	ReporterID uint      `gorm:"not null;index" json:"reporter_id"`
	Reason     string    `gorm:"type:text;not null" json:"reason"`
	Status     string    `gorm:"type:varchar(20);not null;default:'open';index" json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (ReportModel) TableName() string { return "reports" }
