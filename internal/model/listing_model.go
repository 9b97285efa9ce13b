package model

import "time"

type ListingModel struct {
	ID            uint                `gorm:"primaryKey" json:"id"`
	UserID        uint                `gorm:"not null;index" json:"user_id"`
	Title         string              `gorm:"type:varchar(255);not null" json:"title"`
	Description   string              `gorm:"type:text;not null" json:"description"`
	City          string              `gorm:"type:varchar(100);not null;index" json:"city"`
	CategoryID    uint                `gorm:"not null;index" json:"category_id"`
	ContactPerson string              `gorm:"type:varchar(100)" json:"contact_person"`
	Phone         string              `gorm:"type:varchar(30)" json:"phone"`
	Type          string              `gorm:"type:varchar(20);not null;default:'standard'" json:"type"`
	Approved      bool                `gorm:"not null;default:false;index:idx_listings_visibility" json:"approved"`
	Active        bool                `gorm:"not null;default:true;index:idx_listings_visibility" json:"active"`
	Views         int                 `gorm:"not null;default:0" json:"views"`
	ExpiresAt     time.Time           `gorm:"not null" json:"expires_at"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
	Images        []ListingImageModel `gorm:"foreignKey:ListingID" json:"images,omitempty"`
}

func (ListingModel) TableName() string { return "listings" }

type ListingImageModel struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ListingID uint      `gorm:"not null;index" json:"listing_id"`
	URL       string    `gorm:"type:varchar(500);not null" json:"url"`
	Key       string    `gorm:"type:varchar(500);not null" json:"-"`
	Position  int       `gorm:"not null;default:0;index" json:"position"`
	CreatedAt time.Time `json:"created_at"`
}

func (ListingImageModel) TableName() string { return "listing_images" }
