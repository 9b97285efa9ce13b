package model

import "time"

type FavoriteModel struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_favorites_user_listing" json:"user_id"`
	ListingID uint      `gorm:"not null;uniqueIndex:idx_favorites_user_listing;index" json:"listing_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (FavoriteModel) TableName() string { return "favorites" }
