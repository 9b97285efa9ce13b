package entity

import "time"

type User struct {
	ID            uint      `json:"id"`
	Email         string    `json:"email"`
	Username      string    `json:"username"`
	Password      string    `json:"-"`
	IsAdmin       bool      `json:"is_admin"`
	HasUsedFreeAd bool      `json:"has_used_free_ad"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// CanCreateStandardListing gates the one-free-listing quota. The flag is
// never reset once spent.
func (u *User) CanCreateStandardListing() bool {
	return !u.HasUsedFreeAd
}
