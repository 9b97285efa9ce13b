package entity

import "time"

type ListingType string

const (
	TypeStandard ListingType = "standard"
	TypePremium  ListingType = "premium"
)

// ListingStatus is the four-way projection of the stored approved/active
// flag pair. It is never stored; Listing.Status derives it.
type ListingStatus string

const (
	StatusPending  ListingStatus = "pending"  // approved=false, active=true
	StatusActive   ListingStatus = "active"   // approved=true,  active=true
	StatusRejected ListingStatus = "rejected" // approved=false, active=false
	StatusInactive ListingStatus = "inactive" // approved=true,  active=false
)

type Listing struct {
	ID            uint           `json:"id"`
	UserID        uint           `json:"user_id"`
	Title         string         `json:"title"`
	Description   string         `json:"description"`
	City          string         `json:"city"`
	CategoryID    uint           `json:"category_id"`
	ContactPerson string         `json:"contact_person"`
	Phone         string         `json:"phone"`
	Type          ListingType    `json:"type"`
	Approved      bool           `json:"approved"`
	Active        bool           `json:"active"`
	Views         int            `json:"views"`
	Images        []ListingImage `json:"images,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	ExpiresAt     time.Time      `json:"expires_at"`
}

type ListingImage struct {
	ID        uint      `json:"id"`
	ListingID uint      `json:"listing_id"`
	URL       string    `json:"url"`
	Key       string    `json:"-"`
	Position  int       `json:"position"`
	CreatedAt time.Time `json:"created_at"`
}

// Status derives the listing status from the flag pair.
func (l *Listing) Status() ListingStatus {
	return DeriveStatus(l.Approved, l.Active)
}

func DeriveStatus(approved, active bool) ListingStatus {
	switch {
	case !approved && active:
		return StatusPending
	case approved && active:
		return StatusActive
	case !approved && !active:
		return StatusRejected
	default:
		return StatusInactive
	}
}

// Flags returns the flag pair encoding a status. Inverse of DeriveStatus.
func (s ListingStatus) Flags() (approved, active bool) {
	switch s {
	case StatusPending:
		return false, true
	case StatusActive:
		return true, true
	case StatusInactive:
		return true, false
	default:
		return false, false
	}
}

// Expired reports whether the validity window has passed. Expiry is applied
// lazily on reads; there is no background sweep.
func (l *Listing) Expired(now time.Time) bool {
	return now.After(l.ExpiresAt)
}

// VisibleTo reports whether the actor may read this listing: the owner and
// administrators always, everyone else only when approved and active.
func (l *Listing) VisibleTo(userID uint, isAdmin bool) bool {
	if isAdmin || l.UserID == userID {
		return true
	}
	return l.Approved && l.Active
}
