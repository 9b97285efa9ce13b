package entity

import "time"

// Conversation ties exactly one buyer (sender) to one listing owner
// (receiver) over one listing. It exists only as long as the listing does.
type Conversation struct {
	ID         uint      `json:"id"`
	ListingID  uint      `json:"listing_id"`
	SenderID   uint      `json:"sender_id"`
	ReceiverID uint      `json:"receiver_id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type Message struct {
	ID             uint      `json:"id"`
	ConversationID uint      `json:"conversation_id"`
	SenderID       uint      `json:"sender_id"`
	Body           string    `json:"body"`
	CreatedAt      time.Time `json:"created_at"`
}

// Participant reports whether userID is one of the two conversation parties.
func (c *Conversation) Participant(userID uint) bool {
	return c.SenderID == userID || c.ReceiverID == userID
}
