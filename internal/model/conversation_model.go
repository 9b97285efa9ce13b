package model

import "time"

type ConversationModel struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	ListingID  uint      `gorm:"not null;index;uniqueIndex:idx_conversations_listing_sender" json:"listing_id"`
	SenderID   uint      `gorm:"not null;index;uniqueIndex:idx_conversations_listing_sender" json:"sender_id"`
	ReceiverID uint      `gorm:"not null;index" json:"receiver_id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (ConversationModel) TableName() string { return "conversations" }

type MessageModel struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	ConversationID uint      `gorm:"not null;index" json:"conversation_id"`
	SenderID       uint      `gorm:"not null;index" json:"sender_id"`
	Body           string    `gorm:"type:text;not null" json:"body"`
	CreatedAt      time.Time `json:"created_at"`
}

func (MessageModel) TableName() string { return "messages" }
