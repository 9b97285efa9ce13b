package usecase

import (
	"strings"

	"adboard/internal/entity"
	"adboard/internal/repo/persistent"
	"adboard/pkg/apperrors"
	"adboard/pkg/logger"
	"adboard/pkg/queue"
)

type ConversationUseCase interface {
	// StartConversation opens (or reuses) the buyer's conversation on a
	// listing and posts the first message.
	StartConversation(actor Actor, listingID uint, body string) (*entity.Conversation, *entity.Message, error)
	SendMessage(actor Actor, conversationID uint, body string) (*entity.Message, error)
	ListConversations(actor Actor, limit, offset int) ([]*entity.Conversation, error)
	ListMessages(actor Actor, conversationID uint, limit, offset int) ([]*entity.Message, error)
}

type conversationUseCase struct {
	conversationRepo persistent.ConversationRepository
	listingRepo      persistent.ListingRepository
	queueClient      *queue.Client
	logger           *logger.Logger
}

func NewConversationUseCase(
	conversationRepo persistent.ConversationRepository,
	listingRepo persistent.ListingRepository,
	queueClient *queue.Client,
	logger *logger.Logger,
) ConversationUseCase {
	return &conversationUseCase{
		conversationRepo: conversationRepo,
		listingRepo:      listingRepo,
		queueClient:      queueClient,
		logger:           logger,
	}
}

func (uc *conversationUseCase) StartConversation(actor Actor, listingID uint, body string) (*entity.Conversation, *entity.Message, error) {
	if strings.TrimSpace(body) == "" {
		return nil, nil, apperrors.Validation("message body is required")
	}

	listing, err := uc.listingRepo.GetByID(listingID)
	if err != nil {
		return nil, nil, err
	}
	// Buyers can only message listings they can see in public browse.
	if !listing.Approved || !listing.Active {
		return nil, nil, apperrors.ErrNotFound
	}
	if listing.UserID == actor.UserID {
		return nil, nil, apperrors.Validation("cannot start a conversation on your own listing")
	}

	conversation, _, err := uc.conversationRepo.FindOrCreate(&entity.Conversation{
		ListingID:  listingID,
		SenderID:   actor.UserID,
		ReceiverID: listing.UserID,
	})
	if err != nil {
		return nil, nil, err
	}

	message := &entity.Message{
		ConversationID: conversation.ID,
		SenderID:       actor.UserID,
		Body:           body,
	}
	if err := uc.conversationRepo.CreateMessage(message); err != nil {
		return nil, nil, err
	}

	uc.notify(conversation.ReceiverID, conversation.ID)
	return conversation, message, nil
}

func (uc *conversationUseCase) SendMessage(actor Actor, conversationID uint, body string) (*entity.Message, error) {
	if strings.TrimSpace(body) == "" {
		return nil, apperrors.Validation("message body is required")
	}

	conversation, err := uc.conversationRepo.GetByID(conversationID)
	if err != nil {
		return nil, err
	}
	// Non-participants get the same answer as a missing conversation.
	if !conversation.Participant(actor.UserID) {
		return nil, apperrors.ErrNotFound
	}

	message := &entity.Message{
		ConversationID: conversationID,
		SenderID:       actor.UserID,
		Body:           body,
	}
	if err := uc.conversationRepo.CreateMessage(message); err != nil {
		return nil, err
	}

	recipient := conversation.SenderID
	if actor.UserID == conversation.SenderID {
		recipient = conversation.ReceiverID
	}
	uc.notify(recipient, conversation.ID)

	return message, nil
}

func (uc *conversationUseCase) ListConversations(actor Actor, limit, offset int) ([]*entity.Conversation, error) {
	return uc.conversationRepo.ListByUser(actor.UserID, limit, offset)
}

func (uc *conversationUseCase) ListMessages(actor Actor, conversationID uint, limit, offset int) ([]*entity.Message, error) {
	conversation, err := uc.conversationRepo.GetByID(conversationID)
	if err != nil {
		return nil, err
	}
	if !conversation.Participant(actor.UserID) {
		return nil, apperrors.ErrNotFound
	}
	return uc.conversationRepo.ListMessages(conversationID, limit, offset)
}

func (uc *conversationUseCase) notify(recipientID, conversationID uint) {
	if uc.queueClient == nil {
		return
	}
	task := map[string]interface{}{
		"type":            "new_message",
		"user_id":         recipientID,
		"conversation_id": conversationID,
		"priority":        3,
	}
	go func() {
		if err := uc.queueClient.PublishNotificationTask(task); err != nil {
			uc.logger.Error("Failed to publish message notification for conversation %d: %v", conversationID, err)
		}
	}()
}
