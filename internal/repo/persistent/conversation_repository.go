package persistent

import (
	"errors"

	"adboard/internal/entity"
	"adboard/internal/model"
	"adboard/pkg/apperrors"

	"gorm.io/gorm"
)

type ConversationRepository interface {
	// FindOrCreate returns the existing conversation for the
	// (listing, sender) pair or creates one. The second result reports
	// whether a new conversation was created.
	FindOrCreate(conversation *entity.Conversation) (*entity.Conversation, bool, error)
	GetByID(id uint) (*entity.Conversation, error)
	ListByUser(userID uint, limit, offset int) ([]*entity.Conversation, error)
	ListByListingID(listingID uint) ([]*entity.Conversation, error)
	CreateMessage(message *entity.Message) error
	ListMessages(conversationID uint, limit, offset int) ([]*entity.Message, error)
}

type conversationRepository struct {
	db *gorm.DB
}

func NewConversationRepository(db *gorm.DB) ConversationRepository {
	return &conversationRepository{db: db}
}

func (r *conversationRepository) FindOrCreate(conversation *entity.Conversation) (*entity.Conversation, bool, error) {
	var existing model.ConversationModel
	err := r.db.Where("listing_id = ? AND sender_id = ?", conversation.ListingID, conversation.SenderID).
		First(&existing).Error
	if err == nil {
		return ToConversationEntity(&existing), false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	conversationModel := ToConversationModel(conversation)
	if err := r.db.Create(conversationModel).Error; err != nil {
		return nil, false, err
	}
	return ToConversationEntity(conversationModel), true, nil
}

func (r *conversationRepository) GetByID(id uint) (*entity.Conversation, error) {
	var conversationModel model.ConversationModel
	if err := r.db.Where("id = ?", id).First(&conversationModel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return ToConversationEntity(&conversationModel), nil
}

func (r *conversationRepository) ListByUser(userID uint, limit, offset int) ([]*entity.Conversation, error) {
	var conversationModels []model.ConversationModel
	query := r.db.Where("sender_id = ? OR receiver_id = ?", userID, userID).
		Order("updated_at DESC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}
	if err := query.Find(&conversationModels).Error; err != nil {
		return nil, err
	}

	conversations := make([]*entity.Conversation, len(conversationModels))
	for i := range conversationModels {
		conversations[i] = ToConversationEntity(&conversationModels[i])
	}
	return conversations, nil
}

func (r *conversationRepository) ListByListingID(listingID uint) ([]*entity.Conversation, error) {
	var conversationModels []model.ConversationModel
	if err := r.db.Where("listing_id = ?", listingID).Find(&conversationModels).Error; err != nil {
		return nil, err
	}

	conversations := make([]*entity.Conversation, len(conversationModels))
	for i := range conversationModels {
		conversations[i] = ToConversationEntity(&conversationModels[i])
	}
	return conversations, nil
}

func (r *conversationRepository) CreateMessage(message *entity.Message) error {
	messageModel := ToMessageModel(message)
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(messageModel).Error; err != nil {
			return err
		}
		// Bump the conversation so it sorts to the top of the inbox.
		if err := tx.Model(&model.ConversationModel{}).
			Where("id = ?", messageModel.ConversationID).
			Update("updated_at", messageModel.CreatedAt).Error; err != nil {
			return err
		}
		*message = *ToMessageEntity(messageModel)
		return nil
	})
}

func (r *conversationRepository) ListMessages(conversationID uint, limit, offset int) ([]*entity.Message, error) {
	var messageModels []model.MessageModel
	query := r.db.Where("conversation_id = ?", conversationID).Order("created_at ASC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}
	if err := query.Find(&messageModels).Error; err != nil {
		return nil, err
	}

	messages := make([]*entity.Message, len(messageModels))
	for i := range messageModels {
		messages[i] = ToMessageEntity(&messageModels[i])
	}
	return messages, nil
}
