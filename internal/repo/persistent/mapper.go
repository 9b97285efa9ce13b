package persistent

import (
	"adboard/internal/entity"
	"adboard/internal/model"
)

func ToListingModel(l *entity.Listing) *model.ListingModel {
	images := make([]model.ListingImageModel, len(l.Images))
	for i := range l.Images {
		images[i] = *ToListingImageModel(&l.Images[i])
	}
	return &model.ListingModel{
		ID:            l.ID,
		UserID:        l.UserID,
		Title:         l.Title,
		Description:   l.Description,
		City:          l.City,
		CategoryID:    l.CategoryID,
		ContactPerson: l.ContactPerson,
		Phone:         l.Phone,
		Type:          string(l.Type),
		Approved:      l.Approved,
		Active:        l.Active,
		Views:         l.Views,
		ExpiresAt:     l.ExpiresAt,
		CreatedAt:     l.CreatedAt,
		UpdatedAt:     l.UpdatedAt,
		Images:        images,
	}
}

func ToListingEntity(m *model.ListingModel) *entity.Listing {
	images := make([]entity.ListingImage, len(m.Images))
	for i := range m.Images {
		images[i] = *ToListingImageEntity(&m.Images[i])
	}
	return &entity.Listing{
		ID:            m.ID,
		UserID:        m.UserID,
		Title:         m.Title,
		Description:   m.Description,
		City:          m.City,
		CategoryID:    m.CategoryID,
		ContactPerson: m.ContactPerson,
		Phone:         m.Phone,
		Type:          entity.ListingType(m.Type),
		Approved:      m.Approved,
		Active:        m.Active,
		Views:         m.Views,
		ExpiresAt:     m.ExpiresAt,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
		Images:        images,
	}
}

func ToListingImageModel(img *entity.ListingImage) *model.ListingImageModel {
	return &model.ListingImageModel{
		ID:        img.ID,
		ListingID: img.ListingID,
		URL:       img.URL,
		Key:       img.Key,
		Position:  img.Position,
		CreatedAt: img.CreatedAt,
	}
}

func ToListingImageEntity(m *model.ListingImageModel) *entity.ListingImage {
	return &entity.ListingImage{
		ID:        m.ID,
		ListingID: m.ListingID,
		URL:       m.URL,
		Key:       m.Key,
		Position:  m.Position,
		CreatedAt: m.CreatedAt,
	}
}

func ToUserModel(u *entity.User) *model.UserModel {
	return &model.UserModel{
		ID:            u.ID,
		Email:         u.Email,
		Username:      u.Username,
		Password:      u.Password,
		IsAdmin:       u.IsAdmin,
		HasUsedFreeAd: u.HasUsedFreeAd,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
}

func ToUserEntity(m *model.UserModel) *entity.User {
	return &entity.User{
		ID:            m.ID,
		Email:         m.Email,
		Username:      m.Username,
		Password:      m.Password,
		IsAdmin:       m.IsAdmin,
		HasUsedFreeAd: m.HasUsedFreeAd,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func ToConversationModel(c *entity.Conversation) *model.ConversationModel {
	return &model.ConversationModel{
		ID:         c.ID,
		ListingID:  c.ListingID,
		SenderID:   c.SenderID,
		ReceiverID: c.ReceiverID,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
}

func ToConversationEntity(m *model.ConversationModel) *entity.Conversation {
	return &entity.Conversation{
		ID:         m.ID,
		ListingID:  m.ListingID,
		SenderID:   m.SenderID,
		ReceiverID: m.ReceiverID,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

func ToMessageModel(msg *entity.Message) *model.MessageModel {
	return &model.MessageModel{
		ID:             msg.ID,
		ConversationID: msg.ConversationID,
		SenderID:       msg.SenderID,
		Body:           msg.Body,
		CreatedAt:      msg.CreatedAt,
	}
}

func ToMessageEntity(m *model.MessageModel) *entity.Message {
	return &entity.Message{
		ID:             m.ID,
		ConversationID: m.ConversationID,
		SenderID:       m.SenderID,
		Body:           m.Body,
		CreatedAt:      m.CreatedAt,
	}
}

func ToCategoryModel(c *entity.Category) *model.CategoryModel {
	return &model.CategoryModel{
		ID:        c.ID,
		Name:      c.Name,
		Slug:      c.Slug,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func ToCategoryEntity(m *model.CategoryModel) *entity.Category {
	return &entity.Category{
		ID:        m.ID,
		Name:      m.Name,
		Slug:      m.Slug,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func ToReportModel(r *entity.Report) *model.ReportModel {
	return &model.ReportModel{
		ID:         r.ID,
		ListingID:  r.ListingID,
		ReporterID: r.ReporterID,
		Reason:     r.Reason,
		Status:     string(r.Status),
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}

func ToReportEntity(m *model.ReportModel) *entity.Report {
	return &entity.Report{
		ID:         m.ID,
		ListingID:  m.ListingID,
		ReporterID: m.ReporterID,
		Reason:     m.Reason,
		Status:     entity.ReportStatus(m.Status),
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}
