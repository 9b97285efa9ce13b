package persistent

import (
	"errors"

	"adboard/internal/entity"
	"adboard/internal/model"
	"adboard/pkg/apperrors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// StatusTransition is one edge of the moderation state machine, expressed as
// a single conditional UPDATE: the guard names the flag pair the listing must
// currently hold. Zero rows affected on an existing listing means the guard
// failed, which callers surface as an invalid-transition error. Two
// concurrent administrators applying the same transition therefore cannot
// double-apply it.
type StatusTransition struct {
	Name          string
	GuardApproved *bool // nil matches either value
	GuardActive   bool
	SetApproved   bool
	SetActive     bool
}

func boolPtr(b bool) *bool { return &b }

var (
	// approve: pending -> active
	TransitionApprove = StatusTransition{Name: "approve", GuardApproved: boolPtr(false), GuardActive: true, SetApproved: true, SetActive: true}
	// reject: pending or active -> rejected
	TransitionReject = StatusTransition{Name: "reject", GuardActive: true, SetApproved: false, SetActive: false}
	// activate: inactive -> active
	TransitionActivate = StatusTransition{Name: "activate", GuardApproved: boolPtr(true), GuardActive: false, SetApproved: true, SetActive: true}
	// deactivate: active -> inactive
	TransitionDeactivate = StatusTransition{Name: "deactivate", GuardApproved: boolPtr(true), GuardActive: true, SetApproved: true, SetActive: false}
	// resubmit: rejected or inactive -> pending (used by owner edits)
	TransitionResubmit = StatusTransition{Name: "resubmit", GuardActive: false, SetApproved: false, SetActive: true}
)

// ListingFilter narrows public browse queries.
type ListingFilter struct {
	CategoryID uint
	City       string
	Query      string
	Limit      int
	Offset     int
}

// CascadeResult summarizes what a cascade delete removed. Image keys are
// returned for best-effort object-storage cleanup outside the transaction.
type CascadeResult struct {
	Conversations int64
	Messages      int64
	ImageKeys     []string
}

type ListingRepository interface {
	// Create persists the listing and its images in one transaction.
	// When chargeFreeQuota is set, the owner's free-ad flag is flipped as
	// the final step of the same transaction; if the flag was already
	// spent the transaction rolls back with apperrors.ErrQuotaExceeded.
	Create(listing *entity.Listing, chargeFreeQuota bool) error
	GetByID(id uint) (*entity.Listing, error)
	GetByUserID(userID uint, limit, offset int) ([]*entity.Listing, error)
	ListVisible(filter ListingFilter) ([]*entity.Listing, int64, error)
	ListPending(limit, offset int) ([]*entity.Listing, error)
	ApplyTransition(id uint, t StatusTransition) error
	// EditAndResubmit applies the field changes and forces the listing
	// back to pending, guarded on the resubmit transition.
	EditAndResubmit(listing *entity.Listing) error
	IncrementViews(id uint) error
	DeleteCascade(id uint) (*CascadeResult, error)
	ToggleFavorite(userID, listingID uint) (bool, error)
	GetFavorites(userID uint, limit, offset int) ([]*entity.Listing, error)
}

type listingRepository struct {
	db *gorm.DB
}

func NewListingRepository(db *gorm.DB) ListingRepository {
	return &listingRepository{db: db}
}

func (r *listingRepository) Create(listing *entity.Listing, chargeFreeQuota bool) error {
	listingModel := ToListingModel(listing)

	return r.db.Transaction(func(tx *gorm.DB) error {
		images := listingModel.Images
		listingModel.Images = nil

		if err := tx.Create(listingModel).Error; err != nil {
			return err
		}

		for i := range images {
			images[i].ListingID = listingModel.ID
			if err := tx.Create(&images[i]).Error; err != nil {
				return err
			}
		}
		listingModel.Images = images

		// The quota flag flips last, so a failed listing insert can never
		// leave the flag spent without a listing row.
		if chargeFreeQuota {
			res := tx.Model(&model.UserModel{}).
				Where("id = ? AND has_used_free_ad = ?", listingModel.UserID, false).
				Update("has_used_free_ad", true)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return apperrors.ErrQuotaExceeded
			}
		}

		*listing = *ToListingEntity(listingModel)
		return nil
	})
}

func (r *listingRepository) GetByID(id uint) (*entity.Listing, error) {
	var listingModel model.ListingModel
	err := r.db.Preload("Images", func(db *gorm.DB) *gorm.DB {
		return db.Order("listing_images.position ASC")
	}).Where("id = ?", id).First(&listingModel).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return ToListingEntity(&listingModel), nil
}

func (r *listingRepository) GetByUserID(userID uint, limit, offset int) ([]*entity.Listing, error) {
	var listingModels []model.ListingModel
	query := r.db.Preload("Images", func(db *gorm.DB) *gorm.DB {
		return db.Order("listing_images.position ASC")
	}).Where("user_id = ?", userID).Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}
	if err := query.Find(&listingModels).Error; err != nil {
		return nil, err
	}
	return toListingEntities(listingModels), nil
}

func (r *listingRepository) ListVisible(filter ListingFilter) ([]*entity.Listing, int64, error) {
	query := r.db.Model(&model.ListingModel{}).
		Where("approved = ? AND active = ?", true, true)

	if filter.CategoryID != 0 {
		query = query.Where("category_id = ?", filter.CategoryID)
	}
	if filter.City != "" {
		query = query.Where("city = ?", filter.City)
	}
	if filter.Query != "" {
		like := "%" + filter.Query + "%"
		query = query.Where("title ILIKE ? OR description ILIKE ?", like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var listingModels []model.ListingModel
	query = query.Preload("Images", func(db *gorm.DB) *gorm.DB {
		return db.Order("listing_images.position ASC")
	}).Order("created_at DESC")
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit).Offset(filter.Offset)
	}
	if err := query.Find(&listingModels).Error; err != nil {
		return nil, 0, err
	}
	return toListingEntities(listingModels), total, nil
}

func (r *listingRepository) ListPending(limit, offset int) ([]*entity.Listing, error) {
	var listingModels []model.ListingModel
	query := r.db.Preload("Images", func(db *gorm.DB) *gorm.DB {
		return db.Order("listing_images.position ASC")
	}).Where("approved = ? AND active = ?", false, true).Order("created_at ASC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}
	if err := query.Find(&listingModels).Error; err != nil {
		return nil, err
	}
	return toListingEntities(listingModels), nil
}

func (r *listingRepository) ApplyTransition(id uint, t StatusTransition) error {
	query := r.db.Model(&model.ListingModel{}).
		Where("id = ? AND active = ?", id, t.GuardActive)
	if t.GuardApproved != nil {
		query = query.Where("approved = ?", *t.GuardApproved)
	}

	res := query.Updates(map[string]interface{}{
		"approved": t.SetApproved,
		"active":   t.SetActive,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrInvalidTransition
	}
	return nil
}

func (r *listingRepository) EditAndResubmit(listing *entity.Listing) error {
	t := TransitionResubmit
	res := r.db.Model(&model.ListingModel{}).
		Where("id = ? AND active = ?", listing.ID, t.GuardActive).
		Updates(map[string]interface{}{
			"title":          listing.Title,
			"description":    listing.Description,
			"city":           listing.City,
			"category_id":    listing.CategoryID,
			"contact_person": listing.ContactPerson,
			"phone":          listing.Phone,
			"approved":       t.SetApproved,
			"active":         t.SetActive,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrInvalidTransition
	}
	return nil
}

func (r *listingRepository) IncrementViews(id uint) error {
	return r.db.Model(&model.ListingModel{}).Where("id = ?", id).
		UpdateColumn("views", clause.Expr{SQL: "views + ?", Vars: []interface{}{1}}).Error
}

// DeleteCascade removes the listing and everything that exists only because
// of it: messages, conversations, image rows and the listing row, all in one
// transaction. Stored objects are NOT deleted here; their keys come back in
// the result for best-effort cleanup by the caller.
func (r *listingRepository) DeleteCascade(id uint) (*CascadeResult, error) {
	result := &CascadeResult{}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var listingModel model.ListingModel
		if err := tx.Where("id = ?", id).First(&listingModel).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrNotFound
			}
			return err
		}

		var conversationIDs []uint
		if err := tx.Model(&model.ConversationModel{}).
			Where("listing_id = ?", id).
			Pluck("id", &conversationIDs).Error; err != nil {
			return err
		}

		if len(conversationIDs) > 0 {
			res := tx.Where("conversation_id IN ?", conversationIDs).
				Delete(&model.MessageModel{})
			if res.Error != nil {
				return res.Error
			}
			result.Messages = res.RowsAffected
		}

		res := tx.Where("listing_id = ?", id).Delete(&model.ConversationModel{})
		if res.Error != nil {
			return res.Error
		}
		result.Conversations = res.RowsAffected

		if err := tx.Model(&model.ListingImageModel{}).
			Where("listing_id = ?", id).
			Pluck("key", &result.ImageKeys).Error; err != nil {
			return err
		}
		if err := tx.Where("listing_id = ?", id).
			Delete(&model.ListingImageModel{}).Error; err != nil {
			return err
		}

		if err := tx.Where("listing_id = ?", id).Delete(&model.FavoriteModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("listing_id = ?", id).Delete(&model.ReportModel{}).Error; err != nil {
			return err
		}

		return tx.Where("id = ?", id).Delete(&model.ListingModel{}).Error
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (r *listingRepository) ToggleFavorite(userID, listingID uint) (bool, error) {
	var existing model.FavoriteModel
	err := r.db.Where("user_id = ? AND listing_id = ?", userID, listingID).First(&existing).Error
	if err == nil {
		if err := r.db.Delete(&existing).Error; err != nil {
			return false, err
		}
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	favorite := &model.FavoriteModel{UserID: userID, ListingID: listingID}
	if err := r.db.Create(favorite).Error; err != nil {
		return false, err
	}
	return true, nil
}

func (r *listingRepository) GetFavorites(userID uint, limit, offset int) ([]*entity.Listing, error) {
	var listingModels []model.ListingModel
	query := r.db.Model(&model.ListingModel{}).
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("listing_images.position ASC")
		}).
		Joins("INNER JOIN favorites ON listings.id = favorites.listing_id").
		Where("favorites.user_id = ?", userID).
		Order("favorites.created_at DESC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}
	if err := query.Find(&listingModels).Error; err != nil {
		return nil, err
	}
	return toListingEntities(listingModels), nil
}

func toListingEntities(models []model.ListingModel) []*entity.Listing {
	listings := make([]*entity.Listing, len(models))
	for i := range models {
		listings[i] = ToListingEntity(&models[i])
	}
	return listings
}
