package usecase

import (
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"adboard/internal/entity"
	"adboard/internal/repo/persistent"
	"adboard/pkg/apperrors"
	"adboard/pkg/logger"

	"github.com/google/uuid"
)

const (
	maxImagesPerListing = 10
	maxImageSizeBytes   = 5 << 20 // 5 MiB
)

var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

type ListingInput struct {
	Title         string
	Description   string
	City          string
	CategoryID    uint
	ContactPerson string
	Phone         string
	Type          entity.ListingType
}

// CascadeSummary reports what a listing deletion removed. Image failures are
// counted, never surfaced as an error: orphaned storage is a lesser defect
// than orphaned user-facing data.
type CascadeSummary struct {
	ConversationsDeleted int64 `json:"conversations_deleted"`
	MessagesDeleted      int64 `json:"messages_deleted"`
	ImagesDeleted        int   `json:"images_deleted"`
	ImageFailures        int   `json:"image_failures"`
}

type ListingUseCase interface {
	CreateListing(actor Actor, input ListingInput, imageFiles []*multipart.FileHeader) (*entity.Listing, error)
	GetListing(actor Actor, listingID uint) (*entity.Listing, error)
	BrowseListings(filter persistent.ListingFilter) ([]*entity.Listing, int64, error)
	MyListings(actor Actor, limit, offset int) ([]*entity.Listing, error)
	EditAndResubmit(actor Actor, listingID uint, input ListingInput) (*entity.Listing, error)
	DeleteListing(actor Actor, listingID uint) (*CascadeSummary, error)
	ToggleFavorite(actor Actor, listingID uint) (bool, error)
	GetFavorites(actor Actor, limit, offset int) ([]*entity.Listing, error)
}

// ImageStorage is the slice of the object store the listing lifecycle
// needs. Satisfied by *s3.Client.
type ImageStorage interface {
	UploadFile(key string, file io.Reader, contentType string) (string, error)
	DeleteFile(key string) error
}

type listingUseCase struct {
	listingRepo  persistent.ListingRepository
	userRepo     persistent.UserRepository
	categoryRepo persistent.CategoryRepository
	imageStore   ImageStorage
	listingTTL   time.Duration
	logger       *logger.Logger
}

func NewListingUseCase(
	listingRepo persistent.ListingRepository,
	userRepo persistent.UserRepository,
	categoryRepo persistent.CategoryRepository,
	imageStore ImageStorage,
	listingTTL time.Duration,
	logger *logger.Logger,
) ListingUseCase {
	return &listingUseCase{
		listingRepo:  listingRepo,
		userRepo:     userRepo,
		categoryRepo: categoryRepo,
		imageStore:   imageStore,
		listingTTL:   listingTTL,
		logger:       logger,
	}
}

func (uc *listingUseCase) CreateListing(actor Actor, input ListingInput, imageFiles []*multipart.FileHeader) (*entity.Listing, error) {
	if err := validateListingInput(input); err != nil {
		return nil, err
	}
	if err := validateImageFiles(imageFiles); err != nil {
		return nil, err
	}

	if _, err := uc.categoryRepo.GetByID(input.CategoryID); err != nil {
		return nil, apperrors.Validation("category does not exist")
	}

	chargeFreeQuota := input.Type == entity.TypeStandard
	if chargeFreeQuota {
		// Fast-path check before uploading anything. The authoritative
		// check is the conditional flag update inside the create
		// transaction.
		user, err := uc.userRepo.GetByID(actor.UserID)
		if err != nil {
			return nil, err
		}
		if !user.CanCreateStandardListing() {
			return nil, apperrors.ErrQuotaExceeded
		}
	}

	images, uploadedKeys, err := uc.uploadImages(actor.UserID, imageFiles)
	if err != nil {
		// A mid-batch failure leaves the earlier objects orphaned.
		uc.cleanupImages(uploadedKeys)
		return nil, err
	}

	now := time.Now()
	listing := &entity.Listing{
		UserID:        actor.UserID,
		Title:         input.Title,
		Description:   input.Description,
		City:          input.City,
		CategoryID:    input.CategoryID,
		ContactPerson: input.ContactPerson,
		Phone:         input.Phone,
		Type:          input.Type,
		Approved:      false,
		Active:        true,
		Views:         0,
		ExpiresAt:     now.Add(uc.listingTTL),
		Images:        images,
	}

	if err := uc.listingRepo.Create(listing, chargeFreeQuota); err != nil {
		// The row never landed, so the uploaded objects are orphans.
		uc.cleanupImages(uploadedKeys)
		return nil, err
	}

	return listing, nil
}

// GetListing enforces the visibility rule and counts the view. Expiry is
// applied lazily here: an approved+active listing past its window is
// deactivated before it is returned.
func (uc *listingUseCase) GetListing(actor Actor, listingID uint) (*entity.Listing, error) {
	listing, err := uc.listingRepo.GetByID(listingID)
	if err != nil {
		return nil, err
	}

	if listing.Approved && listing.Active && listing.Expired(time.Now()) {
		if err := uc.listingRepo.ApplyTransition(listing.ID, persistent.TransitionDeactivate); err != nil {
			// A concurrent reader may have expired it already.
			uc.logger.Warn("Lazy expiry of listing %d skipped: %v", listing.ID, err)
		}
		listing.Active = false
	}

	// "Not visible" and "does not exist" are deliberately the same answer.
	if !listing.VisibleTo(actor.UserID, actor.IsAdmin) {
		return nil, apperrors.ErrNotFound
	}

	// Only owner reads and public approved+active reads count as views.
	// An administrator inspecting someone else's hidden listing does not.
	if actor.UserID == listing.UserID || (listing.Approved && listing.Active) {
		if err := uc.listingRepo.IncrementViews(listing.ID); err != nil {
			uc.logger.Warn("Failed to increment views for listing %d: %v", listing.ID, err)
		} else {
			listing.Views++
		}
	}

	return listing, nil
}

func (uc *listingUseCase) BrowseListings(filter persistent.ListingFilter) ([]*entity.Listing, int64, error) {
	return uc.listingRepo.ListVisible(filter)
}

func (uc *listingUseCase) MyListings(actor Actor, limit, offset int) ([]*entity.Listing, error) {
	return uc.listingRepo.GetByUserID(actor.UserID, limit, offset)
}

// EditAndResubmit applies owner edits to a rejected or inactive listing and
// forces it back to pending. Pending and active listings cannot be edited
// through this path.
func (uc *listingUseCase) EditAndResubmit(actor Actor, listingID uint, input ListingInput) (*entity.Listing, error) {
	listing, err := uc.listingRepo.GetByID(listingID)
	if err != nil {
		return nil, err
	}
	if !actor.CanManage(listing.UserID) {
		return nil, apperrors.ErrUnauthorized
	}

	// The listing type is immutable; edits only touch content fields.
	input.Type = listing.Type
	if err := validateListingInput(input); err != nil {
		return nil, err
	}
	if _, err := uc.categoryRepo.GetByID(input.CategoryID); err != nil {
		return nil, apperrors.Validation("category does not exist")
	}

	listing.Title = input.Title
	listing.Description = input.Description
	listing.City = input.City
	listing.CategoryID = input.CategoryID
	listing.ContactPerson = input.ContactPerson
	listing.Phone = input.Phone

	if err := uc.listingRepo.EditAndResubmit(listing); err != nil {
		return nil, err
	}

	listing.Approved = false
	listing.Active = true
	return listing, nil
}

func (uc *listingUseCase) DeleteListing(actor Actor, listingID uint) (*CascadeSummary, error) {
	listing, err := uc.listingRepo.GetByID(listingID)
	if err != nil {
		return nil, err
	}
	if !actor.CanManage(listing.UserID) {
		return nil, apperrors.ErrUnauthorized
	}

	result, err := uc.listingRepo.DeleteCascade(listingID)
	if err != nil {
		return nil, err
	}

	summary := &CascadeSummary{
		ConversationsDeleted: result.Conversations,
		MessagesDeleted:      result.Messages,
	}

	// Object deletion is best-effort and never rolls back the delete.
	for _, key := range result.ImageKeys {
		if err := uc.imageStore.DeleteFile(key); err != nil {
			uc.logger.Warn("Failed to delete stored image %s for listing %d: %v", key, listingID, err)
			summary.ImageFailures++
			continue
		}
		summary.ImagesDeleted++
	}

	return summary, nil
}

func (uc *listingUseCase) ToggleFavorite(actor Actor, listingID uint) (bool, error) {
	listing, err := uc.listingRepo.GetByID(listingID)
	if err != nil {
		return false, err
	}
	if !listing.VisibleTo(actor.UserID, actor.IsAdmin) {
		return false, apperrors.ErrNotFound
	}
	return uc.listingRepo.ToggleFavorite(actor.UserID, listingID)
}

func (uc *listingUseCase) GetFavorites(actor Actor, limit, offset int) ([]*entity.Listing, error) {
	return uc.listingRepo.GetFavorites(actor.UserID, limit, offset)
}

// cleanupImages best-effort deletes stored objects whose listing row never
// landed (or never will). Failures are logged, not returned.
func (uc *listingUseCase) cleanupImages(keys []string) {
	for _, key := range keys {
		if err := uc.imageStore.DeleteFile(key); err != nil {
			uc.logger.Warn("Failed to clean up orphaned image %s: %v", key, err)
		}
	}
}

func (uc *listingUseCase) uploadImages(userID uint, imageFiles []*multipart.FileHeader) ([]entity.ListingImage, []string, error) {
	var images []entity.ListingImage
	var uploadedKeys []string

	for i, file := range imageFiles {
		src, err := file.Open()
		if err != nil {
			return nil, uploadedKeys, apperrors.Validation("failed to open uploaded file")
		}

		contentType := file.Header.Get("Content-Type")
		ext, ok := allowedImageTypes[contentType]
		if !ok {
			src.Close()
			return nil, uploadedKeys, apperrors.Validation(fmt.Sprintf("unsupported image type %q", contentType))
		}
		if fileExt := strings.ToLower(filepath.Ext(file.Filename)); fileExt != "" {
			ext = fileExt
		}

		key := fmt.Sprintf("listings/%d/%s%s", userID, uuid.New().String(), ext)
		url, err := uc.imageStore.UploadFile(key, src, contentType)
		src.Close()
		if err != nil {
			return nil, uploadedKeys, apperrors.Dependency("failed to store image", err)
		}
		uploadedKeys = append(uploadedKeys, key)

		images = append(images, entity.ListingImage{
			URL:      url,
			Key:      key,
			Position: i,
		})
	}

	return images, uploadedKeys, nil
}

func validateListingInput(input ListingInput) error {
	switch {
	case strings.TrimSpace(input.Title) == "":
		return apperrors.Validation("title is required")
	case strings.TrimSpace(input.Description) == "":
		return apperrors.Validation("description is required")
	case strings.TrimSpace(input.City) == "":
		return apperrors.Validation("city is required")
	case input.CategoryID == 0:
		return apperrors.Validation("category_id is required")
	}

	if input.Type != entity.TypeStandard && input.Type != entity.TypePremium {
		return apperrors.Validation("type must be standard or premium")
	}
	return nil
}

func validateImageFiles(imageFiles []*multipart.FileHeader) error {
	if len(imageFiles) > maxImagesPerListing {
		return apperrors.Validation(fmt.Sprintf("maximum %d images allowed per listing", maxImagesPerListing))
	}
	for _, file := range imageFiles {
		if file.Size > maxImageSizeBytes {
			return apperrors.Validation(fmt.Sprintf("image %q exceeds the %d MiB limit", file.Filename, maxImageSizeBytes>>20))
		}
	}
	return nil
}
