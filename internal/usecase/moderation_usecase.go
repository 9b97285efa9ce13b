package usecase

import (
	"context"
	"fmt"

	"adboard/internal/entity"
	"adboard/internal/repo/persistent"
	"adboard/pkg/apperrors"
	"adboard/pkg/logger"
	"adboard/pkg/queue"

	"github.com/redis/go-redis/v9"
)

// ModerationUseCase applies the listing status transitions. Authorization is
// always checked before the state machine is consulted, so a forbidden actor
// learns nothing about the listing's current status.
type ModerationUseCase interface {
	Approve(actor Actor, listingID uint) (*entity.Listing, error)
	Reject(actor Actor, listingID uint) (*entity.Listing, error)
	Activate(actor Actor, listingID uint) (*entity.Listing, error)
	Deactivate(actor Actor, listingID uint) (*entity.Listing, error)
	PendingListings(actor Actor, limit, offset int) ([]*entity.Listing, error)
}

type moderationUseCase struct {
	listingRepo persistent.ListingRepository
	redisClient *redis.Client
	queueClient *queue.Client
	logger      *logger.Logger
}

func NewModerationUseCase(
	listingRepo persistent.ListingRepository,
	redisClient *redis.Client,
	queueClient *queue.Client,
	logger *logger.Logger,
) ModerationUseCase {
	return &moderationUseCase{
		listingRepo: listingRepo,
		redisClient: redisClient,
		queueClient: queueClient,
		logger:      logger,
	}
}

func (uc *moderationUseCase) Approve(actor Actor, listingID uint) (*entity.Listing, error) {
	return uc.adminTransition(actor, listingID, persistent.TransitionApprove)
}

func (uc *moderationUseCase) Reject(actor Actor, listingID uint) (*entity.Listing, error) {
	return uc.adminTransition(actor, listingID, persistent.TransitionReject)
}

func (uc *moderationUseCase) Activate(actor Actor, listingID uint) (*entity.Listing, error) {
	return uc.adminTransition(actor, listingID, persistent.TransitionActivate)
}

// Deactivate may be called by the owner or an administrator, only on an
// active listing. The result is "inactive", distinct from rejection.
func (uc *moderationUseCase) Deactivate(actor Actor, listingID uint) (*entity.Listing, error) {
	listing, err := uc.listingRepo.GetByID(listingID)
	if err != nil {
		return nil, err
	}
	if !actor.CanManage(listing.UserID) {
		return nil, apperrors.ErrUnauthorized
	}

	if err := uc.listingRepo.ApplyTransition(listingID, persistent.TransitionDeactivate); err != nil {
		return nil, err
	}

	listing.Approved = true
	listing.Active = false
	return listing, nil
}

func (uc *moderationUseCase) PendingListings(actor Actor, limit, offset int) ([]*entity.Listing, error) {
	if !actor.IsAdmin {
		return nil, apperrors.ErrUnauthorized
	}
	return uc.listingRepo.ListPending(limit, offset)
}

func (uc *moderationUseCase) adminTransition(actor Actor, listingID uint, t persistent.StatusTransition) (*entity.Listing, error) {
	if !actor.IsAdmin {
		return nil, apperrors.ErrUnauthorized
	}

	listing, err := uc.listingRepo.GetByID(listingID)
	if err != nil {
		return nil, err
	}

	if err := uc.listingRepo.ApplyTransition(listingID, t); err != nil {
		return nil, err
	}

	listing.Approved = t.SetApproved
	listing.Active = t.SetActive

	uc.publishModerationEvent(listing, t.Name)
	return listing, nil
}

func (uc *moderationUseCase) publishModerationEvent(listing *entity.Listing, action string) {
	if uc.redisClient != nil {
		ctx := context.Background()
		eventKey := fmt.Sprintf("moderation:listing:%d:%s", listing.ID, action)
		uc.redisClient.Publish(ctx, "moderation_events", eventKey)
	}

	if uc.queueClient != nil {
		task := map[string]interface{}{
			"type":       fmt.Sprintf("listing_%s", action),
			"listing_id": listing.ID,
			"user_id":    listing.UserID,
			"priority":   5,
		}
		go func() {
			if err := uc.queueClient.PublishNotificationTask(task); err != nil {
				uc.logger.Error("Failed to publish moderation notification for listing %d: %v", listing.ID, err)
			}
		}()
	}
}
