package http

import (
	"net/http"

	"adboard/internal/entity"
	"adboard/internal/usecase"
	"adboard/pkg/logger"

	"github.com/gin-gonic/gin"
)

type ModerationHandler struct {
	moderationUseCase usecase.ModerationUseCase
	logger            *logger.Logger
}

func NewModerationHandler(moderationUseCase usecase.ModerationUseCase, logger *logger.Logger) *ModerationHandler {
	return &ModerationHandler{
		moderationUseCase: moderationUseCase,
		logger:            logger,
	}
}

// ApproveListing godoc
// @Summary      Approve a pending listing
// @Description  Only a pending listing can be approved; approving anything else is a 409.
// @Tags         moderation
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Listing ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      403  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /listings/{id}/approve [put]
func (h *ModerationHandler) ApproveListing(c *gin.Context) {
	h.transition(c, h.moderationUseCase.Approve, "Listing approved")
}

// RejectListing godoc
// @Summary      Reject a pending or active listing
// @Tags         moderation
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Listing ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      403  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /listings/{id}/reject [put]
func (h *ModerationHandler) RejectListing(c *gin.Context) {
	h.transition(c, h.moderationUseCase.Reject, "Listing rejected")
}

// ActivateListing godoc
// @Summary      Reactivate an inactive listing
// @Description  Only an inactive (previously approved) listing can be activated; a rejected listing must be edited and re-approved first.
// @Tags         moderation
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Listing ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      403  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /listings/{id}/activate [put]
func (h *ModerationHandler) ActivateListing(c *gin.Context) {
	h.transition(c, h.moderationUseCase.Activate, "Listing activated")
}

// DeactivateListing godoc
// @Summary      Deactivate an active listing
// @Description  Owner- or administrator-initiated; the listing stays approved and can be reactivated without another review.
// @Tags         moderation
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Listing ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      403  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /listings/{id}/deactivate [put]
func (h *ModerationHandler) DeactivateListing(c *gin.Context) {
	h.transition(c, h.moderationUseCase.Deactivate, "Listing deactivated")
}

// PendingListings godoc
// @Summary      List listings awaiting review
// @Tags         moderation
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      403  {object}  map[string]string
// @Router       /moderation/pending [get]
func (h *ModerationHandler) PendingListings(c *gin.Context) {
	limit, offset := pagination(c)

	listings, err := h.moderationUseCase.PendingListings(actorFrom(c), limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"listings": listingResponses(listings), "count": len(listings)})
}

func (h *ModerationHandler) transition(c *gin.Context, apply func(usecase.Actor, uint) (*entity.Listing, error), message string) {
	listingID, ok := parseID(c, "id")
	if !ok {
		return
	}

	listing, err := apply(actorFrom(c), listingID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": message, "listing": listingResponse(listing)})
}
