package http

import (
	"net/http"
	"strconv"

	"adboard/internal/entity"
	"adboard/internal/repo/persistent"
	"adboard/internal/usecase"
	"adboard/pkg/logger"

	"github.com/gin-gonic/gin"
)

type ListingHandler struct {
	listingUseCase usecase.ListingUseCase
	logger         *logger.Logger
}

func NewListingHandler(listingUseCase usecase.ListingUseCase, logger *logger.Logger) *ListingHandler {
	return &ListingHandler{
		listingUseCase: listingUseCase,
		logger:         logger,
	}
}

type CreateListingRequest struct {
	Title         string `form:"title" binding:"required"`
	Description   string `form:"description" binding:"required"`
	City          string `form:"city" binding:"required"`
	CategoryID    uint   `form:"category_id" binding:"required"`
	ContactPerson string `form:"contact_person"`
	Phone         string `form:"phone"`
	Type          string `form:"type" binding:"required,oneof=standard premium"`
}

// CreateListing godoc
// @Summary      Create a listing
// @Description  Create a listing with up to 10 images. A standard listing consumes the one-time free allowance; premium listings are unlimited.
// @Tags         listings
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        title formData string true "Title"
// @Param        description formData string true "Description"
// @Param        city formData string true "City"
// @Param        category_id formData int true "Category ID"
// @Param        contact_person formData string false "Contact person"
// @Param        phone formData string false "Phone"
// @Param        type formData string true "Listing type" Enums(standard, premium)
// @Param        images formData file false "Image files (jpg/png/webp), multiple allowed"
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /listings [post]
func (h *ListingHandler) CreateListing(c *gin.Context) {
	var req CreateListingRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to parse form"})
		return
	}
	imageFiles := form.File["images"]

	listing, err := h.listingUseCase.CreateListing(actorFrom(c), usecase.ListingInput{
		Title:         req.Title,
		Description:   req.Description,
		City:          req.City,
		CategoryID:    req.CategoryID,
		ContactPerson: req.ContactPerson,
		Phone:         req.Phone,
		Type:          entity.ListingType(req.Type),
	}, imageFiles)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, listingResponse(listing))
}

// GetListing godoc
// @Summary      Get a listing by ID
// @Description  Owners and administrators see any status; everyone else only approved+active listings. A qualifying read increments the view counter.
// @Tags         listings
// @Produce      json
// @Param        id path int true "Listing ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]string
// @Router       /listings/{id} [get]
func (h *ListingHandler) GetListing(c *gin.Context) {
	listingID, ok := parseID(c, "id")
	if !ok {
		return
	}

	listing, err := h.listingUseCase.GetListing(actorFrom(c), listingID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, listingResponse(listing))
}

// BrowseListings godoc
// @Summary      Browse approved listings
// @Tags         listings
// @Produce      json
// @Param        category_id query int false "Filter by category"
// @Param        city query string false "Filter by city"
// @Param        q query string false "Text search in title and description"
// @Param        limit query int false "Page size (max 100)"
// @Param        offset query int false "Offset"
// @Success      200  {object}  map[string]interface{}
// @Router       /listings [get]
func (h *ListingHandler) BrowseListings(c *gin.Context) {
	limit, offset := pagination(c)

	filter := persistent.ListingFilter{
		City:   c.Query("city"),
		Query:  c.Query("q"),
		Limit:  limit,
		Offset: offset,
	}
	if categoryID, err := strconv.ParseUint(c.Query("category_id"), 10, 32); err == nil {
		filter.CategoryID = uint(categoryID)
	}

	listings, total, err := h.listingUseCase.BrowseListings(filter)
	if err != nil {
		h.logger.Error("Failed to browse listings: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch listings"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"listings": listingResponses(listings),
		"total":    total,
		"limit":    limit,
		"offset":   offset,
	})
}

// MyListings godoc
// @Summary      List the authenticated user's listings
// @Tags         listings
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Router       /listings/mine [get]
func (h *ListingHandler) MyListings(c *gin.Context) {
	limit, offset := pagination(c)

	listings, err := h.listingUseCase.MyListings(actorFrom(c), limit, offset)
	if err != nil {
		h.logger.Error("Failed to list own listings: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch listings"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"listings": listingResponses(listings), "count": len(listings)})
}

type UpdateListingRequest struct {
	Title         string `json:"title" binding:"required"`
	Description   string `json:"description" binding:"required"`
	City          string `json:"city" binding:"required"`
	CategoryID    uint   `json:"category_id" binding:"required"`
	ContactPerson string `json:"contact_person"`
	Phone         string `json:"phone"`
}

// UpdateListing godoc
// @Summary      Edit a rejected or inactive listing and resubmit it
// @Description  Only rejected or inactive listings can be edited; the edit always puts the listing back into the pending queue.
// @Tags         listings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Listing ID"
// @Param        request body UpdateListingRequest true "Updated fields"
// @Success      200  {object}  map[string]interface{}
// @Failure      403  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /listings/{id} [put]
func (h *ListingHandler) UpdateListing(c *gin.Context) {
	listingID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req UpdateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	listing, err := h.listingUseCase.EditAndResubmit(actorFrom(c), listingID, usecase.ListingInput{
		Title:         req.Title,
		Description:   req.Description,
		City:          req.City,
		CategoryID:    req.CategoryID,
		ContactPerson: req.ContactPerson,
		Phone:         req.Phone,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, listingResponse(listing))
}

// DeleteListing godoc
// @Summary      Delete a listing with all dependent data
// @Description  Removes the listing, its conversations and messages in one transaction, then deletes stored images best-effort. The response summarizes what was removed.
// @Tags         listings
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Listing ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /listings/{id} [delete]
func (h *ListingHandler) DeleteListing(c *gin.Context) {
	listingID, ok := parseID(c, "id")
	if !ok {
		return
	}

	summary, err := h.listingUseCase.DeleteListing(actorFrom(c), listingID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Listing deleted successfully", "summary": summary})
}

// ToggleFavorite godoc
// @Summary      Save or unsave a listing
// @Tags         listings
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Listing ID"
// @Success      200  {object}  map[string]interface{}
// @Router       /listings/{id}/favorite [post]
func (h *ListingHandler) ToggleFavorite(c *gin.Context) {
	listingID, ok := parseID(c, "id")
	if !ok {
		return
	}

	saved, err := h.listingUseCase.ToggleFavorite(actorFrom(c), listingID)
	if err != nil {
		respondError(c, err)
		return
	}

	message := "Listing saved"
	if !saved {
		message = "Listing unsaved"
	}
	c.JSON(http.StatusOK, gin.H{"message": message, "saved": saved})
}

// GetFavorites godoc
// @Summary      List saved listings
// @Tags         listings
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Router       /favorites [get]
func (h *ListingHandler) GetFavorites(c *gin.Context) {
	limit, offset := pagination(c)

	listings, err := h.listingUseCase.GetFavorites(actorFrom(c), limit, offset)
	if err != nil {
		h.logger.Error("Failed to list favorites: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch favorites"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"listings": listingResponses(listings), "count": len(listings)})
}

func listingResponse(listing *entity.Listing) gin.H {
	return gin.H{
		"id":             listing.ID,
		"user_id":        listing.UserID,
		"title":          listing.Title,
		"description":    listing.Description,
		"city":           listing.City,
		"category_id":    listing.CategoryID,
		"contact_person": listing.ContactPerson,
		"phone":          listing.Phone,
		"type":           listing.Type,
		"status":         listing.Status(),
		"views":          listing.Views,
		"images":         listing.Images,
		"created_at":     listing.CreatedAt,
		"updated_at":     listing.UpdatedAt,
		"expires_at":     listing.ExpiresAt,
	}
}

func listingResponses(listings []*entity.Listing) []gin.H {
	responses := make([]gin.H, len(listings))
	for i, listing := range listings {
		responses[i] = listingResponse(listing)
	}
	return responses
}

func parseID(c *gin.Context, param string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(param), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return 0, false
	}
	return uint(id), true
}

func pagination(c *gin.Context) (int, int) {
	limit := 20
	offset := 0
	if limitStr := c.Query("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l <= 100 {
			limit = l
		}
	}
	if offsetStr := c.Query("offset"); offsetStr != "" {
		if o, err := strconv.Atoi(offsetStr); err == nil && o >= 0 {
			offset = o
		}
	}
	return limit, offset
}
