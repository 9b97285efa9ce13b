package http

import (
	"net/http"

	"adboard/internal/usecase"
	"adboard/pkg/logger"

	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	reportUseCase usecase.ReportUseCase
	logger        *logger.Logger
}

func NewReportHandler(reportUseCase usecase.ReportUseCase, logger *logger.Logger) *ReportHandler {
	return &ReportHandler{
		reportUseCase: reportUseCase,
		logger:        logger,
	}
}

type ReportRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// ReportListing godoc
// @Summary      Report a listing
// @Tags         reports
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Listing ID"
// @Param        request body ReportRequest true "Report reason"
// @Success      201  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]string
// @Router       /listings/{id}/report [post]
func (h *ReportHandler) ReportListing(c *gin.Context) {
	listingID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req ReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	report, err := h.reportUseCase.ReportListing(actorFrom(c), listingID, req.Reason)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"report": report})
}

// ListOpenReports godoc
// @Summary      List open reports
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      403  {object}  map[string]string
// @Router       /moderation/reports [get]
func (h *ReportHandler) ListOpenReports(c *gin.Context) {
	limit, offset := pagination(c)

	reports, err := h.reportUseCase.ListOpenReports(actorFrom(c), limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"reports": reports, "count": len(reports)})
}

// ResolveReport godoc
// @Summary      Resolve an open report
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Report ID"
// @Success      200  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /moderation/reports/{id}/resolve [put]
func (h *ReportHandler) ResolveReport(c *gin.Context) {
	reportID, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.reportUseCase.ResolveReport(actorFrom(c), reportID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Report resolved"})
}
