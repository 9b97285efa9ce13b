package http

import (
	"net/http"

	"adboard/internal/usecase"
	"adboard/pkg/logger"

	"github.com/gin-gonic/gin"
)

type ConversationHandler struct {
	conversationUseCase usecase.ConversationUseCase
	logger              *logger.Logger
}

func NewConversationHandler(conversationUseCase usecase.ConversationUseCase, logger *logger.Logger) *ConversationHandler {
	return &ConversationHandler{
		conversationUseCase: conversationUseCase,
		logger:              logger,
	}
}

type MessageRequest struct {
	Body string `json:"body" binding:"required"`
}

// StartConversation godoc
// @Summary      Message a listing owner
// @Description  Opens (or reuses) the buyer's conversation on a listing and posts the first message. Owners cannot message their own listing.
// @Tags         conversations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Listing ID"
// @Param        request body MessageRequest true "First message"
// @Success      201  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]string
// @Router       /listings/{id}/conversations [post]
func (h *ConversationHandler) StartConversation(c *gin.Context) {
	listingID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req MessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	conversation, message, err := h.conversationUseCase.StartConversation(actorFrom(c), listingID, req.Body)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"conversation": conversation, "message": message})
}

// ListConversations godoc
// @Summary      List the authenticated user's conversations
// @Tags         conversations
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Router       /conversations [get]
func (h *ConversationHandler) ListConversations(c *gin.Context) {
	limit, offset := pagination(c)

	conversations, err := h.conversationUseCase.ListConversations(actorFrom(c), limit, offset)
	if err != nil {
		h.logger.Error("Failed to list conversations: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch conversations"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"conversations": conversations, "count": len(conversations)})
}

// ListMessages godoc
// @Summary      List messages in a conversation
// @Tags         conversations
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Conversation ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]string
// @Router       /conversations/{id}/messages [get]
func (h *ConversationHandler) ListMessages(c *gin.Context) {
	conversationID, ok := parseID(c, "id")
	if !ok {
		return
	}

	limit, offset := pagination(c)

	messages, err := h.conversationUseCase.ListMessages(actorFrom(c), conversationID, limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"messages": messages, "count": len(messages)})
}

// SendMessage godoc
// @Summary      Send a message in a conversation
// @Tags         conversations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Conversation ID"
// @Param        request body MessageRequest true "Message"
// @Success      201  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]string
// @Router       /conversations/{id}/messages [post]
func (h *ConversationHandler) SendMessage(c *gin.Context) {
	conversationID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req MessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	message, err := h.conversationUseCase.SendMessage(actorFrom(c), conversationID, req.Body)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": message})
}
