package handlers

import (
	"net/http"

	"unimatch_backend/internal/services"
	"unimatch_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type ChatHandler struct {
	*BaseHandler
	chatService services.ChatService
}

func NewChatHandler(base *BaseHandler, chatService services.ChatService) *ChatHandler {
	return &ChatHandler{BaseHandler: base, chatService: chatService}
}

// ListConversations handles GET /chats.
func (h *ChatHandler) ListConversations(c *gin.Context) {
	userID, ok := h.AuthorizedUserID(c)
	if !ok {
		return
	}

	resp, err := h.chatService.ListConversations(c.Request.Context(), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetMessages handles GET /chats/:id/messages.
func (h *ChatHandler) GetMessages(c *gin.Context) {
	userID, ok := h.AuthorizedUserID(c)
	if !ok {
		return
	}

	limit, offset := h.ParsePagination(c)
	resp, err := h.chatService.GetMessages(c.Request.Context(), userID, c.Param("id"), limit, offset)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// SendMessage handles POST /chats/:id/messages.
func (h *ChatHandler) SendMessage(c *gin.Context) {
	userID, ok := h.AuthorizedUserID(c)
	if !ok {
		return
	}

	var req dto.SendMessageRequest
	if !h.BindAndValidate(c, &req) {
		return
	}

	resp, err := h.chatService.SendMessage(c.Request.Context(), userID, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// MarkRead handles POST /chats/:id/read.
func (h *ChatHandler) MarkRead(c *gin.Context) {
	userID, ok := h.AuthorizedUserID(c)
	if !ok {
		return
	}

	if err := h.chatService.MarkRead(c.Request.Context(), userID, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Conversation marked as read"})
}

// DeleteMessage handles DELETE /chats/messages/:id.
func (h *ChatHandler) DeleteMessage(c *gin.Context) {
	userID, ok := h.AuthorizedUserID(c)
	if !ok {
		return
	}

	if err := h.chatService.DeleteMessage(c.Request.Context(), userID, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Message deleted"})
}
