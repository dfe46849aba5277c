package handlers

import (
	"net/http"

	"unimatch_backend/internal/services"
	"unimatch_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type ModerationHandler struct {
	*BaseHandler
	moderationService services.ModerationService
}

func NewModerationHandler(base *BaseHandler, moderationService services.ModerationService) *ModerationHandler {
	return &ModerationHandler{BaseHandler: base, moderationService: moderationService}
}

// Block handles POST /blocks.
func (h *ModerationHandler) Block(c *gin.Context) {
	userID, ok := h.AuthorizedUserID(c)
	if !ok {
		return
	}

	var req dto.BlockUserRequest
	if !h.BindAndValidate(c, &req) {
		return
	}

	if err := h.moderationService.BlockUser(c.Request.Context(), userID, req.UserID); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "User blocked"})
}

// Report handles POST /reports.
func (h *ModerationHandler) Report(c *gin.Context) {
	userID, ok := h.AuthorizedUserID(c)
	if !ok {
		return
	}

	var req dto.ReportUserRequest
	if !h.BindAndValidate(c, &req) {
		return
	}

	resp, err := h.moderationService.ReportUser(c.Request.Context(), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}
