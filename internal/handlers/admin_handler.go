package handlers

import (
	"net/http"

	"unimatch_backend/internal/models"
	"unimatch_backend/internal/services"
	"unimatch_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	*BaseHandler
	verificationService services.VerificationService
	moderationService   services.ModerationService
}

func NewAdminHandler(
	base *BaseHandler,
	verificationService services.VerificationService,
	moderationService services.ModerationService,
) *AdminHandler {
	return &AdminHandler{
		BaseHandler:         base,
		verificationService: verificationService,
		moderationService:   moderationService,
	}
}

// ListVerifications handles GET /admin/verifications.
func (h *AdminHandler) ListVerifications(c *gin.Context) {
	limit, offset := h.ParsePagination(c)

	resp, err := h.verificationService.ListPending(c.Request.Context(), limit, offset)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ReviewVerification handles POST /admin/verifications/:id/review.
func (h *AdminHandler) ReviewVerification(c *gin.Context) {
	reviewerID, ok := h.AuthorizedUserID(c)
	if !ok {
		return
	}

	var req dto.ReviewVerificationRequest
	if !h.BindAndValidate(c, &req) {
		return
	}

	if err := h.verificationService.Review(c.Request.Context(), c.Param("id"), reviewerID, &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Verification reviewed"})
}

// ListReports handles GET /admin/reports.
func (h *AdminHandler) ListReports(c *gin.Context) {
	limit, offset := h.ParsePagination(c)
	status := c.DefaultQuery("status", string(models.ReportStatusOpen))

	resp, err := h.moderationService.ListReports(c.Request.Context(), status, limit, offset)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ResolveReport handles POST /admin/reports/:id/resolve.
func (h *AdminHandler) ResolveReport(c *gin.Context) {
	resolverID, ok := h.AuthorizedUserID(c)
	if !ok {
		return
	}

	if err := h.moderationService.ResolveReport(c.Request.Context(), c.Param("id"), resolverID); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Report resolved"})
}

// UpdateUserStatus handles PUT /admin/users/:id/status.
func (h *AdminHandler) UpdateUserStatus(c *gin.Context) {
	var req dto.UpdateUserStatusRequest
	if !h.BindAndValidate(c, &req) {
		return
	}

	err := h.moderationService.UpdateUserStatus(c.Request.Context(), c.Param("id"), models.UserStatus(req.Status))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User status updated"})
}
