package handlers

import (
	"net/http"

	"unimatch_backend/internal/config"
	"unimatch_backend/internal/services"
	"unimatch_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	*BaseHandler
	authService services.AuthService
}

func NewAuthHandler(base *BaseHandler, authService services.AuthService) *AuthHandler {
	return &AuthHandler{BaseHandler: base, authService: authService}
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !h.BindAndValidate(c, &req) {
		return
	}

	resp, err := h.authService.Register(c.Request.Context(), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	// A repeat registration against an unactivated account resends the
	// activation mail without creating anything, so it is not a 201.
	status := http.StatusCreated
	if resp.UserID == "" {
		status = http.StatusOK
	}
	c.JSON(status, resp)
}

// Activate handles GET /auth/activate?token=... from the email link. The
// browser follows a redirect to the web client rather than seeing JSON.
func (h *AuthHandler) Activate(c *gin.Context) {
	token := c.Query("token")
	publicURL := config.GetConfig().App.PublicURL

	if err := h.authService.Activate(c.Request.Context(), token); err != nil {
		c.Redirect(http.StatusFound, publicURL+"/activation-failed")
		return
	}
	c.Redirect(http.StatusFound, publicURL+"/activation-success")
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !h.BindAndValidate(c, &req) {
		return
	}

	resp, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Refresh handles POST /auth/refresh.
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshRequest
	if !h.BindAndValidate(c, &req) {
		return
	}

	resp, err := h.authService.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Logout handles POST /auth/logout.
func (h *AuthHandler) Logout(c *gin.Context) {
	userID, ok := h.AuthorizedUserID(c)
	if !ok {
		return
	}

	var req dto.LogoutRequest
	// The body is optional; without a token every session is revoked.
	_ = c.ShouldBindJSON(&req)

	if err := h.authService.Logout(c.Request.Context(), userID, req.RefreshToken); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}
