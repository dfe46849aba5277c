package handlers

import (
	"net/http"

	"unimatch_backend/internal/services"

	"github.com/gin-gonic/gin"
)

type MatchHandler struct {
	*BaseHandler
	matchService services.MatchService
}

func NewMatchHandler(base *BaseHandler, matchService services.MatchService) *MatchHandler {
	return &MatchHandler{BaseHandler: base, matchService: matchService}
}

// List handles GET /matches.
func (h *MatchHandler) List(c *gin.Context) {
	userID, ok := h.AuthorizedUserID(c)
	if !ok {
		return
	}

	resp, err := h.matchService.ListMatches(c.Request.Context(), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
