package handlers

import (
	"errors"
	"strconv"

	"unimatch_backend/internal/middleware"
	"unimatch_backend/internal/validator"
	"unimatch_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// BaseHandler carries the pieces every handler needs.
type BaseHandler struct {
	validator *validator.Validator
}

func NewBaseHandler(v *validator.Validator) *BaseHandler {
	return &BaseHandler{validator: v}
}

// BindAndValidate binds the JSON body into obj and runs struct validation.
// It writes the error response itself and reports success to the caller.
func (h *BaseHandler) BindAndValidate(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid request body"))
		return false
	}
	if err := h.validator.Validate(obj); err != nil {
		var ve *validator.ValidationError
		if errors.As(err, &ve) {
			apperrors.HandleError(c, apperrors.ValidationError(ve.Errors))
			return false
		}
		apperrors.HandleError(c, apperrors.NewBadRequestError(err.Error()))
		return false
	}
	return true
}

// HandleServiceError maps a service error onto the HTTP response.
func (h *BaseHandler) HandleServiceError(c *gin.Context, err error) {
	apperrors.HandleError(c, err)
}

// AuthorizedUserID returns the authenticated user ID, responding 401 when
// the middleware did not set one.
func (h *BaseHandler) AuthorizedUserID(c *gin.Context) (string, bool) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.HandleError(c, apperrors.ErrUnauthorized)
		return "", false
	}
	return userID, true
}

// ParsePagination reads limit/offset query params with sane bounds.
func (h *BaseHandler) ParsePagination(c *gin.Context) (limit, offset int) {
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultPageSize)))
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))

	if limit <= 0 || limit > maxPageSize {
		limit = defaultPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
