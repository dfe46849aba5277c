package apperrors

import (
	"unimatch_backend/internal/logger"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the standard error envelope.
type ErrorResponse struct {
	Error *AppError `json:"error"`
}

// HandleError writes an AppError to the Gin response. Unknown errors are
// collapsed to a generic 500 so internals never leak to clients.
func HandleError(c *gin.Context, err error) {
	var appErr *AppError
	if !As(err, &appErr) {
		appErr = InternalError(err)
	}

	if appErr.HTTPCode >= 500 {
		logger.CtxWithError(c.Request.Context(), "server error", appErr,
			"path", c.Request.URL.Path,
		)
		// Hide wrapped causes behind a generic body. Predefined 500s carry
		// a deliberate, safe message and go out as-is.
		if appErr.Err != nil {
			appErr = New(CodeInternalError, "Internal server error", appErr.HTTPCode)
		}
	}

	c.JSON(appErr.HTTPCode, ErrorResponse{Error: appErr})
}
