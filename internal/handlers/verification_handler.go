package handlers

import (
	"net/http"

	"unimatch_backend/internal/services"
	"unimatch_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type VerificationHandler struct {
	*BaseHandler
	verificationService services.VerificationService
}

func NewVerificationHandler(base *BaseHandler, verificationService services.VerificationService) *VerificationHandler {
	return &VerificationHandler{BaseHandler: base, verificationService: verificationService}
}

// Submit handles POST /verification. Multipart form with a "file" part and
// a "file_type" field.
func (h *VerificationHandler) Submit(c *gin.Context) {
	userID, ok := h.AuthorizedUserID(c)
	if !ok {
		return
	}

	fileType := c.PostForm("file_type")
	if fileType == "" {
		h.HandleServiceError(c, apperrors.NewBadRequestError("file_type is required"))
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.HandleServiceError(c, apperrors.NewBadRequestError("A file is required"))
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		h.HandleServiceError(c, apperrors.InternalError(err))
		return
	}
	defer f.Close()

	resp, err := h.verificationService.Submit(c.Request.Context(), userID, &services.UploadInput{
		FileType:     fileType,
		OriginalName: fileHeader.Filename,
		Size:         fileHeader.Size,
		MimeType:     fileHeader.Header.Get("Content-Type"),
		Reader:       f,
	})
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// GetStatus handles GET /verification.
func (h *VerificationHandler) GetStatus(c *gin.Context) {
	userID, ok := h.AuthorizedUserID(c)
	if !ok {
		return
	}

	resp, err := h.verificationService.GetStatus(c.Request.Context(), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
