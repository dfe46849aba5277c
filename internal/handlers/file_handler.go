package handlers

import (
	"io"
	"strings"

	"unimatch_backend/internal/storage"
	"unimatch_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

// FileHandler serves locally stored uploads. With the S3 backend clients
// fetch signed URLs directly and this surface goes unused.
type FileHandler struct {
	*BaseHandler
	storage storage.Storage
}

func NewFileHandler(base *BaseHandler, store storage.Storage) *FileHandler {
	return &FileHandler{BaseHandler: base, storage: store}
}

// Serve handles GET /files/*path.
func (h *FileHandler) Serve(c *gin.Context) {
	path := strings.TrimPrefix(c.Param("path"), "/")
	if path == "" || strings.Contains(path, "..") {
		h.HandleServiceError(c, apperrors.NewNotFoundError("File not found"))
		return
	}

	reader, err := h.storage.Get(c.Request.Context(), path)
	if err != nil {
		h.HandleServiceError(c, apperrors.NewNotFoundError("File not found"))
		return
	}
	defer reader.Close()

	c.Status(200)
	if _, err := io.Copy(c.Writer, reader); err != nil {
		// Response already started; nothing useful left to send.
		return
	}
}
