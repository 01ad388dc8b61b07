package handlers

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"backend/internal/http/middleware"
	"backend/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// UploadHandler stores product images on disk. Files are renamed to a UUID
// so user-supplied names never touch the filesystem.
type UploadHandler struct {
	Dir string
}

const maxImageSize = 5 << 20 // 5 MiB

var allowedImageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// POST /api/products/image
func (h UploadHandler) UploadImage(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "no file in request", err)
		return
	}

	if file.Size > maxImageSize {
		RespondError(c, http.StatusBadRequest, "file exceeds 5 MiB limit", nil)
		return
	}

	contentType := file.Header.Get("Content-Type")
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !strings.HasPrefix(contentType, "image/") || !allowedImageExts[ext] {
		RespondError(c, http.StatusBadRequest, "only image files are allowed", nil)
		return
	}

	if err := os.MkdirAll(h.Dir, 0o755); err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to prepare upload directory", err)
		return
	}

	fileName := uuid.NewString() + ext
	if err := c.SaveUploadedFile(file, filepath.Join(h.Dir, fileName)); err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to store file", err)
		return
	}

	utils.LogEvent(middleware.GetRequestID(c), "upload", "image_stored", "file="+fileName)
	c.JSON(http.StatusOK, gin.H{"fileName": fileName})
}
