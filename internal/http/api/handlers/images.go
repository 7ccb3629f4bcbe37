package handlers

import (
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/inkwell-dev/inkwell/internal/models"
)

// maxImageSize caps uploaded image payloads.
const maxImageSize = 5 * 1024 * 1024

// allowedImageTypes lists accepted upload content types.
var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
}

// UploadImage attaches an image to a post. Author-only, same silent
// redirect rule as edit.
func (h *PostHandler) UploadImage(c *gin.Context) {
	post, ok := h.loadPostForEdit(c)
	if !ok {
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxImageSize)
	file, header, errFile := c.Request.FormFile("image")
	if errFile != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing image file"})
		return
	}
	defer func() { _ = file.Close() }()

	contentType := header.Header.Get("Content-Type")
	if !allowedImageTypes[contentType] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported image type"})
		return
	}

	if errMkdir := os.MkdirAll(h.site.UploadsDir, 0o755); errMkdir != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "prepare uploads dir failed"})
		return
	}

	name := uuid.New().String() + filepath.Ext(header.Filename)
	dst, errCreate := os.Create(filepath.Join(h.site.UploadsDir, name))
	if errCreate != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "store image failed"})
		return
	}
	defer func() { _ = dst.Close() }()
	if _, errCopy := io.Copy(dst, file); errCopy != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "store image failed"})
		return
	}

	if errUpdate := h.db.WithContext(c.Request.Context()).
		Model(&models.Post{}).
		Where("id = ?", post.ID).
		Updates(map[string]any{"image": name, "updated_at": time.Now().UTC()}).Error; errUpdate != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update post failed"})
		return
	}
	c.Redirect(http.StatusFound, "/posts/"+strconv.FormatUint(post.ID, 10)+"/")
}
