package handlers

import (
	"fmt"
	"net/http"
	"path/filepath"

	"livestock-supply-api-server/internal/s3"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type UploadHandler struct {
	Uploader *s3.Uploader
}

// UploadImage stores a multipart image in S3 and returns its public URL,
// ready to be set as a medicine/feed image field.
func (h *UploadHandler) UploadImage(c *gin.Context) {
	if h.Uploader == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Image storage is not configured"})
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "An image file is required"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read uploaded file"})
		return
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/jpeg"
	}

	objectKey := fmt.Sprintf("images/%s%s", uuid.New().String(), filepath.Ext(fileHeader.Filename))
	url, err := h.Uploader.UploadFile(c.Request.Context(), file, objectKey, contentType)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload image"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"url": url})
}
