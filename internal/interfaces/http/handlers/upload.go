// internal/interfaces/http/handlers/upload.go
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/divyanshus020/Project-VMC-sub000/internal/config"
	"github.com/divyanshus020/Project-VMC-sub000/internal/domain/upload"
	"github.com/divyanshus020/Project-VMC-sub000/internal/interfaces/http/middleware"
)

// UploadHandler handles media upload endpoints
type UploadHandler struct {
	uploadService *upload.Service
	config        *config.Config
}

// NewUploadHandler creates a new upload handler
func NewUploadHandler(uploadService *upload.Service, cfg *config.Config) *UploadHandler {
	return &UploadHandler{
		uploadService: uploadService,
		config:        cfg,
	}
}

// UploadImage handles POST /admin/uploads
func (h *UploadHandler) UploadImage(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		respondError(c, http.StatusBadRequest, "No file provided")
		return
	}
	defer file.Close()

	uploaded, err := h.uploadService.UploadImage(c.Request.Context(), file, header, userID)
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	respondOK(c, http.StatusCreated, "File uploaded", uploaded)
}

// UploadImages handles POST /admin/uploads/bulk
func (h *UploadHandler) UploadImages(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	form, err := c.MultipartForm()
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	files := form.File["files"]
	if len(files) == 0 {
		respondError(c, http.StatusBadRequest, "No files provided")
		return
	}

	uploaded, failures := h.uploadService.UploadImages(c.Request.Context(), files, userID)

	respondOK(c, http.StatusOK, "", gin.H{
		"uploaded": uploaded,
		"failed":   failures,
	})
}

// Delete handles DELETE /admin/uploads/:id
func (h *UploadHandler) Delete(c *gin.Context) {
	fileID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid file ID")
		return
	}

	if err := h.uploadService.Delete(c.Request.Context(), uint(fileID)); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	respondOK(c, http.StatusOK, "File deleted", nil)
}
