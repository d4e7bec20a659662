// internal/interfaces/http/handlers/size.go
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/divyanshus020/Project-VMC-sub000/internal/config"
	"github.com/divyanshus020/Project-VMC-sub000/internal/domain/size"
)

// SizeHandler handles size (die) endpoints
type SizeHandler struct {
	sizeService *size.Service
	config      *config.Config
}

// NewSizeHandler creates a new size handler
func NewSizeHandler(db *gorm.DB, cfg *config.Config) *SizeHandler {
	return &SizeHandler{
		sizeService: size.NewService(db, cfg),
		config:      cfg,
	}
}

// List handles GET /sizes
func (h *SizeHandler) List(c *gin.Context) {
	sizes, err := h.sizeService.List()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to list sizes")
		return
	}

	respondOK(c, http.StatusOK, "", sizes)
}

// Get handles GET /sizes/:id
func (h *SizeHandler) Get(c *gin.Context) {
	sizeID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid size ID")
		return
	}

	s, err := h.sizeService.Get(uint(sizeID))
	if err != nil {
		respondError(c, http.StatusNotFound, err.Error())
		return
	}

	respondOK(c, http.StatusOK, "", s)
}

// Create handles POST /admin/sizes
func (h *SizeHandler) Create(c *gin.Context) {
	var req size.CreateSizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	s, err := h.sizeService.Create(&req)
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	respondOK(c, http.StatusCreated, "Size created", s)
}

// Update handles PUT /admin/sizes/:id
func (h *SizeHandler) Update(c *gin.Context) {
	sizeID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid size ID")
		return
	}

	var req size.UpdateSizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	s, err := h.sizeService.Update(uint(sizeID), &req)
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	respondOK(c, http.StatusOK, "Size updated", s)
}

// Delete handles DELETE /admin/sizes/:id
func (h *SizeHandler) Delete(c *gin.Context) {
	sizeID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid size ID")
		return
	}

	if err := h.sizeService.Delete(uint(sizeID)); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	respondOK(c, http.StatusOK, "Size deleted", nil)
}
