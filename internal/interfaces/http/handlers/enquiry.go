// internal/interfaces/http/handlers/enquiry.go
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/divyanshus020/Project-VMC-sub000/internal/config"
	"github.com/divyanshus020/Project-VMC-sub000/internal/domain/enquiry"
	"github.com/divyanshus020/Project-VMC-sub000/internal/interfaces/http/middleware"
)

// EnquiryHandler handles enquiry endpoints
type EnquiryHandler struct {
	enquiryService *enquiry.Service
	config         *config.Config
}

// NewEnquiryHandler creates a new enquiry handler
func NewEnquiryHandler(db *gorm.DB, cfg *config.Config, notifier enquiry.StatusNotifier) *EnquiryHandler {
	return &EnquiryHandler{
		enquiryService: enquiry.NewService(db, cfg, notifier),
		config:         cfg,
	}
}

// CreateBatch handles POST /enquiries/batch
func (h *EnquiryHandler) CreateBatch(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	var req enquiry.CreateBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	enquiries, err := h.enquiryService.CreateBatch(userID, &req)
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	respondOK(c, http.StatusCreated, "Enquiries submitted", enquiries)
}

// CreateFromCart handles POST /enquiries/from-cart
func (h *EnquiryHandler) CreateFromCart(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	enquiries, err := h.enquiryService.CreateFromCart(userID)
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	respondOK(c, http.StatusCreated, "Enquiries submitted", enquiries)
}

// ListMine handles GET /enquiries. Results are grouped by submission batch;
// search and status filters match groups, not individual rows.
func (h *EnquiryHandler) ListMine(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	search := c.Query("search")
	status := enquiry.Status(c.Query("status"))
	if status != "" && !enquiry.IsValidStatus(status) && status != enquiry.StatusMixed {
		respondError(c, http.StatusBadRequest, "Invalid status filter")
		return
	}

	groups, err := h.enquiryService.ListForUser(userID, search, status)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to list enquiries")
		return
	}

	respondOK(c, http.StatusOK, "", groups)
}

// Get handles GET /enquiries/:id
func (h *EnquiryHandler) Get(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	enquiryID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid enquiry ID")
		return
	}

	e, err := h.enquiryService.Get(userID, uint(enquiryID))
	if err != nil {
		respondError(c, http.StatusNotFound, err.Error())
		return
	}

	respondOK(c, http.StatusOK, "", e)
}

// Cancel handles DELETE /enquiries/:id
func (h *EnquiryHandler) Cancel(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	enquiryID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid enquiry ID")
		return
	}

	e, err := h.enquiryService.Cancel(userID, uint(enquiryID))
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	respondOK(c, http.StatusOK, "Enquiry cancelled", e)
}

// AdminList handles GET /admin/enquiries
func (h *EnquiryHandler) AdminList(c *gin.Context) {
	var req enquiry.AdminListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindError(c, err)
		return
	}

	resp, err := h.enquiryService.AdminList(&req)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to list enquiries")
		return
	}

	respondOK(c, http.StatusOK, "", resp)
}

// AdminUpdateStatus handles PUT /admin/enquiries/:id/status. The mixed
// status is derived for display only and is rejected as input.
func (h *EnquiryHandler) AdminUpdateStatus(c *gin.Context) {
	enquiryID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid enquiry ID")
		return
	}

	var req struct {
		Status enquiry.Status `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	e, err := h.enquiryService.UpdateStatus(uint(enquiryID), req.Status)
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	respondOK(c, http.StatusOK, "Enquiry status updated", e)
}
