// internal/interfaces/http/handlers/user_admin.go
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/divyanshus020/Project-VMC-sub000/internal/config"
	"github.com/divyanshus020/Project-VMC-sub000/internal/domain/user"
	"github.com/divyanshus020/Project-VMC-sub000/internal/interfaces/http/middleware"
)

// UserAdminHandler handles admin user-management endpoints
type UserAdminHandler struct {
	adminService *user.AdminService
	config       *config.Config
}

// NewUserAdminHandler creates a new user admin handler
func NewUserAdminHandler(db *gorm.DB, cfg *config.Config) *UserAdminHandler {
	return &UserAdminHandler{
		adminService: user.NewAdminService(db, cfg),
		config:       cfg,
	}
}

// ListUsers handles GET /admin/users
func (h *UserAdminHandler) ListUsers(c *gin.Context) {
	var req user.ListUsersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindError(c, err)
		return
	}

	resp, err := h.adminService.ListUsers(c.Request.Context(), &req)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to list users")
		return
	}

	respondOK(c, http.StatusOK, "", resp)
}

// GetUser handles GET /admin/users/:id
func (h *UserAdminHandler) GetUser(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid user ID")
		return
	}

	u, err := h.adminService.GetUser(c.Request.Context(), uint(userID))
	if err != nil {
		respondError(c, http.StatusNotFound, err.Error())
		return
	}

	respondOK(c, http.StatusOK, "", u)
}

// SetUserActive handles PATCH /admin/users/:id/active
func (h *UserAdminHandler) SetUserActive(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid user ID")
		return
	}

	var req struct {
		IsActive *bool `json:"is_active" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	u, err := h.adminService.SetUserActive(c.Request.Context(), uint(userID), *req.IsActive)
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	respondOK(c, http.StatusOK, "User updated", u)
}

// DeleteUser handles DELETE /admin/users/:id
func (h *UserAdminHandler) DeleteUser(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid user ID")
		return
	}

	if err := h.adminService.DeleteUser(c.Request.Context(), uint(userID)); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	respondOK(c, http.StatusOK, "User deleted", nil)
}

// ListAdmins handles GET /admin/admins
func (h *UserAdminHandler) ListAdmins(c *gin.Context) {
	admins, err := h.adminService.ListAdmins(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to list admins")
		return
	}

	respondOK(c, http.StatusOK, "", admins)
}

// CreateAdmin handles POST /admin/admins
func (h *UserAdminHandler) CreateAdmin(c *gin.Context) {
	var req user.CreateAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	admin, err := h.adminService.CreateAdmin(c.Request.Context(), &req)
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	respondOK(c, http.StatusCreated, "Admin created", admin)
}

// UpdateAdmin handles PUT /admin/admins/:id
func (h *UserAdminHandler) UpdateAdmin(c *gin.Context) {
	adminID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid admin ID")
		return
	}

	var req user.UpdateAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	admin, err := h.adminService.UpdateAdmin(c.Request.Context(), uint(adminID), &req)
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	respondOK(c, http.StatusOK, "Admin updated", admin)
}

// DeleteAdmin handles DELETE /admin/admins/:id
func (h *UserAdminHandler) DeleteAdmin(c *gin.Context) {
	adminID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid admin ID")
		return
	}

	requestingAdminID, _ := middleware.GetUserIDFromContext(c)

	if err := h.adminService.DeleteAdmin(c.Request.Context(), uint(adminID), requestingAdminID); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	respondOK(c, http.StatusOK, "Admin deleted", nil)
}
