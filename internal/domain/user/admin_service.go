// internal/domain/user/admin_service.go
package user

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/divyanshus020/Project-VMC-sub000/internal/config"
	"github.com/divyanshus020/Project-VMC-sub000/internal/pkg/auth"
)

// AdminService handles administrative user management
type AdminService struct {
	db              *gorm.DB
	config          *config.Config
	passwordManager *auth.PasswordManager
}

// NewAdminService creates a new admin user service
func NewAdminService(db *gorm.DB, cfg *config.Config) *AdminService {
	return &AdminService{
		db:              db,
		config:          cfg,
		passwordManager: auth.NewPasswordManager(cfg),
	}
}

// ListUsersRequest represents user listing filters
type ListUsersRequest struct {
	Page     int    `form:"page"`
	Limit    int    `form:"limit"`
	Search   string `form:"search"`
	IsActive *bool  `form:"is_active"`
	SortBy   string `form:"sort_by"`
	SortDir  string `form:"sort_dir"`
}

// ListUsersResponse represents a paginated user listing
type ListUsersResponse struct {
	Users      []User `json:"users"`
	Total      int64  `json:"total"`
	Page       int    `json:"page"`
	Limit      int    `json:"limit"`
	TotalPages int    `json:"total_pages"`
}

// CreateAdminRequest represents a new administrator payload
type CreateAdminRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=100"`
	Phone    string `json:"phone" binding:"required,min=10,max=15"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// UpdateAdminRequest represents administrator field updates
type UpdateAdminRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email" binding:"omitempty,email"`
	Password *string `json:"password" binding:"omitempty,min=8"`
}

var userSortFields = map[string]string{
	"name":          "name",
	"phone":         "phone",
	"created_at":    "created_at",
	"last_login_at": "last_login_at",
}

// ListUsers returns a filtered, paginated page of customer accounts
func (s *AdminService) ListUsers(ctx context.Context, req *ListUsersRequest) (*ListUsersResponse, error) {
	if req.Page < 1 {
		req.Page = 1
	}
	if req.Limit < 1 || req.Limit > 100 {
		req.Limit = 20
	}

	query := s.db.Model(&User{}).Where("is_admin = ?", false)

	if req.Search != "" {
		search := "%" + strings.TrimSpace(req.Search) + "%"
		query = query.Where("name ILIKE ? OR phone ILIKE ? OR email ILIKE ?", search, search, search)
	}

	if req.IsActive != nil {
		query = query.Where("is_active = ?", *req.IsActive)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}

	column, ok := userSortFields[req.SortBy]
	if !ok {
		column = "created_at"
	}
	direction := "DESC"
	if strings.EqualFold(req.SortDir, "asc") {
		direction = "ASC"
	}

	var users []User
	offset := (req.Page - 1) * req.Limit
	if err := query.Order(column + " " + direction).Offset(offset).Limit(req.Limit).Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	totalPages := int((total + int64(req.Limit) - 1) / int64(req.Limit))

	return &ListUsersResponse{
		Users:      users,
		Total:      total,
		Page:       req.Page,
		Limit:      req.Limit,
		TotalPages: totalPages,
	}, nil
}

// GetUser returns a single account by ID
func (s *AdminService) GetUser(ctx context.Context, userID uint) (*User, error) {
	var u User
	if err := s.db.First(&u, userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("user not found")
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return &u, nil
}

// SetUserActive activates or deactivates a customer account
func (s *AdminService) SetUserActive(ctx context.Context, userID uint, active bool) (*User, error) {
	u, err := s.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if u.IsAdmin {
		return nil, fmt.Errorf("use the admin endpoints to manage administrator accounts")
	}

	if err := s.db.Model(u).Update("is_active", active).Error; err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	u.IsActive = active
	return u, nil
}

// DeleteUser soft-deletes a customer account
func (s *AdminService) DeleteUser(ctx context.Context, userID uint) error {
	u, err := s.GetUser(ctx, userID)
	if err != nil {
		return err
	}

	if u.IsAdmin {
		return fmt.Errorf("cannot delete an administrator through this endpoint")
	}

	if err := s.db.Delete(u).Error; err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	return nil
}

// ListAdmins returns all administrator accounts
func (s *AdminService) ListAdmins(ctx context.Context) ([]User, error) {
	var admins []User
	if err := s.db.Where("is_admin = ?", true).Order("created_at ASC").Find(&admins).Error; err != nil {
		return nil, fmt.Errorf("failed to list admins: %w", err)
	}
	return admins, nil
}

// CreateAdmin registers a new administrator account with password login
func (s *AdminService) CreateAdmin(ctx context.Context, req *CreateAdminRequest) (*User, error) {
	phone := strings.TrimSpace(req.Phone)

	var count int64
	if err := s.db.Model(&User{}).Where("phone = ?", phone).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to check phone: %w", err)
	}
	if count > 0 {
		return nil, fmt.Errorf("an account with this phone number already exists")
	}

	if err := s.passwordManager.ValidatePassword(req.Password); err != nil {
		return nil, err
	}

	hashed, err := s.passwordManager.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	admin := User{
		Name:     strings.TrimSpace(req.Name),
		Phone:    phone,
		Email:    req.Email,
		Password: hashed,
		IsAdmin:  true,
	}

	if err := s.db.Create(&admin).Error; err != nil {
		return nil, fmt.Errorf("failed to create admin: %w", err)
	}

	return &admin, nil
}

// UpdateAdmin updates an administrator account. An admin can update their own
// details here; demotion is handled by DeleteAdmin.
func (s *AdminService) UpdateAdmin(ctx context.Context, adminID uint, req *UpdateAdminRequest) (*User, error) {
	var admin User
	if err := s.db.Where("is_admin = ?", true).First(&admin, adminID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("admin not found")
		}
		return nil, fmt.Errorf("failed to load admin: %w", err)
	}

	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = strings.TrimSpace(*req.Name)
	}
	if req.Email != nil {
		updates["email"] = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.Password != nil {
		if err := s.passwordManager.ValidatePassword(*req.Password); err != nil {
			return nil, err
		}
		hashed, err := s.passwordManager.HashPassword(*req.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		updates["password"] = hashed
	}

	if len(updates) > 0 {
		if err := s.db.Model(&admin).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update admin: %w", err)
		}
	}

	if err := s.db.First(&admin, adminID).Error; err != nil {
		return nil, fmt.Errorf("failed to reload admin: %w", err)
	}

	return &admin, nil
}

// DeleteAdmin removes an administrator account. An admin cannot delete
// themselves, so the panel can never lock everyone out in one click.
func (s *AdminService) DeleteAdmin(ctx context.Context, adminID, requestingAdminID uint) error {
	if adminID == requestingAdminID {
		return fmt.Errorf("you cannot delete your own admin account")
	}

	var admin User
	if err := s.db.Where("is_admin = ?", true).First(&admin, adminID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fmt.Errorf("admin not found")
		}
		return fmt.Errorf("failed to load admin: %w", err)
	}

	if err := s.db.Delete(&admin).Error; err != nil {
		return fmt.Errorf("failed to delete admin: %w", err)
	}

	return nil
}
