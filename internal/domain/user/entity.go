// internal/domain/user/entity.go
package user

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// User represents a storefront customer or an admin account.
// The phone number is the primary identity for the OTP flow.
type User struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Phone       string         `gorm:"uniqueIndex;not null;size:20" json:"phone"`
	Email       string         `gorm:"index;size:255" json:"email,omitempty"`
	Password    string         `gorm:"size:255" json:"-"` // Empty for OTP-only accounts
	Name        string         `gorm:"size:100" json:"name"`
	IsActive    bool           `gorm:"default:true" json:"is_active"`
	IsAdmin     bool           `gorm:"default:false" json:"is_admin"`
	LastLoginAt *time.Time     `json:"last_login_at"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName overrides the table name
func (User) TableName() string {
	return "users"
}

// BeforeCreate hook to normalize fields before user creation
func (u *User) BeforeCreate(tx *gorm.DB) error {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	u.Phone = strings.TrimSpace(u.Phone)
	return nil
}

// GetDisplayName returns display name (name, or phone as fallback)
func (u *User) GetDisplayName() string {
	if strings.TrimSpace(u.Name) != "" {
		return u.Name
	}
	return u.Phone
}
