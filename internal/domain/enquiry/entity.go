// internal/domain/enquiry/entity.go
package enquiry

import (
	"time"

	"gorm.io/gorm"

	"github.com/divyanshus020/Project-VMC-sub000/internal/domain/product"
	"github.com/divyanshus020/Project-VMC-sub000/internal/domain/size"
)

// Status represents the enquiry status
type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusCancelled Status = "cancelled"

	// StatusMixed is a derived display sentinel for groups whose members
	// disagree on status. It is never stored and never accepted as input.
	StatusMixed Status = "mixed"
)

// IsValidStatus reports whether a status is a member of the persistable set
func IsValidStatus(s Status) bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusCancelled:
		return true
	}
	return false
}

// Enquiry represents a customer's request-to-order a product line
type Enquiry struct {
	ID        uint           `gorm:"primaryKey" json:"enquiry_id"`
	UserID    uint           `gorm:"not null;index" json:"user_id"`
	ProductID uint           `gorm:"not null;index" json:"product_id"`
	SizeID    *uint          `gorm:"index" json:"size_id"`
	Quantity  int            `gorm:"not null" json:"quantity"`
	Tunch     string         `gorm:"size:10" json:"tunch"`
	Status    Status         `gorm:"not null;default:'pending';size:20;index" json:"status"`
	CartID    string         `gorm:"size:36;index" json:"cart_id,omitempty"` // Originating cart/batch
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Product *product.Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Size    *size.Size       `gorm:"foreignKey:SizeID" json:"size,omitempty"`
}

// TableName overrides the table name
func (Enquiry) TableName() string {
	return "enquiries"
}

// CanBeCancelled checks if the owner may still cancel this enquiry
func (e *Enquiry) CanBeCancelled() bool {
	return e.Status == StatusPending
}

// EnquiryPayload is one line of a batch creation request
type EnquiryPayload struct {
	ProductID uint   `json:"product_id" binding:"required"`
	SizeID    *uint  `json:"size_id"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
	Tunch     string `json:"tunch"`
}

// CreateBatchRequest represents an atomic enquiry batch submission
type CreateBatchRequest struct {
	Enquiries []EnquiryPayload `json:"enquiries" binding:"required,min=1,dive"`
}

// StatusUpdate is the payload pushed to a user when one of their
// enquiries changes status
type StatusUpdate struct {
	EnquiryID uint      `json:"enquiry_id"`
	Status    Status    `json:"status"`
	CartID    string    `json:"cart_id,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}
