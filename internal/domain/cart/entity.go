// internal/domain/cart/entity.go
package cart

import (
	"time"

	"gorm.io/gorm"

	"github.com/divyanshus020/Project-VMC-sub000/internal/domain/product"
	"github.com/divyanshus020/Project-VMC-sub000/internal/domain/size"
)

// AllowedTunches is the closed set of purity percentages an item may carry.
var AllowedTunches = []string{"92.5", "90", "88.5", "84.5"}

// IsValidTunch reports whether the given tunch is in the allowed set.
// An empty tunch is valid: the item falls back to the product default.
func IsValidTunch(tunch string) bool {
	if tunch == "" {
		return true
	}
	for _, allowed := range AllowedTunches {
		if tunch == allowed {
			return true
		}
	}
	return false
}

// Cart represents a user's open staging cart. A cart lives from the first
// item added until it is cleared (or converted to an enquiry batch); the
// next add starts a fresh cart with a fresh identifier.
type Cart struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CartID    string         `gorm:"uniqueIndex;not null;size:36" json:"cart_id"`
	UserID    uint           `gorm:"not null;index" json:"user_id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName overrides the table name
func (Cart) TableName() string {
	return "carts"
}

// CartItem represents a cart line item stored in the database
type CartItem struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	UserID    uint           `gorm:"not null;index" json:"user_id"`
	ProductID uint           `gorm:"not null;index" json:"product_id"`
	SizeID    *uint          `gorm:"index" json:"size_id"`
	Quantity  int            `gorm:"not null;default:1" json:"quantity"`
	Tunch     string         `gorm:"size:10" json:"tunch"`
	Weight    float64        `json:"weight"` // Weight snapshot in grams at time of adding
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName overrides the table name
func (CartItem) TableName() string {
	return "cart_items"
}

// CartItemResponse represents a cart item with product and size details loaded
type CartItemResponse struct {
	ID           uint             `json:"id"`
	ProductID    uint             `json:"product_id"`
	ProductName  string           `json:"product_name"`
	ProductImage string           `json:"product_image,omitempty"`
	SizeID       *uint            `json:"size_id,omitempty"`
	Quantity     int              `json:"quantity"`
	Tunch        string           `json:"tunch,omitempty"`
	Weight       float64          `json:"weight,omitempty"`
	Product      *product.Product `json:"product,omitempty"`
	Size         *size.Size       `json:"size,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
}

// CartResponse represents a user's cart with items and derived totals
type CartResponse struct {
	CartID      string             `json:"cart_id"`
	UserID      uint               `json:"user_id"`
	Items       []CartItemResponse `json:"items"`
	TotalItems  int                `json:"total_items"`  // Sum of all quantities
	TotalWeight float64            `json:"total_weight"` // Sum of weight * quantity in grams
	UpdatedAt   time.Time          `json:"updated_at"`
}

// AddToCartRequest represents add to cart request
type AddToCartRequest struct {
	ProductID uint   `json:"product_id" binding:"required"`
	SizeID    *uint  `json:"size_id"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
	Tunch     string `json:"tunch"`
}

// UpdateCartItemRequest represents update cart item request
type UpdateCartItemRequest struct {
	Quantity int     `json:"quantity" binding:"required,min=1"`
	Tunch    *string `json:"tunch"`
}
