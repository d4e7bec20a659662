// internal/domain/cart/service.go
package cart

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/divyanshus020/Project-VMC-sub000/internal/config"
	"github.com/divyanshus020/Project-VMC-sub000/internal/domain/product"
	"github.com/divyanshus020/Project-VMC-sub000/internal/domain/size"
)

// Service handles cart business logic
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new cart service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// GetCart retrieves the detailed cart for a user. Every mutation returns the
// result of this refetch so responses always reflect the stored state.
func (s *Service) GetCart(userID uint) (*CartResponse, error) {
	cartID, err := s.CurrentCartID(userID)
	if err != nil {
		return nil, err
	}

	var dbItems []CartItem
	err = s.db.Where("user_id = ?", userID).Order("created_at ASC").Find(&dbItems).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve cart: %w", err)
	}

	cartItems := make([]CartItemResponse, len(dbItems))
	var updatedAt time.Time
	for i, item := range dbItems {
		cartItems[i] = CartItemResponse{
			ID:        item.ID,
			ProductID: item.ProductID,
			SizeID:    item.SizeID,
			Quantity:  item.Quantity,
			Tunch:     item.Tunch,
			Weight:    item.Weight,
			CreatedAt: item.CreatedAt,
		}
		if item.UpdatedAt.After(updatedAt) {
			updatedAt = item.UpdatedAt
		}
	}

	if err := s.loadItemDetails(cartItems); err != nil {
		return nil, err
	}

	totalItems, totalWeight := CalculateTotals(cartItems)

	return &CartResponse{
		CartID:      cartID,
		UserID:      userID,
		Items:       cartItems,
		TotalItems:  totalItems,
		TotalWeight: totalWeight,
		UpdatedAt:   updatedAt,
	}, nil
}

// AddToCart adds an item to the user's cart. Adding an identical line
// (same product, size and tunch) increments its quantity instead.
func (s *Service) AddToCart(userID uint, req *AddToCartRequest) (*CartResponse, error) {
	if req.Quantity < 1 {
		return nil, fmt.Errorf("quantity must be at least 1")
	}
	if !IsValidTunch(req.Tunch) {
		return nil, fmt.Errorf("invalid tunch %q: must be one of %v", req.Tunch, AllowedTunches)
	}

	// Validate product exists and is active
	var prod product.Product
	if err := s.db.Where("id = ? AND is_active = ?", req.ProductID, true).First(&prod).Error; err != nil {
		return nil, fmt.Errorf("product not found or inactive")
	}

	// Validate size if specified and take its weight as the line snapshot
	weight := prod.Weight
	if req.SizeID != nil {
		var sz size.Size
		if err := s.db.First(&sz, *req.SizeID).Error; err != nil {
			return nil, fmt.Errorf("size not found")
		}
		if sz.Weight > 0 {
			weight = sz.Weight
		}
	}

	tunch := req.Tunch
	if tunch == "" {
		tunch = prod.Tunch
	}

	// Merge with an existing identical line
	var existing CartItem
	query := s.db.Where("user_id = ? AND product_id = ? AND tunch = ?", userID, req.ProductID, tunch)
	if req.SizeID != nil {
		query = query.Where("size_id = ?", *req.SizeID)
	} else {
		query = query.Where("size_id IS NULL")
	}

	// The first add opens a fresh cart
	if _, err := s.openCart(userID); err != nil {
		return nil, err
	}

	if err := query.First(&existing).Error; err == gorm.ErrRecordNotFound {
		newItem := CartItem{
			UserID:    userID,
			ProductID: req.ProductID,
			SizeID:    req.SizeID,
			Quantity:  req.Quantity,
			Tunch:     tunch,
			Weight:    weight,
		}
		if err := s.db.Create(&newItem).Error; err != nil {
			return nil, fmt.Errorf("failed to add item to cart: %w", err)
		}
	} else if err != nil {
		return nil, fmt.Errorf("failed to check cart: %w", err)
	} else {
		existing.Quantity += req.Quantity
		if err := s.db.Save(&existing).Error; err != nil {
			return nil, fmt.Errorf("failed to update cart item: %w", err)
		}
	}

	return s.GetCart(userID)
}

// UpdateCartItem updates the quantity (and optionally tunch) of a cart item.
// A quantity below 1 is rejected before any write: the stored quantity can
// never drop below 1 through this operation.
func (s *Service) UpdateCartItem(userID, itemID uint, req *UpdateCartItemRequest) (*CartResponse, error) {
	if req.Quantity < 1 {
		return nil, fmt.Errorf("quantity must be at least 1")
	}

	var item CartItem
	if err := s.db.Where("id = ? AND user_id = ?", itemID, userID).First(&item).Error; err != nil {
		return nil, fmt.Errorf("item not found in cart")
	}

	updates := map[string]interface{}{"quantity": req.Quantity}
	if req.Tunch != nil {
		if !IsValidTunch(*req.Tunch) {
			return nil, fmt.Errorf("invalid tunch %q: must be one of %v", *req.Tunch, AllowedTunches)
		}
		updates["tunch"] = *req.Tunch
	}

	if err := s.db.Model(&item).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update cart item: %w", err)
	}

	return s.GetCart(userID)
}

// RemoveItem removes a single line from the user's cart
func (s *Service) RemoveItem(userID, itemID uint) (*CartResponse, error) {
	result := s.db.Where("id = ? AND user_id = ?", itemID, userID).Delete(&CartItem{})
	if result.Error != nil {
		return nil, fmt.Errorf("failed to remove item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, fmt.Errorf("item not found in cart")
	}

	return s.GetCart(userID)
}

// ClearCart removes all items from the user's cart and retires the cart
// identifier. Clearing an already empty cart is not an error.
func (s *Service) ClearCart(userID uint) error {
	return s.ClearCartTx(s.db, userID)
}

// ClearCartTx clears the cart inside an existing transaction. The enquiry
// submission flow uses this to clear the cart atomically with batch creation.
func (s *Service) ClearCartTx(tx *gorm.DB, userID uint) error {
	if err := tx.Where("user_id = ?", userID).Delete(&CartItem{}).Error; err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	if err := tx.Where("user_id = ?", userID).Delete(&Cart{}).Error; err != nil {
		return fmt.Errorf("failed to retire cart: %w", err)
	}
	return nil
}

// GetItemCount returns the total quantity across all cart lines
func (s *Service) GetItemCount(userID uint) (int, error) {
	var items []CartItem
	if err := s.db.Where("user_id = ?", userID).Find(&items).Error; err != nil {
		return 0, fmt.Errorf("failed to load cart items: %w", err)
	}

	total := 0
	for _, item := range items {
		total += item.Quantity
	}
	return total, nil
}

// loadItemDetails loads product and size records for each cart line
func (s *Service) loadItemDetails(items []CartItemResponse) error {
	for i := range items {
		var prod product.Product
		err := s.db.Preload("Images").Where("id = ?", items[i].ProductID).First(&prod).Error
		if err != nil {
			continue // Skip if product not found
		}
		items[i].Product = &prod
		items[i].ProductName = prod.Name
		items[i].ProductImage = prod.PrimaryImageURL()

		if items[i].SizeID != nil {
			var sz size.Size
			if err := s.db.First(&sz, *items[i].SizeID).Error; err == nil {
				items[i].Size = &sz
			}
		}
	}
	return nil
}

// CalculateTotals derives the cart totals from its line items:
// total item count is the sum of quantities, total weight the
// quantity-weighted sum of line weights.
func CalculateTotals(items []CartItemResponse) (totalItems int, totalWeight float64) {
	for _, item := range items {
		totalItems += item.Quantity
		totalWeight += item.Weight * float64(item.Quantity)
	}
	return totalItems, totalWeight
}

// CurrentCartID returns the identifier of the user's open cart, or an empty
// string when no cart is open.
func (s *Service) CurrentCartID(userID uint) (string, error) {
	var c Cart
	err := s.db.Where("user_id = ?", userID).First(&c).Error
	if err == gorm.ErrRecordNotFound {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to look up cart: %w", err)
	}
	return c.CartID, nil
}

// openCart returns the user's open cart, creating one if none exists
func (s *Service) openCart(userID uint) (*Cart, error) {
	var c Cart
	err := s.db.Where("user_id = ?", userID).First(&c).Error
	if err == gorm.ErrRecordNotFound {
		c = Cart{
			CartID: uuid.New().String(),
			UserID: userID,
		}
		if err := s.db.Create(&c).Error; err != nil {
			return nil, fmt.Errorf("failed to open cart: %w", err)
		}
		return &c, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up cart: %w", err)
	}
	return &c, nil
}
