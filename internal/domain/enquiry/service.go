// internal/domain/enquiry/service.go
package enquiry

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/divyanshus020/Project-VMC-sub000/internal/config"
	"github.com/divyanshus020/Project-VMC-sub000/internal/domain/cart"
	"github.com/divyanshus020/Project-VMC-sub000/internal/domain/product"
)

// StatusNotifier receives enquiry status changes for push delivery.
// The websocket hub implements it; a nil notifier drops events.
type StatusNotifier interface {
	NotifyStatusUpdate(userID uint, update StatusUpdate)
}

// Service handles enquiry business logic
type Service struct {
	db          *gorm.DB
	config      *config.Config
	cartService *cart.Service
	notifier    StatusNotifier
}

// NewService creates a new enquiry service
func NewService(db *gorm.DB, cfg *config.Config, notifier StatusNotifier) *Service {
	return &Service{
		db:          db,
		config:      cfg,
		cartService: cart.NewService(db, cfg),
		notifier:    notifier,
	}
}

// CreateBatch persists an enquiry batch atomically: every payload is
// validated before any write, and all rows are created in one transaction.
// A failure on any line rolls back the whole batch.
func (s *Service) CreateBatch(userID uint, req *CreateBatchRequest) ([]Enquiry, error) {
	if userID == 0 {
		return nil, fmt.Errorf("user is required")
	}
	if len(req.Enquiries) == 0 {
		return nil, fmt.Errorf("enquiry batch cannot be empty")
	}

	for i, payload := range req.Enquiries {
		if payload.Quantity < 1 {
			return nil, fmt.Errorf("enquiry %d: quantity must be at least 1", i+1)
		}
		if !cart.IsValidTunch(payload.Tunch) {
			return nil, fmt.Errorf("enquiry %d: invalid tunch %q", i+1, payload.Tunch)
		}
	}

	batchID := uuid.New().String()
	created := make([]Enquiry, 0, len(req.Enquiries))

	err := s.db.Transaction(func(tx *gorm.DB) error {
		for _, payload := range req.Enquiries {
			var prod product.Product
			if err := tx.Where("id = ? AND is_active = ?", payload.ProductID, true).First(&prod).Error; err != nil {
				return fmt.Errorf("product %d not found or inactive", payload.ProductID)
			}

			e := Enquiry{
				UserID:    userID,
				ProductID: payload.ProductID,
				SizeID:    payload.SizeID,
				Quantity:  payload.Quantity,
				Tunch:     payload.Tunch,
				Status:    StatusPending,
				CartID:    batchID,
			}
			if err := tx.Create(&e).Error; err != nil {
				return fmt.Errorf("failed to create enquiry: %w", err)
			}
			created = append(created, e)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}

// CreateFromCart converts the user's entire cart into one enquiry batch
// stamped with the cart's identifier and clears the cart, all in a single
// transaction. The cart is read inside that transaction, so a line added
// concurrently is either converted with the rest or left untouched, never
// dropped. An empty cart aborts before any write.
func (s *Service) CreateFromCart(userID uint) ([]Enquiry, error) {
	if userID == 0 {
		return nil, fmt.Errorf("user is required")
	}

	var created []Enquiry

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var c cart.Cart
		if err := tx.Where("user_id = ?", userID).First(&c).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return fmt.Errorf("cart is empty")
			}
			return fmt.Errorf("failed to look up cart: %w", err)
		}

		var items []cart.CartItem
		if err := tx.Where("user_id = ?", userID).Order("created_at ASC").Find(&items).Error; err != nil {
			return fmt.Errorf("failed to load cart items: %w", err)
		}
		if len(items) == 0 {
			return fmt.Errorf("cart is empty")
		}

		created = make([]Enquiry, 0, len(items))
		for _, item := range items {
			e := Enquiry{
				UserID:    userID,
				ProductID: item.ProductID,
				SizeID:    item.SizeID,
				Quantity:  item.Quantity,
				Tunch:     item.Tunch,
				Status:    StatusPending,
				CartID:    c.CartID,
			}
			if err := tx.Create(&e).Error; err != nil {
				return fmt.Errorf("failed to create enquiry: %w", err)
			}
			created = append(created, e)
		}

		// Clear silently: the submission response is the feedback
		return s.cartService.ClearCartTx(tx, userID)
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}

// ListForUser returns the caller's enquiries grouped by originating batch,
// optionally narrowed by a search term and a status filter. The derived
// "mixed" status is accepted here: it filters on the group's overall status.
func (s *Service) ListForUser(userID uint, search string, status Status) ([]Group, error) {
	if status != "" && status != StatusMixed && !IsValidStatus(status) {
		return nil, fmt.Errorf("invalid status filter %q", status)
	}

	var enquiries []Enquiry
	err := s.db.Preload("Product").Preload("Product.Images").Preload("Size").
		Where("user_id = ?", userID).
		Order("created_at DESC, id ASC").
		Find(&enquiries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve enquiries: %w", err)
	}

	groups := GroupEnquiries(enquiries)
	return FilterGroups(groups, search, status), nil
}

// Get returns a single enquiry owned by the given user
func (s *Service) Get(userID, enquiryID uint) (*Enquiry, error) {
	var e Enquiry
	err := s.db.Preload("Product").Preload("Size").
		Where("id = ? AND user_id = ?", enquiryID, userID).
		First(&e).Error
	if err != nil {
		return nil, fmt.Errorf("enquiry not found")
	}
	return &e, nil
}

// Cancel lets a user cancel their own pending enquiry
func (s *Service) Cancel(userID, enquiryID uint) (*Enquiry, error) {
	var e Enquiry
	if err := s.db.Where("id = ? AND user_id = ?", enquiryID, userID).First(&e).Error; err != nil {
		return nil, fmt.Errorf("enquiry not found")
	}

	if !e.CanBeCancelled() {
		return nil, fmt.Errorf("enquiry with status %s cannot be cancelled", e.Status)
	}

	if err := s.db.Model(&e).Update("status", StatusCancelled).Error; err != nil {
		return nil, fmt.Errorf("failed to cancel enquiry: %w", err)
	}
	e.Status = StatusCancelled

	s.notify(&e)

	return &e, nil
}

// AdminListRequest represents admin enquiry list query parameters
type AdminListRequest struct {
	Page      int    `form:"page,default=1"`
	Limit     int    `form:"limit,default=20"`
	Search    string `form:"search"`
	Status    string `form:"status"`
	UserID    uint   `form:"user_id"`
	ProductID uint   `form:"product_id"`
	SortBy    string `form:"sort_by,default=created_at"`
	SortOrder string `form:"sort_order,default=desc"`
}

// AdminListResponse represents the admin enquiry listing with pagination
type AdminListResponse struct {
	Enquiries  []Enquiry `json:"enquiries"`
	Total      int64     `json:"total"`
	Page       int       `json:"page"`
	Limit      int       `json:"limit"`
	TotalPages int       `json:"total_pages"`
}

// AdminList retrieves enquiries across all users with filtering and pagination
func (s *Service) AdminList(req *AdminListRequest) (*AdminListResponse, error) {
	var enquiries []Enquiry
	var total int64

	query := s.db.Model(&Enquiry{})

	if req.Status != "" && req.Status != "all" {
		if !IsValidStatus(Status(req.Status)) {
			return nil, fmt.Errorf("invalid status filter %q", req.Status)
		}
		query = query.Where("status = ?", req.Status)
	}
	if req.UserID != 0 {
		query = query.Where("user_id = ?", req.UserID)
	}
	if req.ProductID != 0 {
		query = query.Where("product_id = ?", req.ProductID)
	}
	if req.Search != "" {
		searchTerm := "%" + strings.ToLower(req.Search) + "%"
		query = query.Joins("JOIN products ON products.id = enquiries.product_id").
			Where("LOWER(products.name) LIKE ? OR LOWER(products.category) LIKE ?", searchTerm, searchTerm)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count enquiries: %w", err)
	}

	sortBy := req.SortBy
	switch sortBy {
	case "created_at", "status", "quantity", "updated_at":
	default:
		sortBy = "created_at"
	}
	orderClause := "enquiries." + sortBy
	if req.SortOrder == "desc" {
		orderClause += " DESC"
	} else {
		orderClause += " ASC"
	}

	page := req.Page
	if page < 1 {
		page = 1
	}
	limit := req.Limit
	if limit < 1 {
		limit = 20
	}

	err := query.Preload("Product").Preload("Size").
		Order(orderClause).
		Offset((page - 1) * limit).Limit(limit).
		Find(&enquiries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve enquiries: %w", err)
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))

	return &AdminListResponse{
		Enquiries:  enquiries,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}, nil
}

// UpdateStatus sets an enquiry's status (admin operation) and pushes the
// change to the owner's websocket room. The "mixed" sentinel is refused:
// it is derived, never stored.
func (s *Service) UpdateStatus(enquiryID uint, status Status) (*Enquiry, error) {
	if !IsValidStatus(status) {
		return nil, fmt.Errorf("invalid status %q: must be one of pending, approved, rejected, cancelled", status)
	}

	var e Enquiry
	if err := s.db.First(&e, enquiryID).Error; err != nil {
		return nil, fmt.Errorf("enquiry not found")
	}

	if err := s.db.Model(&e).Update("status", status).Error; err != nil {
		return nil, fmt.Errorf("failed to update enquiry status: %w", err)
	}
	e.Status = status

	s.notify(&e)

	return &e, nil
}

func (s *Service) notify(e *Enquiry) {
	if s.notifier == nil {
		return
	}
	s.notifier.NotifyStatusUpdate(e.UserID, StatusUpdate{
		EnquiryID: e.ID,
		Status:    e.Status,
		CartID:    e.CartID,
		UpdatedAt: time.Now().UTC(),
	})
}
