// internal/domain/product/service.go
package product

import (
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/divyanshus020/Project-VMC-sub000/internal/config"
)

// Service handles product business logic
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new product service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// ListRequest represents product list query parameters
type ListRequest struct {
	Page      int    `form:"page,default=1"`
	Limit     int    `form:"limit,default=20"`
	Search    string `form:"search"`
	Category  string `form:"category"`
	SortBy    string `form:"sort_by,default=created_at"`
	SortOrder string `form:"sort_order,default=desc"`
	// IncludeInactive is honored only on admin listings
	IncludeInactive bool `form:"include_inactive"`
}

// ListResponse represents a product listing with pagination
type ListResponse struct {
	Products   []Product `json:"products"`
	Total      int64     `json:"total"`
	Page       int       `json:"page"`
	Limit      int       `json:"limit"`
	TotalPages int       `json:"total_pages"`
}

// CreateProductRequest represents product creation data
type CreateProductRequest struct {
	Name        string   `json:"name" binding:"required"`
	Category    string   `json:"category" binding:"required"`
	DieNo       string   `json:"die_no"`
	Description string   `json:"description"`
	Weight      float64  `json:"weight" binding:"omitempty,gt=0"`
	Tunch       string   `json:"tunch"`
	ImageURLs   []string `json:"image_urls"`
}

// UpdateProductRequest represents product update data
type UpdateProductRequest struct {
	Name        *string  `json:"name"`
	Category    *string  `json:"category"`
	DieNo       *string  `json:"die_no"`
	Description *string  `json:"description"`
	Weight      *float64 `json:"weight" binding:"omitempty,gt=0"`
	Tunch       *string  `json:"tunch"`
	IsActive    *bool    `json:"is_active"`
}

// List retrieves products with filtering and pagination. Non-admin callers
// only ever see active products.
func (s *Service) List(req *ListRequest, isAdmin bool) (*ListResponse, error) {
	var products []Product
	var total int64

	query := s.db.Model(&Product{})

	if !isAdmin || !req.IncludeInactive {
		query = query.Where("is_active = ?", true)
	}

	if req.Search != "" {
		searchTerm := "%" + strings.ToLower(req.Search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(category) LIKE ? OR LOWER(die_no) LIKE ?",
			searchTerm, searchTerm, searchTerm)
	}

	if req.Category != "" {
		query = query.Where("category = ?", req.Category)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}

	sortBy := req.SortBy
	switch sortBy {
	case "name", "category", "created_at", "weight":
	default:
		sortBy = "created_at"
	}
	orderClause := sortBy
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

	err := query.Preload("Images").
		Order(orderClause).
		Offset((page - 1) * limit).Limit(limit).
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve products: %w", err)
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))

	return &ListResponse{
		Products:   products,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}, nil
}

// Get returns a single product by ID
func (s *Service) Get(productID uint, isAdmin bool) (*Product, error) {
	var prod Product
	query := s.db.Preload("Images")
	if !isAdmin {
		query = query.Where("is_active = ?", true)
	}
	if err := query.First(&prod, productID).Error; err != nil {
		return nil, fmt.Errorf("product not found")
	}
	return &prod, nil
}

// Categories returns the distinct active product categories
func (s *Service) Categories() ([]string, error) {
	var categories []string
	err := s.db.Model(&Product{}).
		Where("is_active = ?", true).
		Distinct("category").
		Order("category ASC").
		Pluck("category", &categories).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve categories: %w", err)
	}
	return categories, nil
}

// Create adds a new product with its images
func (s *Service) Create(req *CreateProductRequest) (*Product, error) {
	prod := Product{
		Name:        strings.TrimSpace(req.Name),
		Category:    strings.TrimSpace(req.Category),
		DieNo:       strings.TrimSpace(req.DieNo),
		Description: req.Description,
		Weight:      req.Weight,
		Tunch:       req.Tunch,
		IsActive:    true,
	}

	if prod.Name == "" {
		return nil, fmt.Errorf("product name is required")
	}
	if prod.Category == "" {
		return nil, fmt.Errorf("product category is required")
	}

	for i, url := range req.ImageURLs {
		prod.Images = append(prod.Images, ProductImage{
			URL:       url,
			SortOrder: i,
			IsPrimary: i == 0,
		})
	}

	if err := s.db.Create(&prod).Error; err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	return &prod, nil
}

// Update modifies an existing product
func (s *Service) Update(productID uint, req *UpdateProductRequest) (*Product, error) {
	var prod Product
	if err := s.db.First(&prod, productID).Error; err != nil {
		return nil, fmt.Errorf("product not found")
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, fmt.Errorf("product name cannot be empty")
		}
		updates["name"] = name
	}
	if req.Category != nil {
		updates["category"] = strings.TrimSpace(*req.Category)
	}
	if req.DieNo != nil {
		updates["die_no"] = strings.TrimSpace(*req.DieNo)
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Weight != nil {
		updates["weight"] = *req.Weight
	}
	if req.Tunch != nil {
		updates["tunch"] = *req.Tunch
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	if len(updates) == 0 {
		return &prod, nil
	}

	if err := s.db.Model(&prod).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	return s.Get(productID, true)
}

// Delete soft-deletes a product and its images
func (s *Service) Delete(productID uint) error {
	result := s.db.Delete(&Product{}, productID)
	if result.Error != nil {
		return fmt.Errorf("failed to delete product: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("product not found")
	}
	return nil
}

// AddImage attaches an uploaded image to a product
func (s *Service) AddImage(productID uint, url, altText string, isPrimary bool) (*ProductImage, error) {
	var prod Product
	if err := s.db.First(&prod, productID).Error; err != nil {
		return nil, fmt.Errorf("product not found")
	}

	if isPrimary {
		// Demote the current primary
		s.db.Model(&ProductImage{}).
			Where("product_id = ? AND is_primary = ?", productID, true).
			Update("is_primary", false)
	}

	img := ProductImage{
		ProductID: productID,
		URL:       url,
		AltText:   altText,
		IsPrimary: isPrimary,
	}
	if err := s.db.Create(&img).Error; err != nil {
		return nil, fmt.Errorf("failed to attach image: %w", err)
	}

	return &img, nil
}
