// internal/domain/size/service.go
package size

import (
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/divyanshus020/Project-VMC-sub000/internal/config"
)

// Service handles size business logic
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new size service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// CreateSizeRequest represents size creation data
type CreateSizeRequest struct {
	DieNo     string  `json:"die_no" binding:"required"`
	Diameter  float64 `json:"diameter" binding:"required,gt=0"`
	BallGauge float64 `json:"ball_gauge" binding:"required,gt=0"`
	WireGauge float64 `json:"wire_gauge" binding:"required,gt=0"`
	Weight    float64 `json:"weight" binding:"omitempty,gt=0"`
}

// UpdateSizeRequest represents size update data
type UpdateSizeRequest struct {
	DieNo     *string  `json:"die_no"`
	Diameter  *float64 `json:"diameter" binding:"omitempty,gt=0"`
	BallGauge *float64 `json:"ball_gauge" binding:"omitempty,gt=0"`
	WireGauge *float64 `json:"wire_gauge" binding:"omitempty,gt=0"`
	Weight    *float64 `json:"weight" binding:"omitempty,gt=0"`
}

// List returns all sizes ordered by die number
func (s *Service) List() ([]Size, error) {
	var sizes []Size
	if err := s.db.Order("die_no ASC").Find(&sizes).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve sizes: %w", err)
	}
	return sizes, nil
}

// Get returns a single size by ID
func (s *Service) Get(sizeID uint) (*Size, error) {
	var size Size
	if err := s.db.First(&size, sizeID).Error; err != nil {
		return nil, fmt.Errorf("size not found")
	}
	return &size, nil
}

// Create adds a new size
func (s *Service) Create(req *CreateSizeRequest) (*Size, error) {
	dieNo := strings.TrimSpace(req.DieNo)
	if dieNo == "" {
		return nil, fmt.Errorf("die number is required")
	}

	var existing Size
	if err := s.db.Where("die_no = ?", dieNo).First(&existing).Error; err == nil {
		return nil, fmt.Errorf("size with die number %s already exists", dieNo)
	}

	size := Size{
		DieNo:     dieNo,
		Diameter:  req.Diameter,
		BallGauge: req.BallGauge,
		WireGauge: req.WireGauge,
		Weight:    req.Weight,
	}

	if err := s.db.Create(&size).Error; err != nil {
		return nil, fmt.Errorf("failed to create size: %w", err)
	}

	return &size, nil
}

// Update modifies an existing size
func (s *Service) Update(sizeID uint, req *UpdateSizeRequest) (*Size, error) {
	var size Size
	if err := s.db.First(&size, sizeID).Error; err != nil {
		return nil, fmt.Errorf("size not found")
	}

	updates := map[string]interface{}{}
	if req.DieNo != nil {
		dieNo := strings.TrimSpace(*req.DieNo)
		if dieNo == "" {
			return nil, fmt.Errorf("die number cannot be empty")
		}
		updates["die_no"] = dieNo
	}
	if req.Diameter != nil {
		updates["diameter"] = *req.Diameter
	}
	if req.BallGauge != nil {
		updates["ball_gauge"] = *req.BallGauge
	}
	if req.WireGauge != nil {
		updates["wire_gauge"] = *req.WireGauge
	}
	if req.Weight != nil {
		updates["weight"] = *req.Weight
	}

	if len(updates) == 0 {
		return &size, nil
	}

	if err := s.db.Model(&size).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update size: %w", err)
	}

	return &size, nil
}

// Delete soft-deletes a size
func (s *Service) Delete(sizeID uint) error {
	result := s.db.Delete(&Size{}, sizeID)
	if result.Error != nil {
		return fmt.Errorf("failed to delete size: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("size not found")
	}
	return nil
}
