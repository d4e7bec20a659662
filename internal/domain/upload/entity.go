// internal/domain/upload/entity.go
package upload

import (
	"time"

	"gorm.io/gorm"
)

// UploadedFile represents a stored media asset
type UploadedFile struct {
	ID         uint           `json:"id" gorm:"primaryKey"`
	FileName   string         `json:"file_name" gorm:"not null;size:255"`
	URL        string         `json:"url" gorm:"not null;size:500"`
	PublicID   string         `json:"public_id" gorm:"size:255;index"`
	Provider   string         `json:"provider" gorm:"not null;size:20"`
	MimeType   string         `json:"mime_type" gorm:"size:100"`
	Size       int64          `json:"size"`
	UploadedBy uint           `json:"uploaded_by" gorm:"index"`
	CreatedAt  time.Time      `json:"created_at"`
	DeletedAt  gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName returns the table name for UploadedFile
func (UploadedFile) TableName() string {
	return "uploaded_files"
}

// UploadResponse represents a completed upload
type UploadResponse struct {
	ID       uint   `json:"id"`
	FileName string `json:"file_name"`
	URL      string `json:"url"`
	Size     int64  `json:"size"`
}
