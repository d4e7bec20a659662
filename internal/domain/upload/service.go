// internal/domain/upload/service.go
package upload

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/divyanshus020/Project-VMC-sub000/internal/config"
)

// Service handles file upload business logic
type Service struct {
	db     *gorm.DB
	config *config.Config
	cld    *cloudinary.Cloudinary
}

// NewService creates a new upload service. The Cloudinary client is only
// initialized when the configured provider needs it.
func NewService(db *gorm.DB, cfg *config.Config) (*Service, error) {
	s := &Service{
		db:     db,
		config: cfg,
	}

	if cfg.Upload.Provider == "cloudinary" {
		cld, err := cloudinary.NewFromParams(
			cfg.External.Cloudinary.CloudName,
			cfg.External.Cloudinary.APIKey,
			cfg.External.Cloudinary.APISecret,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to init cloudinary: %w", err)
		}
		s.cld = cld
	}

	return s, nil
}

// UploadImage validates and stores a single image through the configured
// provider, recording the result
func (s *Service) UploadImage(ctx context.Context, file multipart.File, header *multipart.FileHeader, uploadedBy uint) (*UploadedFile, error) {
	if err := s.validateFile(header); err != nil {
		return nil, err
	}

	var uploaded *UploadedFile
	var err error

	switch s.config.Upload.Provider {
	case "cloudinary":
		uploaded, err = s.uploadToCloudinary(ctx, file, header)
	case "local":
		uploaded, err = s.uploadToLocal(file, header)
	default:
		return nil, fmt.Errorf("unsupported upload provider: %s", s.config.Upload.Provider)
	}
	if err != nil {
		return nil, err
	}

	uploaded.UploadedBy = uploadedBy
	uploaded.MimeType = mimeTypeForExtension(header.Filename)
	uploaded.Size = header.Size

	if err := s.db.Create(uploaded).Error; err != nil {
		return nil, fmt.Errorf("failed to save file info: %w", err)
	}

	return uploaded, nil
}

// UploadImages uploads multiple images, collecting per-file failures instead
// of aborting the whole batch
func (s *Service) UploadImages(ctx context.Context, headers []*multipart.FileHeader, uploadedBy uint) ([]UploadedFile, []string) {
	var uploaded []UploadedFile
	var failures []string

	for _, header := range headers {
		file, err := header.Open()
		if err != nil {
			failures = append(failures, fmt.Sprintf("%s: %v", header.Filename, err))
			continue
		}

		result, err := s.UploadImage(ctx, file, header, uploadedBy)
		file.Close()
		if err != nil {
			failures = append(failures, fmt.Sprintf("%s: %v", header.Filename, err))
			continue
		}

		uploaded = append(uploaded, *result)
	}

	return uploaded, failures
}

// Delete removes an uploaded file from the provider and the database
func (s *Service) Delete(ctx context.Context, fileID uint) error {
	var f UploadedFile
	if err := s.db.First(&f, fileID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fmt.Errorf("file not found")
		}
		return fmt.Errorf("failed to load file: %w", err)
	}

	switch f.Provider {
	case "cloudinary":
		if s.cld != nil && f.PublicID != "" {
			if _, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: f.PublicID}); err != nil {
				return fmt.Errorf("failed to delete from cloudinary: %w", err)
			}
		}
	case "local":
		fullPath := filepath.Join(s.config.Upload.LocalPath, f.FileName)
		if err := os.Remove(fullPath); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to delete local file: %w", err)
		}
	}

	if err := s.db.Delete(&f).Error; err != nil {
		return fmt.Errorf("failed to delete file record: %w", err)
	}

	return nil
}

func (s *Service) uploadToCloudinary(ctx context.Context, file multipart.File, header *multipart.FileHeader) (*UploadedFile, error) {
	result, err := s.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder: s.config.External.Cloudinary.Folder,
	})
	if err != nil {
		return nil, fmt.Errorf("cloudinary upload failed: %w", err)
	}

	return &UploadedFile{
		FileName: header.Filename,
		URL:      result.SecureURL,
		PublicID: result.PublicID,
		Provider: "cloudinary",
	}, nil
}

func (s *Service) uploadToLocal(file multipart.File, header *multipart.FileHeader) (*UploadedFile, error) {
	filename := uuid.New().String() + strings.ToLower(filepath.Ext(header.Filename))
	fullPath := filepath.Join(s.config.Upload.LocalPath, filename)

	if err := os.MkdirAll(s.config.Upload.LocalPath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}

	dst, err := os.Create(fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		os.Remove(fullPath)
		return nil, fmt.Errorf("failed to save file: %w", err)
	}

	return &UploadedFile{
		FileName: filename,
		URL:      "/uploads/" + filename,
		Provider: "local",
	}, nil
}

func (s *Service) validateFile(header *multipart.FileHeader) error {
	if header.Size > s.config.Upload.MaxSize {
		return fmt.Errorf("file exceeds the maximum size of %d bytes", s.config.Upload.MaxSize)
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(header.Filename), "."))
	if !IsAllowedExtension(ext, s.config.Upload.AllowedExtensions) {
		return fmt.Errorf("file type .%s is not allowed", ext)
	}

	return nil
}

// IsAllowedExtension reports whether ext appears in the allowed list
func IsAllowedExtension(ext string, allowed []string) bool {
	for _, a := range allowed {
		if strings.EqualFold(a, ext) {
			return true
		}
	}
	return false
}

func mimeTypeForExtension(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	default:
		return "application/octet-stream"
	}
}
