// internal/infrastructure/database/postgres/migration.go
package postgres

import (
	"fmt"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/divyanshus020/Project-VMC-sub000/internal/domain/cart"
	"github.com/divyanshus020/Project-VMC-sub000/internal/domain/enquiry"
	"github.com/divyanshus020/Project-VMC-sub000/internal/domain/product"
	"github.com/divyanshus020/Project-VMC-sub000/internal/domain/size"
	"github.com/divyanshus020/Project-VMC-sub000/internal/domain/upload"
	"github.com/divyanshus020/Project-VMC-sub000/internal/domain/user"
)

// Migration handles database migrations
type Migration struct {
	db *gorm.DB
}

// NewMigration creates a new migration instance
func NewMigration(db *gorm.DB) *Migration {
	return &Migration{
		db: db,
	}
}

// RunAutoMigrations runs GORM auto-migrations for all models
func (m *Migration) RunAutoMigrations() error {
	log.Println("🔄 Running database auto-migrations...")

	// Dependency order: referenced tables first
	models := []interface{}{
		&user.User{},

		&product.Product{},
		&product.ProductImage{},

		&size.Size{},

		&cart.Cart{},
		&cart.CartItem{},

		&enquiry.Enquiry{},

		&upload.UploadedFile{},
	}

	for _, model := range models {
		log.Printf("Migrating model: %T", model)
		if err := m.db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate model %T: %w", model, err)
		}
	}

	log.Println("✅ Database auto-migrations completed successfully")
	return nil
}

// CreateIndexes creates additional indexes for better performance
func (m *Migration) CreateIndexes() error {
	log.Println("🔄 Creating additional database indexes...")

	indexes := []string{
		// User indexes
		"CREATE INDEX IF NOT EXISTS idx_users_phone_active ON users(phone, is_active)",
		"CREATE INDEX IF NOT EXISTS idx_users_created_at ON users(created_at DESC)",

		// Product indexes
		"CREATE INDEX IF NOT EXISTS idx_products_category_active ON products(category, is_active)",
		"CREATE INDEX IF NOT EXISTS idx_products_die_no ON products(die_no)",
		"CREATE INDEX IF NOT EXISTS idx_products_created_at ON products(created_at DESC)",

		// Product image indexes
		"CREATE INDEX IF NOT EXISTS idx_product_images_product_primary ON product_images(product_id, is_primary)",
		"CREATE INDEX IF NOT EXISTS idx_product_images_sort_order ON product_images(product_id, sort_order)",

		// Size indexes
		"CREATE INDEX IF NOT EXISTS idx_sizes_die_no ON sizes(die_no)",

		// Cart indexes
		"CREATE INDEX IF NOT EXISTS idx_cart_items_user_product ON cart_items(user_id, product_id)",
		"CREATE INDEX IF NOT EXISTS idx_carts_user ON carts(user_id)",

		// Enquiry indexes
		"CREATE INDEX IF NOT EXISTS idx_enquiries_user_status ON enquiries(user_id, status)",
		"CREATE INDEX IF NOT EXISTS idx_enquiries_status_created ON enquiries(status, created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_enquiries_cart_id ON enquiries(cart_id)",
		"CREATE INDEX IF NOT EXISTS idx_enquiries_product ON enquiries(product_id)",
	}

	successCount := 0
	failCount := 0

	for _, indexSQL := range indexes {
		if err := m.db.Exec(indexSQL).Error; err != nil {
			log.Printf("⚠️ Failed to create index: %v", err)
			failCount++
		} else {
			successCount++
		}
	}

	log.Printf("✅ Created %d indexes successfully (%d failed)", successCount, failCount)
	return nil
}

// SeedInitialData inserts initial data into the database
func (m *Migration) SeedInitialData() error {
	log.Println("🌱 Seeding initial data...")

	if err := m.seedAdminUser(); err != nil {
		return fmt.Errorf("failed to seed admin user: %w", err)
	}

	if err := m.seedSizes(); err != nil {
		return fmt.Errorf("failed to seed sizes: %w", err)
	}

	log.Println("✅ Initial data seeded successfully")
	return nil
}

// seedAdminUser creates the default administrator if none exists
func (m *Migration) seedAdminUser() error {
	var count int64
	if err := m.db.Model(&user.User{}).Where("is_admin = ?", true).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("ChangeMe@123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := user.User{
		Name:     "Administrator",
		Phone:    "0000000000",
		Email:    "admin@example.com",
		Password: string(hashed),
		IsAdmin:  true,
	}

	if err := m.db.Create(&admin).Error; err != nil {
		return err
	}

	log.Println("👤 Default admin user created (change the password)")
	return nil
}

// seedSizes inserts a starter die catalog when the table is empty
func (m *Migration) seedSizes() error {
	var count int64
	if err := m.db.Model(&size.Size{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	sizes := []size.Size{
		{DieNo: "D-101", Diameter: 2.5, BallGauge: 14, WireGauge: 20, Weight: 5.25},
		{DieNo: "D-102", Diameter: 3.0, BallGauge: 16, WireGauge: 22, Weight: 7.80},
		{DieNo: "D-103", Diameter: 3.5, BallGauge: 18, WireGauge: 24, Weight: 10.40},
	}

	for _, s := range sizes {
		if err := m.db.Create(&s).Error; err != nil {
			return err
		}
	}

	return nil
}
