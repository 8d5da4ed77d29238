// internal/infrastructure/database/postgres/migration.go
package postgres

import (
	"fmt"
	"log"

	"gorm.io/gorm"

	"github.com/your-org/glowing-legacy-backend/internal/domain/cart"
	"github.com/your-org/glowing-legacy-backend/internal/domain/message"
	"github.com/your-org/glowing-legacy-backend/internal/domain/order"
	"github.com/your-org/glowing-legacy-backend/internal/domain/product"
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

	// Dependency order: catalog first, then everything that references it.
	models := []interface{}{
		&product.Product{},
		&product.ProductImage{},
		&product.ProductVariant{},
		&product.VariantOption{},

		&cart.StoredCartItem{},

		&order.Order{},
		&order.OrderItem{},

		&message.VideoMessage{},
		&message.GiftPlan{},
		&message.ScheduledDelivery{},
		&message.EmergencyContact{},
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
		// Product indexes
		"CREATE INDEX IF NOT EXISTS idx_products_category ON products(category)",
		"CREATE INDEX IF NOT EXISTS idx_products_slug ON products(slug)",
		"CREATE INDEX IF NOT EXISTS idx_products_base_price ON products(base_price)",
		"CREATE INDEX IF NOT EXISTS idx_products_created_at ON products(created_at DESC)",

		// Product image and variant indexes
		"CREATE INDEX IF NOT EXISTS idx_product_images_sort ON product_images(product_id, sort_order)",
		"CREATE INDEX IF NOT EXISTS idx_product_variants_product ON product_variants(product_id)",
		"CREATE INDEX IF NOT EXISTS idx_variant_options_variant ON variant_options(variant_id)",

		// Cart indexes
		"CREATE INDEX IF NOT EXISTS idx_cart_items_user_product ON cart_items(user_id, product_id)",
		"CREATE INDEX IF NOT EXISTS idx_cart_items_created_at ON cart_items(created_at DESC)",

		// Order indexes
		"CREATE INDEX IF NOT EXISTS idx_orders_user_status ON orders(user_id, status)",
		"CREATE INDEX IF NOT EXISTS idx_orders_order_number ON orders(order_number)",
		"CREATE INDEX IF NOT EXISTS idx_orders_created_at ON orders(created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_order_items_order ON order_items(order_id)",
		"CREATE INDEX IF NOT EXISTS idx_order_items_product ON order_items(product_id)",

		// Legacy content indexes
		"CREATE INDEX IF NOT EXISTS idx_video_messages_user_status ON video_messages(user_id, status)",
		"CREATE INDEX IF NOT EXISTS idx_gift_plans_user ON gift_plans(user_id)",
		"CREATE INDEX IF NOT EXISTS idx_scheduled_deliveries_due ON scheduled_deliveries(status, deliver_at)",
		"CREATE INDEX IF NOT EXISTS idx_scheduled_deliveries_user ON scheduled_deliveries(user_id, deliver_at)",
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_emergency_contacts_user ON emergency_contacts(user_id)",
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

	if err := m.seedCatalog(); err != nil {
		return fmt.Errorf("failed to seed catalog: %w", err)
	}

	log.Println("✅ Initial data seeded successfully")
	return nil
}

// seedCatalog creates the starter product catalog, one or two items
// per category
func (m *Migration) seedCatalog() error {
	log.Println("🕯️ Seeding product catalog...")

	catalog := []product.Product{
		{
			Slug:          "starlight-keepsake-box",
			Name:          "Starlight Keepsake Box",
			Description:   "A handcrafted walnut box with a constellation-etched lid, made to hold letters, photographs and small treasures for the people you love.",
			Category:      product.CategoryKeepsake,
			BasePrice:     89.99,
			StockQuantity: 40,
			Tags:          "keepsake,wood,handcrafted",
			Images: []product.ProductImage{
				{URL: "https://cdn.glowinglegacy.com/products/starlight-keepsake-box.jpg", AltText: "Starlight Keepsake Box", SortOrder: 1},
			},
		},
		{
			Slug:          "memory-journal-set",
			Name:          "Memory Journal Set",
			Description:   "Three linen-bound journals with guided prompts for recording family stories, recipes and life lessons.",
			Category:      product.CategoryKeepsake,
			BasePrice:     39.99,
			StockQuantity: 120,
			Tags:          "keepsake,journal,writing",
		},
		{
			Slug:          "eternal-flame-candle",
			Name:          "Eternal Flame Memorial Candle",
			Description:   "A hand-poured soy candle in an engraved glass vessel, designed to be relit on anniversaries and remembrance days.",
			Category:      product.CategoryMemorial,
			BasePrice:     34.99,
			StockQuantity: 80,
			Tags:          "memorial,candle,remembrance",
		},
		{
			Slug:          "garden-remembrance-stone",
			Name:          "Garden Remembrance Stone",
			Description:   "A weatherproof cast stone with custom engraving for gardens and quiet outdoor places.",
			Category:      product.CategoryMemorial,
			BasePrice:     64.99,
			StockQuantity: 35,
			Tags:          "memorial,garden,engraved",
		},
		{
			Slug:          "memory-locket",
			Name:          "Memory Locket",
			Description:   "A sterling silver locket that holds two photographs, with optional engraving on the back.",
			Category:      product.CategoryJewelry,
			BasePrice:     129.99,
			StockQuantity: 25,
			Tags:          "jewelry,locket,silver",
			Variants: []product.ProductVariant{
				{
					Name: "finish",
					Options: []product.VariantOption{
						{Value: "silver", StockQuantity: 15},
						{Value: "gold", PriceModifier: 40, StockQuantity: 10},
					},
				},
			},
		},
		{
			Slug:          "legacy-starter-package",
			Name:          "Legacy Starter Package",
			Description:   "Everything needed to begin: a keepsake box, a guided journal, and twelve months of message storage.",
			Category:      product.CategoryPackage,
			BasePrice:     149.99,
			StockQuantity: 50,
			Tags:          "package,starter,bundle",
		},
		{
			Slug:          "digital-legacy-vault",
			Name:          "Digital Legacy Vault",
			Description:   "Secure storage for video messages and documents, with scheduled delivery to the people you choose.",
			Category:      product.CategoryDigital,
			BasePrice:     59.99,
			StockQuantity: 9999,
			Tags:          "digital,storage,vault",
		},
	}

	for _, item := range catalog {
		var existing product.Product
		result := m.db.Where("slug = ?", item.Slug).First(&existing)
		if result.Error != nil {
			if err := m.db.Create(&item).Error; err != nil {
				return err
			}
			log.Printf("✅ Created product: %s", item.Name)
		} else {
			log.Printf("⏭️ Product already exists: %s", item.Name)
		}
	}

	return nil
}

// DropAllTables drops all tables (use with extreme caution)
func (m *Migration) DropAllTables() error {
	log.Println("⚠️ WARNING: Dropping all database tables...")

	// Reverse dependency order.
	tables := []string{
		"scheduled_deliveries",
		"emergency_contacts",
		"gift_plans",
		"video_messages",
		"order_items",
		"orders",
		"cart_items",
		"variant_options",
		"product_variants",
		"product_images",
		"products",
	}

	for _, table := range tables {
		if err := m.db.Exec(fmt.Sprintf("DROP TABLE IF EXISTS %s CASCADE", table)).Error; err != nil {
			log.Printf("⚠️ Failed to drop table %s: %v", table, err)
		} else {
			log.Printf("🗑️ Dropped table: %s", table)
		}
	}

	log.Println("✅ All tables dropped successfully")
	return nil
}

// GetTableInfo returns information about database tables
func (m *Migration) GetTableInfo() error {
	var tables []string

	if err := m.db.Raw("SELECT tablename FROM pg_tables WHERE schemaname = 'public' ORDER BY tablename").Scan(&tables).Error; err != nil {
		return err
	}

	log.Println("📊 Database Tables Information:")
	log.Println("================================")

	totalRecords := int64(0)
	for _, table := range tables {
		var count int64
		m.db.Table(table).Count(&count)
		totalRecords += count

		status := "✅"
		if count == 0 {
			status = "📭"
		}

		log.Printf("%s %-25s | %d records", status, table, count)
	}

	log.Println("================================")
	log.Printf("📈 Total records across all tables: %d", totalRecords)
	log.Printf("🗂️ Total tables: %d", len(tables))

	return nil
}
