// internal/domain/product/entity.go
package product

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category classifies a product in the gift catalog
type Category string

const (
	CategoryKeepsake Category = "keepsake"
	CategoryMemorial Category = "memorial"
	CategoryJewelry  Category = "jewelry"
	CategoryPackage  Category = "package"
	CategoryDigital  Category = "digital"
)

// IsValid reports whether the category is one of the known values
func (c Category) IsValid() bool {
	switch c {
	case CategoryKeepsake, CategoryMemorial, CategoryJewelry, CategoryPackage, CategoryDigital:
		return true
	}
	return false
}

// Product represents a catalog product. The catalog is owned by an
// external product-management collaborator; this service treats
// products as read-only input.
type Product struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Slug          string         `gorm:"uniqueIndex;not null;size:255" json:"slug"`
	Name          string         `gorm:"not null;size:255" json:"name"`
	Description   string         `gorm:"type:text" json:"description"`
	Category      Category       `gorm:"not null;size:20;index" json:"category"`
	BasePrice     float64        `gorm:"not null" json:"base_price"` // USD
	StockQuantity int            `gorm:"not null;default:0" json:"stock_quantity"`
	Tags          string         `gorm:"size:500" json:"tags"` // Comma-separated tags
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Images   []ProductImage   `gorm:"foreignKey:ProductID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"images,omitempty"`
	Variants []ProductVariant `gorm:"foreignKey:ProductID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"variants,omitempty"`
}

// ProductImage represents an ordered product image reference
type ProductImage struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id"`
	URL       string    `gorm:"not null;size:500" json:"url"`
	AltText   string    `gorm:"size:255" json:"alt_text"`
	SortOrder int       `gorm:"default:0" json:"sort_order"`
	CreatedAt time.Time `json:"created_at"`
}

// ProductVariant represents a named option dimension (e.g. color)
type ProductVariant struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null;index" json:"product_id"`
	Name      string          `gorm:"not null;size:100" json:"name"`
	CreatedAt time.Time       `json:"created_at"`
	Options   []VariantOption `gorm:"foreignKey:VariantID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"options,omitempty"`
}

// VariantOption represents one selectable option within a variant
// dimension. PriceModifier is a declared extension point: it is stored
// but not yet applied by cart pricing.
type VariantOption struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	VariantID     uuid.UUID `gorm:"type:uuid;not null;index" json:"variant_id"`
	Value         string    `gorm:"not null;size:100" json:"value"`
	PriceModifier float64   `gorm:"default:0" json:"price_modifier"`
	StockQuantity int       `gorm:"not null;default:0" json:"stock_quantity"`
}

// TableName overrides
func (Product) TableName() string        { return "products" }
func (ProductImage) TableName() string   { return "product_images" }
func (ProductVariant) TableName() string { return "product_variants" }
func (VariantOption) TableName() string  { return "variant_options" }

// BeforeCreate assigns identifiers
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

func (i *ProductImage) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

func (v *ProductVariant) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}

func (o *VariantOption) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// Business methods for Product

func (p *Product) IsInStock() bool {
	return p.StockQuantity > 0
}

// TagList returns the tags as a slice
func (p *Product) TagList() []string {
	if p.Tags == "" {
		return nil
	}
	parts := strings.Split(p.Tags, ",")
	tags := make([]string, 0, len(parts))
	for _, part := range parts {
		if tag := strings.TrimSpace(part); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// HasTag reports whether the product carries the given display tag
func (p *Product) HasTag(tag string) bool {
	for _, t := range p.TagList() {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

// PrimaryImageURL returns the first image by sort order, or ""
func (p *Product) PrimaryImageURL() string {
	if len(p.Images) == 0 {
		return ""
	}
	primary := p.Images[0]
	for _, img := range p.Images[1:] {
		if img.SortOrder < primary.SortOrder {
			primary = img
		}
	}
	return primary.URL
}
