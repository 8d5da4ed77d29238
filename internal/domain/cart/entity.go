// internal/domain/cart/entity.go
package cart

import (
	"time"

	"github.com/google/uuid"
	"github.com/your-org/glowing-legacy-backend/internal/domain/product"
	"gorm.io/gorm"
)

// StoredCartItem represents a cart line stored in the database for
// authenticated users. Prices are not stored; the cart is repriced from
// the catalog on every read.
type StoredCartItem struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	ProductID  uuid.UUID      `gorm:"type:uuid;not null;index" json:"product_id"`
	Quantity   int            `gorm:"not null;default:1" json:"quantity"`
	Selections string         `gorm:"type:text" json:"selections"` // JSON variant selections
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName overrides the table name
func (StoredCartItem) TableName() string {
	return "cart_items"
}

// BeforeCreate assigns an identifier
func (i *StoredCartItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// SessionCart represents a cart session for guest users (stored in Redis)
type SessionCart struct {
	SessionID string            `json:"session_id"`
	Items     []SessionCartItem `json:"items"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
	ExpiresAt time.Time         `json:"expires_at"`
}

// SessionCartItem represents a cart line for guest users
type SessionCartItem struct {
	ProductID  uuid.UUID         `json:"product_id"`
	Quantity   int               `json:"quantity"`
	Selections map[string]string `json:"selections,omitempty"`
	AddedAt    time.Time         `json:"added_at"`
}

// CartItem is a priced line item: one product/quantity/variant
// combination with its computed subtotal.
type CartItem struct {
	Product          *product.Product  `json:"product"`
	Quantity         int               `json:"quantity"`
	SelectedVariants map[string]string `json:"selected_variants,omitempty"`
	Subtotal         float64           `json:"subtotal"`
}

// Cart is the priced aggregate. Derived fields are always recomputed in
// full from the item list, never patched incrementally.
type Cart struct {
	Items        []CartItem `json:"items"`
	Subtotal     float64    `json:"subtotal"`
	Tax          float64    `json:"tax"`
	Shipping     float64    `json:"shipping"`
	Total        float64    `json:"total"`
	Discount     *float64   `json:"discount,omitempty"`
	DiscountCode string     `json:"discount_code,omitempty"`
}

// ItemCount returns the sum of all line quantities
func (c *Cart) ItemCount() int {
	count := 0
	for _, item := range c.Items {
		count += item.Quantity
	}
	return count
}
