// internal/domain/order/entity.go
package order

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrderStatus represents the order status
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// Order represents a placed order. Amounts are USD; line items are
// snapshots of the catalog at purchase time so later price changes
// never rewrite history.
type Order struct {
	ID          uuid.UUID   `gorm:"type:uuid;primary_key" json:"id"`
	OrderNumber string      `gorm:"uniqueIndex;not null;size:50" json:"order_number"`
	UserID      uuid.UUID   `gorm:"type:uuid;not null;index" json:"user_id"`
	Email       string      `gorm:"not null;size:255" json:"email"`
	Status      OrderStatus `gorm:"not null;default:'pending'" json:"status"`

	Subtotal float64 `gorm:"not null" json:"subtotal"`
	Tax      float64 `gorm:"not null" json:"tax"`
	Shipping float64 `gorm:"not null;default:0" json:"shipping"`
	Discount float64 `gorm:"default:0" json:"discount"`
	Total    float64 `gorm:"not null" json:"total"`

	DiscountCode string `gorm:"size:50" json:"discount_code,omitempty"`

	ShippingAddress Address  `gorm:"embedded;embeddedPrefix:shipping_" json:"shipping_address"`
	BillingAddress  *Address `gorm:"embedded;embeddedPrefix:billing_" json:"billing_address,omitempty"`

	// Identifier of the completed payment at the external provider.
	// Payment itself is handled outside this service.
	PaymentReference string `gorm:"size:255" json:"payment_reference,omitempty"`

	TrackingNumber string `gorm:"size:100" json:"tracking_number,omitempty"`
	Notes          string `gorm:"type:text" json:"notes,omitempty"`

	ShippedAt   *time.Time     `json:"shipped_at,omitempty"`
	DeliveredAt *time.Time     `json:"delivered_at,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"items"`
}

// OrderItem is the purchase-time snapshot of one cart line
type OrderItem struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	OrderID        uuid.UUID `gorm:"type:uuid;not null;index" json:"order_id"`
	ProductID      uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id"`
	ProductName    string    `gorm:"not null;size:255" json:"product_name"`
	VariantDetails string    `gorm:"size:255" json:"variant_details,omitempty"`
	Quantity       int       `gorm:"not null" json:"quantity"`
	UnitPrice      float64   `gorm:"not null" json:"unit_price"`
	Subtotal       float64   `gorm:"not null" json:"subtotal"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Address represents a shipping/billing address (embedded in Order)
type Address struct {
	FirstName    string `gorm:"size:100" json:"first_name"`
	LastName     string `gorm:"size:100" json:"last_name"`
	AddressLine1 string `gorm:"size:255" json:"address_line1"`
	AddressLine2 string `gorm:"size:255" json:"address_line2,omitempty"`
	City         string `gorm:"size:100" json:"city"`
	State        string `gorm:"size:100" json:"state"`
	PostalCode   string `gorm:"size:20" json:"postal_code"`
	Country      string `gorm:"size:2" json:"country"`
	Phone        string `gorm:"size:20" json:"phone"`
}

// TableName overrides
func (Order) TableName() string     { return "orders" }
func (OrderItem) TableName() string { return "order_items" }

// BeforeCreate hook to generate UUID
func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// BeforeCreate hook to generate UUID
func (i *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// GenerateOrderNumber produces a customer-facing order number in the
// form GL-YYYY-NNNNNN: the current year and six random digits
func GenerateOrderNumber() string {
	return fmt.Sprintf("GL-%d-%06d", time.Now().Year(), rand.Intn(1000000))
}

// CanBeCancelled checks if the order can still be cancelled
func (o *Order) CanBeCancelled() bool {
	return o.Status == OrderStatusPending || o.Status == OrderStatusProcessing
}

// IsCompleted checks if the order has reached a terminal delivered state
func (o *Order) IsCompleted() bool {
	return o.Status == OrderStatusDelivered
}

// ItemCount returns the total quantity across all line items
func (o *Order) ItemCount() int {
	count := 0
	for _, item := range o.Items {
		count += item.Quantity
	}
	return count
}
