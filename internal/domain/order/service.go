// internal/domain/order/service.go
package order

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/your-org/glowing-legacy-backend/internal/config"
	"github.com/your-org/glowing-legacy-backend/internal/domain/cart"
)

var (
	// ErrOrderNotFound indicates the order does not exist or belongs to
	// another user
	ErrOrderNotFound = errors.New("order not found")
	// ErrEmptyCart indicates an attempt to place an order from an empty
	// cart
	ErrEmptyCart = errors.New("cart is empty")
	// ErrOrderNotCancellable indicates the order has progressed past
	// the point of cancellation
	ErrOrderNotCancellable = errors.New("order can no longer be cancelled")
)

// CartProvider supplies the repriced cart an order is created from
type CartProvider interface {
	GetCart(ctx context.Context, userID *uuid.UUID, sessionID string) (*cart.CartResponse, error)
	ClearCart(ctx context.Context, userID *uuid.UUID, sessionID string) error
}

// Service handles order placement and lifecycle
type Service struct {
	db     *gorm.DB
	carts  CartProvider
	config *config.Config

	// newOrderNumber is swapped out in tests to force collisions
	newOrderNumber func() string
}

// NewService creates a new order service
func NewService(db *gorm.DB, carts CartProvider, cfg *config.Config) *Service {
	return &Service{
		db:             db,
		carts:          carts,
		config:         cfg,
		newOrderNumber: GenerateOrderNumber,
	}
}

// CreateOrderRequest represents a request to place an order from the
// user's current cart
type CreateOrderRequest struct {
	Email            string   `json:"email" binding:"required,email"`
	ShippingAddress  Address  `json:"shipping_address" binding:"required"`
	BillingAddress   *Address `json:"billing_address"`
	ShippingCost     float64  `json:"shipping_cost" binding:"min=0"`
	PaymentReference string   `json:"payment_reference"`
	Notes            string   `json:"notes"`
}

// CreateOrder places an order from the user's cart. The cart is
// repriced from the catalog at creation time, line items are frozen
// into snapshots and the cart is cleared on success.
func (s *Service) CreateOrder(ctx context.Context, userID uuid.UUID, req *CreateOrderRequest) (*Order, error) {
	current, err := s.carts.GetCart(ctx, &userID, "")
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	if len(current.Items) == 0 {
		return nil, ErrEmptyCart
	}

	totals := cart.ComputeCartTotals(current.Items, req.ShippingCost)

	order := &Order{
		OrderNumber:      s.newOrderNumber(),
		UserID:           userID,
		Email:            req.Email,
		Status:           OrderStatusPending,
		Subtotal:         totals.Subtotal,
		Tax:              totals.Tax,
		Shipping:         totals.Shipping,
		Total:            totals.Total,
		ShippingAddress:  req.ShippingAddress,
		BillingAddress:   req.BillingAddress,
		PaymentReference: req.PaymentReference,
		Notes:            req.Notes,
	}

	for _, item := range totals.Items {
		unitPrice := item.Subtotal / float64(item.Quantity)
		order.Items = append(order.Items, OrderItem{
			ProductID:      item.Product.ID,
			ProductName:    item.Product.Name,
			VariantDetails: formatVariantDetails(item.SelectedVariants),
			Quantity:       item.Quantity,
			UnitPrice:      unitPrice,
			Subtotal:       item.Subtotal,
		})
	}

	// Retry on the rare order-number collision. Each attempt gets its
	// own transaction: a unique violation aborts the transaction on
	// Postgres, so any retry inside it would fail unconditionally.
	for attempt := 0; ; attempt++ {
		err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			return tx.Create(order).Error
		})
		if err == nil {
			break
		}
		if attempt == 2 {
			return nil, fmt.Errorf("failed to create order: %w", err)
		}
		order.OrderNumber = s.newOrderNumber()
	}

	if err := s.carts.ClearCart(ctx, &userID, ""); err != nil {
		logrus.WithError(err).WithField("order_number", order.OrderNumber).
			Warn("Order placed but cart could not be cleared")
	}

	logrus.WithFields(logrus.Fields{
		"order_number": order.OrderNumber,
		"user_id":      userID,
		"total":        order.Total,
	}).Info("Order placed")

	return order, nil
}

// GetOrders returns the user's orders, newest first
func (s *Service) GetOrders(ctx context.Context, userID uuid.UUID) ([]Order, error) {
	var orders []Order
	err := s.db.WithContext(ctx).
		Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// GetOrder returns one of the user's orders by ID
func (s *Service) GetOrder(ctx context.Context, userID, orderID uuid.UUID) (*Order, error) {
	var order Order
	err := s.db.WithContext(ctx).
		Preload("Items").
		Where("id = ? AND user_id = ?", orderID, userID).
		First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return &order, nil
}

// GetOrderByNumber returns one of the user's orders by order number
func (s *Service) GetOrderByNumber(ctx context.Context, userID uuid.UUID, orderNumber string) (*Order, error) {
	var order Order
	err := s.db.WithContext(ctx).
		Preload("Items").
		Where("order_number = ? AND user_id = ?", orderNumber, userID).
		First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return &order, nil
}

// CancelOrder cancels one of the user's orders while it is still
// pending or processing
func (s *Service) CancelOrder(ctx context.Context, userID, orderID uuid.UUID) (*Order, error) {
	order, err := s.GetOrder(ctx, userID, orderID)
	if err != nil {
		return nil, err
	}

	if !order.CanBeCancelled() {
		return nil, ErrOrderNotCancellable
	}

	order.Status = OrderStatusCancelled
	if err := s.db.WithContext(ctx).Save(order).Error; err != nil {
		return nil, fmt.Errorf("failed to cancel order: %w", err)
	}

	logrus.WithField("order_number", order.OrderNumber).Info("Order cancelled")
	return order, nil
}

// MarkShipped transitions an order to shipped and records the tracking
// number
func (s *Service) MarkShipped(ctx context.Context, orderID uuid.UUID, trackingNumber string) error {
	now := time.Now()
	result := s.db.WithContext(ctx).Model(&Order{}).
		Where("id = ? AND status IN ?", orderID, []OrderStatus{OrderStatusPending, OrderStatusProcessing}).
		Updates(map[string]interface{}{
			"status":          OrderStatusShipped,
			"tracking_number": trackingNumber,
			"shipped_at":      &now,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to mark order shipped: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrOrderNotFound
	}
	return nil
}

// formatVariantDetails flattens variant selections into a stable,
// human-readable snapshot string
func formatVariantDetails(selections map[string]string) string {
	if len(selections) == 0 {
		return ""
	}
	keys := make([]string, 0, len(selections))
	for k := range selections {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, selections[k]))
	}
	return strings.Join(parts, ", ")
}
