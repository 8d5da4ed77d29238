package order

import (
	"context"
	"regexp"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/your-org/glowing-legacy-backend/internal/config"
	"github.com/your-org/glowing-legacy-backend/internal/domain/cart"
	"github.com/your-org/glowing-legacy-backend/internal/domain/product"
	"github.com/your-org/glowing-legacy-backend/internal/pkg/money"
)

func setupOrderTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&product.Product{},
		&product.ProductImage{},
		&product.ProductVariant{},
		&product.VariantOption{},
		&cart.StoredCartItem{},
		&Order{},
		&OrderItem{},
	))

	return db
}

func seedProduct(t *testing.T, db *gorm.DB, name string, price float64) *product.Product {
	t.Helper()

	prod := &product.Product{
		ID:            uuid.New(),
		Slug:          uuid.NewString(),
		Name:          name,
		Category:      product.CategoryKeepsake,
		BasePrice:     price,
		StockQuantity: 20,
	}
	require.NoError(t, db.Create(prod).Error)
	return prod
}

func newOrderService(db *gorm.DB) (*Service, *cart.Service) {
	cfg := &config.Config{}
	carts := cart.NewService(db, nil, cfg)
	return NewService(db, carts, cfg), carts
}

func fillCart(t *testing.T, carts *cart.Service, userID uuid.UUID, prod *product.Product, quantity int) {
	t.Helper()
	_, err := carts.AddToCart(context.Background(), &userID, "", &cart.AddToCartRequest{
		ProductID: prod.ID,
		Quantity:  quantity,
	})
	require.NoError(t, err)
}

func testAddress() Address {
	return Address{
		FirstName:    "Maya",
		LastName:     "Reyes",
		AddressLine1: "12 Candlewick Ln",
		City:         "Portland",
		State:        "OR",
		PostalCode:   "97201",
		Country:      "US",
		Phone:        "555-0100",
	}
}

func TestGenerateOrderNumberFormat(t *testing.T) {
	pattern := regexp.MustCompile(`^GL-\d{4}-\d{6}$`)
	for i := 0; i < 50; i++ {
		assert.Regexp(t, pattern, GenerateOrderNumber())
	}
}

func TestCreateOrderFromCart(t *testing.T) {
	db := setupOrderTestDB(t)
	svc, carts := newOrderService(db)
	userID := uuid.New()
	prod := seedProduct(t, db, "Starlight Keepsake Box", 49.99)
	fillCart(t, carts, userID, prod, 2)

	placed, err := svc.CreateOrder(context.Background(), userID, &CreateOrderRequest{
		Email:            "maya@example.com",
		ShippingAddress:  testAddress(),
		ShippingCost:     5.95,
		PaymentReference: "pay_abc123",
	})
	require.NoError(t, err)

	assert.Regexp(t, `^GL-\d{4}-\d{6}$`, placed.OrderNumber)
	assert.Equal(t, OrderStatusPending, placed.Status)
	require.Len(t, placed.Items, 1)
	assert.Equal(t, "Starlight Keepsake Box", placed.Items[0].ProductName)
	assert.Equal(t, 2, placed.Items[0].Quantity)
	assert.InDelta(t, 49.99, placed.Items[0].UnitPrice, 1e-9)
	assert.InDelta(t, 99.98, placed.Subtotal, 1e-9)
	assert.InDelta(t, money.Round2(99.98*cart.TaxRate), placed.Tax, 1e-9)
	assert.InDelta(t, placed.Subtotal+placed.Tax+5.95, placed.Total, 1e-9)

	// The cart is cleared after placement.
	remaining, err := carts.GetCart(context.Background(), &userID, "")
	require.NoError(t, err)
	assert.Empty(t, remaining.Items)
}

func TestCreateOrderRetriesNumberCollision(t *testing.T) {
	db := setupOrderTestDB(t)
	svc, carts := newOrderService(db)
	userID := uuid.New()
	prod := seedProduct(t, db, "Candle", 12)
	fillCart(t, carts, userID, prod, 1)

	taken := GenerateOrderNumber()
	require.NoError(t, db.Create(&Order{
		OrderNumber: taken,
		UserID:      uuid.New(),
		Email:       "other@example.com",
		Status:      OrderStatusPending,
	}).Error)

	// The first two generated numbers collide with the existing
	// order. Each attempt must run in its own transaction: on
	// Postgres a unique violation aborts the transaction, so a retry
	// inside it could never succeed.
	numbers := []string{taken, taken, "GL-2031-424242"}
	svc.newOrderNumber = func() string {
		n := numbers[0]
		if len(numbers) > 1 {
			numbers = numbers[1:]
		}
		return n
	}

	placed, err := svc.CreateOrder(context.Background(), userID, &CreateOrderRequest{
		Email:           "maya@example.com",
		ShippingAddress: testAddress(),
	})
	require.NoError(t, err)
	assert.Equal(t, "GL-2031-424242", placed.OrderNumber)
}

func TestCreateOrderEmptyCart(t *testing.T) {
	db := setupOrderTestDB(t)
	svc, _ := newOrderService(db)

	_, err := svc.CreateOrder(context.Background(), uuid.New(), &CreateOrderRequest{
		Email:           "maya@example.com",
		ShippingAddress: testAddress(),
	})
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestOrderSnapshotSurvivesPriceChange(t *testing.T) {
	db := setupOrderTestDB(t)
	svc, carts := newOrderService(db)
	userID := uuid.New()
	prod := seedProduct(t, db, "Memory Locket", 30)
	fillCart(t, carts, userID, prod, 1)

	placed, err := svc.CreateOrder(context.Background(), userID, &CreateOrderRequest{
		Email:           "maya@example.com",
		ShippingAddress: testAddress(),
	})
	require.NoError(t, err)

	require.NoError(t, db.Model(prod).Update("base_price", 99).Error)

	reloaded, err := svc.GetOrder(context.Background(), userID, placed.ID)
	require.NoError(t, err)
	assert.InDelta(t, 30.0, reloaded.Items[0].UnitPrice, 1e-9)
	assert.InDelta(t, 30.0, reloaded.Subtotal, 1e-9)
}

func TestGetOrdersScopedToUser(t *testing.T) {
	db := setupOrderTestDB(t)
	svc, carts := newOrderService(db)
	owner := uuid.New()
	stranger := uuid.New()
	prod := seedProduct(t, db, "Candle", 12)
	fillCart(t, carts, owner, prod, 1)

	placed, err := svc.CreateOrder(context.Background(), owner, &CreateOrderRequest{
		Email:           "maya@example.com",
		ShippingAddress: testAddress(),
	})
	require.NoError(t, err)

	orders, err := svc.GetOrders(context.Background(), owner)
	require.NoError(t, err)
	assert.Len(t, orders, 1)

	_, err = svc.GetOrder(context.Background(), stranger, placed.ID)
	assert.ErrorIs(t, err, ErrOrderNotFound)

	byNumber, err := svc.GetOrderByNumber(context.Background(), owner, placed.OrderNumber)
	require.NoError(t, err)
	assert.Equal(t, placed.ID, byNumber.ID)
}

func TestCancelOrder(t *testing.T) {
	db := setupOrderTestDB(t)
	svc, carts := newOrderService(db)
	userID := uuid.New()
	prod := seedProduct(t, db, "Candle", 12)
	fillCart(t, carts, userID, prod, 1)

	placed, err := svc.CreateOrder(context.Background(), userID, &CreateOrderRequest{
		Email:           "maya@example.com",
		ShippingAddress: testAddress(),
	})
	require.NoError(t, err)

	cancelled, err := svc.CancelOrder(context.Background(), userID, placed.ID)
	require.NoError(t, err)
	assert.Equal(t, OrderStatusCancelled, cancelled.Status)

	// Shipped and cancelled orders cannot be cancelled again.
	_, err = svc.CancelOrder(context.Background(), userID, placed.ID)
	assert.ErrorIs(t, err, ErrOrderNotCancellable)
}

func TestMarkShipped(t *testing.T) {
	db := setupOrderTestDB(t)
	svc, carts := newOrderService(db)
	userID := uuid.New()
	prod := seedProduct(t, db, "Candle", 12)
	fillCart(t, carts, userID, prod, 1)

	placed, err := svc.CreateOrder(context.Background(), userID, &CreateOrderRequest{
		Email:           "maya@example.com",
		ShippingAddress: testAddress(),
	})
	require.NoError(t, err)

	require.NoError(t, svc.MarkShipped(context.Background(), placed.ID, "TRACK123"))

	shipped, err := svc.GetOrder(context.Background(), userID, placed.ID)
	require.NoError(t, err)
	assert.Equal(t, OrderStatusShipped, shipped.Status)
	assert.Equal(t, "TRACK123", shipped.TrackingNumber)
	assert.NotNil(t, shipped.ShippedAt)

	_, err = svc.CancelOrder(context.Background(), userID, placed.ID)
	assert.ErrorIs(t, err, ErrOrderNotCancellable)
}

func TestFormatVariantDetails(t *testing.T) {
	assert.Empty(t, formatVariantDetails(nil))
	assert.Equal(t, "color: gold, size: large", formatVariantDetails(map[string]string{
		"size":  "large",
		"color": "gold",
	}))
}
