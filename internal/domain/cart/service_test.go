package cart

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/glowing-legacy-backend/internal/config"
	"github.com/your-org/glowing-legacy-backend/internal/domain/product"
	"github.com/your-org/glowing-legacy-backend/internal/pkg/money"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupCartTestDB(t *testing.T) *gorm.DB {
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
		&StoredCartItem{},
	))

	return db
}

func seedProduct(t *testing.T, db *gorm.DB, price float64, stock int) *product.Product {
	t.Helper()

	prod := &product.Product{
		ID:            uuid.New(),
		Slug:          uuid.NewString(),
		Name:          "Starlight Keepsake Box",
		Category:      product.CategoryKeepsake,
		BasePrice:     price,
		StockQuantity: stock,
	}
	require.NoError(t, db.Create(prod).Error)
	return prod
}

func newTestService(db *gorm.DB) *Service {
	return NewService(db, nil, &config.Config{})
}

func TestAddToCartAndGetCart(t *testing.T) {
	db := setupCartTestDB(t)
	svc := newTestService(db)
	userID := uuid.New()
	prod := seedProduct(t, db, 49.99, 10)

	resp, err := svc.AddToCart(context.Background(), &userID, "", &AddToCartRequest{
		ProductID: prod.ID,
		Quantity:  2,
	})
	require.NoError(t, err)

	require.Len(t, resp.Items, 1)
	assert.InDelta(t, 99.98, resp.Items[0].Subtotal, 1e-9)
	assert.InDelta(t, 99.98, resp.Subtotal, 1e-9)
	assert.InDelta(t, money.Round2(99.98*TaxRate), resp.Tax, 1e-9)
	assert.InDelta(t, resp.Subtotal+resp.Tax, resp.Total, 1e-9)
	assert.Equal(t, 2, resp.ItemCount())
}

func TestAddToCartMergesSameSelection(t *testing.T) {
	db := setupCartTestDB(t)
	svc := newTestService(db)
	userID := uuid.New()
	prod := seedProduct(t, db, 20, 10)

	selections := map[string]string{"color": "silver"}
	_, err := svc.AddToCart(context.Background(), &userID, "", &AddToCartRequest{
		ProductID: prod.ID, Quantity: 1, Selections: selections,
	})
	require.NoError(t, err)

	resp, err := svc.AddToCart(context.Background(), &userID, "", &AddToCartRequest{
		ProductID: prod.ID, Quantity: 2, Selections: selections,
	})
	require.NoError(t, err)

	require.Len(t, resp.Items, 1)
	assert.Equal(t, 3, resp.Items[0].Quantity)
	assert.InDelta(t, 60.0, resp.Items[0].Subtotal, 1e-9)
}

func TestAddToCartSeparateLinesPerSelection(t *testing.T) {
	db := setupCartTestDB(t)
	svc := newTestService(db)
	userID := uuid.New()
	prod := seedProduct(t, db, 20, 10)

	_, err := svc.AddToCart(context.Background(), &userID, "", &AddToCartRequest{
		ProductID: prod.ID, Quantity: 1, Selections: map[string]string{"color": "silver"},
	})
	require.NoError(t, err)

	resp, err := svc.AddToCart(context.Background(), &userID, "", &AddToCartRequest{
		ProductID: prod.ID, Quantity: 1, Selections: map[string]string{"color": "gold"},
	})
	require.NoError(t, err)

	assert.Len(t, resp.Items, 2)
}

func TestAddToCartStockCeiling(t *testing.T) {
	db := setupCartTestDB(t)
	svc := newTestService(db)
	userID := uuid.New()
	prod := seedProduct(t, db, 20, 3)

	_, err := svc.AddToCart(context.Background(), &userID, "", &AddToCartRequest{
		ProductID: prod.ID, Quantity: 4,
	})
	assert.Error(t, err)

	// Merging past the ceiling is also rejected, and the cart is unchanged.
	_, err = svc.AddToCart(context.Background(), &userID, "", &AddToCartRequest{
		ProductID: prod.ID, Quantity: 2,
	})
	require.NoError(t, err)
	_, err = svc.AddToCart(context.Background(), &userID, "", &AddToCartRequest{
		ProductID: prod.ID, Quantity: 2,
	})
	assert.Error(t, err)

	resp, err := svc.GetCart(context.Background(), &userID, "")
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, 2, resp.Items[0].Quantity)
}

func TestUpdateCartItem(t *testing.T) {
	db := setupCartTestDB(t)
	svc := newTestService(db)
	userID := uuid.New()
	prod := seedProduct(t, db, 15.5, 10)

	_, err := svc.AddToCart(context.Background(), &userID, "", &AddToCartRequest{
		ProductID: prod.ID, Quantity: 1,
	})
	require.NoError(t, err)

	resp, err := svc.UpdateCartItem(context.Background(), &userID, "", prod.ID, &UpdateCartItemRequest{Quantity: 4})
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, 4, resp.Items[0].Quantity)
	assert.InDelta(t, 62.0, resp.Items[0].Subtotal, 1e-9)

	// Quantity zero removes the line.
	resp, err = svc.UpdateCartItem(context.Background(), &userID, "", prod.ID, &UpdateCartItemRequest{Quantity: 0})
	require.NoError(t, err)
	assert.Empty(t, resp.Items)
	assert.Zero(t, resp.Total)
}

func TestRemoveFromCart(t *testing.T) {
	db := setupCartTestDB(t)
	svc := newTestService(db)
	userID := uuid.New()
	first := seedProduct(t, db, 10, 5)
	second := seedProduct(t, db, 25, 5)

	for _, p := range []*product.Product{first, second} {
		_, err := svc.AddToCart(context.Background(), &userID, "", &AddToCartRequest{
			ProductID: p.ID, Quantity: 1,
		})
		require.NoError(t, err)
	}

	resp, err := svc.RemoveFromCart(context.Background(), &userID, "", first.ID)
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, second.ID, resp.Items[0].Product.ID)
	assert.InDelta(t, 25.0, resp.Subtotal, 1e-9)
}

func TestClearCart(t *testing.T) {
	db := setupCartTestDB(t)
	svc := newTestService(db)
	userID := uuid.New()
	prod := seedProduct(t, db, 10, 5)

	_, err := svc.AddToCart(context.Background(), &userID, "", &AddToCartRequest{
		ProductID: prod.ID, Quantity: 2,
	})
	require.NoError(t, err)

	require.NoError(t, svc.ClearCart(context.Background(), &userID, ""))

	count, err := svc.GetCartItemCount(context.Background(), &userID, "")
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestGetCartItemCountReportsStorageFailure(t *testing.T) {
	// A database without the cart schema: counting must surface the
	// failure instead of reporting an empty cart.
	db, err := gorm.Open(sqlite.Open("file:cart_count_broken?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	svc := newTestService(db)
	userID := uuid.New()

	_, err = svc.GetCartItemCount(context.Background(), &userID, "")
	assert.Error(t, err)
}

func TestGetCartSkipsVanishedProducts(t *testing.T) {
	db := setupCartTestDB(t)
	svc := newTestService(db)
	userID := uuid.New()
	prod := seedProduct(t, db, 10, 5)

	_, err := svc.AddToCart(context.Background(), &userID, "", &AddToCartRequest{
		ProductID: prod.ID, Quantity: 1,
	})
	require.NoError(t, err)

	require.NoError(t, db.Delete(&product.Product{}, "id = ?", prod.ID).Error)

	resp, err := svc.GetCart(context.Background(), &userID, "")
	require.NoError(t, err)
	assert.Empty(t, resp.Items)
	assert.Zero(t, resp.Total)
}
