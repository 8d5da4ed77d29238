package receipt

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/your-org/glowing-legacy-backend/internal/config"
	"github.com/your-org/glowing-legacy-backend/internal/domain/order"
)

func sampleOrder() *order.Order {
	return &order.Order{
		ID:          uuid.New(),
		OrderNumber: "GL-2026-000123",
		UserID:      uuid.New(),
		Email:       "maya@example.com",
		Status:      order.OrderStatusPending,
		Subtotal:    99.98,
		Tax:         8.0,
		Shipping:    5.95,
		Total:       113.93,
		ShippingAddress: order.Address{
			FirstName:    "Maya",
			LastName:     "Reyes",
			AddressLine1: "12 Candlewick Ln",
			City:         "Portland",
			State:        "OR",
			PostalCode:   "97201",
			Country:      "US",
		},
		CreatedAt: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
		Items: []order.OrderItem{
			{
				ProductName:    "Starlight Keepsake Box",
				VariantDetails: "color: gold",
				Quantity:       2,
				UnitPrice:      49.99,
				Subtotal:       99.98,
			},
		},
	}
}

func testService() *Service {
	return NewService(&config.Config{
		App: config.AppConfig{
			CompanyName:    "Glowing Legacy",
			CompanyEmail:   "hello@glowinglegacy.com",
			CompanyWebsite: "https://glowinglegacy.com",
		},
	})
}

func TestBuildReceiptData(t *testing.T) {
	data := testService().buildReceiptData(sampleOrder())

	assert.Equal(t, "RCT-GL-2026-000123", data.ReceiptNumber)
	assert.Equal(t, "GL-2026-000123", data.OrderNumber)
	assert.Equal(t, "August 1, 2026", data.OrderDate)
	assert.Equal(t, "$99.98", data.Subtotal)
	assert.Equal(t, "$8.00", data.Tax)
	assert.Equal(t, "$5.95", data.Shipping)
	assert.Equal(t, "$113.93", data.Total)
	assert.Empty(t, data.Discount)

	require.Len(t, data.Items, 1)
	assert.Equal(t, "Starlight Keepsake Box", data.Items[0].Name)
	assert.Equal(t, "$49.99", data.Items[0].UnitPrice)
}

func TestGenerateHTML(t *testing.T) {
	svc := testService()
	html, err := svc.generateHTML(svc.buildReceiptData(sampleOrder()))
	require.NoError(t, err)

	assert.Contains(t, html, "GL-2026-000123")
	assert.Contains(t, html, "Starlight Keepsake Box")
	assert.Contains(t, html, "color: gold")
	assert.Contains(t, html, "$113.93")
	assert.Contains(t, html, "Glowing Legacy")
	assert.NotContains(t, html, "Discount")
}
