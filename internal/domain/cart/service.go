// internal/domain/cart/service.go
package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/your-org/glowing-legacy-backend/internal/config"
	"github.com/your-org/glowing-legacy-backend/internal/domain/product"
	"gorm.io/gorm"
)

const sessionCartTTL = 24 * time.Hour

var (
	// ErrProductNotFound indicates the referenced product is not in the
	// catalog
	ErrProductNotFound = errors.New("product not found")
	// ErrInsufficientStock indicates the requested quantity exceeds the
	// available stock
	ErrInsufficientStock = errors.New("insufficient stock")
)

// Service is the stateful cart manager. Authenticated carts live in the
// database, guest carts in Redis sessions. All pricing goes through the
// pure aggregation functions in pricing.go; the manager owns inventory
// policy (the stock ceiling) and persistence, nothing else.
type Service struct {
	db          *gorm.DB
	redisClient *redis.Client
	config      *config.Config
	pricer      UnitPricer
}

// NewService creates a new cart service
func NewService(db *gorm.DB, redisClient *redis.Client, cfg *config.Config) *Service {
	return &Service{
		db:          db,
		redisClient: redisClient,
		config:      cfg,
	}
}

// WithUnitPricer injects a variant-aware unit pricer. Used when variant
// price modifiers become a real pricing input.
func (s *Service) WithUnitPricer(pricer UnitPricer) *Service {
	s.pricer = pricer
	return s
}

// CartResponse represents a priced cart with its owner
type CartResponse struct {
	SessionID string     `json:"session_id,omitempty"`
	UserID    *uuid.UUID `json:"user_id,omitempty"`
	Cart
	UpdatedAt time.Time `json:"updated_at"`
}

// AddToCartRequest represents add to cart request
type AddToCartRequest struct {
	ProductID  uuid.UUID         `json:"product_id" binding:"required"`
	Quantity   int               `json:"quantity" binding:"required,min=1"`
	Selections map[string]string `json:"selections"`
}

// UpdateCartItemRequest represents update cart item request
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

// GetCart retrieves and prices the cart for a user or guest session
func (s *Service) GetCart(ctx context.Context, userID *uuid.UUID, sessionID string) (*CartResponse, error) {
	rawItems, updatedAt, err := s.loadRawItems(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}

	items, err := s.priceItems(rawItems)
	if err != nil {
		return nil, err
	}

	// Shipping is supplied externally at checkout; unknown here.
	priced := ComputeCartTotals(items, 0)

	return &CartResponse{
		SessionID: sessionID,
		UserID:    userID,
		Cart:      priced,
		UpdatedAt: updatedAt,
	}, nil
}

// AddToCart adds an item to the cart, merging with an existing line for
// the same product and variant selection
func (s *Service) AddToCart(ctx context.Context, userID *uuid.UUID, sessionID string, req *AddToCartRequest) (*CartResponse, error) {
	var prod product.Product
	if err := s.db.Where("id = ?", req.ProductID).First(&prod).Error; err != nil {
		return nil, ErrProductNotFound
	}

	// Reject before touching storage: pricing must succeed for the
	// requested line or the whole mutation is refused.
	if _, err := ComputeItemSubtotal(&prod, req.Quantity, req.Selections, s.pricer); err != nil {
		return nil, err
	}

	if userID != nil {
		if err := s.addToUserCart(*userID, &prod, req); err != nil {
			return nil, err
		}
	} else {
		if err := s.addToGuestCart(ctx, sessionID, &prod, req); err != nil {
			return nil, err
		}
	}

	return s.GetCart(ctx, userID, sessionID)
}

// UpdateCartItem replaces the quantity of a cart line. Quantity zero or
// below removes the line.
func (s *Service) UpdateCartItem(ctx context.Context, userID *uuid.UUID, sessionID string, productID uuid.UUID, req *UpdateCartItemRequest) (*CartResponse, error) {
	if req.Quantity > 0 {
		var prod product.Product
		if err := s.db.Where("id = ?", productID).First(&prod).Error; err != nil {
			return nil, ErrProductNotFound
		}
		if req.Quantity > prod.StockQuantity {
			return nil, fmt.Errorf("%w: available %d, requested %d", ErrInsufficientStock, prod.StockQuantity, req.Quantity)
		}
	}

	if userID != nil {
		if err := s.updateUserCartItem(*userID, productID, req.Quantity); err != nil {
			return nil, err
		}
	} else {
		if err := s.updateGuestCartItem(ctx, sessionID, productID, req.Quantity); err != nil {
			return nil, err
		}
	}

	return s.GetCart(ctx, userID, sessionID)
}

// RemoveFromCart removes a cart line entirely
func (s *Service) RemoveFromCart(ctx context.Context, userID *uuid.UUID, sessionID string, productID uuid.UUID) (*CartResponse, error) {
	return s.UpdateCartItem(ctx, userID, sessionID, productID, &UpdateCartItemRequest{Quantity: 0})
}

// ClearCart removes all items from the cart
func (s *Service) ClearCart(ctx context.Context, userID *uuid.UUID, sessionID string) error {
	if userID != nil {
		return s.db.Where("user_id = ?", *userID).Delete(&StoredCartItem{}).Error
	}
	return s.redisClient.Del(ctx, sessionCartKey(sessionID)).Err()
}

// GetCartItemCount returns the total quantity across all cart lines.
// An absent cart counts as zero; storage failures are reported, not
// masked.
func (s *Service) GetCartItemCount(ctx context.Context, userID *uuid.UUID, sessionID string) (int, error) {
	cartResponse, err := s.GetCart(ctx, userID, sessionID)
	if err != nil {
		return 0, err
	}
	return cartResponse.ItemCount(), nil
}

// MergeGuestCartToUser merges a guest session cart into the user's cart
// when they sign in
func (s *Service) MergeGuestCartToUser(ctx context.Context, userID uuid.UUID, sessionID string) error {
	guestCart, err := s.getGuestCart(ctx, sessionID)
	if err != nil || len(guestCart.Items) == 0 {
		return nil // Nothing to merge
	}

	for _, guestItem := range guestCart.Items {
		selections := encodeSelections(guestItem.Selections)

		var existing StoredCartItem
		result := s.db.Where("user_id = ? AND product_id = ? AND selections = ?",
			userID, guestItem.ProductID, selections).First(&existing)

		if result.Error == gorm.ErrRecordNotFound {
			newItem := StoredCartItem{
				UserID:     userID,
				ProductID:  guestItem.ProductID,
				Quantity:   guestItem.Quantity,
				Selections: selections,
			}
			if err := s.db.Create(&newItem).Error; err != nil {
				return fmt.Errorf("failed to merge cart item: %w", err)
			}
		} else {
			existing.Quantity += guestItem.Quantity
			if err := s.db.Save(&existing).Error; err != nil {
				return fmt.Errorf("failed to merge cart item: %w", err)
			}
		}
	}

	return s.ClearCart(ctx, nil, sessionID)
}

// Private helper methods

type rawItem struct {
	productID  uuid.UUID
	quantity   int
	selections map[string]string
}

func (s *Service) loadRawItems(ctx context.Context, userID *uuid.UUID, sessionID string) ([]rawItem, time.Time, error) {
	if userID != nil {
		var dbItems []StoredCartItem
		err := s.db.Where("user_id = ?", *userID).Order("created_at ASC").Find(&dbItems).Error
		if err != nil {
			return nil, time.Time{}, fmt.Errorf("failed to retrieve user cart: %w", err)
		}

		items := make([]rawItem, len(dbItems))
		updatedAt := time.Now().UTC()
		for i, item := range dbItems {
			items[i] = rawItem{
				productID:  item.ProductID,
				quantity:   item.Quantity,
				selections: decodeSelections(item.Selections),
			}
			if i == 0 || item.UpdatedAt.After(updatedAt) {
				updatedAt = item.UpdatedAt
			}
		}
		return items, updatedAt, nil
	}

	sessionCart, err := s.getGuestCart(ctx, sessionID)
	if err != nil {
		return nil, time.Time{}, err
	}

	items := make([]rawItem, len(sessionCart.Items))
	for i, item := range sessionCart.Items {
		items[i] = rawItem{
			productID:  item.ProductID,
			quantity:   item.Quantity,
			selections: item.Selections,
		}
	}
	return items, sessionCart.UpdatedAt, nil
}

// priceItems loads each product and computes line subtotals through the
// pure pricing core. Lines whose product disappeared from the catalog
// are skipped rather than failing the whole cart.
func (s *Service) priceItems(raw []rawItem) ([]CartItem, error) {
	items := make([]CartItem, 0, len(raw))
	for _, r := range raw {
		var prod product.Product
		err := s.db.Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC, created_at ASC")
		}).Where("id = ?", r.productID).First(&prod).Error
		if err != nil {
			continue
		}

		subtotal, err := ComputeItemSubtotal(&prod, r.quantity, r.selections, s.pricer)
		if err != nil {
			return nil, err
		}

		items = append(items, CartItem{
			Product:          &prod,
			Quantity:         r.quantity,
			SelectedVariants: r.selections,
			Subtotal:         subtotal,
		})
	}
	return items, nil
}

func (s *Service) addToUserCart(userID uuid.UUID, prod *product.Product, req *AddToCartRequest) error {
	selections := encodeSelections(req.Selections)

	var existing StoredCartItem
	result := s.db.Where("user_id = ? AND product_id = ? AND selections = ?",
		userID, prod.ID, selections).First(&existing)

	if result.Error == gorm.ErrRecordNotFound {
		if req.Quantity > prod.StockQuantity {
			return fmt.Errorf("%w: available %d", ErrInsufficientStock, prod.StockQuantity)
		}
		newItem := StoredCartItem{
			UserID:     userID,
			ProductID:  prod.ID,
			Quantity:   req.Quantity,
			Selections: selections,
		}
		return s.db.Create(&newItem).Error
	}

	newQuantity := existing.Quantity + req.Quantity
	if newQuantity > prod.StockQuantity {
		return fmt.Errorf("%w for total quantity: available %d", ErrInsufficientStock, prod.StockQuantity)
	}
	existing.Quantity = newQuantity
	return s.db.Save(&existing).Error
}

func (s *Service) addToGuestCart(ctx context.Context, sessionID string, prod *product.Product, req *AddToCartRequest) error {
	sessionCart, err := s.getGuestCart(ctx, sessionID)
	if err != nil {
		return err
	}

	itemExists := false
	for i := range sessionCart.Items {
		if sessionCart.Items[i].ProductID == prod.ID &&
			encodeSelections(sessionCart.Items[i].Selections) == encodeSelections(req.Selections) {

			newQuantity := sessionCart.Items[i].Quantity + req.Quantity
			if newQuantity > prod.StockQuantity {
				return fmt.Errorf("%w for total quantity: available %d", ErrInsufficientStock, prod.StockQuantity)
			}
			sessionCart.Items[i].Quantity = newQuantity
			itemExists = true
			break
		}
	}

	if !itemExists {
		if req.Quantity > prod.StockQuantity {
			return fmt.Errorf("%w: available %d", ErrInsufficientStock, prod.StockQuantity)
		}
		sessionCart.Items = append(sessionCart.Items, SessionCartItem{
			ProductID:  prod.ID,
			Quantity:   req.Quantity,
			Selections: req.Selections,
			AddedAt:    time.Now().UTC(),
		})
	}

	sessionCart.UpdatedAt = time.Now().UTC()
	return s.saveGuestCart(ctx, sessionID, sessionCart)
}

func (s *Service) updateUserCartItem(userID, productID uuid.UUID, quantity int) error {
	if quantity <= 0 {
		return s.db.Where("user_id = ? AND product_id = ?", userID, productID).
			Delete(&StoredCartItem{}).Error
	}
	return s.db.Model(&StoredCartItem{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Update("quantity", quantity).Error
}

func (s *Service) updateGuestCartItem(ctx context.Context, sessionID string, productID uuid.UUID, quantity int) error {
	sessionCart, err := s.getGuestCart(ctx, sessionID)
	if err != nil {
		return err
	}

	itemFound := false
	for i := range sessionCart.Items {
		if sessionCart.Items[i].ProductID == productID {
			if quantity <= 0 {
				sessionCart.Items = append(sessionCart.Items[:i], sessionCart.Items[i+1:]...)
			} else {
				sessionCart.Items[i].Quantity = quantity
			}
			itemFound = true
			break
		}
	}

	if !itemFound {
		return fmt.Errorf("item not found in cart")
	}

	sessionCart.UpdatedAt = time.Now().UTC()
	return s.saveGuestCart(ctx, sessionID, sessionCart)
}

func (s *Service) getGuestCart(ctx context.Context, sessionID string) (*SessionCart, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("session ID required for guest cart")
	}

	cartData, err := s.redisClient.Get(ctx, sessionCartKey(sessionID)).Result()
	if err == redis.Nil {
		now := time.Now().UTC()
		return &SessionCart{
			SessionID: sessionID,
			Items:     []SessionCartItem{},
			CreatedAt: now,
			UpdatedAt: now,
			ExpiresAt: now.Add(sessionCartTTL),
		}, nil
	} else if err != nil {
		return nil, err
	}

	var sessionCart SessionCart
	if err := json.Unmarshal([]byte(cartData), &sessionCart); err != nil {
		return nil, err
	}
	return &sessionCart, nil
}

func (s *Service) saveGuestCart(ctx context.Context, sessionID string, sessionCart *SessionCart) error {
	cartData, err := json.Marshal(sessionCart)
	if err != nil {
		return err
	}
	return s.redisClient.Set(ctx, sessionCartKey(sessionID), cartData, sessionCartTTL).Err()
}

func sessionCartKey(sessionID string) string {
	return fmt.Sprintf("cart:session:%s", sessionID)
}

// encodeSelections normalizes a variant selection map to a canonical
// JSON string so lines with equal selections merge. json.Marshal sorts
// map keys, which gives the canonical ordering for free.
func encodeSelections(selections map[string]string) string {
	if len(selections) == 0 {
		return ""
	}
	data, err := json.Marshal(selections)
	if err != nil {
		return ""
	}
	return string(data)
}

func decodeSelections(encoded string) map[string]string {
	if encoded == "" {
		return nil
	}
	var selections map[string]string
	if err := json.Unmarshal([]byte(encoded), &selections); err != nil {
		return nil
	}
	return selections
}
