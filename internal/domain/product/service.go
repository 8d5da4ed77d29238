// internal/domain/product/service.go
package product

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/your-org/glowing-legacy-backend/internal/config"
	"gorm.io/gorm"
)

// Service handles catalog reads. Product mutations belong to the
// external product-management collaborator, so there are none here.
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new product service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// ProductListRequest represents product list query parameters
type ProductListRequest struct {
	Page      int    `form:"page,default=1"`
	Limit     int    `form:"limit,default=20"`
	Category  string `form:"category"`
	Tag       string `form:"tag"`
	Search    string `form:"search"`
	SortBy    string `form:"sort_by,default=created_at"`
	SortOrder string `form:"sort_order,default=desc"`
	MinPrice  float64 `form:"min_price"`
	MaxPrice  float64 `form:"max_price"`
	InStock   *bool  `form:"in_stock"`
}

// ProductResponse represents product response with pagination
type ProductResponse struct {
	Products   []Product  `json:"products"`
	Pagination Pagination `json:"pagination"`
}

// Pagination represents pagination information
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
	HasPrev    bool  `json:"has_prev"`
}

// GetProducts retrieves products with filtering and pagination
func (s *Service) GetProducts(req *ProductListRequest) (*ProductResponse, error) {
	var products []Product
	var total int64

	// Build query
	query := s.db.Model(&Product{}).
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC, created_at ASC")
		}).
		Preload("Variants.Options")

	// Apply filters
	if req.Category != "" {
		category := Category(req.Category)
		if !category.IsValid() {
			return nil, fmt.Errorf("unknown category: %s", req.Category)
		}
		query = query.Where("category = ?", category)
	}

	if req.Tag != "" {
		tag := "%" + strings.ToLower(req.Tag) + "%"
		query = query.Where("LOWER(tags) LIKE ?", tag)
	}

	if req.Search != "" {
		search := "%" + strings.ToLower(req.Search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ? OR LOWER(tags) LIKE ?", search, search, search)
	}

	if req.MinPrice > 0 {
		query = query.Where("base_price >= ?", req.MinPrice)
	}

	if req.MaxPrice > 0 {
		query = query.Where("base_price <= ?", req.MaxPrice)
	}

	if req.InStock != nil && *req.InStock {
		query = query.Where("stock_quantity > 0")
	}

	// Count total records
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}

	// Apply sorting
	sortBy := req.SortBy
	switch sortBy {
	case "name", "base_price", "created_at", "stock_quantity":
		// allowed
	default:
		sortBy = "created_at"
	}
	sortOrder := "DESC"
	if strings.EqualFold(req.SortOrder, "asc") {
		sortOrder = "ASC"
	}
	query = query.Order(fmt.Sprintf("%s %s", sortBy, sortOrder))

	// Apply pagination
	page := req.Page
	if page < 1 {
		page = 1
	}
	limit := req.Limit
	if limit < 1 || limit > 100 {
		limit = 20
	}
	offset := (page - 1) * limit

	if err := query.Offset(offset).Limit(limit).Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve products: %w", err)
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))

	return &ProductResponse{
		Products: products,
		Pagination: Pagination{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: totalPages,
			HasNext:    page < totalPages,
			HasPrev:    page > 1,
		},
	}, nil
}

// GetProduct retrieves a single product by ID
func (s *Service) GetProduct(id uuid.UUID) (*Product, error) {
	var prod Product
	err := s.db.
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC, created_at ASC")
		}).
		Preload("Variants.Options").
		Where("id = ?", id).First(&prod).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("product not found")
		}
		return nil, fmt.Errorf("failed to retrieve product: %w", err)
	}
	return &prod, nil
}

// GetProductBySlug retrieves a single product by slug
func (s *Service) GetProductBySlug(slug string) (*Product, error) {
	var prod Product
	err := s.db.
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC, created_at ASC")
		}).
		Preload("Variants.Options").
		Where("slug = ?", slug).First(&prod).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("product not found")
		}
		return nil, fmt.Errorf("failed to retrieve product: %w", err)
	}
	return &prod, nil
}

// SearchProducts performs a text search over name, description and tags
func (s *Service) SearchProducts(term string, limit int) ([]Product, error) {
	if strings.TrimSpace(term) == "" {
		return []Product{}, nil
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	var products []Product
	search := "%" + strings.ToLower(strings.TrimSpace(term)) + "%"
	err := s.db.
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC, created_at ASC")
		}).
		Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ? OR LOWER(tags) LIKE ?", search, search, search).
		Order("name ASC").
		Limit(limit).
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to search products: %w", err)
	}
	return products, nil
}
