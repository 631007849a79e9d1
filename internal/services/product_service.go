// internal/services/product_service.go
package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/woocom/woocom-backend/internal/models"
	"github.com/woocom/woocom-backend/internal/utils"
)

// ProductService owns product inventory: the available count, the derived
// stock flag, the top_sell counter and the five-bucket rating histogram.
type ProductService struct {
	db *gorm.DB
}

type CreateProductRequest struct {
	Title       string   `json:"title" validate:"required,min=3,max=255"`
	Description string   `json:"description"`
	Category    string   `json:"category" validate:"required"`
	Price       float64  `json:"price" validate:"required,min=0.01"`
	Available   int      `json:"available" validate:"min=0"`
	Seller      string   `json:"seller" validate:"required,email"`
	Images      []string `json:"images,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

type UpdateProductRequest struct {
	Title       string   `json:"title,omitempty" validate:"omitempty,min=3,max=255"`
	Description string   `json:"description,omitempty"`
	Category    string   `json:"category,omitempty"`
	Price       *float64 `json:"price,omitempty" validate:"omitempty,min=0.01"`
	Available   *int     `json:"available,omitempty" validate:"omitempty,min=0"`
	Images      []string `json:"images,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

type ProductSearchParams struct {
	utils.PaginationParams
	Seller string `json:"seller,omitempty"`
}

func NewProductService(db *gorm.DB) *ProductService {
	return &ProductService{db: db}
}

func (s *ProductService) CreateProduct(req *CreateProductRequest) (*models.Product, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	product := &models.Product{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Price:       req.Price,
		Available:   req.Available,
		Stock:       models.StockFor(req.Available),
		Seller:      req.Seller,
		Images:      pq.StringArray(req.Images),
		Tags:        pq.StringArray(req.Tags),
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(product).Error; err != nil {
			return fmt.Errorf("failed to create product: %w", err)
		}

		// One bucket per weight, always present.
		buckets := make([]models.RatingBucket, 0, 5)
		for weight := 5; weight >= 1; weight-- {
			buckets = append(buckets, models.RatingBucket{
				ProductID: product.ID,
				Weight:    weight,
			})
		}
		if err := tx.Create(&buckets).Error; err != nil {
			return fmt.Errorf("failed to seed rating histogram: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetProduct(product.ID)
}

func (s *ProductService) GetProduct(id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := s.db.Preload("Rating", ratingOrder).First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &product, nil
}

func (s *ProductService) UpdateProduct(id uuid.UUID, req *UpdateProductRequest) (*models.Product, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var product models.Product
	if err := s.db.First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	updates := make(map[string]interface{})
	if req.Title != "" {
		updates["title"] = req.Title
	}
	if req.Description != "" {
		updates["description"] = req.Description
	}
	if req.Category != "" {
		updates["category"] = req.Category
	}
	if req.Price != nil {
		updates["price"] = *req.Price
	}
	if req.Available != nil {
		// The stock flag is derived; every available mutation recomputes it.
		updates["available"] = *req.Available
		updates["stock"] = models.StockFor(*req.Available)
	}
	if req.Images != nil {
		updates["images"] = pq.StringArray(req.Images)
	}
	if req.Tags != nil {
		updates["tags"] = pq.StringArray(req.Tags)
	}

	if len(updates) > 0 {
		if err := s.db.Model(&product).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update product: %w", err)
		}
	}

	return s.GetProduct(id)
}

func (s *ProductService) DeleteProduct(id uuid.UUID) error {
	res := s.db.Delete(&models.Product{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (s *ProductService) ListProducts() ([]models.Product, error) {
	var products []models.Product
	if err := s.db.Preload("Rating", ratingOrder).
		Order("created_at DESC").
		Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}
	return products, nil
}

func (s *ProductService) ListByCategory(category string) ([]models.Product, error) {
	var products []models.Product
	if err := s.db.Preload("Rating", ratingOrder).
		Where("category = ?", category).
		Order("created_at DESC").
		Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch products by category: %w", err)
	}
	return products, nil
}

// SearchProducts backs the manage-product page: free-text search over title
// and seller, category filter, optional seller scoping, pagination.
func (s *ProductService) SearchProducts(params ProductSearchParams) ([]models.Product, int64, error) {
	query := s.db.Model(&models.Product{}).Preload("Rating", ratingOrder)

	if params.Search != "" {
		searchTerm := "%" + strings.ToLower(params.Search) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(seller) LIKE ?", searchTerm, searchTerm)
	}

	if params.Category != "" && params.Category != "all" {
		query = query.Where("category = ?", params.Category)
	}

	if params.Seller != "" {
		query = query.Where("seller = ?", params.Seller)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	allowedSortFields := []string{"created_at", "updated_at", "title", "price", "top_sell", "available"}
	query = utils.ApplySort(query, params.PaginationParams, allowedSortFields)
	query = utils.ApplyPagination(query, params.PaginationParams)

	var products []models.Product
	if err := query.Find(&products).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch products: %w", err)
	}

	return products, total, nil
}

func (s *ProductService) CountProducts(seller string) (int64, error) {
	query := s.db.Model(&models.Product{})
	if seller != "" {
		query = query.Where("seller = ?", seller)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return count, nil
}

// ShipUnits applies the inventory side of a shipped order inside the
// caller's transaction: available drops by quantity, the stock flag is
// recomputed, top_sell grows by quantity.
func (s *ProductService) ShipUnits(tx *gorm.DB, productID uuid.UUID, quantity int) error {
	var product models.Product
	if err := forUpdate(tx).First(&product, "id = ?", productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return fmt.Errorf("database error: %w", err)
	}

	available := product.Available - quantity

	updates := map[string]interface{}{
		"available": available,
		"stock":     models.StockFor(available),
		"top_sell":  gorm.Expr("top_sell + ?", quantity),
	}
	if err := tx.Model(&product).Updates(updates).Error; err != nil {
		return fmt.Errorf("failed to update inventory: %w", err)
	}

	return nil
}

// IncrementRating bumps the histogram bucket whose weight equals point,
// leaving the other four untouched. Buckets are addressed by weight value.
func (s *ProductService) IncrementRating(tx *gorm.DB, productID uuid.UUID, point int) error {
	res := tx.Model(&models.RatingBucket{}).
		Where("product_id = ? AND weight = ?", productID, point).
		UpdateColumn("count", gorm.Expr("count + ?", 1))
	if res.Error != nil {
		return fmt.Errorf("failed to update rating histogram: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}

func ratingOrder(db *gorm.DB) *gorm.DB {
	return db.Order("weight DESC")
}
