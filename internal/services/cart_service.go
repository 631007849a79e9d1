// internal/services/cart_service.go
package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/woocom/woocom-backend/internal/models"
	"github.com/woocom/woocom-backend/internal/utils"
)

// CartService owns the per-user cart: line items and saved addresses.
// Mutations run inside a transaction with the cart row locked, so two
// requests for the same user serialize instead of clobbering each other.
type CartService struct {
	db *gorm.DB
}

type AddLineItemRequest struct {
	ProductID           string             `json:"product_id" validate:"required"`
	Quantity            int                `json:"quantity" validate:"required,min=1"`
	Price               float64            `json:"price"`
	PriceFixed          float64            `json:"price_fixed"`
	Discount            float64            `json:"discount"`
	DiscountAmountFixed float64            `json:"discount_amount_fixed"`
	DiscountAmountTotal float64            `json:"discount_amount_total"`
	PriceTotal          float64            `json:"price_total"`
	Stock               models.StockStatus `json:"stock" validate:"required,stock_status"`
	Available           int                `json:"available"`
	ModifiedAt          string             `json:"modifiedAt"`
}

type UpdateQuantityRequest struct {
	Quantity            int     `json:"quantity" validate:"required,min=1"`
	PriceTotal          float64 `json:"price_total"`
	DiscountAmountTotal float64 `json:"discount_amount_total"`
}

type UpdateLineItemRequest struct {
	Quantity            int                `json:"quantity" validate:"required,min=1"`
	Price               float64            `json:"price"`
	PriceFixed          float64            `json:"price_fixed"`
	Discount            float64            `json:"discount"`
	DiscountAmountFixed float64            `json:"discount_amount_fixed"`
	DiscountAmountTotal float64            `json:"discount_amount_total"`
	PriceTotal          float64            `json:"price_total"`
	Stock               models.StockStatus `json:"stock" validate:"required,stock_status"`
	Available           int                `json:"available"`
	ModifiedAt          string             `json:"modifiedAt"`
}

type AddressRequest struct {
	AddressID     int64  `json:"addressId" validate:"required"`
	SelectAddress bool   `json:"select_address"`
	Name          string `json:"name" validate:"required"`
	Phone         string `json:"phone"`
	Address       string `json:"address" validate:"required"`
	City          string `json:"city"`
	PostCode      string `json:"post_code"`
}

func NewCartService(db *gorm.DB) *CartService {
	return &CartService{db: db}
}

// AddLineItem merges an item into the user's cart. Items that are out of
// stock are rejected without mutation; an item already in the cart yields
// the duplicate signal instead of a second row.
func (s *CartService) AddLineItem(email string, req *AddLineItemRequest) (*models.Cart, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if req.Stock != models.StockIn || req.Available <= 0 {
		return nil, ErrOutOfStock
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		cart, err := s.lockOrCreateCart(tx, email)
		if err != nil {
			return err
		}

		var existing models.CartItem
		err = tx.Where("cart_id = ? AND product_id = ?", cart.ID, req.ProductID).First(&existing).Error
		if err == nil {
			return ErrAlreadyInCart
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("database error: %w", err)
		}

		item := models.CartItem{
			CartID:              cart.ID,
			ProductID:           req.ProductID,
			Quantity:            req.Quantity,
			Price:               req.Price,
			PriceFixed:          req.PriceFixed,
			Discount:            req.Discount,
			DiscountAmountFixed: req.DiscountAmountFixed,
			DiscountAmountTotal: req.DiscountAmountTotal,
			PriceTotal:          req.PriceTotal,
			Stock:               req.Stock,
			Available:           req.Available,
			ModifiedAt:          req.ModifiedAt,
		}
		if err := tx.Create(&item).Error; err != nil {
			return fmt.Errorf("failed to add line item: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.getCart(email)
}

func (s *CartService) UpdateLineItemQuantity(email, productID string, req *UpdateQuantityRequest) (*models.Cart, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	updates := map[string]interface{}{
		"quantity":              req.Quantity,
		"price_total":           req.PriceTotal,
		"discount_amount_total": req.DiscountAmountTotal,
	}

	if err := s.updateLineItem(email, productID, updates); err != nil {
		return nil, err
	}
	return s.getCart(email)
}

func (s *CartService) UpdateLineItem(email, productID string, req *UpdateLineItemRequest) (*models.Cart, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	updates := map[string]interface{}{
		"quantity":              req.Quantity,
		"price":                 req.Price,
		"price_fixed":           req.PriceFixed,
		"discount":              req.Discount,
		"discount_amount_fixed": req.DiscountAmountFixed,
		"discount_amount_total": req.DiscountAmountTotal,
		"price_total":           req.PriceTotal,
		"stock":                 req.Stock,
		"available":             req.Available,
		"modified_at":           req.ModifiedAt,
	}

	if err := s.updateLineItem(email, productID, updates); err != nil {
		return nil, err
	}
	return s.getCart(email)
}

func (s *CartService) RemoveLineItem(email, productID string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		cart, err := s.lockCart(tx, email)
		if err != nil {
			return err
		}

		res := tx.Where("cart_id = ? AND product_id = ?", cart.ID, productID).Delete(&models.CartItem{})
		if res.Error != nil {
			return fmt.Errorf("failed to remove line item: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrProductNotFound
		}
		return nil
	})
}

// GetCart returns the user's cart after sweeping out line items whose stock
// flag went out. The sweep is lazy; it only runs on reads.
func (s *CartService) GetCart(email string) (*models.Cart, error) {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		cart, err := s.lockCart(tx, email)
		if err != nil {
			return err
		}

		if err := tx.Where("cart_id = ? AND stock = ?", cart.ID, models.StockOut).
			Delete(&models.CartItem{}).Error; err != nil {
			return fmt.Errorf("failed to sweep out-of-stock items: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.getCart(email)
}

// HasItem reports whether the product already sits in the user's cart.
func (s *CartService) HasItem(email, productID string) (bool, error) {
	var count int64
	err := s.db.Model(&models.CartItem{}).
		Joins("JOIN carts ON carts.id = cart_items.cart_id").
		Where("carts.user_email = ? AND cart_items.product_id = ?", email, productID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("database error: %w", err)
	}
	return count > 0, nil
}

func (s *CartService) AddAddress(email string, req *AddressRequest) (*models.Cart, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		cart, err := s.lockOrCreateCart(tx, email)
		if err != nil {
			return err
		}

		addr := models.CartAddress{
			CartID:        cart.ID,
			AddressID:     req.AddressID,
			SelectAddress: req.SelectAddress,
			Name:          req.Name,
			Phone:         req.Phone,
			Address:       req.Address,
			City:          req.City,
			PostCode:      req.PostCode,
		}
		if err := tx.Create(&addr).Error; err != nil {
			return fmt.Errorf("failed to add address: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.getCart(email)
}

func (s *CartService) UpdateAddress(email string, req *AddressRequest) (*models.Cart, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		cart, err := s.lockCart(tx, email)
		if err != nil {
			return err
		}

		updates := map[string]interface{}{
			"name":      req.Name,
			"phone":     req.Phone,
			"address":   req.Address,
			"city":      req.City,
			"post_code": req.PostCode,
		}
		res := tx.Model(&models.CartAddress{}).
			Where("cart_id = ? AND address_id = ?", cart.ID, req.AddressID).
			Updates(updates)
		if res.Error != nil {
			return fmt.Errorf("failed to update address: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrCartNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.getCart(email)
}

// SelectAddress marks one address as selected. Clearing the others runs
// first within the same transaction; if it fails, the target is never set,
// so the at-most-one-selected invariant survives partial failure.
func (s *CartService) SelectAddress(email string, addressID int64) (*models.Cart, error) {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		cart, err := s.lockCart(tx, email)
		if err != nil {
			return err
		}

		if err := tx.Model(&models.CartAddress{}).
			Where("cart_id = ? AND address_id <> ?", cart.ID, addressID).
			Update("select_address", false).Error; err != nil {
			return fmt.Errorf("failed to clear address selection: %w", err)
		}

		res := tx.Model(&models.CartAddress{}).
			Where("cart_id = ? AND address_id = ?", cart.ID, addressID).
			Update("select_address", true)
		if res.Error != nil {
			return fmt.Errorf("failed to select address: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrCartNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.getCart(email)
}

func (s *CartService) RemoveAddress(email string, addressID int64) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		cart, err := s.lockCart(tx, email)
		if err != nil {
			return err
		}

		res := tx.Where("cart_id = ? AND address_id = ?", cart.ID, addressID).
			Delete(&models.CartAddress{})
		if res.Error != nil {
			return fmt.Errorf("failed to remove address: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrCartNotFound
		}
		return nil
	})
}

// Helper methods

func (s *CartService) lockCart(tx *gorm.DB, email string) (*models.Cart, error) {
	var cart models.Cart
	if err := forUpdate(tx).Where("user_email = ?", email).First(&cart).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCartNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &cart, nil
}

// lockOrCreateCart locks the user's cart row, creating it first when the
// user has none yet (carts come into being on first use).
func (s *CartService) lockOrCreateCart(tx *gorm.DB, email string) (*models.Cart, error) {
	cart, err := s.lockCart(tx, email)
	if err == nil {
		return cart, nil
	}
	if !errors.Is(err, ErrCartNotFound) {
		return nil, err
	}

	created := &models.Cart{UserEmail: email}
	if err := tx.Create(created).Error; err != nil {
		return nil, fmt.Errorf("failed to create cart: %w", err)
	}
	return created, nil
}

func (s *CartService) updateLineItem(email, productID string, updates map[string]interface{}) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		cart, err := s.lockCart(tx, email)
		if err != nil {
			return err
		}

		res := tx.Model(&models.CartItem{}).
			Where("cart_id = ? AND product_id = ?", cart.ID, productID).
			Updates(updates)
		if res.Error != nil {
			return fmt.Errorf("failed to update line item: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrProductNotFound
		}
		return nil
	})
}

func (s *CartService) getCart(email string) (*models.Cart, error) {
	var cart models.Cart
	err := s.db.Preload("Items").Preload("Addresses").
		Where("user_email = ?", email).First(&cart).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCartNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &cart, nil
}
