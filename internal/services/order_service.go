// internal/services/order_service.go
package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/woocom/woocom-backend/internal/models"
	"github.com/woocom/woocom-backend/internal/utils"
)

// OrderService drives orders through the placed -> shipped | canceled state
// machine. The shipped transition's three effects - status update, ledger
// credits, inventory decrement - commit as one transaction or not at all.
type OrderService struct {
	db       *gorm.DB
	products *ProductService
	ledger   *LedgerService
}

type OrderItemInput struct {
	ProductID           string  `json:"product_id" validate:"required"`
	Quantity            int     `json:"quantity" validate:"required,min=1"`
	Price               float64 `json:"price"`
	PriceTotal          float64 `json:"price_total"`
	DiscountAmountTotal float64 `json:"discount_amount_total"`
}

type PlaceOrderRequest struct {
	OrderID    int64            `json:"orderId" validate:"required"`
	Seller     string           `json:"seller" validate:"required,email"`
	Items      []OrderItemInput `json:"product" validate:"dive"`
	PriceTotal float64          `json:"price_total"`
	Address    models.JSONB     `json:"address,omitempty"`
}

// TransitionPayload carries the optional commission and inventory data for
// the shipped transition, and the cancel reason for the canceled one.
type TransitionPayload struct {
	OwnerCommission *decimal.Decimal `json:"ownerCommission,omitempty"`
	TotalEarn       *decimal.Decimal `json:"totalEarn,omitempty"`
	SellerEmail     string           `json:"seller_email,omitempty"`
	ProductID       string           `json:"productId,omitempty"`
	Quantity        int              `json:"quantity,omitempty"`
	CancelReason    string           `json:"cancel_reason,omitempty"`
}

func NewOrderService(db *gorm.DB, products *ProductService, ledger *LedgerService) *OrderService {
	return &OrderService{
		db:       db,
		products: products,
		ledger:   ledger,
	}
}

// PlaceOrder appends an order entry snapshotted from the cart. The orderId
// is caller-supplied; the engine does not generate it.
func (s *OrderService) PlaceOrder(email string, req *PlaceOrderRequest) (*models.Order, error) {
	if len(req.Items) == 0 {
		return nil, ErrEmptyOrder
	}
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	now := time.Now()
	order := &models.Order{
		UserEmail:  email,
		OrderID:    req.OrderID,
		Seller:     req.Seller,
		Status:     models.OrderStatusPlaced,
		TimePlaced: &now,
		PriceTotal: req.PriceTotal,
		Address:    req.Address,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		items := make([]models.OrderItem, 0, len(req.Items))
		for _, it := range req.Items {
			items = append(items, models.OrderItem{
				OrderRef:            order.ID,
				ProductID:           it.ProductID,
				Quantity:            it.Quantity,
				Price:               it.Price,
				PriceTotal:          it.PriceTotal,
				DiscountAmountTotal: it.DiscountAmountTotal,
			})
		}
		if err := tx.Create(&items).Error; err != nil {
			return fmt.Errorf("failed to create order items: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.getOrder(email, req.OrderID)
}

// TransitionStatus advances the order addressed by (email, orderId). For the
// shipped target the payload's commission and inventory sections each apply
// only when present; re-shipping an already-shipped order is a no-op so the
// side effects never double-apply.
func (s *OrderService) TransitionStatus(email string, orderID int64, target models.OrderStatus, payload *TransitionPayload) (*models.Order, error) {
	if payload == nil {
		payload = &TransitionPayload{}
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var order models.Order
		err := forUpdate(tx).
			Where("user_email = ? AND order_id = ?", email, orderID).
			First(&order).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return fmt.Errorf("database error: %w", err)
		}

		now := time.Now()

		switch target {
		case models.OrderStatusPlaced:
			if order.Status != models.OrderStatusPlaced {
				return &InvalidTransitionError{From: order.Status, To: target}
			}
			return tx.Model(&order).Updates(map[string]interface{}{
				"status":      target,
				"time_placed": &now,
			}).Error

		case models.OrderStatusShipped:
			if order.Status == models.OrderStatusShipped {
				// Already shipped; crediting or decrementing again would
				// corrupt the ledgers and inventory.
				return nil
			}
			if order.Status == models.OrderStatusCanceled {
				return &InvalidTransitionError{From: order.Status, To: target}
			}
			return s.ship(tx, &order, payload, now)

		case models.OrderStatusCanceled:
			if order.Status != models.OrderStatusPlaced {
				return &InvalidTransitionError{From: order.Status, To: target}
			}
			// No inventory or ledger compensation: nothing was applied
			// while the order sat in placed.
			return tx.Model(&order).Updates(map[string]interface{}{
				"status":        target,
				"cancel_reason": payload.CancelReason,
				"time_canceled": &now,
			}).Error

		default:
			return &InvalidPayloadError{Field: "status", Reason: fmt.Sprintf("unknown status %q", target)}
		}
	})
	if err != nil {
		return nil, err
	}

	return s.getOrder(email, orderID)
}

func (s *OrderService) ship(tx *gorm.DB, order *models.Order, payload *TransitionPayload, now time.Time) error {
	if err := tx.Model(order).Updates(map[string]interface{}{
		"status":       models.OrderStatusShipped,
		"time_shipped": &now,
	}).Error; err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}

	if payload.OwnerCommission != nil && payload.TotalEarn != nil {
		if payload.SellerEmail == "" {
			return &InvalidPayloadError{Field: "seller_email", Reason: "required when commission amounts are present"}
		}
		if err := s.ledger.CreditOwner(tx, *payload.OwnerCommission); err != nil {
			return err
		}
		if err := s.ledger.CreditSeller(tx, payload.SellerEmail, *payload.TotalEarn); err != nil {
			return err
		}
	}

	if payload.ProductID != "" {
		productID, err := uuid.Parse(payload.ProductID)
		if err != nil {
			return &InvalidPayloadError{Field: "productId", Reason: "must be a valid product id"}
		}
		if payload.Quantity < 1 {
			return &InvalidPayloadError{Field: "quantity", Reason: "must be at least 1"}
		}
		if err := s.products.ShipUnits(tx, productID, payload.Quantity); err != nil {
			return err
		}
	}

	return nil
}

// CancelOrder is a convenience wrapper over the canceled transition.
func (s *OrderService) CancelOrder(email string, orderID int64, reason string) (*models.Order, error) {
	return s.TransitionStatus(email, orderID, models.OrderStatusCanceled, &TransitionPayload{CancelReason: reason})
}

// RemoveOrder hard-deletes an order entry, bypassing the state machine. Any
// ledger or inventory effects already applied stay applied.
func (s *OrderService) RemoveOrder(email string, orderID int64) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var order models.Order
		err := forUpdate(tx).
			Where("user_email = ? AND order_id = ?", email, orderID).
			First(&order).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return fmt.Errorf("database error: %w", err)
		}

		if err := tx.Where("order_ref = ?", order.ID).Delete(&models.OrderItem{}).Error; err != nil {
			return fmt.Errorf("failed to delete order items: %w", err)
		}
		if err := tx.Unscoped().Delete(&order).Error; err != nil {
			return fmt.Errorf("failed to delete order: %w", err)
		}
		return nil
	})
}

// ListOrdersByUser returns the user's order list, newest first.
func (s *OrderService) ListOrdersByUser(email string) ([]models.Order, error) {
	var orders []models.Order
	err := s.db.Preload("Items").
		Where("user_email = ?", email).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch orders: %w", err)
	}
	return orders, nil
}

// ListOrdersBySeller flattens every user's order list into individual order
// records. An empty seller returns all orders.
func (s *OrderService) ListOrdersBySeller(seller string) ([]models.Order, error) {
	query := s.db.Preload("Items").Order("created_at DESC")
	if seller != "" {
		query = query.Where("seller = ?", seller)
	}

	var orders []models.Order
	if err := query.Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch orders: %w", err)
	}
	return orders, nil
}

func (s *OrderService) getOrder(email string, orderID int64) (*models.Order, error) {
	var order models.Order
	err := s.db.Preload("Items").
		Where("user_email = ? AND order_id = ?", email, orderID).
		First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &order, nil
}
