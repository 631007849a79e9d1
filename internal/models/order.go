// internal/models/order.go
package models

import (
	"time"

	"github.com/google/uuid"
)

// Order is one entry of a user's order list. The orderId is supplied by the
// caller and only unique within that user's list.
type Order struct {
	BaseModel
	UserEmail    string      `json:"user_email" gorm:"size:255;not null;index:idx_orders_user_order"`
	OrderID      int64       `json:"orderId" gorm:"not null;index:idx_orders_user_order"`
	Seller       string      `json:"seller" gorm:"size:255;index"`
	Status       OrderStatus `json:"status" gorm:"type:varchar(16);default:'placed';index"`
	CancelReason string      `json:"cancel_reason,omitempty" gorm:"type:text"`
	TimePlaced   *time.Time  `json:"time_placed,omitempty"`
	TimeShipped  *time.Time  `json:"time_shipped,omitempty"`
	TimeCanceled *time.Time  `json:"time_canceled,omitempty"`
	PriceTotal   float64     `json:"price_total" gorm:"type:decimal(10,2)"`
	Address      JSONB       `json:"address,omitempty" gorm:"type:jsonb"`

	Items []OrderItem `json:"product,omitempty" gorm:"foreignKey:OrderRef"`
}

// OrderItem is a line item snapshotted from the cart at checkout.
type OrderItem struct {
	ID                  uint      `json:"-" gorm:"primaryKey"`
	OrderRef            uuid.UUID `json:"-" gorm:"type:uuid;not null;index"`
	ProductID           string    `json:"product_id" gorm:"size:64;not null"`
	Quantity            int       `json:"quantity"`
	Price               float64   `json:"price"`
	PriceTotal          float64   `json:"price_total"`
	DiscountAmountTotal float64   `json:"discount_amount_total"`
}
