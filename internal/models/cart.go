// internal/models/cart.go
package models

import (
	"github.com/google/uuid"
)

// Cart holds one document per user. Line items and addresses live in child
// tables rather than an embedded list, so a single item or address mutation
// never rewrites the whole cart.
type Cart struct {
	BaseModel
	UserEmail string        `json:"user_email" gorm:"uniqueIndex;size:255;not null"`
	Items     []CartItem    `json:"product" gorm:"foreignKey:CartID"`
	Addresses []CartAddress `json:"address" gorm:"foreignKey:CartID"`
}

// CartItem is one product line within a user's cart. At most one row per
// distinct product id per cart.
type CartItem struct {
	ID                  uint        `json:"-" gorm:"primaryKey"`
	CartID              uuid.UUID   `json:"-" gorm:"type:uuid;not null;uniqueIndex:idx_cart_item_product"`
	ProductID           string      `json:"product_id" gorm:"size:64;not null;uniqueIndex:idx_cart_item_product"`
	Quantity            int         `json:"quantity"`
	Price               float64     `json:"price"`
	PriceFixed          float64     `json:"price_fixed"`
	Discount            float64     `json:"discount"`
	DiscountAmountFixed float64     `json:"discount_amount_fixed"`
	DiscountAmountTotal float64     `json:"discount_amount_total"`
	PriceTotal          float64     `json:"price_total"`
	Stock               StockStatus `json:"stock" gorm:"type:varchar(3)"`
	Available           int         `json:"available"`
	ModifiedAt          string      `json:"modifiedAt" gorm:"size:64"`
}

// CartAddress is a saved shipping address. At most one address per cart
// carries select_address = true.
type CartAddress struct {
	ID            uint      `json:"-" gorm:"primaryKey"`
	CartID        uuid.UUID `json:"-" gorm:"type:uuid;not null;index"`
	AddressID     int64     `json:"addressId" gorm:"not null;index"`
	SelectAddress bool      `json:"select_address" gorm:"default:false"`
	Name          string    `json:"name" gorm:"size:255"`
	Phone         string    `json:"phone" gorm:"size:32"`
	Address       string    `json:"address" gorm:"type:text"`
	City          string    `json:"city" gorm:"size:100"`
	PostCode      string    `json:"post_code" gorm:"size:20"`
}
