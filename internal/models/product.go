// internal/models/product.go
package models

import (
	"github.com/google/uuid"
	"github.com/lib/pq"
)

type Product struct {
	BaseModel
	Title       string         `json:"title" gorm:"size:255;not null"`
	Description string         `json:"description" gorm:"type:text"`
	Category    string         `json:"category" gorm:"size:100;index"`
	Price       float64        `json:"price" gorm:"type:decimal(10,2);not null"`
	Available   int            `json:"available" gorm:"default:0"`
	Stock       StockStatus    `json:"stock" gorm:"type:varchar(3);default:'out';index"`
	TopSell     int64          `json:"top_sell" gorm:"default:0"`
	Seller      string         `json:"seller" gorm:"size:255;index"`
	Images      pq.StringArray `json:"images,omitempty" gorm:"type:text[]"`
	Tags        pq.StringArray `json:"tags,omitempty" gorm:"type:text[]"`

	// Exactly five buckets per product, one per weight 1..5,
	// seeded at creation and served weight-descending.
	Rating []RatingBucket `json:"rating,omitempty" gorm:"foreignKey:ProductID"`
}

// RatingBucket is one row of a product's star-rating histogram. Buckets are
// addressed by weight value, never by index into the slice.
type RatingBucket struct {
	ID        uint      `json:"-" gorm:"primaryKey"`
	ProductID uuid.UUID `json:"-" gorm:"type:uuid;not null;uniqueIndex:idx_rating_product_weight"`
	Weight    int       `json:"weight" gorm:"not null;uniqueIndex:idx_rating_product_weight"`
	Count     int64     `json:"count" gorm:"not null;default:0"`
}
