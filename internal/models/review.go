// internal/models/review.go
package models

type Review struct {
	BaseModel
	UserEmail   string `json:"user_email" gorm:"size:255;not null;uniqueIndex:idx_review_user_rating"`
	RatingID    string `json:"rating_id" gorm:"size:64;not null;uniqueIndex:idx_review_user_rating"`
	ProductID   string `json:"product_id" gorm:"size:64;not null;index"`
	RatingPoint int    `json:"rating_point" gorm:"not null"`
	Comment     string `json:"comment,omitempty" gorm:"type:text"`
}
