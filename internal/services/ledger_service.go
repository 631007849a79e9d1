// internal/services/ledger_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/woocom/woocom-backend/internal/models"
)

// LedgerService maintains the two commission accumulators: the platform
// owner's total_earn (single role=owner row) and one total_earn per seller
// email. Totals only ever increase.
type LedgerService struct {
	db *gorm.DB
}

func NewLedgerService(db *gorm.DB) *LedgerService {
	return &LedgerService{db: db}
}

// CreditOwner adds amount to the owner's running total inside the caller's
// transaction. A missing owner row is skipped silently, matching the
// original crediting behavior.
func (s *LedgerService) CreditOwner(tx *gorm.DB, amount decimal.Decimal) error {
	res := tx.Model(&models.User{}).
		Where("role = ?", models.UserRoleOwner).
		UpdateColumn("total_earn", gorm.Expr("total_earn + ?", amount))
	if res.Error != nil {
		return fmt.Errorf("failed to credit owner ledger: %w", res.Error)
	}
	return nil
}

// CreditSeller adds amount to the seller's running total, keyed by email.
func (s *LedgerService) CreditSeller(tx *gorm.DB, sellerEmail string, amount decimal.Decimal) error {
	res := tx.Model(&models.User{}).
		Where("email = ?", sellerEmail).
		UpdateColumn("total_earn", gorm.Expr("total_earn + ?", amount))
	if res.Error != nil {
		return fmt.Errorf("failed to credit seller ledger: %w", res.Error)
	}
	return nil
}

// TotalEarned returns the current accumulator for a seller email.
func (s *LedgerService) TotalEarned(email string) (decimal.Decimal, error) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return decimal.Zero, ErrUserNotFound
		}
		return decimal.Zero, fmt.Errorf("database error: %w", err)
	}
	return user.TotalEarn, nil
}

// OwnerTotal returns the platform owner's accumulator.
func (s *LedgerService) OwnerTotal() (decimal.Decimal, error) {
	var owner models.User
	if err := s.db.Where("role = ?", models.UserRoleOwner).First(&owner).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return decimal.Zero, ErrUserNotFound
		}
		return decimal.Zero, fmt.Errorf("database error: %w", err)
	}
	return owner.TotalEarn, nil
}
