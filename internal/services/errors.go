// internal/services/errors.go
package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/woocom/woocom-backend/internal/models"
)

// Sentinel errors for domain conditions. Duplicate conditions are surfaced
// to clients as informational messages, not failure statuses.
var (
	ErrCartNotFound    = errors.New("cart not found")
	ErrOrderNotFound   = errors.New("order not found")
	ErrProductNotFound = errors.New("product not found")
	ErrUserNotFound    = errors.New("user not found")
	ErrEmptyOrder      = errors.New("order must contain at least one line item")
	ErrAlreadyInCart   = errors.New("product already in cart")
	ErrAlreadyReviewed = errors.New("product already reviewed")
	ErrOutOfStock      = errors.New("product is out of stock")
)

// InvalidTransitionError indicates a status change the order state machine
// does not define, e.g. shipped to canceled.
type InvalidTransitionError struct {
	From models.OrderStatus
	To   models.OrderStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("order transition from %q to %q is not allowed", e.From, e.To)
}

// InvalidPayloadError indicates a transition payload missing or carrying an
// unusable required field.
type InvalidPayloadError struct {
	Field  string
	Reason string
}

func (e *InvalidPayloadError) Error() string {
	return fmt.Sprintf("invalid payload field %q: %s", e.Field, e.Reason)
}

// forUpdate adds a row lock so read-modify-write sequences on the same key
// serialize instead of losing updates. SQLite (used by unit tests) has no row
// locks; its single-writer model covers the same ground.
func forUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}
