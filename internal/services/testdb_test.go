// internal/services/testdb_test.go
package services

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/woocom/woocom-backend/internal/models"
)

const (
	testOwnerEmail  = "owner@woocom.shop"
	testSellerEmail = "seller@example.com"
	testBuyerEmail  = "buyer@example.com"
)

// openTestDB spins up an isolated in-memory database per test. A single open
// connection keeps the shared-cache memory database alive for the test's
// duration.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.RatingBucket{},
		&models.Cart{},
		&models.CartItem{},
		&models.CartAddress{},
		&models.Order{},
		&models.OrderItem{},
		&models.Review{},
		&models.AuditLog{},
	))

	return db
}

func seedUser(t *testing.T, db *gorm.DB, email string, role models.UserRole) *models.User {
	t.Helper()

	user := &models.User{Email: email, Role: role}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedLedgerAccounts(t *testing.T, db *gorm.DB) {
	t.Helper()

	seedUser(t, db, testOwnerEmail, models.UserRoleOwner)
	seedUser(t, db, testSellerEmail, models.UserRoleSeller)
}

func createTestProduct(t *testing.T, db *gorm.DB, available int) *models.Product {
	t.Helper()

	svc := NewProductService(db)
	product, err := svc.CreateProduct(&CreateProductRequest{
		Title:     "Mechanical Keyboard",
		Category:  "electronics",
		Price:     49.90,
		Available: available,
		Seller:    testSellerEmail,
	})
	require.NoError(t, err)
	return product
}

func addTestItem(t *testing.T, db *gorm.DB, email, productID string) {
	t.Helper()

	svc := NewCartService(db)
	_, err := svc.AddLineItem(email, &AddLineItemRequest{
		ProductID: productID,
		Quantity:  1,
		Price:     49.90,
		Stock:     models.StockIn,
		Available: 5,
	})
	require.NoError(t, err)
}
