// internal/services/user_service_test.go
package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/woocom/woocom-backend/internal/config"
	"github.com/woocom/woocom-backend/internal/models"
	"github.com/woocom/woocom-backend/internal/utils"
)

func testConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			SecretKey:      "test-secret",
			AccessTokenTTL: 6,
		},
	}
}

func TestUpsertUserCreatesThenUpdates(t *testing.T) {
	db := openTestDB(t)
	cfg := testConfig()
	utils.SetJWTSecret(cfg.JWT.SecretKey)
	svc := NewUserService(db, cfg)

	resp, err := svc.UpsertUser(testBuyerEmail)
	require.NoError(t, err)
	assert.Equal(t, models.UserRoleUser, resp.User.Role)
	assert.NotEmpty(t, resp.Token)
	assert.NotNil(t, resp.User.LastLoginAt)

	claims, err := utils.ValidateJWT(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, testBuyerEmail, claims.Email)

	// A second login keeps the existing row and its role.
	require.NoError(t, db.Model(resp.User).Update("role", models.UserRoleSeller).Error)

	resp, err = svc.UpsertUser(testBuyerEmail)
	require.NoError(t, err)
	assert.Equal(t, models.UserRoleSeller, resp.User.Role)

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestGetUserNotFound(t *testing.T) {
	db := openTestDB(t)
	svc := NewUserService(db, testConfig())

	_, err := svc.GetUser("nobody@example.com")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUpdateProfile(t *testing.T) {
	db := openTestDB(t)
	svc := NewUserService(db, testConfig())

	seedUser(t, db, testBuyerEmail, models.UserRoleUser)

	_, err := svc.UpdateProfile(testBuyerEmail, models.JSONB{"nickname": "alex"})
	require.NoError(t, err)

	user, err := svc.GetUser(testBuyerEmail)
	require.NoError(t, err)
	assert.Equal(t, "alex", user.ProfileData["nickname"])
}

func TestMakeAdmin(t *testing.T) {
	db := openTestDB(t)
	svc := NewUserService(db, testConfig())

	user := seedUser(t, db, testBuyerEmail, models.UserRoleUser)

	promoted, err := svc.MakeAdmin(user.ID)
	require.NoError(t, err)
	assert.Equal(t, models.UserRoleAdmin, promoted.Role)

	admins, err := svc.ListByRole(models.UserRoleAdmin)
	require.NoError(t, err)
	assert.Len(t, admins, 1)
}

func TestLedgerCredits(t *testing.T) {
	db := openTestDB(t)
	seedLedgerAccounts(t, db)
	ledger := NewLedgerService(db)

	require.NoError(t, ledger.CreditOwner(db, decimal.NewFromFloat(1.50)))
	require.NoError(t, ledger.CreditOwner(db, decimal.NewFromFloat(2.25)))
	require.NoError(t, ledger.CreditSeller(db, testSellerEmail, decimal.NewFromFloat(10.00)))

	ownerTotal, err := ledger.OwnerTotal()
	require.NoError(t, err)
	assert.True(t, ownerTotal.Equal(decimal.NewFromFloat(3.75)), "owner total %s", ownerTotal)

	sellerTotal, err := ledger.TotalEarned(testSellerEmail)
	require.NoError(t, err)
	assert.True(t, sellerTotal.Equal(decimal.NewFromFloat(10.00)), "seller total %s", sellerTotal)

	// Crediting an unknown seller is a silent no-op.
	require.NoError(t, ledger.CreditSeller(db, "ghost@example.com", decimal.NewFromFloat(5.00)))
	_, err = ledger.TotalEarned("ghost@example.com")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
