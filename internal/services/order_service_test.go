// internal/services/order_service_test.go
package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/woocom/woocom-backend/internal/models"
)

func newOrderService(db *gorm.DB) (*OrderService, *ProductService, *LedgerService) {
	products := NewProductService(db)
	ledger := NewLedgerService(db)
	return NewOrderService(db, products, ledger), products, ledger
}

func placeTestOrder(t *testing.T, svc *OrderService, orderID int64) *models.Order {
	t.Helper()

	order, err := svc.PlaceOrder(testBuyerEmail, &PlaceOrderRequest{
		OrderID: orderID,
		Seller:  testSellerEmail,
		Items: []OrderItemInput{
			{ProductID: "prod-1", Quantity: 2, Price: 49.90, PriceTotal: 99.80},
		},
		PriceTotal: 99.80,
	})
	require.NoError(t, err)
	return order
}

func TestPlaceOrder(t *testing.T) {
	db := openTestDB(t)
	svc, _, _ := newOrderService(db)

	order := placeTestOrder(t, svc, 1001)

	assert.Equal(t, models.OrderStatusPlaced, order.Status)
	assert.NotNil(t, order.TimePlaced)
	assert.Nil(t, order.TimeShipped)
	require.Len(t, order.Items, 1)
	assert.Equal(t, 2, order.Items[0].Quantity)
}

func TestPlaceOrderRejectsEmptyItemList(t *testing.T) {
	db := openTestDB(t)
	svc, _, _ := newOrderService(db)

	_, err := svc.PlaceOrder(testBuyerEmail, &PlaceOrderRequest{
		OrderID: 1001,
		Seller:  testSellerEmail,
	})
	assert.ErrorIs(t, err, ErrEmptyOrder)

	orders, err := svc.ListOrdersByUser(testBuyerEmail)
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestShipAppliesCommissionAndInventory(t *testing.T) {
	db := openTestDB(t)
	seedLedgerAccounts(t, db)
	svc, products, ledger := newOrderService(db)

	product := createTestProduct(t, db, 5)
	placeTestOrder(t, svc, 1001)

	commission := decimal.NewFromFloat(4.99)
	earn := decimal.NewFromFloat(94.81)
	order, err := svc.TransitionStatus(testBuyerEmail, 1001, models.OrderStatusShipped, &TransitionPayload{
		OwnerCommission: &commission,
		TotalEarn:       &earn,
		SellerEmail:     testSellerEmail,
		ProductID:       product.ID.String(),
		Quantity:        2,
	})
	require.NoError(t, err)

	assert.Equal(t, models.OrderStatusShipped, order.Status)
	assert.NotNil(t, order.TimeShipped)

	ownerTotal, err := ledger.OwnerTotal()
	require.NoError(t, err)
	assert.True(t, ownerTotal.Equal(commission), "owner credited %s, want %s", ownerTotal, commission)

	sellerTotal, err := ledger.TotalEarned(testSellerEmail)
	require.NoError(t, err)
	assert.True(t, sellerTotal.Equal(earn), "seller credited %s, want %s", sellerTotal, earn)

	updated, err := products.GetProduct(product.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, updated.Available)
	assert.Equal(t, int64(2), updated.TopSell)
}

func TestReShipIsIdempotent(t *testing.T) {
	db := openTestDB(t)
	seedLedgerAccounts(t, db)
	svc, products, ledger := newOrderService(db)

	product := createTestProduct(t, db, 5)
	placeTestOrder(t, svc, 1001)

	commission := decimal.NewFromFloat(4.99)
	earn := decimal.NewFromFloat(94.81)
	payload := &TransitionPayload{
		OwnerCommission: &commission,
		TotalEarn:       &earn,
		SellerEmail:     testSellerEmail,
		ProductID:       product.ID.String(),
		Quantity:        2,
	}

	_, err := svc.TransitionStatus(testBuyerEmail, 1001, models.OrderStatusShipped, payload)
	require.NoError(t, err)

	// The second shipment attempt must not credit or decrement again.
	order, err := svc.TransitionStatus(testBuyerEmail, 1001, models.OrderStatusShipped, payload)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusShipped, order.Status)

	ownerTotal, err := ledger.OwnerTotal()
	require.NoError(t, err)
	assert.True(t, ownerTotal.Equal(commission))

	sellerTotal, err := ledger.TotalEarned(testSellerEmail)
	require.NoError(t, err)
	assert.True(t, sellerTotal.Equal(earn))

	updated, err := products.GetProduct(product.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, updated.Available)
	assert.Equal(t, int64(2), updated.TopSell)
}

func TestShipWithoutOptionalSectionsSkipsSideEffects(t *testing.T) {
	db := openTestDB(t)
	seedLedgerAccounts(t, db)
	svc, _, ledger := newOrderService(db)

	placeTestOrder(t, svc, 1001)

	order, err := svc.TransitionStatus(testBuyerEmail, 1001, models.OrderStatusShipped, &TransitionPayload{})
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusShipped, order.Status)

	ownerTotal, err := ledger.OwnerTotal()
	require.NoError(t, err)
	assert.True(t, ownerTotal.IsZero())
}

func TestShipRequiresSellerWhenCommissionPresent(t *testing.T) {
	db := openTestDB(t)
	seedLedgerAccounts(t, db)
	svc, _, ledger := newOrderService(db)

	placeTestOrder(t, svc, 1001)

	commission := decimal.NewFromFloat(4.99)
	earn := decimal.NewFromFloat(94.81)
	_, err := svc.TransitionStatus(testBuyerEmail, 1001, models.OrderStatusShipped, &TransitionPayload{
		OwnerCommission: &commission,
		TotalEarn:       &earn,
	})

	var payloadErr *InvalidPayloadError
	require.ErrorAs(t, err, &payloadErr)
	assert.Equal(t, "seller_email", payloadErr.Field)

	// The failed transition rolls back entirely.
	orders, err := svc.ListOrdersByUser(testBuyerEmail)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, models.OrderStatusPlaced, orders[0].Status)

	ownerTotal, err := ledger.OwnerTotal()
	require.NoError(t, err)
	assert.True(t, ownerTotal.IsZero())
}

func TestCancelOrder(t *testing.T) {
	db := openTestDB(t)
	seedLedgerAccounts(t, db)
	svc, products, ledger := newOrderService(db)

	product := createTestProduct(t, db, 5)
	placeTestOrder(t, svc, 1001)

	order, err := svc.CancelOrder(testBuyerEmail, 1001, "changed my mind")
	require.NoError(t, err)

	assert.Equal(t, models.OrderStatusCanceled, order.Status)
	assert.Equal(t, "changed my mind", order.CancelReason)
	assert.NotNil(t, order.TimeCanceled)

	// Cancellation never touches inventory or the ledgers.
	updated, err := products.GetProduct(product.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, updated.Available)
	assert.Equal(t, int64(0), updated.TopSell)

	ownerTotal, err := ledger.OwnerTotal()
	require.NoError(t, err)
	assert.True(t, ownerTotal.IsZero())
}

func TestCancelShippedOrderRejected(t *testing.T) {
	db := openTestDB(t)
	seedLedgerAccounts(t, db)
	svc, _, _ := newOrderService(db)

	placeTestOrder(t, svc, 1001)

	_, err := svc.TransitionStatus(testBuyerEmail, 1001, models.OrderStatusShipped, &TransitionPayload{})
	require.NoError(t, err)

	_, err = svc.CancelOrder(testBuyerEmail, 1001, "too late")
	var transitionErr *InvalidTransitionError
	require.ErrorAs(t, err, &transitionErr)
	assert.Equal(t, models.OrderStatusShipped, transitionErr.From)
	assert.Equal(t, models.OrderStatusCanceled, transitionErr.To)
}

func TestShipCanceledOrderRejected(t *testing.T) {
	db := openTestDB(t)
	seedLedgerAccounts(t, db)
	svc, _, _ := newOrderService(db)

	placeTestOrder(t, svc, 1001)

	_, err := svc.CancelOrder(testBuyerEmail, 1001, "changed my mind")
	require.NoError(t, err)

	_, err = svc.TransitionStatus(testBuyerEmail, 1001, models.OrderStatusShipped, &TransitionPayload{})
	var transitionErr *InvalidTransitionError
	assert.ErrorAs(t, err, &transitionErr)
}

func TestTransitionUnknownOrder(t *testing.T) {
	db := openTestDB(t)
	svc, _, _ := newOrderService(db)

	_, err := svc.TransitionStatus(testBuyerEmail, 9999, models.OrderStatusShipped, nil)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestRemoveOrder(t *testing.T) {
	db := openTestDB(t)
	svc, _, _ := newOrderService(db)

	placeTestOrder(t, svc, 1001)
	placeTestOrder(t, svc, 1002)

	require.NoError(t, svc.RemoveOrder(testBuyerEmail, 1001))

	orders, err := svc.ListOrdersByUser(testBuyerEmail)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, int64(1002), orders[0].OrderID)

	var itemCount int64
	require.NoError(t, db.Model(&models.OrderItem{}).Count(&itemCount).Error)
	assert.Equal(t, int64(1), itemCount)

	assert.ErrorIs(t, svc.RemoveOrder(testBuyerEmail, 1001), ErrOrderNotFound)
}

func TestListOrdersBySeller(t *testing.T) {
	db := openTestDB(t)
	svc, _, _ := newOrderService(db)

	placeTestOrder(t, svc, 1001)

	_, err := svc.PlaceOrder("second@example.com", &PlaceOrderRequest{
		OrderID: 2001,
		Seller:  "other-seller@example.com",
		Items: []OrderItemInput{
			{ProductID: "prod-9", Quantity: 1},
		},
	})
	require.NoError(t, err)

	orders, err := svc.ListOrdersBySeller(testSellerEmail)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, int64(1001), orders[0].OrderID)

	all, err := svc.ListOrdersBySeller("")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
