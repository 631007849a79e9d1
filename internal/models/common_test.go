// internal/models/common_test.go
package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStockFor(t *testing.T) {
	assert.Equal(t, StockIn, StockFor(1))
	assert.Equal(t, StockIn, StockFor(100))
	assert.Equal(t, StockOut, StockFor(0))
	assert.Equal(t, StockOut, StockFor(-1))
}

func TestOrderStatus(t *testing.T) {
	assert.True(t, OrderStatusPlaced.Valid())
	assert.True(t, OrderStatusShipped.Valid())
	assert.True(t, OrderStatusCanceled.Valid())
	assert.False(t, OrderStatus("delivered").Valid())

	assert.False(t, OrderStatusPlaced.Terminal())
	assert.True(t, OrderStatusShipped.Terminal())
	assert.True(t, OrderStatusCanceled.Terminal())
}

func TestJSONBScan(t *testing.T) {
	var j JSONB

	assert.NoError(t, j.Scan([]byte(`{"a":1}`)))
	assert.Equal(t, float64(1), j["a"])

	assert.NoError(t, j.Scan(`{"b":"x"}`))
	assert.Equal(t, "x", j["b"])

	assert.NoError(t, j.Scan(nil))
}
