package orders

import (
	"net/http"
	"testing"
	"time"

	"graintrade/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildOrderDefaults(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	items := []models.CartItem{{GrainID: "g1", Quantity: 3, Price: 12.5}}
	address := `{"name":"Asha Traders","phone":"555-0101","street":"14 Mill Rd","city":"Pune","state":"MH","country":"IN","zipcode":"411001"}`

	order, err := BuildOrder("u1", items, address, 37.5, now)
	require.NoError(t, err)

	assert.True(t, len(order.OrderID) > 3 && order.OrderID[:3] == "ORD")
	assert.Equal(t, "u1", order.UserID)
	assert.Equal(t, "COD", order.PaymentMethod)
	assert.False(t, order.Payment)
	assert.Equal(t, models.StatusOrderPlaced, order.Status)
	assert.Equal(t, now, order.CreatedAt)
	assert.Equal(t, 37.5, order.Amount)
	assert.Equal(t, "Pune", order.Address.City)
	assert.Equal(t, "411001", order.Address.Zipcode)
}

func TestBuildOrderSnapshotIsDetached(t *testing.T) {
	items := []models.CartItem{{GrainID: "g1", Quantity: 3, Price: 12.5}}
	order, err := BuildOrder("u1", items, `{}`, 37.5, time.Now())
	require.NoError(t, err)

	items[0].Quantity = 99
	assert.Equal(t, 3, order.Items[0].Quantity)
}

func TestBuildOrderRejectsBadAddress(t *testing.T) {
	_, err := BuildOrder("u1", nil, `not json`, 0, time.Now())
	require.Error(t, err)

	_, err = BuildOrder("u1", nil, ``, 0, time.Now())
	require.Error(t, err)
}

func TestAuthorizeOrderAccess(t *testing.T) {
	order := sampleOrder(models.StatusOrderPlaced) // owned by u1

	code, msg := authorizeOrderAccess(&order, "u1")
	assert.Zero(t, code)
	assert.Empty(t, msg)

	code, msg = authorizeOrderAccess(&order, "u2")
	assert.Equal(t, http.StatusForbidden, code)
	assert.NotEmpty(t, msg)
}

func TestBuildOrderUniqueIDs(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		order, err := BuildOrder("u1", nil, `{}`, 0, time.Now())
		require.NoError(t, err)
		require.False(t, seen[order.OrderID], "duplicate order id %s", order.OrderID)
		seen[order.OrderID] = true
	}
}
