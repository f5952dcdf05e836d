package models

import (
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartAddMergesSameGrain(t *testing.T) {
	var c Cart
	c.Add("g1", 2, 10.5)
	c.Add("g1", 3, 10.5)

	require.Len(t, c.Items, 1)
	assert.Equal(t, 5, c.Items[0].Quantity)
	assert.Equal(t, 5, c.TotalQuantity)
	assert.InDelta(t, 52.5, c.TotalAmount, 1e-9)
}

func TestCartAddKeepsFirstPrice(t *testing.T) {
	var c Cart
	c.Add("g1", 1, 10)
	c.Add("g1", 1, 99) // merged line keeps the original unit price

	require.Len(t, c.Items, 1)
	assert.Equal(t, 10.0, c.Items[0].Price)
	assert.InDelta(t, 20.0, c.TotalAmount, 1e-9)
}

func TestCartSetQuantity(t *testing.T) {
	var c Cart
	c.Add("g1", 2, 5)
	c.Add("g2", 1, 3)

	require.NoError(t, c.SetQuantity("g1", 10))
	assert.Equal(t, 11, c.TotalQuantity)
	assert.InDelta(t, 53.0, c.TotalAmount, 1e-9)

	// zero or negative removes the line
	require.NoError(t, c.SetQuantity("g1", 0))
	require.Len(t, c.Items, 1)
	assert.Equal(t, "g2", c.Items[0].GrainID)

	assert.ErrorIs(t, c.SetQuantity("missing", 1), ErrItemNotInCart)
}

func TestCartRemove(t *testing.T) {
	var c Cart
	c.Add("g1", 2, 5)
	c.Add("g2", 1, 3)

	require.NoError(t, c.Remove("g1"))
	require.Len(t, c.Items, 1)
	assert.Equal(t, 1, c.TotalQuantity)
	assert.InDelta(t, 3.0, c.TotalAmount, 1e-9)

	assert.ErrorIs(t, c.Remove("g1"), ErrItemNotInCart)
}

func TestCartClear(t *testing.T) {
	var c Cart
	c.Add("g1", 2, 5)
	c.Clear()

	assert.Empty(t, c.Items)
	assert.Zero(t, c.TotalQuantity)
	assert.Zero(t, c.TotalAmount)
}

func TestCartSnapshotIsDetached(t *testing.T) {
	var c Cart
	c.Add("g1", 2, 5)

	snap := c.Snapshot()
	require.NoError(t, c.SetQuantity("g1", 99))

	assert.Equal(t, 2, snap[0].Quantity)
}

// Totals must equal the fold over the surviving items after any sequence of
// mutations, and quantities stay positive.
func TestCartTotalsConsistentUnderRandomOps(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	grains := []string{"g1", "g2", "g3", "g4"}

	var c Cart
	for i := 0; i < 500; i++ {
		id := grains[rng.Intn(len(grains))]
		switch rng.Intn(4) {
		case 0:
			c.Add(id, 1+rng.Intn(9), float64(rng.Intn(2000))/100)
		case 1:
			_ = c.SetQuantity(id, rng.Intn(12)-2)
		case 2:
			_ = c.Remove(id)
		case 3:
			if rng.Intn(20) == 0 {
				c.Clear()
			}
		}

		wantQty := 0
		wantAmount := decimal.Zero
		for _, item := range c.Items {
			require.Positive(t, item.Quantity)
			wantQty += item.Quantity
			wantAmount = wantAmount.Add(
				decimal.NewFromFloat(item.Price).Mul(decimal.NewFromInt(int64(item.Quantity))))
		}
		require.Equal(t, wantQty, c.TotalQuantity)
		wantF, _ := wantAmount.Float64()
		require.InDelta(t, wantF, c.TotalAmount, 1e-9)
	}
}
