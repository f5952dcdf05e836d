package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusIndex(t *testing.T) {
	assert.Equal(t, 0, StatusIndex(StatusOrderPlaced))
	assert.Equal(t, 2, StatusIndex(StatusShip))
	assert.Equal(t, 4, StatusIndex(StatusDelivered))
	assert.Equal(t, -1, StatusIndex(StatusCancelled))
	assert.Equal(t, -1, StatusIndex("garbage"))
}

func TestCanCancel(t *testing.T) {
	assert.True(t, CanCancel(StatusOrderPlaced))
	assert.True(t, CanCancel(StatusPacking))
	assert.False(t, CanCancel(StatusShip))
	assert.False(t, CanCancel(StatusOutForDelivery))
	assert.False(t, CanCancel(StatusDelivered))
	assert.False(t, CanCancel(StatusCancelled))
}
