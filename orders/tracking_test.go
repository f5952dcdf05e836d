package orders

import (
	"testing"
	"time"

	"graintrade/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleOrder(status string) models.Order {
	return models.Order{
		OrderID:       "ORDTEST00001",
		UserID:        "u1",
		Status:        status,
		PaymentMethod: "COD",
		CreatedAt:     time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC),
	}
}

func TestTimelineLengthAndOrder(t *testing.T) {
	tl := Timeline(sampleOrder(models.StatusOrderPlaced), time.Now())
	require.Len(t, tl, len(models.StatusSequence))
	for i, entry := range tl {
		assert.Equal(t, models.StatusSequence[i], entry.Status)
	}
}

// Completion must always be a prefix of the sequence: once one stage is
// incomplete, every later stage is too.
func TestTimelinePrefixRule(t *testing.T) {
	statuses := append([]string{}, models.StatusSequence...)
	statuses = append(statuses, models.StatusCancelled, "garbage")

	for _, status := range statuses {
		tl := Timeline(sampleOrder(status), time.Now())
		seenIncomplete := false
		for _, entry := range tl[1:] {
			if !entry.Completed {
				seenIncomplete = true
			}
			if seenIncomplete {
				require.False(t, entry.Completed, "status %q broke prefix rule", status)
				require.Nil(t, entry.Date)
			} else {
				require.NotNil(t, entry.Date)
			}
		}
	}
}

func TestTimelineShipCompletesFirstThree(t *testing.T) {
	tl := Timeline(sampleOrder(models.StatusShip), time.Now())

	for i, entry := range tl {
		assert.Equal(t, i <= 2, entry.Completed, "stage %s", entry.Status)
	}
}

func TestTimelineFirstEntryAlwaysPlaced(t *testing.T) {
	order := sampleOrder(models.StatusCancelled)
	tl := Timeline(order, time.Now())

	require.True(t, tl[0].Completed)
	require.NotNil(t, tl[0].Date)
	assert.True(t, tl[0].Date.Equal(order.CreatedAt))

	// a status outside the sequence completes nothing beyond placement
	for _, entry := range tl[1:] {
		assert.False(t, entry.Completed)
	}
}

func TestEstimatedDelivery(t *testing.T) {
	order := sampleOrder(models.StatusOrderPlaced)
	assert.Equal(t, order.CreatedAt.Add(24*time.Hour), EstimatedDelivery(order))
}

func TestCurrentLocation(t *testing.T) {
	cases := map[string]string{
		models.StatusOrderPlaced:    "Processing at warehouse",
		models.StatusPacking:        "Packaging department",
		models.StatusShip:           "In transit to delivery center",
		models.StatusOutForDelivery: "With delivery agent",
		models.StatusDelivered:      "Delivered to recipient",
		models.StatusCancelled:      "Unknown",
		"garbage":                   "Unknown",
	}
	for status, want := range cases {
		assert.Equal(t, want, CurrentLocation(sampleOrder(status)))
	}
}

func TestTrackAssemblesPayload(t *testing.T) {
	order := sampleOrder(models.StatusPacking)
	info := Track(order, time.Now())

	assert.Equal(t, order.OrderID, info.OrderID)
	assert.Equal(t, models.StatusPacking, info.Status)
	assert.Equal(t, "Packaging department", info.CurrentLocation)
	assert.Equal(t, "Pending", info.PaymentStatus)
	assert.Len(t, info.Timeline, len(models.StatusSequence))

	order.Payment = true
	assert.Equal(t, "Paid", Track(order, time.Now()).PaymentStatus)
}
