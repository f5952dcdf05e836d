package orders

import (
	"time"

	"graintrade/models"
)

// deliveryOffset is added to the order date for the delivery estimate.
const deliveryOffset = 24 * time.Hour

// Timeline emits one entry per stage of the forward sequence. A stage is
// completed only when the order has reached it AND every earlier stage is
// completed, so a status outside the sequence can never produce a
// non-prefix completion pattern. Completed dates are derivation-time
// except for Order Placed, which keeps the real creation timestamp; no
// per-stage history is persisted.
func Timeline(order models.Order, now time.Time) []models.TimelineEntry {
	placed := order.CreatedAt
	timeline := []models.TimelineEntry{
		{Status: models.StatusOrderPlaced, Completed: true, Date: &placed},
	}

	current := models.StatusIndex(order.Status)
	allCompleted := true

	for i, status := range models.StatusSequence[1:] {
		completed := allCompleted && current >= i+1
		if !completed {
			allCompleted = false
		}

		entry := models.TimelineEntry{Status: status, Completed: completed}
		if completed {
			d := now
			entry.Date = &d
		}
		timeline = append(timeline, entry)
	}

	return timeline
}

// EstimatedDelivery is the order date plus a fixed offset.
func EstimatedDelivery(order models.Order) time.Time {
	return order.CreatedAt.Add(deliveryOffset)
}

// CurrentLocation maps the status onto a human-readable location string.
// Purely presentational; nothing is geolocated.
func CurrentLocation(order models.Order) string {
	switch order.Status {
	case models.StatusOrderPlaced:
		return "Processing at warehouse"
	case models.StatusPacking:
		return "Packaging department"
	case models.StatusShip:
		return "In transit to delivery center"
	case models.StatusOutForDelivery:
		return "With delivery agent"
	case models.StatusDelivered:
		return "Delivered to recipient"
	default:
		return "Unknown"
	}
}

// Track assembles the full tracking payload for one order.
func Track(order models.Order, now time.Time) models.TrackingInfo {
	paymentStatus := "Pending"
	if order.Payment {
		paymentStatus = "Paid"
	}

	return models.TrackingInfo{
		OrderID:           order.OrderID,
		Status:            order.Status,
		Timeline:          Timeline(order, now),
		EstimatedDelivery: EstimatedDelivery(order),
		CurrentLocation:   CurrentLocation(order),
		PaymentStatus:     paymentStatus,
	}
}
