package models

import "time"

// Order status sequence. The order of this slice is the forward lifecycle;
// Cancelled sits outside it and is terminal.
const (
	StatusOrderPlaced    = "Order Placed"
	StatusPacking        = "Packing"
	StatusShip           = "Ship"
	StatusOutForDelivery = "Out for delivery"
	StatusDelivered      = "Delivered"
	StatusCancelled      = "Cancelled"
)

var StatusSequence = []string{
	StatusOrderPlaced,
	StatusPacking,
	StatusShip,
	StatusOutForDelivery,
	StatusDelivered,
}

// StatusIndex returns the position of status in the forward sequence,
// or -1 when it is not part of it (Cancelled, garbage).
func StatusIndex(status string) int {
	for i, s := range StatusSequence {
		if s == status {
			return i
		}
	}
	return -1
}

// CanCancel reports whether an order in the given status may still be
// cancelled by its owner. Only the earliest two stages qualify.
func CanCancel(status string) bool {
	return status == StatusOrderPlaced || status == StatusPacking
}

type Address struct {
	Name    string `json:"name" bson:"name"`
	Phone   string `json:"phone" bson:"phone"`
	Street  string `json:"street" bson:"street"`
	City    string `json:"city" bson:"city"`
	State   string `json:"state" bson:"state"`
	Country string `json:"country" bson:"country"`
	Zipcode string `json:"zipcode" bson:"zipcode"`
}

// Order is an immutable snapshot of the cart at checkout. Only Status and
// Payment change after creation.
type Order struct {
	OrderID       string     `json:"orderId" bson:"orderid"`
	UserID        string     `json:"userId" bson:"userId"`
	Items         []CartItem `json:"items" bson:"items"`
	Address       Address    `json:"address" bson:"address"`
	Amount        float64    `json:"totalAmount" bson:"totalAmount"`
	PaymentMethod string     `json:"paymentMethod" bson:"paymentMethod"`
	Payment       bool       `json:"payment" bson:"payment"`
	Status        string     `json:"status" bson:"status"`
	CreatedAt     time.Time  `json:"date" bson:"date"`
}

// TimelineEntry is one stage of the derived tracking view.
type TimelineEntry struct {
	Status    string     `json:"status"`
	Completed bool       `json:"completed"`
	Date      *time.Time `json:"date"`
}

// TrackingInfo is the display-only tracking payload; nothing in it is
// persisted.
type TrackingInfo struct {
	OrderID           string          `json:"orderId"`
	Status            string          `json:"status"`
	Timeline          []TimelineEntry `json:"timeline"`
	EstimatedDelivery time.Time       `json:"estimatedDelivery"`
	CurrentLocation   string          `json:"currentLocation"`
	PaymentStatus     string          `json:"paymentStatus"`
}
