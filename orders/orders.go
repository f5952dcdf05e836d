package orders

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"graintrade/db"
	"graintrade/models"
	"graintrade/mq"
	"graintrade/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// BuildOrder constructs the immutable order snapshot from the posted cart
// contents. Items are copied by value; address arrives as a JSON-encoded
// string from the checkout form.
func BuildOrder(userID string, items []models.CartItem, addressJSON string, amount float64, now time.Time) (models.Order, error) {
	var addr models.Address
	if err := json.Unmarshal([]byte(addressJSON), &addr); err != nil {
		return models.Order{}, fmt.Errorf("parse address: %w", err)
	}

	snapshot := make([]models.CartItem, len(items))
	copy(snapshot, items)

	return models.Order{
		OrderID:       "ORD" + utils.GenerateID(12),
		UserID:        userID,
		Items:         snapshot,
		Address:       addr,
		Amount:        amount,
		PaymentMethod: "COD",
		Payment:       false,
		Status:        models.StatusOrderPlaced,
		CreatedAt:     now,
	}, nil
}

// PlaceOrder persists a new order from the posted cart and then clears the
// user's cart. The order write comes first so a failed insert cannot lose
// the cart contents.
func PlaceOrder(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var input struct {
		Items   []models.CartItem `json:"items"`
		Amount  float64           `json:"amount"`
		Address string            `json:"address"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid order payload")
		return
	}

	userID := utils.GetUserIDFromRequest(r)

	order, err := BuildOrder(userID, input.Items, input.Address, input.Amount, time.Now())
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid address payload")
		return
	}

	if _, err := db.OrderCollection.InsertOne(ctx, order); err != nil {
		log.Println("PlaceOrder InsertOne error:", err)
		utils.RespondError(w, http.StatusInternalServerError, "Order creation failed")
		return
	}

	// Only after the order is durable
	empty := models.Cart{Items: []models.CartItem{}}
	if _, err := db.UserCollection.UpdateOne(ctx,
		bson.M{"userid": userID},
		bson.M{"$set": bson.M{"cartData": empty}},
	); err != nil {
		log.Println("PlaceOrder cart clear error:", err)
	}

	go mq.Emit(context.Background(), "order-placed", order.OrderID, userID, order.Status)

	utils.RespondSuccess(w, http.StatusOK, utils.M{"message": "Order Placed"})
}

// UserOrders lists the caller's own orders, newest first.
func UserOrders(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cursor, err := db.OrderCollection.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Could not retrieve orders")
		return
	}
	defer cursor.Close(ctx)

	var orders []models.Order
	if err := cursor.All(ctx, &orders); err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error reading orders")
		return
	}
	if orders == nil {
		orders = []models.Order{}
	}

	utils.RespondSuccess(w, http.StatusOK, utils.M{"orders": orders})
}

// AllOrders returns every order for the admin console, newest first.
func AllOrders(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	skip, limit := utils.ParsePagination(r, 50, 200)
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}}).SetSkip(skip).SetLimit(limit)

	cursor, err := db.OrderCollection.Find(ctx, bson.M{}, opts)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Could not retrieve orders")
		return
	}
	defer cursor.Close(ctx)

	var orders []models.Order
	if err := cursor.All(ctx, &orders); err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error reading orders")
		return
	}
	if orders == nil {
		orders = []models.Order{}
	}

	utils.RespondSuccess(w, http.StatusOK, utils.M{"orders": orders})
}

// authorizeOrderAccess allows only the owning user to read or act on an
// order. Returns a zero code when access is granted.
func authorizeOrderAccess(order *models.Order, userID string) (int, string) {
	if order.UserID != userID {
		return http.StatusForbidden, "Not authorized to view this order"
	}
	return 0, ""
}

// loadOwnedOrder fetches an order and enforces that the caller owns it.
func loadOwnedOrder(ctx context.Context, orderID, userID string) (*models.Order, int, string) {
	var order models.Order
	if err := db.OrderCollection.FindOne(ctx, bson.M{"orderid": orderID}).Decode(&order); err != nil {
		return nil, http.StatusNotFound, "Order not found"
	}
	if code, msg := authorizeOrderAccess(&order, userID); code != 0 {
		return nil, code, msg
	}
	return &order, 0, ""
}

// GetOrderByID returns one order, ownership-checked.
func GetOrderByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	order, code, msg := loadOwnedOrder(ctx, ps.ByName("id"), utils.GetUserIDFromRequest(r))
	if order == nil {
		utils.RespondError(w, code, msg)
		return
	}

	utils.RespondSuccess(w, http.StatusOK, utils.M{"order": order})
}

// CancelOrder moves an order to Cancelled, allowed only while it is still
// in the first two stages.
func CancelOrder(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	order, code, msg := loadOwnedOrder(ctx, ps.ByName("id"), utils.GetUserIDFromRequest(r))
	if order == nil {
		utils.RespondError(w, code, msg)
		return
	}

	if !models.CanCancel(order.Status) {
		utils.RespondError(w, http.StatusBadRequest, "Cannot cancel order that has been shipped or delivered")
		return
	}

	_, err := db.OrderCollection.UpdateOne(ctx,
		bson.M{"orderid": order.OrderID},
		bson.M{"$set": bson.M{"status": models.StatusCancelled}},
	)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Failed to cancel order")
		return
	}

	go mq.Emit(context.Background(), "order-cancelled", order.OrderID, order.UserID, "")

	utils.RespondSuccess(w, http.StatusOK, utils.M{"message": "Order cancelled successfully"})
}

// UpdateStatus overwrites the status field. No transition validation is
// done; the admin console may move an order anywhere in the sequence.
func UpdateStatus(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var input struct {
		OrderID string `json:"orderId"`
		Status  string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.OrderID == "" || input.Status == "" {
		utils.RespondError(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	res, err := db.OrderCollection.UpdateOne(ctx,
		bson.M{"orderid": input.OrderID},
		bson.M{"$set": bson.M{"status": input.Status}},
	)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Failed to update status")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondError(w, http.StatusNotFound, "Order not found")
		return
	}

	go mq.Emit(context.Background(), "order-status", input.OrderID, "", input.Status)

	utils.RespondSuccess(w, http.StatusOK, utils.M{"message": "Status Updated"})
}

// TrackOrder derives the display timeline from the order's current status.
func TrackOrder(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	order, code, msg := loadOwnedOrder(ctx, ps.ByName("id"), utils.GetUserIDFromRequest(r))
	if order == nil {
		utils.RespondError(w, code, msg)
		return
	}

	utils.RespondSuccess(w, http.StatusOK, utils.M{"trackingInfo": Track(*order, time.Now())})
}
