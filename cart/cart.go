package cart

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"graintrade/db"
	"graintrade/models"
	"graintrade/mq"
	"graintrade/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

// loadUser fetches the cart owner; every mutation is a read-modify-write on
// the embedded cart. Concurrent writes are last-writer-wins.
func loadUser(ctx context.Context, userID string) (*models.User, error) {
	var user models.User
	if err := db.UserCollection.FindOne(ctx, bson.M{"userid": userID}).Decode(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

func saveCart(ctx context.Context, userID string, c models.Cart) error {
	_, err := db.UserCollection.UpdateOne(ctx,
		bson.M{"userid": userID},
		bson.M{"$set": bson.M{"cartData": c, "updated_at": time.Now()}},
	)
	return err
}

// AddToCart merges a line into the caller's cart, or appends a new one.
func AddToCart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var input struct {
		GrainID  string  `json:"grainId"`
		Quantity int     `json:"quantity"`
		Price    float64 `json:"price"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if input.GrainID == "" || input.Quantity <= 0 || input.Price < 0 {
		utils.RespondError(w, http.StatusBadRequest, "Missing or invalid fields")
		return
	}

	userID := utils.GetUserIDFromRequest(r)
	user, err := loadUser(ctx, userID)
	if err != nil {
		utils.RespondError(w, http.StatusNotFound, "User not found")
		return
	}

	user.Cart.Add(input.GrainID, input.Quantity, input.Price)

	if err := saveCart(ctx, userID, user.Cart); err != nil {
		log.Println("AddToCart save error:", err)
		utils.RespondError(w, http.StatusInternalServerError, "Failed to add to cart")
		return
	}

	utils.RespondSuccess(w, http.StatusOK, utils.M{
		"message":  "Added to cart",
		"cartData": user.Cart,
	})
}

// UpdateCart replaces the quantity of one line. Quantity zero or below
// removes the line.
func UpdateCart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var input struct {
		GrainID  string `json:"grainId"`
		Quantity int    `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	userID := utils.GetUserIDFromRequest(r)
	user, err := loadUser(ctx, userID)
	if err != nil {
		utils.RespondError(w, http.StatusNotFound, "User not found")
		return
	}

	if err := user.Cart.SetQuantity(input.GrainID, input.Quantity); err != nil {
		if errors.Is(err, models.ErrItemNotInCart) {
			utils.RespondError(w, http.StatusNotFound, "Item not found in cart")
			return
		}
		utils.RespondError(w, http.StatusInternalServerError, "Failed to update cart")
		return
	}

	if err := saveCart(ctx, userID, user.Cart); err != nil {
		log.Println("UpdateCart save error:", err)
		utils.RespondError(w, http.StatusInternalServerError, "Failed to update cart")
		return
	}

	utils.RespondSuccess(w, http.StatusOK, utils.M{
		"message":  "Cart Updated",
		"cartData": user.Cart,
	})
}

// RemoveFromCart deletes one line from the caller's cart.
func RemoveFromCart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var input struct {
		GrainID string `json:"grainId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.GrainID == "" {
		utils.RespondError(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	userID := utils.GetUserIDFromRequest(r)
	user, err := loadUser(ctx, userID)
	if err != nil {
		utils.RespondError(w, http.StatusNotFound, "User not found")
		return
	}

	if err := user.Cart.Remove(input.GrainID); err != nil {
		utils.RespondError(w, http.StatusNotFound, "Item not found in cart")
		return
	}

	if err := saveCart(ctx, userID, user.Cart); err != nil {
		log.Println("RemoveFromCart save error:", err)
		utils.RespondError(w, http.StatusInternalServerError, "Failed to remove item")
		return
	}

	utils.RespondSuccess(w, http.StatusOK, utils.M{
		"message":  "Item removed from cart",
		"cartData": user.Cart,
	})
}

// ClearCart resets the caller's cart to the empty aggregate.
func ClearCart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	user, err := loadUser(ctx, userID)
	if err != nil {
		utils.RespondError(w, http.StatusNotFound, "User not found")
		return
	}

	user.Cart.Clear()

	if err := saveCart(ctx, userID, user.Cart); err != nil {
		log.Println("ClearCart save error:", err)
		utils.RespondError(w, http.StatusInternalServerError, "Failed to clear cart")
		return
	}

	go mq.Emit(context.Background(), "cart-cleared", userID, userID, "")

	utils.RespondSuccess(w, http.StatusOK, utils.M{
		"message":  "Cart cleared",
		"cartData": user.Cart,
	})
}

// GetCart returns the cart verbatim; an untouched cart comes back as the
// zero aggregate rather than an error.
func GetCart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	user, err := loadUser(ctx, userID)
	if err != nil {
		utils.RespondError(w, http.StatusNotFound, "User not found")
		return
	}

	if user.Cart.Items == nil {
		user.Cart.Clear()
	}

	utils.RespondSuccess(w, http.StatusOK, utils.M{"cartData": user.Cart})
}
