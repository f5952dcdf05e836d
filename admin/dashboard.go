package admin

import (
	"context"
	"net/http"
	"time"

	"graintrade/db"
	"graintrade/models"
	"graintrade/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// DashboardStats backs the admin console landing page: catalog size, order
// volume, user count and total revenue across non-cancelled orders.
func DashboardStats(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	totalProducts, err := db.GrainCollection.CountDocuments(ctx, bson.M{})
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Failed to fetch stats")
		return
	}

	totalOrders, err := db.OrderCollection.CountDocuments(ctx, bson.M{})
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Failed to fetch stats")
		return
	}

	totalUsers, err := db.UserCollection.CountDocuments(ctx, bson.M{})
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Failed to fetch stats")
		return
	}

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.D{{Key: "status", Value: bson.D{{Key: "$ne", Value: models.StatusCancelled}}}}}},
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "revenue", Value: bson.D{{Key: "$sum", Value: "$totalAmount"}}},
		}}},
	}

	cursor, err := db.OrderCollection.Aggregate(ctx, pipeline)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Failed to fetch stats")
		return
	}
	defer cursor.Close(ctx)

	var totalRevenue float64
	if cursor.Next(ctx) {
		var result struct {
			Revenue float64 `bson:"revenue"`
		}
		if err := cursor.Decode(&result); err == nil {
			totalRevenue = result.Revenue
		}
	}

	utils.RespondSuccess(w, http.StatusOK, utils.M{
		"stats": utils.M{
			"totalProducts": totalProducts,
			"totalOrders":   totalOrders,
			"totalUsers":    totalUsers,
			"totalRevenue":  totalRevenue,
		},
	})
}
