package grains

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"graintrade/db"
	"graintrade/models"
	"graintrade/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

// AddReview appends a review to a listing and recomputes the derived
// average rating from the full review list.
func AddReview(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)

	var input struct {
		Rating  int    `json:"rating"`
		Comment string `json:"comment"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.Rating < 1 || input.Rating > 5 {
		utils.RespondError(w, http.StatusBadRequest, "Rating must be between 1 and 5")
		return
	}

	var grain models.Grain
	if err := db.GrainCollection.FindOne(ctx, bson.M{"grainid": ps.ByName("id")}).Decode(&grain); err != nil {
		utils.RespondError(w, http.StatusNotFound, "Grain not found")
		return
	}

	grain.Reviews = append(grain.Reviews, models.Review{
		UserID:    userID,
		Rating:    input.Rating,
		Comment:   input.Comment,
		CreatedAt: time.Now(),
	})

	_, err := db.GrainCollection.UpdateOne(ctx,
		bson.M{"grainid": grain.GrainID},
		bson.M{"$set": bson.M{
			"reviews":   grain.Reviews,
			"rating":    grain.AverageRating(),
			"updatedAt": time.Now(),
		}},
	)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Failed to add review")
		return
	}

	// the cached first page carries the derived rating
	invalidateListCache()

	utils.RespondSuccess(w, http.StatusOK, utils.M{"message": "Review added"})
}
