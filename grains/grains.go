package grains

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"graintrade/db"
	"graintrade/filemgr"
	"graintrade/models"
	"graintrade/mq"
	"graintrade/rdx"
	"graintrade/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	listCacheKey     = "grains:list"
	defaultListLimit = 50
)

// listCacheable reports whether a request may be served from or populate the
// shared list cache. Only the unfiltered first page at the default limit
// qualifies; a custom limit would poison the key for everyone else.
func listCacheable(search, grainType string, skip, limit int64) bool {
	return search == "" && grainType == "" && skip == 0 && limit == defaultListLimit
}

// GetGrains lists the catalog with optional ?search= and ?type= filters and
// pagination. The unfiltered first page is cached in Redis.
func GetGrains(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	search := r.URL.Query().Get("search")
	grainType := r.URL.Query().Get("type")
	skip, limit := utils.ParsePagination(r, defaultListLimit, 200)

	cacheable := listCacheable(search, grainType, skip, limit)

	if cacheable {
		if cached, err := rdx.RdxGet(listCacheKey); err == nil && cached != "" {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(cached))
			return
		}
	}

	filter := bson.M{}
	if grainType != "" {
		filter["type"] = models.Capitalize(grainType)
	}
	if search != "" {
		filter["$or"] = []bson.M{
			{"name": bson.M{"$regex": search, "$options": "i"}},
			{"supplier": bson.M{"$regex": search, "$options": "i"}},
			{"notes": bson.M{"$regex": search, "$options": "i"}},
		}
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}).SetSkip(skip).SetLimit(limit)
	cursor, err := db.GrainCollection.Find(ctx, filter, opts)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Could not retrieve grains")
		return
	}
	defer cursor.Close(ctx)

	var grains []models.Grain
	if err := cursor.All(ctx, &grains); err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error reading grain data")
		return
	}
	if grains == nil {
		grains = []models.Grain{}
	}

	body := map[string]any{"success": true, "grains": grains}
	if cacheable {
		if data, err := json.Marshal(body); err == nil {
			if err := rdx.SetWithExpiry(listCacheKey, string(data), 60*time.Second); err != nil {
				log.Println("grain list cache error:", err)
			}
		}
	}

	utils.RespondWithJSON(w, http.StatusOK, body)
}

// GetGrainTypes returns the fixed type vocabulary.
func GetGrainTypes(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	utils.RespondSuccess(w, http.StatusOK, utils.M{"types": models.GrainTypes})
}

// GetGrain returns one listing.
func GetGrain(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var grain models.Grain
	err := db.GrainCollection.FindOne(ctx, bson.M{"grainid": ps.ByName("id")}).Decode(&grain)
	if err != nil {
		utils.RespondError(w, http.StatusNotFound, "Grain not found")
		return
	}

	utils.RespondSuccess(w, http.StatusOK, utils.M{"grain": grain})
}

// CreateGrain adds a listing from a multipart form with image1..image4
// slots; at least one image is required. Admin only.
func CreateGrain(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Unable to parse form")
		return
	}

	name := r.FormValue("name")
	grainType := models.NormalizeType(r.FormValue("type"))
	unit := r.FormValue("unit")
	if name == "" || grainType == "" || unit == "" {
		utils.RespondError(w, http.StatusBadRequest, "Missing or invalid fields")
		return
	}

	quantity, err := strconv.Atoi(r.FormValue("quantity"))
	if err != nil || quantity < 0 {
		utils.RespondError(w, http.StatusBadRequest, "Quantity must be a non-negative integer")
		return
	}
	price, err := strconv.ParseFloat(r.FormValue("price"), 64)
	if err != nil || price < 0 {
		utils.RespondError(w, http.StatusBadRequest, "Price must be a non-negative number")
		return
	}

	images, err := filemgr.CollectGrainImages(r.MultipartForm)
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Image upload failed: "+err.Error())
		return
	}
	if len(images) == 0 {
		utils.RespondError(w, http.StatusBadRequest, "At least one image is required")
		return
	}

	now := time.Now()
	grain := models.Grain{
		GrainID:   "g" + utils.GenerateID(12),
		Name:      name,
		Type:      grainType,
		Images:    images,
		Quantity:  quantity,
		Unit:      models.NormalizeUnit(unit),
		Grade:     models.NormalizeGrade(r.FormValue("grade")),
		Price:     price,
		Supplier:  r.FormValue("supplier"),
		Status:    models.NormalizeStatus(r.FormValue("status")),
		Notes:     r.FormValue("notes"),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := db.GrainCollection.InsertOne(ctx, grain); err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Failed to insert grain")
		return
	}

	invalidateListCache()
	go mq.Emit(context.Background(), "grain-created", grain.GrainID, "", grain.Type)

	utils.RespondSuccess(w, http.StatusCreated, utils.M{"message": "Grain added successfully"})
}

// UpdateGrain applies a partial update; vocabulary fields are re-normalized
// before the write. Admin only.
func UpdateGrain(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var input map[string]any
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	set := bson.M{"updatedAt": time.Now()}
	for key, value := range input {
		switch key {
		case "name", "supplier", "notes":
			set[key] = value
		case "unit":
			if s, ok := value.(string); ok {
				set[key] = models.NormalizeUnit(s)
			}
		case "type":
			if s, ok := value.(string); ok {
				if t := models.NormalizeType(s); t != "" {
					set[key] = t
				}
			}
		case "grade":
			if s, ok := value.(string); ok {
				set[key] = models.NormalizeGrade(s)
			}
		case "status":
			if s, ok := value.(string); ok {
				set[key] = models.NormalizeStatus(s)
			}
		case "quantity":
			if n, ok := value.(float64); ok && n >= 0 {
				set[key] = int(n)
			}
		case "price":
			if n, ok := value.(float64); ok && n >= 0 {
				set[key] = n
			}
		}
	}

	res, err := db.GrainCollection.UpdateOne(ctx, bson.M{"grainid": ps.ByName("id")}, bson.M{"$set": set})
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Failed to update grain")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondError(w, http.StatusNotFound, "Grain not found")
		return
	}

	invalidateListCache()

	utils.RespondSuccess(w, http.StatusOK, utils.M{"message": "Grain updated"})
}

// DeleteGrain removes a listing. Hosted image cleanup is best-effort and
// out of scope. Admin only.
func DeleteGrain(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	res, err := db.GrainCollection.DeleteOne(ctx, bson.M{"grainid": ps.ByName("id")})
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Failed to delete grain")
		return
	}
	if res.DeletedCount == 0 {
		utils.RespondError(w, http.StatusNotFound, "Grain not found")
		return
	}

	invalidateListCache()
	go mq.Emit(context.Background(), "grain-deleted", ps.ByName("id"), "", "")

	utils.RespondSuccess(w, http.StatusOK, utils.M{"message": "Grain deleted successfully"})
}

func invalidateListCache() {
	if err := rdx.RdxDel(listCacheKey); err != nil {
		log.Println("grain list cache invalidation error:", err)
	}
}
