package auth

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"time"

	"graintrade/db"
	"graintrade/globals"
	"graintrade/middleware"
	"graintrade/models"
	"graintrade/rdx"
	"graintrade/utils"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

const tokenTTL = 12 * time.Hour

// Redis hash holding the active token per user; cleared on logout.
const tokenHash = "tokki"

func registerHandler(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Name        string `json:"name"`
		Email       string `json:"email"`
		Password    string `json:"password"`
		CompanyName string `json:"companyName"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if input.Name == "" || input.Email == "" || input.Password == "" {
		utils.RespondError(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	// Check if user already exists
	err := db.UserCollection.FindOne(ctx, bson.M{"email": input.Email}).Err()
	if err == nil {
		utils.RespondError(w, http.StatusBadRequest, "User already exists")
		return
	} else if err != mongo.ErrNoDocuments {
		utils.RespondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("Failed to hash password for %s: %v", input.Email, err)
		utils.RespondError(w, http.StatusInternalServerError, "Failed to hash password")
		return
	}

	now := time.Now()
	user := models.User{
		UserID:      "u" + utils.GenerateID(10),
		Name:        input.Name,
		Email:       input.Email,
		Password:    string(hashedPassword),
		CompanyName: input.CompanyName,
		Role:        "user",
		Cart:        models.Cart{Items: []models.CartItem{}},
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if _, err := db.UserCollection.InsertOne(ctx, user); err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Failed to register user")
		return
	}

	utils.RespondSuccess(w, http.StatusCreated, utils.M{"user": user})
}

func loginHandler(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var storedUser models.User
	err := db.UserCollection.FindOne(ctx, bson.M{"email": input.Email}).Decode(&storedUser)
	if err != nil {
		utils.RespondError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(storedUser.Password), []byte(input.Password)); err != nil {
		utils.RespondError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	tokenString, err := issueToken(storedUser.UserID, storedUser.Email, storedUser.Role)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	if err := rdx.RdxHset(tokenHash, storedUser.UserID, tokenString); err != nil {
		log.Printf("Redis token cache failed: %v", err)
	}

	utils.RespondSuccess(w, http.StatusOK, utils.M{
		"token":  tokenString,
		"userid": storedUser.UserID,
	})
}

// adminLoginHandler compares against the configured admin credentials and
// issues an admin-role token. There is no admin user record.
func adminLoginHandler(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	adminEmail := os.Getenv("ADMIN_EMAIL")
	adminPass := os.Getenv("ADMIN_PASS")
	if adminEmail == "" || input.Email != adminEmail || input.Password != adminPass {
		utils.RespondError(w, http.StatusUnauthorized, "Invalid Credentials")
		return
	}

	tokenString, err := issueToken("admin", adminEmail, "admin")
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	utils.RespondSuccess(w, http.StatusOK, utils.M{"token": tokenString})
}

func logoutHandler(w http.ResponseWriter, r *http.Request) {
	tokenString := r.Header.Get("Authorization")
	claims, err := middleware.ValidateJWT(tokenString)
	if err != nil {
		utils.RespondError(w, http.StatusUnauthorized, "Invalid token")
		return
	}

	if _, err := rdx.RdxHdel(tokenHash, claims.UserID); err != nil {
		log.Printf("Error removing token from Redis: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, "Failed to log out")
		return
	}

	utils.RespondSuccess(w, http.StatusOK, utils.M{"message": "Logged out successfully"})
}

func issueToken(userID, email, role string) (string, error) {
	claims := &middleware.Claims{
		UserID: userID,
		Email:  email,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(globals.JwtSecret)
}
