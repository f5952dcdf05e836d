package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log"
	"net/http"
	"net/smtp"
	"os"
	"time"

	"graintrade/db"
	"graintrade/models"
	"graintrade/utils"

	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/crypto/bcrypt"
)

const resetTokenTTL = 30 * time.Minute

// requestResetHandler issues a single-use reset token. The token is stored
// hashed on the user record with its expiry; the plaintext goes out by mail.
// The response is identical whether or not the email exists.
func requestResetHandler(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.Email == "" {
		utils.RespondError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var user models.User
	if err := db.UserCollection.FindOne(ctx, bson.M{"email": input.Email}).Decode(&user); err != nil {
		utils.RespondSuccess(w, http.StatusOK, utils.M{"message": "If the account exists, a reset email has been sent"})
		return
	}

	token, err := generateResetToken()
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Failed to generate reset token")
		return
	}

	_, err = db.UserCollection.UpdateOne(ctx,
		bson.M{"userid": user.UserID},
		bson.M{"$set": bson.M{
			"resetToken":  hashToken(token),
			"resetExpiry": time.Now().Add(resetTokenTTL),
		}},
	)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Failed to store reset token")
		return
	}

	if err := sendResetEmail(user.Email, token); err != nil {
		log.Printf("Reset email to %s failed: %v", user.Email, err)
	}

	utils.RespondSuccess(w, http.StatusOK, utils.M{"message": "If the account exists, a reset email has been sent"})
}

// confirmResetHandler swaps the password if the presented token matches the
// stored hash and has not expired. The token is invalidated either way once
// used successfully.
func confirmResetHandler(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Email    string `json:"email"`
		Token    string `json:"token"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.Token == "" || input.Password == "" {
		utils.RespondError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var user models.User
	if err := db.UserCollection.FindOne(ctx, bson.M{"email": input.Email}).Decode(&user); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid or expired reset token")
		return
	}

	if user.ResetToken == "" || user.ResetToken != hashToken(input.Token) || time.Now().After(user.ResetExpiry) {
		utils.RespondError(w, http.StatusBadRequest, "Invalid or expired reset token")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Failed to hash password")
		return
	}

	_, err = db.UserCollection.UpdateOne(ctx,
		bson.M{"userid": user.UserID},
		bson.M{
			"$set":   bson.M{"password": string(hashedPassword), "updated_at": time.Now()},
			"$unset": bson.M{"resetToken": "", "resetExpiry": ""},
		},
	)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Failed to update password")
		return
	}

	utils.RespondSuccess(w, http.StatusOK, utils.M{"message": "Password updated"})
}

func generateResetToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func sendResetEmail(toEmail, token string) error {
	from := os.Getenv("SMTP_FROM")
	pass := os.Getenv("SMTP_PASS")
	smtpHost := os.Getenv("SMTP_HOST")
	smtpPort := os.Getenv("SMTP_PORT")
	if smtpHost == "" {
		log.Printf("SMTP not configured; reset token for %s: %s", toEmail, token)
		return nil
	}

	msg := []byte("Subject: Password Reset\n\nYour reset token is: " + token)
	auth := smtp.PlainAuth("", from, pass, smtpHost)
	return smtp.SendMail(smtpHost+":"+smtpPort, auth, from, []string{toEmail}, msg)
}
