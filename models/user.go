package models

import "time"

type User struct {
	UserID      string    `json:"userid" bson:"userid"`
	Name        string    `json:"name" bson:"name"`
	Email       string    `json:"email" bson:"email"`
	Password    string    `json:"-" bson:"password"`
	CompanyName string    `json:"companyName,omitempty" bson:"companyName,omitempty"`
	Role        string    `json:"role" bson:"role"` // "admin" or "user"
	Cart        Cart      `json:"cartData" bson:"cartData"`
	ResetToken  string    `json:"-" bson:"resetToken,omitempty"`
	ResetExpiry time.Time `json:"-" bson:"resetExpiry,omitempty"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}
