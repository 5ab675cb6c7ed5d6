package models

import "time"

type User struct {
	UserID        string    `json:"userid" bson:"userid"`
	Username      string    `json:"username" bson:"username"`
	Email         string    `json:"email" bson:"email"`
	Password      string    `json:"password,omitempty" bson:"-"`
	PasswordHash  string    `json:"-" bson:"password_hash"`
	Role          string    `json:"role" bson:"role"`
	SubRole       string    `json:"sub_role" bson:"sub_role"`
	FirstName     string    `json:"first_name,omitempty" bson:"first_name,omitempty"`
	LastName      string    `json:"last_name,omitempty" bson:"last_name,omitempty"`
	PhoneNumber   string    `json:"phone_number,omitempty" bson:"phone_number,omitempty"`
	Address       string    `json:"address,omitempty" bson:"address,omitempty"`
	Region        string    `json:"region,omitempty" bson:"region,omitempty"`
	Avatar        string    `json:"avatar,omitempty" bson:"avatar,omitempty"`
	EmailVerified bool      `json:"email_verified" bson:"email_verified"`
	CreatedAt     time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" bson:"updated_at"`
	LastLogin     time.Time `json:"last_login" bson:"last_login"`
	RefreshToken  string    `json:"-" bson:"refresh_token,omitempty"`
	RefreshExpiry time.Time `json:"-" bson:"refresh_expiry,omitempty"`
}

// Profile is the shape returned to clients; never carries credentials.
type Profile struct {
	UserID      string    `json:"userid" bson:"userid"`
	Username    string    `json:"username" bson:"username"`
	Email       string    `json:"email" bson:"email"`
	Role        string    `json:"role" bson:"role"`
	SubRole     string    `json:"sub_role" bson:"sub_role"`
	FirstName   string    `json:"first_name,omitempty" bson:"first_name,omitempty"`
	LastName    string    `json:"last_name,omitempty" bson:"last_name,omitempty"`
	PhoneNumber string    `json:"phone_number,omitempty" bson:"phone_number,omitempty"`
	Address     string    `json:"address,omitempty" bson:"address,omitempty"`
	Region      string    `json:"region,omitempty" bson:"region,omitempty"`
	Avatar      string    `json:"avatar,omitempty" bson:"avatar,omitempty"`
	LastLogin   time.Time `json:"last_login" bson:"last_login"`
}
