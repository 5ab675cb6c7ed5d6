package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"agrogram/db"
	"agrogram/globals"
	"agrogram/middleware"
	"agrogram/models"
	"agrogram/mq"
	"agrogram/rbac"
	"agrogram/rdx"
	"agrogram/utils"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

const (
	refreshTokenTTL = 7 * 24 * time.Hour // 7 days
	accessTokenTTL  = 12 * time.Hour

	// Redis hash holding the live access token per user. An entry here means
	// a session exists; sign-out removes it.
	sessionHash = "sessions"
)

func loginHandler(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}
	if input.Email == "" || input.Password == "" {
		http.Error(w, "Email and password are required", http.StatusBadRequest)
		return
	}

	var storedUser models.User
	err := db.UserCollection.FindOne(context.TODO(), bson.M{"email": utils.NormalizeEmail(input.Email)}).Decode(&storedUser)
	if err != nil {
		http.Error(w, "Invalid email or password", http.StatusUnauthorized)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(storedUser.PasswordHash), []byte(input.Password)); err != nil {
		http.Error(w, "Invalid email or password", http.StatusUnauthorized)
		return
	}

	tokenString, err := generateAccessToken(storedUser)
	if err != nil {
		http.Error(w, "Failed to generate token", http.StatusInternalServerError)
		return
	}

	refreshToken, err := generateRefreshToken()
	if err != nil {
		http.Error(w, "Error generating refresh token", http.StatusInternalServerError)
		return
	}
	hashedRefresh := hashToken(refreshToken)

	_, err = db.UserCollection.UpdateOne(
		context.TODO(),
		bson.M{"userid": storedUser.UserID},
		bson.M{"$set": bson.M{
			"refresh_token":  hashedRefresh,
			"refresh_expiry": time.Now().Add(refreshTokenTTL),
			"last_login":     time.Now(),
		}},
	)
	if err != nil {
		http.Error(w, "Failed to store refresh token", http.StatusInternalServerError)
		return
	}

	if err := rdx.RdxHset(sessionHash, storedUser.UserID, tokenString); err != nil {
		log.Printf("Redis session storage failed: %v", err)
	}

	mq.Emit("user-loggedin", mq.Event{UserID: storedUser.UserID})

	utils.SendResponse(w, http.StatusOK, map[string]string{
		"token":        tokenString,
		"refreshToken": refreshToken,
		"userid":       storedUser.UserID,
		"role":         storedUser.Role,
		"sub_role":     rbac.NormalizeSubRole(storedUser.Role, storedUser.SubRole),
	}, "Login successful", nil)
}

func registerHandler(w http.ResponseWriter, r *http.Request) {
	var user models.User
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}

	user.Email = utils.NormalizeEmail(user.Email)
	if user.Email == "" || user.Password == "" || user.Username == "" {
		http.Error(w, "Missing required fields", http.StatusBadRequest)
		return
	}
	if user.Role == "" {
		user.Role = rbac.RoleConsumer
	}
	if !rbac.IsKnownRole(user.Role) || user.Role == rbac.RoleAdmin {
		http.Error(w, "Invalid role", http.StatusBadRequest)
		return
	}
	user.SubRole = rbac.NormalizeSubRole(user.Role, user.SubRole)

	// Check if user already exists
	err := db.UserCollection.FindOne(context.TODO(), bson.M{"email": user.Email}).Err()
	if err == nil {
		http.Error(w, "User already exists", http.StatusConflict)
		return
	} else if err != mongo.ErrNoDocuments {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	// Hash password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("Failed to hash password for user %s: %v", user.Username, err)
		http.Error(w, "Failed to hash password", http.StatusInternalServerError)
		return
	}
	user.Password = ""
	user.PasswordHash = string(hashedPassword)
	user.UserID = "u" + utils.GenerateName(10)
	user.EmailVerified = true
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()

	if err := rdx.RdxSet(fmt.Sprintf("users:%s", user.UserID), user.Username); err != nil {
		log.Printf("Failed to cache username: %v", err)
	}

	if _, err := db.UserCollection.InsertOne(context.TODO(), user); err != nil {
		http.Error(w, "Failed to register user", http.StatusInternalServerError)
		return
	}

	mq.Emit("user-registered", mq.Event{UserID: user.UserID})

	utils.SendResponse(w, http.StatusCreated, map[string]string{
		"userid":   user.UserID,
		"role":     user.Role,
		"sub_role": user.SubRole,
	}, "Registration successful", nil)
}

func logoutUserHandler(w http.ResponseWriter, r *http.Request) {
	claims, err := claimsFromRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnauthorized)
		return
	}

	// Drop the session and the cached profile together.
	if _, err := rdx.RdxHdel(sessionHash, claims.UserID); err != nil {
		log.Printf("Error removing session from Redis: %v", err)
		http.Error(w, "Failed to log out", http.StatusInternalServerError)
		return
	}
	if _, err := rdx.RdxDel("profile:" + claims.UserID); err != nil {
		log.Printf("Error clearing cached profile: %v", err)
	}

	db.UserCollection.UpdateOne(
		context.TODO(),
		bson.M{"userid": claims.UserID},
		bson.M{"$unset": bson.M{"refresh_token": "", "refresh_expiry": ""}},
	)

	mq.Emit("user-loggedout", mq.Event{UserID: claims.UserID})

	utils.SendResponse(w, http.StatusOK, nil, "User logged out successfully", nil)
}

func refreshTokenHandler(w http.ResponseWriter, r *http.Request) {
	claims, err := claimsFromRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnauthorized)
		return
	}

	// A refresh arriving after sign-out must not resurrect the session.
	if _, err := rdx.RdxHget(sessionHash, claims.UserID); err != nil {
		http.Error(w, "Session no longer exists", http.StatusUnauthorized)
		return
	}

	var storedUser models.User
	if err := db.UserCollection.FindOne(context.TODO(), bson.M{"userid": claims.UserID}).Decode(&storedUser); err != nil {
		http.Error(w, "Unknown user", http.StatusUnauthorized)
		return
	}

	newTokenString, err := generateAccessToken(storedUser)
	if err != nil {
		http.Error(w, "Failed to refresh token", http.StatusInternalServerError)
		return
	}

	if err := rdx.RdxHset(sessionHash, claims.UserID, newTokenString); err != nil {
		log.Printf("Error updating session in Redis: %v", err)
	}

	utils.SendResponse(w, http.StatusOK, map[string]string{"token": newTokenString}, "Token refreshed successfully", nil)
}

// capabilitiesHandler returns the RBAC view for the current identity: granted
// permission tokens, allowed route patterns, and the default dashboard path.
func capabilitiesHandler(w http.ResponseWriter, r *http.Request) {
	claims, err := claimsFromRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnauthorized)
		return
	}

	role := claims.Role
	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"role":        role,
		"sub_role":    rbac.NormalizeSubRole(role, claims.SubRole),
		"permissions": rbac.Permissions(role),
		"routes":      rbac.AllowedRoutes(role),
		"dashboard":   rbac.RoleDashboard(role),
	})
}

func claimsFromRequest(r *http.Request) (*middleware.Claims, error) {
	tokenString := r.Header.Get("Authorization")
	if tokenString == "" {
		return nil, fmt.Errorf("Missing token")
	}
	if len(tokenString) < 8 || tokenString[:7] != "Bearer " {
		return nil, fmt.Errorf("Invalid token format")
	}
	return middleware.ValidateJWT(tokenString[7:])
}

func generateAccessToken(user models.User) (string, error) {
	claims := &middleware.Claims{
		Username: user.Username,
		UserID:   user.UserID,
		Email:    user.Email,
		Role:     user.Role,
		SubRole:  rbac.NormalizeSubRole(user.Role, user.SubRole),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(accessTokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(globals.JwtSecret)
}

// Generates a random refresh token
func generateRefreshToken() (string, error) {
	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(tokenBytes), nil
}

// Hashes a given token
func hashToken(token string) string {
	hash := sha256.New()
	hash.Write([]byte(token))
	return hex.EncodeToString(hash.Sum(nil))
}
