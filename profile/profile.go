package profile

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"agrogram/db"
	"agrogram/models"
	"agrogram/rbac"
	"agrogram/rdx"
	"agrogram/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

const profileCacheTTL = 10 * time.Minute

// GetProfile returns the caller's profile, served from the Redis cache when
// the cached blob belongs to the same identity. A blob cached for a
// different userid is discarded, never served.
func GetProfile(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	if cached, err := rdx.RdxGet("profile:" + userID); err == nil && cached != "" {
		var p models.Profile
		if err := json.Unmarshal([]byte(cached), &p); err == nil && p.UserID == userID {
			utils.RespondWithJSON(w, http.StatusOK, p)
			return
		}
		// Stale or foreign blob: drop it and refetch.
		rdx.RdxDel("profile:" + userID)
	}

	p, err := fetchProfile(ctx, userID)
	if err != nil {
		http.Error(w, "Profile not found", http.StatusNotFound)
		return
	}

	cacheProfile(p)
	utils.RespondWithJSON(w, http.StatusOK, p)
}

// UpdateProfile applies a partial update to the caller's profile. Role and
// credentials are not updatable here.
func UpdateProfile(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var input struct {
		FirstName   *string `json:"first_name"`
		LastName    *string `json:"last_name"`
		PhoneNumber *string `json:"phone_number"`
		Address     *string `json:"address"`
		Region      *string `json:"region"`
		SubRole     *string `json:"sub_role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}

	set := bson.M{"updated_at": time.Now()}
	if input.FirstName != nil {
		set["first_name"] = *input.FirstName
	}
	if input.LastName != nil {
		set["last_name"] = *input.LastName
	}
	if input.PhoneNumber != nil {
		set["phone_number"] = *input.PhoneNumber
	}
	if input.Address != nil {
		set["address"] = *input.Address
	}
	if input.Region != nil {
		set["region"] = *input.Region
	}
	if input.SubRole != nil {
		var user models.User
		if err := db.UserCollection.FindOne(ctx, bson.M{"userid": userID}).Decode(&user); err != nil {
			http.Error(w, "Profile not found", http.StatusNotFound)
			return
		}
		set["sub_role"] = rbac.NormalizeSubRole(user.Role, *input.SubRole)
	}

	if _, err := db.UserCollection.UpdateOne(ctx, bson.M{"userid": userID}, bson.M{"$set": set}); err != nil {
		log.Println("UpdateProfile UpdateOne error:", err)
		http.Error(w, "Failed to update profile", http.StatusInternalServerError)
		return
	}

	p, err := fetchProfile(ctx, userID)
	if err != nil {
		http.Error(w, "Profile not found", http.StatusNotFound)
		return
	}
	cacheProfile(p)

	utils.SendResponse(w, http.StatusOK, p, "Profile updated", nil)
}

// GetBadges returns the unread notification count for dashboard badges.
func GetBadges(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	count, err := db.NotificationsCollection.CountDocuments(ctx, bson.M{"userId": userID, "read": false})
	if err != nil {
		log.Println("GetBadges CountDocuments error:", err)
		count = 0 // badge degrades to zero rather than failing the view
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"unread": count})
}

func fetchProfile(ctx context.Context, userID string) (models.Profile, error) {
	var user models.User
	if err := db.UserCollection.FindOne(ctx, bson.M{"userid": userID}).Decode(&user); err != nil {
		return models.Profile{}, err
	}
	return models.Profile{
		UserID:      user.UserID,
		Username:    user.Username,
		Email:       user.Email,
		Role:        user.Role,
		SubRole:     rbac.NormalizeSubRole(user.Role, user.SubRole),
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		PhoneNumber: user.PhoneNumber,
		Address:     user.Address,
		Region:      user.Region,
		Avatar:      user.Avatar,
		LastLogin:   user.LastLogin,
	}, nil
}

func cacheProfile(p models.Profile) {
	data, err := json.Marshal(p)
	if err != nil {
		return
	}
	if err := rdx.SetWithExpiry("profile:"+p.UserID, string(data), profileCacheTTL); err != nil {
		log.Printf("Profile cache write failed: %v", err)
	}
}
