// Package agi serves the recommendation strips on the role dashboards. A
// remote scorer ranks products; when it is unreachable the strip degrades to
// a local sample instead of failing the view.
package agi

import (
	"context"
	"log"
	"math/rand"
	"net/http"
	"net/url"
	"os"
	"time"

	"agrogram/db"
	"agrogram/globals"
	"agrogram/models"
	"agrogram/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var httpClient = &http.Client{Timeout: 5 * time.Second}

// Product types a role is most likely shopping for.
var roleInterests = map[string][]string{
	"FARMER":   {"seed", "equipment", "fertilizer"},
	"CONSUMER": {"produce", "livestock"},
	"SUPPLIER": {"produce"},
	"AGENT":    {"produce", "equipment"},
	"ADMIN":    {},
}

// GetRecommendations returns ranked products for the caller's role.
func GetRecommendations(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	role, _ := r.Context().Value(globals.RoleKey).(string)

	if items, err := remoteRecommendations(ctx, userID, role); err == nil {
		utils.RespondWithJSON(w, http.StatusOK, utils.M{"items": items, "source": "scorer"})
		return
	} else {
		log.Printf("Recommendation scorer unavailable: %v", err)
	}

	items, err := localSample(ctx, role)
	if err != nil {
		log.Println("Recommendation fallback error:", err)
		items = []models.Product{}
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"items": items, "source": "fallback"})
}

func remoteRecommendations(ctx context.Context, userID, role string) ([]models.Product, error) {
	base := os.Getenv("AGRO_AI_URL")
	if base == "" {
		return nil, errScorerUnconfigured
	}

	endpoint := base + "/v1/recommendations?" + url.Values{
		"user": {userID},
		"role": {role},
	}.Encode()

	var out struct {
		Items []models.Product `json:"items"`
	}
	if err := getJSON(ctx, httpClient, endpoint, &out); err != nil {
		return nil, err
	}
	return out.Items, nil
}

func localSample(ctx context.Context, role string) ([]models.Product, error) {
	filter := bson.M{"outOfStock": false}
	if interests := roleInterests[role]; len(interests) > 0 {
		filter["type"] = bson.M{"$in": interests}
	}

	cursor, err := db.ProductCollection.Find(ctx, filter,
		options.Find().SetLimit(24).SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var items []models.Product
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}

	rand.Shuffle(len(items), func(i, j int) { items[i], items[j] = items[j], items[i] })
	if len(items) > 8 {
		items = items[:8]
	}
	return items, nil
}

var errScorerUnconfigured = &scorerError{"AGRO_AI_URL not set"}

type scorerError struct{ msg string }

func (e *scorerError) Error() string { return e.msg }
