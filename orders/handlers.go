package orders

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"agrogram/db"
	"agrogram/models"
	"agrogram/mq"
	"agrogram/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// identityFromRequest loads the full identity (id + email) for party checks.
func identityFromRequest(r *http.Request) (Identity, models.User, bool) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		return Identity{}, models.User{}, false
	}
	var user models.User
	if err := db.UserCollection.FindOne(r.Context(), bson.M{"userid": userID}).Decode(&user); err != nil {
		return Identity{}, models.User{}, false
	}
	return Identity{UserID: user.UserID, Email: user.Email}, user, true
}

// GetOrders returns the caller's orders. ?side=buyer|seller scopes the list,
// ?status= and ?limit= filter it. Default is both sides, newest first.
func GetOrders(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	id, _, ok := identityFromRequest(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	buyerMatch := bson.M{"$or": bson.A{
		bson.M{"buyer_id": id.UserID},
		bson.M{"buyer_email": id.Email},
	}}
	sellerMatch := bson.M{"$or": bson.A{
		bson.M{"seller_id": id.UserID},
		bson.M{"seller_email": id.Email},
	}}

	var filter bson.M
	switch r.URL.Query().Get("side") {
	case "buyer":
		filter = buyerMatch
	case "seller":
		filter = sellerMatch
	default:
		filter = bson.M{"$or": bson.A{buyerMatch, sellerMatch}}
	}
	if status := r.URL.Query().Get("status"); status != "" {
		filter = bson.M{"$and": bson.A{filter, bson.M{"status": status}}}
	}

	limit := int64(50)
	if l, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && l > 0 {
		limit = int64(l)
	}

	findOptions := options.Find().
		SetLimit(limit).
		SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := db.OrderCollection.Find(ctx, filter, findOptions)
	if err != nil {
		log.Println("GetOrders Find error:", err)
		http.Error(w, "Could not retrieve orders", http.StatusInternalServerError)
		return
	}
	defer cursor.Close(ctx)

	var list []models.Order
	if err := cursor.All(ctx, &list); err != nil {
		log.Println("GetOrders cursor.All error:", err)
		http.Error(w, "Error reading orders", http.StatusInternalServerError)
		return
	}
	if len(list) == 0 {
		list = []models.Order{}
	}

	utils.RespondWithJSON(w, http.StatusOK, list)
}

// GetOrder returns one order, visible only to its buyer or seller.
func GetOrder(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	id, _, ok := identityFromRequest(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var order models.Order
	err := db.OrderCollection.FindOne(ctx, bson.M{"orderId": ps.ByName("orderid")}).Decode(&order)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Order not found")
		return
	}
	if !IsBuyer(order, id) && !IsSeller(order, id) {
		utils.RespondWithError(w, http.StatusForbidden, "Forbidden")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"order":   order,
		"actions": AvailableActions(order, id),
	})
}

// GetOrderActions returns just the permitted action descriptors.
func GetOrderActions(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	id, _, ok := identityFromRequest(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var order models.Order
	if err := db.OrderCollection.FindOne(ctx, bson.M{"orderId": ps.ByName("orderid")}).Decode(&order); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Order not found")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, AvailableActions(order, id))
}

// SubmitOrderAction validates an action form, applies the transition, and
// notifies the counterparty. Validation failures never touch storage.
func SubmitOrderAction(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	id, _, ok := identityFromRequest(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var payload struct {
		Action string     `json:"action"`
		Form   ActionForm `json:"form"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}

	var order models.Order
	if err := db.OrderCollection.FindOne(ctx, bson.M{"orderId": ps.ByName("orderid")}).Decode(&order); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Order not found")
		return
	}

	update, err := BuildUpdate(order, payload.Action, id, payload.Form)
	if err != nil {
		var verr *ValidationError
		switch {
		case errors.As(err, &verr):
			utils.RespondWithJSON(w, http.StatusUnprocessableEntity, utils.M{
				"error":  "validation_failed",
				"fields": verr.Fields,
			})
		case errors.Is(err, ErrNotParticipant):
			utils.RespondWithError(w, http.StatusForbidden, "Forbidden")
		case errors.Is(err, ErrActionNotAllowed):
			utils.RespondWithError(w, http.StatusConflict, "Action not allowed")
		default:
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid action")
		}
		return
	}

	// The status in the filter guards against a double submit racing the
	// refresh: the second write matches nothing.
	result, err := db.OrderCollection.UpdateOne(ctx,
		bson.M{"orderId": order.OrderID, "status": order.Status},
		bson.M{"$set": update},
	)
	if err != nil {
		log.Println("SubmitOrderAction UpdateOne error:", err)
		http.Error(w, "Failed to update order", http.StatusInternalServerError)
		return
	}
	if result.ModifiedCount == 0 {
		utils.RespondWithError(w, http.StatusConflict, "Order was updated concurrently")
		return
	}

	newStatus, _ := update["status"].(string)
	mq.Emit("order-status-changed", mq.Event{
		UserID:   id.UserID,
		OrderID:  order.OrderID,
		Status:   newStatus,
		NotifyID: counterpartyID(order, id),
		Text:     SuccessMessage(payload.Action) + " for order " + order.OrderID,
	})

	// Reload rather than patching locally.
	var updated models.Order
	if err := db.OrderCollection.FindOne(ctx, bson.M{"orderId": order.OrderID}).Decode(&updated); err != nil {
		log.Println("SubmitOrderAction reload error:", err)
		updated = order
	}

	utils.SendResponse(w, http.StatusOK, utils.M{
		"order":   updated,
		"actions": AvailableActions(updated, id),
	}, SuccessMessage(payload.Action), nil)
}

func counterpartyID(o models.Order, id Identity) string {
	if IsBuyer(o, id) {
		return o.SellerID
	}
	return o.BuyerID
}
