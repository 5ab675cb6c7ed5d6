package chats

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"agrogram/db"
	"agrogram/models"
	"agrogram/mq"
	"agrogram/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ContactCounterparty opens (or finds) the conversation between the caller
// and the other party of an order. This is the landing point of the order
// screens' contact action; it never changes the order status.
func ContactCounterparty(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var payload struct {
		OrderID string `json:"orderId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.OrderID == "" {
		http.Error(w, "orderId is required", http.StatusBadRequest)
		return
	}

	var order models.Order
	if err := db.OrderCollection.FindOne(ctx, bson.M{"orderId": payload.OrderID}).Decode(&order); err != nil {
		http.Error(w, "Order not found", http.StatusNotFound)
		return
	}

	var other string
	switch userID {
	case order.BuyerID:
		other = order.SellerID
	case order.SellerID:
		other = order.BuyerID
	default:
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	conv, err := findOrCreateConversation(ctx, userID, other, order.OrderID)
	if err != nil {
		log.Println("ContactCounterparty conversation error:", err)
		http.Error(w, "Failed to open conversation", http.StatusInternalServerError)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, conv)
}

// GetConversations lists the caller's conversations, most recent first.
func GetConversations(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	cursor, err := db.ConversationsCollection.Find(ctx,
		bson.M{"participants": userID},
		options.Find().SetSort(bson.D{{Key: "lastMessageAt", Value: -1}}))
	if err != nil {
		http.Error(w, "Could not retrieve conversations", http.StatusInternalServerError)
		return
	}
	defer cursor.Close(ctx)

	var list []models.Conversation
	if err := cursor.All(ctx, &list); err != nil {
		http.Error(w, "Error reading conversations", http.StatusInternalServerError)
		return
	}
	if len(list) == 0 {
		list = []models.Conversation{}
	}
	utils.RespondWithJSON(w, http.StatusOK, list)
}

// GetMessages returns a conversation's messages, oldest first. Participants
// only; reading marks the other side's messages as read.
func GetMessages(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	convID := ps.ByName("conversationid")
	if !isParticipant(ctx, convID, userID) {
		http.Error(w, "Conversation not found", http.StatusNotFound)
		return
	}

	cursor, err := db.MessagesCollection.Find(ctx,
		bson.M{"conversationId": convID},
		options.Find().SetSort(bson.D{{Key: "sentAt", Value: 1}}))
	if err != nil {
		http.Error(w, "Could not retrieve messages", http.StatusInternalServerError)
		return
	}
	defer cursor.Close(ctx)

	var messages []models.Message
	if err := cursor.All(ctx, &messages); err != nil {
		http.Error(w, "Error reading messages", http.StatusInternalServerError)
		return
	}
	if len(messages) == 0 {
		messages = []models.Message{}
	}

	db.MessagesCollection.UpdateMany(ctx,
		bson.M{"conversationId": convID, "senderId": bson.M{"$ne": userID}, "read": false},
		bson.M{"$set": bson.M{"read": true}},
	)

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"conversationId": convID,
		"messages":       messages,
	})
}

// PostMessage appends a message and pushes it to live subscribers.
func PostMessage(hub *Hub) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
		defer cancel()

		userID := utils.GetUserIDFromRequest(r)
		if userID == "" {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		var payload struct {
			Content string `json:"content"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.Content == "" {
			http.Error(w, "content is required", http.StatusBadRequest)
			return
		}

		convID := ps.ByName("conversationid")
		var conv models.Conversation
		err := db.ConversationsCollection.FindOne(ctx, bson.M{
			"conversationId": convID,
			"participants":   userID,
		}).Decode(&conv)
		if err != nil {
			http.Error(w, "Conversation not found", http.StatusNotFound)
			return
		}

		msg := models.Message{
			MessageID:      "m" + utils.GenerateName(10),
			ConversationID: convID,
			SenderID:       userID,
			Content:        payload.Content,
			SentAt:         time.Now(),
		}
		if _, err := db.MessagesCollection.InsertOne(ctx, msg); err != nil {
			log.Println("PostMessage InsertOne error:", err)
			http.Error(w, "Failed to send message", http.StatusInternalServerError)
			return
		}

		db.ConversationsCollection.UpdateOne(ctx,
			bson.M{"conversationId": convID},
			bson.M{"$set": bson.M{"lastMessageAt": msg.SentAt}},
		)

		if data, err := json.Marshal(msg); err == nil {
			hub.Broadcast(convID, data)
		}

		for _, p := range conv.Participants {
			if p != userID {
				mq.Emit("message-sent", mq.Event{
					UserID:   userID,
					NotifyID: p,
					Text:     "New message received",
				})
			}
		}

		utils.RespondWithJSON(w, http.StatusCreated, msg)
	}
}

func isParticipant(ctx context.Context, convID, userID string) bool {
	count, err := db.ConversationsCollection.CountDocuments(ctx, bson.M{
		"conversationId": convID,
		"participants":   userID,
	})
	return err == nil && count > 0
}

func findOrCreateConversation(ctx context.Context, a, b, orderID string) (models.Conversation, error) {
	var conv models.Conversation
	err := db.ConversationsCollection.FindOne(ctx, bson.M{
		"participants": bson.M{"$all": bson.A{a, b}},
		"orderId":      orderID,
	}).Decode(&conv)
	if err == nil {
		return conv, nil
	}
	if err != mongo.ErrNoDocuments {
		return models.Conversation{}, err
	}

	conv = models.Conversation{
		ConversationID: "c" + utils.GenerateName(10),
		Participants:   []string{a, b},
		OrderID:        orderID,
		CreatedAt:      time.Now(),
		LastMessageAt:  time.Now(),
	}
	if _, err := db.ConversationsCollection.InsertOne(ctx, conv); err != nil {
		return models.Conversation{}, err
	}
	return conv, nil
}
