package mq

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"agrogram/db"
	"agrogram/rdx"
	"agrogram/utils"

	"agrogram/models"
)

const eventsChannel = "marketplace-events"

// Event is the message published on every auth or order state change.
type Event struct {
	Name     string `json:"name"`
	UserID   string `json:"user_id,omitempty"`
	OrderID  string `json:"order_id,omitempty"`
	Status   string `json:"status,omitempty"`
	NotifyID string `json:"notify_id,omitempty"` // counterparty to notify
	Text     string `json:"text,omitempty"`
}

// Emit publishes an event to Redis; failures are logged, never fatal.
func Emit(name string, evt Event) {
	evt.Name = name
	data, err := json.Marshal(evt)
	if err != nil {
		log.Printf("[Emit] Failed to marshal event: %v", err)
		return
	}
	if err := rdx.Conn.Publish(context.Background(), eventsChannel, data).Err(); err != nil {
		log.Printf("[Emit] Failed to publish %s: %v", name, err)
	}
}

// StartNotificationWorker consumes marketplace events and records per-user
// notifications backing the dashboard badge counts.
func StartNotificationWorker() {
	ctx := context.Background()
	sub := rdx.Conn.Subscribe(ctx, eventsChannel)
	ch := sub.Channel()

	log.Println("[NotificationWorker] Listening for marketplace events...")

	for msg := range ch {
		var evt Event
		if err := json.Unmarshal([]byte(msg.Payload), &evt); err != nil {
			log.Printf("[NotificationWorker] Failed to parse event: %v", err)
			continue
		}
		if evt.NotifyID == "" || evt.Text == "" {
			continue
		}

		notif := models.Notification{
			NotificationID: utils.GetUUID(),
			UserID:         evt.NotifyID,
			Kind:           notificationKind(evt),
			OrderID:        evt.OrderID,
			Text:           evt.Text,
			CreatedAt:      time.Now(),
		}
		if _, err := db.NotificationsCollection.InsertOne(ctx, notif); err != nil {
			log.Printf("[NotificationWorker] InsertOne error: %v", err)
		}
	}
}

func notificationKind(evt Event) string {
	if evt.OrderID != "" {
		return "order"
	}
	return "message"
}
