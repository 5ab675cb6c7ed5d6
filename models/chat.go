package models

import "time"

// Conversation links exactly two participants, usually the buyer and seller
// of an order.
type Conversation struct {
	ConversationID string    `json:"conversationId" bson:"conversationId"`
	Participants   []string  `json:"participants" bson:"participants"`
	OrderID        string    `json:"orderId,omitempty" bson:"orderId,omitempty"`
	CreatedAt      time.Time `json:"createdAt" bson:"createdAt"`
	LastMessageAt  time.Time `json:"lastMessageAt" bson:"lastMessageAt"`
}

type Message struct {
	MessageID      string    `json:"messageId" bson:"messageId"`
	ConversationID string    `json:"conversationId" bson:"conversationId"`
	SenderID       string    `json:"senderId" bson:"senderId"`
	Content        string    `json:"content" bson:"content"`
	SentAt         time.Time `json:"sentAt" bson:"sentAt"`
	Read           bool      `json:"read" bson:"read"`
}

// Notification backs the unread badge counts on dashboards.
type Notification struct {
	NotificationID string    `json:"notificationId" bson:"notificationId"`
	UserID         string    `json:"userId" bson:"userId"`
	Kind           string    `json:"kind" bson:"kind"` // "order", "message"
	OrderID        string    `json:"orderId,omitempty" bson:"orderId,omitempty"`
	Text           string    `json:"text" bson:"text"`
	Read           bool      `json:"read" bson:"read"`
	CreatedAt      time.Time `json:"createdAt" bson:"createdAt"`
}
