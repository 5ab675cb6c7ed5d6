package db

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	UserCollection          *mongo.Collection
	CartCollection          *mongo.Collection
	OrderCollection         *mongo.Collection
	ProductCollection       *mongo.Collection
	ConversationsCollection *mongo.Collection
	MessagesCollection      *mongo.Collection
	NotificationsCollection *mongo.Collection
	Client                  *mongo.Client
)

// Initialize MongoDB connection
func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found; using system environment")
	}

	uri := os.Getenv("MONGODB_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}

	clientOptions := options.Client().ApplyURI(uri)
	var err error
	Client, err = mongo.Connect(context.TODO(), clientOptions)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	database := Client.Database("agrogram")
	UserCollection = database.Collection("users")
	CartCollection = database.Collection("cart")
	OrderCollection = database.Collection("orders")
	ProductCollection = database.Collection("products")
	ConversationsCollection = database.Collection("conversations")
	MessagesCollection = database.Collection("messages")
	NotificationsCollection = database.Collection("notifications")
}
