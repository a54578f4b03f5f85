package db

import (
	"context"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"lostfound-hub/config"
)

// Client is the shared MongoDB connection, set once by InitDB at startup.
var Client *mongo.Client

// LostCollection holds "lost" reports, FoundCollection holds "found" reports.
// The two collections share the same document schema.
var LostCollection *mongo.Collection
var FoundCollection *mongo.Collection

// DatabaseName returns the database to use, defaulting to lostandfounddb.
func DatabaseName() string {
	if name := os.Getenv("MONGO_DB"); name != "" {
		return name
	}
	return "lostandfounddb"
}

// InitDB connects to MongoDB and binds the report collections.
func InitDB() {
	logger := config.GetLogger()

	mongoURI := os.Getenv("MONGODB_URI")
	if mongoURI == "" {
		logger.Fatal("MONGODB_URI not set in .env")
	}

	clientOptions := options.Client().ApplyURI(mongoURI)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		logger.Fatal("Failed to connect to MongoDB: ", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		logger.Fatal("Failed to ping MongoDB: ", err)
	}

	Client = client
	LostCollection = client.Database(DatabaseName()).Collection("lost_items")
	FoundCollection = client.Database(DatabaseName()).Collection("found_items")

	logger.Info("Connected to MongoDB")
}

// DisconnectDB closes the MongoDB connection.
func DisconnectDB() {
	if Client == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := Client.Disconnect(ctx); err != nil {
		config.GetLogger().Error("Failed to disconnect MongoDB: ", err)
		return
	}
	config.GetLogger().Info("Disconnected from MongoDB")
}

// OpenCollection returns a collection handle by name.
func OpenCollection(collectionName string) *mongo.Collection {
	return Client.Database(DatabaseName()).Collection(collectionName)
}
