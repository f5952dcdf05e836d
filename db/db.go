package db

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	UserCollection  *mongo.Collection
	GrainCollection *mongo.Collection
	OrderCollection *mongo.Collection
	Client          *mongo.Client
)

// Init connects to MongoDB and binds the collection handles.
func Init(uri, database string) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	Client = client

	UserCollection = Client.Database(database).Collection("users")
	GrainCollection = Client.Database(database).Collection("grains")
	OrderCollection = Client.Database(database).Collection("orders")
}

// Close disconnects the client; used during graceful shutdown.
func Close(ctx context.Context) {
	if Client != nil {
		if err := Client.Disconnect(ctx); err != nil {
			log.Printf("Mongo disconnect error: %v", err)
		}
	}
}
