package db

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	UserCollection     *mongo.Collection
	BookingsCollection *mongo.Collection
	SlotCollection     *mongo.Collection
	Client             *mongo.Client
)

// Connect establishes the MongoDB connection and binds the collections.
// Called once from main before the server starts accepting requests.
func Connect(ctx context.Context, uri, dbName string) error {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return err
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		return err
	}

	Client = client
	UserCollection = client.Database(dbName).Collection("users")
	BookingsCollection = client.Database(dbName).Collection("bookedDates")
	SlotCollection = client.Database(dbName).Collection("bookings")

	return ensureIndexes(ctx)
}

// ensureIndexes backs the one-booking-per-card-per-date rule with a unique
// index, so a concurrent duplicate surfaces as a write error instead of a
// second booking.
func ensureIndexes(ctx context.Context) error {
	_, err := BookingsCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "card", Value: 1}, {Key: "date", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

// Disconnect closes the Mongo client, used during shutdown.
func Disconnect(ctx context.Context) error {
	if Client == nil {
		return nil
	}
	return Client.Disconnect(ctx)
}
