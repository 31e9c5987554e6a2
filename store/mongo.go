package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"sevabook/models"
)

// MongoUserStore reads users from the users collection, one document per
// card number.
type MongoUserStore struct {
	Coll *mongo.Collection
}

func NewMongoUserStore(coll *mongo.Collection) *MongoUserStore {
	return &MongoUserStore{Coll: coll}
}

func (s *MongoUserStore) GetByCard(ctx context.Context, card string) (models.User, error) {
	var u models.User
	err := s.Coll.FindOne(ctx, bson.M{"_id": card}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.User{}, ErrNotFound
	}
	if err != nil {
		return models.User{}, fmt.Errorf("find user: %w", err)
	}
	return u, nil
}

// MongoBookingStore persists bookings; the unique (card, date) index turns a
// concurrent duplicate into ErrDuplicateBooking.
type MongoBookingStore struct {
	Coll *mongo.Collection
}

func NewMongoBookingStore(coll *mongo.Collection) *MongoBookingStore {
	return &MongoBookingStore{Coll: coll}
}

func (s *MongoBookingStore) Get(ctx context.Context, card, date string) (models.Booking, error) {
	var b models.Booking
	err := s.Coll.FindOne(ctx, bson.M{"card": card, "date": date}).Decode(&b)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Booking{}, ErrNotFound
	}
	if err != nil {
		return models.Booking{}, fmt.Errorf("find booking: %w", err)
	}
	return b, nil
}

func (s *MongoBookingStore) Exists(ctx context.Context, card, date string) (bool, error) {
	count, err := s.Coll.CountDocuments(ctx, bson.M{"card": card, "date": date})
	if err != nil {
		return false, fmt.Errorf("count bookings: %w", err)
	}
	return count > 0, nil
}

func (s *MongoBookingStore) Put(ctx context.Context, b models.Booking) error {
	_, err := s.Coll.InsertOne(ctx, b)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateBooking
	}
	if err != nil {
		return fmt.Errorf("insert booking: %w", err)
	}
	return nil
}

// MongoSlotStore keeps one counter document per slot key.
type MongoSlotStore struct {
	Coll *mongo.Collection
}

func NewMongoSlotStore(coll *mongo.Collection) *MongoSlotStore {
	return &MongoSlotStore{Coll: coll}
}

func (s *MongoSlotStore) Occupancy(ctx context.Context, key string) (int, error) {
	var sc models.SlotCount
	err := s.Coll.FindOne(ctx, bson.M{"_id": key}).Decode(&sc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("find slot count: %w", err)
	}
	return sc.Count, nil
}

// Reserve is a single bounded increment: the filter only matches while the
// count is below capacity, and the upsert covers the first booking of a slot.
// When the document exists at capacity the filter matches nothing and the
// upsert collides with the existing _id, which Mongo reports as a duplicate
// key — that is the slot-full signal.
func (s *MongoSlotStore) Reserve(ctx context.Context, key string, capacity int) (int, error) {
	filter := bson.M{"_id": key, "count": bson.M{"$lt": capacity}}
	update := bson.M{"$inc": bson.M{"count": 1}}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var sc models.SlotCount
	err := s.Coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&sc)
	if mongo.IsDuplicateKeyError(err) {
		return 0, ErrSlotFull
	}
	if err != nil {
		return 0, fmt.Errorf("reserve slot: %w", err)
	}
	return sc.Count, nil
}

func (s *MongoSlotStore) Release(ctx context.Context, key string) error {
	_, err := s.Coll.UpdateOne(ctx,
		bson.M{"_id": key, "count": bson.M{"$gt": 0}},
		bson.M{"$inc": bson.M{"count": -1}},
	)
	if err != nil {
		return fmt.Errorf("release slot: %w", err)
	}
	return nil
}
