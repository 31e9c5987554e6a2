// Package rdx wraps the Redis connection and the booking-details cache.
// The cache is an optimization for the confirm page; every helper degrades
// to a no-op error when Redis is unavailable and callers fall back to Mongo.
package rdx

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"sevabook/models"
)

var Conn *redis.Client

// bookingTTL bounds staleness of cached booking documents. Bookings are
// immutable once written, the TTL just keeps the keyspace from growing.
const bookingTTL = 24 * time.Hour

// Connect initializes the shared Redis client.
func Connect(ctx context.Context, addr, password string) error {
	Conn = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})
	return Conn.Ping(ctx).Err()
}

func bookingCacheKey(card, date string) string {
	return fmt.Sprintf("booking:%s:%s", card, date)
}

// CacheBooking stores a booking document for fast confirm-page reads.
func CacheBooking(ctx context.Context, b models.Booking) error {
	if Conn == nil {
		return redis.ErrClosed
	}
	data, err := json.Marshal(b)
	if err != nil {
		return err
	}
	return Conn.Set(ctx, bookingCacheKey(b.Card, b.Date), data, bookingTTL).Err()
}

// CachedBooking returns a previously cached booking. redis.Nil means a miss.
func CachedBooking(ctx context.Context, card, date string) (models.Booking, error) {
	if Conn == nil {
		return models.Booking{}, redis.ErrClosed
	}
	data, err := Conn.Get(ctx, bookingCacheKey(card, date)).Bytes()
	if err != nil {
		return models.Booking{}, err
	}
	var b models.Booking
	if err := json.Unmarshal(data, &b); err != nil {
		return models.Booking{}, err
	}
	return b, nil
}
