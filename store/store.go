// Package store holds the persistence interfaces for users, bookings and
// slot occupancy, with MongoDB-backed and in-memory implementations.
package store

import (
	"context"
	"errors"

	"sevabook/models"
)

var (
	// ErrNotFound is returned when a looked-up document does not exist.
	ErrNotFound = errors.New("store: not found")
	// ErrSlotFull is returned by Reserve when occupancy is at capacity.
	ErrSlotFull = errors.New("store: slot full")
	// ErrDuplicateBooking is returned when a (card, date) booking already exists.
	ErrDuplicateBooking = errors.New("store: duplicate booking")
)

// UserStore reads registered card holders. Users are created out-of-band.
type UserStore interface {
	GetByCard(ctx context.Context, card string) (models.User, error)
}

// BookingStore persists per-user bookings keyed by (card, date).
type BookingStore interface {
	Get(ctx context.Context, card, date string) (models.Booking, error)
	Exists(ctx context.Context, card, date string) (bool, error)
	Put(ctx context.Context, b models.Booking) error
}

// SlotStore tracks slot occupancy counters keyed by the composite
// date-session-slot string.
type SlotStore interface {
	// Occupancy returns the current count, 0 when no document exists.
	Occupancy(ctx context.Context, key string) (int, error)
	// Reserve atomically increments occupancy while it is below capacity,
	// returning the new count or ErrSlotFull. Two concurrent callers can
	// never drive the count past capacity.
	Reserve(ctx context.Context, key string, capacity int) (int, error)
	// Release undoes one reservation, used when the booking write that
	// followed a successful Reserve fails.
	Release(ctx context.Context, key string) error
}
