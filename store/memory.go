package store

import (
	"context"
	"sync"

	"sevabook/models"
)

// Memory is an in-process implementation of all three stores, used by tests
// and by local development without a Mongo deployment.
type Memory struct {
	mu       sync.Mutex
	users    map[string]models.User
	bookings map[string]models.Booking
	slots    map[string]int
}

func NewMemory() *Memory {
	return &Memory{
		users:    make(map[string]models.User),
		bookings: make(map[string]models.Booking),
		slots:    make(map[string]int),
	}
}

// SeedUser registers a user record.
func (m *Memory) SeedUser(u models.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[u.CardNumber] = u
}

func bookingKey(card, date string) string {
	return card + "|" + date
}

func (m *Memory) GetByCard(_ context.Context, card string) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[card]
	if !ok {
		return models.User{}, ErrNotFound
	}
	return u, nil
}

func (m *Memory) Get(_ context.Context, card, date string) (models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bookings[bookingKey(card, date)]
	if !ok {
		return models.Booking{}, ErrNotFound
	}
	return b, nil
}

func (m *Memory) Exists(_ context.Context, card, date string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.bookings[bookingKey(card, date)]
	return ok, nil
}

func (m *Memory) Put(_ context.Context, b models.Booking) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := bookingKey(b.Card, b.Date)
	if _, ok := m.bookings[key]; ok {
		return ErrDuplicateBooking
	}
	m.bookings[key] = b
	return nil
}

func (m *Memory) Occupancy(_ context.Context, key string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slots[key], nil
}

func (m *Memory) Reserve(_ context.Context, key string, capacity int) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.slots[key] >= capacity {
		return 0, ErrSlotFull
	}
	m.slots[key]++
	return m.slots[key], nil
}

func (m *Memory) Release(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.slots[key] > 0 {
		m.slots[key]--
	}
	return nil
}
