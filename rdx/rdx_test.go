package rdx

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sevabook/models"
)

func setupRedis(t *testing.T) {
	t.Helper()
	mr := miniredis.RunT(t)
	require.NoError(t, Connect(context.Background(), mr.Addr(), ""))
	t.Cleanup(func() { Conn = nil })
}

func TestBookingCacheRoundTrip(t *testing.T) {
	setupRedis(t)
	ctx := context.Background()

	b := models.Booking{
		ID: "b1", Card: "C100", Date: "2024-01-01",
		Session: "morning", Slot: "A1", Timing: "A1", Token: 1234,
	}
	require.NoError(t, CacheBooking(ctx, b))

	got, err := CachedBooking(ctx, "C100", "2024-01-01")
	require.NoError(t, err)
	assert.Equal(t, b, got)
}

func TestCachedBookingMiss(t *testing.T) {
	setupRedis(t)

	_, err := CachedBooking(context.Background(), "C100", "2024-01-02")
	assert.ErrorIs(t, err, redis.Nil)
}

func TestCacheDisabled(t *testing.T) {
	Conn = nil

	err := CacheBooking(context.Background(), models.Booking{Card: "C100", Date: "2024-01-01"})
	assert.Error(t, err)

	_, err = CachedBooking(context.Background(), "C100", "2024-01-01")
	assert.Error(t, err)
}
