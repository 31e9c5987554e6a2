package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "MONGO_URI", "MONGO_DB", "SMS_COUNTRY_CODE", "SLOT_CAPACITY"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Port)
	assert.Equal(t, "mongodb://localhost:27017", cfg.MongoURI)
	assert.Equal(t, "sevabook", cfg.MongoDB)
	assert.Equal(t, "+91", cfg.CountryCode)
	assert.Equal(t, 10, cfg.SlotCapacity)
}

func TestLoadPortColonPrefix(t *testing.T) {
	t.Setenv("PORT", "3000")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":3000", cfg.Port)
}

func TestLoadSlotCapacity(t *testing.T) {
	t.Setenv("SLOT_CAPACITY", "25")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 25, cfg.SlotCapacity)
}

func TestLoadSlotCapacityInvalid(t *testing.T) {
	for _, v := range []string{"abc", "0", "-3"} {
		t.Setenv("SLOT_CAPACITY", v)
		_, err := Load()
		assert.Error(t, err, "SLOT_CAPACITY=%s", v)
	}
}
