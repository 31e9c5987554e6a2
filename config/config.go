package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config carries every runtime setting the server needs. It is loaded once in
// main and handed to the components that use it; nothing reads the environment
// after startup.
type Config struct {
	Port     string
	LogLevel string

	MongoURI string
	MongoDB  string

	RedisAddr     string
	RedisPassword string

	TwilioAccountSID string
	TwilioAuthToken  string
	TwilioFrom       string
	// CountryCode is prepended to stored 10-digit phone numbers on send.
	CountryCode string

	// SlotCapacity is the fixed per-slot booking limit.
	SlotCapacity int
}

// Load reads configuration from the environment. Twilio credentials may be
// empty, in which case SMS delivery is disabled and bookings still succeed.
func Load() (Config, error) {
	cfg := Config{
		Port:             getenv("PORT", ":8080"),
		LogLevel:         getenv("LOG_LEVEL", "info"),
		MongoURI:         getenv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:          getenv("MONGO_DB", "sevabook"),
		RedisAddr:        getenv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:    os.Getenv("REDIS_PASSWORD"),
		TwilioAccountSID: os.Getenv("TWILIO_ACCOUNT_SID"),
		TwilioAuthToken:  os.Getenv("TWILIO_AUTH_TOKEN"),
		TwilioFrom:       os.Getenv("TWILIO_PHONE_NUMBER"),
		CountryCode:      getenv("SMS_COUNTRY_CODE", "+91"),
		SlotCapacity:     10,
	}

	if cfg.Port[0] != ':' {
		cfg.Port = ":" + cfg.Port
	}

	if v := os.Getenv("SLOT_CAPACITY"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return Config{}, fmt.Errorf("invalid SLOT_CAPACITY %q", v)
		}
		cfg.SlotCapacity = n
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
