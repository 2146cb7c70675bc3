package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all server configuration
type Config struct {
	Port           int
	RedisURL       string
	RedisPassword  string
	SessionTTL     time.Duration // 0 keeps session records forever
	AllowedOrigins []string      // origins allowed on the operator monitor socket

	// Twilio REST credentials for proactive (non-reply) messages. All three
	// must be set for the outbound gateway to be usable.
	TwilioAccountSID   string
	TwilioAuthToken    string
	TwilioWhatsAppFrom string

	// AdminNumbers is the allow-list of identities permitted to issue the
	// proposal command.
	AdminNumbers []string
}

// LoadConfig loads configuration from environment variables with defaults
func LoadConfig() (*Config, error) {
	// Load .env file if it exists (doesn't error if missing)
	_ = godotenv.Load()

	config := &Config{
		Port:           8080,
		RedisURL:       "localhost:6379",
		RedisPassword:  "",
		SessionTTL:     0,
		AllowedOrigins: []string{"*"},
	}

	// Optional: PORT
	if port := os.Getenv("PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT: %w", err)
		}
		config.Port = p
	}

	// Optional: REDIS_URL
	if redisURL := os.Getenv("REDIS_URL"); redisURL != "" {
		config.RedisURL = redisURL
	}

	// Optional: REDIS_PASSWORD
	if redisPassword := os.Getenv("REDIS_PASSWORD"); redisPassword != "" {
		config.RedisPassword = redisPassword
	}

	// Optional: SESSION_TTL (in hours, 0 = never expire)
	if ttl := os.Getenv("SESSION_TTL"); ttl != "" {
		t, err := strconv.Atoi(ttl)
		if err != nil {
			return nil, fmt.Errorf("invalid SESSION_TTL: %w", err)
		}
		config.SessionTTL = time.Duration(t) * time.Hour
	}

	// Optional: ALLOWED_ORIGINS (comma-separated)
	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		config.AllowedOrigins = strings.Split(origins, ",")
	}

	// Optional: Twilio REST credentials (proactive messages are disabled
	// when absent; the reply cycle still works)
	config.TwilioAccountSID = os.Getenv("TWILIO_ACCOUNT_SID")
	config.TwilioAuthToken = os.Getenv("TWILIO_AUTH_TOKEN")
	config.TwilioWhatsAppFrom = os.Getenv("TWILIO_WHATSAPP_NUMBER")

	// Optional: ADMIN_NUMBERS (comma-separated identities)
	if admins := os.Getenv("ADMIN_NUMBERS"); admins != "" {
		for _, n := range strings.Split(admins, ",") {
			if n = strings.TrimSpace(n); n != "" {
				config.AdminNumbers = append(config.AdminNumbers, n)
			}
		}
	}

	return config, nil
}
