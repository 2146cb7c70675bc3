package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "REDIS_URL", "REDIS_PASSWORD", "SESSION_TTL", "ALLOWED_ORIGINS",
		"TWILIO_ACCOUNT_SID", "TWILIO_AUTH_TOKEN", "TWILIO_WHATSAPP_NUMBER",
		"ADMIN_NUMBERS",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "localhost:6379", cfg.RedisURL)
	assert.Equal(t, time.Duration(0), cfg.SessionTTL)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
	assert.Empty(t, cfg.AdminNumbers)
	assert.Empty(t, cfg.TwilioAccountSID)
}

func TestLoadConfigFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("REDIS_URL", "redis.internal:6380")
	t.Setenv("SESSION_TTL", "72")
	t.Setenv("ALLOWED_ORIGINS", "https://console.example.com,https://staging.example.com")
	t.Setenv("TWILIO_ACCOUNT_SID", "ACxxxx")
	t.Setenv("TWILIO_AUTH_TOKEN", "token")
	t.Setenv("TWILIO_WHATSAPP_NUMBER", "whatsapp:+14155238886")
	t.Setenv("ADMIN_NUMBERS", "+573009999999, +573008888888 ,")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "redis.internal:6380", cfg.RedisURL)
	assert.Equal(t, 72*time.Hour, cfg.SessionTTL)
	assert.Equal(t, []string{"https://console.example.com", "https://staging.example.com"}, cfg.AllowedOrigins)
	assert.Equal(t, "ACxxxx", cfg.TwilioAccountSID)
	assert.Equal(t, []string{"+573009999999", "+573008888888"}, cfg.AdminNumbers)
}

func TestLoadConfigRejectsBadNumbers(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "not-a-port")
	_, err := LoadConfig()
	assert.Error(t, err)

	clearEnv(t)
	t.Setenv("SESSION_TTL", "two days")
	_, err = LoadConfig()
	assert.Error(t, err)
}
