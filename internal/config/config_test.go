package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, "mongodb://localhost:27017", cfg.MongoURI)
	assert.Equal(t, "zamazon", cfg.MongoDBName)
	assert.Equal(t, 10*time.Second, cfg.MongoConnectTimeout)
	assert.Equal(t, 5*time.Second, cfg.MongoSelectionTimeout)
	assert.Equal(t, uint64(100), cfg.MongoMaxPoolSize)
	assert.Equal(t, uint64(10), cfg.MongoMinPoolSize)
	assert.Equal(t, 85.0, cfg.ShippingFee)
	assert.Equal(t, []string{"admin@zamazon.com"}, cfg.AdminEmails)
	assert.Equal(t, time.Minute, cfg.ResendCooldown)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.Nil(t, cfg.KafkaBrokers)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("SHIPPING_FEE", "50")
	t.Setenv("ADMIN_EMAILS", "a@zamazon.com, b@zamazon.com ,")
	t.Setenv("KAFKA_BROKERS", "broker-1:9092,broker-2:9092")
	t.Setenv("RESEND_COOLDOWN", "90s")
	t.Setenv("MONGO_MAX_POOL_SIZE", "25")

	cfg := Load()

	assert.Equal(t, "9090", cfg.HTTPPort)
	assert.Equal(t, uint64(25), cfg.MongoMaxPoolSize)
	assert.Equal(t, 50.0, cfg.ShippingFee)
	assert.Equal(t, []string{"a@zamazon.com", "b@zamazon.com"}, cfg.AdminEmails)
	assert.Equal(t, []string{"broker-1:9092", "broker-2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, 90*time.Second, cfg.ResendCooldown)
}

func TestLoad_BadValuesFallBack(t *testing.T) {
	t.Setenv("SHIPPING_FEE", "not-a-number")
	t.Setenv("REQUEST_TIMEOUT", "soon")

	cfg := Load()

	assert.Equal(t, 85.0, cfg.ShippingFee)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
}
