package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{
		"FIREBASE_PROJECT_ID", "GOOGLE_CLOUD_PROJECT", "FIREBASE_STORAGE_BUCKET", "PORT",
		"ALLOWED_ORIGINS", "SESSION_TTL_MINUTES", "GIFT_CACHE_TTL_SECONDS", "STORE_BACKEND",
		"PUBLIC_BASE_URL", "SITE_NAME",
	} {
		t.Setenv(k, "")
	}

	cfg := Load()
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.AllowedOrigins)
	assert.Equal(t, "", cfg.StorageBucket)
	assert.Equal(t, "SewaLink", cfg.SiteName)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
	assert.Equal(t, time.Minute, cfg.GiftCacheTTL)
	assert.Equal(t, "firestore", cfg.StoreBackend)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("FIREBASE_PROJECT_ID", "")
	t.Setenv("GOOGLE_CLOUD_PROJECT", "sewalink-test")
	t.Setenv("FIREBASE_STORAGE_BUCKET", "")
	t.Setenv("ALLOWED_ORIGINS", " https://a.example , ,https://b.example")
	t.Setenv("SESSION_TTL_MINUTES", "5")
	t.Setenv("GIFT_CACHE_TTL_SECONDS", "not-a-number")
	t.Setenv("STORE_BACKEND", "MEMORY")
	t.Setenv("PUBLIC_BASE_URL", "https://sewalink.example/")

	cfg := Load()
	assert.Equal(t, "sewalink-test", cfg.ProjectID)
	assert.Equal(t, "sewalink-test.appspot.com", cfg.StorageBucket)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
	assert.Equal(t, 5*time.Minute, cfg.SessionTTL)
	assert.Equal(t, time.Minute, cfg.GiftCacheTTL)
	assert.Equal(t, "memory", cfg.StoreBackend)
	assert.Equal(t, "https://sewalink.example", cfg.PublicBaseURL)
}
