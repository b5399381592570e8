package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ProjectID                    string
	Port                         string
	AllowedOrigins               []string
	StorageBucket                string
	SignedURLServiceAccountEmail string

	SiteName      string
	PublicBaseURL string
	SessionTTL    time.Duration
	GiftCacheTTL  time.Duration

	// StoreBackend is "firestore" or "memory" (local runs without GCP).
	StoreBackend string
}

func Load() Config {
	// .env is optional; real deployments set the environment directly
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("[config] .env not loaded: %v", err)
	}

	projectID := getenv("FIREBASE_PROJECT_ID", "")
	if projectID == "" {
		projectID = getenv("GOOGLE_CLOUD_PROJECT", "")
	}

	storageBucket := getenv("FIREBASE_STORAGE_BUCKET", "")
	if storageBucket == "" && projectID != "" {
		storageBucket = projectID + ".appspot.com"
	}

	allowed := []string{}
	for _, o := range strings.Split(getenv("ALLOWED_ORIGINS", "http://localhost:3000"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			allowed = append(allowed, o)
		}
	}

	backend := strings.ToLower(getenv("STORE_BACKEND", "firestore"))
	if backend != "memory" {
		backend = "firestore"
	}

	return Config{
		ProjectID:                    projectID,
		Port:                         getenv("PORT", "8080"),
		AllowedOrigins:               allowed,
		StorageBucket:                storageBucket,
		SignedURLServiceAccountEmail: getenv("SIGNED_URL_SERVICE_ACCOUNT_EMAIL", ""),
		SiteName:                     getenv("SITE_NAME", "SewaLink"),
		PublicBaseURL:                strings.TrimRight(getenv("PUBLIC_BASE_URL", "http://localhost:8080"), "/"),
		SessionTTL:                   time.Duration(getenvInt("SESSION_TTL_MINUTES", 30)) * time.Minute,
		GiftCacheTTL:                 time.Duration(getenvInt("GIFT_CACHE_TTL_SECONDS", 60)) * time.Second,
		StoreBackend:                 backend,
	}
}

func getenv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func getenvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return def
	}
	return n
}
