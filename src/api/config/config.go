package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"gorm.io/gorm"

	"github.com/verilens/verilens/src/data"
)

type Config struct {
	Port          string
	OpenRouterKey string
	SerpAPIKey    string
	AIModel       string
	RedisURL      string
	MySQLDSN      string
	JWTSecret     string
	CacheTTL      time.Duration
}

// Load builds the service configuration. Database settings (when a DB is
// supplied) override environment variables, matching how the rest of the
// deployment is tuned.
func Load(db *gorm.DB) Config {
	if db != nil {
		if err := data.LoadSettings(db); err != nil {
			log.Printf("Failed to load settings: %v", err)
		}
	}

	port := getSetting("port", "PORT")
	if port == "" {
		port = "8080"
	}

	model := getSetting("ai_model", "AI_MODEL")

	ttl := time.Hour
	if raw := getSetting("cache_ttl_seconds", "CACHE_TTL_SECONDS"); raw != "" {
		if secs, err := strconv.Atoi(raw); err == nil && secs > 0 {
			ttl = time.Duration(secs) * time.Second
		}
	}

	return Config{
		Port:          port,
		OpenRouterKey: getSetting("openrouter_api_key", "OPENROUTER_API_KEY"),
		SerpAPIKey:    getSetting("serpapi_key", "SERPAPI_KEY"),
		AIModel:       model,
		RedisURL:      getSetting("redis_url", "REDIS_URL"),
		MySQLDSN:      os.Getenv("MYSQL_DSN"),
		JWTSecret:     getSetting("jwt_secret", "JWT_SECRET"),
		CacheTTL:      ttl,
	}
}

func getSetting(name, envKey string) string {
	val := data.GetSetting(name)
	if val == "" {
		val = os.Getenv(envKey)
	}
	return val
}
