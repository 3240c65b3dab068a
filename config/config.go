package config

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

// AppConfig holds file and environment driven configuration values.
// Secrets must be provided via config/config.json, a .env file or the environment.
type AppConfig struct {
	AppPort   string `env:"APP_PORT, overwrite, default=8080"`
	JWTSecret string `env:"JWT_SECRET, overwrite"`

	// Database: DBDriver is one of mysql, postgres, sqlite.
	DBDriver    string `env:"DB_DRIVER, overwrite, default=mysql"`
	DatabaseURI string `env:"DATABASE_URI, overwrite"`
	DBHost      string `env:"DB_HOST, overwrite, default=127.0.0.1"`
	DBPort      string `env:"DB_PORT, overwrite, default=3306"`
	DBUser      string `env:"DB_USER, overwrite, default=root"`
	DBPassword  string `env:"DB_PASSWORD, overwrite"`
	DBName      string `env:"DB_NAME, overwrite, default=noticeboard"`

	// Redis backs token revocation; leave RedisHost empty to keep it in memory.
	RedisHost     string `env:"REDIS_HOST, overwrite"`
	RedisPort     int    `env:"REDIS_PORT, overwrite, default=6379"`
	RedisDB       int    `env:"REDIS_DB, overwrite"`
	RedisPassword string `env:"REDIS_PASSWORD, overwrite"`

	RateLimitPerMinute int      `env:"RATE_LIMIT_PER_MINUTE, overwrite, default=60"`
	AllowedOrigins     []string `env:"CORS_ALLOWED_ORIGINS, overwrite, default=*"`

	// Gin framework configuration
	GinMode string `env:"GIN_MODE, overwrite, default=release"`
	GinPath string `env:"GIN_LOG_PATH, overwrite, default=logs/gin.log"`

	// Logging configuration
	LogLevel      string `env:"LOG_LEVEL, overwrite, default=info"`
	LogPath       string `env:"LOG_PATH, overwrite, default=logs/app.log"`
	LogMaxSizeMB  int    `env:"LOG_MAX_SIZE_MB, overwrite, default=100"`
	LogMaxBackups int    `env:"LOG_MAX_BACKUPS, overwrite, default=3"`
	LogMaxAgeDays int    `env:"LOG_MAX_AGE_DAYS, overwrite, default=7"`
	LogCompress   bool   `env:"LOG_COMPRESS, overwrite"`

	// Admins are granted the Admin role when the store is seeded.
	AdminUsernames   []string `env:"ADMIN_USERNAMES, overwrite"`
	SeedDemoData     bool     `env:"SEED_DEMO_DATA, overwrite"`
	AdminPassword    string   `env:"SEED_ADMIN_PASSWORD, overwrite"`
	DemoUserPassword string   `env:"SEED_USER_PASSWORD, overwrite"`
}

var (
	cfg    AppConfig
	loaded bool
	mu     sync.RWMutex
)

// jsonSections are the grouped blocks accepted in config.json. Keys inside a
// block use the AppConfig field names, so a flat file works as well.
var jsonSections = []string{"app", "database", "redis", "gin", "log", "admin", "seed"}

// Load loads the application configuration. It should be called once during boot.
func Load() AppConfig {
	mu.Lock()
	defer mu.Unlock()
	if loaded {
		return cfg
	}

	// Precedence: config/config.json -> .env -> environment variables (defaults fill the gaps)
	var c AppConfig
	if err := loadJSONConfig(filepath.Join("config", "config.json"), &c); err != nil {
		log.Fatalf("invalid config/config.json: %v", err)
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("ignoring unreadable .env: %v", err)
	}

	if err := envconfig.Process(context.Background(), &c); err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	if c.JWTSecret == "" {
		log.Fatal("JWT_SECRET must be set in config.json or environment variables")
	}

	cfg = c
	loaded = true
	return cfg
}

// Get returns the cached configuration, loading it if necessary.
func Get() AppConfig {
	mu.RLock()
	if loaded {
		defer mu.RUnlock()
		return cfg
	}
	mu.RUnlock()
	return Load()
}

// Set replaces the cached configuration. Used by tests and embedders that
// build AppConfig themselves.
func Set(c AppConfig) {
	mu.Lock()
	cfg = c
	loaded = true
	mu.Unlock()
}

// loadJSONConfig reads the JSON file into out if present. Returns error only for invalid JSON.
func loadJSONConfig(path string, out *AppConfig) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil // silently ignore missing file
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	// Flat keys at the top level
	if err := json.Unmarshal(b, out); err != nil {
		return err
	}
	for _, name := range jsonSections {
		section, ok := raw[name]
		if !ok {
			continue
		}
		if err := json.Unmarshal(section, out); err != nil {
			return err
		}
	}
	return nil
}
