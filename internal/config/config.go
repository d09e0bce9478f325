package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env      string
	LogLevel string
	Port     string

	StorageBackend string
	CatalogFile    string
	PlansFile      string
	PostgresDSN    string
	SQLitePath     string
	MongoURI       string
	MongoDatabase  string

	// CatalogSource overrides where the read-only catalog comes from.
	// Empty means the storage backend; "s3" reads a JSON snapshot from S3.
	CatalogSource string
	S3Bucket      string
	S3Key         string
	// CatalogRefreshInterval re-reads a refreshable catalog source on a
	// timer. 0 disables it.
	CatalogRefreshInterval time.Duration

	AuthToken      string
	JWTSecret      string
	AuthServiceURL string
	// TokenTTL is the lifetime of tokens minted by POST /api/auth/token.
	TokenTTL time.Duration

	// RandomSeed seeds plan generation. 0 means a fresh seed per request.
	RandomSeed  uint64
	CORSOrigins []string
}

var (
	cfg  *Config
	once sync.Once
)

func Load() *Config {
	once.Do(func() {
		// .env is optional; real environment variables take precedence.
		_ = godotenv.Load()
		var err error
		cfg, err = FromEnv()
		if err != nil {
			panic("Invalid config: " + err.Error())
		}
	})
	return cfg
}

// FromEnv reads the configuration from the process environment and validates it.
func FromEnv() (*Config, error) {
	seed, err := strconv.ParseUint(getEnv("RANDOM_SEED", "0"), 10, 64)
	if err != nil {
		return nil, errors.New("RANDOM_SEED must be an unsigned integer")
	}
	refresh, err := time.ParseDuration(getEnv("CATALOG_REFRESH_INTERVAL", "0s"))
	if err != nil {
		return nil, errors.New("CATALOG_REFRESH_INTERVAL must be a duration such as 5m")
	}
	ttl, err := time.ParseDuration(getEnv("JWT_TTL", "1h"))
	if err != nil {
		return nil, errors.New("JWT_TTL must be a duration such as 1h")
	}
	c := &Config{
		Env:            getEnv("APP_ENV", "development"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		Port:           getEnv("PORT", "8088"),
		StorageBackend: getEnv("STORAGE_BACKEND", "file"),
		CatalogFile:    getEnv("CATALOG_FILE", "data/catalog.json"),
		PlansFile:      getEnv("PLANS_FILE", "data/custom_plans.json"),
		PostgresDSN:    getEnv("POSTGRES_DSN", ""),
		SQLitePath:     getEnv("SQLITE_PATH", "data/fitplanner.db"),
		MongoURI:       getEnv("MONGO_URI", ""),
		MongoDatabase:  getEnv("MONGO_DATABASE", "fitplanner"),
		CatalogSource:  getEnv("CATALOG_SOURCE", ""),
		S3Bucket:       getEnv("S3_BUCKET", ""),
		S3Key:          getEnv("S3_KEY", "catalog.json"),
		AuthToken:      getEnv("AUTH_TOKEN", "MOCK-TOKEN"),
		JWTSecret:      getEnv("JWT_SECRET", ""),
		AuthServiceURL: getEnv("AUTH_SERVICE_URL", ""),
		RandomSeed:     seed,
		CORSOrigins:    splitList(getEnv("CORS_ORIGINS", "*")),

		CatalogRefreshInterval: refresh,
		TokenTTL:               ttl,
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) Validate() error {
	switch c.StorageBackend {
	case "file":
		if c.CatalogFile == "" || c.PlansFile == "" {
			return errors.New("File storage requires CATALOG_FILE and PLANS_FILE to be set")
		}
	case "postgres":
		if c.PostgresDSN == "" {
			return errors.New("POSTGRES_DSN is required when STORAGE_BACKEND=postgres")
		}
	case "sqlite":
		if c.SQLitePath == "" {
			return errors.New("SQLITE_PATH is required when STORAGE_BACKEND=sqlite")
		}
	case "mongo":
		if c.MongoURI == "" || c.MongoDatabase == "" {
			return errors.New("MONGO_URI and MONGO_DATABASE are required when STORAGE_BACKEND=mongo")
		}
	default:
		return errors.New("STORAGE_BACKEND must be one of: file, postgres, sqlite, mongo")
	}
	if c.CatalogSource != "" && c.CatalogSource != "s3" {
		return errors.New("CATALOG_SOURCE must be empty or s3")
	}
	if c.CatalogSource == "s3" && (c.S3Bucket == "" || c.S3Key == "") {
		return errors.New("CATALOG_SOURCE=s3 requires S3_BUCKET and S3_KEY")
	}
	if c.CatalogRefreshInterval < 0 {
		return errors.New("CATALOG_REFRESH_INTERVAL must not be negative")
	}
	if c.JWTSecret != "" && c.TokenTTL <= 0 {
		return errors.New("JWT_TTL must be positive when JWT_SECRET is set")
	}
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return errors.New("APP_ENV must be one of: development, staging, production")
	}
	if c.Env != "development" && c.JWTSecret == "" && c.AuthServiceURL == "" {
		return errors.New("JWT_SECRET or AUTH_SERVICE_URL is required outside development")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
