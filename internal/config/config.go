package config

import (
	"log/slog"
	"net/netip"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Application
	AppName string
	AppEnv  string
	AppURL  string
	Port    string

	// Database (optional driver switch via ENV, default: sqlite)
	DBDriver     string
	DBConnection string

	// Security
	JWTSecret        string
	JWTAccessExpiry  time.Duration
	JWTRefreshExpiry time.Duration
	AuthRateLimit    int
	AuthRateWindow   time.Duration
	TrustedProxies   []netip.Prefix // Peers allowed to set X-Forwarded-For
	// Observability (optional)
	SentryDSN      string
	MetricsEnabled bool

	// Pagination
	PageSizeMax int

	// Storage ("local" or "s3")
	StorageDriver string
	MediaRoot     string
	MediaURL      string
	FileMaxSize   int64
	// Allowed upload types: MIME types ("image/*" works) or ".ext". Empty allows all.
	FileAllowedTypes []string

	// S3-compatible storage: AWS S3, MinIO, Cloudflare R2, DigitalOcean Spaces, etc.
	S3Region        string
	S3Bucket        string
	S3AccessKey     string
	S3SecretKey     string
	S3Endpoint      string        // Optional: for S3-compatible services
	S3PresignExpiry time.Duration // Expiry for file URLs handed to clients
}

func Load() *Config {
	// Load .env file if it exists
	err := godotenv.Load()
	if err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	cfg := &Config{
		// Application
		AppName: envString("APP_NAME", "Goalnote"),
		AppEnv:  envRequired("APP_ENV"), // Required: 'development' or 'production'
		AppURL:  envRequired("APP_URL"), // Required: base URL for media links
		Port:    envString("PORT", "8090"),

		// Database
		DBDriver:     envString("DB_DRIVER", "sqlite"),
		DBConnection: envString("DB_CONNECTION", "./data/goalnote.db?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"),

		// Security
		JWTSecret:        envRequired("JWT_SECRET"),
		JWTAccessExpiry:  envDuration("JWT_ACCESS_EXPIRY", 30*time.Minute),
		JWTRefreshExpiry: envDuration("JWT_REFRESH_EXPIRY", 720*time.Hour), // 30 days
		AuthRateLimit:    envInt("AUTH_RATE_LIMIT", 5),
		AuthRateWindow:   envDuration("AUTH_RATE_WINDOW", 15*time.Minute),
		TrustedProxies:   envPrefixes("TRUSTED_PROXIES"),

		// Observability
		SentryDSN:      envString("SENTRY_DSN", ""),
		MetricsEnabled: envBool("METRICS_ENABLED", true),

		// Pagination
		PageSizeMax: envInt("PAGE_SIZE_MAX", 100),

		// Storage
		StorageDriver: envString("STORAGE_DRIVER", "local"),
		MediaRoot:     envString("MEDIA_ROOT", "./media"),
		MediaURL:      envString("MEDIA_URL", "/media"),
		FileMaxSize:   int64(envInt("FILE_MAX_SIZE", 10<<20)), // 10MB

		FileAllowedTypes: envList("FILE_ALLOWED_TYPES"),
	}

	// S3 settings only matter when the s3 driver is selected
	if cfg.StorageDriver == "s3" {
		cfg.S3Region = envRequired("S3_REGION")
		cfg.S3Bucket = envRequired("S3_BUCKET")
		cfg.S3AccessKey = envRequired("S3_ACCESS_KEY")
		cfg.S3SecretKey = envRequired("S3_SECRET_KEY")
		cfg.S3Endpoint = envString("S3_ENDPOINT", "")
		cfg.S3PresignExpiry = envDuration("S3_PRESIGN_EXPIRY", 1*time.Hour)
	}

	return cfg
}

func envString(key, def string) string {
	value := os.Getenv(key)
	if value == "" {
		value = def
	}
	return value
}

func envBool(key string, def bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("config invalid bool, using default", "key", key, "value", v, "default", def)
		return def
	}
	return b
}

func envInt(key string, def int) int {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil || i <= 0 {
		slog.Warn("config invalid int, using default", "key", key, "value", v, "default", def)
		return def
	}
	return i
}

func envDuration(key string, def time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		slog.Warn("config invalid duration, using default", "key", key, "value", v, "default", def)
		return def
	}
	return d
}

func envList(key string) []string {
	var list []string
	for _, item := range strings.Split(os.Getenv(key), ",") {
		if item = strings.TrimSpace(item); item != "" {
			list = append(list, item)
		}
	}
	return list
}

// envPrefixes reads a list of CIDR ranges. A bare address is taken as a
// single host.
func envPrefixes(key string) []netip.Prefix {
	var prefixes []netip.Prefix
	for _, item := range envList(key) {
		if addr, err := netip.ParseAddr(item); err == nil {
			addr = addr.Unmap()
			prefixes = append(prefixes, netip.PrefixFrom(addr, addr.BitLen()))
			continue
		}
		prefix, err := netip.ParsePrefix(item)
		if err != nil {
			slog.Warn("config invalid proxy range, skipping", "key", key, "value", item)
			continue
		}
		prefixes = append(prefixes, prefix.Masked())
	}
	return prefixes
}

func envRequired(key string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	slog.Error("config required env var missing", "key", key)
	os.Exit(1)
	return ""
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// Sanitized returns a copy of the config with only public/safe fields.
// Secrets, credentials and the database connection string are excluded.
func (c *Config) Sanitized() *Config {
	return &Config{
		AppName: c.AppName,
		AppEnv:  c.AppEnv,
		AppURL:  c.AppURL,
		Port:    c.Port,

		DBDriver: c.DBDriver,

		JWTAccessExpiry:  c.JWTAccessExpiry,
		JWTRefreshExpiry: c.JWTRefreshExpiry,

		MetricsEnabled: c.MetricsEnabled,
		PageSizeMax:    c.PageSizeMax,

		StorageDriver:    c.StorageDriver,
		MediaURL:         c.MediaURL,
		FileMaxSize:      c.FileMaxSize,
		FileAllowedTypes: c.FileAllowedTypes,

		S3Region:   c.S3Region,
		S3Bucket:   c.S3Bucket,
		S3Endpoint: c.S3Endpoint,
	}
}
