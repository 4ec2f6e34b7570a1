package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/MrSnakeDoc/stashlink/internal/utils"
)

type Config struct {
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	SettingsFile   string        // path to the administrator settings.yaml
	ReloadInterval time.Duration // interval to reload settings.yaml (default: 5m)

	// Redis (optional, empty RedisAddr => settings are not persisted, no usage counters)
	RedisAddr           string        // ex: "localhost:6379"
	RedisUser           string        // optional
	RedisPassword       string        // optional
	RedisDB             int           // Redis DB number
	RedisDT             time.Duration // Redis dial timeout (ex: 5s)
	RedisRT             time.Duration // Redis read timeout (ex: 3s)
	RedisWT             time.Duration // Redis write timeout (ex: 3s)
	RedisMaxWait        time.Duration // max wait between retries (ex: 10s)
	RedisPingTimeout    time.Duration // timeout for each ping attempt (ex: 5s)
	RedisPoolSize       int           // Redis connection pool size
	RedisConnectTimeout time.Duration // Total time to retry connecting (ex: 30s)
	RedisRetryInterval  time.Duration // Initial wait between retries (ex: 2s, grows exponentially)
	RedisWarnThreshold  int           // warn after this many attempts

	AllowedHosts []string // optional, restrict access to specific Host headers
	AllowedCIDRS []string // optional, restrict access to admin endpoints (reload, infra, metrics)
	TrustProxy   bool     // true => trust X-Forwarded-For headers (e.g. cloudflared)

	RateLimitBurst  int // max burst of resolve requests per client IP
	RateLimitPerMin int // refill rate of resolve requests per client IP per minute
}

func Load() *Config {
	cfg := &Config{
		// Server settings
		ListenPort:      getenv("STASHLINK_LISTEN_PORT", ":8080"),
		ShutdownTimeout: mustDuration("STASHLINK_SHUTDOWN_TIMEOUT", 5*time.Second),

		// Logging
		LogLevel:  getenv("STASHLINK_LOG_LEVEL", "info"),
		PrettyLog: mustBool("STASHLINK_PRETTY_LOG", true),

		// Settings file
		SettingsFile:   getenv("STASHLINK_SETTINGS_FILE", "/app/settings.yaml"),
		ReloadInterval: mustDuration("STASHLINK_RELOAD_INTERVAL", 5*time.Minute),

		// Redis settings
		RedisAddr:           getenv("STASHLINK_REDIS_ADDR", ""),
		RedisUser:           getenv("STASHLINK_REDIS_USERNAME", ""),
		RedisPassword:       getenv("STASHLINK_REDIS_PASSWORD", ""),
		RedisDB:             getenvInt("STASHLINK_REDIS_DB", 0),
		RedisDT:             mustDuration("STASHLINK_REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisRT:             mustDuration("STASHLINK_REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWT:             mustDuration("STASHLINK_REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisMaxWait:        mustDuration("STASHLINK_REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:    mustDuration("STASHLINK_REDIS_PING_TIMEOUT", 5*time.Second),
		RedisPoolSize:       getenvInt("STASHLINK_REDIS_POOL_SIZE", 10),
		RedisConnectTimeout: mustDuration("STASHLINK_REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:  mustDuration("STASHLINK_REDIS_RETRY_INTERVAL", 2*time.Second),
		RedisWarnThreshold:  getenvInt("STASHLINK_REDIS_WARN_THRESHOLD", 3),

		// Access restrictions
		AllowedHosts: utils.SplitList(getenv("STASHLINK_ALLOWED_HOSTS", "")),
		AllowedCIDRS: utils.SplitList(getenv("STASHLINK_ALLOWED_CIDRS", "")),
		TrustProxy:   mustBool("STASHLINK_TRUST_PROXY", false),

		RateLimitBurst:  getenvInt("STASHLINK_RATE_LIMIT_BURST", 60),
		RateLimitPerMin: getenvInt("STASHLINK_RATE_LIMIT_PER_MIN", 600),
	}

	if cfg.RateLimitBurst < 1 || cfg.RateLimitPerMin < 1 {
		panic("❌ FATAL: STASHLINK_RATE_LIMIT_BURST and STASHLINK_RATE_LIMIT_PER_MIN must be >= 1")
	}

	// Log config only in debug mode with redacted sensitive fields
	if cfg.LogLevel == "debug" {
		cfgCopy := *cfg
		if cfg.RedisPassword != "" {
			cfgCopy.RedisPassword = "***REDACTED***"
		}
		if cfg.RedisUser != "" {
			cfgCopy.RedisUser = "***REDACTED***"
		}
		log.Printf("[DEBUG] cfg: %+v\n", cfgCopy)
	}

	return cfg
}

// RedisEnabled reports whether a Redis address is configured.
func (c *Config) RedisEnabled() bool {
	return c.RedisAddr != ""
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
