package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Source kinds.
const (
	SourceDeclared = "declared"
	SourceFile     = "file"
	SourceAutogen  = "autogen"
)

type Config struct {
	// Sidebar source
	Source      string // "declared" | "file" | "autogen"
	SidebarFile string // sidebars.yaml / sidebars.json, required for source=file
	DocsDir     string // docs root, required for source=autogen
	SidebarName string // name of the generated sidebar for source=autogen

	// Serve mode
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s
	ReloadInterval  time.Duration // 0 disables periodic reload
	Watch           bool          // reload on filesystem changes

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	// Redis snapshot store, disabled when RedisAddr is empty
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

	AllowedHosts []string // optional, restrict /reload and /status to these Host headers
	AllowedCIDRS []string // optional, restrict /reload and /status to these IPs/CIDRs
	TrustProxy   bool     // true => trust X-Forwarded-For headers (e.g. cloudflared)
}

// Load reads an optional .env file, then the environment. It does not
// validate: callers apply flag overrides first, then call Validate.
func Load() *Config {
	// A missing .env is the normal case.
	_ = godotenv.Load()

	cfg := &Config{
		Source:      strings.ToLower(getenv("DOCNAV_SOURCE", SourceDeclared)),
		SidebarFile: getenv("DOCNAV_SIDEBAR_FILE", ""),
		DocsDir:     getenv("DOCNAV_DOCS_DIR", ""),
		SidebarName: getenv("DOCNAV_SIDEBAR_NAME", "tutorialSidebar"),

		ListenPort:      getenv("DOCNAV_LISTEN_PORT", ":8080"),
		ShutdownTimeout: mustDuration("DOCNAV_SHUTDOWN_TIMEOUT", 5*time.Second),
		ReloadInterval:  mustDuration("DOCNAV_RELOAD_INTERVAL", 0),
		Watch:           mustBool("DOCNAV_WATCH", false),

		LogLevel:  getenv("DOCNAV_LOG_LEVEL", "info"),
		PrettyLog: mustBool("DOCNAV_PRETTY_LOG", true),

		RedisAddr:           getenv("DOCNAV_REDIS_ADDR", ""),
		RedisUser:           getenv("DOCNAV_REDIS_USERNAME", ""),
		RedisPassword:       getenv("DOCNAV_REDIS_PASSWORD", ""),
		RedisDB:             getenvInt("DOCNAV_REDIS_DB", 0),
		RedisDT:             mustDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisRT:             mustDuration("REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWT:             mustDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisMaxWait:        mustDuration("REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:    mustDuration("REDIS_PING_TIMEOUT", 5*time.Second),
		RedisPoolSize:       getenvInt("REDIS_POOL_SIZE", 10),
		RedisConnectTimeout: mustDuration("REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:  mustDuration("REDIS_RETRY_INTERVAL", 2*time.Second),
		RedisWarnThreshold:  getenvInt("REDIS_WARN_THRESHOLD", 3),

		AllowedHosts: splitAndTrim(getenv("DOCNAV_ALLOWED_HOSTS", "")),
		AllowedCIDRS: splitAndTrim(getenv("DOCNAV_ALLOWED_CIDRS", "")),
		TrustProxy:   mustBool("DOCNAV_TRUST_PROXY", false),
	}

	return cfg
}

// Redacted returns a copy safe to log.
func (c *Config) Redacted() Config {
	cp := *c
	if cp.RedisPassword != "" {
		cp.RedisPassword = "***REDACTED***"
	}
	if cp.RedisUser != "" {
		cp.RedisUser = "***REDACTED***"
	}
	return cp
}

// Validate checks that the selected source has what it needs.
func (c *Config) Validate() error {
	switch c.Source {
	case SourceDeclared:
	case SourceFile:
		if c.SidebarFile == "" {
			return fmt.Errorf("DOCNAV_SIDEBAR_FILE is required when DOCNAV_SOURCE=%s", SourceFile)
		}
	case SourceAutogen:
		if c.DocsDir == "" {
			return fmt.Errorf("DOCNAV_DOCS_DIR is required when DOCNAV_SOURCE=%s", SourceAutogen)
		}
		if c.SidebarName == "" {
			return fmt.Errorf("DOCNAV_SIDEBAR_NAME must not be empty when DOCNAV_SOURCE=%s", SourceAutogen)
		}
	default:
		return fmt.Errorf("invalid DOCNAV_SOURCE %q (want %s, %s or %s)",
			c.Source, SourceDeclared, SourceFile, SourceAutogen)
	}
	if c.ReloadInterval < 0 {
		return fmt.Errorf("DOCNAV_RELOAD_INTERVAL must be >= 0, got %v", c.ReloadInterval)
	}
	return nil
}

// RedisEnabled reports whether snapshots are persisted.
func (c *Config) RedisEnabled() bool { return c.RedisAddr != "" }

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

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		trimmed := strings.TrimSpace(part)
		// Remove surrounding quotes if present
		trimmed = strings.Trim(trimmed, `"'`)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
