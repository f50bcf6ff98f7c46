package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	// Upstream recommendation source
	UpstreamURL     string        // base URL of the recommendation API (required)
	UpstreamTimeout time.Duration // timeout for upstream calls (default: 30s)

	// External lookup providers
	GeocodeURL     string        // Nominatim-style search/reverse endpoint base
	PhotonURL      string        // Photon-style fallback geocoder base
	WikiAPIFormat  string        // encyclopedia API URL, %s replaced by language code
	WikiLanguages  []string      // ordered language fallback (ex: "en,ro")
	LookupTimeout  time.Duration // per-call timeout for lookup providers (default: 10s)
	LookupMaxHits  int           // search candidates fetched per lookup (default: 5)
	PlausibleKm    float64       // distance filter radius around the city anchor
	EnrichDelay    time.Duration // pacing between per-POI lookups (default: 1100ms)
	EnrichParallel int           // enrichment pipeline width (default: 1, rate-limit friendly)

	RulesFile string // path to the disambiguation rules yaml (optional, empty = built-in table)

	// Notifications
	ToastTTL time.Duration // auto-expiry of transient toasts (default: 5s)

	// Push channel
	PushURL           string // websocket URL of the push channel (optional, empty = disabled)
	PushAlertTopic    string // topic carrying inbound alert payloads
	PushLocationTopic string // destination for outbound location updates

	// Cities list refresh
	CitiesReloadInterval time.Duration // interval to refresh the supported city list (default: 1h)

	// Redis (optional lookup cache; empty addr disables caching)
	RedisAddr           string
	RedisUser           string
	RedisPassword       string
	RedisDB             int
	RedisDT             time.Duration // Redis dial timeout
	RedisRT             time.Duration // Redis read timeout
	RedisWT             time.Duration // Redis write timeout
	RedisMaxWait        time.Duration // max wait between retries
	RedisPingTimeout    time.Duration // timeout for each ping attempt
	RedisPoolSize       int
	RedisConnectTimeout time.Duration // total time to retry connecting
	RedisRetryInterval  time.Duration // initial wait between retries (grows exponentially)
	RedisWarnThreshold  int           // warn after this many attempts

	// Rate limiting for the public search endpoint
	RateLimitBurst  int
	RateLimitPerMin int

	AllowedCIDRS []string // optional, restrict access to the ops endpoints
	TrustProxy   bool     // true => trust X-Forwarded-For headers
}

func Load() *Config {
	// Local development reads a .env file when present; real deployments
	// rely on the environment only.
	_ = godotenv.Load()

	cfg := &Config{
		// Server settings
		ListenPort:      getenv("WAYFIND_LISTEN_PORT", ":8080"),
		ShutdownTimeout: mustDuration("WAYFIND_SHUTDOWN_TIMEOUT", 5*time.Second),

		// Logging
		LogLevel:  getenv("WAYFIND_LOG_LEVEL", "info"),
		PrettyLog: mustBool("WAYFIND_PRETTY_LOG", true),

		// Upstream recommendation source
		UpstreamURL:     requireEnv("WAYFIND_UPSTREAM_URL"),
		UpstreamTimeout: mustDuration("WAYFIND_UPSTREAM_TIMEOUT", 30*time.Second),

		// Lookup providers
		GeocodeURL:     getenv("WAYFIND_GEOCODE_URL", "https://nominatim.openstreetmap.org"),
		PhotonURL:      getenv("WAYFIND_PHOTON_URL", "https://photon.komoot.io"),
		WikiAPIFormat:  getenv("WAYFIND_WIKI_API_FORMAT", "https://%s.wikipedia.org/w/api.php"),
		WikiLanguages:  splitAndTrim(getenv("WAYFIND_WIKI_LANGUAGES", "en,ro")),
		LookupTimeout:  mustDuration("WAYFIND_LOOKUP_TIMEOUT", 10*time.Second),
		LookupMaxHits:  getenvInt("WAYFIND_LOOKUP_MAX_HITS", 5),
		PlausibleKm:    getenvFloat("WAYFIND_PLAUSIBLE_KM", 20.0),
		EnrichDelay:    mustDuration("WAYFIND_ENRICH_DELAY", 1100*time.Millisecond),
		EnrichParallel: getenvInt("WAYFIND_ENRICH_PARALLEL", 1),

		RulesFile: getenv("WAYFIND_RULES_FILE", ""),

		// Notifications
		ToastTTL: mustDuration("WAYFIND_TOAST_TTL", 5*time.Second),

		// Push channel
		PushURL:           getenv("WAYFIND_PUSH_URL", ""),
		PushAlertTopic:    getenv("WAYFIND_PUSH_ALERT_TOPIC", "alerts"),
		PushLocationTopic: getenv("WAYFIND_PUSH_LOCATION_TOPIC", "location"),

		CitiesReloadInterval: mustDuration("WAYFIND_CITIES_RELOAD_INTERVAL", time.Hour),

		// Redis settings (cache is optional: empty addr disables it)
		RedisAddr:           getenv("WAYFIND_REDIS_ADDR", ""),
		RedisUser:           getenv("WAYFIND_REDIS_USERNAME", "default"),
		RedisPassword:       getenv("WAYFIND_REDIS_PASSWORD", ""),
		RedisDB:             getenvInt("WAYFIND_REDIS_DB", 0),
		RedisDT:             mustDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisRT:             mustDuration("REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWT:             mustDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisMaxWait:        mustDuration("REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:    mustDuration("REDIS_PING_TIMEOUT", 5*time.Second),
		RedisPoolSize:       getenvInt("REDIS_POOL_SIZE", 10),
		RedisConnectTimeout: mustDuration("REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:  mustDuration("REDIS_RETRY_INTERVAL", 2*time.Second),
		RedisWarnThreshold:  getenvInt("REDIS_WARN_THRESHOLD", 3),

		// Rate limiting
		RateLimitBurst:  getenvInt("WAYFIND_RATE_LIMIT_BURST", 5),
		RateLimitPerMin: getenvInt("WAYFIND_RATE_LIMIT_PER_MIN", 30),

		// Access restrictions
		AllowedCIDRS: parseAllowedIPs(getenv("WAYFIND_ALLOWED_CIDRS", "")),
		TrustProxy:   mustBool("WAYFIND_TRUST_PROXY", true),
	}

	if len(cfg.WikiLanguages) == 0 {
		panic("❌ FATAL: WAYFIND_WIKI_LANGUAGES must name at least one language")
	}
	if cfg.EnrichParallel < 1 {
		cfg.EnrichParallel = 1
	}

	// Log config only in debug mode with redacted sensitive fields
	if cfg.LogLevel == "debug" {
		cfgCopy := *cfg
		if cfg.RedisPassword != "" {
			cfgCopy.RedisPassword = "***REDACTED***"
		}
		log.Printf("[DEBUG] cfg: %+v\n", cfgCopy)
	}

	return cfg
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func requireEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		panic(fmt.Sprintf("❌ FATAL: Required environment variable %s is not set", key))
	}
	return v
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func getenvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
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

func parseAllowedIPs(allowed string) []string {
	if allowed == "" {
		return nil
	}
	ips := make([]string, 0, 4)
	for _, ip := range splitAndTrim(allowed) {
		if ip != "" {
			ips = append(ips, ip)
		}
	}
	return ips
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
