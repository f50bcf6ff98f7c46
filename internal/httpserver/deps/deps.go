package deps

import (
	"time"

	"github.com/davmoraru/wayfind/internal/cities"
	"github.com/davmoraru/wayfind/internal/enrich"
	"github.com/davmoraru/wayfind/internal/geocode"
	"github.com/davmoraru/wayfind/internal/logger"
	"github.com/davmoraru/wayfind/internal/notify"
	"github.com/davmoraru/wayfind/internal/push"
	"github.com/davmoraru/wayfind/internal/state"
	redisstore "github.com/davmoraru/wayfind/internal/store/redis"
	"github.com/davmoraru/wayfind/internal/upstream"
)

type Deps struct {
	Logger    logger.Logger
	StartTime time.Time
	Version   string
	Commit    string
	BuildDate string
	GoVersion string
	TimeNow   func() time.Time // for testing, defaults to time.Now

	AllowedCIDRS []string // IPs allowed to access the ops endpoints
	TrustProxy   bool     // true if running behind a trusted reverse proxy

	RateLimitBurst  int // token bucket size for the search endpoint
	RateLimitPerMin int // refill rate per client IP

	Sessions *state.SessionStore  // current enrichment session view
	Enricher *enrich.Orchestrator // per-city enrichment pipeline
	Geocoder *geocode.Adapter     // forward + reverse geocoding
	Upstream *upstream.Client     // raw recommendation source
	Cities   *cities.Index        // supported city names
	Notifier *notify.Manager      // notification stream state

	Push              push.Channel // topic channel for alerts and location updates
	PushLocationTopic string       // outbound destination for location updates

	Cache         *redisstore.Store // lookup cache, nil when caching is disabled
	ReloadTrigger chan struct{}     // channel to trigger a manual city list reload
}
