package deps

import (
	"time"

	"github.com/MrSnakeDoc/stashlink/internal/httpserver/mw"
	"github.com/MrSnakeDoc/stashlink/internal/linker"
	"github.com/MrSnakeDoc/stashlink/internal/logger"
	redisstore "github.com/MrSnakeDoc/stashlink/internal/store/redis"
)

type Deps struct {
	Logger        logger.Logger
	StartTime     time.Time
	Version       string
	Commit        string
	BuildDate     string
	GoVersion     string
	TimeNow       func() time.Time   // for testing, defaults to time.Now
	AllowedHosts  []string           // Host headers allowed to access the server
	AllowedCIDRS  []string           // IPs allowed to access admin endpoints (reload, infra, metrics)
	TrustProxy    bool               // true if running behind a trusted reverse proxy (e.g., cloudflared)
	SettingsFile  string             // Path to the administrator settings file
	Store         *redisstore.Store  // Redis store (nil when Redis is disabled)
	Links         *linker.Holder     // Current linker, swapped on settings reload
	ReloadTrigger chan struct{}      // Channel to trigger manual settings reload
	RateLimit     mw.RateLimitConfig // Per-IP limits for resolution endpoints
}
