package deps

import (
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/docnav/internal/index"
	"github.com/MrSnakeDoc/docnav/internal/logger"
)

type Deps struct {
	Logger        logger.Logger
	StartTime     time.Time
	Version       string
	Commit        string
	BuildDate     string
	GoVersion     string
	TimeNow       func() time.Time   // for testing, defaults to time.Now
	AllowedHosts  []string           // Host headers allowed on admin endpoints
	AllowedCIDRS  []string           // IPs allowed on admin endpoints
	TrustProxy    bool               // true if running behind a trusted reverse proxy (e.g., cloudflared)
	Source        string             // configured sidebar source (declared, file, autogen)
	Index         *index.MemoryIndex // current sidebar snapshot
	RedisClient   *redis.Client      // nil when snapshot persistence is disabled
	ReloadTrigger chan struct{}      // Channel to trigger manual reload
}
