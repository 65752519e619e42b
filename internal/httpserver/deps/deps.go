package deps

import (
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/abodsh/edufiles/internal/index"
	"github.com/abodsh/edufiles/internal/logger"
	"github.com/abodsh/edufiles/internal/session"
	"github.com/abodsh/edufiles/internal/store"
)

type Deps struct {
	Logger    logger.Logger
	StartTime time.Time
	Version   string
	Commit    string
	BuildDate string
	GoVersion string
	TimeNow   func() time.Time // for testing, defaults to time.Now

	Catalog  store.CatalogStore // the single-document catalog slot
	Sessions store.SessionStore // active-identity slots
	Guard    *session.Guard     // login/logout/current-identity
	Snapshot *index.Snapshot    // last loaded document, for browsing reads

	RedisClient    *redis.Client // nil when running on the in-memory store
	RefreshTrigger chan struct{} // pokes the refresher outside its interval

	SessionTTL   time.Duration // cookie and identity-slot lifetime (0 = session cookie)
	AllowedCIDRS []string      // IPs allowed to reach the ops endpoints
	TrustProxy   bool          // true if running behind a trusted reverse proxy
}

// Now returns the injected clock, falling back to time.Now.
func (d Deps) Now() time.Time {
	if d.TimeNow != nil {
		return d.TimeNow()
	}
	return time.Now()
}
