// internal/workers/paths/rank-business-paths/config.go
package rankbusinesspaths

import (
	"time"

	"bizpath-workers/internal/common/config"
)

type Config struct {
	Timeout time.Duration
	// DefaultTopN applies when the job does not set topN. Zero returns every path.
	DefaultTopN int
	CacheTTL    time.Duration
}

func LoadConfig(cfg *config.Config) *Config {
	c := &Config{
		Timeout:  10 * time.Second,
		CacheTTL: 30 * time.Minute,
	}
	if cfg != nil {
		c.DefaultTopN = cfg.Scoring.DefaultTopN
		if ttl := cfg.Scoring.CacheDuration(); ttl > 0 {
			c.CacheTTL = ttl
		}
	}
	return c
}
