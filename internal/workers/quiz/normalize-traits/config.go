// internal/workers/quiz/normalize-traits/config.go
package normalizetraits

import "time"

type Config struct {
	Timeout time.Duration
	// StrongestCount is how many core traits are reported as strongest.
	StrongestCount int
}

func LoadConfig() *Config {
	return &Config{
		Timeout:        5 * time.Second,
		StrongestCount: 3,
	}
}
