// internal/workers/paths/search-business-models/config.go
package searchbusinessmodels

import "time"

type Config struct {
	Timeout     time.Duration
	DefaultSize int
	// FallbackToCatalog answers from the in-memory catalog when the index fails.
	FallbackToCatalog bool
}

func LoadConfig() *Config {
	return &Config{
		Timeout:           10 * time.Second,
		DefaultSize:       10,
		FallbackToCatalog: true,
	}
}
