// internal/workers/report/prepare-narrative-context/config.go
package preparenarrativecontext

import "time"

type Config struct {
	Timeout     time.Duration
	DefaultTopN int
}

func LoadConfig() *Config {
	return &Config{
		Timeout:     10 * time.Second,
		DefaultTopN: 3,
	}
}
