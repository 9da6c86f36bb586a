// internal/workers/paths/calculate-fit-score/config.go
package calculatefitscore

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 5 * time.Second,
	}
}
