// internal/workers/report/send-results-notification/config.go
package sendresultsnotification

import (
	"time"

	"bizpath-workers/internal/common/config"
)

type Config struct {
	EmailEnabled bool
	SMSEnabled   bool
	// ResultsURL is linked from every message; {quizResponseId} is substituted.
	ResultsURL string
	// MaxPaths caps how many ranked paths a message lists.
	MaxPaths int
	Timeout  time.Duration
}

func LoadConfig(cfg *config.Config) *Config {
	c := &Config{
		MaxPaths: 3,
		Timeout:  15 * time.Second,
	}
	if cfg != nil {
		c.EmailEnabled = cfg.Notifications.Email.Enabled
		c.SMSEnabled = cfg.Notifications.SMS.Enabled
		c.ResultsURL = cfg.Notifications.ResultsURL
	}
	return c
}
