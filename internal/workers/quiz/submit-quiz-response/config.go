// internal/workers/quiz/submit-quiz-response/config.go
package submitquizresponse

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 10 * time.Second,
	}
}
