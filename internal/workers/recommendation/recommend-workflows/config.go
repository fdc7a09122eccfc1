// internal/workers/recommendation/recommend-workflows/config.go
package recommendworkflows

import (
	"time"

	"automation-advisor/internal/common/config"
)

type Config struct {
	Timeout     time.Duration
	DefaultTopK int
}

func LoadConfig(cfg *config.Config) *Config {
	c := &Config{
		Timeout:     30 * time.Second,
		DefaultTopK: 5,
	}
	if cfg == nil {
		return c
	}
	if w, ok := cfg.Workers[TaskType]; ok && w.Timeout > 0 {
		c.Timeout = config.GetDuration(w.Timeout)
	}
	if cfg.Recommendation.DefaultTopK > 0 {
		c.DefaultTopK = cfg.Recommendation.DefaultTopK
	}
	return c
}
