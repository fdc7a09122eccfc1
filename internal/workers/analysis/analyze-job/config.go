// internal/workers/analysis/analyze-job/config.go
package analyzejob

import (
	"time"

	"automation-advisor/internal/common/config"
)

type Config struct {
	Timeout     time.Duration
	DefaultLang string
}

func LoadConfig(cfg *config.Config) *Config {
	c := &Config{
		Timeout:     90 * time.Second,
		DefaultLang: "de",
	}
	if cfg == nil {
		return c
	}
	if cfg.Analysis.CompletionTimeout > 0 {
		// leave headroom for classification and completing the job
		c.Timeout = config.GetDuration(cfg.Analysis.CompletionTimeout) + 30*time.Second
	}
	if cfg.Analysis.DefaultLang != "" {
		c.DefaultLang = cfg.Analysis.DefaultLang
	}
	return c
}
