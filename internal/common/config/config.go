// internal/common/config/config.go
package config

import "fmt"

type Config struct {
	App            AppConfig               `mapstructure:"app"`
	Camunda        CamundaConfig           `mapstructure:"camunda"`
	Database       DatabaseConfig          `mapstructure:"database"`
	Cache          CacheConfig             `mapstructure:"cache"`
	Workers        map[string]WorkerConfig `mapstructure:"workers"`
	APIs           APIsConfig              `mapstructure:"apis"`
	Analysis       AnalysisConfig          `mapstructure:"analysis"`
	Recommendation RecommendationConfig    `mapstructure:"recommendation"`
	Logging        LoggingConfig           `mapstructure:"logging"`
	Tracing        TracingConfig           `mapstructure:"tracing"`
	Server         ServerConfig            `mapstructure:"server"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type CamundaConfig struct {
	BrokerAddress  string `mapstructure:"broker_address"`
	MaxJobsActive  int    `mapstructure:"max_jobs_active"`
	Timeout        int    `mapstructure:"timeout"`         // milliseconds
	RequestTimeout int    `mapstructure:"request_timeout"` // milliseconds
}

type DatabaseConfig struct {
	Postgres      PostgresConfig      `mapstructure:"postgres"`
	Elasticsearch ElasticsearchConfig `mapstructure:"elasticsearch"`
	Redis         RedisConfig         `mapstructure:"redis"`
}

type PostgresConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Database       string `mapstructure:"database"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	MaxConnections int    `mapstructure:"max_connections"`
	MaxIdle        int    `mapstructure:"max_idle"`
	SSLMode        string `mapstructure:"sslmode"`
}

func (p PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

type ElasticsearchConfig struct {
	Addresses []string `mapstructure:"addresses"`
	Username  string   `mapstructure:"username"`
	Password  string   `mapstructure:"password"`
	URL       string   `mapstructure:"url"` // single address shorthand
}

func (e ElasticsearchConfig) GetURL() string {
	if e.URL != "" {
		return e.URL
	}
	if len(e.Addresses) > 0 {
		return e.Addresses[0]
	}
	return ""
}

type RedisConfig struct {
	Address      string `mapstructure:"address"`
	Password     string `mapstructure:"password"`
	DB           int    `mapstructure:"db"`
	PoolSize     int    `mapstructure:"pool_size"`
	MinIdleConns int    `mapstructure:"min_idle_conns"`
}

// CacheConfig sizes the in-process L1 that sits in front of Redis.
type CacheConfig struct {
	L1MaxCostBytes int64 `mapstructure:"l1_max_cost_bytes"`
	L1TTL          int   `mapstructure:"l1_ttl"` // milliseconds
}

type WorkerConfig struct {
	Enabled       bool `mapstructure:"enabled"`
	MaxJobsActive int  `mapstructure:"max_jobs_active"`
	Timeout       int  `mapstructure:"timeout"`     // milliseconds
	MaxRetries    int  `mapstructure:"max_retries"` // job level only
}

type GenAIConfig struct {
	BaseURL string `mapstructure:"base_url"`
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	Timeout int    `mapstructure:"timeout"` // milliseconds
}

type APIsConfig struct {
	GenAI GenAIConfig `mapstructure:"genai"`
}

type AnalysisConfig struct {
	DefaultLang       string `mapstructure:"default_lang"`
	CompletionTimeout int    `mapstructure:"completion_timeout"` // milliseconds
}

type RecommendationConfig struct {
	UnifiedEnabled       bool     `mapstructure:"unified_enabled"`
	MaxCandidates        int      `mapstructure:"max_candidates"`
	VerificationStatuses []string `mapstructure:"verification_statuses"`
	LegacyIndex          string   `mapstructure:"legacy_index"`
	DefaultTopK          int      `mapstructure:"default_top_k"`
	CacheTTL             int      `mapstructure:"cache_ttl"`     // milliseconds
	StoreTimeout         int      `mapstructure:"store_timeout"` // milliseconds
	ScoreConcurrency     int      `mapstructure:"score_concurrency"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

type TracingConfig struct {
	Enabled     bool    `mapstructure:"enabled"`
	ServiceName string  `mapstructure:"service_name"`
	SampleRatio float64 `mapstructure:"sample_ratio"`
}

type ServerConfig struct {
	MetricsAddress string `mapstructure:"metrics_address"`
}
