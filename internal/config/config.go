package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type RuntimeConfig struct {
	Dev bool
}

type LogConfig struct {
	Level    string `yaml:"level"`    // trace|debug|info|warn|error
	Format   string `yaml:"format"`   // json|console
	Sampling bool   `yaml:"sampling"` // enable sampling in prod
}

type DatabaseConfig struct {
	URL      string `yaml:"url"`
	MaxConns int32  `yaml:"max_conns"`
}

type RedisConfig struct {
	URL      string        `yaml:"url"` // empty disables the report cache
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	TTL      time.Duration `yaml:"ttl"`
}

type AIConfig struct {
	OpenAIKey       string        `yaml:"openai_key"`
	GeminiKey       string        `yaml:"gemini_key"`
	GeminiURL       string        `yaml:"gemini_url"`
	Model           string        `yaml:"model"`
	ConcurrentLimit int           `yaml:"concurrent_limit"` // max concurrent AI calls
	Timeout         time.Duration `yaml:"timeout"`          // per AI call
	MaxInputTokens  int           `yaml:"max_input_tokens"` // prompt truncation budget
}

type IngestConfig struct {
	Timeout      time.Duration `yaml:"timeout"` // per source fetch
	UserAgent    string        `yaml:"user_agent"`
	MaxBodyBytes int64         `yaml:"max_body_bytes"`
}

// ReviewPolicy holds the deployment-tunable quality gate. Thresholds are
// configuration, not code, so operators can move them without a release.
type ReviewPolicy struct {
	MinContentLength int      `yaml:"min_content_length"`
	BannedTerms      []string `yaml:"banned_terms"`
}

type OrchestratorConfig struct {
	Interval     time.Duration `yaml:"interval"`      // sleep between continuous cycles
	RetryCeiling int           `yaml:"retry_ceiling"` // attempts per task per cycle
	StageWorkers int           `yaml:"stage_workers"` // concurrent tasks within a stage
	TaskBatch    int           `yaml:"task_batch"`    // max tasks collected per kind per cycle
	DBTimeout    time.Duration `yaml:"db_timeout"`    // per persistence call
}

type OpsConfig struct {
	Port int `yaml:"port"` // /healthz /metrics /status
}

type Config struct {
	Log          LogConfig          `yaml:"log"`
	Database     DatabaseConfig     `yaml:"database"`
	Redis        RedisConfig        `yaml:"redis"`
	AI           AIConfig           `yaml:"ai"`
	Ingest       IngestConfig       `yaml:"ingest"`
	Review       ReviewPolicy       `yaml:"review"`
	Orchestrator OrchestratorConfig `yaml:"orchestrator"`
	Ops          OpsConfig          `yaml:"ops"`

	Runtime RuntimeConfig `yaml:"-"`
}

func LoadConfig(path string, dev bool) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg.applyDefaults()

	// Minimal validation. Absence of an AI credential is a supported state:
	// the provider degrades to the local fallback.
	if cfg.Database.URL == "" {
		return nil, errors.New("database.url is required")
	}

	cfg.Runtime.Dev = dev
	return &cfg, nil
}

func (cfg *Config) applyDefaults() {
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}
	if cfg.Database.MaxConns <= 0 {
		cfg.Database.MaxConns = 10
	}
	if cfg.Redis.TTL <= 0 {
		cfg.Redis.TTL = time.Hour
	}
	if cfg.AI.Model == "" {
		cfg.AI.Model = "gpt-4o-mini"
	}
	if cfg.AI.ConcurrentLimit <= 0 {
		cfg.AI.ConcurrentLimit = 8
	}
	if cfg.AI.Timeout <= 0 {
		cfg.AI.Timeout = 30 * time.Second
	}
	if cfg.AI.MaxInputTokens <= 0 {
		cfg.AI.MaxInputTokens = 6000
	}
	if cfg.Ingest.Timeout <= 0 {
		cfg.Ingest.Timeout = 20 * time.Second
	}
	if cfg.Ingest.UserAgent == "" {
		cfg.Ingest.UserAgent = "newsroom-agents/1.0"
	}
	if cfg.Ingest.MaxBodyBytes <= 0 {
		cfg.Ingest.MaxBodyBytes = 2 << 20
	}
	if cfg.Review.MinContentLength <= 0 {
		cfg.Review.MinContentLength = 280
	}
	if cfg.Orchestrator.Interval <= 0 {
		cfg.Orchestrator.Interval = 5 * time.Minute
	}
	if cfg.Orchestrator.RetryCeiling <= 0 {
		cfg.Orchestrator.RetryCeiling = 3
	}
	if cfg.Orchestrator.StageWorkers <= 0 {
		cfg.Orchestrator.StageWorkers = 4
	}
	if cfg.Orchestrator.TaskBatch <= 0 {
		cfg.Orchestrator.TaskBatch = 50
	}
	if cfg.Ops.Port == 0 {
		cfg.Ops.Port = 9090
	}
	if cfg.Orchestrator.DBTimeout <= 0 {
		cfg.Orchestrator.DBTimeout = 5 * time.Second
	}
}
