package config

import (
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the overall application configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Remote     RemoteConfig     `yaml:"remote"`
	Sync       SyncConfig       `yaml:"sync"`
	Database   DatabaseConfig   `yaml:"database"`
	Snapshot   SnapshotConfig   `yaml:"snapshot"`
	Push       PushConfig       `yaml:"push"`
	WorkerPool WorkerPoolConfig `yaml:"worker_pool"`
}

// WorkerPoolConfig holds the configuration for the notification worker pool.
type WorkerPoolConfig struct {
	Size int `yaml:"size"`
}

// PushConfig holds the VAPID keys for web push notifications. Push is disabled when
// either key is empty.
type PushConfig struct {
	PublicKey  string `yaml:"vapid_public_key"`
	PrivateKey string `yaml:"vapid_private_key"`
	Subject    string `yaml:"subject"`
	TTL        int    `yaml:"ttl"`
}

// Enabled reports whether both VAPID keys are configured.
func (p PushConfig) Enabled() bool {
	return p.PublicKey != "" && p.PrivateKey != ""
}

// ServerConfig holds the local view API configuration.
type ServerConfig struct {
	Port            int     `yaml:"port"`
	RateLimitPerSec float64 `yaml:"rate_limit_per_sec"`
	RateLimitBurst  int     `yaml:"rate_limit_burst"`
	// RateLimitIdleSeconds is how long an unused per-IP limiter is kept.
	RateLimitIdleSeconds int           `yaml:"rate_limit_idle_seconds"`
	RateLimitIdle        time.Duration `yaml:"-"`
	CacheTTLSeconds      int           `yaml:"cache_ttl_seconds"`
	CacheTTL             time.Duration `yaml:"-"`
}

// RemoteConfig describes the tracker server the client mirrors.
type RemoteConfig struct {
	BaseURL        string            `yaml:"base_url"`
	HTTPProxy      string            `yaml:"http_proxy"`
	TimeoutSeconds int               `yaml:"timeout_seconds"`
	Timeout        time.Duration     `yaml:"-"`
	Headers        map[string]string `yaml:"headers"`
}

// SyncConfig controls refreshes and the push channel.
type SyncConfig struct {
	// PreserveOnFailure keeps the previous collection when a refresh fails instead of
	// replacing it with an empty one.
	PreserveOnFailure bool          `yaml:"preserve_on_failure"`
	PushEnabled       *bool         `yaml:"push_enabled"`
	PushPath          string        `yaml:"push_path"`
	ReconnectMinMS    int           `yaml:"reconnect_min_ms"`
	ReconnectMaxMS    int           `yaml:"reconnect_max_ms"`
	ReconnectMin      time.Duration `yaml:"-"`
	ReconnectMax      time.Duration `yaml:"-"`
}

// ListenForPush reports whether the push channel should be opened. Defaults to true.
func (s SyncConfig) ListenForPush() bool {
	return s.PushEnabled == nil || *s.PushEnabled
}

// DatabaseConfig holds the database connection configuration.
type DatabaseConfig struct {
	Driver                 string `yaml:"driver"` // "sqlite" or "postgres"
	DSN                    string `yaml:"dsn"`
	MaxOpenConns           int    `yaml:"max_open_conns"`
	MaxIdleConns           int    `yaml:"max_idle_conns"`
	ConnMaxLifetimeMinutes int    `yaml:"conn_max_lifetime_minutes"`
}

// SnapshotConfig controls the local store snapshot.
type SnapshotConfig struct {
	Key        string `yaml:"key"`
	SaveOnExit bool   `yaml:"save_on_exit"`
}

// DefaultSnapshotKey is the name the store snapshot is kept under.
const DefaultSnapshotKey = "app_data_cache"

// Load reads the configuration from the given path.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg Config
	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, err
	}

	cfg.applyDefaults()
	return &cfg, nil
}

func (cfg *Config) applyDefaults() {
	if cfg.Server.Port <= 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.RateLimitPerSec <= 0 {
		cfg.Server.RateLimitPerSec = 10
	}
	if cfg.Server.RateLimitBurst <= 0 {
		cfg.Server.RateLimitBurst = 5
	}
	if cfg.Server.RateLimitIdleSeconds <= 0 {
		cfg.Server.RateLimitIdleSeconds = 600
	}
	cfg.Server.RateLimitIdle = time.Duration(cfg.Server.RateLimitIdleSeconds) * time.Second
	if cfg.Server.CacheTTLSeconds <= 0 {
		cfg.Server.CacheTTLSeconds = 300
	}
	cfg.Server.CacheTTL = time.Duration(cfg.Server.CacheTTLSeconds) * time.Second

	if cfg.Remote.TimeoutSeconds <= 0 {
		cfg.Remote.TimeoutSeconds = 30
	}
	cfg.Remote.Timeout = time.Duration(cfg.Remote.TimeoutSeconds) * time.Second

	if cfg.Sync.PushPath == "" {
		cfg.Sync.PushPath = "/api/sync"
	}
	if cfg.Sync.ReconnectMinMS <= 0 {
		cfg.Sync.ReconnectMinMS = 1000
	}
	if cfg.Sync.ReconnectMaxMS < cfg.Sync.ReconnectMinMS {
		cfg.Sync.ReconnectMaxMS = max(30000, cfg.Sync.ReconnectMinMS)
	}
	cfg.Sync.ReconnectMin = time.Duration(cfg.Sync.ReconnectMinMS) * time.Millisecond
	cfg.Sync.ReconnectMax = time.Duration(cfg.Sync.ReconnectMaxMS) * time.Millisecond

	if cfg.Database.Driver == "" {
		cfg.Database.Driver = "sqlite"
	}
	if cfg.Database.DSN == "" && cfg.Database.Driver == "sqlite" {
		cfg.Database.DSN = "tracker.db"
	}

	if cfg.Snapshot.Key == "" {
		cfg.Snapshot.Key = DefaultSnapshotKey
	}

	if cfg.Push.TTL <= 0 {
		cfg.Push.TTL = 3600
	}

	if cfg.WorkerPool.Size <= 0 {
		log.Printf("worker_pool.size is not set or invalid; defaulting to 1")
		cfg.WorkerPool.Size = 1
	}
}
