// SPDX-License-Identifier: MIT

// Package config loads the daemon configuration from the environment with
// an optional YAML overlay, validates it, and supports hot reload of the
// delivery tunables.
package config

import (
	"fmt"
	"time"
)

// Config is the full daemon configuration.
type Config struct {
	// HTTP
	ListenAddr  string `yaml:"listen_addr"`
	VerifyToken string `yaml:"verify_token"`

	// Messaging gateway
	GatewayBaseURL string `yaml:"gateway_base_url"`
	GatewayToken   string `yaml:"gateway_token"`
	PhoneNumberID  string `yaml:"phone_number_id"`

	// Session store
	RedisAddr     string        `yaml:"redis_addr"`
	RedisPassword string        `yaml:"redis_password"`
	RedisDB       int           `yaml:"redis_db"`
	SessionTTL    time.Duration `yaml:"session_ttl"`
	DedupeTTL     time.Duration `yaml:"dedupe_ttl"`

	// Storage
	DataDir       string        `yaml:"data_dir"`
	DeadLetterTTL time.Duration `yaml:"dead_letter_ttl"`

	// Delivery pipeline
	Delivery DeliveryConfig `yaml:"delivery"`

	// Logging
	LogLevel  string `yaml:"log_level"`
	LogPretty bool   `yaml:"log_pretty"`
}

// DeliveryConfig holds the outbound pipeline tunables. This subset is
// hot-reloadable via the YAML overlay file.
type DeliveryConfig struct {
	Workers       int           `yaml:"workers"`
	QueueSize     int           `yaml:"queue_size"`
	GlobalRate    float64       `yaml:"global_rate"`     // sends per second across all recipients
	GlobalBurst   int           `yaml:"global_burst"`
	PerMinute     int           `yaml:"per_minute"`      // per-recipient minute cap
	PerDay        int           `yaml:"per_day"`         // per-recipient day cap
	MaxAttempts   int           `yaml:"max_attempts"`
	RetryBase     time.Duration `yaml:"retry_base"`
	RetryCap      time.Duration `yaml:"retry_cap"`
}

// Default returns the built-in defaults, before env and file overlays.
func Default() Config {
	return Config{
		ListenAddr:    ":8080",
		RedisAddr:     "localhost:6379",
		SessionTTL:    24 * time.Hour,
		DedupeTTL:     10 * time.Minute,
		DataDir:       "./data",
		DeadLetterTTL: 30 * 24 * time.Hour,
		Delivery: DeliveryConfig{
			Workers:     4,
			QueueSize:   1024,
			GlobalRate:  4,
			GlobalBurst: 4,
			PerMinute:   30,
			PerDay:      1000,
			MaxAttempts: 3,
			RetryBase:   2 * time.Second,
			RetryCap:    time.Minute,
		},
		LogLevel: "info",
	}
}

// FromEnv builds the configuration from defaults and environment
// variables, then applies the optional YAML overlay named by
// WAFLOW_CONFIG_FILE.
func FromEnv() (Config, error) {
	cfg := Default()

	cfg.ListenAddr = ParseString("WAFLOW_LISTEN_ADDR", cfg.ListenAddr)
	cfg.VerifyToken = ParseString("WAFLOW_VERIFY_TOKEN", cfg.VerifyToken)
	cfg.GatewayBaseURL = ParseString("WAFLOW_GATEWAY_BASE_URL", cfg.GatewayBaseURL)
	cfg.GatewayToken = ParseString("WAFLOW_GATEWAY_TOKEN", cfg.GatewayToken)
	cfg.PhoneNumberID = ParseString("WAFLOW_PHONE_NUMBER_ID", cfg.PhoneNumberID)
	cfg.RedisAddr = ParseString("WAFLOW_REDIS_ADDR", cfg.RedisAddr)
	cfg.RedisPassword = ParseString("WAFLOW_REDIS_PASSWORD", cfg.RedisPassword)
	cfg.RedisDB = ParseInt("WAFLOW_REDIS_DB", cfg.RedisDB)
	cfg.SessionTTL = ParseDuration("WAFLOW_SESSION_TTL", cfg.SessionTTL)
	cfg.DedupeTTL = ParseDuration("WAFLOW_DEDUPE_TTL", cfg.DedupeTTL)
	cfg.DataDir = ParseString("WAFLOW_DATA_DIR", cfg.DataDir)
	cfg.DeadLetterTTL = ParseDuration("WAFLOW_DEAD_LETTER_TTL", cfg.DeadLetterTTL)
	cfg.LogLevel = ParseString("LOG_LEVEL", cfg.LogLevel)
	cfg.LogPretty = ParseBool("LOG_PRETTY", cfg.LogPretty)

	cfg.Delivery.Workers = ParseInt("WAFLOW_DELIVERY_WORKERS", cfg.Delivery.Workers)
	cfg.Delivery.QueueSize = ParseInt("WAFLOW_DELIVERY_QUEUE_SIZE", cfg.Delivery.QueueSize)
	cfg.Delivery.GlobalRate = ParseFloat("WAFLOW_DELIVERY_GLOBAL_RATE", cfg.Delivery.GlobalRate)
	cfg.Delivery.GlobalBurst = ParseInt("WAFLOW_DELIVERY_GLOBAL_BURST", cfg.Delivery.GlobalBurst)
	cfg.Delivery.PerMinute = ParseInt("WAFLOW_DELIVERY_PER_MINUTE", cfg.Delivery.PerMinute)
	cfg.Delivery.PerDay = ParseInt("WAFLOW_DELIVERY_PER_DAY", cfg.Delivery.PerDay)
	cfg.Delivery.MaxAttempts = ParseInt("WAFLOW_DELIVERY_MAX_ATTEMPTS", cfg.Delivery.MaxAttempts)
	cfg.Delivery.RetryBase = ParseDuration("WAFLOW_DELIVERY_RETRY_BASE", cfg.Delivery.RetryBase)
	cfg.Delivery.RetryCap = ParseDuration("WAFLOW_DELIVERY_RETRY_CAP", cfg.Delivery.RetryCap)

	if path := ParseString("WAFLOW_CONFIG_FILE", ""); path != "" {
		if err := cfg.ApplyFile(path); err != nil {
			return cfg, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate rejects configurations the pipeline cannot run with.
func (c Config) Validate() error {
	if c.ListenAddr == "" {
		return fmt.Errorf("config: listen_addr must not be empty")
	}
	if c.RedisAddr == "" {
		return fmt.Errorf("config: redis_addr must not be empty")
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("config: session_ttl must be positive")
	}
	return c.Delivery.Validate()
}

// Validate rejects delivery tunables the pipeline cannot run with.
func (d DeliveryConfig) Validate() error {
	if d.Workers <= 0 {
		return fmt.Errorf("config: delivery.workers must be positive")
	}
	if d.QueueSize <= 0 {
		return fmt.Errorf("config: delivery.queue_size must be positive")
	}
	if d.GlobalRate <= 0 {
		return fmt.Errorf("config: delivery.global_rate must be positive")
	}
	if d.PerMinute <= 0 || d.PerDay <= 0 {
		return fmt.Errorf("config: per-recipient caps must be positive")
	}
	if d.PerDay < d.PerMinute {
		return fmt.Errorf("config: delivery.per_day must be >= per_minute")
	}
	if d.MaxAttempts < 1 {
		return fmt.Errorf("config: delivery.max_attempts must be >= 1")
	}
	if d.RetryBase <= 0 || d.RetryCap < d.RetryBase {
		return fmt.Errorf("config: retry_base must be positive and <= retry_cap")
	}
	return nil
}
