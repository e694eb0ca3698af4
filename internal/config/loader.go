package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"notifyd/internal/common/fsutil"
	"notifyd/internal/engine"
)

// Config holds runtime parameters for the engine and its daemon.
// Zero values mean "unspecified" and are replaced by defaults in Apply.
type Config struct {
	Addr            string           `json:"addr" yaml:"addr" toml:"addr"`
	LogLevel        string           `json:"log_level" yaml:"log_level" toml:"log_level"`
	LogFormat       string           `json:"log_format" yaml:"log_format" toml:"log_format"`
	DeliveryMode    string           `json:"delivery_mode" yaml:"delivery_mode" toml:"delivery_mode"`
	MaxConcurrency  int              `json:"max_concurrency" yaml:"max_concurrency" toml:"max_concurrency"`
	FailureBuffer   int              `json:"failure_buffer" yaml:"failure_buffer" toml:"failure_buffer"`
	DeliveryTimeout string           `json:"delivery_timeout" yaml:"delivery_timeout" toml:"delivery_timeout"`
	AutoCreate      bool             `json:"auto_create" yaml:"auto_create" toml:"auto_create"`
	MaxBodyBytes    int64            `json:"max_body_bytes" yaml:"max_body_bytes" toml:"max_body_bytes"`
	CORS            CORS             `json:"cors" yaml:"cors" toml:"cors"`
	Topics          []TopicSeed      `json:"topics" yaml:"topics" toml:"topics"`
	Subscribers     []SubscriberSpec `json:"subscribers" yaml:"subscribers" toml:"subscribers"`
}

// CORS configures the admin router's CORS middleware. Disabled by default.
type CORS struct {
	Enabled bool     `json:"enabled" yaml:"enabled" toml:"enabled"`
	Origins []string `json:"origins" yaml:"origins" toml:"origins"`
	Methods []string `json:"methods" yaml:"methods" toml:"methods"`
	Headers []string `json:"headers" yaml:"headers" toml:"headers"`
}

// TopicSeed is a topic created at startup.
type TopicSeed struct {
	Name  string  `json:"name" yaml:"name" toml:"name"`
	Value float64 `json:"value" yaml:"value" toml:"value"`
}

// SubscriberSpec is a built-in subscriber attached at startup.
// Kind is one of SubscriberKinds.
type SubscriberSpec struct {
	Topic     string  `json:"topic" yaml:"topic" toml:"topic"`
	Kind      string  `json:"kind" yaml:"kind" toml:"kind"`
	Label     string  `json:"label" yaml:"label" toml:"label"`
	Recipient string  `json:"recipient" yaml:"recipient" toml:"recipient"`
	BuyBelow  float64 `json:"buy_below" yaml:"buy_below" toml:"buy_below"`
	SellAbove float64 `json:"sell_above" yaml:"sell_above" toml:"sell_above"`
}

// Defaults used by Apply.
const (
	DefaultAddr      = ":8080"
	DefaultLogLevel  = "info"
	DefaultLogFormat = "console"
)

// SubscriberKinds lists the accepted SubscriberSpec.Kind values.
var SubscriberKinds = []string{"display", "log", "email", "trader", "record"}

// Load reads a configuration file based on its extension.
// Supports: .yaml/.yml, .json, .toml
func Load(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, fmt.Errorf("empty config path")
	}
	path, err := fsutil.ExpandHome(path)
	if err != nil {
		return cfg, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	case ".json":
		if err := json.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	case ".toml":
		if err := toml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	default:
		return cfg, fmt.Errorf("unsupported config extension: %s", ext)
	}
	return cfg, nil
}

// Apply fills unspecified fields with defaults.
func (c *Config) Apply() {
	if c.Addr == "" {
		c.Addr = DefaultAddr
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	if c.LogFormat == "" {
		c.LogFormat = DefaultLogFormat
	}
	if c.DeliveryMode == "" {
		c.DeliveryMode = string(engine.DeliveryOrdered)
	}
	if c.CORS.Enabled && len(c.CORS.Methods) == 0 {
		c.CORS.Methods = []string{"GET", "POST", "DELETE", "OPTIONS"}
	}
}

// Validate checks field values without touching the filesystem.
func (c Config) Validate() error {
	if _, err := engine.ParseDeliveryMode(c.DeliveryMode); err != nil {
		return err
	}
	if c.MaxConcurrency < 0 {
		return fmt.Errorf("max_concurrency must be >= 0, got %d", c.MaxConcurrency)
	}
	if c.FailureBuffer < 0 {
		return fmt.Errorf("failure_buffer must be >= 0, got %d", c.FailureBuffer)
	}
	if c.MaxBodyBytes < 0 {
		return fmt.Errorf("max_body_bytes must be >= 0, got %d", c.MaxBodyBytes)
	}
	if _, err := c.deliveryTimeout(); err != nil {
		return err
	}
	seen := make(map[string]bool, len(c.Topics))
	for i, t := range c.Topics {
		if t.Name == "" {
			return fmt.Errorf("topics[%d]: empty name", i)
		}
		if seen[t.Name] {
			return fmt.Errorf("topics[%d]: duplicate topic %q", i, t.Name)
		}
		seen[t.Name] = true
	}
	for i, s := range c.Subscribers {
		if s.Topic == "" {
			return fmt.Errorf("subscribers[%d]: empty topic", i)
		}
		if !validKind(s.Kind) {
			return fmt.Errorf("subscribers[%d]: unknown kind %q (want one of %s)", i, s.Kind, strings.Join(SubscriberKinds, ", "))
		}
		if s.Kind == "email" && s.Recipient == "" {
			return fmt.Errorf("subscribers[%d]: email subscriber needs a recipient", i)
		}
	}
	return nil
}

func validKind(k string) bool {
	for _, v := range SubscriberKinds {
		if v == k {
			return true
		}
	}
	return false
}

func (c Config) deliveryTimeout() (time.Duration, error) {
	if c.DeliveryTimeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.DeliveryTimeout)
	if err != nil {
		return 0, fmt.Errorf("delivery_timeout: %w", err)
	}
	if d < 0 {
		return 0, fmt.Errorf("delivery_timeout must be >= 0, got %s", d)
	}
	return d, nil
}

// EngineConfig converts the engine tunables into an engine.EngineConfig.
func (c Config) EngineConfig() (engine.EngineConfig[float64], error) {
	mode, err := engine.ParseDeliveryMode(c.DeliveryMode)
	if err != nil {
		return engine.EngineConfig[float64]{}, err
	}
	timeout, err := c.deliveryTimeout()
	if err != nil {
		return engine.EngineConfig[float64]{}, err
	}
	return engine.EngineConfig[float64]{
		DeliveryMode:    mode,
		MaxConcurrency:  c.MaxConcurrency,
		FailureBuffer:   c.FailureBuffer,
		DeliveryTimeout: timeout,
		AutoCreate:      c.AutoCreate,
	}, nil
}
