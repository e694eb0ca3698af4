package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"notifyd/internal/engine"
)

func writeTempFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return p
}

func TestLoadYAML(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.yaml", `addr: :9999
delivery_mode: unordered
max_concurrency: 4
delivery_timeout: 250ms
topics:
  - name: AAPL
    value: 150
  - name: temperature
    value: 20.5
subscribers:
  - topic: AAPL
    kind: trader
    label: robot
    buy_below: 140
    sell_above: 160
cors:
  enabled: true
  origins: ["http://localhost:3000"]
`)
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":9999" || cfg.DeliveryMode != "unordered" || cfg.MaxConcurrency != 4 || cfg.DeliveryTimeout != "250ms" {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
	if len(cfg.Topics) != 2 || cfg.Topics[1].Name != "temperature" || cfg.Topics[1].Value != 20.5 {
		t.Fatalf("unexpected topics: %+v", cfg.Topics)
	}
	if len(cfg.Subscribers) != 1 || cfg.Subscribers[0].BuyBelow != 140 || cfg.Subscribers[0].SellAbove != 160 {
		t.Fatalf("unexpected subscribers: %+v", cfg.Subscribers)
	}
	if !cfg.CORS.Enabled || len(cfg.CORS.Origins) != 1 {
		t.Fatalf("unexpected cors: %+v", cfg.CORS)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestLoadJSON(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.json", `{"addr":":7070","failure_buffer":8,"auto_create":true,"max_body_bytes":4096,"topics":[{"name":"GOOG","value":1}]}`)
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":7070" || cfg.FailureBuffer != 8 || !cfg.AutoCreate || cfg.MaxBodyBytes != 4096 || len(cfg.Topics) != 1 {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
}

func TestLoadTOML(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.toml", "addr=\":8081\"\nlog_level=\"debug\"\n\n[[topics]]\nname=\"AAPL\"\nvalue=150.0\n")
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":8081" || cfg.LogLevel != "debug" || len(cfg.Topics) != 1 || cfg.Topics[0].Value != 150 {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(""); err == nil {
		t.Fatalf("expected error on empty path")
	}
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.txt", "not supported")
	if _, err := Load(p); err == nil {
		t.Fatalf("expected unsupported extension error")
	}
}

func TestApply_Defaults(t *testing.T) {
	var cfg Config
	cfg.CORS.Enabled = true
	cfg.Apply()
	if cfg.Addr != DefaultAddr || cfg.LogLevel != DefaultLogLevel || cfg.LogFormat != DefaultLogFormat {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.DeliveryMode != "ordered" || len(cfg.CORS.Methods) == 0 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}
}

func TestValidate_Rejects(t *testing.T) {
	cases := map[string]Config{
		"mode":         {DeliveryMode: "sometimes"},
		"concurrency":  {MaxConcurrency: -1},
		"buffer":       {FailureBuffer: -1},
		"body limit":   {MaxBodyBytes: -1},
		"timeout":      {DeliveryTimeout: "soon"},
		"neg timeout":  {DeliveryTimeout: "-1s"},
		"empty topic":  {Topics: []TopicSeed{{Name: ""}}},
		"dup topic":    {Topics: []TopicSeed{{Name: "A"}, {Name: "A"}}},
		"kind":         {Subscribers: []SubscriberSpec{{Topic: "A", Kind: "pager"}}},
		"no topic":     {Subscribers: []SubscriberSpec{{Kind: "log"}}},
		"no recipient": {Subscribers: []SubscriberSpec{{Topic: "A", Kind: "email"}}},
	}
	for name, cfg := range cases {
		if err := cfg.Validate(); err == nil {
			t.Fatalf("%s: expected validation error", name)
		}
	}
}

func TestEngineConfig(t *testing.T) {
	cfg := Config{DeliveryMode: "unordered", MaxConcurrency: 3, FailureBuffer: 5, DeliveryTimeout: "2s", AutoCreate: true}
	ec, err := cfg.EngineConfig()
	if err != nil {
		t.Fatalf("EngineConfig: %v", err)
	}
	if ec.DeliveryMode != engine.DeliveryUnordered || ec.MaxConcurrency != 3 || ec.FailureBuffer != 5 || ec.DeliveryTimeout != 2*time.Second || !ec.AutoCreate {
		t.Fatalf("unexpected engine config: %+v", ec)
	}
}
