package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/spf13/pflag"
)

func TestServiceConfigApplyDefaults(t *testing.T) {
	t.Run("empty environment defaults to development", func(t *testing.T) {
		cfg := ServiceConfig{Name: "svc"}
		cfg.ApplyDefaults()
		if cfg.Environment != "development" {
			t.Errorf("expected 'development', got %q", cfg.Environment)
		}
		if !cfg.Debug {
			t.Error("expected debug=true for development")
		}
		if cfg.Logging.ServiceName != "svc" {
			t.Errorf("expected logging service name 'svc', got %q", cfg.Logging.ServiceName)
		}
	})

	t.Run("production environment keeps debug false", func(t *testing.T) {
		cfg := ServiceConfig{Name: "svc", Environment: "production"}
		cfg.ApplyDefaults()
		if cfg.Debug {
			t.Error("expected debug=false for production")
		}
	})
}

func TestServiceConfigValidate(t *testing.T) {
	valid := func() ServiceConfig {
		cfg := ServiceConfig{Name: "svc", Environment: "staging"}
		cfg.ApplyDefaults()
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*ServiceConfig)
		wantErr string
	}{
		{"valid", func(*ServiceConfig) {}, ""},
		{"missing name", func(c *ServiceConfig) { c.Name = "" }, "name: is required"},
		{"invalid environment", func(c *ServiceConfig) { c.Environment = "qa" }, "environment: must be one of"},
		{"invalid log level", func(c *ServiceConfig) { c.Logging.Level = "loud" }, "config.logging"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("expected error containing %q, got %q", tc.wantErr, err.Error())
			}
		})
	}
}

func TestAppConfigDefaultsAndValidate(t *testing.T) {
	cfg := AppConfig{ServiceConfig: ServiceConfig{Name: "beandemo"}}
	cfg.ApplyDefaults()

	if cfg.Container.EagerOrder != "registration" {
		t.Errorf("expected eager order 'registration', got %q", cfg.Container.EagerOrder)
	}
	if cfg.Container.CyclePolicy != "reject" {
		t.Errorf("expected cycle policy 'reject', got %q", cfg.Container.CyclePolicy)
	}
	if cfg.Observability.Metrics.Interval != 15*time.Second {
		t.Errorf("expected 15s interval, got %v", cfg.Observability.Metrics.Interval)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cfg.Container.CyclePolicy = "sometimes"
	err := cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "cycle_policy: must be one of") {
		t.Errorf("expected cycle_policy error, got %v", err)
	}

	cfg.Container.CyclePolicy = "allow_setter"
	cfg.Observability.Tracing.SampleRate = 2
	err = cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "sample_rate") {
		t.Errorf("expected sample_rate error, got %v", err)
	}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func TestLoadConfigWithYAML(t *testing.T) {
	dir := t.TempDir()
	configPath := writeFile(t, dir, "config.yml", `
name: beandemo
environment: staging
version: "1.0.0"
container:
  eager_order: dependency
  cycle_policy: allow_setter
observability:
  tracing:
    enabled: true
    endpoint: collector:4318
`)

	var cfg AppConfig
	if err := LoadConfig("beandemo", &cfg, WithConfigFile(configPath), WithEnvFile(filepath.Join(dir, "missing.env"))); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Name != "beandemo" || cfg.Environment != "staging" {
		t.Errorf("unexpected service config %+v", cfg.ServiceConfig)
	}
	if cfg.Container.EagerOrder != "dependency" || cfg.Container.CyclePolicy != "allow_setter" {
		t.Errorf("unexpected container config %+v", cfg.Container)
	}
	if !cfg.Observability.Tracing.Enabled || cfg.Observability.Tracing.Endpoint != "collector:4318" {
		t.Errorf("unexpected tracing config %+v", cfg.Observability.Tracing)
	}
}

func TestLoadConfigEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	configPath := writeFile(t, dir, "config.yml", `
name: beandemo
container:
  eager_order: registration
`)
	t.Setenv("CONTAINER_EAGER_ORDER", "dependency")

	var cfg AppConfig
	if err := LoadConfig("beandemo", &cfg, WithConfigFile(configPath), WithEnvFile(filepath.Join(dir, "missing.env"))); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Container.EagerOrder != "dependency" {
		t.Errorf("expected env override 'dependency', got %q", cfg.Container.EagerOrder)
	}
}

func TestLoadConfigEnvFile(t *testing.T) {
	dir := t.TempDir()
	envPath := writeFile(t, dir, ".env", "BEANKIT_TEST_CYCLE=allow_setter\n")
	t.Cleanup(func() { os.Unsetenv("BEANKIT_TEST_CYCLE") })

	type testConfig struct {
		Beankit struct {
			Test struct {
				Cycle string `mapstructure:"cycle"`
			} `mapstructure:"test"`
		} `mapstructure:"beankit"`
	}

	var cfg testConfig
	if err := LoadConfig("beandemo", &cfg, WithConfigFile(filepath.Join(dir, "none.yml")), WithEnvFile(envPath)); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Beankit.Test.Cycle != "allow_setter" {
		t.Errorf("expected value from .env, got %q", cfg.Beankit.Test.Cycle)
	}
}

func TestLoadConfigFlags(t *testing.T) {
	dir := t.TempDir()
	configPath := writeFile(t, dir, "config.yml", `
name: beandemo
container:
  cycle_policy: reject
`)

	fs := pflag.NewFlagSet("beandemo", pflag.ContinueOnError)
	fs.String("eager-order", "registration", "eager singleton order")
	fs.String("cycle-policy", "reject", "cycle policy")
	if err := fs.Parse([]string{"--eager-order=dependency"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}

	var cfg AppConfig
	err := LoadConfig("beandemo", &cfg,
		WithConfigFile(configPath),
		WithEnvFile(filepath.Join(dir, "missing.env")),
		WithFlags(fs, map[string]string{
			"container.eager_order":  "eager-order",
			"container.cycle_policy": "cycle-policy",
		}))
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Container.EagerOrder != "dependency" {
		t.Errorf("expected changed flag to win, got %q", cfg.Container.EagerOrder)
	}
	if cfg.Container.CyclePolicy != "reject" {
		t.Errorf("expected config file value, got %q", cfg.Container.CyclePolicy)
	}
}

func TestLoadConfigChangedFlagBeatsEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("CONTAINER_EAGER_ORDER", "registration")
	t.Setenv("CONTAINER_CYCLE_POLICY", "allow_setter")

	fs := pflag.NewFlagSet("beandemo", pflag.ContinueOnError)
	fs.String("eager-order", "registration", "eager singleton order")
	fs.String("cycle-policy", "reject", "cycle policy")
	if err := fs.Parse([]string{"--eager-order", "dependency"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}

	var cfg AppConfig
	err := LoadConfig("beandemo", &cfg,
		WithConfigFile(filepath.Join(dir, "none.yml")),
		WithEnvFile(filepath.Join(dir, "missing.env")),
		WithFlags(fs, map[string]string{
			"container.eager_order":  "eager-order",
			"container.cycle_policy": "cycle-policy",
		}))
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Container.EagerOrder != "dependency" {
		t.Errorf("expected changed flag over env, got %q", cfg.Container.EagerOrder)
	}
	if cfg.Container.CyclePolicy != "allow_setter" {
		t.Errorf("expected env over unchanged flag default, got %q", cfg.Container.CyclePolicy)
	}
}

func TestLoadConfigUnknownFlag(t *testing.T) {
	fs := pflag.NewFlagSet("beandemo", pflag.ContinueOnError)
	var cfg AppConfig
	err := LoadConfig("beandemo", &cfg,
		WithConfigFile("/nonexistent/path.yml"),
		WithFlags(fs, map[string]string{"container.eager_order": "missing"}))
	if err == nil || !strings.Contains(err.Error(), `unknown flag "missing"`) {
		t.Errorf("expected unknown flag error, got %v", err)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	var cfg AppConfig
	// With no config file found, LoadConfig should still succeed (just empty config)
	err := LoadConfig("nonexistent-service", &cfg, WithConfigFile("/nonexistent/path.yml"))
	if err != nil {
		t.Fatalf("expected LoadConfig to succeed with missing file, got %v", err)
	}
}

func TestResolverWithMockFS(t *testing.T) {
	fs := &mockFS{files: map[string]bool{
		"./cmd/beandemo/config.yml": true,
		"./cmd/beandemo/.env":       true,
	}}
	resolver := &Resolver{FileSystem: fs}
	files := resolver.ResolveFiles("beandemo", LoaderConfig{})
	if files.ConfigFile != "./cmd/beandemo/config.yml" {
		t.Errorf("expected config file at ./cmd/beandemo/config.yml, got %q", files.ConfigFile)
	}
	if files.EnvFile != "./cmd/beandemo/.env" {
		t.Errorf("expected env file at ./cmd/beandemo/.env, got %q", files.EnvFile)
	}

	fs.files["./.env.beandemo"] = true
	if got := resolver.ResolveFiles("beandemo", LoaderConfig{}).EnvFile; got != "./.env.beandemo" {
		t.Errorf("expected service env file to win, got %q", got)
	}

	explicit := resolver.ResolveFiles("beandemo", LoaderConfig{ConfigFile: "custom.yml"})
	if explicit.ConfigFile != "custom.yml" {
		t.Errorf("expected explicit config file, got %q", explicit.ConfigFile)
	}
}

type mockFS struct {
	files map[string]bool
}

func (m *mockFS) Exists(path string) bool  { return m.files[path] }
func (m *mockFS) LoadEnv(path string) error { return nil }
func (m *mockFS) Getwd() (string, error)    { return "/mock", nil }

func TestConfigKeys(t *testing.T) {
	keys := configKeys(reflect.TypeOf(&AppConfig{}), "")
	set := make(map[string]bool, len(keys))
	for _, k := range keys {
		set[k] = true
	}
	for _, want := range []string{
		"name", "environment", "logging.level",
		"container.eager_order", "container.cycle_policy",
		"observability.tracing.sample_rate", "observability.metrics.interval",
	} {
		if !set[want] {
			t.Errorf("expected key %q in %v", want, keys)
		}
	}
	if set["serviceconfig.name"] || set["container"] {
		t.Errorf("unexpected squashed or branch key in %v", keys)
	}
}

func TestLoaderOptions(t *testing.T) {
	var lc LoaderConfig
	WithFileSystem(&mockFS{})(&lc)
	WithConfigFile("/path/to/config.yml")(&lc)
	WithEnvFile("/path/to/.env")(&lc)

	if lc.FileSystem == nil {
		t.Error("expected FileSystem to be set")
	}
	if lc.ConfigFile != "/path/to/config.yml" || lc.EnvFile != "/path/to/.env" {
		t.Errorf("unexpected loader config %+v", lc)
	}
}
