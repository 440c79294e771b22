package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestValidate_InvalidPort(t *testing.T) {
	cfg := Config{HTTP: HTTPConfig{Port: 0}}
	cfg.ApplyDefaults()

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for invalid port")
	}
}

func TestValidate_PerPageTooLarge(t *testing.T) {
	cfg := Config{
		HTTP:   HTTPConfig{Port: 8080},
		Source: SourceConfig{PerPage: 101, MaxPages: 1},
	}
	cfg.ApplyDefaults()

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for per_page > 100")
	}
	expected := "source.per_page must be at most 100, got 101"
	if err.Error() != expected {
		t.Errorf("unexpected error message:\ngot:  %q\nwant: %q", err.Error(), expected)
	}
}

func TestValidate_SearchDepth(t *testing.T) {
	cfg := Config{
		HTTP:   HTTPConfig{Port: 8080},
		Source: SourceConfig{PerPage: 100, MaxPages: 21},
	}
	cfg.ApplyDefaults()

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for depth > 2000")
	}
	if !strings.Contains(err.Error(), "must not exceed 2000") {
		t.Errorf("error = %q", err)
	}
}

func TestValidate_ScheduleNeedsKeywords(t *testing.T) {
	cfg := Config{
		HTTP:     HTTPConfig{Port: 8080},
		Schedule: ScheduleConfig{Interval: "@every 6h"},
	}
	cfg.ApplyDefaults()

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for schedule without keywords")
	}
}

func TestValidate_Defaults(t *testing.T) {
	cfg := Config{HTTP: HTTPConfig{Port: 8080}}
	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 10 {
		t.Errorf("expected ReadTimeoutSec=10, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.HTTP.WriteTimeoutSec != 60 {
		t.Errorf("expected WriteTimeoutSec=60, got %d", cfg.HTTP.WriteTimeoutSec)
	}
	if cfg.HTTP.ShutdownSec != 10 {
		t.Errorf("expected ShutdownSec=10, got %d", cfg.HTTP.ShutdownSec)
	}
	if cfg.Source.BaseURL != "https://api.hh.ru" {
		t.Errorf("expected BaseURL=https://api.hh.ru, got %q", cfg.Source.BaseURL)
	}
	if cfg.Source.UserAgent != "HH-User-Agent" {
		t.Errorf("expected UserAgent=HH-User-Agent, got %q", cfg.Source.UserAgent)
	}
	if cfg.Source.Area != 113 {
		t.Errorf("expected Area=113, got %d", cfg.Source.Area)
	}
	if cfg.Source.PerPage != 100 {
		t.Errorf("expected PerPage=100, got %d", cfg.Source.PerPage)
	}
	if cfg.Source.MaxPages != 20 {
		t.Errorf("expected MaxPages=20, got %d", cfg.Source.MaxPages)
	}
	if cfg.Storage.DataDir != "data" {
		t.Errorf("expected DataDir=data, got %q", cfg.Storage.DataDir)
	}
	if cfg.Storage.DefaultFile != "vacancies.json" {
		t.Errorf("expected DefaultFile=vacancies.json, got %q", cfg.Storage.DefaultFile)
	}
	if cfg.Cache.TTLSec != 900 {
		t.Errorf("expected TTLSec=900, got %d", cfg.Cache.TTLSec)
	}
	if cfg.Cache.KeyPrefix != "hhdex:" {
		t.Errorf("expected KeyPrefix='hhdex:', got %q", cfg.Cache.KeyPrefix)
	}
	if cfg.Schedule.File != "vacancies.json" {
		t.Errorf("expected Schedule.File to follow DefaultFile, got %q", cfg.Schedule.File)
	}
	if cfg.Cache.Enabled() {
		t.Error("cache should be disabled without addrs")
	}
}

func TestApplyDefaults_NoOverride(t *testing.T) {
	cfg := Config{
		HTTP:    HTTPConfig{ReadTimeoutSec: 30, WriteTimeoutSec: 90, ShutdownSec: 5},
		Source:  SourceConfig{Area: 1, PerPage: 50, MaxPages: 4},
		Storage: StorageConfig{DataDir: "/var/lib/hhdex", DefaultFile: "it.xlsx"},
		Cache:   CacheConfig{KeyPrefix: "custom:"},
	}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 30 {
		t.Errorf("expected ReadTimeoutSec=30, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.Source.Area != 1 {
		t.Errorf("expected Area=1, got %d", cfg.Source.Area)
	}
	if cfg.Source.PerPage != 50 {
		t.Errorf("expected PerPage=50, got %d", cfg.Source.PerPage)
	}
	if cfg.Storage.DefaultFile != "it.xlsx" {
		t.Errorf("expected DefaultFile=it.xlsx, got %q", cfg.Storage.DefaultFile)
	}
	if cfg.Schedule.File != "it.xlsx" {
		t.Errorf("expected Schedule.File=it.xlsx, got %q", cfg.Schedule.File)
	}
	if cfg.Cache.KeyPrefix != "custom:" {
		t.Errorf("expected KeyPrefix='custom:', got %q", cfg.Cache.KeyPrefix)
	}
}

func TestParse_ExpandsEnv(t *testing.T) {
	t.Setenv("HHDEX_PORT", "9090")
	t.Setenv("HHDEX_REDIS", "")

	cfg, err := Parse([]byte(`
http:
  port: ${HHDEX_PORT}
cache:
  addrs: ["${HHDEX_REDIS:-localhost:6379}"]
schedule:
  interval: "@every 6h"
  keywords: [golang]
`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.HTTP.Port != 9090 {
		t.Errorf("Port = %d", cfg.HTTP.Port)
	}
	if len(cfg.Cache.Addrs) != 1 || cfg.Cache.Addrs[0] != "localhost:6379" {
		t.Errorf("Addrs = %v", cfg.Cache.Addrs)
	}
	if !cfg.Cache.Enabled() {
		t.Error("cache should be enabled")
	}
	if cfg.Schedule.Keywords[0] != "golang" {
		t.Errorf("Keywords = %v", cfg.Schedule.Keywords)
	}
}

func TestParse_Invalid(t *testing.T) {
	if _, err := Parse([]byte("http: [")); err == nil {
		t.Fatal("expected parse error")
	}
	if _, err := Parse([]byte("http:\n  port: 0\n")); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "config"), 0o750); err != nil {
		t.Fatal(err)
	}
	yml := "http:\n  port: ${HHDEX_DOTENV_PORT}\n"
	if err := os.WriteFile(filepath.Join(dir, "config", "test.yaml"), []byte(yml), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("HHDEX_DOTENV_PORT=7070\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Unsetenv("HHDEX_DOTENV_PORT") })
	t.Chdir(dir)

	cfg, err := Load("test")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.HTTP.Port != 7070 {
		t.Errorf("Port = %d, want 7070", cfg.HTTP.Port)
	}
}

func TestLoad_NoDotEnv(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "config"), 0o750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config", "test.yaml"), []byte("http:\n  port: 8081\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Chdir(dir)

	cfg, err := Load("test")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.HTTP.Port != 8081 {
		t.Errorf("Port = %d, want 8081", cfg.HTTP.Port)
	}
}
