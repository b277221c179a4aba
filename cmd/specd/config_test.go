package main

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/danmuck/cmdspec/runner"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "specd.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadServiceConfigDefaults(t *testing.T) {
	path := writeConfig(t, "")
	cfg, err := loadServiceConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.ID != "specd.local" {
		t.Fatalf("unexpected id: %q", cfg.ID)
	}
	if cfg.Addr != ":7300" {
		t.Fatalf("unexpected addr: %q", cfg.Addr)
	}
	if _, ok := cfg.Runner.(runner.ExecRunner); !ok {
		t.Fatalf("unexpected runner: %T", cfg.Runner)
	}
}

func TestLoadServiceConfigOverrides(t *testing.T) {
	path := writeConfig(t, `
id = "specd.edge"
addr = "127.0.0.1:7400"
cors_origins = ["http://localhost:3000", " ", "http://edge.local"]
runner = "local"
`)
	cfg, err := loadServiceConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.ID != "specd.edge" {
		t.Fatalf("unexpected id: %q", cfg.ID)
	}
	if cfg.Addr != "127.0.0.1:7400" {
		t.Fatalf("unexpected addr: %q", cfg.Addr)
	}
	want := []string{"http://localhost:3000", "http://edge.local"}
	if !reflect.DeepEqual(cfg.CorsOrigins, want) {
		t.Fatalf("unexpected origins: %#v", cfg.CorsOrigins)
	}
}

func TestLoadServiceConfigSSHRunner(t *testing.T) {
	path := writeConfig(t, `
runner = "ssh"

[ssh]
host = "edge-1"
port = "2222"
user = "ops"
key_path = "/home/ops/.ssh/id_ed25519"
timeout = "10s"
`)
	cfg, err := loadServiceConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	r, ok := cfg.Runner.(runner.SSHRunner)
	if !ok {
		t.Fatalf("unexpected runner: %T", cfg.Runner)
	}
	if r.Host != "edge-1" || r.Port != "2222" || r.User != "ops" {
		t.Fatalf("unexpected ssh runner: %+v", r)
	}
	if r.Timeout != 10*time.Second {
		t.Fatalf("unexpected timeout: %v", r.Timeout)
	}
}

func TestLoadServiceConfigSSHRunnerRequiresHostAndUser(t *testing.T) {
	path := writeConfig(t, `
runner = "ssh"

[ssh]
user = "ops"
`)
	if _, err := loadServiceConfig(path); err == nil {
		t.Fatalf("expected error for missing ssh host")
	}

	path = writeConfig(t, `
runner = "ssh"

[ssh]
host = "edge-1"
`)
	if _, err := loadServiceConfig(path); err == nil {
		t.Fatalf("expected error for missing ssh user")
	}
}

func TestLoadServiceConfigUnknownRunner(t *testing.T) {
	path := writeConfig(t, `runner = "telnet"`)
	if _, err := loadServiceConfig(path); err == nil {
		t.Fatalf("expected error for unknown runner")
	}
}

func TestExampleConfigParses(t *testing.T) {
	cfg, err := loadServiceConfig("ex.config.toml")
	if err != nil {
		t.Fatalf("load example config: %v", err)
	}
	if cfg.ID != "specd.local" || cfg.Addr != "127.0.0.1:7300" {
		t.Fatalf("unexpected example config: %+v", cfg)
	}
}
