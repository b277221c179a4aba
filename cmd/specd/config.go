package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/danmuck/cmdspec/runner"
)

type fileConfig struct {
	ID          string        `toml:"id"`
	Addr        string        `toml:"addr"`
	CorsOrigins []string      `toml:"cors_origins"`
	Runner      string        `toml:"runner"`
	SSH         sshFileConfig `toml:"ssh"`
}

type sshFileConfig struct {
	Host                        string `toml:"host"`
	Port                        string `toml:"port"`
	User                        string `toml:"user"`
	KeyPath                     string `toml:"key_path"`
	KnownHostsPath              string `toml:"known_hosts_path"`
	InsecureSkipHostKeyChecking bool   `toml:"insecure_skip_host_key_checking"`
	Timeout                     string `toml:"timeout"`
}

type serviceConfig struct {
	ID          string
	Addr        string
	CorsOrigins []string
	Runner      runner.Runner
}

func defaultServiceConfig() serviceConfig {
	return serviceConfig{
		ID:     "specd.local",
		Addr:   ":7300",
		Runner: runner.ExecRunner{},
	}
}

func loadServiceConfig(path string) (serviceConfig, error) {
	cfg := defaultServiceConfig()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return serviceConfig{}, fmt.Errorf("load specd config: %w", err)
	}

	if meta.IsDefined("id") {
		if id := strings.TrimSpace(raw.ID); id != "" {
			cfg.ID = id
		}
	}

	if meta.IsDefined("addr") {
		if addr := strings.TrimSpace(raw.Addr); addr != "" {
			cfg.Addr = addr
		}
	}

	if meta.IsDefined("cors_origins") {
		cfg.CorsOrigins = normalizeOrigins(raw.CorsOrigins)
	}

	if meta.IsDefined("runner") {
		switch strings.TrimSpace(raw.Runner) {
		case "", "local":
		case "ssh":
			r, err := sshRunnerFromConfig(raw.SSH)
			if err != nil {
				return serviceConfig{}, err
			}
			cfg.Runner = r
		default:
			return serviceConfig{}, fmt.Errorf("unknown runner %q (supported: local, ssh)", raw.Runner)
		}
	}

	return cfg, nil
}

func sshRunnerFromConfig(raw sshFileConfig) (runner.SSHRunner, error) {
	r := runner.SSHRunner{
		Host:                        strings.TrimSpace(raw.Host),
		Port:                        strings.TrimSpace(raw.Port),
		User:                        strings.TrimSpace(raw.User),
		KeyPath:                     strings.TrimSpace(raw.KeyPath),
		KnownHostsPath:              strings.TrimSpace(raw.KnownHostsPath),
		InsecureSkipHostKeyChecking: raw.InsecureSkipHostKeyChecking,
	}
	if r.Host == "" {
		return runner.SSHRunner{}, fmt.Errorf("ssh runner requires ssh.host")
	}
	if r.User == "" {
		return runner.SSHRunner{}, fmt.Errorf("ssh runner requires ssh.user")
	}
	if raw.Timeout != "" {
		d, err := time.ParseDuration(strings.TrimSpace(raw.Timeout))
		if err != nil {
			return runner.SSHRunner{}, fmt.Errorf("parse ssh.timeout: %w", err)
		}
		r.Timeout = d
	}
	return r, nil
}

func normalizeOrigins(in []string) []string {
	out := make([]string, 0, len(in))
	for _, origin := range in {
		v := strings.TrimSpace(origin)
		if v == "" {
			continue
		}
		out = append(out, v)
	}
	return out
}
