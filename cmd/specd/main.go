package main

import (
	"flag"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/danmuck/cmdspec/catalog"
	_ "github.com/danmuck/cmdspec/internal/builtin"
	"github.com/danmuck/cmdspec/internal/logging"
	"github.com/danmuck/cmdspec/internal/server"
)

func main() {
	configPath := flag.String("config", "", "path to specd config toml")
	flag.Parse()

	logging.ConfigureRuntime()

	cfg := defaultServiceConfig()
	if *configPath != "" {
		loaded, err := loadServiceConfig(*configPath)
		if err != nil {
			log.Error().Err(err).Str("path", *configPath).Msg("config load failed")
			os.Exit(1)
		}
		cfg = loaded
	}

	srv := server.New(cfg.ID, cfg.Addr, cfg.CorsOrigins, catalog.Default(), cfg.Runner)
	log.Info().
		Str("id", cfg.ID).
		Str("addr", cfg.Addr).
		Int("tools", len(catalog.Names())).
		Msg("specd listening")

	if err := srv.Serve(); err != nil {
		log.Error().Err(err).Msg("specd exited")
		os.Exit(1)
	}
}
