package main

import (
	"flag"

	"github.com/danmuck/scorectl/internal/config"
	"github.com/danmuck/scorectl/internal/logging"
	"github.com/rs/zerolog/log"
)

const defaultPath = "cmd/scorectl/config.toml"

func main() {
	kind := flag.String("kind", "server", "config kind: server")
	output := flag.String("output", defaultPath, "output path for config template")
	validate := flag.Bool("validate", false, "validate an existing config file")
	input := flag.String("input", defaultPath, "config path for validation")
	force := flag.Bool("force", false, "overwrite existing config file")
	flag.Parse()

	logging.ConfigureRuntime()

	if *validate {
		cfg, err := config.LoadServerConfig(*input)
		if err != nil {
			log.Fatal().Err(err).Str("path", *input).Msg("config invalid")
		}
		log.Info().Str("path", *input).Str("name", cfg.Name).Str("addr", cfg.Addr).Msg("validated config")
		return
	}

	if err := config.WriteTemplate(*output, *kind, *force); err != nil {
		log.Fatal().Err(err).Str("path", *output).Msg("write config template")
	}
	log.Info().Str("kind", *kind).Str("path", *output).Msg("wrote config template")
}
