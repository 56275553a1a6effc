package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/danmuck/scorectl/internal/bowling"
	"github.com/danmuck/scorectl/internal/config"
	"github.com/danmuck/scorectl/internal/logging"
	"github.com/danmuck/scorectl/internal/scoring"
	"github.com/danmuck/scorectl/internal/server"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const usage = `usage:
  scorectl score [-json] [-v] [-max n] <roll>...   score rolls such as: X 7 / 9 0
  scorectl serve [-config path]                    serve the HTTP API
`

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return 2
	}
	switch args[0] {
	case "score":
		return runScore(args[1:], stdout, stderr)
	case "serve":
		return runServe(args[1:], stderr)
	case "help", "-h", "--help":
		fmt.Fprint(stdout, usage)
		return 0
	default:
		fmt.Fprintf(stderr, "scorectl: unknown command %q\n%s", args[0], usage)
		return 2
	}
}

func runScore(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("score", flag.ContinueOnError)
	fs.SetOutput(stderr)
	asJSON := fs.Bool("json", false, "print the result as JSON")
	verbose := fs.Bool("v", false, "log scoring details to stderr")
	maxRolls := fs.Int("max", config.DefaultMaxRolls, "maximum number of rolls (0 disables the limit)")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() == 0 {
		fmt.Fprintf(stderr, "scorectl: no rolls given\n%s", usage)
		return 2
	}

	logging.ConfigureCLI()
	level := zerolog.ErrorLevel
	if *verbose {
		level = zerolog.DebugLevel
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	svc := scoring.NewService(*maxRolls, logging.New("scorectl").Level(level))

	res, err := svc.Score(bowling.SplitTokens(strings.Join(fs.Args(), " ")))
	if err != nil {
		fmt.Fprintf(stderr, "scorectl: %v\n", err)
		return 1
	}

	if *asJSON {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(res); err != nil {
			fmt.Fprintf(stderr, "scorectl: %v\n", err)
			return 1
		}
		return 0
	}
	fmt.Fprintln(stdout, res.Card)
	return 0
}

func runServe(args []string, stderr io.Writer) int {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.SetOutput(stderr)
	path := fs.String("config", "", "path to a scorectl TOML config (defaults plus SCORECTL_* env when empty)")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	logging.ConfigureRuntime()
	cfg, err := loadConfig(*path)
	if err != nil {
		log.Error().Err(err).Str("path", *path).Msg("failed to load scorectl config")
		return 1
	}
	log.Info().Str("name", cfg.Name).Str("addr", cfg.Addr).Int("max_rolls", cfg.MaxRolls).Msg("loaded scorectl config")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := server.Appear(cfg).Serve(ctx); err != nil {
		log.Error().Err(err).Msg("scorectl stopped")
		return 1
	}
	log.Info().Msg("scorectl stopped")
	return 0
}

func loadConfig(path string) (config.ServerConfig, error) {
	if path != "" {
		return config.LoadServerConfig(path)
	}
	cfg := config.DefaultServerConfig()
	if err := config.ApplyEnv(&cfg); err != nil {
		return config.ServerConfig{}, err
	}
	if err := config.ValidateServerConfig(cfg); err != nil {
		return config.ServerConfig{}, fmt.Errorf("invalid environment config: %w", err)
	}
	return cfg, nil
}
