package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
)

var (
	ErrMissingName            = errors.New("config: missing name")
	ErrMissingAddr            = errors.New("config: missing addr")
	ErrInvalidMaxRolls        = errors.New("config: max_rolls must be positive")
	ErrInvalidShutdownTimeout = errors.New("config: shutdown_timeout must be positive")
)

// DefaultMaxRolls bounds the tokens accepted in one scoring request.
const DefaultMaxRolls = 32

// ServerConfig configures the scorectl HTTP server. Env tags are read by
// ApplyEnv after the file has been loaded.
type ServerConfig struct {
	Name            string        `env:"SCORECTL_NAME"`
	Addr            string        `env:"SCORECTL_ADDR"`
	CorsOrigins     []string      `env:"SCORECTL_CORS_ORIGINS" envSeparator:","`
	MaxRolls        int           `env:"SCORECTL_MAX_ROLLS"`
	ShutdownTimeout time.Duration `env:"SCORECTL_SHUTDOWN_TIMEOUT"`
	// AuthToken guards /v1 when set.
	AuthToken       string        `env:"SCORECTL_AUTH_TOKEN"`
}

type fileConfig struct {
	Name            string   `toml:"name"`
	Addr            string   `toml:"addr"`
	CorsOrigins     []string `toml:"cors_origins"`
	MaxRolls        int      `toml:"max_rolls"`
	ShutdownTimeout string   `toml:"shutdown_timeout"`
	AuthToken       string   `toml:"auth_token"`
}

func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Name:            "scorectl",
		Addr:            ":9300",
		CorsOrigins:     []string{"http://localhost:3000"},
		MaxRolls:        DefaultMaxRolls,
		ShutdownTimeout: 10 * time.Second,
	}
}

// LoadServerConfig overlays the keys present in the TOML file at path onto
// DefaultServerConfig, then applies environment overrides and validates.
func LoadServerConfig(path string) (ServerConfig, error) {
	cfg := DefaultServerConfig()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return ServerConfig{}, fmt.Errorf("config load failed (%s): %w", path, err)
	}

	if meta.IsDefined("name") {
		cfg.Name = strings.TrimSpace(raw.Name)
	}
	if meta.IsDefined("addr") {
		cfg.Addr = strings.TrimSpace(raw.Addr)
	}
	if meta.IsDefined("cors_origins") {
		cfg.CorsOrigins = normalizeOrigins(raw.CorsOrigins)
	}
	if meta.IsDefined("max_rolls") {
		cfg.MaxRolls = raw.MaxRolls
	}
	if meta.IsDefined("shutdown_timeout") {
		d, err := time.ParseDuration(strings.TrimSpace(raw.ShutdownTimeout))
		if err != nil {
			return ServerConfig{}, fmt.Errorf("parse shutdown_timeout: %w", err)
		}
		cfg.ShutdownTimeout = d
	}
	if meta.IsDefined("auth_token") {
		cfg.AuthToken = strings.TrimSpace(raw.AuthToken)
	}

	if err := ApplyEnv(&cfg); err != nil {
		return ServerConfig{}, err
	}
	if err := ValidateServerConfig(cfg); err != nil {
		return ServerConfig{}, err
	}
	return cfg, nil
}

// ApplyEnv overrides fields whose SCORECTL_* variable is set. Unset
// variables leave the current value alone.
func ApplyEnv(cfg *ServerConfig) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	cfg.CorsOrigins = normalizeOrigins(cfg.CorsOrigins)
	return nil
}

func ValidateServerConfig(cfg ServerConfig) error {
	if strings.TrimSpace(cfg.Name) == "" {
		return ErrMissingName
	}
	if strings.TrimSpace(cfg.Addr) == "" {
		return ErrMissingAddr
	}
	if cfg.MaxRolls <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidMaxRolls, cfg.MaxRolls)
	}
	if cfg.ShutdownTimeout <= 0 {
		return fmt.Errorf("%w: got %s", ErrInvalidShutdownTimeout, cfg.ShutdownTimeout)
	}
	return nil
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
