package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"github.com/sethgrid/catflip/internal/wellbeing"
)

const (
	DefaultLogLevel          = "info"
	DefaultLogEncoding       = "console"
	DefaultStartingMoney     = 0
	DefaultTurnsPerRound     = 20
	DefaultWellbeing         = wellbeing.ComputationAverage
	DefaultListenAddr        = ":8080"
	DefaultTickInterval      = 100 * time.Millisecond
	DefaultStatePushInterval = time.Second

	EnvPrefix = "CATFLIP_"
	DirName   = ".catflip"
	FileName  = "catflip.toml"
)

// Duration reads and writes as a Go duration string ("250ms") in both toml
// and the environment.
type Duration time.Duration

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

type Config struct {
	LogLevel    string `toml:"logLevel" env:"LOG_LEVEL"`
	LogEncoding string `toml:"logEncoding" env:"LOG_ENCODING"`

	StartingMoney int    `toml:"startingMoney" env:"STARTING_MONEY"`
	TurnsPerRound int    `toml:"turnsPerRound" env:"TURNS_PER_ROUND"`
	Seed          int64  `toml:"seed" env:"SEED"` // 0 picks a time-based seed
	CatalogPath   string `toml:"catalogPath" env:"CATALOG_PATH"`

	Wellbeing wellbeing.ComputationMode `toml:"wellbeing" env:"WELLBEING"`

	ListenAddr        string   `toml:"listenAddr" env:"LISTEN_ADDR"`
	TickInterval      Duration `toml:"tickInterval" env:"TICK_INTERVAL"`
	StatePushInterval Duration `toml:"statePushInterval" env:"STATE_PUSH_INTERVAL"`
}

func Default() Config {
	return Config{
		LogLevel:          DefaultLogLevel,
		LogEncoding:       DefaultLogEncoding,
		StartingMoney:     DefaultStartingMoney,
		TurnsPerRound:     DefaultTurnsPerRound,
		Wellbeing:         DefaultWellbeing,
		ListenAddr:        DefaultListenAddr,
		TickInterval:      Duration(DefaultTickInterval),
		StatePushInterval: Duration(DefaultStatePushInterval),
	}
}

// Load builds the effective config: defaults, then the toml file at path (if
// path is non-empty), then a .env file in the working directory, then
// CATFLIP_* environment variables.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	environ, err := environment()
	if err != nil {
		return Config{}, err
	}
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix, Environment: environ}); err != nil {
		return Config{}, fmt.Errorf("parsing environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// environment merges a .env file in the working directory under the process
// environment. The process environment is left untouched.
func environment() (map[string]string, error) {
	merged, err := godotenv.Read()
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to read .env: %w", err)
		}
		merged = make(map[string]string)
	}
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			merged[k] = v
		}
	}
	return merged, nil
}

var ErrInvalid = errors.New("invalid config")

func (c Config) Validate() error {
	var errs []error
	if c.TurnsPerRound < 1 {
		errs = append(errs, fmt.Errorf("turnsPerRound must be at least 1, got %d", c.TurnsPerRound))
	}
	if c.StartingMoney < 0 {
		errs = append(errs, fmt.Errorf("startingMoney must not be negative, got %d", c.StartingMoney))
	}
	switch c.Wellbeing {
	case wellbeing.ComputationAverage, wellbeing.ComputationWeighted:
	default:
		errs = append(errs, fmt.Errorf("unknown wellbeing mode %q", c.Wellbeing))
	}
	switch c.LogEncoding {
	case "console", "json":
	default:
		errs = append(errs, fmt.Errorf("unknown log encoding %q", c.LogEncoding))
	}
	if c.TickInterval <= 0 || c.StatePushInterval <= 0 {
		errs = append(errs, errors.New("tick and state push intervals must be positive"))
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
}

// WriteDefault writes the default config to baseDir/.catflip/catflip.toml and
// returns the path written.
func WriteDefault(baseDir string) (string, error) {
	dir := filepath.Join(baseDir, DirName)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	path := filepath.Join(dir, FileName)
	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf("config already exists at %s", path)
	}

	data, err := toml.Marshal(Default())
	if err != nil {
		return "", fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write config file: %w", err)
	}
	return path, nil
}
