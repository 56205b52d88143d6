package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

// Environment variables understood by ohmyblood.
const (
	EnvDataDir  = "OHMYBLOOD_DATA_DIR"
	EnvStore    = "OHMYBLOOD_STORE"
	EnvTheme    = "OHMYBLOOD_THEME"
	EnvLogLevel = "OHMYBLOOD_LOG_LEVEL"
	EnvTZ       = "OHMYBLOOD_TZ"
)

const (
	StoreSQLite = "sqlite"
	StoreJSON   = "json"
)

type Config struct {
	DataDir  string
	Store    string
	Theme    string
	LogLevel log.Level
	Location *time.Location
}

// Overrides come from root flags; empty values leave the setting alone.
type Overrides struct {
	DataDir string
	Store   string
	Theme   string
	Debug   bool
}

// Load resolves settings: defaults, then .env files, then the process
// environment, then flag overrides. envFiles defaults to ".env" in the
// working directory; missing files are skipped.
func Load(o Overrides, envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, errors.Wrapf(err, "load %s", f)
		}
	}

	cfg := Config{
		Store:    StoreSQLite,
		Theme:    "classic",
		LogLevel: log.InfoLevel,
		Location: time.Local,
	}

	dir, err := defaultDataDir()
	if err != nil {
		return Config{}, err
	}
	cfg.DataDir = dir

	if v := env(EnvDataDir); v != "" {
		cfg.DataDir = v
	}
	if v := env(EnvStore); v != "" {
		cfg.Store = strings.ToLower(v)
	}
	if v := env(EnvTheme); v != "" {
		cfg.Theme = v
	}
	if v := env(EnvLogLevel); v != "" {
		lvl, err := log.ParseLevel(v)
		if err != nil {
			return Config{}, errors.Wrapf(err, "%s", EnvLogLevel)
		}
		cfg.LogLevel = lvl
	}
	if v := env(EnvTZ); v != "" {
		loc, err := time.LoadLocation(v)
		if err != nil {
			return Config{}, errors.Wrapf(err, "%s", EnvTZ)
		}
		cfg.Location = loc
	}

	if o.DataDir != "" {
		cfg.DataDir = o.DataDir
	}
	if o.Store != "" {
		cfg.Store = strings.ToLower(o.Store)
	}
	if o.Theme != "" {
		cfg.Theme = o.Theme
	}
	if o.Debug {
		cfg.LogLevel = log.DebugLevel
	}

	switch cfg.Store {
	case StoreSQLite, StoreJSON:
	default:
		return Config{}, errors.Errorf("unknown store %q (want %s|%s)", cfg.Store, StoreSQLite, StoreJSON)
	}
	return cfg, nil
}

func defaultDataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "home")
	}
	return filepath.Join(home, ".ohmyblood"), nil
}

func env(key string) string { return strings.TrimSpace(os.Getenv(key)) }
