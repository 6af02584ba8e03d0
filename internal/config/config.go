// Package config loads application settings from defaults, a YAML file,
// LANGCOACH_ environment variables and command-line flags, in that order.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/abhisek/langcoach/internal/generator"
	"github.com/abhisek/langcoach/internal/genclient"
	"github.com/abhisek/langcoach/internal/llm"
	"github.com/abhisek/langcoach/internal/logging"
	"github.com/abhisek/langcoach/internal/server"
)

// EnvPrefix prefixes every environment override. Nested keys use a double
// underscore, e.g. LANGCOACH_LLM__GROQ__MODEL.
const EnvPrefix = "LANGCOACH_"

// Config is the full application configuration.
type Config struct {
	// DB is the SQLite database path. Empty means store.DefaultDBPath.
	DB string `koanf:"db"`

	Client     ClientConfig     `koanf:"client"`
	Server     server.Config    `koanf:"server"`
	LLM        llm.Config       `koanf:"llm"`
	Generation generator.Config `koanf:"generation"`
	Log        logging.Config   `koanf:"log"`
}

// ClientConfig configures the TUI's generation client.
type ClientConfig struct {
	Endpoint string        `koanf:"endpoint"`
	Timeout  time.Duration `koanf:"timeout"` // 0 disables the timeout
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Client: ClientConfig{
			Endpoint: genclient.DefaultEndpoint,
			Timeout:  2 * time.Minute,
		},
		Server:     server.DefaultConfig(),
		LLM:        llm.DefaultConfig(),
		Generation: generator.DefaultConfig(),
		Log:        logging.DefaultConfig(),
	}
}

// flagKeys maps command-line flag names to config keys. Flags not listed
// here are not configuration.
var flagKeys = map[string]string{
	"db":         "db",
	"endpoint":   "client.endpoint",
	"log-level":  "log.level",
	"log-format": "log.format",
	"log-file":   "log.file",
	"addr":       "server.addr",
	"timeout":    "client.timeout",
}

// Load layers configuration sources over Default. path names a YAML file;
// when empty, DefaultPath is used if it exists. flags may be nil; only
// flags the user set override other sources.
func Load(path string, flags *pflag.FlagSet) (Config, error) {
	k := koanf.New(".")

	if path == "" {
		p, err := DefaultPath()
		if err == nil && fileExists(p) {
			path = p
		}
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Config{}, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.ProviderWithValue(EnvPrefix, ".", envKey), nil); err != nil {
		return Config{}, fmt.Errorf("load environment: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, any) {
			key, ok := flagKeys[f.Name]
			if !ok || !f.Changed {
				return "", nil
			}
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return Config{}, fmt.Errorf("load flags: %w", err)
		}
	}

	cfg := Default()
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	cfg.LLM.ApplyKeyFallbacks()

	return cfg, nil
}

// envKey turns LANGCOACH_LLM__GROQ__API_KEY into llm.groq.api_key. Empty
// variables are skipped.
func envKey(k, v string) (string, any) {
	if v == "" {
		return "", nil
	}
	k = strings.ToLower(strings.TrimPrefix(k, EnvPrefix))
	return strings.ReplaceAll(k, "__", "."), v
}

// DefaultPath returns $XDG_CONFIG_HOME/langcoach/config.yaml, falling back
// to ~/.config.
func DefaultPath() (string, error) {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "langcoach", "config.yaml"), nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return !errors.Is(err, fs.ErrNotExist)
}
