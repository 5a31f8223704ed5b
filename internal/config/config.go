// Package config handles TOML configuration loading with environment variable substitution.
package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Config is the root configuration structure.
type Config struct {
	Server       ServerConfig       `toml:"server"`
	Kinopoisk    KinopoiskConfig    `toml:"kinopoisk"`
	Aggregation  AggregationConfig  `toml:"aggregation"`
	Presentation PresentationConfig `toml:"presentation"`
	Providers    ProvidersConfig    `toml:"providers"`
}

type ServerConfig struct {
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	LogLevel string `toml:"log_level"`
}

type KinopoiskConfig struct {
	APIKey   string        `toml:"api_key"`
	BaseURL  string        `toml:"base_url"`
	CacheTTL time.Duration `toml:"cache_ttl"`
	Timeout  time.Duration `toml:"timeout"`
}

type AggregationConfig struct {
	// Timeout is the default per-provider lookup budget.
	Timeout time.Duration `toml:"timeout"`
}

type PresentationConfig struct {
	Limit        int `toml:"limit"`         // Items per provider for translations and streams
	TorrentLimit int `toml:"torrent_limit"` // Items per provider for torrents
}

// ProviderConfig holds settings every provider section shares.
type ProviderConfig struct {
	Enabled *bool         `toml:"enabled"` // nil means enabled
	BaseURL string        `toml:"base_url"`
	Timeout time.Duration `toml:"timeout"`
}

// IsEnabled reports whether the provider should be registered.
func (p ProviderConfig) IsEnabled() bool {
	return p.Enabled == nil || *p.Enabled
}

type ProvidersConfig struct {
	Kodik    KodikConfig    `toml:"kodik"`
	Rutor    RutorConfig    `toml:"rutor"`
	Torznab  TorznabConfig  `toml:"torznab"`
	VideoCDN VideoCDNConfig `toml:"videocdn"`
	Library  LibraryConfig  `toml:"library"`
}

type KodikConfig struct {
	ProviderConfig
	Token string `toml:"token"`
}

type RutorConfig struct {
	ProviderConfig
}

type TorznabConfig struct {
	ProviderConfig
	APIKey string `toml:"api_key"`
}

type VideoCDNConfig struct {
	ProviderConfig
	Token string `toml:"token"`
}

type LibraryConfig struct {
	ProviderConfig
	Path string `toml:"path"`
}

// Defaults.
const (
	DefaultHost               = "0.0.0.0"
	DefaultPort               = 8585
	DefaultLogLevel           = "info"
	DefaultKinopoiskURL       = "https://kinopoiskapiunofficial.tech"
	DefaultKinopoiskCacheTTL  = 24 * time.Hour
	DefaultKinopoiskTimeout   = 10 * time.Second
	DefaultAggregationTimeout = 10 * time.Second
	DefaultPresentationLimit  = 5
	DefaultTorrentLimit       = 3
	DefaultLibraryPath        = "./data/library.db"
)

// Load reads, parses and validates the configuration file.
// Unresolved environment variables and validation failures are reported
// together as a *ConfigError.
func Load(path string) (*Config, error) {
	cfg, missing, err := load(path)
	if err != nil {
		return nil, err
	}

	cfgErr := &ConfigError{Path: path, Missing: missing, Errors: cfg.Validate()}
	if cfgErr.HasErrors() {
		return nil, cfgErr
	}
	return cfg, nil
}

// LoadWithoutValidation reads and parses the configuration file without
// validating it. Unresolved environment variables are left in place.
func LoadWithoutValidation(path string) (*Config, error) {
	cfg, _, err := load(path)
	return cfg, err
}

func load(path string) (*Config, []string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("reading config: %w", err)
	}

	content, missing := substituteEnvVars(string(data))

	var cfg Config
	if _, err := toml.Decode(content, &cfg); err != nil {
		return nil, nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.applyDefaults()
	return &cfg, missing, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Host == "" {
		c.Server.Host = DefaultHost
	}
	if c.Server.Port == 0 {
		c.Server.Port = DefaultPort
	}
	if c.Server.LogLevel == "" {
		c.Server.LogLevel = DefaultLogLevel
	}
	if c.Kinopoisk.BaseURL == "" {
		c.Kinopoisk.BaseURL = DefaultKinopoiskURL
	}
	if c.Kinopoisk.CacheTTL == 0 {
		c.Kinopoisk.CacheTTL = DefaultKinopoiskCacheTTL
	}
	if c.Kinopoisk.Timeout == 0 {
		c.Kinopoisk.Timeout = DefaultKinopoiskTimeout
	}
	if c.Aggregation.Timeout == 0 {
		c.Aggregation.Timeout = DefaultAggregationTimeout
	}
	if c.Presentation.Limit == 0 {
		c.Presentation.Limit = DefaultPresentationLimit
	}
	if c.Presentation.TorrentLimit == 0 {
		c.Presentation.TorrentLimit = DefaultTorrentLimit
	}
	if c.Providers.Library.Path == "" {
		c.Providers.Library.Path = DefaultLibraryPath
	}
}

// envVarPattern matches ${VAR}, ${VAR:-default} and ${VAR:?message}.
var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(?:(:-|:\?)([^}]*))?\}`)

// substituteEnvVars replaces environment variable references and returns
// the references that could not be resolved. Unresolved references are left
// unchanged. For the :- and :? forms an empty variable counts as unset.
// Comment lines are copied as is.
func substituteEnvVars(content string) (string, []string) {
	var missing []string
	seen := make(map[string]bool)
	report := func(s string) {
		if !seen[s] {
			seen[s] = true
			missing = append(missing, s)
		}
	}

	expand := func(match string) string {
		m := envVarPattern.FindStringSubmatch(match)
		name, op, arg := m[1], m[2], m[3]
		value, ok := os.LookupEnv(name)

		switch op {
		case ":-":
			if !ok || value == "" {
				return arg
			}
			return value
		case ":?":
			if !ok || value == "" {
				report(name + ": " + arg)
				return match
			}
			return value
		default:
			if !ok {
				report(name)
				return match
			}
			return value
		}
	}

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "#") {
			continue
		}
		lines[i] = envVarPattern.ReplaceAllStringFunc(line, expand)
	}
	return strings.Join(lines, "\n"), missing
}
