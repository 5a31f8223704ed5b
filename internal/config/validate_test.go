package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validConfig() *Config {
	cfg := &Config{Kinopoisk: KinopoiskConfig{APIKey: "kp-key"}}
	cfg.applyDefaults()
	return cfg
}

func TestValidate(t *testing.T) {
	disabled := false

	tests := []struct {
		name   string
		modify func(*Config)
		want   []string
	}{
		{
			name:   "valid",
			modify: func(*Config) {},
		},
		{
			name:   "missing api key",
			modify: func(c *Config) { c.Kinopoisk.APIKey = "" },
			want:   []string{"kinopoisk.api_key: required"},
		},
		{
			name:   "bad port",
			modify: func(c *Config) { c.Server.Port = 70000 },
			want:   []string{"server.port: must be between 1 and 65535, got 70000"},
		},
		{
			name:   "bad log level",
			modify: func(c *Config) { c.Server.LogLevel = "verbose" },
			want:   []string{`server.log_level: must be one of debug, info, warn, error; got "verbose"`},
		},
		{
			name:   "negative aggregation timeout",
			modify: func(c *Config) { c.Aggregation.Timeout = -time.Second },
			want:   []string{"aggregation.timeout: must not be negative"},
		},
		{
			name:   "negative limit",
			modify: func(c *Config) { c.Presentation.TorrentLimit = -1 },
			want:   []string{"presentation.torrent_limit: must not be negative, got -1"},
		},
		{
			name:   "relative provider url",
			modify: func(c *Config) { c.Providers.Rutor.BaseURL = "rutor.info" },
			want:   []string{`providers.rutor.base_url: must be an absolute http(s) URL, got "rutor.info"`},
		},
		{
			name:   "negative provider timeout",
			modify: func(c *Config) { c.Providers.VideoCDN.Timeout = -time.Second },
			want:   []string{"providers.videocdn.timeout: must not be negative"},
		},
		{
			name:   "torznab key without url",
			modify: func(c *Config) { c.Providers.Torznab.APIKey = "key" },
			want:   []string{"providers.torznab.base_url: required when api_key is set"},
		},
		{
			name: "disabled torznab is not checked",
			modify: func(c *Config) {
				c.Providers.Torznab.APIKey = "key"
				c.Providers.Torznab.Enabled = &disabled
			},
		},
		{
			name:   "library without path",
			modify: func(c *Config) { c.Providers.Library.Path = "" },
			want:   []string{"providers.library.path: required when the library is enabled"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.modify(cfg)
			assert.Equal(t, tt.want, cfg.Validate())
		})
	}
}
