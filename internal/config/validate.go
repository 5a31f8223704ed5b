package config

import (
	"fmt"
	"net/url"
)

var validLogLevels = map[string]bool{
	"debug": true, "info": true, "warn": true, "error": true, "": true,
}

// Validate checks the configuration for errors.
// Returns a slice of error messages (empty if valid).
func (c *Config) Validate() []string {
	var errs []string

	if c.Server.Port != 0 && (c.Server.Port < 1 || c.Server.Port > 65535) {
		errs = append(errs, fmt.Sprintf("server.port: must be between 1 and 65535, got %d", c.Server.Port))
	}
	if !validLogLevels[c.Server.LogLevel] {
		errs = append(errs, fmt.Sprintf("server.log_level: must be one of debug, info, warn, error; got %q", c.Server.LogLevel))
	}

	// Metadata resolution cannot work without a key.
	if c.Kinopoisk.APIKey == "" {
		errs = append(errs, "kinopoisk.api_key: required")
	}
	errs = appendURLError(errs, "kinopoisk.base_url", c.Kinopoisk.BaseURL)
	if c.Kinopoisk.CacheTTL < 0 {
		errs = append(errs, "kinopoisk.cache_ttl: must not be negative")
	}
	if c.Kinopoisk.Timeout < 0 {
		errs = append(errs, "kinopoisk.timeout: must not be negative")
	}

	if c.Aggregation.Timeout < 0 {
		errs = append(errs, "aggregation.timeout: must not be negative")
	}
	if c.Presentation.Limit < 0 {
		errs = append(errs, fmt.Sprintf("presentation.limit: must not be negative, got %d", c.Presentation.Limit))
	}
	if c.Presentation.TorrentLimit < 0 {
		errs = append(errs, fmt.Sprintf("presentation.torrent_limit: must not be negative, got %d", c.Presentation.TorrentLimit))
	}

	p := c.Providers
	for _, s := range []struct {
		name string
		cfg  ProviderConfig
	}{
		{"kodik", p.Kodik.ProviderConfig},
		{"rutor", p.Rutor.ProviderConfig},
		{"torznab", p.Torznab.ProviderConfig},
		{"videocdn", p.VideoCDN.ProviderConfig},
		{"library", p.Library.ProviderConfig},
	} {
		if s.cfg.Timeout < 0 {
			errs = append(errs, fmt.Sprintf("providers.%s.timeout: must not be negative", s.name))
		}
		errs = appendURLError(errs, "providers."+s.name+".base_url", s.cfg.BaseURL)
	}

	// Torznab has no public default endpoint.
	if p.Torznab.IsEnabled() && p.Torznab.APIKey != "" && p.Torznab.BaseURL == "" {
		errs = append(errs, "providers.torznab.base_url: required when api_key is set")
	}
	if p.Library.IsEnabled() && p.Library.Path == "" {
		errs = append(errs, "providers.library.path: required when the library is enabled")
	}

	return errs
}

func appendURLError(errs []string, field, raw string) []string {
	if raw == "" {
		return errs
	}
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return append(errs, fmt.Sprintf("%s: must be an absolute http(s) URL, got %q", field, raw))
	}
	return errs
}
