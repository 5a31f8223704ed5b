// Package builtin assembles the provider registry from configuration.
package builtin

import (
	"fmt"
	"log/slog"

	"github.com/vmunix/kinoscout/internal/config"
	"github.com/vmunix/kinoscout/internal/sources"
	"github.com/vmunix/kinoscout/internal/sources/kodik"
	"github.com/vmunix/kinoscout/internal/sources/library"
	"github.com/vmunix/kinoscout/internal/sources/rutor"
	"github.com/vmunix/kinoscout/internal/sources/torznab"
	"github.com/vmunix/kinoscout/internal/sources/videocdn"
)

// Register adds every enabled built-in provider to reg in display order:
// Kodik, Rutor, Torznab, VideoCDN, Library. The library provider is only
// registered when a catalog is given.
func Register(reg *sources.Registry, cfg config.ProvidersConfig, catalog library.Catalog, log *slog.Logger) error {
	var providers []sources.Provider

	if cfg.Kodik.IsEnabled() {
		providers = append(providers, kodik.New(kodik.Config{
			Token:   cfg.Kodik.Token,
			BaseURL: cfg.Kodik.BaseURL,
			Timeout: cfg.Kodik.Timeout,
		}, log))
	}
	if cfg.Rutor.IsEnabled() {
		providers = append(providers, rutor.New(rutor.Config{
			BaseURL: cfg.Rutor.BaseURL,
			Timeout: cfg.Rutor.Timeout,
		}, log))
	}
	if cfg.Torznab.IsEnabled() {
		providers = append(providers, torznab.New(torznab.Config{
			BaseURL: cfg.Torznab.BaseURL,
			APIKey:  cfg.Torznab.APIKey,
			Timeout: cfg.Torznab.Timeout,
		}, log))
	}
	if cfg.VideoCDN.IsEnabled() {
		providers = append(providers, videocdn.New(videocdn.Config{
			Token:   cfg.VideoCDN.Token,
			BaseURL: cfg.VideoCDN.BaseURL,
			Timeout: cfg.VideoCDN.Timeout,
		}, log))
	}
	if cfg.Library.IsEnabled() && catalog != nil {
		providers = append(providers, library.New(catalog, log))
	}

	for _, p := range providers {
		if err := reg.Register(p); err != nil {
			return fmt.Errorf("register %s provider: %w", p.Name(), err)
		}
	}
	if log != nil {
		log.Debug("providers registered", "count", reg.Len(), "names", reg.Names())
	}
	return nil
}
