package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteDefault_Loads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kinoscout", "config.toml")
	require.NoError(t, WriteDefault(path))

	t.Setenv("KINOPOISK_API_KEY", "test-kp-key")
	t.Setenv("KODIK_TOKEN", "test-kodik")
	t.Setenv("TORZNAB_API_KEY", "")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "test-kp-key", cfg.Kinopoisk.APIKey)
	assert.Equal(t, "test-kodik", cfg.Providers.Kodik.Token)
	assert.Empty(t, cfg.Providers.VideoCDN.Token)
	assert.Equal(t, 15*time.Second, cfg.Providers.Torznab.Timeout)
	assert.Equal(t, DefaultPort, cfg.Server.Port)
}

func TestWriteDefault_RequiresAPIKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, WriteDefault(path))
	t.Setenv("KINOPOISK_API_KEY", "")

	_, err := Load(path)

	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	require.Len(t, cfgErr.Missing, 1)
	assert.Contains(t, cfgErr.Missing[0], "KINOPOISK_API_KEY")
}

func TestConfig_Write_RoundTrip(t *testing.T) {
	cfg := validConfig()
	cfg.Providers.Kodik.Token = "tok"
	cfg.Providers.Kodik.Timeout = 4 * time.Second

	path := filepath.Join(t.TempDir(), "out", "config.toml")
	require.NoError(t, cfg.Write(path))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}
