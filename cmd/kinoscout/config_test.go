package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigCheck_Valid(t *testing.T) {
	path := writeTestConfig(t)

	out, err := execute(t, "config", "check", path)

	require.NoError(t, err)
	assert.Contains(t, out, "Validating "+path)
	assert.Contains(t, out, "Providers:    library (")
	assert.Contains(t, out, "Disabled:     kodik, rutor, torznab, videocdn")
	assert.Contains(t, out, "Configuration valid!")
}

func TestConfigCheck_Invalid(t *testing.T) {
	t.Setenv("KINOPOISK_API_KEY", "")
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[server]
port = 70000

[kinopoisk]
api_key = "${KINOPOISK_API_KEY:?set your key}"
`), 0o644))

	out, err := execute(t, "config", "check", path)

	require.Error(t, err)
	assert.Contains(t, out, "Missing environment variables:")
	assert.Contains(t, out, "KINOPOISK_API_KEY")
	assert.Contains(t, out, "Validation errors:")
}

func TestConfigInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	out, err := execute(t, "config", "init", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote "+path)
	assert.FileExists(t, path)

	_, err = execute(t, "config", "init", path)
	assert.ErrorContains(t, err, "already exists")

	_, err = execute(t, "config", "init", path, "--force")
	assert.NoError(t, err)
}
