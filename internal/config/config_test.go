package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points every directory the loader touches at a temp dir so tests
// never read or write the real user configuration.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(dir, "state"))
	t.Setenv("MEDIATRAY_CONFIG_PATH", "")
	return dir
}

func TestLoadDefaults(t *testing.T) {
	dir := isolate(t)
	Load()

	assert.Equal(t, "12", Get("page_size", ""))
	assert.Equal(t, "", Get("backend_url", ""))
	assert.False(t, GetBool("device_notifications", true))
	assert.Equal(t, filepath.Join(dir, "config", "mediatray"), Get("config_dir", ""))
}

func TestLoadWritesSampleConfig(t *testing.T) {
	dir := isolate(t)
	Load()

	samplePath := filepath.Join(dir, "config", "mediatray", "config.toml")
	data, err := os.ReadFile(samplePath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "page_size")
}

func TestLoadFromFile(t *testing.T) {
	dir := isolate(t)
	configPath := filepath.Join(dir, "custom.toml")
	require.NoError(t, os.WriteFile(configPath, []byte(`
page_size = 24
backend_url = "https://proj.supabase.co"
device_notifications = "on"
`), 0o644))
	t.Setenv("MEDIATRAY_CONFIG_PATH", configPath)

	Load()

	assert.Equal(t, 24, GetInt("page_size", 0))
	assert.Equal(t, "https://proj.supabase.co", Get("backend_url", ""))
	// Booleans are normalized by validation.
	assert.Equal(t, "true", Get("device_notifications", ""))
}

func TestEnvOverridesFile(t *testing.T) {
	dir := isolate(t)
	configPath := filepath.Join(dir, "custom.toml")
	require.NoError(t, os.WriteFile(configPath, []byte("page_size = 24\n"), 0o644))
	t.Setenv("MEDIATRAY_CONFIG_PATH", configPath)
	t.Setenv("MEDIATRAY_PAGE_SIZE", "6")

	Load()

	assert.Equal(t, 6, GetInt("page_size", 0))
}

func TestValidationFallsBackToDefaults(t *testing.T) {
	isolate(t)
	t.Setenv("MEDIATRAY_PAGE_SIZE", "-3")
	t.Setenv("MEDIATRAY_LOGGING_LEVEL", "verbose")
	t.Setenv("MEDIATRAY_DEVICE_NOTIFICATIONS", "maybe")

	Load()

	assert.Equal(t, "12", Get("page_size", ""))
	assert.Equal(t, "info", Get("logging_level", ""))
	assert.Equal(t, "false", Get("device_notifications", ""))
}

func TestGetters(t *testing.T) {
	isolate(t)
	Load()

	Set("some_number", "41")
	assert.Equal(t, 41, GetInt("some_number", 0))
	Set("some_number", "not a number")
	assert.Equal(t, 7, GetInt("some_number", 7))

	assert.Equal(t, "fallback", Get("missing_key", "fallback"))
	assert.True(t, GetBool("missing_key", true))

	Set("flag", "yes")
	assert.True(t, GetBool("flag", false))
	Set("flag", "off")
	assert.False(t, GetBool("flag", true))
	Set("flag", "maybe")
	assert.True(t, GetBool("flag", true))
}

func TestSetLowercasesKeys(t *testing.T) {
	isolate(t)
	Load()

	Set("Mixed_Case", "value")
	assert.Equal(t, "value", Get("mixed_case", ""))
}

func TestNormalizeBool(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "1", want: "true"},
		{in: "Yes", want: "true"},
		{in: "ON", want: "true"},
		{in: "0", want: "false"},
		{in: "no", want: "false"},
		{in: "off", want: "false"},
		{in: "maybe", want: "maybe"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, normalizeBool(tt.in))
		})
	}
}
