package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cristianoliveira/viewstack/internal/colors"
)

func reset() {
	mu.Lock()
	defer mu.Unlock()
	config = nil
	configMap = nil
}

// isolate points every directory at a temp dir so Load never touches $HOME.
func isolate(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "config"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(tmpDir, "state"))
	reset()
	return tmpDir
}

func TestLoadAndGet(t *testing.T) {
	isolate(t)
	Load()

	require.Equal(t, "default", Get("missing", "default"))
	require.Equal(t, "info", Get("logging_level", ""))
	require.True(t, GetBool("animate", false))
	require.Equal(t, 10, GetInt("logging_max_files", 0))
}

func TestXdgDirectoryDefaults(t *testing.T) {
	tmpDir := isolate(t)
	Load()

	stateDir := filepath.Join(tmpDir, "state", "viewstack")
	require.Equal(t, filepath.Join(tmpDir, "config", "viewstack"), Get("config_dir", ""))
	require.Equal(t, stateDir, Get("state_dir", ""))
	require.Equal(t, filepath.Join(stateDir, "history.db"), Get("history_db", ""))
}

func TestConfigLoadingPrecedence(t *testing.T) {
	tmpDir := isolate(t)

	configFile := filepath.Join(tmpDir, "custom.toml")
	content := `
logging_level = "debug"
logging_max_files = 3
animate = false
metrics_addr = ":9100"
`
	require.NoError(t, os.WriteFile(configFile, []byte(content), 0644))

	t.Setenv("VIEWSTACK_CONFIG_PATH", configFile)
	t.Setenv("VIEWSTACK_LOGGING_LEVEL", "warn")
	t.Setenv("VIEWSTACK_ANIMATE", "yes")

	Load()

	require.Equal(t, "warn", Get("logging_level", ""), "environment should override config file")
	require.Equal(t, "true", Get("animate", ""), "environment should override config file")
	require.Equal(t, 3, GetInt("logging_max_files", 0))
	require.Equal(t, ":9100", Get("metrics_addr", ""))
	require.Equal(t, "", Get("config_path", ""))
}

func TestBooleanConfigNormalization(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"1", "true"},
		{"YES", "true"},
		{"on", "true"},
		{"0", "false"},
		{"off", "false"},
		{"No", "false"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			isolate(t)
			t.Setenv("VIEWSTACK_HISTORY_ENABLED", tt.input)
			Load()
			require.Equal(t, tt.want, Get("history_enabled", ""))
		})
	}
}

func TestInvalidConfigValues(t *testing.T) {
	tests := []struct {
		name         string
		key          string
		envValue     string
		defaultValue string
	}{
		{name: "zero max files", key: "logging_max_files", envValue: "0", defaultValue: "10"},
		{name: "unknown level", key: "logging_level", envValue: "verbose", defaultValue: "info"},
		{name: "bad boolean", key: "animate", envValue: "maybe", defaultValue: "true"},
		{name: "bad listen address", key: "metrics_addr", envValue: "9090", defaultValue: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			t.Setenv("VIEWSTACK_"+toUpper(tt.key), tt.envValue)

			var buf bytes.Buffer
			colors.SetOutputWriters(&buf, &buf)
			defer colors.SetOutputWriters(os.Stdout, os.Stderr)

			Load()

			require.Equal(t, tt.defaultValue, Get(tt.key, "unset"))
			require.Contains(t, buf.String(), "Warning:")
		})
	}
}

func TestGetIntGetBoolFallbacks(t *testing.T) {
	isolate(t)
	t.Setenv("VIEWSTACK_CUSTOM_NUMBER", "abc")
	t.Setenv("VIEWSTACK_CUSTOM_FLAG", "perhaps")
	Load()

	require.Equal(t, 7, GetInt("custom_number", 7))
	require.True(t, GetBool("custom_flag", true))
	require.Equal(t, 5, GetInt("missing", 5))
}

func TestConfigSampleCreation(t *testing.T) {
	tmpDir := isolate(t)
	Load()

	samplePath := filepath.Join(tmpDir, "config", "viewstack", "config.toml")
	require.FileExists(t, samplePath)

	content, err := os.ReadFile(samplePath)
	require.NoError(t, err)
	require.Contains(t, string(content), "logging_level")
	require.Contains(t, string(content), "history_enabled")
	require.Contains(t, string(content), "state_dir")

	// The sample file must load back without warnings.
	reset()
	var buf bytes.Buffer
	colors.SetOutputWriters(&buf, &buf)
	defer colors.SetOutputWriters(os.Stdout, os.Stderr)
	Load()
	require.NotContains(t, buf.String(), "Warning:")
}

func TestAllIsSorted(t *testing.T) {
	isolate(t)
	Load()

	entries := All()
	require.NotEmpty(t, entries)
	for i := 1; i < len(entries); i++ {
		require.Less(t, entries[i-1].Key, entries[i].Key)
	}
}

func toUpper(s string) string {
	out := []byte(s)
	for i, c := range out {
		if c >= 'a' && c <= 'z' {
			out[i] = c - 'a' + 'A'
		}
	}
	return string(out)
}
