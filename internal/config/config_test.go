package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), DefaultPath)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := LoadWithEnv(filepath.Join(t.TempDir(), "absent.yaml"), nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, zapcore.WarnLevel, cfg.Level())
}

func TestLoadFile(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "system: S4\nmax_nodes: 500\ncolor: never\nlog_level: debug\n")
	cfg, err := LoadWithEnv(path, nil)
	require.NoError(t, err)
	assert.Equal(t, Config{
		System:   "S4",
		MaxNodes: 500,
		Color:    ColorNever,
		LogLevel: "debug",
	}, cfg)
	assert.Equal(t, zapcore.DebugLevel, cfg.Level())
}

func TestLoadEmptyFile(t *testing.T) {
	t.Parallel()

	cfg, err := LoadWithEnv(writeFile(t, ""), nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestEnvironmentOverridesFile(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "system: K\nmax_steps: 10\n")
	cfg, err := LoadWithEnv(path, map[string]string{
		"TABLEAUX_SYSTEM":    "S5",
		"TABLEAUX_MAX_STEPS": "99",
		"TABLEAUX_COLOR":     "always",
		"SYSTEM":             "ignored",
	})
	require.NoError(t, err)
	assert.Equal(t, "S5", cfg.System)
	assert.Equal(t, 99, cfg.MaxSteps)
	assert.Equal(t, ColorAlways, cfg.Color)
	assert.Equal(t, DefaultMaxNodes, cfg.MaxNodes)
}

func TestLoadErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		environ map[string]string
		wantErr string
	}{
		{"unknown key", "sytem: K\n", nil, "field sytem not found"},
		{"bad color", "color: purple\n", nil, `invalid color mode "purple"`},
		{"negative nodes", "max_nodes: -1\n", nil, "max_nodes must not be negative"},
		{"bad level", "log_level: loud\n", nil, "invalid log level"},
		{"bad env number", "", map[string]string{"TABLEAUX_MAX_NODES": "many"}, "read environment"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadWithEnv(writeFile(t, tt.content), tt.environ)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestWrite(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "out.yaml")
	want := Default()
	want.System = "T"
	require.NoError(t, Write(path, want))

	got, err := LoadWithEnv(path, nil)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "max_nodes: 20000")
}

func TestColorMode(t *testing.T) {
	t.Parallel()

	assert.True(t, ColorAlways.Enabled(nil))
	assert.False(t, ColorNever.Enabled(os.Stdout))
	assert.False(t, ColorAuto.Enabled(nil))
}
