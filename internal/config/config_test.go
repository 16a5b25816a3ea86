package config

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envMap(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	p := filepath.Join(dir, appDir, "config.yaml")
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(Flags{}, envMap(map[string]string{"XDG_CONFIG_HOME": t.TempDir()}), nil)
	require.NoError(t, err)

	assert.Equal(t, DefaultReason, cfg.Reason)
	assert.False(t, cfg.Verbose)
	assert.Equal(t, DefaultLogLevel, cfg.LogLevel)
	assert.Equal(t, DefaultLogFormat, cfg.LogFormat)
	assert.Equal(t, DefaultCallTimeout, cfg.CallTimeout)
}

func TestLoad_DebugToggle(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  bool
	}{
		{"unset", "", false},
		{"one", "1", true},
		{"any text", "yes please", true},
		{"zero still counts", "0", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := map[string]string{"XDG_CONFIG_HOME": t.TempDir(), EnvDebug: tt.value}
			cfg, err := Load(Flags{}, envMap(env), nil)
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.Verbose)
		})
	}
}

func TestLoad_Precedence(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "reason: from file\nlog_level: info\ncall_timeout: 3s\n")

	env := map[string]string{"XDG_CONFIG_HOME": dir}
	cfg, err := Load(Flags{}, envMap(env), nil)
	require.NoError(t, err)
	assert.Equal(t, "from file", cfg.Reason)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 3*time.Second, cfg.CallTimeout)

	env[EnvReason] = "from env"
	cfg, err = Load(Flags{}, envMap(env), nil)
	require.NoError(t, err)
	assert.Equal(t, "from env", cfg.Reason)

	cfg, err = Load(Flags{Reason: "from flag", CallTimeout: 0, TimeoutSet: true}, envMap(env), nil)
	require.NoError(t, err)
	assert.Equal(t, "from flag", cfg.Reason)
	assert.Equal(t, time.Duration(0), cfg.CallTimeout)
}

func TestLoad_ExplicitConfigPath(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(p, []byte("verbose: true\nlog_format: json\n"), 0o644))

	cfg, err := Load(Flags{ConfigPath: p}, envMap(nil), nil)
	require.NoError(t, err)
	assert.True(t, cfg.Verbose)
	assert.Equal(t, "json", cfg.LogFormat)

	_, err = Load(Flags{ConfigPath: filepath.Join(dir, "missing.yaml")}, envMap(nil), nil)
	assert.Error(t, err)
}

// warnings collects the messages Load reports.
type warnings []string

func (w *warnings) add(format string, a ...any) {
	*w = append(*w, fmt.Sprintf(format, a...))
}

func TestLoad_BrokenDefaultFileFallsBack(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "reason: [unterminated\n")

	var w warnings
	cfg, err := Load(Flags{}, envMap(map[string]string{"XDG_CONFIG_HOME": dir}), w.add)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	require.Len(t, w, 1)
	assert.Contains(t, w[0], "parse config")
}

func TestLoad_BrokenExplicitFileFails(t *testing.T) {
	p := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(p, []byte("reason: [unterminated\n"), 0o644))

	_, err := Load(Flags{ConfigPath: p}, envMap(nil), nil)
	assert.ErrorContains(t, err, "parse config")
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	tests := []struct {
		name  string
		env   map[string]string
		flags Flags
		check func(t *testing.T, cfg *Config)
	}{
		{
			name:  "empty reason flag",
			flags: Flags{Reason: "   "},
			check: func(t *testing.T, cfg *Config) { assert.Equal(t, DefaultReason, cfg.Reason) },
		},
		{
			name:  "bad log format from env",
			env:   map[string]string{EnvLogFormat: "xml"},
			check: func(t *testing.T, cfg *Config) { assert.Equal(t, DefaultLogFormat, cfg.LogFormat) },
		},
		{
			name:  "bad log level from env",
			env:   map[string]string{EnvLogLevel: "loud"},
			check: func(t *testing.T, cfg *Config) { assert.Equal(t, DefaultLogLevel, cfg.LogLevel) },
		},
		{
			name:  "negative timeout flag",
			flags: Flags{CallTimeout: -time.Second, TimeoutSet: true},
			check: func(t *testing.T, cfg *Config) { assert.Equal(t, DefaultCallTimeout, cfg.CallTimeout) },
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := map[string]string{"XDG_CONFIG_HOME": t.TempDir()}
			for k, v := range tt.env {
				env[k] = v
			}
			var w warnings
			cfg, err := Load(tt.flags, envMap(env), w.add)
			require.NoError(t, err)
			tt.check(t, cfg)
			assert.Len(t, w, 1)
		})
	}
}

func TestLoad_ValidValuesDoNotWarn(t *testing.T) {
	env := map[string]string{"XDG_CONFIG_HOME": t.TempDir(), EnvLogLevel: "DEBUG", EnvLogFormat: "json"}
	var w warnings
	_, err := Load(Flags{}, envMap(env), w.add)
	require.NoError(t, err)
	assert.Empty(t, w)
}
