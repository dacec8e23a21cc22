package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfigMissingFileIsEmpty(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, FileConfig{}, cfg)
}

func TestLoadConfigEmptyPath(t *testing.T) {
	_, err := LoadConfig("")
	assert.Error(t, err)
}

func TestLoadConfigTOML(t *testing.T) {
	path := writeFile(t, "config.toml", `
[client]
base-url = "https://speller.example"
timeout = "3s"

[log]
level = "debug"
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	s := Defaults()
	require.NoError(t, cfg.Apply(&s))
	assert.Equal(t, "https://speller.example", s.BaseURL)
	assert.Equal(t, 3*time.Second, s.Timeout)
	assert.Equal(t, "debug", s.LogLevel)
	assert.Equal(t, "std", s.Transport, "unset keys keep defaults")
	assert.Equal(t, ":8080", s.Addr)
}

func TestLoadConfigYAML(t *testing.T) {
	path := writeFile(t, "config.yaml", `
client:
  transport: browser
web:
  addr: "127.0.0.1:9000"
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	s := Defaults()
	require.NoError(t, cfg.Apply(&s))
	assert.Equal(t, "browser", s.Transport)
	assert.Equal(t, "127.0.0.1:9000", s.Addr)
	assert.Equal(t, 10*time.Second, s.Timeout)
}

func TestLoadConfigBadTOML(t *testing.T) {
	_, err := LoadConfig(writeFile(t, "config.toml", "[client\nbase-url ="))
	assert.ErrorContains(t, err, "failed to decode config")
}

func TestApplyRejectsBadTimeout(t *testing.T) {
	bad := "soon"
	s := Defaults()
	err := FileConfig{Client: ClientConfig{Timeout: &bad}}.Apply(&s)
	assert.ErrorContains(t, err, "client.timeout")
}

func TestApplyEnvOverridesFile(t *testing.T) {
	env := map[string]string{
		EnvBaseURL: "http://env.example:5000",
		EnvTimeout: "250ms",
	}
	s := Defaults()
	s.BaseURL = "http://file.example"

	require.NoError(t, ApplyEnv(&s, func(k string) string { return env[k] }))
	assert.Equal(t, "http://env.example:5000", s.BaseURL)
	assert.Equal(t, 250*time.Millisecond, s.Timeout)
	assert.Equal(t, "std", s.Transport)
}

func TestApplyEnvBadTimeout(t *testing.T) {
	s := Defaults()
	err := ApplyEnv(&s, func(k string) string {
		if k == EnvTimeout {
			return "forever"
		}
		return ""
	})
	assert.ErrorContains(t, err, EnvTimeout)
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Defaults().Validate())

	for name, mutate := range map[string]func(*Settings){
		"scheme":    func(s *Settings) { s.BaseURL = "ftp://x" },
		"no host":   func(s *Settings) { s.BaseURL = "http://" },
		"timeout":   func(s *Settings) { s.Timeout = 0 },
		"transport": func(s *Settings) { s.Transport = "quic" },
	} {
		s := Defaults()
		mutate(&s)
		assert.Error(t, s.Validate(), name)
	}
}

func TestDefaultTemplateDecodes(t *testing.T) {
	cfg, err := LoadConfig(writeFile(t, "config.toml", DefaultTemplate()))
	require.NoError(t, err)
	assert.Equal(t, FileConfig{}, cfg, "template keys are all commented out")
}
