// Package config loads client settings from a TOML or YAML file and the
// environment.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// FileConfig represents the config file. Pointer fields stay nil when a key
// is absent so that it does not override anything.
type FileConfig struct {
	Client ClientConfig `toml:"client" yaml:"client"`
	Web    WebConfig    `toml:"web" yaml:"web"`
	Log    LogConfig    `toml:"log" yaml:"log"`
}

// ClientConfig maps request settings.
type ClientConfig struct {
	BaseURL   *string `toml:"base-url" yaml:"base-url"`
	Timeout   *string `toml:"timeout" yaml:"timeout"` // Go duration, e.g. "10s"
	Transport *string `toml:"transport" yaml:"transport"`
}

// WebConfig maps corrector-web settings.
type WebConfig struct {
	Addr *string `toml:"addr" yaml:"addr"`
}

// LogConfig maps logging settings.
type LogConfig struct {
	Level *string `toml:"level" yaml:"level"`
}

// Settings are resolved values: defaults, then file, then environment.
// Command-line flags are applied last by the commands.
type Settings struct {
	BaseURL   string
	Timeout   time.Duration
	Transport string
	Addr      string
	LogLevel  string
}

// Defaults returns built-in settings.
func Defaults() Settings {
	return Settings{
		BaseURL:   "http://localhost:5000",
		Timeout:   10 * time.Second,
		Transport: "std",
		Addr:      ":8080",
		LogLevel:  "warn",
	}
}

// LoadConfig reads a TOML (default) or YAML (.yaml/.yml) config from the
// given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg FileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
		}
	default:
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
		}
	}
	return cfg, nil
}

// Apply overlays the values present in f onto s.
func (f FileConfig) Apply(s *Settings) error {
	setString(&s.BaseURL, f.Client.BaseURL)
	setString(&s.Transport, f.Client.Transport)
	setString(&s.Addr, f.Web.Addr)
	setString(&s.LogLevel, f.Log.Level)
	if f.Client.Timeout != nil {
		d, err := time.ParseDuration(*f.Client.Timeout)
		if err != nil {
			return fmt.Errorf("invalid client.timeout: %w", err)
		}
		s.Timeout = d
	}
	return nil
}

// Environment variables read by ApplyEnv.
const (
	EnvBaseURL   = "CORRECTOR_URL"
	EnvTimeout   = "CORRECTOR_TIMEOUT"
	EnvTransport = "CORRECTOR_TRANSPORT"
	EnvAddr      = "CORRECTOR_ADDR"
	EnvLogLevel  = "CORRECTOR_LOG_LEVEL"
)

// ApplyEnv overlays non-empty environment variables onto s.
func ApplyEnv(s *Settings, getenv func(string) string) error {
	if getenv == nil {
		getenv = os.Getenv
	}
	for key, target := range map[string]*string{
		EnvBaseURL:   &s.BaseURL,
		EnvTransport: &s.Transport,
		EnvAddr:      &s.Addr,
		EnvLogLevel:  &s.LogLevel,
	} {
		if v := getenv(key); v != "" {
			*target = v
		}
	}
	if v := getenv(EnvTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvTimeout, err)
		}
		s.Timeout = d
	}
	return nil
}

// Load resolves settings from defaults, the file at path and the environment.
func Load(path string) (Settings, error) {
	s := Defaults()
	fileCfg, err := LoadConfig(path)
	if err != nil {
		return Settings{}, err
	}
	if err := fileCfg.Apply(&s); err != nil {
		return Settings{}, err
	}
	if err := ApplyEnv(&s, os.Getenv); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Validate checks resolved settings.
func (s Settings) Validate() error {
	u, err := url.Parse(s.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid base url: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("base url must be http(s)://host, got %q", s.BaseURL)
	}
	if s.Timeout <= 0 {
		return fmt.Errorf("timeout must be > 0")
	}
	switch s.Transport {
	case "std", "browser":
	default:
		return fmt.Errorf("transport must be std or browser, got %q", s.Transport)
	}
	return nil
}

// DefaultTemplate is written by `corrector config` when no file exists.
func DefaultTemplate() string {
	d := Defaults()
	return fmt.Sprintf(`# corrector configuration
# Uncomment a value to enable it. Environment variables and CLI flags override it.

[client]
# base-url = %q   # correction service; requests go to <base-url>/api/correct
# timeout = %q            # per-request deadline
# transport = %q          # std | browser (Chrome TLS fingerprint)

[web]
# addr = %q               # corrector-web listen address

[log]
# level = %q              # debug | info | warn | error
`, d.BaseURL, d.Timeout.String(), d.Transport, d.Addr, d.LogLevel)
}

func setString(target, value *string) {
	if value == nil {
		return
	}
	*target = *value
}
