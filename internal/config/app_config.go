package config

import (
	"fmt"
	"strings"
	"time"
)

// AppConfig represents the server configuration.
type AppConfig struct {
	Port        int           `mapstructure:"port" json:"port"`
	ProjectsDir string        `mapstructure:"projects_dir" json:"projects_dir"`
	Flutter     FlutterConfig `mapstructure:"flutter" json:"flutter"`
	Log         LogConfig     `mapstructure:"log" json:"log"`
	OpenAI      OpenAIConfig  `mapstructure:"openai" json:"openai"`
}

// FlutterConfig describes how the project-creation tool is invoked.
type FlutterConfig struct {
	Bin     string        `mapstructure:"bin" json:"bin"`
	Args    []string      `mapstructure:"args" json:"args"`
	Timeout time.Duration `mapstructure:"timeout" json:"timeout"`
	Env     []string      `mapstructure:"env" json:"env"` // KEY=VALUE, e.g. PUB_CACHE=/var/cache/pub
}

// EnvMap splits Env into a variable map. Entries are validated by Validate.
func (f FlutterConfig) EnvMap() map[string]string {
	if len(f.Env) == 0 {
		return nil
	}
	env := make(map[string]string, len(f.Env))
	for _, entry := range f.Env {
		key, value, _ := strings.Cut(entry, "=")
		env[key] = value
	}
	return env
}

// LogConfig defines logger level and output format.
type LogConfig struct {
	Level  string `mapstructure:"level" json:"level"`
	Format string `mapstructure:"format" json:"format"`
}

// OpenAIConfig configures the optional README overview writer.
type OpenAIConfig struct {
	Enabled bool          `mapstructure:"enabled" json:"enabled"`
	APIKey  string        `mapstructure:"api_key" json:"-"`
	Model   string        `mapstructure:"model" json:"model"`
	BaseURL string        `mapstructure:"base_url" json:"base_url,omitempty"`
	Timeout time.Duration `mapstructure:"timeout" json:"timeout"`
}

// DescriberEnabled reports whether the OpenAI overview writer should be wired.
func (c *AppConfig) DescriberEnabled() bool {
	return c.OpenAI.Enabled && c.OpenAI.APIKey != ""
}

// Addr returns the listen address for the HTTP server.
func (c *AppConfig) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Validate checks the configuration for values the server cannot run with.
func (c *AppConfig) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range", c.Port)
	}
	if strings.TrimSpace(c.ProjectsDir) == "" {
		return fmt.Errorf("projects_dir must not be empty")
	}
	if strings.TrimSpace(c.Flutter.Bin) == "" {
		return fmt.Errorf("flutter.bin must not be empty")
	}
	if c.Flutter.Timeout < 0 {
		return fmt.Errorf("flutter.timeout must not be negative")
	}
	for _, entry := range c.Flutter.Env {
		if key, _, ok := strings.Cut(entry, "="); !ok || strings.TrimSpace(key) == "" {
			return fmt.Errorf("flutter.env entry %q must be KEY=VALUE", entry)
		}
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log.level %q", c.Log.Level)
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log.format %q", c.Log.Format)
	}
	return nil
}
