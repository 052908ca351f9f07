package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// envPrefix namespaces environment overrides, e.g. SCAFFOLD_PROJECTS_DIR.
const envPrefix = "SCAFFOLD"

// AppConfigService defines the interface for application configuration management.
type AppConfigService interface {
	LoadAppConfig() (*AppConfig, error)
}

// Option customises an appConfigService.
type Option func(*appConfigService)

// WithConfigFile points the service at a YAML config file.
func WithConfigFile(path string) Option {
	return func(s *appConfigService) { s.configPath = path }
}

// WithDotEnv sets the .env files loaded before reading the environment.
func WithDotEnv(files ...string) Option {
	return func(s *appConfigService) { s.dotEnvFiles = files }
}

// WithOverrides sets values that win over every other source (command-line flags).
func WithOverrides(overrides map[string]any) Option {
	return func(s *appConfigService) { s.overrides = overrides }
}

// appConfigService is the implementation of AppConfigService.
type appConfigService struct {
	configPath  string
	dotEnvFiles []string
	overrides   map[string]any
}

// NewAppConfigService creates a new instance of appConfigService.
func NewAppConfigService(opts ...Option) AppConfigService {
	s := &appConfigService{dotEnvFiles: []string{".env"}}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetDefaults registers the built-in defaults on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("port", 3000)
	v.SetDefault("projects_dir", "projects")
	v.SetDefault("flutter.bin", "flutter")
	v.SetDefault("flutter.args", []string{})
	v.SetDefault("flutter.timeout", "5m")
	v.SetDefault("flutter.env", []string{})
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("openai.enabled", false)
	v.SetDefault("openai.api_key", "")
	v.SetDefault("openai.model", "gpt-4o-mini")
	v.SetDefault("openai.base_url", "")
	v.SetDefault("openai.timeout", "30s")
}

// LoadAppConfig resolves configuration from defaults, the optional config
// file, .env files, the environment and overrides, in increasing precedence.
func (s *appConfigService) LoadAppConfig() (*AppConfig, error) {
	for _, file := range s.dotEnvFiles {
		// godotenv never overwrites variables that are already set.
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load env file %s: %w", file, err)
		}
	}

	v := viper.New()
	SetDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("port", envPrefix+"_PORT", "PORT")
	_ = v.BindEnv("openai.api_key", envPrefix+"_OPENAI_API_KEY", "OPENAI_API_KEY")

	configPath := s.configPath
	if configPath == "" {
		configPath = os.Getenv(envPrefix + "_CONFIG")
	}
	if configPath != "" {
		absPath, err := filepath.Abs(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to get absolute path for %s: %w", configPath, err)
		}
		v.SetConfigFile(absPath)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", absPath, err)
		}
	}

	for key, value := range s.overrides {
		v.Set(key, value)
	}

	var appConfig AppConfig
	if err := v.Unmarshal(&appConfig); err != nil {
		return nil, fmt.Errorf("failed to unmarshal app config: %w", err)
	}

	if err := appConfig.Validate(); err != nil {
		return nil, fmt.Errorf("invalid app config: %w", err)
	}

	absProjects, err := filepath.Abs(appConfig.ProjectsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path for %s: %w", appConfig.ProjectsDir, err)
	}
	appConfig.ProjectsDir = absProjects

	return &appConfig, nil
}
