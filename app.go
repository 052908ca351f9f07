package main

import (
	"fmt"
	"strings"
	"time"

	"flutter-scaffold/backend/internal/config"
	"flutter-scaffold/backend/internal/exec"
	"flutter-scaffold/backend/internal/features/scaffold/application"
	"flutter-scaffold/backend/internal/features/scaffold/infrastructure"
	"flutter-scaffold/backend/internal/logging"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// app bundles the resolved configuration and the wired project service.
type app struct {
	cfg     *config.AppConfig
	logger  *log.Logger
	service application.ProjectService
}

// newApp loads configuration, sets up logging and wires the project pipeline.
func newApp(cmd *cobra.Command, opts *rootOptions) (*app, error) {
	cfg, err := config.NewAppConfigService(
		config.WithConfigFile(opts.configFile),
		config.WithOverrides(opts.overrides(cmd)),
	).LoadAppConfig()
	if err != nil {
		return nil, err
	}

	if err := logging.Setup(logging.Options{Level: cfg.Log.Level, Format: cfg.Log.Format}); err != nil {
		return nil, err
	}
	logger := logging.Logger

	if err := application.EnsureProjectsDir(cfg.ProjectsDir); err != nil {
		return nil, err
	}

	var describer application.ProjectDescriber
	if cfg.DescriberEnabled() {
		d, err := infrastructure.NewOpenAIDescriber(infrastructure.DescriberConfig{
			APIKey:  cfg.OpenAI.APIKey,
			Model:   cfg.OpenAI.Model,
			BaseURL: cfg.OpenAI.BaseURL,
			Timeout: cfg.OpenAI.Timeout,
		}, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create OpenAI describer: %w", err)
		}
		describer = d
		logger.Info("README overviews enabled", "model", cfg.OpenAI.Model)
	} else if cfg.OpenAI.Enabled {
		logger.Warn("openai.enabled is set but no API key was found; README overviews disabled")
	}

	flutter := infrastructure.NewFlutterCLI(exec.NewRealRunner(), cfg.Flutter.Bin, cfg.Flutter.Args, cfg.Flutter.Timeout, logger).
		WithEnv(cfg.Flutter.EnvMap())
	builder := application.NewProjectBuilder(infrastructure.DefaultBoilerplate(), time.Now, logger)
	service := application.NewProjectService(cfg.ProjectsDir, flutter, builder, infrastructure.NewZipArchiver(logger), describer, logger)

	logger.Debug("Configuration loaded",
		"projects_dir", cfg.ProjectsDir,
		"flutter", strings.Join(append([]string{cfg.Flutter.Bin}, cfg.Flutter.Args...), " "),
	)

	return &app{cfg: cfg, logger: logger, service: service}, nil
}
