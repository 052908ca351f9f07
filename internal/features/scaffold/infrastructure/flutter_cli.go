package infrastructure

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"flutter-scaffold/backend/internal/exec"
	"flutter-scaffold/backend/internal/features/scaffold/domain"

	"github.com/charmbracelet/log"
)

// FlutterCLI runs `flutter create` to lay down the baseline project before the
// architecture overlay is written.
type FlutterCLI struct {
	runner  exec.CommandRunner
	bin     string
	args    []string
	timeout time.Duration
	env     map[string]string
	logger  *log.Logger
}

// NewFlutterCLI creates a FlutterCLI. args are inserted before the create
// subcommand, which lets wrappers such as `fvm flutter` be configured.
func NewFlutterCLI(runner exec.CommandRunner, bin string, args []string, timeout time.Duration, logger *log.Logger) *FlutterCLI {
	return &FlutterCLI{
		runner:  runner,
		bin:     bin,
		args:    args,
		timeout: timeout,
		logger:  logger,
	}
}

// WithEnv sets extra environment variables for the tool and returns f.
func (f *FlutterCLI) WithEnv(env map[string]string) *FlutterCLI {
	f.env = env
	return f
}

// Command returns the argv used for a project.
func (f *FlutterCLI) Command(projectName, targetPath string) []string {
	argv := append([]string{f.bin}, f.args...)
	return append(argv, "create", "--project-name="+projectName, targetPath)
}

// Create runs the project-creation tool for projectName into targetPath.
// Non-zero exit codes and start failures are returned as external tool errors
// carrying the captured stderr.
func (f *FlutterCLI) Create(ctx context.Context, projectName, targetPath string) error {
	argv := f.Command(projectName, targetPath)
	f.logger.Info("Executing", "command", strings.Join(argv, " "))

	result, err := f.runner.Run(ctx, argv[0], argv[1:], exec.RunOpts{
		Dir:     filepath.Dir(targetPath),
		Env:     f.env,
		Timeout: f.timeout,
	})
	if result.Stdout != "" {
		f.logger.Debug("Flutter create output", "stdout", result.Stdout)
	}
	if err != nil {
		f.logger.Error("Flutter create error", "err", err, "stderr", result.Stderr)
		detail := strings.TrimSpace(result.Stderr)
		if detail == "" {
			detail = err.Error()
		}
		return domain.WrapError(domain.KindExternalTool, detail, err)
	}
	if result.ExitCode != 0 {
		f.logger.Error("Flutter create error", "exit_code", result.ExitCode, "stderr", result.Stderr)
		detail := strings.TrimSpace(result.Stderr)
		if detail == "" {
			detail = fmt.Sprintf("exit status %d", result.ExitCode)
		}
		return domain.NewError(domain.KindExternalTool, detail)
	}

	f.logger.Info("Flutter project created", "path", targetPath, "duration", result.Duration)
	return nil
}
