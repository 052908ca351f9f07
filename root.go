package main

import (
	"github.com/spf13/cobra"
)

// rootOptions holds the global flags.
type rootOptions struct {
	configFile  string
	projectsDir string
	logLevel    string
	port        int
}

// newRootCmd builds the flutter-scaffold command tree. Running the root
// command without a subcommand starts the server.
func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "flutter-scaffold",
		Short: "Flutter architecture scaffolding service",
		Long: `flutter-scaffold generates Flutter projects laid out for a chosen architecture.

It provides commands to:
  - Serve the HTTP API that returns generated projects as zip archives
  - Generate a single project locally
  - List the supported architectures and their folders`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, opts)
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.configFile, "config", "c", "", "path to config file (env: SCAFFOLD_CONFIG)")
	cmd.PersistentFlags().StringVar(&opts.projectsDir, "projects-dir", "", "directory generated projects are written to (env: SCAFFOLD_PROJECTS_DIR)")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn or error (env: SCAFFOLD_LOG_LEVEL)")
	cmd.PersistentFlags().IntVarP(&opts.port, "port", "p", 0, "HTTP listen port (env: PORT)")

	cmd.AddCommand(newServeCmd(opts))
	cmd.AddCommand(newGenerateCmd(opts))
	cmd.AddCommand(newArchitecturesCmd())
	return cmd
}

// overrides returns the config values set explicitly on the command line.
func (o *rootOptions) overrides(cmd *cobra.Command) map[string]any {
	out := map[string]any{}
	flags := cmd.Flags()
	if flags.Changed("projects-dir") {
		out["projects_dir"] = o.projectsDir
	}
	if flags.Changed("log-level") {
		out["log.level"] = o.logLevel
	}
	if flags.Changed("port") {
		out["port"] = o.port
	}
	return out
}
