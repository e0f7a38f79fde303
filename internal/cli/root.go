package cli

import (
	"context"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/orthogram/orthogram/pkg/buildinfo"
)

// SetVersion sets the version information displayed by --version.
// Called by the main package during initialization with values injected
// via ldflags at build time.
func SetVersion(v, c, d string) {
	buildinfo.Version = v
	buildinfo.Commit = c
	buildinfo.Date = d
}

// Execute runs the orthogram CLI and returns an error if any command
// fails. It sets up the root command with all subcommands (render,
// serve, cache), loads the optional config file, configures logging
// based on the --verbose flag, and executes the command tree against
// ctx, so a signal-aware ctx from main cancels a running "serve".
func Execute(ctx context.Context) error {
	var verbose bool

	cfg, cfgErr := loadConfig()

	root := &cobra.Command{
		Use:          "orthogram",
		Short:        "orthogram renders block diagrams from declarative DDF documents",
		Long:         `orthogram is a CLI tool that lays out and routes block diagrams described in Diagram Definition Files, rendering them to SVG, PNG or PDF.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			logger := newLogger(os.Stderr, level)
			if cfgErr != nil {
				logger.Warnf("config file: %v", cfgErr)
			}
			ctx := withLogger(cmd.Context(), logger)
			ctx = withConfig(ctx, cfg)
			cmd.SetContext(ctx)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newRenderCmd())
	root.AddCommand(newCacheCmd())
	root.AddCommand(newServeCmd())
	root.AddCommand(newCompletionCmd())

	return root.ExecuteContext(ctx)
}
