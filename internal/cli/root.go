package cli

import (
	"context"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/cris-achiardi/figma-plugins-sub000/pkg/buildinfo"
)

// configFile is the --config persistent flag value. Empty selects the
// default location under ~/.config/snaprestore.
var configFile string

// Execute runs the snaprestore CLI and returns an error if any command
// fails.
//
// The function sets up the root command with all subcommands (rebuild,
// inspect, serve, cache), configures logging based on the --verbose flag,
// and executes the command tree.
//
// Logging:
//   - Default: info level (logs to stderr)
//   - With --verbose (-v): debug level
//
// The logger is attached to the context and accessible to all commands via
// loggerFromContext.
func Execute(ctx context.Context) error {
	var verbose bool

	root := &cobra.Command{
		Use:          "snaprestore",
		Short:        "Snaprestore rebuilds editable node trees from document snapshots",
		Long:         `Snaprestore reconstructs a live, editable node hierarchy from a serialized design-document snapshot, reporting every attribute it had to degrade along the way.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))
			cmd.SetContext(ctx)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&configFile, "config", "", "path to config file")

	root.AddCommand(newRebuildCmd())
	root.AddCommand(newInspectCmd())
	root.AddCommand(newServeCmd())
	root.AddCommand(newCacheCmd())

	return root.ExecuteContext(ctx)
}
