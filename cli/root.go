// Package cli implements the anchorpos command-line interface.
//
// # Commands
//
//   - place: position an element of an HTML file next to another and print
//     the written style properties
//   - script: run JavaScript against an HTML file
//   - demo: open the interactive demo window
//   - strategies: list the positioning strategies
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. The logger is
// passed through context.Context.
//
// # Configuration
//
// --config names a TOML file with the default strategy and viewport; see
// Config. Command-line flags override it.
package cli

import (
	"context"
	"fmt"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	version string // semantic version (e.g., "v1.2.3")
	commit  string // git commit SHA
	date    string // build timestamp
)

// SetVersion sets the version information displayed by --version. It is
// meant for values injected via ldflags at build time.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the anchorpos CLI and returns an error if any command fails.
// Cancelling ctx aborts long-running commands.
func Execute(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}

// rootOpts holds the persistent flags.
type rootOpts struct {
	verbose    bool
	configPath string
}

func newRootCmd() *cobra.Command {
	var opts rootOpts

	root := &cobra.Command{
		Use:           "anchorpos",
		Short:         "anchorpos places tooltips, dropdowns and popups next to their anchors",
		Long:          `anchorpos places a floating element next to an anchor element, inside the viewport, and keeps it there as the page scrolls or resizes.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := charmlog.InfoLevel
			if opts.verbose {
				level = charmlog.DebugLevel
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			ctx = withLogger(ctx, newLogger(cmd.ErrOrStderr(), level))

			cfg, err := LoadConfig(opts.configPath)
			if err != nil {
				return err
			}
			cmd.SetContext(withConfig(ctx, cfg))
			return nil
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("anchorpos %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "TOML config file")

	root.AddCommand(newPlaceCmd())
	root.AddCommand(newScriptCmd())
	root.AddCommand(newDemoCmd())
	root.AddCommand(newStrategiesCmd())

	return root
}
