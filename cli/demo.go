package cli

import (
	"fyne.io/fyne/v2"
	"github.com/spf13/cobra"

	"github.com/chrisuehlinger/anchorpos/position"
	"github.com/chrisuehlinger/anchorpos/ui"
)

// demoOpts holds the flags for the demo command.
type demoOpts struct {
	strategy       string
	size           string
	visualViewport bool
}

func newDemoCmd() *cobra.Command {
	var opts demoOpts

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Open the interactive demo window",
		Long: `Open a window with a button and a bubble positioned next to it. Click the
button to toggle the bubble, scroll the page and resize the window to watch it
follow.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := configFromContext(ctx)

			if opts.strategy != "" {
				cfg.Strategy = opts.strategy
			}
			if opts.size != "" {
				w, h, err := parseSize(opts.size)
				if err != nil {
					return err
				}
				cfg.Viewport = ViewportConfig{Width: w, Height: h}
			}
			if cmd.Flags().Changed("visual-viewport") {
				cfg.VisualViewport.Enabled = opts.visualViewport
			}
			strategy, err := position.Lookup(cfg.Strategy)
			if err != nil {
				return err
			}

			ui.NewDemoUI(ui.DemoOptions{
				Strategy:       strategy,
				Size:           fyne.NewSize(float32(cfg.Viewport.Width), float32(cfg.Viewport.Height)),
				VisualViewport: cfg.VisualViewport.Enabled,
				Logger:         loggerFromContext(ctx),
			}).Run()
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.strategy, "strategy", "s", "", "initial positioning strategy (default from config)")
	cmd.Flags().StringVar(&opts.size, "size", "", "window size as WIDTHxHEIGHT (default: config viewport)")
	cmd.Flags().BoolVar(&opts.visualViewport, "visual-viewport", false, "give the page a visual viewport")

	return cmd
}
