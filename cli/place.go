package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/chrisuehlinger/anchorpos/css"
	"github.com/chrisuehlinger/anchorpos/dom"
	"github.com/chrisuehlinger/anchorpos/host"
	"github.com/chrisuehlinger/anchorpos/html"
	"github.com/chrisuehlinger/anchorpos/network"
	"github.com/chrisuehlinger/anchorpos/position"
)

// settleFrameLimit bounds the frames run while waiting for a placement.
const settleFrameLimit = 10

// placeOpts holds the flags for the place command.
type placeOpts struct {
	target   string
	anchor   string
	strategy string
	viewport string
	scroll   string
}

func newPlaceCmd() *cobra.Command {
	var opts placeOpts

	cmd := &cobra.Command{
		Use:   "place <file.html|URL>",
		Short: "Position one element of an HTML file next to another",
		Long: `Position the --target element next to the --anchor element and print the
style properties written to both. Element boxes come from data-rect="left top width height"
attributes in the markup.`,
		Example: `  anchorpos place page.html --target tip --anchor button
  anchorpos place page.html --target menu --anchor select --strategy dropdown --scroll 0,120`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlace(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.target, "target", "", "id of the element to position (required)")
	cmd.Flags().StringVar(&opts.anchor, "anchor", "", "id of the anchor element (required)")
	cmd.Flags().StringVarP(&opts.strategy, "strategy", "s", "", "positioning strategy (default from config)")
	cmd.Flags().StringVar(&opts.viewport, "viewport", "", "layout viewport size as WIDTHxHEIGHT (default from config)")
	cmd.Flags().StringVar(&opts.scroll, "scroll", "", "scroll the page to X,Y after placing")
	_ = cmd.MarkFlagRequired("target")
	_ = cmd.MarkFlagRequired("anchor")

	return cmd
}

func runPlace(cmd *cobra.Command, location string, opts placeOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)
	cfg := configFromContext(ctx)

	if opts.strategy != "" {
		cfg.Strategy = opts.strategy
	}
	if opts.viewport != "" {
		w, h, err := parseSize(opts.viewport)
		if err != nil {
			return err
		}
		cfg.Viewport = ViewportConfig{Width: w, Height: h}
	}
	strategy, err := position.Lookup(cfg.Strategy)
	if err != nil {
		return err
	}

	doc, err := loadDocument(ctx, network.NewLoader(nil), location)
	if err != nil {
		return err
	}
	target, err := elementByID(doc, opts.target)
	if err != nil {
		return err
	}
	anchor, err := elementByID(doc, opts.anchor)
	if err != nil {
		return err
	}

	win := cfg.newWindow(doc)
	defer position.Forget(win)

	logger.Debug("Placing", "target", opts.target, "anchor", opts.anchor,
		"strategy", strategy.Name(), "viewport", fmt.Sprintf("%gx%g", cfg.Viewport.Width, cfg.Viewport.Height))

	var fitsPreferred, settled bool
	cancel := position.Position(win, target, anchor, strategy, func(fits bool) {
		fitsPreferred, settled = fits, true
	}, position.WithLogger(logger))
	defer cancel()

	frames := win.FlushFrames(settleFrameLimit)
	if !settled {
		return fmt.Errorf("placement did not settle within %d frames", settleFrameLimit)
	}
	logger.Debug("Settled", "frames", frames)

	if opts.scroll != "" {
		x, y, err := parsePoint(opts.scroll)
		if err != nil {
			return err
		}
		win.ScrollTo(x, y)
		logger.Debug("Scrolled", "x", win.ScrollX(), "y", win.ScrollY())
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "strategy: %s\n", strategy.Name())
	fmt.Fprintf(out, "fits preferred: %t\n", fitsPreferred)
	printProperties(out, "#"+opts.target, target, win, targetProperties)
	printProperties(out, "#"+opts.anchor, anchor, win, anchorProperties)
	return nil
}

// loadDocument loads and parses the document at location.
func loadDocument(ctx context.Context, loader *network.Loader, location string) (*dom.Document, error) {
	res, err := loader.LoadDocument(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", location, err)
	}
	doc, err := html.Parse(res.AsString())
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", res.URL, err)
	}
	return doc, nil
}

func elementByID(doc *dom.Document, id string) (*dom.Element, error) {
	el := doc.GetElementById(id)
	if el == nil {
		return nil, fmt.Errorf("no element with id %q", id)
	}
	return el, nil
}

var (
	targetProperties = []string{position.PropAnchorWidth, position.PropAnchorHeight, position.PropTargetTop, position.PropTargetLeft}
	anchorProperties = []string{position.PropArrowTop, position.PropArrowLeft, position.PropArrowDirection}
)

// printProperties writes each set property of el, with clamp() values
// resolved against the viewport.
func printProperties(w io.Writer, label string, el *dom.Element, win *host.Window, props []string) {
	style := el.Style()
	for _, name := range props {
		value := style.GetPropertyValue(name)
		if value == "" {
			continue
		}
		line := fmt.Sprintf("%s %s: %s", label, name, value)
		if c, err := css.ParseClamp(value); err == nil {
			container := win.ClientHeight()
			if name == position.PropTargetLeft {
				container = win.ClientWidth()
			}
			line += " => " + css.Px(c.Resolve(container))
		}
		fmt.Fprintln(w, line)
	}
}
