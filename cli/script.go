package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/chrisuehlinger/anchorpos/dom"
	"github.com/chrisuehlinger/anchorpos/html"
	"github.com/chrisuehlinger/anchorpos/js"
	"github.com/chrisuehlinger/anchorpos/network"
)

const blankDocument = "<!DOCTYPE html><html><head></head><body></body></html>"

// scriptOpts holds the flags for the script command.
type scriptOpts struct {
	html     string
	viewport string
	frames   int
	dump     bool
}

func newScriptCmd() *cobra.Command {
	var opts scriptOpts

	cmd := &cobra.Command{
		Use:   "script <file.js|URL>",
		Short: "Run JavaScript against a document",
		Long: `Run a script against a headless document: the document's inline scripts run
first, external ones loaded relative to the document, then the given file, then the load event fires and animation frames run
until the page is idle. The script sees window, document, console and the
position() function with its strategy globals.`,
		Example: `  anchorpos script demo.js --html page.html --dump`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScript(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.html, "html", "", "HTML document or URL to run against (default: empty page)")
	cmd.Flags().StringVar(&opts.viewport, "viewport", "", "layout viewport size as WIDTHxHEIGHT (default from config)")
	cmd.Flags().IntVar(&opts.frames, "frames", js.DefaultFrameLimit, "maximum animation frames to run")
	cmd.Flags().BoolVar(&opts.dump, "dump", false, "print the inline style of every styled element afterwards")

	return cmd
}

func runScript(cmd *cobra.Command, path string, opts scriptOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)
	cfg := configFromContext(ctx)
	prog := newProgress(logger)

	if opts.viewport != "" {
		w, h, err := parseSize(opts.viewport)
		if err != nil {
			return err
		}
		cfg.Viewport = ViewportConfig{Width: w, Height: h}
	}

	client, err := network.NewClient()
	if err != nil {
		return err
	}
	script, err := network.NewLoader(client).Load(ctx, path)
	if err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}

	pageLoader := network.NewLoader(client)
	var doc *dom.Document
	if opts.html != "" {
		doc, err = loadDocument(ctx, pageLoader, opts.html)
	} else {
		doc, err = html.Parse(blankDocument)
	}
	if err != nil {
		return err
	}

	win := cfg.newWindow(doc)
	runtime := js.NewRuntime(win, js.WithLogger(logger))
	exec := js.NewScriptExecutor(runtime)
	exec.SetFrameLimit(opts.frames)
	exec.SetLoader(func(src string) (string, string, error) {
		res, err := pageLoader.Load(ctx, src)
		if err != nil {
			return "", "", err
		}
		logger.Debug("Loaded script", "url", res.URL)
		return res.AsString(), res.URL, nil
	})

	// Failures are collected by the runtime, callbacks included.
	exec.ExecuteScripts()
	if err := ctx.Err(); err != nil {
		return err
	}
	_ = exec.ExecuteExternalScript(script.AsString(), script.URL)
	exec.DispatchLoadEvent()
	if !exec.Settle() {
		logger.Warn("Frames still pending", "limit", opts.frames)
	}
	errs := runtime.Errors()
	prog.done("Ran " + path)

	if opts.dump {
		dumpStyles(cmd.OutOrStdout(), doc)
	}

	for _, err := range errs {
		logger.Error("Script error", "err", err)
	}
	if len(errs) > 0 {
		return fmt.Errorf("%d script error(s): %w", len(errs), errors.Join(errs...))
	}
	return nil
}

// dumpStyles prints "selector: cssText" for each element with inline style.
func dumpStyles(w io.Writer, doc *dom.Document) {
	doc.Walk(func(el *dom.Element) bool {
		if text := el.Style().CSSText(); text != "" {
			fmt.Fprintf(w, "%s: %s\n", selectorFor(el), text)
		}
		return true
	})
}

func selectorFor(el *dom.Element) string {
	if id := el.Id(); id != "" {
		return "#" + id
	}
	return strings.ToLower(el.TagName())
}
