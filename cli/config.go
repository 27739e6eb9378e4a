package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/chrisuehlinger/anchorpos/dom"
	"github.com/chrisuehlinger/anchorpos/host"
	"github.com/chrisuehlinger/anchorpos/position"
)

// Config is the contents of a --config file.
//
//	strategy = "dropdown"
//
//	[viewport]
//	width = 1024
//	height = 768
//
//	[visual_viewport]
//	enabled = true
//	offset_top = 0
//	offset_left = 0
type Config struct {
	Strategy       string               `toml:"strategy"`
	Viewport       ViewportConfig       `toml:"viewport"`
	VisualViewport VisualViewportConfig `toml:"visual_viewport"`
}

// ViewportConfig is the layout viewport size in CSS pixels.
type ViewportConfig struct {
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
}

// VisualViewportConfig enables a visual viewport and sets its offset from
// the layout viewport.
type VisualViewportConfig struct {
	Enabled    bool    `toml:"enabled"`
	OffsetTop  float64 `toml:"offset_top"`
	OffsetLeft float64 `toml:"offset_left"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	return Config{
		Strategy: position.VerticalTooltip.Name(),
		Viewport: ViewportConfig{Width: 1024, Height: 768},
	}
}

// LoadConfig reads the TOML file at path over the defaults. An empty path
// returns DefaultConfig.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("load config %s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	if _, err := position.Lookup(c.Strategy); err != nil {
		return err
	}
	if c.Viewport.Width <= 0 || c.Viewport.Height <= 0 {
		return fmt.Errorf("viewport must be positive, got %gx%g", c.Viewport.Width, c.Viewport.Height)
	}
	return nil
}

// newWindow creates a host window for doc as described by the config.
func (c Config) newWindow(doc *dom.Document) *host.Window {
	var opts []host.WindowOption
	if c.VisualViewport.Enabled {
		opts = append(opts, host.WithVisualViewport())
	}
	win := host.NewWindow(doc, c.Viewport.Width, c.Viewport.Height, opts...)
	if vv := win.VisualViewport(); vv != nil && (c.VisualViewport.OffsetLeft != 0 || c.VisualViewport.OffsetTop != 0) {
		vv.SetOffset(c.VisualViewport.OffsetLeft, c.VisualViewport.OffsetTop)
	}
	return win
}

func withConfig(ctx context.Context, cfg Config) context.Context {
	return context.WithValue(ctx, configKey, cfg)
}

// configFromContext returns the loaded config, or DefaultConfig.
func configFromContext(ctx context.Context) Config {
	if cfg, ok := ctx.Value(configKey).(Config); ok {
		return cfg
	}
	return DefaultConfig()
}

// parseSize parses "WxH", e.g. "1280x720".
func parseSize(s string) (w, h float64, err error) {
	ws, hs, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return 0, 0, fmt.Errorf("invalid size %q: want WIDTHxHEIGHT", s)
	}
	if w, err = strconv.ParseFloat(strings.TrimSpace(ws), 64); err != nil {
		return 0, 0, fmt.Errorf("invalid size %q: %w", s, err)
	}
	if h, err = strconv.ParseFloat(strings.TrimSpace(hs), 64); err != nil {
		return 0, 0, fmt.Errorf("invalid size %q: %w", s, err)
	}
	if w <= 0 || h <= 0 {
		return 0, 0, fmt.Errorf("invalid size %q: must be positive", s)
	}
	return w, h, nil
}

// parsePoint parses "X,Y", e.g. "0,120".
func parsePoint(s string) (x, y float64, err error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return 0, 0, fmt.Errorf("invalid point %q: want X,Y", s)
	}
	if x, err = strconv.ParseFloat(strings.TrimSpace(xs), 64); err != nil {
		return 0, 0, fmt.Errorf("invalid point %q: %w", s, err)
	}
	if y, err = strconv.ParseFloat(strings.TrimSpace(ys), 64); err != nil {
		return 0, 0, fmt.Errorf("invalid point %q: %w", s, err)
	}
	return x, y, nil
}
