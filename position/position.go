// Package position places a floating element (tooltip, dropdown, popup)
// next to an anchor element and keeps it there while the page scrolls or
// the viewport resizes.
//
// The placement is written as CSS custom properties that host styles
// consume:
//
//	target: --target-top, --target-left, --anchor-width, --anchor-height
//	anchor: --arrow-top or --arrow-left, --arrow-direction
//
// --target-top and --target-left are clamp() expressions that keep the
// target inside its container even when the page scrolls on without a full
// recompute.
package position

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/chrisuehlinger/anchorpos/dom"
	"github.com/chrisuehlinger/anchorpos/host"
)

// Element is the part of a DOM element the positioner reads and writes.
type Element interface {
	GetBoundingClientRect() *dom.DOMRect
	Style() *dom.CSSStyleDeclaration
	ToggleAttribute(name string, force ...bool) bool
	RemoveAttribute(name string)
}

// Host is the window a target is positioned in. *host.Window implements it.
type Host interface {
	ClientWidth() float64
	ClientHeight() float64
	ScrollX() float64
	ScrollY() float64
	VisualViewport() *host.VisualViewport
	AddEventListener(eventType string, fn host.Listener, opts host.ListenerOptions) int
	RequestAnimationFrame(fn func()) int
}

// CancelFunc detaches a positioned target from scroll and resize updates.
type CancelFunc func()

// Option configures Position.
type Option func(*options)

type options struct {
	logger *log.Logger
}

var discardLogger = log.New(io.Discard)

// WithLogger makes the session log its recomputes at debug level.
func WithLogger(l *log.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// Session is the per-call state of one positioned target. Strategies read
// its geometry and write through SetTop and SetLeft.
type Session struct {
	strategy Strategy
	target   Element
	anchor   Element
	host     Host
	viewport *ViewportTracker
	coords   CoordinateAdapter
	logger   *log.Logger

	geo Geometry

	fitsPreferredDirection bool
	fitsOppositeDirection  bool
	alignsPreferredSide    bool
}

func newSession(h Host, target, anchor Element, strategy Strategy, o options) *Session {
	a := ambientFor(h)
	return &Session{
		strategy: strategy,
		target:   target,
		anchor:   anchor,
		host:     h,
		viewport: a.viewport,
		coords:   a.coords,
		logger:   o.logger,
	}
}

// Geometry returns a copy of the current measurements.
func (s *Session) Geometry() Geometry { return s.geo }

// ViewportWidth returns the tracked viewport width.
func (s *Session) ViewportWidth() float64 { return s.viewport.Width() }

// ViewportHeight returns the tracked viewport height.
func (s *Session) ViewportHeight() float64 { return s.viewport.Height() }

// FitsPreferredDirection reports the last fit decision.
func (s *Session) FitsPreferredDirection() bool { return s.fitsPreferredDirection }

// FitsOppositeDirection reports whether a prefer-below target would fit
// above the anchor. Nothing uses it for placement.
func (s *Session) FitsOppositeDirection() bool { return s.fitsOppositeDirection }

// AlignsPreferredSide reports the last alignment decision.
func (s *Session) AlignsPreferredSide() bool { return s.alignsPreferredSide }

// Target returns the positioned element.
func (s *Session) Target() Element { return s.target }

// Anchor returns the anchor element.
func (s *Session) Anchor() Element { return s.anchor }

// calculate makes the fit and alignment decisions from current geometry.
func (s *Session) calculate() {
	s.fitsPreferredDirection = s.strategy.fit.CalculateFit(s)
	s.alignsPreferredSide = s.strategy.align.CalculateAlignment(s)
}

// adjustPosition applies the current decisions. It is cheap enough for
// every scroll event: nothing is measured. Until a full capture has
// completed the previous placement stays in place.
func (s *Session) adjustPosition() {
	if !s.geo.Captured {
		return
	}
	s.strategy.fit.SetPosition(s)
	s.strategy.align.SetAlignment(s)
	s.strategy.arrow.SetArrowDirection(s)
}

// recompute measures everything again, decides again and applies.
func (s *Session) recompute() {
	s.invalidateGeometry(func() {
		s.calculate()
		s.adjustPosition()
		s.logger.Debug("recomputed position",
			"strategy", s.strategy.name,
			"fitsPreferred", s.fitsPreferredDirection,
			"alignsPreferred", s.alignsPreferredSide)
	})
}

// Position places target next to anchor using strategy and keeps it placed
// until the returned CancelFunc is called.
//
// The target is measured on the next animation frame, while it carries
// dom.PositionCheckAttr so a hidden target still has a box. The position is
// then applied, and onSettled, if not nil, is called one frame later with
// whether the preferred direction was used.
//
// Page scroll only shifts the applied position; window and visual viewport
// resizes, and the visual viewport's scroll, measure everything again and
// decide again, so a resize can move the target to the other side of the
// anchor. Position returns immediately.
func Position(h Host, target, anchor Element, strategy Strategy, onSettled func(fitsPreferred bool), opts ...Option) CancelFunc {
	o := options{logger: discardLogger}
	for _, opt := range opts {
		opt(&o)
	}
	_, cancel := start(newSession(h, target, anchor, strategy, o), onSettled)
	return cancel
}

func start(s *Session, onSettled func(bool)) (*Session, CancelFunc) {
	h, target, strategy := s.host, s.target, s.strategy

	ctrl := host.NewAbortController()
	signal := ctrl.Signal()
	reposition := func(host.Event) { s.adjustPosition() }
	recompute := func(host.Event) { s.recompute() }

	h.AddEventListener(host.EventResize, recompute, host.ListenerOptions{Signal: signal})
	h.AddEventListener(host.EventScroll, reposition, host.ListenerOptions{Signal: signal, Passive: true})
	if vv := h.VisualViewport(); vv != nil {
		vv.AddEventListener(host.EventResize, recompute, host.ListenerOptions{Signal: signal})
		vv.AddEventListener(host.EventScroll, recompute, host.ListenerOptions{Signal: signal})
	}

	target.ToggleAttribute(dom.PositionCheckAttr, true)
	s.invalidateGeometry(func() {
		s.calculate()
		target.RemoveAttribute(dom.PositionCheckAttr)
		s.adjustPosition()
		s.logger.Debug("positioned",
			"strategy", strategy.name,
			"fitsPreferred", s.fitsPreferredDirection,
			"alignsPreferred", s.alignsPreferredSide)
		h.RequestAnimationFrame(func() {
			if onSettled != nil {
				onSettled(s.fitsPreferredDirection)
			}
		})
	})

	return s, ctrl.Abort
}
