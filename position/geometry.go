package position

import (
	"github.com/chrisuehlinger/anchorpos/css"
	"github.com/chrisuehlinger/anchorpos/dom"
)

// Style properties written by the positioner.
const (
	PropTargetTop      = "--target-top"
	PropTargetLeft     = "--target-left"
	PropAnchorWidth    = "--anchor-width"
	PropAnchorHeight   = "--anchor-height"
	PropArrowTop       = "--arrow-top"
	PropArrowLeft      = "--arrow-left"
	PropArrowDirection = "--arrow-direction"
)

// Rect is a bounding box snapshot in viewport coordinates.
type Rect struct {
	Top, Bottom, Left, Right float64
	Width, Height            float64
}

// RectFromDOM converts a DOMRect. A nil rect converts to the zero Rect.
func RectFromDOM(r *dom.DOMRect) Rect {
	if r == nil {
		return Rect{}
	}
	return Rect{
		Top:    r.Top(),
		Bottom: r.Bottom(),
		Left:   r.Left(),
		Right:  r.Right(),
		Width:  r.Width,
		Height: r.Height,
	}
}

// Geometry is what a session has measured. Nil rects have not been
// measured yet. The edges and initial scroll offsets are only meaningful
// once Captured is true, and they are always captured and cleared together
// with the rects.
type Geometry struct {
	AnchorRect *Rect
	TargetRect *Rect

	AnchorTop, AnchorBottom   float64
	AnchorLeft, AnchorRight   float64
	AnchorWidth, AnchorHeight float64
	TargetWidth, TargetHeight float64

	// Scroll offsets at capture time. Later scrolling is applied as a delta
	// against these instead of measuring again.
	InitialScrollTop  float64
	InitialScrollLeft float64

	Captured bool
}

// captureAnchorGeometry measures the anchor if needed and publishes its size
// on the target so styles can size the target after the anchor.
func (s *Session) captureAnchorGeometry() {
	g := &s.geo
	if g.AnchorRect == nil {
		s.measureAnchor()
	}
	style := s.target.Style()
	style.SetProperty(PropAnchorWidth, css.Px(g.AnchorWidth))
	style.SetProperty(PropAnchorHeight, css.Px(g.AnchorHeight))
}

// captureFullGeometry measures whatever is not cached yet. Cached rects
// are never read again, so no extra layout is forced.
func (s *Session) captureFullGeometry() {
	g := &s.geo
	if g.TargetRect == nil {
		r := RectFromDOM(s.target.GetBoundingClientRect())
		g.TargetRect = &r
	}
	if g.AnchorRect == nil {
		s.measureAnchor()
	}
	if !g.Captured {
		g.TargetHeight = g.TargetRect.Height
		g.AnchorHeight = g.AnchorRect.Height
		g.AnchorTop = s.coords.VisualY(g.AnchorRect.Top)
		g.AnchorBottom = s.coords.VisualY(g.AnchorRect.Bottom)

		g.TargetWidth = g.TargetRect.Width
		g.AnchorWidth = g.AnchorRect.Width
		g.AnchorLeft = s.coords.VisualX(g.AnchorRect.Left)
		g.AnchorRight = s.coords.VisualX(g.AnchorRect.Right)
		g.Captured = true
	}
}

// measureAnchor reads the anchor rect together with the scroll offsets it
// is relative to.
func (s *Session) measureAnchor() {
	g := &s.geo
	r := RectFromDOM(s.anchor.GetBoundingClientRect())
	g.AnchorRect = &r
	g.AnchorWidth = r.Width
	g.AnchorHeight = r.Height
	g.InitialScrollTop = s.coords.ScrollTop()
	g.InitialScrollLeft = s.coords.ScrollLeft()
}

// invalidateGeometry drops all measurements, re-measures the anchor now and
// the rest on the next frame, then calls onComplete. The anchor size hints
// have to be painted before the target's box reflects them.
func (s *Session) invalidateGeometry(onComplete func()) {
	s.geo = Geometry{}
	s.captureAnchorGeometry()
	s.host.RequestAnimationFrame(func() {
		s.captureFullGeometry()
		onComplete()
	})
}

// SetTop positions the target's top edge at top, given in the coordinates
// of the last capture. The written value stays within the container.
func (s *Session) SetTop(top float64) {
	scrollOffset := s.coords.ScrollTop() - s.geo.InitialScrollTop
	s.target.Style().SetProperty(PropTargetTop, css.Clamp{
		Value:   top - scrollOffset,
		Reserve: s.geo.TargetHeight,
	}.String())
}

// SetLeft positions the target's left edge at left, given in the
// coordinates of the last capture.
func (s *Session) SetLeft(left float64) {
	scrollOffset := s.coords.ScrollLeft() - s.geo.InitialScrollLeft
	s.target.Style().SetProperty(PropTargetLeft, css.Clamp{
		Value:   left - scrollOffset,
		Reserve: s.geo.TargetWidth,
	}.String())
}
