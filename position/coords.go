package position

// CoordinateAdapter is the single place where scroll offsets and viewport
// coordinates are corrected for the visual viewport.
//
// On hosts with a visual viewport (an on-screen keyboard can push it up or
// left), its offsets are added to scroll offsets and to element
// coordinates. Whether to do so is decided once, when the adapter is
// created. Elastic overscroll is not accounted for: placement is expected to
// be off while it is in effect.
type CoordinateAdapter struct {
	scrollTop  func() float64
	scrollLeft func() float64
	visualY    func(float64) float64
	visualX    func(float64) float64
}

// NewCoordinateAdapter creates an adapter for h.
func NewCoordinateAdapter(h Host) CoordinateAdapter {
	vv := h.VisualViewport()
	if vv == nil {
		identity := func(v float64) float64 { return v }
		return CoordinateAdapter{
			scrollTop:  h.ScrollY,
			scrollLeft: h.ScrollX,
			visualY:    identity,
			visualX:    identity,
		}
	}
	return CoordinateAdapter{
		scrollTop:  func() float64 { return h.ScrollY() + vv.OffsetTop() },
		scrollLeft: func() float64 { return h.ScrollX() + vv.OffsetLeft() },
		visualY:    func(y float64) float64 { return y + vv.OffsetTop() },
		visualX:    func(x float64) float64 { return x + vv.OffsetLeft() },
	}
}

// ScrollTop returns the vertical scroll offset.
func (c CoordinateAdapter) ScrollTop() float64 { return c.scrollTop() }

// ScrollLeft returns the horizontal scroll offset.
func (c CoordinateAdapter) ScrollLeft() float64 { return c.scrollLeft() }

// VisualY converts a viewport y coordinate.
func (c CoordinateAdapter) VisualY(y float64) float64 { return c.visualY(y) }

// VisualX converts a viewport x coordinate.
func (c CoordinateAdapter) VisualX(x float64) float64 { return c.visualX(x) }
