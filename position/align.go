package position

// AlignStrategy places the target along the axis orthogonal to its fit axis.
type AlignStrategy interface {
	// CalculateAlignment reports whether the preferred alignment fits.
	CalculateAlignment(s *Session) bool
	// SetAlignment applies the alignment.
	SetAlignment(s *Session)
}

// Unaligned leaves the target where its styles put it.
type Unaligned struct{}

func (Unaligned) CalculateAlignment(*Session) bool { return true }

func (Unaligned) SetAlignment(*Session) {}

// VerticalCenter centers the target on the anchor vertically.
type VerticalCenter struct{}

func (VerticalCenter) CalculateAlignment(*Session) bool { return true }

func (VerticalCenter) SetAlignment(s *Session) {
	s.SetTop(s.geo.AnchorTop + (s.geo.AnchorHeight-s.geo.TargetHeight)/2)
}

// HorizontalCenter centers the target on the anchor horizontally.
type HorizontalCenter struct{}

func (HorizontalCenter) CalculateAlignment(*Session) bool { return true }

func (HorizontalCenter) SetAlignment(s *Session) {
	s.SetLeft(s.geo.AnchorLeft + (s.geo.AnchorWidth-s.geo.TargetWidth)/2)
}

// HorizontalFlush lines up the left edges when the target fits in the
// viewport that way, and the right edges otherwise.
type HorizontalFlush struct{}

func (HorizontalFlush) CalculateAlignment(s *Session) bool {
	return s.geo.AnchorLeft+s.geo.TargetWidth <= s.viewport.Width()
}

func (HorizontalFlush) SetAlignment(s *Session) {
	if s.alignsPreferredSide {
		s.SetLeft(s.geo.AnchorLeft)
	} else {
		s.SetLeft(s.geo.AnchorRight - s.geo.TargetWidth)
	}
}
