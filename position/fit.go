package position

// FitStrategy decides on which side of the anchor the target goes along the
// main axis and places it there.
type FitStrategy interface {
	// CalculateFit reports whether the target fits in the preferred direction.
	CalculateFit(s *Session) bool
	// SetPosition places the target using the session's fit decision.
	SetPosition(s *Session)
}

// PreferAbove puts the target above the anchor when there is room for it,
// and below the anchor otherwise, whether or not it fits there.
type PreferAbove struct{}

func (PreferAbove) CalculateFit(s *Session) bool {
	return s.geo.TargetHeight <= s.geo.AnchorTop
}

func (PreferAbove) SetPosition(s *Session) {
	if s.fitsPreferredDirection {
		s.SetTop(s.geo.AnchorTop - s.geo.TargetHeight)
	} else {
		s.SetTop(s.geo.AnchorBottom)
	}
}

// PreferBelow puts the target below the anchor when it fits inside the
// viewport, and above it otherwise.
type PreferBelow struct{}

func (PreferBelow) CalculateFit(s *Session) bool {
	// Recorded for inspection only; placement does not consult it.
	s.fitsOppositeDirection = s.geo.AnchorTop-s.geo.TargetHeight > 0
	return s.geo.AnchorBottom+s.geo.TargetHeight <= s.viewport.Height()
}

func (PreferBelow) SetPosition(s *Session) {
	if s.fitsPreferredDirection {
		s.SetTop(s.geo.AnchorBottom)
	} else {
		s.SetTop(s.geo.AnchorTop - s.geo.TargetHeight)
	}
}

// HorizontalTarget puts the target right of the anchor when it fits in the
// remaining viewport width, and left of it otherwise.
type HorizontalTarget struct{}

func (HorizontalTarget) CalculateFit(s *Session) bool {
	return s.geo.TargetWidth <= s.viewport.Width()-s.geo.AnchorRight
}

func (HorizontalTarget) SetPosition(s *Session) {
	if s.fitsPreferredDirection {
		s.SetLeft(s.geo.AnchorRight)
	} else {
		s.SetLeft(s.geo.AnchorLeft - s.geo.TargetWidth)
	}
}
