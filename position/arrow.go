package position

import "github.com/chrisuehlinger/anchorpos/dom"

// ArrowStrategy orients the decorative arrow that points at the anchor.
type ArrowStrategy interface {
	SetArrowDirection(s *Session)
}

// ArrowOrientation writes arrow styles on the anchor for each placement.
type ArrowOrientation interface {
	SetPreferred(style *dom.CSSStyleDeclaration)
	SetOpposite(style *dom.CSSStyleDeclaration)
}

// WithArrow orients the arrow after the side the fit decision picked.
func WithArrow(o ArrowOrientation) ArrowStrategy {
	return withArrow{orientation: o}
}

// WithoutArrow leaves arrow styles alone.
func WithoutArrow() ArrowStrategy {
	return withoutArrow{}
}

type withArrow struct {
	orientation ArrowOrientation
}

func (a withArrow) SetArrowDirection(s *Session) {
	if s.fitsPreferredDirection {
		a.orientation.SetPreferred(s.anchor.Style())
	} else {
		a.orientation.SetOpposite(s.anchor.Style())
	}
}

type withoutArrow struct{}

func (withoutArrow) SetArrowDirection(*Session) {}

// VerticalArrow orients the arrow for a target above the anchor (preferred)
// or below it.
type VerticalArrow struct{}

func (VerticalArrow) SetPreferred(style *dom.CSSStyleDeclaration) {
	style.SetProperty(PropArrowTop, "auto")
	style.SetProperty(PropArrowDirection, "180deg")
}

func (VerticalArrow) SetOpposite(style *dom.CSSStyleDeclaration) {
	style.SetProperty(PropArrowTop, "100%")
	style.SetProperty(PropArrowDirection, "0")
}

// HorizontalArrow orients the arrow for a target right of the anchor
// (preferred) or left of it.
type HorizontalArrow struct{}

func (HorizontalArrow) SetPreferred(style *dom.CSSStyleDeclaration) {
	style.SetProperty(PropArrowLeft, "100%")
	style.SetProperty(PropArrowDirection, "-90deg")
}

func (HorizontalArrow) SetOpposite(style *dom.CSSStyleDeclaration) {
	style.SetProperty(PropArrowLeft, "auto")
	style.SetProperty(PropArrowDirection, "90deg")
}
