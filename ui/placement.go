package ui

import (
	"fyne.io/fyne/v2"

	"github.com/chrisuehlinger/anchorpos/css"
	"github.com/chrisuehlinger/anchorpos/dom"
	"github.com/chrisuehlinger/anchorpos/position"
)

// Placement is where the bubble is drawn, in viewport coordinates.
type Placement struct {
	Pos fyne.Position
	// Placed is false until the positioner has written a top.
	Placed bool
}

// resolveProp evaluates a clamp() custom property of el against a
// container size. ok is false when the property is unset or malformed.
func resolveProp(el *dom.Element, prop string, container float64) (v float64, ok bool) {
	c, err := css.ParseClamp(el.Style().GetPropertyValue(prop))
	if err != nil {
		return 0, false
	}
	return c.Resolve(container), true
}

// PlacementOf computes the bubble position from the properties written on
// target. Strategies that leave the horizontal position to styles get
// fallbackX.
func PlacementOf(target *dom.Element, viewport fyne.Size, fallbackX float32) Placement {
	top, ok := resolveProp(target, position.PropTargetTop, float64(viewport.Height))
	if !ok {
		return Placement{}
	}
	left, ok := resolveProp(target, position.PropTargetLeft, float64(viewport.Width))
	if !ok {
		left = float64(fallbackX)
	}
	return Placement{Pos: fyne.NewPos(float32(left), float32(top)), Placed: true}
}

// viewportGeometry converts a widget's position in the scrolled content to
// a box relative to the visible viewport.
func viewportGeometry(pos fyne.Position, size fyne.Size, offset fyne.Position) *dom.ElementGeometry {
	return &dom.ElementGeometry{
		X:      float64(pos.X - offset.X),
		Y:      float64(pos.Y - offset.Y),
		Width:  float64(size.Width),
		Height: float64(size.Height),
	}
}

// arrowSummary describes the arrow properties on the anchor for the status
// line, or "" when the strategy has no arrow.
func arrowSummary(anchor *dom.Element) string {
	style := anchor.Style()
	dir := style.GetPropertyValue(position.PropArrowDirection)
	if dir == "" {
		return ""
	}
	if top := style.GetPropertyValue(position.PropArrowTop); top != "" {
		return "arrow top " + top + ", " + dir
	}
	return "arrow left " + style.GetPropertyValue(position.PropArrowLeft) + ", " + dir
}

// clearPlacement removes what an earlier strategy wrote, so a strategy that
// writes fewer properties does not inherit stale ones.
func clearPlacement(target, anchor *dom.Element) {
	for _, prop := range []string{position.PropTargetTop, position.PropTargetLeft} {
		target.Style().RemoveProperty(prop)
	}
	for _, prop := range []string{position.PropArrowTop, position.PropArrowLeft, position.PropArrowDirection} {
		anchor.Style().RemoveProperty(prop)
	}
}
