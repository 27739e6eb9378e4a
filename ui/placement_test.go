package ui

import (
	"testing"

	"fyne.io/fyne/v2"

	"github.com/chrisuehlinger/anchorpos/dom"
	"github.com/chrisuehlinger/anchorpos/position"
)

func TestPlacementOf(t *testing.T) {
	doc := dom.NewDocument()
	tip := doc.CreateElement("div")

	if p := PlacementOf(tip, fyne.NewSize(800, 600), 10); p.Placed {
		t.Errorf("Expected no placement before the positioner wrote one, got %+v", p)
	}

	tip.Style().SetProperty(position.PropTargetTop, "clamp(0px, 580px, calc(100% - 50px))")
	tip.Style().SetProperty(position.PropTargetLeft, "clamp(0px, -20px, calc(100% - 40px))")

	p := PlacementOf(tip, fyne.NewSize(800, 600), 10)
	if !p.Placed {
		t.Fatal("Expected a placement")
	}
	if p.Pos.Y != 550 {
		t.Errorf("Expected top clamped to 550, got %v", p.Pos.Y)
	}
	if p.Pos.X != 0 {
		t.Errorf("Expected left clamped to 0, got %v", p.Pos.X)
	}
}

func TestPlacementOfWithoutLeft(t *testing.T) {
	doc := dom.NewDocument()
	tip := doc.CreateElement("div")
	tip.Style().SetProperty(position.PropTargetTop, "clamp(0px, 100px, calc(100% - 50px))")

	p := PlacementOf(tip, fyne.NewSize(800, 600), 42)
	if p.Pos.X != 42 || p.Pos.Y != 100 {
		t.Errorf("Expected (42, 100), got (%v, %v)", p.Pos.X, p.Pos.Y)
	}
}

func TestViewportGeometry(t *testing.T) {
	g := viewportGeometry(fyne.NewPos(300, 900), fyne.NewSize(120, 36), fyne.NewPos(50, 700))
	if g.X != 250 || g.Y != 200 || g.Width != 120 || g.Height != 36 {
		t.Errorf("Expected (250, 200, 120, 36), got %+v", *g)
	}
}

func TestArrowSummary(t *testing.T) {
	doc := dom.NewDocument()
	anchor := doc.CreateElement("button")
	if got := arrowSummary(anchor); got != "" {
		t.Errorf("Expected empty summary, got %q", got)
	}

	anchor.Style().SetProperty(position.PropArrowTop, "auto")
	anchor.Style().SetProperty(position.PropArrowDirection, "180deg")
	if got := arrowSummary(anchor); got != "arrow top auto, 180deg" {
		t.Errorf("Expected 'arrow top auto, 180deg', got %q", got)
	}
}

func TestClearPlacementDropsStaleArrow(t *testing.T) {
	doc := dom.NewDocument()
	anchor := doc.CreateElement("button")
	tip := doc.CreateElement("div")
	anchor.Style().SetProperty(position.PropArrowLeft, "auto")
	anchor.Style().SetProperty(position.PropArrowDirection, "90deg")
	anchor.Style().SetProperty("color", "red")
	tip.Style().SetProperty(position.PropTargetTop, "clamp(0px, 100px, calc(100% - 50px))")
	tip.Style().SetProperty(position.PropTargetLeft, "clamp(0px, 30px, calc(100% - 40px))")
	tip.Style().SetProperty(position.PropAnchorWidth, "80px")

	clearPlacement(tip, anchor)

	if got := arrowSummary(anchor); got != "" {
		t.Errorf("Expected no arrow after clearing, got %q", got)
	}
	if anchor.Style().GetPropertyValue("color") != "red" {
		t.Error("Expected unrelated anchor styles to survive")
	}
	if p := PlacementOf(tip, fyne.NewSize(800, 600), 42); p.Placed {
		t.Errorf("Expected no placement after clearing, got %+v", p)
	}
	if tip.Style().GetPropertyValue(position.PropAnchorWidth) != "80px" {
		t.Error("Expected anchor size hints to survive")
	}
}

func TestViewportLayoutReportsSize(t *testing.T) {
	var got []fyne.Size
	l := &viewportLayout{onResize: func(s fyne.Size) { got = append(got, s) }}

	l.Layout(nil, fyne.NewSize(640, 480))
	if len(got) != 1 || got[0] != fyne.NewSize(640, 480) {
		t.Errorf("Expected one resize to 640x480, got %v", got)
	}
	if min := l.MinSize(nil); min.Width <= 0 || min.Height <= 0 {
		t.Errorf("Expected a positive minimum size, got %v", min)
	}
}
