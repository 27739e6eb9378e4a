package position

import (
	"testing"

	"github.com/chrisuehlinger/anchorpos/css"
	"github.com/chrisuehlinger/anchorpos/dom"
	"github.com/chrisuehlinger/anchorpos/host"
)

type fixture struct {
	win    *host.Window
	anchor *dom.Element
	target *dom.Element
}

func newFixture(vw, vh float64, anchor, target dom.ElementGeometry, opts ...host.WindowOption) *fixture {
	doc := dom.NewDocument()
	root := doc.CreateElement("html")
	doc.AppendChild(root.AsNode())
	body := doc.CreateElement("body")
	root.AppendChild(body)

	a := doc.CreateElement("button")
	a.SetId("anchor")
	a.SetGeometry(&anchor)
	body.AppendChild(a)

	tg := doc.CreateElement("div")
	tg.SetId("target")
	tg.SetGeometry(&target)
	body.AppendChild(tg)

	return &fixture{
		win:    host.NewWindow(doc, vw, vh, opts...),
		anchor: a,
		target: tg,
	}
}

// position runs the positioner and flushes frames until it has settled.
func (f *fixture) position(t *testing.T, s Strategy) (CancelFunc, bool) {
	t.Helper()
	settled := false
	fits := false
	cancel := Position(f.win, f.target, f.anchor, s, func(ok bool) {
		settled = true
		fits = ok
	})
	f.win.FlushFrames(10)
	if !settled {
		t.Fatal("Expected settle callback to run")
	}
	return cancel, fits
}

func clampOf(t *testing.T, el *dom.Element, prop string) css.Clamp {
	t.Helper()
	v := el.Style().GetPropertyValue(prop)
	c, err := css.ParseClamp(v)
	if err != nil {
		t.Fatalf("Expected clamp() in %s, got %q: %v", prop, v, err)
	}
	return c
}

func topOf(t *testing.T, f *fixture) float64 {
	t.Helper()
	return clampOf(t, f.target, PropTargetTop).Value
}

func leftOf(t *testing.T, f *fixture) float64 {
	t.Helper()
	return clampOf(t, f.target, PropTargetLeft).Value
}

// fakeHost is a Host whose size can change without a resize event.
type fakeHost struct {
	*host.EventTarget
	width, height float64
	frames        []func()
}

func newFakeHost(w, h float64) *fakeHost {
	return &fakeHost{EventTarget: host.NewEventTarget(), width: w, height: h}
}

func (h *fakeHost) ClientWidth() float64 { return h.width }
func (h *fakeHost) ClientHeight() float64 { return h.height }
func (h *fakeHost) ScrollX() float64 { return 0 }
func (h *fakeHost) ScrollY() float64 { return 0 }
func (h *fakeHost) VisualViewport() *host.VisualViewport { return nil }

func (h *fakeHost) RequestAnimationFrame(fn func()) int {
	h.frames = append(h.frames, fn)
	return len(h.frames)
}

func (h *fakeHost) runFrame() {
	frames := h.frames
	h.frames = nil
	for _, fn := range frames {
		fn()
	}
}
