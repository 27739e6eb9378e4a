package host

import (
	"sync"

	"github.com/chrisuehlinger/anchorpos/dom"
)

// Window is a headless browser window.
//
// Element geometry in the document is relative to the layout viewport, so
// ScrollTo moves every element box by the scroll delta, as a page scroll
// does in a browser.
type Window struct {
	*EventTarget

	document *dom.Document
	visual   *VisualViewport
	frames   *frameQueue

	mu               sync.RWMutex
	width, height    float64
	scrollX, scrollY float64
}

// WindowOption configures a Window.
type WindowOption func(*Window)

// WithVisualViewport gives the window a visual viewport, as on platforms
// that expose window.visualViewport.
func WithVisualViewport() WindowOption {
	return func(w *Window) {
		w.visual = newVisualViewport(w.width, w.height)
	}
}

// NewWindow creates a window showing doc with a layout viewport of the given size.
func NewWindow(doc *dom.Document, width, height float64, opts ...WindowOption) *Window {
	if doc == nil {
		doc = dom.NewDocument()
	}
	w := &Window{
		EventTarget: NewEventTarget(),
		document:    doc,
		frames:      &frameQueue{},
		width:       width,
		height:      height,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Document returns the window's document.
func (w *Window) Document() *dom.Document {
	return w.document
}

// ClientWidth returns the layout viewport width (documentElement.clientWidth).
func (w *Window) ClientWidth() float64 {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.width
}

// ClientHeight returns the layout viewport height (documentElement.clientHeight).
func (w *Window) ClientHeight() float64 {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.height
}

// ScrollX returns the horizontal page scroll offset.
func (w *Window) ScrollX() float64 {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.scrollX
}

// ScrollY returns the vertical page scroll offset.
func (w *Window) ScrollY() float64 {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.scrollY
}

// VisualViewport returns the visual viewport, or nil when unsupported.
func (w *Window) VisualViewport() *VisualViewport {
	return w.visual
}

// Load fires the load event.
func (w *Window) Load() {
	w.DispatchEvent(EventLoad)
}

// Resize changes the layout viewport size and fires resize.
func (w *Window) Resize(width, height float64) {
	w.mu.Lock()
	w.width, w.height = width, height
	w.mu.Unlock()
	w.DispatchEvent(EventResize)
}

// ScrollTo scrolls the page, shifts element boxes accordingly and fires
// scroll. Negative offsets are clamped to zero.
func (w *Window) ScrollTo(x, y float64) {
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	w.mu.Lock()
	dx, dy := x-w.scrollX, y-w.scrollY
	w.scrollX, w.scrollY = x, y
	w.mu.Unlock()

	if dx == 0 && dy == 0 {
		return
	}
	w.document.Walk(func(el *dom.Element) bool {
		if g := el.Geometry(); g != nil {
			g.X -= dx
			g.Y -= dy
		}
		return true
	})
	w.DispatchEvent(EventScroll)
}

// ScrollBy scrolls relative to the current offsets.
func (w *Window) ScrollBy(dx, dy float64) {
	w.ScrollTo(w.ScrollX()+dx, w.ScrollY()+dy)
}

// RequestAnimationFrame queues fn for the next RunFrame and returns its id.
func (w *Window) RequestAnimationFrame(fn func()) int {
	return w.frames.request(fn)
}

// CancelAnimationFrame removes a queued callback.
func (w *Window) CancelAnimationFrame(id int) {
	w.frames.cancel(id)
}

// RunFrame runs one rendering opportunity and returns the number of
// callbacks it ran.
func (w *Window) RunFrame() int {
	return w.frames.run()
}

// PendingFrames returns the number of callbacks waiting for the next frame.
func (w *Window) PendingFrames() int {
	return w.frames.pending()
}

// FlushFrames runs frames until none are pending or limit frames have run,
// and returns the number of frames run.
func (w *Window) FlushFrames(limit int) int {
	n := 0
	for n < limit && w.frames.pending() > 0 {
		w.frames.run()
		n++
	}
	return n
}

// VisualViewport is the visible part of the layout viewport, which shrinks
// and shifts while an on-screen keyboard or similar overlay is shown.
type VisualViewport struct {
	*EventTarget

	mu                    sync.RWMutex
	offsetTop, offsetLeft float64
	width, height         float64
}

func newVisualViewport(width, height float64) *VisualViewport {
	return &VisualViewport{
		EventTarget: NewEventTarget(),
		width:       width,
		height:      height,
	}
}

// OffsetTop returns the offset of the visual viewport from the top of the layout viewport.
func (v *VisualViewport) OffsetTop() float64 {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.offsetTop
}

// OffsetLeft returns the offset of the visual viewport from the left of the layout viewport.
func (v *VisualViewport) OffsetLeft() float64 {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.offsetLeft
}

// Width returns the visual viewport width.
func (v *VisualViewport) Width() float64 {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.width
}

// Height returns the visual viewport height.
func (v *VisualViewport) Height() float64 {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.height
}

// Resize changes the visual viewport size and fires resize.
func (v *VisualViewport) Resize(width, height float64) {
	v.mu.Lock()
	v.width, v.height = width, height
	v.mu.Unlock()
	v.DispatchEvent(EventResize)
}

// SetOffset moves the visual viewport and fires scroll. Browsers fire this
// event once, after the visual viewport has settled.
func (v *VisualViewport) SetOffset(left, top float64) {
	v.mu.Lock()
	v.offsetLeft, v.offsetTop = left, top
	v.mu.Unlock()
	v.DispatchEvent(EventScroll)
}
