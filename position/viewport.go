package position

import (
	"sync"

	"github.com/chrisuehlinger/anchorpos/host"
)

// ViewportTracker holds the last known layout viewport size of a host.
// It is refreshed synchronously on resize and once after load; between
// those events it may be stale.
type ViewportTracker struct {
	host Host
	stop *host.AbortController

	mu            sync.RWMutex
	width, height float64
}

// NewViewportTracker creates a tracker and subscribes it to h.
func NewViewportTracker(h Host) *ViewportTracker {
	t := &ViewportTracker{host: h, stop: host.NewAbortController()}
	t.refresh()
	signal := t.stop.Signal()
	h.AddEventListener(host.EventResize, func(host.Event) { t.refresh() }, host.ListenerOptions{Signal: signal})
	h.AddEventListener(host.EventLoad, func(host.Event) {
		h.RequestAnimationFrame(t.refresh)
	}, host.ListenerOptions{Once: true, Signal: signal})
	return t
}

// Close unsubscribes the tracker from its host. The last size is kept.
func (t *ViewportTracker) Close() {
	t.stop.Abort()
}

// Size returns the viewport width and height.
func (t *ViewportTracker) Size() (width, height float64) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.width, t.height
}

// Width returns the viewport width.
func (t *ViewportTracker) Width() float64 {
	w, _ := t.Size()
	return w
}

// Height returns the viewport height.
func (t *ViewportTracker) Height() float64 {
	_, h := t.Size()
	return h
}

func (t *ViewportTracker) refresh() {
	w, h := t.host.ClientWidth(), t.host.ClientHeight()
	t.mu.Lock()
	t.width, t.height = w, h
	t.mu.Unlock()
}

// ambient is the per-host state shared by every session on that host.
type ambient struct {
	viewport *ViewportTracker
	coords   CoordinateAdapter
}

var (
	ambientMu sync.Mutex
	ambients  = make(map[Host]*ambient)
)

// ambientFor returns the shared state for h, creating it on first use.
func ambientFor(h Host) *ambient {
	ambientMu.Lock()
	defer ambientMu.Unlock()
	if a, ok := ambients[h]; ok {
		return a
	}
	a := &ambient{
		viewport: NewViewportTracker(h),
		coords:   NewCoordinateAdapter(h),
	}
	ambients[h] = a
	return a
}

// Forget drops the shared state kept for h and unsubscribes its viewport
// tracker. Sessions that are still active keep placing against the last
// tracked size; the next Position call on h starts fresh.
func Forget(h Host) {
	ambientMu.Lock()
	defer ambientMu.Unlock()
	if a, ok := ambients[h]; ok {
		a.viewport.Close()
		delete(ambients, h)
	}
}
