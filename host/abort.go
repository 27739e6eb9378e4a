package host

import "sync"

// AbortSignal reports cancellation to the listeners registered under it.
type AbortSignal struct {
	mu       sync.Mutex
	aborted  bool
	handlers []func()
}

// Aborted reports whether the signal has been aborted.
func (s *AbortSignal) Aborted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.aborted
}

// onAbort registers fn to run on abort, or runs it now if already aborted.
func (s *AbortSignal) onAbort(fn func()) {
	s.mu.Lock()
	if !s.aborted {
		s.handlers = append(s.handlers, fn)
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()
	fn()
}

// AbortController owns an AbortSignal.
type AbortController struct {
	signal *AbortSignal
}

// NewAbortController creates a controller with a fresh signal.
func NewAbortController() *AbortController {
	return &AbortController{signal: &AbortSignal{}}
}

// Signal returns the controller's signal.
func (c *AbortController) Signal() *AbortSignal {
	return c.signal
}

// Abort aborts the signal and synchronously removes every listener
// registered with it. Calling Abort more than once is a no-op.
func (c *AbortController) Abort() {
	s := c.signal
	s.mu.Lock()
	if s.aborted {
		s.mu.Unlock()
		return
	}
	s.aborted = true
	handlers := s.handlers
	s.handlers = nil
	s.mu.Unlock()

	for _, fn := range handlers {
		fn()
	}
}
