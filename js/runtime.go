// Package js runs JavaScript against a headless host window using the goja
// engine (pure Go ES5.1+ implementation).
//
// Scripts see document, window, requestAnimationFrame, the four positioning
// strategy objects and position(), which is the same API the positioner
// offers to Go callers.
package js

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/dop251/goja"

	"github.com/chrisuehlinger/anchorpos/host"
)

// Runtime wraps a goja JavaScript runtime bound to one host window.
//
// Callbacks registered by scripts run when the window fires events or runs
// frames. Drive the window through RunFrame and FlushFrames, or from the
// goroutine that executes scripts; goja runtimes are not safe for
// concurrent use.
type Runtime struct {
	vm      *goja.Runtime
	win     *host.Window
	binder  *DOMBinder
	logger  *log.Logger
	mu      sync.Mutex
	errors  []error
	onError func(error)
}

// Option configures a Runtime.
type Option func(*Runtime)

// WithLogger routes console output and positioning debug logs to l.
func WithLogger(l *log.Logger) Option {
	return func(r *Runtime) {
		if l != nil {
			r.logger = l
		}
	}
}

// NewRuntime creates a runtime for win. A nil window gets an empty
// document in a 1024x768 viewport.
func NewRuntime(win *host.Window, opts ...Option) *Runtime {
	if win == nil {
		win = host.NewWindow(nil, 1024, 768)
	}
	r := &Runtime{
		vm:     goja.New(),
		win:    win,
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.binder = NewDOMBinder(r)

	r.setupConsole()
	r.setupWindow()
	r.setupFrames()
	r.setupPositioning()
	r.vm.Set("document", r.binder.BindDocument(win.Document()))

	return r
}

// VM returns the underlying goja runtime.
func (r *Runtime) VM() *goja.Runtime {
	return r.vm
}

// Window returns the host window scripts run against.
func (r *Runtime) Window() *host.Window {
	return r.win
}

// SetOnError sets a callback for JavaScript errors, including errors thrown
// by event and frame callbacks.
func (r *Runtime) SetOnError(handler func(error)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onError = handler
}

// Execute runs JavaScript code and returns the result.
func (r *Runtime) Execute(code string) (result goja.Value, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Recover from panics in the goja parser/runtime
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("script execution panic: %v", p)
			r.recordError(err)
		}
	}()

	result, err = r.vm.RunString(code)
	if err != nil {
		r.recordError(err)
	}
	return result, err
}

// ExecuteScript compiles and runs code in sloppy mode, naming it src in
// stack traces.
func (r *Runtime) ExecuteScript(code, src string) (err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("script compilation panic in %s: %v", src, p)
			r.recordError(err)
		}
	}()

	program, err := goja.Compile(src, code, false)
	if err != nil {
		r.recordError(err)
		return err
	}

	_, err = r.vm.RunProgram(program)
	if err != nil {
		r.recordError(err)
	}
	return err
}

// RunFrame runs one animation frame of the window.
func (r *Runtime) RunFrame() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.win.RunFrame()
}

// FlushFrames runs frames until none are pending or limit frames have run.
func (r *Runtime) FlushFrames(limit int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.win.FlushFrames(limit)
}

// Errors returns all errors that occurred during execution.
func (r *Runtime) Errors() []error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]error{}, r.errors...)
}

// ClearErrors clears the error list.
func (r *Runtime) ClearErrors() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errors = r.errors[:0]
}

// recordError must be called with r.mu held or from inside a callback.
func (r *Runtime) recordError(err error) {
	r.errors = append(r.errors, err)
	if r.onError != nil {
		r.onError(err)
	}
}

// invoke calls a script callback from Go. Exceptions are recorded instead
// of propagating into the host's dispatch loop.
func (r *Runtime) invoke(fn goja.Callable, args ...goja.Value) {
	defer func() {
		if p := recover(); p != nil {
			r.recordError(fmt.Errorf("callback panic: %v", p))
		}
	}()
	if _, err := fn(goja.Undefined(), args...); err != nil {
		r.recordError(err)
	}
}

// setupConsole creates the console object. Output goes to the logger at the
// matching level.
func (r *Runtime) setupConsole() {
	console := r.vm.NewObject()

	logAt := func(level log.Level) func(goja.FunctionCall) goja.Value {
		return func(call goja.FunctionCall) goja.Value {
			r.logger.Log(level, formatArgs(call.Arguments), "source", "console")
			return goja.Undefined()
		}
	}
	console.Set("log", logAt(log.InfoLevel))
	console.Set("info", logAt(log.InfoLevel))
	console.Set("warn", logAt(log.WarnLevel))
	console.Set("error", logAt(log.ErrorLevel))
	console.Set("debug", logAt(log.DebugLevel))
	console.Set("trace", logAt(log.DebugLevel))

	console.Set("assert", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) == 0 || !call.Arguments[0].ToBoolean() {
			msg := "Assertion failed"
			if len(call.Arguments) > 1 {
				msg += ": " + formatArgs(call.Arguments[1:])
			}
			r.logger.Error(msg, "source", "console")
		}
		return goja.Undefined()
	})

	counts := make(map[string]int)
	console.Set("count", func(call goja.FunctionCall) goja.Value {
		label := "default"
		if len(call.Arguments) > 0 {
			label = call.Arguments[0].String()
		}
		counts[label]++
		r.logger.Info(fmt.Sprintf("%s: %d", label, counts[label]), "source", "console")
		return goja.Undefined()
	})

	r.vm.Set("console", console)
}

// formatArgs formats function call arguments for console output.
func formatArgs(args []goja.Value) string {
	parts := make([]string, len(args))
	for i, arg := range args {
		parts[i] = formatValue(arg)
	}
	return strings.Join(parts, " ")
}

// formatValue formats a single value for output.
func formatValue(v goja.Value) string {
	if v == nil || goja.IsUndefined(v) {
		return "undefined"
	}
	if goja.IsNull(v) {
		return "null"
	}
	return v.String()
}
