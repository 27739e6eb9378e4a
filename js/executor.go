package js

import (
	"fmt"
	"strings"

	"github.com/chrisuehlinger/anchorpos/html"
)

// DefaultFrameLimit bounds how many frames Settle runs. Positioning needs
// two; the rest is headroom for scripts that chain frames.
const DefaultFrameLimit = 100

// ScriptLoader fetches the source of an external script. url names the
// script in stack traces.
type ScriptLoader func(src string) (code, url string, err error)

// ScriptExecutor runs a document's scripts the way a page load does:
// scripts in document order, then the load event, then animation frames
// until the page is idle.
type ScriptExecutor struct {
	runtime    *Runtime
	loader     ScriptLoader
	frameLimit int
}

// NewScriptExecutor creates a new script executor.
func NewScriptExecutor(runtime *Runtime) *ScriptExecutor {
	return &ScriptExecutor{runtime: runtime, frameLimit: DefaultFrameLimit}
}

// Runtime returns the runtime scripts execute in.
func (se *ScriptExecutor) Runtime() *Runtime {
	return se.runtime
}

// SetFrameLimit changes the number of frames Settle runs at most.
func (se *ScriptExecutor) SetFrameLimit(n int) {
	if n > 0 {
		se.frameLimit = n
	}
}

// SetLoader sets the loader for scripts with a src attribute. Without one
// they are skipped.
func (se *ScriptExecutor) SetLoader(loader ScriptLoader) {
	se.loader = loader
}

// ExecuteScripts runs the document's scripts in document order. A failing
// script does not stop the ones after it.
func (se *ScriptExecutor) ExecuteScripts() []error {
	var errors []error
	for i, script := range html.Scripts(se.runtime.win.Document()) {
		if script.Src != "" {
			if err := se.executeExternal(script.Src); err != nil {
				errors = append(errors, err)
			}
			continue
		}
		if strings.TrimSpace(script.Text) == "" {
			continue
		}
		if err := se.runtime.ExecuteScript(script.Text, fmt.Sprintf("inline-%d", i+1)); err != nil {
			errors = append(errors, err)
		}
	}
	return errors
}

func (se *ScriptExecutor) executeExternal(src string) error {
	if se.loader == nil {
		se.runtime.logger.Debug("Skipping external script", "src", src)
		return nil
	}
	code, url, err := se.loader(src)
	if err != nil {
		err = fmt.Errorf("load script %s: %w", src, err)
		se.runtime.mu.Lock()
		se.runtime.recordError(err)
		se.runtime.mu.Unlock()
		return err
	}
	return se.runtime.ExecuteScript(code, url)
}

// ExecuteExternalScript runs code loaded from scriptURL.
func (se *ScriptExecutor) ExecuteExternalScript(content, scriptURL string) error {
	return se.runtime.ExecuteScript(content, scriptURL)
}

// DispatchLoadEvent fires load on the window.
func (se *ScriptExecutor) DispatchLoadEvent() {
	r := se.runtime
	r.mu.Lock()
	defer r.mu.Unlock()
	r.win.Load()
}

// Settle runs animation frames until none are pending or the frame limit
// is reached, and reports whether the page went idle.
func (se *ScriptExecutor) Settle() bool {
	se.runtime.FlushFrames(se.frameLimit)
	return se.runtime.win.PendingFrames() == 0
}
