package js

import (
	"errors"
	"testing"

	"github.com/chrisuehlinger/anchorpos/position"
)

func TestExecuteScriptsAndSettle(t *testing.T) {
	r := newTestRuntime(t, `<body>
<button id="anchor" data-rect="100 200 80 30">Open</button>
<div id="menu" data-rect="0 0 150 100" hidden>Menu</div>
<script>
	var loaded = false;
	addEventListener("load", function () { loaded = true; });
</script>
<script>this is not javascript</script>
<script>
	position(document.getElementById("menu"), document.getElementById("anchor"), dropdownPositionStrategy);
</script>
</body>`)
	se := NewScriptExecutor(r)

	errs := se.ExecuteScripts()
	if len(errs) != 1 {
		t.Errorf("Expected 1 script error, got %d: %v", len(errs), errs)
	}

	se.DispatchLoadEvent()
	if !se.Settle() {
		t.Error("Expected the page to go idle")
	}

	result, _ := r.Execute(`loaded`)
	if !result.ToBoolean() {
		t.Error("Expected load listener to run")
	}
	if got := clampValue(t, r, "menu", position.PropTargetTop); got != 230 {
		t.Errorf("Expected menu top 230, got %v", got)
	}
}

func TestSettleStopsAtFrameLimit(t *testing.T) {
	r := newTestRuntime(t, `<body></body>`)
	se := NewScriptExecutor(r)
	se.SetFrameLimit(3)

	if err := se.ExecuteExternalScript(`
		var n = 0;
		function tick() { n++; requestAnimationFrame(tick); }
		requestAnimationFrame(tick);
	`, "loop.js"); err != nil {
		t.Fatalf("ExecuteExternalScript failed: %v", err)
	}

	if se.Settle() {
		t.Error("Expected an endless frame loop not to go idle")
	}
	result, _ := r.Execute(`n`)
	if result.ToInteger() != 3 {
		t.Errorf("Expected 3 frames, got %v", result.ToInteger())
	}
}

func TestExecuteExternalScripts(t *testing.T) {
	r := newTestRuntime(t, `<body>
<script>var order = ["inline"];</script>
<script src="menu.js"></script>
<script src="missing.js"></script>
<script>order.push("last");</script>
</body>`)
	se := NewScriptExecutor(r)
	se.SetLoader(func(src string) (string, string, error) {
		if src == "menu.js" {
			return `order.push("menu");`, "http://example.com/" + src, nil
		}
		return "", "", errors.New("not found")
	})

	errs := se.ExecuteScripts()
	if len(errs) != 1 {
		t.Fatalf("Expected 1 load error, got %d: %v", len(errs), errs)
	}
	if len(r.Errors()) != 1 {
		t.Errorf("Expected the load error to be recorded, got %v", r.Errors())
	}

	result, _ := r.Execute(`order.join(",")`)
	if result.String() != "inline,menu,last" {
		t.Errorf("Expected 'inline,menu,last', got %q", result.String())
	}
}

func TestExternalScriptsSkippedWithoutLoader(t *testing.T) {
	r := newTestRuntime(t, `<body><script src="menu.js"></script><script>var ran = true;</script></body>`)

	if errs := NewScriptExecutor(r).ExecuteScripts(); len(errs) != 0 {
		t.Errorf("Expected no errors, got %v", errs)
	}
	result, _ := r.Execute(`ran`)
	if !result.ToBoolean() {
		t.Error("Expected the inline script to run")
	}
}
