package js

import (
	"testing"
)

const bindingsMarkup = `<body>
<button id="anchor" data-rect="100 200 80 30">Save</button>
<div id="tip" data-rect="0 0 40 50" hidden>Saved</div>
</body>`

func TestGetElementById(t *testing.T) {
	r := newTestRuntime(t, bindingsMarkup)

	result, err := r.Execute(`
		var a = document.getElementById("anchor");
		[a.tagName, a.id, a.textContent, document.getElementById("missing") === null,
		 a === document.getElementById("anchor")].join(",")
	`)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if result.String() != "BUTTON,anchor,Save,true,true" {
		t.Errorf("Expected 'BUTTON,anchor,Save,true,true', got %q", result.String())
	}
}

func TestGetBoundingClientRect(t *testing.T) {
	r := newTestRuntime(t, bindingsMarkup)

	result, err := r.Execute(`
		var rect = document.getElementById("anchor").getBoundingClientRect();
		[rect.top, rect.right, rect.bottom, rect.left, rect.width, rect.height].join(",")
	`)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if result.String() != "200,180,230,100,80,30" {
		t.Errorf("Expected '200,180,230,100,80,30', got %q", result.String())
	}

	result, _ = r.Execute(`document.getElementById("tip").getBoundingClientRect().height`)
	if result.ToFloat() != 0 {
		t.Errorf("Expected hidden element to measure 0 high, got %v", result.ToFloat())
	}
}

func TestStyleCustomProperties(t *testing.T) {
	r := newTestRuntime(t, bindingsMarkup)

	result, err := r.Execute(`
		var s = document.getElementById("tip").style;
		s.setProperty("--target-top", "clamp(0px, 10px, calc(100% - 50px))");
		s.setProperty("color", "red");
		var before = s.getPropertyValue("--target-top");
		s.removeProperty("color");
		before + "|" + s.cssText + "|" + s.length
	`)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	want := "clamp(0px, 10px, calc(100% - 50px))|--target-top: clamp(0px, 10px, calc(100% - 50px))|1"
	if result.String() != want {
		t.Errorf("Expected %q, got %q", want, result.String())
	}
}

func TestAttributes(t *testing.T) {
	r := newTestRuntime(t, bindingsMarkup)

	result, err := r.Execute(`
		var tip = document.getElementById("tip");
		var out = [tip.hidden, tip.getAttribute("nope") === null];
		tip.toggleAttribute("hidden");
		out.push(tip.hasAttribute("hidden"));
		tip.setAttribute("data-state", "open");
		out.push(tip.getAttribute("data-state"));
		tip.removeAttribute("data-state");
		out.push(tip.hasAttribute("data-state"));
		tip.hidden = true;
		out.push(tip.hidden);
		out.join(",")
	`)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if result.String() != "true,true,false,open,false,true" {
		t.Errorf("Expected 'true,true,false,open,false,true', got %q", result.String())
	}
}

func TestInvalidAttributeThrows(t *testing.T) {
	r := newTestRuntime(t, bindingsMarkup)

	result, err := r.Execute(`
		var name;
		try { document.getElementById("tip").setAttribute("a b", "x"); } catch (e) { name = e.name; }
		name
	`)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if result.String() != "InvalidCharacterError" {
		t.Errorf("Expected InvalidCharacterError, got %q", result.String())
	}
}

func TestCreateAndAppend(t *testing.T) {
	r := newTestRuntime(t, bindingsMarkup)

	result, err := r.Execute(`
		var el = document.createElement("section");
		el.id = "late";
		document.body.appendChild(el);
		var connected = document.getElementById("late").isConnected;
		el.remove();
		connected + "," + el.isConnected + "," + (el.parentElement === null)
	`)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if result.String() != "true,false,true" {
		t.Errorf("Expected 'true,false,true', got %q", result.String())
	}
}

func TestNodeTraversal(t *testing.T) {
	r := newTestRuntime(t, bindingsMarkup)

	result, err := r.Execute(`
		var tip = document.getElementById("tip");
		var body = document.body;
		[tip.nodeName, document.nodeName, tip.parentNode === body,
		 body.parentNode.parentNode === document, document.documentElement.parentElement === null,
		 tip.ownerDocument === document, body.children.length, body.children[1] === tip,
		 tip.getAttributeNames().join(" ")].join(",")
	`)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	want := "DIV,#document,true,true,true,true,2,true,id data-rect hidden"
	if result.String() != want {
		t.Errorf("Expected %q, got %q", want, result.String())
	}

	result, _ = r.Execute(`document.createElement("p").parentNode === null`)
	if !result.ToBoolean() {
		t.Error("Expected a detached element to have a null parentNode")
	}
}
