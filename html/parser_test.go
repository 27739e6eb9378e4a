package html

import (
	"strings"
	"testing"

	"github.com/chrisuehlinger/anchorpos/dom"
)

func TestParse_BasicDocument(t *testing.T) {
	input := `<!DOCTYPE html>
<html>
<head><title>Test</title></head>
<body><p>Hello, World!</p></body>
</html>`

	doc, err := Parse(input)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	root := doc.DocumentElement()
	if root == nil || root.LocalName() != "html" {
		t.Fatalf("Expected html document element, got %v", root)
	}
	body := doc.Body()
	if body == nil {
		t.Fatal("Missing body element")
	}
	if got := strings.TrimSpace(body.TextContent()); got != "Hello, World!" {
		t.Errorf("Expected body text 'Hello, World!', got %q", got)
	}
}

func TestParse_MalformedHTML(t *testing.T) {
	// The HTML5 parser fixes up the structure instead of failing
	doc, err := Parse(`<p>unclosed paragraph<div>nested div</p></div>`)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if doc.Body() == nil {
		t.Fatal("Expected an implied body")
	}
}

func TestParse_Attributes(t *testing.T) {
	doc, err := Parse(`<div id="main" class="container" data-value="123" hidden>content</div>`)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	div := doc.GetElementById("main")
	if div == nil {
		t.Fatal("Could not find div#main")
	}
	if div.GetAttribute("class") != "container" {
		t.Errorf("Expected class 'container', got %q", div.GetAttribute("class"))
	}
	if div.GetAttribute("data-value") != "123" {
		t.Errorf("Expected data-value '123', got %q", div.GetAttribute("data-value"))
	}
	if !div.HasAttribute("hidden") {
		t.Error("Expected hidden attribute")
	}
}

func TestParse_RectHints(t *testing.T) {
	doc, err := Parse(`<body>
<button id="anchor" data-rect="100 200 80 30">Save</button>
<div id="tip" data-rect="0,0,40px,50px" hidden>Saved</div>
<span id="plain">no box</span>
</body>`)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	anchor := doc.GetElementById("anchor")
	rect := anchor.GetBoundingClientRect()
	if rect.X != 100 || rect.Y != 200 || rect.Width != 80 || rect.Height != 30 {
		t.Errorf("Expected anchor rect (100, 200, 80, 30), got %+v", *rect)
	}

	tip := doc.GetElementById("tip")
	if g := tip.Geometry(); g == nil || g.Width != 40 || g.Height != 50 {
		t.Errorf("Expected tip geometry 40x50, got %+v", g)
	}
	if !tip.GetBoundingClientRect().IsEmpty() {
		t.Error("Expected hidden tip to measure empty")
	}

	if doc.GetElementById("plain").Geometry() != nil {
		t.Error("Expected no geometry without data-rect")
	}
}

func TestParse_BadRectHint(t *testing.T) {
	_, err := Parse(`<div id="broken" data-rect="1 2 three 4"></div>`)
	if err == nil {
		t.Fatal("Expected an error for a malformed data-rect")
	}
	if !strings.Contains(err.Error(), "broken") {
		t.Errorf("Expected error to name the element, got %v", err)
	}
}

func TestParseRect(t *testing.T) {
	tests := []struct {
		input   string
		want    dom.ElementGeometry
		wantErr bool
	}{
		{"10 20 30 40", dom.ElementGeometry{X: 10, Y: 20, Width: 30, Height: 40}, false},
		{"-5.5, 0, 12px, 8px", dom.ElementGeometry{X: -5.5, Y: 0, Width: 12, Height: 8}, false},
		{"  1\t2\n3 4 ", dom.ElementGeometry{X: 1, Y: 2, Width: 3, Height: 4}, false},
		{"1 2 3", dom.ElementGeometry{}, true},
		{"1 2 -3 4", dom.ElementGeometry{}, true},
		{"a b c d", dom.ElementGeometry{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseRect(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("Expected error, got %+v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseRect failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("Expected %+v, got %+v", tt.want, got)
			}
		})
	}
}

func TestScripts(t *testing.T) {
	doc, err := Parse(`<html><head>
<script>var a = 1;</script>
<script src="ext.js"></script>
<script type="application/json">{"x": 1}</script>
</head><body><script type="text/javascript">var b = 2;</script></body></html>`)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	scripts := Scripts(doc)
	want := []Script{{Text: "var a = 1;"}, {Src: "ext.js"}, {Text: "var b = 2;"}}
	if len(scripts) != len(want) {
		t.Fatalf("Expected %d scripts, got %d: %q", len(want), len(scripts), scripts)
	}
	for i := range want {
		if scripts[i] != want[i] {
			t.Errorf("Expected script %d to be %+v, got %+v", i, want[i], scripts[i])
		}
	}
}
