package network

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestResolveURL(t *testing.T) {
	tests := []struct {
		name string
		base string
		ref  string
		want string
	}{
		{"absolute URL unchanged", "http://example.com/page.html", "https://cdn.example.com/popper.js", "https://cdn.example.com/popper.js"},
		{"relative path", "http://example.com/demo/page.html", "tooltip.js", "http://example.com/demo/tooltip.js"},
		{"relative path with dots", "http://example.com/demo/tips/page.html", "../tooltip.js", "http://example.com/demo/tooltip.js"},
		{"absolute path", "http://example.com/demo/page.html", "/js/tooltip.js", "http://example.com/js/tooltip.js"},
		{"fragment only", "http://example.com/page.html", "#menu", "http://example.com/page.html#menu"},
		{"data URL unchanged", "http://example.com/page.html", "data:text/javascript,var%20a", "data:text/javascript,var%20a"},
		{"empty reference returns base", "http://example.com/page.html", "", "http://example.com/page.html"},
		{"protocol-relative URL", "https://example.com/page.html", "//cdn.example.com/tooltip.js", "https://cdn.example.com/tooltip.js"},
		{"file base", "file:///srv/demo/page.html", "js/menu.js", "file:///srv/demo/js/menu.js"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveURL(tt.base, tt.ref)
			if err != nil {
				t.Fatalf("ResolveURL() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ResolveURL() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseDataURL(t *testing.T) {
	tests := []struct {
		name        string
		url         string
		wantType    string
		wantCharset string
		wantBase64  bool
		wantData    string
		wantErr     bool
	}{
		{name: "plain", url: "data:,Hello%20World", wantType: "text/plain", wantCharset: "US-ASCII", wantData: "Hello World"},
		{name: "html", url: "data:text/html,<p>tip</p>", wantType: "text/html", wantCharset: "US-ASCII", wantData: "<p>tip</p>"},
		{name: "base64", url: "data:text/javascript;base64,dmFyIGEgPSAxOw==", wantType: "text/javascript", wantCharset: "US-ASCII", wantBase64: true, wantData: "var a = 1;"},
		{name: "charset", url: "data:text/html;charset=utf-8,<p>tip</p>", wantType: "text/html", wantCharset: "utf-8", wantData: "<p>tip</p>"},
		{name: "not a data URL", url: "http://example.com", wantErr: true},
		{name: "missing comma", url: "data:text/plain", wantErr: true},
		{name: "bad base64", url: "data:;base64,%%%", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDataURL(tt.url)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseDataURL() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if got.MediaType != tt.wantType {
				t.Errorf("MediaType = %v, want %v", got.MediaType, tt.wantType)
			}
			if got.Charset != tt.wantCharset {
				t.Errorf("Charset = %v, want %v", got.Charset, tt.wantCharset)
			}
			if got.Base64 != tt.wantBase64 {
				t.Errorf("Base64 = %v, want %v", got.Base64, tt.wantBase64)
			}
			if string(got.Data) != tt.wantData {
				t.Errorf("Data = %v, want %v", string(got.Data), tt.wantData)
			}
		})
	}
}

func TestIsAbsoluteURL(t *testing.T) {
	tests := []struct {
		url  string
		want bool
	}{
		{"http://example.com", true},
		{"file:///tmp/page.html", true},
		{"data:text/plain,test", true},
		{"/tmp/page.html", false},
		{"../page.html", false},
		{"page.html", false},
	}

	for _, tt := range tests {
		if got := IsAbsoluteURL(tt.url); got != tt.want {
			t.Errorf("IsAbsoluteURL(%q) = %v, want %v", tt.url, got, tt.want)
		}
	}
}

func TestFileURL(t *testing.T) {
	got, err := FileURL("page.html")
	if err != nil {
		t.Fatalf("FileURL() error = %v", err)
	}
	abs, _ := filepath.Abs("page.html")
	if !strings.HasPrefix(got, "file://") || !strings.HasSuffix(got, filepath.ToSlash(abs)) {
		t.Errorf("FileURL() = %q, want file URL of %q", got, abs)
	}
}

func TestGuessContentType(t *testing.T) {
	tests := map[string]string{
		"file:///a/page.HTML":           "text/html",
		"http://example.com/tip.js":     "text/javascript",
		"http://example.com/tip.js?v=2": "text/javascript",
		"file:///a/anchorpos.toml":      "application/toml",
		"http://example.com/":           "application/octet-stream",
	}
	for in, want := range tests {
		if got := GuessContentType(in); got != want {
			t.Errorf("GuessContentType(%q) = %q, want %q", in, got, want)
		}
	}
}
