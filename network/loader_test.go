package network

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoaderLoadDataURL(t *testing.T) {
	loader := NewLoader(nil)

	resource, err := loader.Load(context.Background(), "data:text/javascript,var%20a%20%3D%201%3B")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if resource.ContentType != "text/javascript" {
		t.Errorf("ContentType = %q, want %q", resource.ContentType, "text/javascript")
	}
	if resource.AsString() != "var a = 1;" {
		t.Errorf("Content = %q, want %q", resource.AsString(), "var a = 1;")
	}
}

func TestLoaderLoadHTTP(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ua := r.Header.Get("User-Agent"); ua != "anchorpos/1.0" {
			t.Errorf("User-Agent = %q, want anchorpos/1.0", ua)
		}
		w.Header().Set("Content-Type", "text/html; charset=UTF-8")
		w.Write([]byte("<p>hi</p>"))
	}))
	defer server.Close()

	loader := NewLoader(nil)
	resource, err := loader.Load(context.Background(), server.URL+"/page.html")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if resource.ContentType != "text/html" || resource.Charset != "utf-8" {
		t.Errorf("ContentType = %q charset %q, want text/html utf-8", resource.ContentType, resource.Charset)
	}
	if resource.AsString() != "<p>hi</p>" {
		t.Errorf("Content = %q", resource.AsString())
	}
}

func TestLoaderHTTPStatusError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	defer server.Close()

	_, err := NewLoader(nil).Load(context.Background(), server.URL+"/missing.js")
	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected *StatusError, got %v", err)
	}
	if statusErr.StatusCode != http.StatusNotFound {
		t.Errorf("StatusCode = %d, want 404", statusErr.StatusCode)
	}
}

func TestLoaderLoadLocal(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "page.html")
	if err := os.WriteFile(path, []byte("<body></body>"), 0o644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	loader := NewLoader(nil)
	resource, err := loader.Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if resource.AsString() != "<body></body>" {
		t.Errorf("Content = %q", resource.AsString())
	}
	if resource.ContentType != "text/html" {
		t.Errorf("ContentType = %q, want text/html", resource.ContentType)
	}
	if !strings.HasPrefix(resource.URL, "file://") {
		t.Errorf("URL = %q, want a file:// URL", resource.URL)
	}

	if _, err := loader.Load(context.Background(), filepath.Join(dir, "missing.html")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected os.ErrNotExist, got %v", err)
	}
}

func TestLoaderRelativeToDocument(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "js"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "page.html"), []byte(`<script src="js/app.js"></script>`), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "js", "app.js"), []byte("var app = true;"), 0o644); err != nil {
		t.Fatal(err)
	}

	loader := NewLoader(nil)
	if _, err := loader.LoadDocument(context.Background(), filepath.Join(dir, "page.html")); err != nil {
		t.Fatalf("LoadDocument() error = %v", err)
	}
	if !strings.HasSuffix(loader.BaseURL(), "/page.html") {
		t.Errorf("BaseURL = %q, want the document URL", loader.BaseURL())
	}

	script, err := loader.Load(context.Background(), "js/app.js")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if script.AsString() != "var app = true;" {
		t.Errorf("Content = %q", script.AsString())
	}
}

func TestLoaderUnsupportedScheme(t *testing.T) {
	_, err := NewLoader(nil).Load(context.Background(), "ftp://example.com/a.js")
	if err == nil || !strings.Contains(err.Error(), "unsupported URL scheme") {
		t.Errorf("expected unsupported scheme error, got %v", err)
	}
}
