package source

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

func newTestClient() *Client {
	c := NewClient()
	c.backoff = time.Millisecond
	return c
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "glcorearb.h")
	if err := os.WriteFile(path, []byte("#ifndef GL_VERSION_1_0\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := newTestClient().Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got != "#ifndef GL_VERSION_1_0\n" {
		t.Errorf("Load() = %q", got)
	}
}

func TestLoadMissing(t *testing.T) {
	empty := filepath.Join(t.TempDir(), "empty.h")
	if err := os.WriteFile(empty, []byte("  \n"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		location string
	}{
		{name: "no location", location: ""},
		{name: "missing file", location: filepath.Join(t.TempDir(), "nope.h")},
		{name: "empty file", location: empty},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newTestClient().Load(context.Background(), tt.location)
			if !errors.Is(err, ErrMissingInput) {
				t.Errorf("Load(%q) error = %v, want ErrMissingInput", tt.location, err)
			}
		})
	}
}

func TestLoadURLRetries(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			http.Error(w, "busy", http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte("#ifndef GL_VERSION_1_0\n"))
	}))
	defer srv.Close()

	got, err := newTestClient().Load(context.Background(), srv.URL+"/glcorearb.h")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got != "#ifndef GL_VERSION_1_0\n" {
		t.Errorf("Load() = %q", got)
	}
	if n := calls.Load(); n != 3 {
		t.Errorf("server called %d times, want 3", n)
	}
}

func TestLoadURLNotFound(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.NotFound(w, r)
	}))
	defer srv.Close()

	_, err := newTestClient().Load(context.Background(), srv.URL)
	if !errors.Is(err, ErrMissingInput) {
		t.Fatalf("Load() error = %v, want ErrMissingInput", err)
	}
	if n := calls.Load(); n != 1 {
		t.Errorf("server called %d times, want 1 (404 is not retried)", n)
	}
}
