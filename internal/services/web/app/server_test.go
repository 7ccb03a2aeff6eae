package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"
)

func newTestConfig(t *testing.T) Config {
	t.Helper()
	return Config{
		HTTPAddr: "127.0.0.1:0",
		DBPath:   filepath.Join(t.TempDir(), "menus.db"),
	}
}

func TestNewServerRequiresAddr(t *testing.T) {
	t.Parallel()

	cfg := newTestConfig(t)
	cfg.HTTPAddr = " "
	if _, err := NewServer(cfg); err == nil {
		t.Fatal("expected error for missing http address")
	}
}

func TestNewServerRequiresDBPath(t *testing.T) {
	t.Parallel()

	cfg := newTestConfig(t)
	cfg.DBPath = ""
	if _, err := NewServer(cfg); err == nil {
		t.Fatal("expected error for missing database path")
	}
}

func TestServerHealthz(t *testing.T) {
	t.Parallel()

	server, err := NewServer(newTestConfig(t))
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	defer server.Close()

	recorder := httptest.NewRecorder()
	server.httpServer.Handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", recorder.Code)
	}
	if recorder.Body.String() != "ok" {
		t.Fatalf("body = %q, want ok", recorder.Body.String())
	}
}

func TestServerMenuRouteMounted(t *testing.T) {
	t.Parallel()

	server, err := NewServer(newTestConfig(t))
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	defer server.Close()

	recorder := httptest.NewRecorder()
	server.httpServer.Handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/menus/unknown", nil))
	// Empty database: the route exists and answers with a JSON not-found.
	if recorder.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", recorder.Code)
	}
	if ct := recorder.Header().Get("Content-Type"); ct != "application/json; charset=utf-8" {
		t.Fatalf("content type = %q", ct)
	}
}

func TestListenAndServeShutsDown(t *testing.T) {
	t.Parallel()

	server, err := NewServer(newTestConfig(t))
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	result := make(chan error, 1)
	go func() {
		result <- server.ListenAndServe(ctx)
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-result:
		if err != nil {
			t.Fatalf("listen and serve: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestListenAndServeRequiresContext(t *testing.T) {
	t.Parallel()

	server, err := NewServer(newTestConfig(t))
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	defer server.Close()

	var missing context.Context
	if err := server.ListenAndServe(missing); err == nil {
		t.Fatal("expected error for nil context")
	}
}
