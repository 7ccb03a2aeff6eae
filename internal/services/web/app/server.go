// Package app composes the web service: storage, collaborators, module
// mounts, middleware, and the HTTP server lifecycle.
package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/rs/cors"

	"github.com/louisbranch/tastebuds/internal/services/availability"
	menusqlite "github.com/louisbranch/tastebuds/internal/services/menu/storage/sqlite"
	module "github.com/louisbranch/tastebuds/internal/services/web/module"
	"github.com/louisbranch/tastebuds/internal/services/web/modules/publicmenu"
	"github.com/louisbranch/tastebuds/internal/services/web/platform/httpx"
	"github.com/louisbranch/tastebuds/internal/services/web/routepath"
)

const (
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 10 * time.Second
)

// Config holds everything the web service needs to come up.
type Config struct {
	HTTPAddr        string
	DBPath          string
	ShareBaseURL    string
	AvailabilityURL string
	AllowedOrigins  []string
}

// Server owns the HTTP listener and the resources behind it.
type Server struct {
	httpAddr   string
	httpServer *http.Server
	store      *menusqlite.Store
}

// NewServer opens storage, builds collaborators, and assembles the handler.
func NewServer(cfg Config) (*Server, error) {
	if strings.TrimSpace(cfg.HTTPAddr) == "" {
		return nil, errors.New("http address is required")
	}
	if strings.TrimSpace(cfg.DBPath) == "" {
		return nil, errors.New("menu database path is required")
	}

	store, err := menusqlite.Open(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open menu store: %w", err)
	}

	var gateway availability.Gateway
	if url := strings.TrimSpace(cfg.AvailabilityURL); url != "" {
		client, err := availability.NewClient(url)
		if err != nil {
			store.Close()
			return nil, fmt.Errorf("build availability client: %w", err)
		}
		gateway = client
	}

	handler, err := buildRootHandler(cfg, store, gateway)
	if err != nil {
		store.Close()
		return nil, err
	}

	return &Server{
		httpAddr: cfg.HTTPAddr,
		httpServer: &http.Server{
			Addr:              cfg.HTTPAddr,
			Handler:           handler,
			ReadHeaderTimeout: readHeaderTimeout,
		},
		store: store,
	}, nil
}

// buildRootHandler mounts all modules on one mux and wraps the middleware
// chain around it.
func buildRootHandler(cfg Config, store *menusqlite.Store, gateway availability.Gateway) (http.Handler, error) {
	menus, err := publicmenu.New(publicmenu.Dependencies{
		Menus:        store,
		Availability: gateway,
		ShareBaseURL: cfg.ShareBaseURL,
	})
	if err != nil {
		return nil, fmt.Errorf("build publicmenu module: %w", err)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET "+routepath.Health, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	modules := []module.Module{menus}
	for _, mod := range modules {
		mount, err := mod.Mount()
		if err != nil {
			return nil, fmt.Errorf("mount module %s: %w", mod.ID(), err)
		}
		mux.Handle(mount.Prefix, mount.Handler)
	}

	corsWrapper := cors.New(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodHead},
	})

	handler := httpx.Chain(mux,
		httpx.RequestID(),
		httpx.RecoverPanic(),
	)
	return corsWrapper.Handler(handler), nil
}

// ListenAndServe runs the HTTP server until the context ends.
//
// On cancellation, it performs a bounded shutdown so in-flight requests are
// drained before hard close.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s == nil {
		return errors.New("web server is nil")
	}
	if ctx == nil {
		return errors.New("context is required")
	}

	serveErr := make(chan error, 1)
	log.Printf("web listening on %s", s.httpAddr)
	go func() {
		serveErr <- s.httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		err := s.httpServer.Shutdown(shutdownCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve http: %w", err)
	}
}

// Close releases the storage handle.
func (s *Server) Close() {
	if s == nil || s.store == nil {
		return
	}
	if err := s.store.Close(); err != nil {
		log.Printf("close menu store: %v", err)
	}
}
