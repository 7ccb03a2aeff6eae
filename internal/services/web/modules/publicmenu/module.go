// Package publicmenu resolves published menus for external viewing.
//
// A menu is reachable either by its permanent public slug or by a
// time-limited draft share token. Resolution fetches the canonical menu
// graph, merges in derived cross-service data (availability by provider,
// fork lineage, social preview images), and produces one consistent page
// view model plus share metadata.
package publicmenu

import (
	"fmt"
	"net/http"
	"time"

	"github.com/louisbranch/tastebuds/internal/services/availability"
	menustorage "github.com/louisbranch/tastebuds/internal/services/menu/storage"
	module "github.com/louisbranch/tastebuds/internal/services/web/module"
)

// Dependencies carries the collaborators the module resolves menus through.
type Dependencies struct {
	// Menus is the canonical menu store. Required.
	Menus menustorage.MenuStore

	// Availability is the batch availability lookup. Optional; when nil the
	// page renders with an empty availability index.
	Availability availability.Gateway

	// ShareBaseURL is the configured base for canonical share links.
	ShareBaseURL string

	// Clock supplies the current time for draft token expiry checks.
	// Defaults to time.Now.
	Clock func() time.Time
}

// Module serves public menu pages.
type Module struct {
	deps Dependencies
}

// New creates the public menu module.
func New(deps Dependencies) (*Module, error) {
	if deps.Menus == nil {
		return nil, fmt.Errorf("menu store is required")
	}
	if deps.Clock == nil {
		deps.Clock = time.Now
	}
	return &Module{deps: deps}, nil
}

// ID identifies the module for composition.
func (m *Module) ID() string {
	return "publicmenu"
}

// Mount returns the module's route mount.
func (m *Module) Mount() (module.Mount, error) {
	if m == nil {
		return module.Mount{}, fmt.Errorf("module is not configured")
	}
	mux := http.NewServeMux()
	registerRoutes(mux, newHandlers(m.deps))
	return module.Mount{Prefix: "/menus/", Handler: mux}, nil
}

var _ module.Module = (*Module)(nil)
