package publicmenu

import (
	"net/http"

	"github.com/louisbranch/tastebuds/internal/services/web/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	mux.HandleFunc("GET "+routepath.Menu, h.handleMenu)
	mux.HandleFunc("GET "+routepath.DraftMenu, h.handleDraftMenu)
}
