package publicmenu

import (
	"context"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/louisbranch/tastebuds/internal/services/availability"
	apperrors "github.com/louisbranch/tastebuds/internal/services/web/platform/errors"
	"github.com/louisbranch/tastebuds/internal/services/web/platform/httpx"
	"github.com/louisbranch/tastebuds/internal/services/web/platform/weberror"
	"github.com/louisbranch/tastebuds/internal/services/web/routepath"
)

type handlers struct {
	deps   Dependencies
	tracer trace.Tracer
}

func newHandlers(deps Dependencies) handlers {
	if deps.Clock == nil {
		deps.Clock = time.Now
	}
	return handlers{
		deps:   deps,
		tracer: otel.Tracer("tastebuds/web/publicmenu"),
	}
}

// menuPageResponse is the payload consumed by the presentation layer: the
// page view model plus the share metadata derived from the same resolution.
type menuPageResponse struct {
	Page   ViewModel  `json:"page"`
	Social SocialMeta `json:"social"`
}

func (h handlers) handleMenu(w http.ResponseWriter, r *http.Request) {
	slug := strings.TrimSpace(r.PathValue("slug"))
	if slug == "" {
		weberror.WriteNotFound(w)
		return
	}

	ctx, span := h.tracer.Start(httpx.RequestContext(r), "publicmenu.resolve",
		trace.WithAttributes(attribute.String("menu.slug", slug)))
	defer span.End()

	resolver := resolverForSlug(h.deps.Menus, slug)
	shareLink := ShareURL(h.deps.ShareBaseURL, routepath.MenuSegment, slug)
	h.serve(ctx, w, span, resolver, shareLink, slug)
}

func (h handlers) handleDraftMenu(w http.ResponseWriter, r *http.Request) {
	token := strings.TrimSpace(r.PathValue("token"))
	if token == "" {
		weberror.WriteNotFound(w)
		return
	}

	ctx, span := h.tracer.Start(httpx.RequestContext(r), "publicmenu.resolve_draft")
	defer span.End()

	resolver := resolverForToken(h.deps.Menus, h.deps.Clock, token)
	shareLink := ShareURL(h.deps.ShareBaseURL, routepath.MenuSegment, routepath.DraftMenuSegment, token)
	// Lineage is slug-path only; draft views never carry the panel.
	h.serve(ctx, w, span, resolver, shareLink, "")
}

// serve resolves once and renders metadata and page from that single fetch.
func (h handlers) serve(ctx context.Context, w http.ResponseWriter, span trace.Span, resolver *menuResolver, shareLink, lineageSlug string) {
	social, err := h.socialMeta(ctx, resolver, shareLink)
	if err != nil {
		h.writeResolveError(w, span, err)
		return
	}
	page := h.menuPage(ctx, resolver, shareLink, lineageSlug)
	httpx.WriteJSON(w, http.StatusOK, menuPageResponse{Page: page, Social: social})
}

func (h handlers) socialMeta(ctx context.Context, resolver *menuResolver, shareLink string) (SocialMeta, error) {
	res, err := resolver.resolve(ctx)
	if err != nil {
		return SocialMeta{}, err
	}
	return buildSocialMeta(res, shareLink), nil
}

// menuPage builds the page view model. The resolver is memoized, so the menu
// read here is the same one metadata was derived from; errors were already
// surfaced by that first read.
func (h handlers) menuPage(ctx context.Context, resolver *menuResolver, shareLink, lineageSlug string) ViewModel {
	res, err := resolver.resolve(ctx)
	if err != nil {
		return ViewModel{}
	}

	var (
		wg         sync.WaitGroup
		index      map[string]availability.Summary
		lineage    Lineage
		hasLineage bool
	)
	wg.Add(1)
	go func() {
		defer wg.Done()
		index = aggregateAvailability(ctx, h.deps.Availability, res.Menu)
	}()
	if lineageSlug != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			lineage, hasLineage = resolveLineage(ctx, h.deps.Menus, lineageSlug)
		}()
	}
	wg.Wait()

	var lineagePtr *Lineage
	if hasLineage {
		lineagePtr = &lineage
	}
	return buildViewModel(res, index, lineagePtr, shareLink)
}

func (h handlers) writeResolveError(w http.ResponseWriter, span trace.Span, err error) {
	if apperrors.IsNotFound(err) {
		weberror.WriteNotFound(w)
		return
	}
	span.RecordError(err)
	span.SetStatus(otelcodes.Error, "menu resolution failed")
	log.Printf("resolve menu: %v", err)
	weberror.WriteError(w, err)
}
