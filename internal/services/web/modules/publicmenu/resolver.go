package publicmenu

import (
	"context"
	"errors"
	"sync"
	"time"

	menustorage "github.com/louisbranch/tastebuds/internal/services/menu/storage"
	apperrors "github.com/louisbranch/tastebuds/internal/services/web/platform/errors"
)

// tokenIDPrefixLen bounds how much of a draft token is echoed back for display.
const tokenIDPrefixLen = 8

// resolvedMenu is the outcome of one identifier lookup.
type resolvedMenu struct {
	Menu           menustorage.Menu
	Draft          bool
	TokenIDPrefix  string
	TokenExpiresAt time.Time
}

// menuResolver resolves one identifier at most once per request. Metadata
// generation and page rendering both read through it, so they observe a
// single underlying fetch even when the store is mutated concurrently.
type menuResolver struct {
	fetch  func(context.Context) (resolvedMenu, error)
	once   sync.Once
	result resolvedMenu
	err    error
}

func (r *menuResolver) resolve(ctx context.Context) (resolvedMenu, error) {
	r.once.Do(func() {
		r.result, r.err = r.fetch(ctx)
	})
	return r.result, r.err
}

// resolverForSlug resolves a public menu by its permanent slug.
//
// Absence signals normalize to a typed not-found error; every other failure
// propagates unmodified so the boundary can surface a generic server error.
func resolverForSlug(store menustorage.MenuStore, slug string) *menuResolver {
	return &menuResolver{fetch: func(ctx context.Context) (resolvedMenu, error) {
		menu, err := store.GetMenuBySlug(ctx, slug)
		if err != nil {
			if errors.Is(err, menustorage.ErrNotFound) || apperrors.IsNotFound(err) {
				return resolvedMenu{}, apperrors.E(apperrors.KindNotFound, "menu not found")
			}
			return resolvedMenu{}, err
		}
		return resolvedMenu{Menu: menu}, nil
	}}
}

// resolverForToken resolves an unpublished menu through a draft share token.
//
// Every token-path failure collapses to not-found: unknown token, expired
// token, deleted menu. Expiry is checked against the injected clock even when
// the underlying menu still exists and is otherwise public.
func resolverForToken(store menustorage.MenuStore, clock func() time.Time, token string) *menuResolver {
	if clock == nil {
		clock = time.Now
	}
	return &menuResolver{fetch: func(ctx context.Context) (resolvedMenu, error) {
		notFound := apperrors.E(apperrors.KindNotFound, "menu not found")

		record, err := store.GetDraftShareToken(ctx, token)
		if err != nil {
			return resolvedMenu{}, notFound
		}
		if clock().After(record.ExpiresAt) {
			return resolvedMenu{}, notFound
		}

		menu, err := store.GetMenuByID(ctx, record.MenuID)
		if err != nil {
			return resolvedMenu{}, notFound
		}

		prefix := record.Token
		if len(prefix) > tokenIDPrefixLen {
			prefix = prefix[:tokenIDPrefixLen]
		}
		return resolvedMenu{
			Menu:           menu,
			Draft:          true,
			TokenIDPrefix:  prefix,
			TokenExpiresAt: record.ExpiresAt,
		}, nil
	}}
}
