package publicmenu

import (
	"context"
	"errors"
	"testing"
	"time"

	menustorage "github.com/louisbranch/tastebuds/internal/services/menu/storage"
	apperrors "github.com/louisbranch/tastebuds/internal/services/web/platform/errors"
)

type fakeMenuStore struct {
	getBySlug  func(ctx context.Context, slug string) (menustorage.Menu, error)
	getByID    func(ctx context.Context, id string) (menustorage.Menu, error)
	getToken   func(ctx context.Context, token string) (menustorage.DraftShareToken, error)
	getLineage func(ctx context.Context, slug string) (menustorage.MenuLineage, error)
}

func (f *fakeMenuStore) GetMenuBySlug(ctx context.Context, slug string) (menustorage.Menu, error) {
	if f.getBySlug == nil {
		return menustorage.Menu{}, menustorage.ErrNotFound
	}
	return f.getBySlug(ctx, slug)
}

func (f *fakeMenuStore) GetMenuByID(ctx context.Context, id string) (menustorage.Menu, error) {
	if f.getByID == nil {
		return menustorage.Menu{}, menustorage.ErrNotFound
	}
	return f.getByID(ctx, id)
}

func (f *fakeMenuStore) GetDraftShareToken(ctx context.Context, token string) (menustorage.DraftShareToken, error) {
	if f.getToken == nil {
		return menustorage.DraftShareToken{}, menustorage.ErrNotFound
	}
	return f.getToken(ctx, token)
}

func (f *fakeMenuStore) GetMenuLineage(ctx context.Context, slug string) (menustorage.MenuLineage, error) {
	if f.getLineage == nil {
		return menustorage.MenuLineage{}, menustorage.ErrNotFound
	}
	return f.getLineage(ctx, slug)
}

func TestResolverMemoizesSingleFetch(t *testing.T) {
	t.Parallel()

	calls := 0
	store := &fakeMenuStore{getBySlug: func(_ context.Context, _ string) (menustorage.Menu, error) {
		calls++
		return menustorage.Menu{ID: "m1", Title: "Take " + string(rune('0'+calls))}, nil
	}}

	resolver := resolverForSlug(store, "summer")
	first, err := resolver.resolve(context.Background())
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	second, err := resolver.resolve(context.Background())
	if err != nil {
		t.Fatalf("resolve again: %v", err)
	}
	if calls != 1 {
		t.Fatalf("store called %d times, want 1", calls)
	}
	if first.Menu.Title != second.Menu.Title {
		t.Fatalf("resolutions diverged: %q vs %q", first.Menu.Title, second.Menu.Title)
	}
}

func TestResolverMemoizesError(t *testing.T) {
	t.Parallel()

	calls := 0
	store := &fakeMenuStore{getBySlug: func(_ context.Context, _ string) (menustorage.Menu, error) {
		calls++
		return menustorage.Menu{}, errors.New("db unreachable")
	}}

	resolver := resolverForSlug(store, "summer")
	if _, err := resolver.resolve(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	if _, err := resolver.resolve(context.Background()); err == nil {
		t.Fatal("expected memoized error")
	}
	if calls != 1 {
		t.Fatalf("store called %d times, want 1", calls)
	}
}

func TestResolverForSlugClassifiesNotFound(t *testing.T) {
	t.Parallel()

	store := &fakeMenuStore{}
	resolver := resolverForSlug(store, "missing")
	_, err := resolver.resolve(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if !apperrors.IsNotFound(err) {
		t.Fatalf("error %v not classified as not found", err)
	}
}

func TestResolverForSlugPropagatesFatal(t *testing.T) {
	t.Parallel()

	fatal := errors.New("connection reset")
	store := &fakeMenuStore{getBySlug: func(_ context.Context, _ string) (menustorage.Menu, error) {
		return menustorage.Menu{}, fatal
	}}

	resolver := resolverForSlug(store, "summer")
	_, err := resolver.resolve(context.Background())
	if !errors.Is(err, fatal) {
		t.Fatalf("got %v, want the upstream error unmodified", err)
	}
	if apperrors.IsNotFound(err) {
		t.Fatal("fatal error misclassified as not found")
	}
}

func TestResolverForTokenExpiryBoundary(t *testing.T) {
	t.Parallel()

	expiresAt := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	store := &fakeMenuStore{
		getToken: func(_ context.Context, _ string) (menustorage.DraftShareToken, error) {
			return menustorage.DraftShareToken{Token: "tok_abcdef123456", MenuID: "m1", ExpiresAt: expiresAt}, nil
		},
		getByID: func(_ context.Context, _ string) (menustorage.Menu, error) {
			return menustorage.Menu{ID: "m1", Title: "Draft"}, nil
		},
	}

	tests := []struct {
		name    string
		now     time.Time
		wantErr bool
	}{
		{name: "one second before expiry", now: expiresAt.Add(-time.Second)},
		{name: "exactly at expiry", now: expiresAt},
		{name: "one second after expiry", now: expiresAt.Add(time.Second), wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			clock := func() time.Time { return tc.now }
			resolver := resolverForToken(store, clock, "tok_abcdef123456")
			res, err := resolver.resolve(context.Background())
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected not-found for expired token")
				}
				if !apperrors.IsNotFound(err) {
					t.Fatalf("error %v not classified as not found", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("resolve: %v", err)
			}
			if !res.Draft {
				t.Fatal("token resolution not marked as draft")
			}
			if res.TokenIDPrefix != "tok_abcd" {
				t.Fatalf("token prefix = %q, want %q", res.TokenIDPrefix, "tok_abcd")
			}
			if !res.TokenExpiresAt.Equal(expiresAt) {
				t.Fatalf("expires at = %v, want %v", res.TokenExpiresAt, expiresAt)
			}
		})
	}
}

func TestResolverForTokenCollapsesFailuresToNotFound(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		store *fakeMenuStore
	}{
		{name: "unknown token", store: &fakeMenuStore{}},
		{
			name: "token store failure",
			store: &fakeMenuStore{getToken: func(_ context.Context, _ string) (menustorage.DraftShareToken, error) {
				return menustorage.DraftShareToken{}, errors.New("db unreachable")
			}},
		},
		{
			name: "menu deleted after token issued",
			store: &fakeMenuStore{getToken: func(_ context.Context, _ string) (menustorage.DraftShareToken, error) {
				return menustorage.DraftShareToken{Token: "tok", MenuID: "gone", ExpiresAt: time.Now().Add(time.Hour)}, nil
			}},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			resolver := resolverForToken(tc.store, nil, "tok")
			_, err := resolver.resolve(context.Background())
			if err == nil {
				t.Fatal("expected error")
			}
			if !apperrors.IsNotFound(err) {
				t.Fatalf("error %v not classified as not found", err)
			}
		})
	}
}
