// Package seed parses seed command flags and populates a local database with
// sample menus so the web service can be exercised end to end.
package seed

import (
	"context"
	"flag"
	"fmt"
	"io"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"

	entrypoint "github.com/louisbranch/tastebuds/internal/platform/cmd"
	menustorage "github.com/louisbranch/tastebuds/internal/services/menu/storage"
	menusqlite "github.com/louisbranch/tastebuds/internal/services/menu/storage/sqlite"
	"github.com/louisbranch/tastebuds/internal/services/web/modules/publicmenu"
	"github.com/louisbranch/tastebuds/internal/services/web/routepath"
)

// Config holds seed command configuration.
type Config struct {
	DBPath       string        `env:"TASTEBUDS_MENU_DB_PATH" envDefault:"tastebuds.db"`
	ShareBaseURL string        `env:"TASTEBUDS_SHARE_BASE_URL" envDefault:"https://tastebuds.app"`
	DraftTTL     time.Duration `env:"TASTEBUDS_SEED_DRAFT_TTL" envDefault:"72h"`
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.DBPath, "db-path", cfg.DBPath, "Path to the menu sqlite database")
	fs.StringVar(&cfg.ShareBaseURL, "share-base-url", cfg.ShareBaseURL, "Base URL for printed share links")
	fs.DurationVar(&cfg.DraftTTL, "draft-ttl", cfg.DraftTTL, "Lifetime of the seeded draft share token")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run executes the seed command and prints the resulting share URLs.
func Run(ctx context.Context, cfg Config, out io.Writer) error {
	if out == nil {
		out = io.Discard
	}
	store, err := menusqlite.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open menu store: %w", err)
	}
	defer store.Close()

	return Populate(ctx, store, cfg, out)
}

// Populate writes the sample dataset through the given store.
func Populate(ctx context.Context, store *menusqlite.Store, cfg Config, out io.Writer) error {
	if out == nil {
		out = io.Discard
	}

	media := []menustorage.MediaItem{
		{
			ID:          "media-breathless",
			Title:       "Breathless",
			Subtitle:    "Jean-Luc Godard",
			CoverURL:    "https://images.tastebuds.app/covers/breathless.jpg",
			ReleaseDate: time.Date(1960, 3, 16, 0, 0, 0, 0, time.UTC),
			MediaType:   "film",
		},
		{
			ID:          "media-stalker",
			Title:       "Stalker",
			Subtitle:    "Andrei Tarkovsky",
			CoverURL:    "https://images.tastebuds.app/covers/stalker.jpg",
			ReleaseDate: time.Date(1979, 5, 25, 0, 0, 0, 0, time.UTC),
			MediaType:   "film",
		},
		{
			ID:          "media-severance",
			Title:       "Severance",
			Subtitle:    "Season 1",
			CoverURL:    "https://images.tastebuds.app/covers/severance.jpg",
			ReleaseDate: time.Date(2022, 2, 18, 0, 0, 0, 0, time.UTC),
			MediaType:   "show",
		},
	}
	for _, item := range media {
		if err := store.CreateMediaItem(ctx, item); err != nil {
			return fmt.Errorf("seed media item %s: %w", item.ID, err)
		}
	}

	source := menustorage.Menu{
		ID:          "menu-slow-cinema",
		Slug:        "slow-cinema-starter",
		Title:       "Slow Cinema Starter",
		Description: "An introduction to patient filmmaking.",
		IsPublic:    true,
		Courses: []menustorage.Course{
			{
				ID:       "course-sc-1",
				Position: 1,
				Title:    "Opening",
				Items: []menustorage.CourseItem{
					{ID: "item-sc-1", Position: 1, MediaItemID: "media-breathless"},
				},
			},
			{
				ID:       "course-sc-2",
				Position: 2,
				Title:    "Main",
				Items: []menustorage.CourseItem{
					{ID: "item-sc-2", Position: 1, MediaItemID: "media-stalker", Notes: "no phones"},
				},
			},
		},
		Pairings: []menustorage.Pairing{
			{ID: "pairing-sc-1", FirstItemID: "item-sc-1", SecondItemID: "item-sc-2", Relationship: "double-feature"},
		},
	}
	if err := store.CreateMenu(ctx, source); err != nil {
		return fmt.Errorf("seed menu %s: %w", source.Slug, err)
	}

	fork := menustorage.Menu{
		ID:       "menu-slow-cinema-fork",
		Slug:     "slow-cinema-remix",
		Title:    "Slow Cinema Remix",
		IsPublic: true,
		Courses: []menustorage.Course{
			{
				ID:       "course-fork-1",
				Position: 1,
				Title:    "Opening",
				Items: []menustorage.CourseItem{
					{ID: "item-fork-1", Position: 1, MediaItemID: "media-stalker"},
				},
			},
		},
	}
	if err := store.CreateMenu(ctx, fork); err != nil {
		return fmt.Errorf("seed menu %s: %w", fork.Slug, err)
	}
	if err := store.SetMenuSource(ctx, fork.ID, source.ID, "reordered for a single evening"); err != nil {
		return fmt.Errorf("seed fork relationship: %w", err)
	}

	draft := menustorage.Menu{
		ID:    "menu-draft-binge",
		Slug:  "weekend-binge-draft",
		Title: "Weekend Binge (draft)",
		Courses: []menustorage.Course{
			{
				ID:       "course-draft-1",
				Position: 1,
				Title:    "Saturday",
				Items: []menustorage.CourseItem{
					{ID: "item-draft-1", Position: 1, MediaItemID: "media-severance"},
				},
			},
		},
	}
	if err := store.CreateMenu(ctx, draft); err != nil {
		return fmt.Errorf("seed menu %s: %w", draft.Slug, err)
	}

	token, err := gonanoid.New()
	if err != nil {
		return fmt.Errorf("generate draft token: %w", err)
	}
	ttl := cfg.DraftTTL
	if ttl <= 0 {
		ttl = 72 * time.Hour
	}
	if err := store.CreateDraftShareToken(ctx, menustorage.DraftShareToken{
		Token:     token,
		MenuID:    draft.ID,
		ExpiresAt: time.Now().Add(ttl).UTC(),
	}); err != nil {
		return fmt.Errorf("seed draft share token: %w", err)
	}

	fmt.Fprintln(out, publicmenu.ShareURL(cfg.ShareBaseURL, routepath.MenuSegment, source.Slug))
	fmt.Fprintln(out, publicmenu.ShareURL(cfg.ShareBaseURL, routepath.MenuSegment, fork.Slug))
	fmt.Fprintln(out, publicmenu.ShareURL(cfg.ShareBaseURL, routepath.MenuSegment, routepath.DraftMenuSegment, token))
	return nil
}
