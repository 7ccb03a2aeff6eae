package publicmenu

import (
	"context"
	"errors"
	"log"

	menustorage "github.com/louisbranch/tastebuds/internal/services/menu/storage"
)

// maxLineageForks bounds the descendant list to what the lineage panel shows.
// ForkCount stays independent of this bound.
const maxLineageForks = 4

// resolveLineage fetches one hop of fork ancestry for a public slug.
//
// Lineage is enrichment: the second return value reports presence, and every
// failure (including not-found) yields absence rather than an error. Absence
// and an empty lineage stay distinguishable for the panel.
func resolveLineage(ctx context.Context, store menustorage.MenuStore, slug string) (Lineage, bool) {
	record, err := store.GetMenuLineage(ctx, slug)
	if err != nil {
		if !errors.Is(err, menustorage.ErrNotFound) {
			log.Printf("lineage lookup degraded: %v", err)
		}
		return Lineage{}, false
	}

	lineage := Lineage{ForkCount: record.ForkCount}
	if record.Source != nil {
		lineage.Source = &LineageRef{
			Slug:     record.Source.Slug,
			Title:    record.Source.Title,
			IsPublic: record.Source.IsPublic,
		}
		lineage.SourceNote = record.SourceNote
	}

	forks := record.Forks
	if len(forks) > maxLineageForks {
		forks = forks[:maxLineageForks]
	}
	for _, fork := range forks {
		lineage.Forks = append(lineage.Forks, LineageRef{
			Slug:     fork.Slug,
			Title:    fork.Title,
			IsPublic: fork.IsPublic,
		})
	}
	return lineage, true
}
