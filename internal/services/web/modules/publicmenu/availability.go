package publicmenu

import (
	"context"
	"log"
	"strings"

	"github.com/louisbranch/tastebuds/internal/services/availability"
	menustorage "github.com/louisbranch/tastebuds/internal/services/menu/storage"
)

// aggregateAvailability indexes availability summaries for every media item a
// menu references.
//
// The whole set goes upstream in a single batch call. Availability is
// advisory enrichment: any upstream failure degrades to an empty index so the
// rest of the page still renders.
func aggregateAvailability(ctx context.Context, gateway availability.Gateway, menu menustorage.Menu) map[string]availability.Summary {
	ids := distinctMediaItemIDs(menu)
	index := make(map[string]availability.Summary, len(ids))
	if len(ids) == 0 || gateway == nil {
		return index
	}

	summaries, err := gateway.BatchGetSummaries(ctx, ids)
	if err != nil {
		log.Printf("availability lookup degraded: %v", err)
		return index
	}

	requested := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		requested[id] = struct{}{}
	}
	for _, summary := range summaries {
		// Summaries for ids we never asked about are dropped.
		if _, ok := requested[summary.MediaItemID]; !ok {
			continue
		}
		index[summary.MediaItemID] = summary
	}
	return index
}

// distinctMediaItemIDs collapses duplicate media references across all
// courses into one lookup set, preserving first-seen order.
func distinctMediaItemIDs(menu menustorage.Menu) []string {
	seen := make(map[string]struct{})
	ids := make([]string, 0)
	for _, course := range menu.Courses {
		for _, item := range course.Items {
			id := strings.TrimSpace(item.MediaItemID)
			if id == "" {
				continue
			}
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}
	return ids
}
