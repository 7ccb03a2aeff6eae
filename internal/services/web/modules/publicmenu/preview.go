package publicmenu

import (
	"strings"

	menustorage "github.com/louisbranch/tastebuds/internal/services/menu/storage"
)

const (
	// socialPreviewImageLimit caps the image list in social metadata.
	socialPreviewImageLimit = 4
	// pagePreviewImageLimit caps the in-page preview tiles.
	pagePreviewImageLimit = 3
)

// previewImages walks courses then items in their given order and collects
// cover image URLs, skipping items without one and stopping at limit.
func previewImages(menu menustorage.Menu, limit int) []string {
	images := make([]string, 0, limit)
	if limit <= 0 {
		return images
	}
	for _, course := range menu.Courses {
		for _, item := range course.Items {
			if item.Media == nil {
				continue
			}
			cover := strings.TrimSpace(item.Media.CoverURL)
			if cover == "" {
				continue
			}
			images = append(images, cover)
			if len(images) >= limit {
				return images
			}
		}
	}
	return images
}
