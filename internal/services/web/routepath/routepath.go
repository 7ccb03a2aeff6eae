// Package routepath centralizes web route constants.
package routepath

const (
	// Health is the liveness probe endpoint.
	Health = "/healthz"

	// Menu serves a published menu by slug.
	Menu = "/menus/{slug}"

	// DraftMenu serves an unpublished menu by draft share token.
	DraftMenu = "/menus/draft/{token}"

	// MenuSegment and DraftMenuSegment are the share-link path segments.
	MenuSegment      = "menus"
	DraftMenuSegment = "draft"
)
