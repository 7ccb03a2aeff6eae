package publicmenu

import (
	"time"

	"github.com/louisbranch/tastebuds/internal/services/availability"
)

// Social card type hints, chosen by whether any preview images exist.
const (
	CardTypeSummary    = "summary"
	CardTypeLargeImage = "summary_large_image"
)

// ViewModel is the immutable page payload handed to the presentation layer.
// It is built per request and discarded after the response is sent.
type ViewModel struct {
	Menu          MenuView                        `json:"menu"`
	TotalItems    int                             `json:"total_items"`
	ShareURL      string                          `json:"share_url"`
	Availability  map[string]availability.Summary `json:"availability"`
	Lineage       *Lineage                        `json:"lineage,omitempty"`
	PreviewImages []string                        `json:"preview_images"`
	Draft         *DraftInfo                      `json:"draft,omitempty"`
}

// SocialMeta is the share metadata emitted alongside the page.
type SocialMeta struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	CanonicalURL string   `json:"canonical_url"`
	Images       []string `json:"images"`
	CardType     string   `json:"card_type"`
}

// MenuView mirrors the resolved menu graph for rendering.
type MenuView struct {
	Slug        string        `json:"slug,omitempty"`
	Title       string        `json:"title"`
	Description string        `json:"description,omitempty"`
	Courses     []CourseView  `json:"courses"`
	Pairings    []PairingView `json:"pairings,omitempty"`
}

// CourseView is one ordered menu section.
type CourseView struct {
	Title       string           `json:"title"`
	Description string           `json:"description,omitempty"`
	Items       []CourseItemView `json:"items"`
}

// CourseItemView is one menu entry with its resolved media record, when the
// weak reference resolved.
type CourseItemView struct {
	MediaItemID string     `json:"media_item_id"`
	Notes       string     `json:"notes,omitempty"`
	Media       *MediaView `json:"media,omitempty"`
}

// MediaView is the read-only media record shown for a course item.
type MediaView struct {
	Title        string `json:"title"`
	Subtitle     string `json:"subtitle,omitempty"`
	CoverURL     string `json:"cover_url,omitempty"`
	ReleaseDate  string `json:"release_date,omitempty"`
	CanonicalURL string `json:"canonical_url,omitempty"`
	MediaType    string `json:"media_type,omitempty"`
}

// PairingView relates two course items.
type PairingView struct {
	FirstItemID  string `json:"first_item_id"`
	SecondItemID string `json:"second_item_id"`
	Relationship string `json:"relationship"`
	Note         string `json:"note,omitempty"`
}

// Lineage is the fork ancestry panel data. Absence of the whole panel is
// represented by a nil *Lineage on the view model, distinct from a present
// lineage with zero forks.
type Lineage struct {
	Source     *LineageRef  `json:"source,omitempty"`
	SourceNote string       `json:"source_note,omitempty"`
	Forks      []LineageRef `json:"forks,omitempty"`
	ForkCount  int          `json:"fork_count"`
}

// LineageRef summarizes a related menu. Entries with IsPublic false may be
// named but must not be rendered as navigable links.
type LineageRef struct {
	Slug     string `json:"slug"`
	Title    string `json:"title"`
	IsPublic bool   `json:"is_public"`
}

// DraftInfo carries draft-only share state.
type DraftInfo struct {
	TokenIDPrefix string    `json:"token_id_prefix"`
	ExpiresAt     time.Time `json:"expires_at"`
}
