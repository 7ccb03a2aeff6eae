package storage

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound indicates a requested menu record is missing.
var ErrNotFound = errors.New("record not found")

// Menu stores one curated menu with its ordered courses and pairings.
type Menu struct {
	ID          string
	Slug        string
	Title       string
	Description string
	IsPublic    bool
	Courses     []Course
	Pairings    []Pairing
}

// Course stores one ordered section of a menu.
type Course struct {
	ID          string
	MenuID      string
	Position    int
	Title       string
	Description string
	Items       []CourseItem
}

// CourseItem stores one menu entry referencing a media item.
//
// The media reference is weak: multiple course items across menus may point at
// the same media item, and the referenced record may be absent.
type CourseItem struct {
	ID          string
	CourseID    string
	Position    int
	MediaItemID string
	Notes       string
	Media       *MediaItem
}

// MediaItem stores one read-only media catalog record.
type MediaItem struct {
	ID           string
	Title        string
	Subtitle     string
	CoverURL     string
	ReleaseDate  time.Time
	CanonicalURL string
	MediaType    string
}

// Pairing relates two course items within the same menu.
type Pairing struct {
	ID           string
	MenuID       string
	FirstItemID  string
	SecondItemID string
	Relationship string
	Note         string
}

// DraftShareToken grants time-limited access to one unpublished menu.
type DraftShareToken struct {
	Token     string
	MenuID    string
	ExpiresAt time.Time
}

// MenuRef is a lineage summary of a related menu.
//
// IsPublic must survive to the rendering boundary: private menus may be named
// in a lineage panel but never linked.
type MenuRef struct {
	MenuID   string
	Slug     string
	Title    string
	IsPublic bool
}

// MenuLineage stores one hop of fork ancestry for a public menu.
//
// Source is nil when the menu is not a fork. ForkCount counts all descendant
// forks, independent of how many entries Forks carries. Lineage is one hop in
// each direction, never a deep traversal.
type MenuLineage struct {
	Source     *MenuRef
	SourceNote string
	Forks      []MenuRef
	ForkCount  int
}

// MenuStore is the read contract the resolution engine depends on.
type MenuStore interface {
	// GetMenuBySlug returns the public menu for slug, or ErrNotFound when no
	// public menu matches.
	GetMenuBySlug(ctx context.Context, slug string) (Menu, error)

	// GetMenuByID returns a menu regardless of visibility, or ErrNotFound.
	GetMenuByID(ctx context.Context, id string) (Menu, error)

	// GetDraftShareToken returns the token record, or ErrNotFound for unknown
	// tokens. Expiry is enforced by the caller's clock, not the store.
	GetDraftShareToken(ctx context.Context, token string) (DraftShareToken, error)

	// GetMenuLineage returns one hop of fork ancestry for a public menu.
	GetMenuLineage(ctx context.Context, slug string) (MenuLineage, error)
}
