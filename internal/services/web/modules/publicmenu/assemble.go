package publicmenu

import (
	"fmt"

	"github.com/louisbranch/tastebuds/internal/services/availability"
	menustorage "github.com/louisbranch/tastebuds/internal/services/menu/storage"
)

// buildViewModel composes the page payload from one resolved menu and its
// enrichment results.
func buildViewModel(res resolvedMenu, index map[string]availability.Summary, lineage *Lineage, shareLink string) ViewModel {
	vm := ViewModel{
		Menu:          menuView(res.Menu),
		TotalItems:    totalItemCount(res.Menu),
		ShareURL:      shareLink,
		Availability:  index,
		Lineage:       lineage,
		PreviewImages: previewImages(res.Menu, pagePreviewImageLimit),
	}
	if vm.Availability == nil {
		vm.Availability = map[string]availability.Summary{}
	}
	if res.Draft {
		vm.Draft = &DraftInfo{
			TokenIDPrefix: res.TokenIDPrefix,
			ExpiresAt:     res.TokenExpiresAt,
		}
	}
	return vm
}

// buildSocialMeta composes share metadata from the same resolved menu
// instance the page is built from.
func buildSocialMeta(res resolvedMenu, shareLink string) SocialMeta {
	menu := res.Menu
	images := previewImages(menu, socialPreviewImageLimit)

	cardType := CardTypeSummary
	if len(images) > 0 {
		cardType = CardTypeLargeImage
	}

	description := menu.Description
	if description == "" {
		description = fallbackDescription(menu)
	}

	return SocialMeta{
		Title:        menu.Title,
		Description:  description,
		CanonicalURL: shareLink,
		Images:       images,
		CardType:     cardType,
	}
}

// fallbackDescription generates the share sentence for menus without one.
func fallbackDescription(menu menustorage.Menu) string {
	return fmt.Sprintf(
		"A %d-course menu with %d featured picks on Tastebuds.",
		len(menu.Courses),
		totalItemCount(menu),
	)
}

// totalItemCount sums item counts across all courses.
func totalItemCount(menu menustorage.Menu) int {
	var total int
	for _, course := range menu.Courses {
		total += len(course.Items)
	}
	return total
}

func menuView(menu menustorage.Menu) MenuView {
	view := MenuView{
		Slug:        "",
		Title:       menu.Title,
		Description: menu.Description,
		Courses:     make([]CourseView, 0, len(menu.Courses)),
	}
	if menu.IsPublic {
		view.Slug = menu.Slug
	}
	for _, course := range menu.Courses {
		courseView := CourseView{
			Title:       course.Title,
			Description: course.Description,
			Items:       make([]CourseItemView, 0, len(course.Items)),
		}
		for _, item := range course.Items {
			itemView := CourseItemView{
				MediaItemID: item.MediaItemID,
				Notes:       item.Notes,
			}
			if item.Media != nil {
				itemView.Media = &MediaView{
					Title:        item.Media.Title,
					Subtitle:     item.Media.Subtitle,
					CoverURL:     item.Media.CoverURL,
					CanonicalURL: item.Media.CanonicalURL,
					MediaType:    item.Media.MediaType,
				}
				if !item.Media.ReleaseDate.IsZero() {
					itemView.Media.ReleaseDate = item.Media.ReleaseDate.Format("2006-01-02")
				}
			}
			courseView.Items = append(courseView.Items, itemView)
		}
		view.Courses = append(view.Courses, courseView)
	}
	for _, pairing := range menu.Pairings {
		view.Pairings = append(view.Pairings, PairingView{
			FirstItemID:  pairing.FirstItemID,
			SecondItemID: pairing.SecondItemID,
			Relationship: pairing.Relationship,
			Note:         pairing.Note,
		})
	}
	return view
}
