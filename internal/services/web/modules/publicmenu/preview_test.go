package publicmenu

import (
	"reflect"
	"testing"

	menustorage "github.com/louisbranch/tastebuds/internal/services/menu/storage"
)

func coveredItem(cover string) menustorage.CourseItem {
	return menustorage.CourseItem{Media: &menustorage.MediaItem{CoverURL: cover}}
}

func TestPreviewImagesOrderAndLimit(t *testing.T) {
	t.Parallel()

	menu := menustorage.Menu{Courses: []menustorage.Course{
		{Items: []menustorage.CourseItem{
			coveredItem("https://img/1"),
			{MediaItemID: "no-media"},
			coveredItem(""),
		}},
		{Items: []menustorage.CourseItem{
			coveredItem("https://img/2"),
			coveredItem("https://img/3"),
			coveredItem("https://img/4"),
			coveredItem("https://img/5"),
		}},
	}}

	tests := []struct {
		name  string
		limit int
		want  []string
	}{
		{name: "social limit", limit: socialPreviewImageLimit, want: []string{"https://img/1", "https://img/2", "https://img/3", "https://img/4"}},
		{name: "page limit", limit: pagePreviewImageLimit, want: []string{"https://img/1", "https://img/2", "https://img/3"}},
		{name: "zero limit", limit: 0, want: []string{}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := previewImages(menu, tc.limit)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("previewImages = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestPreviewImagesFewerThanLimit(t *testing.T) {
	t.Parallel()

	menu := menustorage.Menu{Courses: []menustorage.Course{
		{Items: []menustorage.CourseItem{coveredItem("https://img/only")}},
	}}

	got := previewImages(menu, socialPreviewImageLimit)
	if !reflect.DeepEqual(got, []string{"https://img/only"}) {
		t.Fatalf("previewImages = %v", got)
	}
}
