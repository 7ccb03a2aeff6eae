package publicmenu

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/louisbranch/tastebuds/internal/services/availability"
	menustorage "github.com/louisbranch/tastebuds/internal/services/menu/storage"
)

type fakeGateway struct {
	batch func(ctx context.Context, ids []string) ([]availability.Summary, error)
}

func (f *fakeGateway) BatchGetSummaries(ctx context.Context, ids []string) ([]availability.Summary, error) {
	return f.batch(ctx, ids)
}

func menuWithItems(ids ...string) menustorage.Menu {
	course := menustorage.Course{Title: "Course"}
	for _, id := range ids {
		course.Items = append(course.Items, menustorage.CourseItem{MediaItemID: id})
	}
	return menustorage.Menu{ID: "m1", Courses: []menustorage.Course{course}}
}

func TestAggregateAvailabilityDedupesAcrossCourses(t *testing.T) {
	t.Parallel()

	menu := menustorage.Menu{Courses: []menustorage.Course{
		{Items: []menustorage.CourseItem{{MediaItemID: "a"}, {MediaItemID: "b"}}},
		{Items: []menustorage.CourseItem{{MediaItemID: "b"}, {MediaItemID: " "}, {MediaItemID: "c"}}},
	}}

	var got []string
	gateway := &fakeGateway{batch: func(_ context.Context, ids []string) ([]availability.Summary, error) {
		got = append([]string(nil), ids...)
		return nil, nil
	}}

	aggregateAvailability(context.Background(), gateway, menu)
	want := []string{"a", "b", "c"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("requested ids = %v, want %v", got, want)
	}
}

func TestAggregateAvailabilityEmptySetSkipsUpstream(t *testing.T) {
	t.Parallel()

	gateway := &fakeGateway{batch: func(_ context.Context, _ []string) ([]availability.Summary, error) {
		t.Fatal("upstream called for an empty id set")
		return nil, nil
	}}

	index := aggregateAvailability(context.Background(), gateway, menustorage.Menu{})
	if len(index) != 0 {
		t.Fatalf("index = %v, want empty", index)
	}
	if index == nil {
		t.Fatal("index is nil, want empty map")
	}
}

func TestAggregateAvailabilityDegradesOnFailure(t *testing.T) {
	t.Parallel()

	gateway := &fakeGateway{batch: func(_ context.Context, _ []string) ([]availability.Summary, error) {
		return nil, errors.New("upstream timeout")
	}}

	index := aggregateAvailability(context.Background(), gateway, menuWithItems("a", "b"))
	if len(index) != 0 {
		t.Fatalf("index = %v, want empty after upstream failure", index)
	}
}

func TestAggregateAvailabilityDropsUnrequestedSummaries(t *testing.T) {
	t.Parallel()

	gateway := &fakeGateway{batch: func(_ context.Context, _ []string) ([]availability.Summary, error) {
		return []availability.Summary{
			{MediaItemID: "a", Providers: []string{"streamflix"}},
			{MediaItemID: "intruder", Providers: []string{"nowhere"}},
		}, nil
	}}

	index := aggregateAvailability(context.Background(), gateway, menuWithItems("a"))
	if _, ok := index["intruder"]; ok {
		t.Fatal("summary for unrequested id kept")
	}
	if got := index["a"].Providers; !reflect.DeepEqual(got, []string{"streamflix"}) {
		t.Fatalf("providers for a = %v", got)
	}
}

func TestAggregateAvailabilityNilGateway(t *testing.T) {
	t.Parallel()

	index := aggregateAvailability(context.Background(), nil, menuWithItems("a"))
	if index == nil || len(index) != 0 {
		t.Fatalf("index = %v, want empty map", index)
	}
}
