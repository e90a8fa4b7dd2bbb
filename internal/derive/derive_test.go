package derive

import (
	"testing"

	"github.com/sandeepkv93/todolist/internal/model"
)

const (
	t0 = "2026-02-09T12:00:00.000Z"
	t1 = "2026-02-09T12:00:01.000Z"
	t2 = "2026-02-09T12:00:02.000Z"
)

func ids(todos []model.Todo) []model.TodoID {
	out := make([]model.TodoID, 0, len(todos))
	for _, t := range todos {
		out = append(out, t.ID)
	}
	return out
}

func assertIDs(t *testing.T, got []model.Todo, want ...model.TodoID) {
	t.Helper()
	gotIDs := ids(got)
	if len(gotIDs) != len(want) {
		t.Fatalf("ids = %v, want %v", gotIDs, want)
	}
	for i := range want {
		if gotIDs[i] != want[i] {
			t.Fatalf("ids = %v, want %v", gotIDs, want)
		}
	}
}

func TestFilterModes(t *testing.T) {
	todos := []model.Todo{
		{ID: 1, Title: "a", Completed: false},
		{ID: 2, Title: "b", Completed: true},
	}
	assertIDs(t, Filter(todos, model.FilterActive), 1)
	assertIDs(t, Filter(todos, model.FilterDone), 2)
	assertIDs(t, Filter(todos, model.FilterAll), 1, 2)
	if todos[0].ID != 1 || todos[1].ID != 2 || len(todos) != 2 {
		t.Fatalf("filter mutated input: %+v", todos)
	}
}

func TestSortByIDAscending(t *testing.T) {
	todos := []model.Todo{{ID: 9}, {ID: 2}, {ID: 5}}
	assertIDs(t, Sort(todos, model.SortByID), 2, 5, 9)
	assertIDs(t, todos, 9, 2, 5)
}

func TestSortMostRecentTieBreaks(t *testing.T) {
	todos := []model.Todo{
		{ID: 1, CreatedAt: t0, UpdatedAt: t0},
		{ID: 2, CreatedAt: t0, UpdatedAt: t0},
	}
	assertIDs(t, Sort(todos, model.SortMostRecent), 2, 1)

	todos = []model.Todo{
		{ID: 1, CreatedAt: t0, UpdatedAt: t2},
		{ID: 2, CreatedAt: t1, UpdatedAt: t1},
		{ID: 3, CreatedAt: t0, UpdatedAt: t1},
		{ID: 4, CreatedAt: t1, UpdatedAt: t1},
	}
	// updated desc: 1 first; among t1 ties created desc: 4, 2 (id desc), then 3.
	assertIDs(t, Sort(todos, model.SortMostRecent), 1, 4, 2, 3)
}

func TestSortMostRecentIsTotal(t *testing.T) {
	a := model.Todo{ID: 7, CreatedAt: t0, UpdatedAt: t0}
	b := model.Todo{ID: 8, CreatedAt: t0, UpdatedAt: t0}
	if CompareMostRecent(a, b) == 0 || CompareMostRecent(a, b) != -CompareMostRecent(b, a) {
		t.Fatalf("comparator not total/antisymmetric: %d %d", CompareMostRecent(a, b), CompareMostRecent(b, a))
	}
}

func TestDeriveCountsAllRecords(t *testing.T) {
	todos := []model.Todo{
		{ID: 1, Completed: true, CreatedAt: t0, UpdatedAt: t0},
		{ID: 2, Completed: false, CreatedAt: t0, UpdatedAt: t1},
		{ID: 3, Completed: true, CreatedAt: t0, UpdatedAt: t2},
	}
	v := Derive(todos, model.FilterActive, model.SortMostRecent)
	if v.Total != 3 || v.Completed != 2 {
		t.Fatalf("unexpected counters: total=%d completed=%d", v.Total, v.Completed)
	}
	assertIDs(t, v.Items, 2)

	v = Derive(todos, model.FilterDone, model.SortMostRecent)
	assertIDs(t, v.Items, 3, 1)

	v = Derive(nil, model.FilterAll, model.SortByID)
	if v.Total != 0 || v.Completed != 0 || len(v.Items) != 0 {
		t.Fatalf("expected empty view, got %+v", v)
	}
}

func TestEmptyText(t *testing.T) {
	texts := DefaultEmptyTexts()
	cases := []struct {
		status FetchStatus
		err    string
		want   string
	}{
		{FetchLoading, "", texts.Loading},
		{FetchLoading, "stale", texts.Loading},
		{FetchFailed, "HTTP 500", "HTTP 500"},
		{FetchFailed, "", texts.FailFallback},
		{FetchSucceeded, "", texts.Empty},
		{FetchIdle, "", texts.Empty},
	}
	for _, tc := range cases {
		if got := EmptyText(tc.status, tc.err, texts); got != tc.want {
			t.Fatalf("EmptyText(%s, %q) = %q, want %q", tc.status, tc.err, got, tc.want)
		}
	}
}
