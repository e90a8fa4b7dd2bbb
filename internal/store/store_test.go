package store

import (
	"testing"
	"time"

	"github.com/sandeepkv93/todolist/internal/model"
)

// stepClock returns a clock that advances one millisecond per call.
func stepClock(start time.Time) Clock {
	cur := start
	return func() time.Time {
		cur = cur.Add(time.Millisecond)
		return cur
	}
}

func newTestStore() *Store {
	return NewWithClock(stepClock(time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)))
}

func TestNewStoreIsEmpty(t *testing.T) {
	s := New()
	if s.Len() != 0 || s.NextID() != 1 {
		t.Fatalf("expected empty store with counter 1, got len=%d next=%d", s.Len(), s.NextID())
	}
}

func TestAddCreatesRecordAtFront(t *testing.T) {
	s := newTestStore()
	first, ok := s.Add("Buy milk")
	if !ok {
		t.Fatal("expected add to apply")
	}
	if first.ID != 1 || first.Title != "Buy milk" || first.Completed {
		t.Fatalf("unexpected record: %+v", first)
	}
	if first.CreatedAt != first.UpdatedAt {
		t.Fatalf("new record timestamps differ: %+v", first)
	}
	second, _ := s.Add("  walk   the dog ")
	if second.ID != 2 || second.Title != "walk the dog" {
		t.Fatalf("unexpected second record: %+v", second)
	}
	snap := s.Snapshot()
	if len(snap) != 2 || snap[0].ID != 2 || snap[1].ID != 1 {
		t.Fatalf("expected newest first, got %+v", snap)
	}
}

func TestAddRejectsEmptyTitles(t *testing.T) {
	s := newTestStore()
	for _, title := range []string{"", "   ", "\t\n"} {
		if _, ok := s.Add(title); ok {
			t.Fatalf("add(%q) should be rejected", title)
		}
	}
	if s.Len() != 0 || s.NextID() != 1 {
		t.Fatalf("rejected adds changed state: len=%d next=%d", s.Len(), s.NextID())
	}
}

func TestToggleFlipsAndRefreshesUpdatedAt(t *testing.T) {
	s := newTestStore()
	created, _ := s.Add("Buy milk")

	toggled, ok := s.Toggle(created.ID)
	if !ok || !toggled.Completed {
		t.Fatalf("expected completed after toggle, got %+v", toggled)
	}
	if toggled.CreatedAt != created.CreatedAt {
		t.Fatalf("created_at changed: %q -> %q", created.CreatedAt, toggled.CreatedAt)
	}
	if toggled.UpdatedAt <= created.UpdatedAt {
		t.Fatalf("updated_at not refreshed: %q -> %q", created.UpdatedAt, toggled.UpdatedAt)
	}

	again, _ := s.Toggle(created.ID)
	if again.Completed {
		t.Fatal("second toggle should clear completed")
	}

	if _, ok := s.Toggle(99); ok {
		t.Fatal("toggle of unknown id should be a no-op")
	}
}

func TestEditReplacesTitleOnly(t *testing.T) {
	s := newTestStore()
	created, _ := s.Add("draft")
	s.Toggle(created.ID)
	before, _ := s.Get(created.ID)

	edited, ok := s.Edit(created.ID, "  final   copy ")
	if !ok {
		t.Fatal("expected edit to apply")
	}
	if edited.Title != "final copy" || !edited.Completed || edited.CreatedAt != before.CreatedAt {
		t.Fatalf("unexpected edit result: %+v", edited)
	}
	if edited.UpdatedAt <= before.UpdatedAt {
		t.Fatalf("updated_at not refreshed: %q -> %q", before.UpdatedAt, edited.UpdatedAt)
	}

	if _, ok := s.Edit(created.ID, ""); ok {
		t.Fatal("edit with empty title should be rejected")
	}
	if _, ok := s.Edit(created.ID, "   "); ok {
		t.Fatal("edit with blank title should be rejected")
	}
	got, _ := s.Get(created.ID)
	if got != edited {
		t.Fatalf("rejected edit changed record: %+v vs %+v", got, edited)
	}
	if _, ok := s.Edit(42, "x"); ok {
		t.Fatal("edit of unknown id should be a no-op")
	}
}

func TestRemoveDoesNotResetCounter(t *testing.T) {
	s := newTestStore()
	s.Add("Buy milk")
	if !s.Remove(1) {
		t.Fatal("expected remove to apply")
	}
	if s.Len() != 0 {
		t.Fatalf("expected empty store, got %d", s.Len())
	}
	if s.Remove(1) {
		t.Fatal("second remove should be a no-op")
	}
	next, _ := s.Add("x")
	if next.ID != 2 {
		t.Fatalf("expected id 2 after removal, got %d", next.ID)
	}
}

func TestBulkReplaceStampsBatchAndDerivesCounter(t *testing.T) {
	s := newTestStore()
	s.Add("local one")
	s.Add("local two")
	s.Add("local three")

	res := s.BulkReplace([]model.RemoteTodo{
		{UserID: 1, ID: float64(5), Title: "a", Completed: false},
		{UserID: 1, ID: float64(2), Title: "b", Completed: true},
	})
	if res.Loaded != 2 || res.Skipped != 0 {
		t.Fatalf("unexpected replace result: %+v", res)
	}

	snap := s.Snapshot()
	if len(snap) != 2 {
		t.Fatalf("expected prior records discarded, got %+v", snap)
	}
	ts := snap[0].CreatedAt
	for _, todo := range snap {
		if todo.CreatedAt != todo.UpdatedAt || todo.CreatedAt != ts {
			t.Fatalf("batch timestamps not uniform: %+v", snap)
		}
	}
	if snap[0].ID != 5 || snap[1].ID != 2 || !snap[1].Completed {
		t.Fatalf("remote order or fields lost: %+v", snap)
	}

	added, _ := s.Add("c")
	if added.ID != 6 {
		t.Fatalf("expected id 6 after replace, got %d", added.ID)
	}
}

func TestBulkReplaceSkipsUnusableRecords(t *testing.T) {
	s := newTestStore()
	res := s.BulkReplace([]model.RemoteTodo{
		{ID: "3", Title: "string id"},
		{ID: "x", Title: "bad id"},
		{ID: float64(3), Title: "duplicate"},
		{ID: float64(4), Title: "   "},
		{ID: float64(9), Title: "  spaced\ttitle "},
	})
	if res.Loaded != 2 || res.Skipped != 3 {
		t.Fatalf("unexpected replace result: %+v", res)
	}
	got, ok := s.Get(9)
	if !ok || got.Title != "spaced title" {
		t.Fatalf("expected normalized remote title, got %+v", got)
	}
	if s.NextID() != 10 {
		t.Fatalf("expected counter 10, got %d", s.NextID())
	}
}

func TestBulkReplaceEmptyResetsCounter(t *testing.T) {
	s := newTestStore()
	s.Add("one")
	s.BulkReplace(nil)
	if s.Len() != 0 || s.NextID() != 1 {
		t.Fatalf("expected empty store with counter 1, got len=%d next=%d", s.Len(), s.NextID())
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	s := newTestStore()
	s.Add("one")
	snap := s.Snapshot()
	snap[0].Title = "mutated"
	got, _ := s.Get(1)
	if got.Title != "one" {
		t.Fatalf("snapshot aliases store state: %q", got.Title)
	}
}

func TestUpdatedAtNeverPrecedesCreatedAt(t *testing.T) {
	times := []time.Time{
		time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC),
		time.Date(2026, 2, 9, 11, 0, 0, 0, time.UTC),
	}
	i := 0
	s := NewWithClock(func() time.Time {
		tm := times[i%len(times)]
		i++
		return tm
	})
	created, _ := s.Add("clock skew")
	toggled, _ := s.Toggle(created.ID)
	if toggled.UpdatedAt < toggled.CreatedAt {
		t.Fatalf("updated_at precedes created_at: %+v", toggled)
	}
	if err := toggled.Validate(); err != nil {
		t.Fatalf("record invalid after skewed clock: %v", err)
	}
}

func TestBulkReplaceCounterClearsLargeIDs(t *testing.T) {
	s := newTestStore()
	res := s.BulkReplace([]model.RemoteTodo{
		{ID: float64(5), Title: "small"},
		{ID: float64(2147483647), Title: "int32 max"},
		{ID: "9007199254740991", Title: "largest id"},
	})
	if res.Loaded != 3 || res.Skipped != 0 {
		t.Fatalf("unexpected result: %+v", res)
	}
	next := s.NextID()
	for _, todo := range s.Snapshot() {
		if next <= todo.ID {
			t.Fatalf("counter %d is not greater than live id %d", next, todo.ID)
		}
	}
	added, ok := s.Add("after load")
	if !ok || added.ID != next {
		t.Fatalf("expected add to take id %d, got %+v", next, added)
	}
	if _, found := s.Get(model.TodoID(2147483647)); !found {
		t.Fatal("int32 max record should survive the add")
	}
}
