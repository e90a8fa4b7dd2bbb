package model

import (
	"errors"
	"testing"
)

func TestTodoValidateSuccess(t *testing.T) {
	todo := Todo{
		ID:        1,
		Title:     "Buy milk",
		CreatedAt: "2026-02-09T12:00:00.000Z",
		UpdatedAt: "2026-02-09T12:00:00.000Z",
	}
	if err := todo.Validate(); err != nil {
		t.Fatalf("expected valid todo, got error: %v", err)
	}
}

func TestTodoValidateRejectsBadRecords(t *testing.T) {
	base := Todo{
		ID:        3,
		Title:     "ok",
		CreatedAt: "2026-02-09T12:00:00.000Z",
		UpdatedAt: "2026-02-09T12:00:01.000Z",
	}

	bad := base
	bad.ID = 0
	if err := bad.Validate(); !errors.Is(err, ErrInvalidID) {
		t.Fatalf("expected ErrInvalidID, got: %v", err)
	}

	bad = base
	bad.Title = "   "
	if err := bad.Validate(); !errors.Is(err, ErrEmptyTitle) {
		t.Fatalf("expected ErrEmptyTitle, got: %v", err)
	}

	bad = base
	bad.UpdatedAt = "2026-02-09T11:59:59.000Z"
	if err := bad.Validate(); !errors.Is(err, ErrTimestampOrder) {
		t.Fatalf("expected ErrTimestampOrder, got: %v", err)
	}
}

func TestFilterAndSortParsing(t *testing.T) {
	cases := []struct {
		in   string
		want Filter
	}{
		{"", FilterAll},
		{"ALL", FilterAll},
		{" active ", FilterActive},
		{"done", FilterDone},
	}
	for _, tc := range cases {
		got, err := ParseFilter(tc.in)
		if err != nil || got != tc.want {
			t.Fatalf("ParseFilter(%q) = %q, %v; want %q", tc.in, got, err, tc.want)
		}
	}
	if _, err := ParseFilter("pending"); !errors.Is(err, ErrInvalidFilter) {
		t.Fatalf("expected ErrInvalidFilter, got: %v", err)
	}

	if s, err := ParseSortOrder("recent"); err != nil || s != SortMostRecent {
		t.Fatalf("ParseSortOrder(recent) = %q, %v", s, err)
	}
	if s, err := ParseSortOrder("id"); err != nil || s != SortByID {
		t.Fatalf("ParseSortOrder(id) = %q, %v", s, err)
	}
	if _, err := ParseSortOrder("title"); !errors.Is(err, ErrInvalidSort) {
		t.Fatalf("expected ErrInvalidSort, got: %v", err)
	}
}

func TestFilterAndSortCycle(t *testing.T) {
	f := FilterAll
	seen := []Filter{f}
	for i := 0; i < 3; i++ {
		f = f.Next()
		seen = append(seen, f)
	}
	want := []Filter{FilterAll, FilterActive, FilterDone, FilterAll}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("filter cycle = %v, want %v", seen, want)
		}
	}
	if SortMostRecent.Next() != SortByID || SortByID.Next() != SortMostRecent {
		t.Fatal("sort order should toggle between most_recent and id")
	}
}

func TestEditBufferCanSave(t *testing.T) {
	if (EditBuffer{ID: 1, Draft: " \t"}).CanSave() {
		t.Fatal("whitespace draft must not be saveable")
	}
	if !(EditBuffer{ID: 1, Draft: " x "}).CanSave() {
		t.Fatal("non-empty draft should be saveable")
	}
}
