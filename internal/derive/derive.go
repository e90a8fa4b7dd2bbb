// Package derive computes what a list view renders from the store's
// records and the current filter and sort selection. Nothing here
// mutates its input.
package derive

import (
	"cmp"
	"slices"

	"github.com/sandeepkv93/todolist/internal/model"
)

type FetchStatus string

const (
	FetchIdle      FetchStatus = "idle"
	FetchLoading   FetchStatus = "loading"
	FetchSucceeded FetchStatus = "succeeded"
	FetchFailed    FetchStatus = "failed"
)

// View is the display-ready sequence plus counters. Total and Completed
// always count every record, not just the filtered ones.
type View struct {
	Items     []model.Todo `json:"items"`
	Total     int          `json:"total"`
	Completed int          `json:"completed"`
}

func Derive(todos []model.Todo, filter model.Filter, order model.SortOrder) View {
	total, completed := Counts(todos)
	return View{
		Items:     Sort(Filter(todos, filter), order),
		Total:     total,
		Completed: completed,
	}
}

func Filter(todos []model.Todo, filter model.Filter) []model.Todo {
	out := make([]model.Todo, 0, len(todos))
	for _, t := range todos {
		switch filter {
		case model.FilterActive:
			if t.Completed {
				continue
			}
		case model.FilterDone:
			if !t.Completed {
				continue
			}
		}
		out = append(out, t)
	}
	return out
}

// Sort returns a sorted copy. SortMostRecent orders by updated_at, then
// created_at, then id, all descending; a bulk load gives a whole batch
// the same timestamps, so the id is what makes the order total.
func Sort(todos []model.Todo, order model.SortOrder) []model.Todo {
	out := slices.Clone(todos)
	if order == model.SortByID {
		slices.SortStableFunc(out, func(a, b model.Todo) int { return cmp.Compare(a.ID, b.ID) })
		return out
	}
	slices.SortStableFunc(out, CompareMostRecent)
	return out
}

func CompareMostRecent(a, b model.Todo) int {
	if c := model.CompareTimestampsDesc(a.UpdatedAt, b.UpdatedAt); c != 0 {
		return c
	}
	if c := model.CompareTimestampsDesc(a.CreatedAt, b.CreatedAt); c != 0 {
		return c
	}
	return cmp.Compare(b.ID, a.ID)
}

func Counts(todos []model.Todo) (total, completed int) {
	for _, t := range todos {
		if t.Completed {
			completed++
		}
	}
	return len(todos), completed
}

type EmptyTexts struct {
	Loading      string
	Empty        string
	FailFallback string
}

func DefaultEmptyTexts() EmptyTexts {
	return EmptyTexts{
		Loading:      "Loading...",
		Empty:        "Nothing here yet.",
		FailFallback: "Error",
	}
}

// EmptyText picks the placeholder shown when the derived list is empty.
// Fetch status belongs to the caller, not the store.
func EmptyText(status FetchStatus, fetchErr string, texts EmptyTexts) string {
	switch status {
	case FetchLoading:
		return texts.Loading
	case FetchFailed:
		if fetchErr != "" {
			return fetchErr
		}
		return texts.FailFallback
	default:
		return texts.Empty
	}
}
