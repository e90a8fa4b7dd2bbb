package model

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrEmptyTitle     = errors.New("model: todo title is required")
	ErrInvalidID      = errors.New("model: invalid todo id")
	ErrTimestampOrder = errors.New("model: updated_at precedes created_at")
	ErrInvalidFilter  = errors.New("model: invalid filter")
	ErrInvalidSort    = errors.New("model: invalid sort order")
)

type TodoID int

// Todo is one task record held by the store. Timestamps are canonical
// UTC strings produced by FormatTimestamp.
type Todo struct {
	ID        TodoID `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

func (t Todo) Validate() error {
	if t.ID <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidID, t.ID)
	}
	if NormalizeTitle(t.Title) == "" {
		return ErrEmptyTitle
	}
	if strings.TrimSpace(t.CreatedAt) == "" {
		return errors.New("model: todo created_at is required")
	}
	if t.UpdatedAt < t.CreatedAt {
		return fmt.Errorf("%w: %s < %s", ErrTimestampOrder, t.UpdatedAt, t.CreatedAt)
	}
	return nil
}

// RemoteTodo is a record as served by the remote listing. ID is left
// untyped because the listing is not trusted to send numbers.
type RemoteTodo struct {
	UserID    int    `json:"userId,omitempty"`
	ID        any    `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

type Filter string

const (
	FilterAll    Filter = "all"
	FilterActive Filter = "active"
	FilterDone   Filter = "done"
)

func (f Filter) IsValid() bool {
	switch f {
	case FilterAll, FilterActive, FilterDone:
		return true
	default:
		return false
	}
}

// Next cycles all -> active -> done -> all.
func (f Filter) Next() Filter {
	switch f {
	case FilterAll:
		return FilterActive
	case FilterActive:
		return FilterDone
	default:
		return FilterAll
	}
}

func ParseFilter(raw string) (Filter, error) {
	f := Filter(strings.ToLower(strings.TrimSpace(raw)))
	if f == "" {
		return FilterAll, nil
	}
	if !f.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidFilter, raw)
	}
	return f, nil
}

type SortOrder string

const (
	SortMostRecent SortOrder = "most_recent"
	SortByID       SortOrder = "id"
)

func (s SortOrder) IsValid() bool {
	switch s {
	case SortMostRecent, SortByID:
		return true
	default:
		return false
	}
}

func (s SortOrder) Next() SortOrder {
	if s == SortMostRecent {
		return SortByID
	}
	return SortMostRecent
}

// ParseSortOrder accepts "recent" as an alias of most_recent.
func ParseSortOrder(raw string) (SortOrder, error) {
	v := strings.ToLower(strings.TrimSpace(raw))
	switch v {
	case "", "recent", "most-recent":
		return SortMostRecent, nil
	}
	s := SortOrder(v)
	if !s.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidSort, raw)
	}
	return s, nil
}

// EditBuffer is an in-progress edit of one record's title.
type EditBuffer struct {
	ID    TodoID
	Draft string
}

func (b EditBuffer) CanSave() bool {
	return strings.TrimSpace(b.Draft) != ""
}
