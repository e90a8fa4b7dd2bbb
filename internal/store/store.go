// Package store holds the authoritative todo records and the next-id
// counter. Every mutation runs to completion under one lock, so callers
// never observe a partially applied change. Invalid input (an empty
// title, an unknown id) is absorbed as a no-op and reported only through
// the returned bool.
package store

import (
	"slices"
	"sync"
	"time"

	"github.com/sandeepkv93/todolist/internal/model"
)

type Clock func() time.Time

// ReplaceResult reports how many remote records became todos and how
// many were dropped for an unusable id, an empty title or a duplicate id.
type ReplaceResult struct {
	Loaded  int `json:"loaded"`
	Skipped int `json:"skipped"`
}

type Store struct {
	mu     sync.RWMutex
	items  []model.Todo
	nextID model.TodoID
	now    Clock
}

func New() *Store {
	return NewWithClock(time.Now)
}

func NewWithClock(now Clock) *Store {
	if now == nil {
		now = time.Now
	}
	return &Store{nextID: 1, now: now}
}

func (s *Store) timestamp() string {
	return model.FormatTimestamp(s.now())
}

// BulkReplace discards every held record and loads the remote batch. All
// loaded records share one timestamp captured once for the batch.
func (s *Store) BulkReplace(remote []model.RemoteTodo) ReplaceResult {
	ts := s.timestamp()

	items := make([]model.Todo, 0, len(remote))
	rawIDs := make([]any, 0, len(remote))
	seen := make(map[model.TodoID]struct{}, len(remote))
	res := ReplaceResult{}
	for _, r := range remote {
		rawIDs = append(rawIDs, r.ID)
		id, ok := model.ParseID(r.ID)
		title := model.NormalizeTitle(r.Title)
		if !ok || title == "" {
			res.Skipped++
			continue
		}
		if _, dup := seen[id]; dup {
			res.Skipped++
			continue
		}
		seen[id] = struct{}{}
		items = append(items, model.Todo{
			ID:        id,
			Title:     title,
			Completed: r.Completed,
			CreatedAt: ts,
			UpdatedAt: ts,
		})
	}
	res.Loaded = len(items)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = items
	s.nextID = model.NextIDAfter(rawIDs)
	return res
}

// Add creates a record at the front of insertion order. An empty
// normalized title creates nothing and leaves the counter alone.
func (s *Store) Add(rawTitle string) (model.Todo, bool) {
	title := model.NormalizeTitle(rawTitle)
	if title == "" {
		return model.Todo{}, false
	}
	ts := s.timestamp()

	s.mu.Lock()
	defer s.mu.Unlock()
	todo := model.Todo{
		ID:        s.nextID,
		Title:     title,
		Completed: false,
		CreatedAt: ts,
		UpdatedAt: ts,
	}
	s.nextID++
	s.items = slices.Insert(s.items, 0, todo)
	return todo, true
}

func (s *Store) Toggle(id model.TodoID) (model.Todo, bool) {
	ts := s.timestamp()

	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.indexOf(id)
	if idx < 0 {
		return model.Todo{}, false
	}
	todo := s.items[idx]
	todo.Completed = !todo.Completed
	todo.UpdatedAt = touchTimestamp(todo, ts)
	s.items[idx] = todo
	return todo, true
}

func (s *Store) Edit(id model.TodoID, rawTitle string) (model.Todo, bool) {
	title := model.NormalizeTitle(rawTitle)
	if title == "" {
		return model.Todo{}, false
	}
	ts := s.timestamp()

	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.indexOf(id)
	if idx < 0 {
		return model.Todo{}, false
	}
	todo := s.items[idx]
	todo.Title = title
	todo.UpdatedAt = touchTimestamp(todo, ts)
	s.items[idx] = todo
	return todo, true
}

// Remove deletes the record. The counter is never lowered, so the id is
// not handed out again by Add.
func (s *Store) Remove(id model.TodoID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.indexOf(id)
	if idx < 0 {
		return false
	}
	s.items = slices.Delete(s.items, idx, idx+1)
	return true
}

func (s *Store) Get(id model.TodoID) (model.Todo, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	idx := s.indexOf(id)
	if idx < 0 {
		return model.Todo{}, false
	}
	return s.items[idx], true
}

// Snapshot returns a copy of the records in insertion order.
func (s *Store) Snapshot() []model.Todo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.items)
}

func (s *Store) NextID() model.TodoID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.nextID
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

func (s *Store) indexOf(id model.TodoID) int {
	return slices.IndexFunc(s.items, func(t model.Todo) bool { return t.ID == id })
}

// touchTimestamp keeps updated_at >= created_at even if the clock steps
// backwards between mutations.
func touchTimestamp(t model.Todo, now string) string {
	if now < t.CreatedAt {
		return t.CreatedAt
	}
	return now
}
