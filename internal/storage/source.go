package storage

import (
	"context"
	"log/slog"
	"time"

	"github.com/sandeepkv93/todolist/internal/model"
	"github.com/sandeepkv93/todolist/internal/remote"
)

// Source serves the mirror as a remote listing so the store can be seeded
// without network access.
type Source struct {
	repo Repository
}

var _ remote.Source = (*Source)(nil)

func NewSource(repo Repository) *Source {
	return &Source{repo: repo}
}

func (s *Source) FetchTodos(ctx context.Context) ([]model.RemoteTodo, error) {
	rows, err := s.repo.ListTodos(ctx, TodoListFilter{})
	if err != nil {
		return nil, &remote.FetchError{Message: "mirror: " + err.Error()}
	}
	out := make([]model.RemoteTodo, 0, len(rows))
	for _, row := range rows {
		item := model.RemoteTodo{ID: row.ID, Title: row.Title, Completed: row.Completed}
		if row.UserID != nil {
			item.UserID = int(*row.UserID)
		}
		out = append(out, item)
	}
	return out, nil
}

type MirrorResult struct {
	Written int
	Skipped int
}

// Mirror fetches the listing from src and overwrites repo with it. Records
// whose id is not a positive integer, or repeats an earlier id, are skipped.
// Titles are stored as received.
func Mirror(ctx context.Context, src remote.Source, repo Repository, now time.Time, log *slog.Logger) (MirrorResult, error) {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	items, err := src.FetchTodos(ctx)
	if err != nil {
		return MirrorResult{}, err
	}

	var res MirrorResult
	seen := make(map[model.TodoID]struct{}, len(items))
	rows := make([]Todo, 0, len(items))
	for _, item := range items {
		id, ok := model.ParseID(item.ID)
		if !ok {
			res.Skipped++
			continue
		}
		if _, dup := seen[id]; dup {
			res.Skipped++
			continue
		}
		seen[id] = struct{}{}
		row := Todo{ID: int64(id), Title: item.Title, Completed: item.Completed, SyncedAt: now}
		if item.UserID != 0 {
			uid := int64(item.UserID)
			row.UserID = &uid
		}
		rows = append(rows, row)
	}
	if err := repo.ReplaceTodos(ctx, rows); err != nil {
		return MirrorResult{}, err
	}
	res.Written = len(rows)
	if res.Skipped > 0 {
		log.Warn("mirror skipped records", "skipped", res.Skipped)
	}
	log.Info("mirror written", "written", res.Written)
	return res, nil
}
