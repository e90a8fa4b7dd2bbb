package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sandeepkv93/todolist/internal/model"
)

var ErrEmptyTitle = errors.New("storage: title cannot be empty")

// AddToMirror appends a hand-written record to the mirror. It takes the
// next id after every mirrored id, the way the store hands out ids after
// a load.
func AddToMirror(ctx context.Context, repo Repository, rawTitle string, now time.Time) (Todo, error) {
	title := model.NormalizeTitle(rawTitle)
	if title == "" {
		return Todo{}, ErrEmptyTitle
	}
	rows, err := repo.ListTodos(ctx, TodoListFilter{})
	if err != nil {
		return Todo{}, err
	}
	ids := make([]any, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}
	item := Todo{ID: int64(model.NextIDAfter(ids)), Title: title, SyncedAt: now}
	if err := repo.CreateTodo(ctx, item); err != nil {
		return Todo{}, fmt.Errorf("create todo %d: %w", item.ID, err)
	}
	return item, nil
}

// MirrorEdit describes a change to one mirrored record. A nil Title keeps
// the current one.
type MirrorEdit struct {
	Title  *string
	Toggle bool
}

func EditInMirror(ctx context.Context, repo Repository, id int64, edit MirrorEdit, now time.Time) (Todo, error) {
	item, err := repo.GetTodo(ctx, id)
	if err != nil {
		return Todo{}, err
	}
	if edit.Title != nil {
		title := model.NormalizeTitle(*edit.Title)
		if title == "" {
			return Todo{}, ErrEmptyTitle
		}
		item.Title = title
	}
	if edit.Toggle {
		item.Completed = !item.Completed
	}
	item.SyncedAt = now
	if err := repo.UpdateTodo(ctx, item); err != nil {
		return Todo{}, err
	}
	return item, nil
}

// Reset drops the mirror schema and recreates it empty.
func (r *SQLiteRepository) Reset() error {
	if err := MigrateDown(r.db); err != nil {
		return err
	}
	return MigrateUp(r.db)
}
