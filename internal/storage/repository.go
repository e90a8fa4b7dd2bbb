package storage

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("storage: not found")

// Repository is the seed mirror: a local copy of the remote listing that
// can stand in for the remote source.
type Repository interface {
	ReplaceTodos(ctx context.Context, in []Todo) error
	CreateTodo(ctx context.Context, in Todo) error
	GetTodo(ctx context.Context, id int64) (Todo, error)
	UpdateTodo(ctx context.Context, in Todo) error
	DeleteTodo(ctx context.Context, id int64) error
	ListTodos(ctx context.Context, filter TodoListFilter) ([]Todo, error)
}
