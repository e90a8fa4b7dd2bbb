package storage

import "time"

type Todo struct {
	ID        int64
	UserID    *int64
	Title     string
	Completed bool
	SyncedAt  time.Time
}

type TodoListFilter struct {
	Completed *bool
	Limit     int
	Offset    int
}
