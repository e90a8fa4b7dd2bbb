package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const sqliteTimeLayout = time.RFC3339Nano

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) (*SQLiteRepository, error) {
	if db == nil {
		return nil, errors.New("storage: nil db")
	}
	return &SQLiteRepository{db: db}, nil
}

// OpenSQLite opens the database at path and applies pending migrations.
func OpenSQLite(path string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := MigrateUp(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	repo, err := NewSQLiteRepository(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return repo, nil
}

func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

// ReplaceTodos overwrites the whole mirror in one transaction.
func (r *SQLiteRepository) ReplaceTodos(ctx context.Context, in []Todo) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM todos`); err != nil {
		return fmt.Errorf("clear todos: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO todos (id, user_id, title, completed, synced_at)
		VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, item := range in {
		if _, err = stmt.ExecContext(ctx, item.ID, nullInt(item.UserID), item.Title, boolInt(item.Completed), mustTime(item.SyncedAt)); err != nil {
			return fmt.Errorf("insert todo %d: %w", item.ID, err)
		}
	}
	return tx.Commit()
}

func (r *SQLiteRepository) CreateTodo(ctx context.Context, in Todo) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO todos (id, user_id, title, completed, synced_at)
		VALUES (?, ?, ?, ?, ?)`,
		in.ID, nullInt(in.UserID), in.Title, boolInt(in.Completed), mustTime(in.SyncedAt),
	)
	return err
}

func (r *SQLiteRepository) GetTodo(ctx context.Context, id int64) (Todo, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, title, completed, synced_at
		FROM todos WHERE id = ?`, id)
	item, err := scanTodo(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Todo{}, ErrNotFound
		}
		return Todo{}, err
	}
	return item, nil
}

func (r *SQLiteRepository) UpdateTodo(ctx context.Context, in Todo) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE todos
		SET user_id = ?, title = ?, completed = ?, synced_at = ?
		WHERE id = ?`,
		nullInt(in.UserID), in.Title, boolInt(in.Completed), mustTime(in.SyncedAt), in.ID,
	)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

func (r *SQLiteRepository) DeleteTodo(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM todos WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

func (r *SQLiteRepository) ListTodos(ctx context.Context, filter TodoListFilter) ([]Todo, error) {
	query := `SELECT id, user_id, title, completed, synced_at FROM todos`
	args := make([]any, 0, 3)
	if filter.Completed != nil {
		query += ` WHERE completed = ?`
		args = append(args, boolInt(*filter.Completed))
	}
	query += ` ORDER BY id ASC`
	query += applyPagination(&args, filter.Limit, filter.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Todo, 0)
	for rows.Next() {
		item, scanErr := scanTodo(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

func nullInt(v *int64) any {
	if v == nil {
		return nil
	}
	return *v
}

func mustTime(v time.Time) string {
	return v.UTC().Format(sqliteTimeLayout)
}

func parseRequiredTime(v string) (time.Time, error) {
	return time.Parse(sqliteTimeLayout, v)
}

func boolInt(v bool) int {
	if v {
		return 1
	}
	return 0
}

func applyPagination(args *[]any, limit, offset int) string {
	sql := ""
	if limit > 0 {
		sql += " LIMIT ?"
		*args = append(*args, limit)
	} else if offset > 0 {
		sql += " LIMIT -1"
	}
	if offset > 0 {
		sql += " OFFSET ?"
		*args = append(*args, offset)
	}
	return sql
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTodo(s scanner) (Todo, error) {
	var out Todo
	var userID sql.NullInt64
	var completed int
	var synced string
	if err := s.Scan(&out.ID, &userID, &out.Title, &completed, &synced); err != nil {
		return Todo{}, err
	}
	syncedAt, err := parseRequiredTime(synced)
	if err != nil {
		return Todo{}, err
	}
	if userID.Valid {
		v := userID.Int64
		out.UserID = &v
	}
	out.Completed = completed == 1
	out.SyncedAt = syncedAt
	return out, nil
}

func checkRowsAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
