package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/sandeepkv93/todolist/internal/config"
	"github.com/sandeepkv93/todolist/internal/model"
	"github.com/sandeepkv93/todolist/internal/remote"
	"github.com/sandeepkv93/todolist/internal/storage"
)

// newMirrorCmd syncs the seed mirror from the remote listing. Its
// subcommands curate the mirror by hand.
func newMirrorCmd(stdout, stderr io.Writer, configPath *string) *cobra.Command {
	var dbPath string

	open := func() (*storage.SQLiteRepository, error) {
		return storage.OpenSQLite(dbPath)
	}

	cmd := &cobra.Command{
		Use:   "mirror",
		Short: "Copy the remote listing into a SQLite seed mirror",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			log := stderrLogger(cfg, stderr, cmd.Name())

			repo, err := open()
			if err != nil {
				return err
			}
			defer repo.Close()

			client := remote.NewClient(cfg.Remote.BaseURL, cfg.Timeout(), remote.WithLogger(log))
			res, err := storage.Mirror(cmd.Context(), client, repo, time.Now(), log)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(stdout, "mirrored %d todos to %s (skipped %d)\n", res.Written, dbPath, res.Skipped)
			return err
		},
	}
	cmd.PersistentFlags().StringVar(&dbPath, "db", "", "SQLite database path")
	_ = cmd.MarkPersistentFlagRequired("db")

	cmd.AddCommand(
		newMirrorListCmd(stdout, open),
		newMirrorShowCmd(stdout, open),
		newMirrorAddCmd(stdout, open),
		newMirrorEditCmd(stdout, open),
		newMirrorRemoveCmd(stdout, open),
		newMirrorResetCmd(stdout, open),
	)
	return cmd
}

type openMirror func() (*storage.SQLiteRepository, error)

func newMirrorListCmd(stdout io.Writer, open openMirror) *cobra.Command {
	var state string
	var limit, offset int

	cmd := &cobra.Command{
		Use:   "ls",
		Short: "List mirrored todos by id",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := model.ParseFilter(state)
			if err != nil {
				return err
			}
			lf := storage.TodoListFilter{Limit: limit, Offset: offset}
			switch filter {
			case model.FilterActive:
				lf.Completed = new(bool)
			case model.FilterDone:
				done := true
				lf.Completed = &done
			}

			repo, err := open()
			if err != nil {
				return err
			}
			defer repo.Close()

			rows, err := repo.ListTodos(cmd.Context(), lf)
			if err != nil {
				return err
			}
			if len(rows) == 0 {
				_, err = fmt.Fprintln(stdout, "mirror is empty")
				return err
			}
			for _, row := range rows {
				if err := writeMirrorRow(stdout, row); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&state, "state", "all", "all, active or done")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum rows (0 for no limit)")
	cmd.Flags().IntVar(&offset, "offset", 0, "rows to skip")
	return cmd
}

func newMirrorShowCmd(stdout io.Writer, open openMirror) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Print one mirrored todo",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := mirrorID(args[0])
			if err != nil {
				return err
			}
			repo, err := open()
			if err != nil {
				return err
			}
			defer repo.Close()

			row, err := repo.GetTodo(cmd.Context(), id)
			if err != nil {
				return mirrorErr(id, err)
			}
			return writeMirrorRow(stdout, row)
		},
	}
}

func newMirrorAddCmd(stdout io.Writer, open openMirror) *cobra.Command {
	return &cobra.Command{
		Use:   "add <title>",
		Short: "Add a todo to the mirror under the next free id",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := open()
			if err != nil {
				return err
			}
			defer repo.Close()

			row, err := storage.AddToMirror(cmd.Context(), repo, strings.Join(args, " "), time.Now())
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(stdout, "added #%d\n", row.ID)
			return err
		},
	}
}

func newMirrorEditCmd(stdout io.Writer, open openMirror) *cobra.Command {
	var title string
	var toggle bool

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Rename or toggle a mirrored todo",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := mirrorID(args[0])
			if err != nil {
				return err
			}
			edit := storage.MirrorEdit{Toggle: toggle}
			if cmd.Flags().Changed("title") {
				edit.Title = &title
			}
			if edit.Title == nil && !edit.Toggle {
				return errors.New("nothing to change: pass --title or --toggle")
			}

			repo, err := open()
			if err != nil {
				return err
			}
			defer repo.Close()

			row, err := storage.EditInMirror(cmd.Context(), repo, id, edit, time.Now())
			if err != nil {
				return mirrorErr(id, err)
			}
			return writeMirrorRow(stdout, row)
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "new title")
	cmd.Flags().BoolVar(&toggle, "toggle", false, "flip the completed flag")
	return cmd
}

func newMirrorRemoveCmd(stdout io.Writer, open openMirror) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a mirrored todo",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := mirrorID(args[0])
			if err != nil {
				return err
			}
			repo, err := open()
			if err != nil {
				return err
			}
			defer repo.Close()

			if err := repo.DeleteTodo(cmd.Context(), id); err != nil {
				return mirrorErr(id, err)
			}
			_, err = fmt.Fprintf(stdout, "deleted #%d\n", id)
			return err
		},
	}
}

func newMirrorResetCmd(stdout io.Writer, open openMirror) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Drop every mirrored todo and recreate the schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := open()
			if err != nil {
				return err
			}
			defer repo.Close()

			if err := repo.Reset(); err != nil {
				return err
			}
			_, err = fmt.Fprintln(stdout, "mirror reset")
			return err
		},
	}
}

func writeMirrorRow(w io.Writer, row storage.Todo) error {
	mark := " "
	if row.Completed {
		mark = "x"
	}
	_, err := fmt.Fprintf(w, "[%s] %4d  %s  %s\n", mark, row.ID, model.FormatTimestamp(row.SyncedAt), row.Title)
	return err
}

func mirrorID(raw string) (int64, error) {
	id, ok := model.ParseID(raw)
	if !ok {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return int64(id), nil
}

func mirrorErr(id int64, err error) error {
	if errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("no mirrored todo #%d", id)
	}
	return err
}
