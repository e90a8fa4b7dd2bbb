package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/sandeepkv93/todolist/internal/config"
	"github.com/sandeepkv93/todolist/internal/derive"
	"github.com/sandeepkv93/todolist/internal/httpapi"
	"github.com/sandeepkv93/todolist/internal/logger"
	"github.com/sandeepkv93/todolist/internal/model"
	"github.com/sandeepkv93/todolist/internal/remote"
	"github.com/sandeepkv93/todolist/internal/storage"
	"github.com/sandeepkv93/todolist/internal/store"
	"github.com/sandeepkv93/todolist/internal/update"
	"github.com/sandeepkv93/todolist/internal/views"
)

// NewRootCmd builds the command tree with injectable output streams.
func NewRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:   "todolist",
		Short: "A terminal todo list seeded from a remote listing",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			return runTUI(cmd.Context(), cfg)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.PersistentFlags().StringVar(&configPath, "config", "", "TOML config file (created with defaults when missing)")

	root.AddCommand(
		newListCmd(stdout, stderr, &configPath),
		newServeCmd(stderr, &configPath),
		newMirrorCmd(stdout, stderr, &configPath),
	)
	return root
}

func Execute() int {
	root := NewRootCmd(os.Stdout, os.Stderr)
	if err := root.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "todolist failed: %v\n", err)
		return 1
	}
	return 0
}

func runTUI(ctx context.Context, cfg config.Config) error {
	log, closeLog, err := tuiLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	src, closeSrc, err := buildSource(cfg, log, nil)
	if err != nil {
		return err
	}
	defer closeSrc()

	var notifier update.DesktopNotifier = update.NoopDesktopNotifier{}
	if cfg.DesktopNotifications {
		notifier = update.ExecDesktopNotifier{}
	}
	m := update.NewModel(update.Options{
		Store:          store.New(),
		Source:         src,
		FetchTimeout:   cfg.Timeout(),
		Filter:         cfg.Filter(),
		Sort:           cfg.Sort(),
		Keys:           cfg.Keys,
		DesktopEnabled: cfg.DesktopNotifications,
		Notifier:       notifier,
		Logger:         log,
	})
	program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err = program.Run()
	return err
}

func newListCmd(stdout, stderr io.Writer, configPath *string) *cobra.Command {
	var filterFlag, sortFlag string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Fetch once and print the derived todo list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			filter := cfg.Filter()
			if cmd.Flags().Changed("filter") {
				if filter, err = model.ParseFilter(filterFlag); err != nil {
					return err
				}
			}
			order := cfg.Sort()
			if cmd.Flags().Changed("sort") {
				if order, err = model.ParseSortOrder(sortFlag); err != nil {
					return err
				}
			}

			log := stderrLogger(cfg, stderr, cmd.Name())
			src, closeSrc, err := buildSource(cfg, log, nil)
			if err != nil {
				return err
			}
			defer closeSrc()

			ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Timeout())
			defer cancel()
			items, err := src.FetchTodos(ctx)
			if err != nil {
				return err
			}
			s := store.New()
			res := s.BulkReplace(items)
			if res.Skipped > 0 {
				log.Warn("bulk replace skipped records", "skipped", res.Skipped)
			}

			view := derive.Derive(s.Snapshot(), filter, order)
			if jsonOutput {
				enc := json.NewEncoder(stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(view)
			}
			rows := make([]views.TodoRowData, 0, len(view.Items))
			for _, item := range view.Items {
				rows = append(rows, views.TodoRowData{
					ID:        int(item.ID),
					Title:     item.Title,
					Completed: item.Completed,
					UpdatedAt: item.UpdatedAt,
				})
			}
			_, err = io.WriteString(stdout, views.RenderPlainList(views.ListPanelData{
				Filter:    string(filter),
				Sort:      string(order),
				Total:     view.Total,
				Completed: view.Completed,
				Rows:      rows,
				EmptyText: derive.EmptyText(derive.FetchSucceeded, "", derive.DefaultEmptyTexts()),
			}))
			return err
		},
	}
	cmd.Flags().StringVar(&filterFlag, "filter", "", "all, active or done")
	cmd.Flags().StringVar(&sortFlag, "sort", "", "most_recent (recent) or id")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "print the view as JSON")
	return cmd
}

func newServeCmd(stderr io.Writer, configPath *string) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the todo store over a JSON API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.Server.Addr = addr
			}

			log := stderrLogger(cfg, stderr, cmd.Name())
			reg := prometheus.NewRegistry()
			src, closeSrc, err := buildSource(cfg, log, reg)
			if err != nil {
				return err
			}
			defer closeSrc()

			srv := httpapi.New(httpapi.Options{
				Store:        store.New(),
				Source:       src,
				FetchTimeout: cfg.Timeout(),
				Logger:       log,
				Registry:     reg,
			})
			if _, err := srv.Refresh(cmd.Context()); err != nil {
				log.Warn("initial refresh failed, serving an empty store", "error", err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return srv.Run(ctx, cfg.Server.Addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")
	return cmd
}

// buildSource picks the seed source named by the config. The returned
// closer is always safe to call.
func buildSource(cfg config.Config, log *slog.Logger, reg prometheus.Registerer) (remote.Source, func(), error) {
	if path, ok := cfg.SQLitePath(); ok {
		repo, err := storage.OpenSQLite(path)
		if err != nil {
			return nil, func() {}, err
		}
		log.Info("seeding from sqlite mirror", "path", path)
		return storage.NewSource(repo), func() { _ = repo.Close() }, nil
	}
	opts := []remote.Option{remote.WithLogger(log)}
	if reg != nil {
		opts = append(opts, remote.WithMetrics(remote.NewMetrics(reg)))
	}
	return remote.NewClient(cfg.Remote.BaseURL, cfg.Timeout(), opts...), func() {}, nil
}

// stderrLogger installs the process logger and tags records with the
// subcommand that produced them.
func stderrLogger(cfg config.Config, stderr io.Writer, command string) *slog.Logger {
	logger.Init(cfg.Log.Level, cfg.Log.JSON, stderr)
	return logger.With("command", command)
}

// tuiLogger keeps log output off the terminal the UI draws on.
func tuiLogger(cfg config.Config) (*slog.Logger, func(), error) {
	if cfg.Log.File == "" {
		return logger.Discard(), func() {}, nil
	}
	f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, func() {}, fmt.Errorf("open log file: %w", err)
	}
	return logger.Init(cfg.Log.Level, cfg.Log.JSON, f), func() { _ = f.Close() }, nil
}
