package update

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/todolist/internal/derive"
	"github.com/sandeepkv93/todolist/internal/remote"
)

func fetchTodosCmd(src remote.Source, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}
		items, err := src.FetchTodos(ctx)
		if err != nil {
			return FetchFailedMsg{Err: remote.AsFetchError(err)}
		}
		return TodosFetchedMsg{Items: items}
	}
}

// beginFetch starts a fetch unless one is already outstanding.
func (m Model) beginFetch() (Model, tea.Cmd) {
	if m.source == nil {
		m.Status = StatusBar{Text: "no todo source configured", IsError: true}
		return m, nil
	}
	if m.FetchStatus == derive.FetchLoading {
		m.Status = StatusBar{Text: "fetch already in progress"}
		return m, nil
	}
	m.FetchStatus = derive.FetchLoading
	m.FetchErr = nil
	m.Status = StatusBar{Text: "fetching todos"}
	m.log.Info("fetch started")
	return m, tea.Batch(m.fetchSpinner.Tick, fetchTodosCmd(m.source, m.fetchTimeout))
}

func (m Model) onFetched(msg TodosFetchedMsg) Model {
	res := m.Store.BulkReplace(msg.Items)
	m.FetchStatus = derive.FetchSucceeded
	m.FetchErr = nil
	m.Cursor = 0
	m.clampCursor()
	text := fmt.Sprintf("loaded %d todos", res.Loaded)
	if res.Skipped > 0 {
		text += fmt.Sprintf(" (skipped %d)", res.Skipped)
		m.log.Warn("bulk replace skipped records", "skipped", res.Skipped)
	}
	m.Status = StatusBar{Text: text}
	m.log.Info("fetch complete", "loaded", res.Loaded, "skipped", res.Skipped, "next_id", m.Store.NextID())
	return m
}

func (m Model) onFetchFailed(msg FetchFailedMsg) Model {
	fe := msg.Err
	if fe == nil {
		fe = &remote.FetchError{}
	}
	m.FetchStatus = derive.FetchFailed
	m.FetchErr = fe
	m.Status = StatusBar{Text: m.fetchErrorText(), IsError: true}
	m.log.Warn("fetch failed", "error", fe.Message, "status", fe.Status)
	m.notify("Fetch Failed", m.fetchErrorText(), "error")
	return m
}

func (m Model) fetchErrorText() string {
	msg := ""
	if m.FetchErr != nil {
		msg = m.FetchErr.Message
	}
	return derive.EmptyText(derive.FetchFailed, msg, m.EmptyTexts)
}
