package update

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/todolist/internal/derive"
	"github.com/sandeepkv93/todolist/internal/views"
)

func (m Model) Init() tea.Cmd {
	return func() tea.Msg { return RetryFetchMsg{} }
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.update(msg)
	next.syncViewport()
	return next, cmd
}

func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		if typed.String() == "ctrl+c" {
			m.Quitting = true
			return m, tea.Quit
		}
		if m.Palette.Active {
			return m.handlePaletteKey(typed)
		}
		switch m.Screen {
		case ScreenAdd:
			return m.handleAddKey(typed), nil
		case ScreenEdit:
			return m.handleEditKey(typed), nil
		}
		return m.handleListKey(typed)
	case tea.WindowSizeMsg:
		m.Width = typed.Width
		if typed.Width > 20 {
			m.listViewport.Width = min(typed.Width-4, 60)
		}
		if typed.Height > 12 {
			m.listViewport.Height = min(typed.Height-12, listHeight)
		}
		return m, nil
	case spinner.TickMsg:
		if m.FetchStatus == derive.FetchLoading {
			var cmd tea.Cmd
			m.fetchSpinner, cmd = m.fetchSpinner.Update(typed)
			return m, cmd
		}
	case RetryFetchMsg:
		return m.beginFetch()
	case TodosFetchedMsg:
		return m.onFetched(typed), nil
	case FetchFailedMsg:
		return m.onFetchFailed(typed), nil
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	}
	return m, nil
}

func (m Model) handleListKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case m.Keys.Palette:
		m.Palette.Active = true
		m.Palette.Input = ""
		m.commandInput.SetValue("")
		m.commandInput.Focus()
		m.Status = StatusBar{Text: "command palette active"}
	case m.Keys.Add:
		m.openAdd()
	case m.Keys.Toggle:
		m.toggleSelected()
	case m.Keys.Edit:
		m.openEdit()
	case m.Keys.Delete:
		m.deleteSelected()
	case m.Keys.Retry:
		return m.beginFetch()
	case m.Keys.Filter:
		m.Filter = m.Filter.Next()
		m.clampCursor()
		m.Status = StatusBar{Text: fmt.Sprintf("filter: %s", m.Filter)}
	case m.Keys.Sort:
		m.Sort = m.Sort.Next()
		m.clampCursor()
		m.Status = StatusBar{Text: fmt.Sprintf("sort: %s", m.Sort)}
	case m.Keys.Up, "up":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case m.Keys.Down, "down":
		if m.Cursor < len(m.visible().Items)-1 {
			m.Cursor++
		}
	case m.Keys.Help:
		m.HelpVisible = !m.HelpVisible
		if m.HelpVisible {
			m.Status = StatusBar{Text: "help shown"}
		} else {
			m.Status = StatusBar{Text: "help hidden"}
		}
	case m.Keys.Quit:
		m.Quitting = true
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) syncViewport() {
	v := m.visible()
	m.clampCursor()
	m.listViewport.SetContent(views.RenderRows(m.rowData(v), m.emptyText()))
	if m.Cursor < m.listViewport.YOffset {
		m.listViewport.SetYOffset(m.Cursor)
	} else if h := m.listViewport.Height; h > 0 && m.Cursor >= m.listViewport.YOffset+h {
		m.listViewport.SetYOffset(m.Cursor - h + 1)
	}
}

func (m Model) emptyText() string {
	msg := ""
	if m.FetchErr != nil {
		msg = m.FetchErr.Message
	}
	return derive.EmptyText(m.FetchStatus, msg, m.EmptyTexts)
}

func (m Model) View() string {
	v := m.visible()
	status := ""
	if m.Status.Text != "" {
		if m.Status.IsError {
			status = fmt.Sprintf("status: error: %s", m.Status.Text)
		} else {
			status = fmt.Sprintf("status: %s", m.Status.Text)
		}
	}

	left := views.RenderListPanel(views.ListPanelData{
		Filter:    string(m.Filter),
		Sort:      string(m.Sort),
		Total:     v.Total,
		Completed: v.Completed,
		Loading:   m.FetchStatus == derive.FetchLoading,
		Spinner:   m.fetchSpinner.View(),
	}, m.listViewport.View())

	right := strings.TrimSpace(strings.Join([]string{
		m.renderScreenPane(),
		m.renderCommandPalette(),
		m.renderHelpIfVisible(),
	}, "\n"))

	return views.RenderApp(views.AppData{
		Width:        m.Width,
		Header:       fmt.Sprintf("todolist | screen: %s | fetch: %s", m.Screen, m.FetchStatus),
		LeftPane:     left,
		RightPane:    right,
		StatusLine:   status,
		StatusError:  m.Status.IsError,
		Notification: m.renderNotificationsView(),
		Footer: fmt.Sprintf("keys: %s add | %s toggle | %s edit | %s delete | %s retry | %s filter | %s sort | %s cmd | %s help | %s quit",
			keyLabel(m.Keys.Add), keyLabel(m.Keys.Toggle), keyLabel(m.Keys.Edit), keyLabel(m.Keys.Delete), keyLabel(m.Keys.Retry),
			keyLabel(m.Keys.Filter), keyLabel(m.Keys.Sort), keyLabel(m.Keys.Palette), keyLabel(m.Keys.Help), keyLabel(m.Keys.Quit)),
	})
}
