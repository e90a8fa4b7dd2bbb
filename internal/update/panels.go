package update

import (
	"strings"
	"time"

	"github.com/sandeepkv93/todolist/internal/derive"
	"github.com/sandeepkv93/todolist/internal/views"
)

func (m Model) renderCommandPalette() string {
	if !m.Palette.Active {
		return ""
	}
	return views.RenderCommandPalette(true, m.commandInput.Value())
}

func (m Model) renderNotificationsView() string {
	if len(m.Notifications) == 0 {
		return ""
	}
	n := m.Notifications[len(m.Notifications)-1]
	return views.RenderNotification(n.Level, n.Body)
}

func (m Model) rowData(v derive.View) []views.TodoRowData {
	rows := make([]views.TodoRowData, 0, len(v.Items))
	for i, item := range v.Items {
		rows = append(rows, views.TodoRowData{
			ID:        int(item.ID),
			Title:     item.Title,
			Completed: item.Completed,
			UpdatedAt: item.UpdatedAt,
			Selected:  i == m.Cursor,
		})
	}
	return rows
}

func (m *Model) notify(title, body, level string) {
	if strings.TrimSpace(body) == "" {
		return
	}
	n := Notification{
		Title: title,
		Body:  body,
		Level: level,
		At:    time.Now().UTC(),
	}
	m.Notifications = append(m.Notifications, n)
	if len(m.Notifications) > 40 {
		m.Notifications = m.Notifications[len(m.Notifications)-40:]
	}
	if m.DesktopEnabled && m.notifier != nil {
		if err := m.notifier.Send(n); err != nil {
			m.log.Debug("desktop notification failed", "error", err)
		}
	}
}
