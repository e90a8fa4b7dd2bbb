package views

import (
	"fmt"
	"strings"
)

type TodoRowData struct {
	ID        int
	Title     string
	Completed bool
	UpdatedAt string
	Selected  bool
}

type ListPanelData struct {
	Filter    string
	Sort      string
	Total     int
	Completed int
	Rows      []TodoRowData
	EmptyText string
	Loading   bool
	Spinner   string
}

type AddPanelData struct {
	InputView string
	CanSubmit bool
}

type EditModalData struct {
	ID        int
	InputView string
	CanSave   bool
}

type HelpPanelData struct {
	Screen   string
	Bindings []string
	HelpView string
	Commands []string
}

func RenderCounters(total, completed int) string {
	return fmt.Sprintf("total: %d | completed: %d", total, completed)
}

func RenderFilterBar(filter, sort string) string {
	return fmt.Sprintf("filter: %s | sort: %s", filter, sort)
}

// RenderRows draws one line per todo. An empty slice renders emptyText.
func RenderRows(rows []TodoRowData, emptyText string) string {
	if len(rows) == 0 {
		return "  " + emptyText
	}
	var b strings.Builder
	for _, row := range rows {
		cursor := " "
		if row.Selected {
			cursor = ">"
		}
		mark := "[ ]"
		title := row.Title
		if row.Completed {
			mark = "[x]"
			title = doneStyle.Render(title)
		}
		b.WriteString(fmt.Sprintf("%s %s #%-4d %s\n", cursor, mark, row.ID, title))
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func RenderListPanel(data ListPanelData, body string) string {
	var b strings.Builder
	b.WriteString("todos:\n")
	b.WriteString(RenderCounters(data.Total, data.Completed) + "\n")
	b.WriteString(RenderFilterBar(data.Filter, data.Sort) + "\n")
	if data.Loading {
		b.WriteString(fmt.Sprintf("fetch: %s loading\n", data.Spinner))
	}
	b.WriteString("\n")
	b.WriteString(body)
	return strings.TrimSpace(b.String())
}

// RenderPlainList is the non-interactive listing used outside the TUI.
func RenderPlainList(data ListPanelData) string {
	var b strings.Builder
	b.WriteString(RenderCounters(data.Total, data.Completed) + "\n")
	b.WriteString(RenderFilterBar(data.Filter, data.Sort) + "\n")
	if len(data.Rows) == 0 {
		b.WriteString(data.EmptyText + "\n")
		return b.String()
	}
	for _, row := range data.Rows {
		mark := " "
		if row.Completed {
			mark = "x"
		}
		b.WriteString(fmt.Sprintf("[%s] %4d  %s  %s\n", mark, row.ID, row.UpdatedAt, row.Title))
	}
	return b.String()
}

func RenderAddPanel(data AddPanelData) string {
	var b strings.Builder
	b.WriteString("new todo:\n")
	b.WriteString(data.InputView + "\n")
	if data.CanSubmit {
		b.WriteString("actions: [enter]add [esc]cancel")
	} else {
		b.WriteString("actions: [esc]cancel (type a title to add)")
	}
	return b.String()
}

func RenderEditModal(data EditModalData) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("edit #%d:\n", data.ID))
	b.WriteString(data.InputView + "\n")
	if data.CanSave {
		b.WriteString("actions: [enter]save [esc]close")
	} else {
		b.WriteString("actions: [esc]close (title cannot be empty)")
	}
	return RenderModal(b.String())
}

func RenderCommandPalette(active bool, input string) string {
	if !active {
		return ""
	}
	return fmt.Sprintf("command: /%s", input)
}

func RenderNotification(level string, body string) string {
	if strings.TrimSpace(body) == "" {
		return ""
	}
	return fmt.Sprintf("notification: [%s] %s", strings.ToUpper(level), body)
}

func RenderHelpPanel(data HelpPanelData) string {
	var md strings.Builder
	md.WriteString("## Commands\n\n")
	for _, c := range data.Commands {
		md.WriteString("- `" + c + "`\n")
	}
	return fmt.Sprintf("help:\n%s screen:\n%s\n%s\n%s",
		strings.ToLower(data.Screen),
		strings.Join(data.Bindings, "\n"),
		data.HelpView,
		RenderMarkdown(md.String()),
	)
}
