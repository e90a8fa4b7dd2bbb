package views

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

// AppData is one frame of the app. Width is the terminal width; zero
// falls back to defaultWidth.
type AppData struct {
	Width        int
	Header       string
	LeftPane     string
	RightPane    string
	StatusLine   string
	StatusError  bool
	Footer       string
	Notification string
}

const (
	defaultWidth = 116
	minPaneWidth = 40
	// border plus horizontal padding on each panel
	paneChrome   = 4
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	panelStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	modalStyle  = lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).BorderForeground(lipgloss.Color("11")).Padding(0, 1)
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	doneStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Strikethrough(true)
)

func RenderApp(data AppData) string {
	side := strings.TrimSpace(data.RightPane) != ""
	leftW, rightW := paneWidths(data.Width, side)
	left := panelStyle.Width(leftW).Render(data.LeftPane)
	row := left
	switch {
	case rightW > 0:
		right := panelStyle.Width(rightW).Render(data.RightPane)
		row = lipgloss.JoinHorizontal(lipgloss.Top, left, right)
	case side:
		row = lipgloss.JoinVertical(lipgloss.Left, left, panelStyle.Width(leftW).Render(data.RightPane))
	}

	status := statusStyle.Render(data.StatusLine)
	if data.StatusError {
		status = errorStyle.Render(data.StatusLine)
	}

	lines := []string{
		headerStyle.Render(data.Header),
		row,
		status,
	}
	if data.Notification != "" {
		lines = append(lines, panelStyle.Render(data.Notification))
	}
	if data.Footer != "" {
		lines = append(lines, footerStyle.Render(data.Footer))
	}
	return strings.Join(lines, "\n")
}

// paneWidths splits the terminal between the list and the side pane. The
// side pane gets 40%; below two minimum-width panes right is zero and the
// side pane is stacked under the list instead.
func paneWidths(total int, withSide bool) (left, right int) {
	if total <= 0 {
		total = defaultWidth
	}
	if !withSide {
		return max(total-paneChrome, minPaneWidth), 0
	}
	if total < 2*(minPaneWidth+paneChrome) {
		return max(total-paneChrome, minPaneWidth), 0
	}
	right = total*2/5 - paneChrome
	left = total - right - 2*paneChrome
	return left, right
}

// RenderModal frames content as the foreground dialog.
func RenderModal(content string) string {
	return modalStyle.Width(56).Render(content)
}

func RenderMarkdown(md string) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}
	out, err := glamour.Render(md, "dark")
	if err != nil {
		return md
	}
	return strings.TrimSpace(out)
}
