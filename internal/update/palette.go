package update

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/todolist/internal/commands"
)

func (m Model) handlePaletteKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closePalette()
		m.Status = StatusBar{Text: "command palette closed"}
		return m, nil
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		return m.executePaletteCommand()
	}
	var cmd tea.Cmd
	m.commandInput, cmd = m.commandInput.Update(msg)
	_ = cmd
	m.Palette.Input = m.commandInput.Value()
	return m, nil
}

func (m *Model) closePalette() {
	m.Palette.Active = false
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	m.commandInput.Blur()
}

func (m Model) executePaletteCommand() (Model, tea.Cmd) {
	cmd, err := commands.Parse(m.Palette.Input)
	if err != nil {
		m.closePalette()
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m, nil
	}

	var follow tea.Cmd
	handlers := commands.StoreHandlers(m.Store)
	handlers.Filter = func(a commands.FilterArgs) (commands.Result, error) {
		m.Filter = a.Filter
		return commands.Result{Message: fmt.Sprintf("filter: %s", a.Filter)}, nil
	}
	handlers.Sort = func(a commands.SortArgs) (commands.Result, error) {
		m.Sort = a.Order
		return commands.Result{Message: fmt.Sprintf("sort: %s", a.Order)}, nil
	}
	handlers.Retry = func() (commands.Result, error) {
		var next Model
		next, follow = m.beginFetch()
		if follow == nil {
			return commands.Result{}, commands.Rejected("%s", next.Status.Text)
		}
		m = next
		return commands.Result{Message: m.Status.Text}, nil
	}

	res, err := commands.Execute(cmd, handlers)
	m.closePalette()
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		m.log.Debug("palette command rejected", "input", cmd.Raw, "error", err)
	} else {
		m.Status = StatusBar{Text: res.Message}
	}
	m.clampCursor()
	return m, follow
}
