package update

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"

	"github.com/sandeepkv93/todolist/internal/views"
)

type KeyBinding struct {
	Key    string
	Action string
}

type helpKeyMap struct {
	short []key.Binding
	full  [][]key.Binding
}

func (k helpKeyMap) ShortHelp() []key.Binding  { return k.short }
func (k helpKeyMap) FullHelp() [][]key.Binding { return k.full }

var paletteCommands = []string{
	"add <title>",
	"toggle <id>",
	"edit <id> <title>",
	"delete <id>",
	"filter all|active|done",
	"sort recent|id",
	"retry",
}

func (m Model) renderHelpIfVisible() string {
	if !m.HelpVisible {
		return ""
	}
	return m.renderHelpView()
}

func (m Model) renderHelpView() string {
	bindings := m.helpBindings()
	var plain []string
	for _, kb := range m.screenBindings() {
		plain = append(plain, fmt.Sprintf("- %s: %s", kb.Key, kb.Action))
	}
	return views.RenderHelpPanel(views.HelpPanelData{
		Screen:   string(m.Screen),
		Bindings: plain,
		HelpView: m.helpModel.View(helpKeyMap{
			short: bindings,
			full:  [][]key.Binding{bindings},
		}),
		Commands: paletteCommands,
	})
}

func (m Model) globalBindings() []KeyBinding {
	return []KeyBinding{
		{Key: keyLabel(m.Keys.Palette), Action: "open command palette"},
		{Key: keyLabel(m.Keys.Help), Action: "toggle help panel"},
		{Key: keyLabel(m.Keys.Quit), Action: "quit app"},
	}
}

func (m Model) screenBindings() []KeyBinding {
	switch m.Screen {
	case ScreenAdd:
		return []KeyBinding{
			{Key: "enter", Action: "add todo"},
			{Key: "esc", Action: "cancel"},
		}
	case ScreenEdit:
		return []KeyBinding{
			{Key: "enter", Action: "save title"},
			{Key: "esc", Action: "close without saving"},
		}
	default:
		return []KeyBinding{
			{Key: keyLabel(m.Keys.Add), Action: "new todo"},
			{Key: keyLabel(m.Keys.Toggle), Action: "toggle completed"},
			{Key: keyLabel(m.Keys.Edit), Action: "edit title"},
			{Key: keyLabel(m.Keys.Delete), Action: "delete todo"},
			{Key: keyLabel(m.Keys.Retry), Action: "refetch"},
			{Key: keyLabel(m.Keys.Filter), Action: "cycle filter"},
			{Key: keyLabel(m.Keys.Sort), Action: "cycle sort"},
			{Key: keyLabel(m.Keys.Down) + "/" + keyLabel(m.Keys.Up), Action: "move cursor"},
		}
	}
}

func (m Model) helpBindings() []key.Binding {
	out := make([]key.Binding, 0, len(m.globalBindings())+len(m.screenBindings()))
	for _, kb := range m.globalBindings() {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	for _, kb := range m.screenBindings() {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	return out
}
