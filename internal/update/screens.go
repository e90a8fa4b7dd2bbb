package update

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/todolist/internal/model"
	"github.com/sandeepkv93/todolist/internal/views"
)

func (m *Model) openAdd() {
	m.Screen = ScreenAdd
	m.addInput.SetValue("")
	m.addInput.Focus()
	m.Status = StatusBar{Text: "add a todo"}
}

func (m Model) canSubmit() bool {
	return model.NormalizeTitle(m.addInput.Value()) != ""
}

func (m Model) handleAddKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc":
		m.Screen = ScreenList
		m.addInput.Blur()
		m.addInput.SetValue("")
		m.Status = StatusBar{Text: "add cancelled"}
		return m
	case "enter":
		if !m.canSubmit() {
			m.Status = StatusBar{Text: "title cannot be empty", IsError: true}
			return m
		}
		todo, ok := m.Store.Add(m.addInput.Value())
		if !ok {
			m.Status = StatusBar{Text: "title cannot be empty", IsError: true}
			return m
		}
		m.Screen = ScreenList
		m.addInput.Blur()
		m.addInput.SetValue("")
		m.focusTodo(todo.ID)
		m.Status = StatusBar{Text: fmt.Sprintf("added #%d", todo.ID)}
		return m
	}
	var cmd tea.Cmd
	m.addInput, cmd = m.addInput.Update(msg)
	_ = cmd
	return m
}

// openEdit starts an edit buffer on the selected row.
func (m *Model) openEdit() {
	todo, ok := m.selected()
	if !ok {
		return
	}
	m.Edit = &model.EditBuffer{ID: todo.ID, Draft: todo.Title}
	m.editInput.SetValue(todo.Title)
	m.editInput.CursorEnd()
	m.editInput.Focus()
	m.Screen = ScreenEdit
	m.Status = StatusBar{Text: fmt.Sprintf("editing #%d", todo.ID)}
}

func (m *Model) closeEdit() {
	m.Edit = nil
	m.editInput.Blur()
	m.editInput.SetValue("")
	m.Screen = ScreenList
}

func (m Model) handleEditKey(msg tea.KeyMsg) Model {
	if m.Edit == nil {
		m.closeEdit()
		return m
	}
	switch msg.String() {
	case "esc":
		m.closeEdit()
		m.Status = StatusBar{Text: "edit closed"}
		return m
	case "enter":
		if !m.Edit.CanSave() {
			m.Status = StatusBar{Text: "title cannot be empty", IsError: true}
			return m
		}
		id := m.Edit.ID
		if _, ok := m.Store.Edit(id, m.Edit.Draft); ok {
			m.Status = StatusBar{Text: fmt.Sprintf("#%d renamed", id)}
			m.closeEdit()
			m.focusTodo(id)
			return m
		}
		m.closeEdit()
		m.Status = StatusBar{Text: fmt.Sprintf("#%d no longer exists", id), IsError: true}
		return m
	}
	var cmd tea.Cmd
	m.editInput, cmd = m.editInput.Update(msg)
	_ = cmd
	buf := *m.Edit
	buf.Draft = m.editInput.Value()
	m.Edit = &buf
	return m
}

func (m *Model) toggleSelected() {
	todo, ok := m.selected()
	if !ok {
		return
	}
	updated, ok := m.Store.Toggle(todo.ID)
	if !ok {
		return
	}
	state := "active"
	if updated.Completed {
		state = "done"
	}
	m.Status = StatusBar{Text: fmt.Sprintf("#%d marked %s", updated.ID, state)}
	m.clampCursor()
}

func (m *Model) deleteSelected() {
	todo, ok := m.selected()
	if !ok {
		return
	}
	if m.Store.Remove(todo.ID) {
		m.Status = StatusBar{Text: fmt.Sprintf("deleted #%d", todo.ID)}
	}
	m.clampCursor()
}

// focusTodo moves the cursor onto id when it is visible.
func (m *Model) focusTodo(id model.TodoID) {
	for i, item := range m.visible().Items {
		if item.ID == id {
			m.Cursor = i
			return
		}
	}
	m.clampCursor()
}

func (m Model) renderScreenPane() string {
	switch m.Screen {
	case ScreenAdd:
		return views.RenderAddPanel(views.AddPanelData{
			InputView: m.addInput.View(),
			CanSubmit: m.canSubmit(),
		})
	case ScreenEdit:
		if m.Edit == nil {
			return ""
		}
		return views.RenderEditModal(views.EditModalData{
			ID:        int(m.Edit.ID),
			InputView: m.editInput.View(),
			CanSave:   m.Edit.CanSave(),
		})
	default:
		return ""
	}
}
