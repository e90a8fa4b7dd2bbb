package update

import (
	"fmt"
	"log/slog"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"

	"github.com/sandeepkv93/todolist/internal/config"
	"github.com/sandeepkv93/todolist/internal/derive"
	"github.com/sandeepkv93/todolist/internal/model"
	"github.com/sandeepkv93/todolist/internal/remote"
	"github.com/sandeepkv93/todolist/internal/store"
)

type Screen string

const (
	ScreenList Screen = "List"
	ScreenAdd  Screen = "Add"
	ScreenEdit Screen = "Edit"
)

const listHeight = 16

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Add     string
	Toggle  string
	Edit    string
	Delete  string
	Retry   string
	Filter  string
	Sort    string
	Up      string
	Down    string
	Palette string
	Help    string
	Quit    string
}

// KeysFromConfig maps configured key names onto tea.KeyMsg strings.
func KeysFromConfig(k config.Keymap) GlobalKeyMap {
	return GlobalKeyMap{
		Add:     keyString(k.Add),
		Toggle:  keyString(k.Toggle),
		Edit:    keyString(k.Edit),
		Delete:  keyString(k.Delete),
		Retry:   keyString(k.Retry),
		Filter:  keyString(k.Filter),
		Sort:    keyString(k.Sort),
		Up:      keyString(k.Up),
		Down:    keyString(k.Down),
		Palette: keyString(k.Palette),
		Help:    keyString(k.Help),
		Quit:    keyString(k.Quit),
	}
}

func keyString(name string) string {
	if strings.EqualFold(strings.TrimSpace(name), "space") {
		return " "
	}
	return name
}

func keyLabel(k string) string {
	if k == " " {
		return "space"
	}
	return k
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

type Notification struct {
	Title string
	Body  string
	Level string
	At    time.Time
}

type DesktopNotifier interface {
	Send(Notification) error
}

type NoopDesktopNotifier struct{}

func (NoopDesktopNotifier) Send(Notification) error { return nil }

type ExecDesktopNotifier struct{}

func (ExecDesktopNotifier) Send(n Notification) error {
	switch runtime.GOOS {
	case "linux":
		return exec.Command("notify-send", n.Title, n.Body).Run()
	case "darwin":
		script := fmt.Sprintf(`display notification "%s" with title "%s"`, escapeAppleScript(n.Body), escapeAppleScript(n.Title))
		return exec.Command("osascript", "-e", script).Run()
	default:
		return nil
	}
}

// Model is the main screen. The store is the single source of truth; the
// visible list is derived from a fresh snapshot on every render.
type Model struct {
	Screen        Screen
	Store         *store.Store
	Filter        model.Filter
	Sort          model.SortOrder
	FetchStatus   derive.FetchStatus
	FetchErr      *remote.FetchError
	Cursor        int
	Edit          *model.EditBuffer
	Palette       CommandPaletteState
	HelpVisible   bool
	Notifications []Notification
	Status        StatusBar
	Keys          GlobalKeyMap
	EmptyTexts    derive.EmptyTexts
	Quitting      bool
	Width         int

	DesktopEnabled bool
	notifier       DesktopNotifier
	source         remote.Source
	fetchTimeout   time.Duration
	log            *slog.Logger

	addInput     textinput.Model
	editInput    textinput.Model
	commandInput textinput.Model
	fetchSpinner spinner.Model
	helpModel    help.Model
	listViewport viewport.Model
}

type Options struct {
	Store          *store.Store
	Source         remote.Source
	FetchTimeout   time.Duration
	Filter         model.Filter
	Sort           model.SortOrder
	Keys           config.Keymap
	DesktopEnabled bool
	Notifier       DesktopNotifier
	Logger         *slog.Logger
}

// TodosFetchedMsg carries a successful listing back into the loop.
type TodosFetchedMsg struct {
	Items []model.RemoteTodo
}

type FetchFailedMsg struct {
	Err *remote.FetchError
}

// RetryFetchMsg asks for a fetch; ignored while one is outstanding.
type RetryFetchMsg struct{}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

func NewModel(opts Options) Model {
	if opts.Store == nil {
		opts.Store = store.New()
	}
	if !opts.Filter.IsValid() {
		opts.Filter = model.FilterAll
	}
	if !opts.Sort.IsValid() {
		opts.Sort = model.SortMostRecent
	}
	if opts.Keys == (config.Keymap{}) {
		opts.Keys = config.Default().Keys
	}
	if opts.Notifier == nil {
		opts.Notifier = NoopDesktopNotifier{}
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	m := Model{
		Screen:         ScreenList,
		Store:          opts.Store,
		Filter:         opts.Filter,
		Sort:           opts.Sort,
		FetchStatus:    derive.FetchIdle,
		Keys:           KeysFromConfig(opts.Keys),
		EmptyTexts:     derive.DefaultEmptyTexts(),
		DesktopEnabled: opts.DesktopEnabled,
		notifier:       opts.Notifier,
		source:         opts.Source,
		fetchTimeout:   opts.FetchTimeout,
		log:            opts.Logger,
	}
	m.initBubbleComponents()
	return m
}

func (m *Model) initBubbleComponents() {
	m.addInput = textinput.New()
	m.addInput.Prompt = "add> "
	m.addInput.Placeholder = "What needs doing?"
	m.addInput.CharLimit = 256
	m.addInput.Width = 48

	m.editInput = textinput.New()
	m.editInput.Prompt = "title> "
	m.editInput.CharLimit = 256
	m.editInput.Width = 44

	m.commandInput = textinput.New()
	m.commandInput.Prompt = "/"
	m.commandInput.CharLimit = 256
	m.commandInput.Width = 48

	m.fetchSpinner = spinner.New()
	m.fetchSpinner.Spinner = spinner.Dot

	m.helpModel = help.New()
	m.listViewport = viewport.New(60, listHeight)
}

// visible derives the current list from the authoritative store.
func (m Model) visible() derive.View {
	return derive.Derive(m.Store.Snapshot(), m.Filter, m.Sort)
}

func (m Model) selected() (model.Todo, bool) {
	items := m.visible().Items
	if m.Cursor < 0 || m.Cursor >= len(items) {
		return model.Todo{}, false
	}
	return items[m.Cursor], true
}

func (m *Model) clampCursor() {
	n := len(m.visible().Items)
	if m.Cursor >= n {
		m.Cursor = n - 1
	}
	if m.Cursor < 0 {
		m.Cursor = 0
	}
}
