// Package tui is the terminal front-end. It drives the same controller as
// the desktop window.
package tui

import (
	"context"
	"os"
	"strings"

	"darkarchiver/internal/config"
	"darkarchiver/internal/controller"
	"darkarchiver/internal/log"
	"darkarchiver/internal/status"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Mode says where key presses go.
type Mode int

const (
	Normal Mode = iota
	Search
	Prompt
)

// statusMsg tells the program the status bar changed.
type statusMsg status.Message

// sortCycle is the order the s key walks through.
var sortCycle = append([]controller.Column{controller.ColumnNone}, controller.Columns...)

// Model is the bubbletea model.
type Model struct {
	ctrl   *controller.Controller
	styles Styles
	keys   KeyMap
	help   help.Model

	mode   Mode
	cursor int
	input  textinput.Model
	width  int
	height int

	// set while a prompt is open
	promptTitle string
	promptDone  func(string)

	statusCh chan status.Message
}

var _ controller.Dialogs = (*Model)(nil)

// New creates the model and attaches it as ctrl's dialogs.
func New(ctrl *controller.Controller, theme config.Theme) *Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = 4096

	m := &Model{
		ctrl:     ctrl,
		styles:   NewStyles(theme),
		keys:     DefaultKeyMap(),
		help:     help.New(),
		mode:     Normal,
		input:    ti,
		statusCh: make(chan status.Message, 16),
	}
	ctrl.SetDialogs(m)
	ctrl.Status().OnChange(func(msg status.Message) {
		select {
		case m.statusCh <- msg:
		default:
		}
	})
	return m
}

// Run starts the terminal UI and blocks until the user quits.
func Run(ctrl *controller.Controller, cfg *config.Config) error {
	p := tea.NewProgram(New(ctrl, cfg.Theme), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m *Model) waitForStatus() tea.Cmd {
	return func() tea.Msg {
		return statusMsg(<-m.statusCh)
	}
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return m.waitForStatus()
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.input.Width = max(msg.Width-4, 10)
		m.help.Width = msg.Width
	case statusMsg:
		return m, m.waitForStatus()
	}
	return m, nil
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.mode {
	case Search:
		return m.handleSearchKeys(msg)
	case Prompt:
		return m.handlePromptKeys(msg)
	default:
		return m.handleNormalKeys(msg)
	}
}

func (m *Model) handleNormalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ctx := context.Background()
	rows := m.ctrl.Rows()

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(rows)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Top):
		m.cursor = 0
	case key.Matches(msg, m.keys.Bottom):
		m.cursor = max(len(rows)-1, 0)
	case key.Matches(msg, m.keys.Toggle):
		if m.cursor < len(rows) {
			m.ctrl.Toggle(rows[m.cursor].ID)
		}
	case key.Matches(msg, m.keys.SelectAll):
		m.ctrl.Dispatch(ctx, controller.CmdSelectAll)
	case key.Matches(msg, m.keys.Search):
		m.mode = Search
		m.input.Placeholder = "search"
		m.input.SetValue(m.ctrl.Query())
		m.input.CursorEnd()
		return m, m.input.Focus()
	case key.Matches(msg, m.keys.Clear):
		m.ctrl.Dispatch(ctx, controller.CmdClearSearch)
	case key.Matches(msg, m.keys.Add):
		m.ctrl.Dispatch(ctx, controller.CmdAdd)
	case key.Matches(msg, m.keys.Delete):
		m.ctrl.Dispatch(ctx, controller.CmdDelete)
	case key.Matches(msg, m.keys.Copy):
		m.ctrl.Dispatch(ctx, controller.CmdCopy)
	case key.Matches(msg, m.keys.Export):
		m.ctrl.Dispatch(ctx, controller.CmdExport)
	case key.Matches(msg, m.keys.Edit):
		m.ctrl.Dispatch(ctx, controller.CmdEdit)
	case key.Matches(msg, m.keys.Preview):
		m.ctrl.Dispatch(ctx, controller.CmdTogglePreview)
	case key.Matches(msg, m.keys.Sort):
		m.cycleSort()
	case key.Matches(msg, m.keys.Reverse):
		if col, _ := m.ctrl.Sort(); col != controller.ColumnNone {
			m.ctrl.SortBy(col)
		}
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}

	m.clampCursor()
	if m.mode == Prompt {
		return m, m.input.Focus()
	}
	return m, nil
}

func (m *Model) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.mode = Normal
		m.input.Blur()
		return m, nil
	case "esc":
		m.mode = Normal
		m.input.Blur()
		m.input.SetValue("")
		m.ctrl.ClearSearch()
		m.clampCursor()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.ctrl.SetQuery(m.input.Value())
	m.clampCursor()
	return m, cmd
}

func (m *Model) handlePromptKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.closePrompt(strings.TrimSpace(m.input.Value()))
		return m, nil
	case "esc":
		m.closePrompt("")
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// closePrompt hands answer to the waiting dialog callback. An empty answer
// cancels.
func (m *Model) closePrompt(answer string) {
	done := m.promptDone
	m.mode = Normal
	m.promptDone = nil
	m.promptTitle = ""
	m.input.Blur()
	m.input.SetValue("")
	if done != nil {
		done(expandHome(answer))
	}
	m.clampCursor()
}

func (m *Model) openPrompt(title string, done func(string)) {
	m.mode = Prompt
	m.promptTitle = title
	m.promptDone = done
	m.input.Placeholder = "path"
	m.input.SetValue("")
}

// ChooseFiles asks for one path; a folder adds the files inside it.
func (m *Model) ChooseFiles(done func(paths []string)) {
	m.openPrompt("Add file or folder", func(path string) {
		if path == "" {
			done(nil)
			return
		}
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			done(nil)
			m.ctrl.AddFolder(path)
			return
		}
		done([]string{path})
	})
}

func (m *Model) ChooseFolder(done func(dir string)) {
	m.openPrompt("Add folder", done)
}

func (m *Model) ChooseDestination(title string, done func(dir string)) {
	log.Debugf("asking for destination: %s", title)
	m.openPrompt(title, done)
}

func (m *Model) cycleSort() {
	col, _ := m.ctrl.Sort()
	next := controller.ColumnNone
	for i, c := range sortCycle {
		if c == col {
			next = sortCycle[(i+1)%len(sortCycle)]
			break
		}
	}
	m.ctrl.SortBy(next)
}

func (m *Model) clampCursor() {
	n := len(m.ctrl.Rows())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// Cursor returns the cursor row.
func (m *Model) Cursor() int {
	return m.cursor
}

// Mode returns the input mode.
func (m *Model) Mode() Mode {
	return m.mode
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return home + path[1:]
		}
	}
	return path
}
