package tui

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"darkarchiver/internal/config"
	"darkarchiver/internal/controller"
	"darkarchiver/internal/status"
	"darkarchiver/pkg/testutils"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestModel(t *testing.T, paths ...string) (*Model, *controller.Controller) {
	t.Helper()
	cfg := config.NewTestConfig()
	cfg.Status.ResetAfter = time.Hour
	opts, err := controller.OptionsFromConfig(cfg)
	require.NoError(t, err)
	ctrl := controller.New(opts)
	t.Cleanup(ctrl.Close)
	if len(paths) > 0 {
		ctrl.AddFiles(paths)
	}
	return New(ctrl, cfg.Theme), ctrl
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(m *Model, keys ...string) {
	for _, k := range keys {
		m.Update(keyMsg(k))
	}
}

func typeText(m *Model, text string) {
	for _, r := range text {
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func rowNames(ctrl *controller.Controller) []string {
	var out []string
	for _, r := range ctrl.Rows() {
		out = append(out, r.Name)
	}
	return out
}

func TestCursorMovesWithinRows(t *testing.T) {
	paths := testutils.CreateOrderedFiles(t, t.TempDir(), "a.txt", "b.txt", "c.txt")
	m, _ := newTestModel(t, paths...)

	press(m, "k")
	assert.Equal(t, 0, m.Cursor())
	press(m, "j", "down", "j", "j")
	assert.Equal(t, 2, m.Cursor())
	press(m, "up")
	assert.Equal(t, 1, m.Cursor())
}

func TestSpaceTogglesSelection(t *testing.T) {
	paths := testutils.CreateOrderedFiles(t, t.TempDir(), "a.txt", "b.txt")
	m, ctrl := newTestModel(t, paths...)

	press(m, "j", " ")
	require.Len(t, ctrl.Selection(), 1)
	assert.Equal(t, ctrl.Rows()[1].ID, ctrl.Selection()[0])

	press(m, " ")
	assert.Empty(t, ctrl.Selection())

	press(m, "a")
	assert.Len(t, ctrl.Selection(), 2)
}

func TestSearchMode(t *testing.T) {
	paths := testutils.CreateOrderedFiles(t, t.TempDir(), "image1.png", "doc.txt", "image2.jpg")
	m, ctrl := newTestModel(t, paths...)

	press(m, "/")
	assert.Equal(t, Search, m.Mode())
	typeText(m, "img")
	assert.Equal(t, "img", ctrl.Query())
	assert.Empty(t, ctrl.Rows())

	press(m, "esc")
	assert.Equal(t, Normal, m.Mode())
	assert.Equal(t, "", ctrl.Query())
	assert.Len(t, ctrl.Rows(), 3)

	press(m, "/")
	typeText(m, "image")
	press(m, "enter")
	assert.Equal(t, Normal, m.Mode())
	assert.Equal(t, []string{"image1.png", "image2.jpg"}, rowNames(ctrl))
	assert.Contains(t, m.View(), "filter: image")

	// keys typed while searching never reach the list
	press(m, "/")
	typeText(m, "q")
	assert.Equal(t, Search, m.Mode())
}

func TestDeleteKey(t *testing.T) {
	paths := testutils.CreateOrderedFiles(t, t.TempDir(), "a.txt", "b.txt")
	m, ctrl := newTestModel(t, paths...)

	press(m, "d")
	assert.Equal(t, "Please select files to delete", ctrl.Status().Current().Text)

	press(m, "j", " ", "d")
	assert.Equal(t, []string{"a.txt"}, rowNames(ctrl))
	assert.Equal(t, 0, m.Cursor())
}

func TestCopyPromptsForDestination(t *testing.T) {
	paths := testutils.CreateOrderedFiles(t, t.TempDir(), "a.txt")
	dest := t.TempDir()
	m, ctrl := newTestModel(t, paths...)

	press(m, "c")
	assert.Equal(t, Normal, m.Mode(), "no prompt without a selection")
	assert.Equal(t, "Please select files to copy", ctrl.Status().Current().Text)

	press(m, " ", "c")
	require.Equal(t, Prompt, m.Mode())
	assert.Contains(t, m.View(), controller.CopyTitle)

	typeText(m, dest)
	press(m, "enter")
	assert.Equal(t, Normal, m.Mode())
	assert.Equal(t, "Copied 1 files successfully", ctrl.Status().Current().Text)

	got, err := os.ReadFile(filepath.Join(dest, "a.txt"))
	require.NoError(t, err)
	assert.Equal(t, "content of a.txt", string(got))
}

func TestPromptEscCancels(t *testing.T) {
	paths := testutils.CreateOrderedFiles(t, t.TempDir(), "a.txt")
	dest := t.TempDir()
	m, ctrl := newTestModel(t, paths...)

	press(m, " ", "e")
	require.Equal(t, Prompt, m.Mode())
	typeText(m, dest)

	gen := ctrl.Status().Generation()
	before := ctrl.Status().Current()
	press(m, "esc")

	assert.Equal(t, Normal, m.Mode())
	assert.Equal(t, gen, ctrl.Status().Generation(), "cancelling shows no message")
	assert.Equal(t, before, ctrl.Status().Current())

	entries, err := os.ReadDir(dest)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestAddPromptAcceptsFolder(t *testing.T) {
	dir := t.TempDir()
	testutils.CreateOrderedFiles(t, dir, "x.txt", "y.txt")
	m, ctrl := newTestModel(t)

	press(m, "+")
	require.Equal(t, Prompt, m.Mode())
	typeText(m, dir)
	press(m, "enter")

	assert.ElementsMatch(t, []string{"x.txt", "y.txt"}, rowNames(ctrl))
}

func TestAddPromptAcceptsFile(t *testing.T) {
	paths := testutils.CreateOrderedFiles(t, t.TempDir(), "z.md")
	m, ctrl := newTestModel(t)

	press(m, "+")
	typeText(m, paths[0])
	press(m, "enter")

	assert.Equal(t, []string{"z.md"}, rowNames(ctrl))
	assert.Equal(t, "Added 1 files", ctrl.Status().Current().Text)
}

func TestSortKeyCycles(t *testing.T) {
	paths := testutils.CreateOrderedFiles(t, t.TempDir(), "b.txt", "c.txt", "a.txt")
	m, ctrl := newTestModel(t, paths...)

	press(m, "s")
	col, desc := ctrl.Sort()
	assert.Equal(t, controller.ColumnName, col)
	assert.False(t, desc)
	assert.Equal(t, []string{"a.txt", "b.txt", "c.txt"}, rowNames(ctrl))

	press(m, "S")
	assert.Equal(t, []string{"c.txt", "b.txt", "a.txt"}, rowNames(ctrl))

	press(m, "s", "s", "s", "s")
	col, _ = ctrl.Sort()
	assert.Equal(t, controller.ColumnNone, col)
	assert.Equal(t, []string{"b.txt", "c.txt", "a.txt"}, rowNames(ctrl))
}

func TestPreviewToggleAndView(t *testing.T) {
	paths := testutils.CreateOrderedFiles(t, t.TempDir(), "notes.txt")
	m, ctrl := newTestModel(t, paths...)

	visible := ctrl.PreviewVisible()
	assert.Contains(t, m.View(), "notes.txt")

	press(m, "p")
	assert.Equal(t, !visible, ctrl.PreviewVisible())
	if !ctrl.PreviewVisible() {
		press(m, "p")
	}

	assert.Contains(t, m.View(), "No file selected")
	press(m, " ")
	view := m.View()
	assert.Contains(t, view, "Name: notes.txt")
	assert.Contains(t, view, "No preview available")
}

func TestQuitKeys(t *testing.T) {
	m, _ := newTestModel(t)

	_, cmd := m.Update(keyMsg("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestStatusChangesReachProgram(t *testing.T) {
	m, ctrl := newTestModel(t)

	ctrl.Status().Warn("careful")
	msg := m.waitForStatus()()
	assert.Equal(t, statusMsg{Text: "careful", Level: status.Warning}, msg)
	assert.Contains(t, testutils.StripANSI(m.View()), "careful")
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "out"), expandHome("~/out"))
	assert.Equal(t, "/tmp/x", expandHome("/tmp/x"))
}

func TestPad(t *testing.T) {
	assert.Equal(t, "ab  ", pad("ab", 4))
	assert.Equal(t, "abc…", pad("abcdef", 4))
}

func TestHelpToggle(t *testing.T) {
	m, _ := newTestModel(t)

	assert.NotContains(t, m.View(), "reverse sort")
	press(m, "?")
	assert.Contains(t, m.View(), "reverse sort")
}
