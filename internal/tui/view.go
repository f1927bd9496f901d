package tui

import (
	"fmt"
	"strings"

	"darkarchiver/internal/controller"
	"darkarchiver/internal/preview"

	"github.com/charmbracelet/lipgloss"
)

const (
	previewWidth = 36
	nameWidth    = 32
	sizeWidth    = 10
	typeWidth    = 8
)

// View implements tea.Model
func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render("Dark Archiver"))
	b.WriteString("\n\n")

	switch m.mode {
	case Search:
		b.WriteString(m.styles.Prompt.Render("Search"))
		b.WriteString(" ")
		b.WriteString(m.input.View())
	case Prompt:
		b.WriteString(m.styles.Prompt.Render(m.promptTitle))
		b.WriteString(" ")
		b.WriteString(m.input.View())
	default:
		if q := m.ctrl.Query(); q != "" {
			b.WriteString(m.styles.Help.Render(fmt.Sprintf("filter: %s (%d hidden)", q, m.ctrl.Hidden())))
		}
	}
	b.WriteString("\n\n")

	list := m.renderList()
	if m.ctrl.PreviewVisible() {
		list = lipgloss.JoinHorizontal(lipgloss.Top, list, "  ", m.renderPreview())
	}
	b.WriteString(list)
	b.WriteString("\n\n")

	b.WriteString(m.styles.StatusLine(m.ctrl.Status().Current()))
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))

	return m.styles.App.Render(b.String())
}

func (m *Model) renderList() string {
	var b strings.Builder
	b.WriteString(m.styles.Header.Render(m.header()))
	b.WriteString("\n")

	rows := m.ctrl.Rows()
	if len(rows) == 0 {
		b.WriteString(m.styles.Help.Render("  no files, press + to add"))
		return b.String()
	}

	start, end := m.window(len(rows))
	for i := start; i < end; i++ {
		r := rows[i]
		mark := "[ ]"
		if m.ctrl.IsSelected(r.ID) {
			mark = "[x]"
		}
		line := fmt.Sprintf("%s %s %s %s %s",
			mark,
			pad(r.Name, nameWidth),
			pad(r.Size, sizeWidth),
			pad(r.Type, typeWidth),
			r.Modified,
		)
		switch {
		case i == m.cursor:
			line = m.styles.Cursor.Render(line)
		case m.ctrl.IsSelected(r.ID):
			line = m.styles.Selected.Render(line)
		default:
			line = m.styles.Row.Render(line)
		}
		b.WriteString(line)
		if i < end-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (m *Model) header() string {
	col, desc := m.ctrl.Sort()
	title := func(c controller.Column) string {
		s := c.String()
		if c == col {
			if desc {
				s += " ▼"
			} else {
				s += " ▲"
			}
		}
		return s
	}
	return fmt.Sprintf("    %s %s %s %s",
		pad(title(controller.ColumnName), nameWidth),
		pad(title(controller.ColumnSize), sizeWidth),
		pad(title(controller.ColumnType), typeWidth),
		title(controller.ColumnModified),
	)
}

// window returns the slice of rows that fits the terminal around the cursor.
func (m *Model) window(n int) (int, int) {
	height := m.height - 10
	if m.height == 0 || height >= n {
		return 0, n
	}
	if height < 1 {
		height = 1
	}
	start := m.cursor - height/2
	if start < 0 {
		start = 0
	}
	if start+height > n {
		start = n - height
	}
	return start, start + height
}

func (m *Model) renderPreview() string {
	res := m.ctrl.Preview()
	var body string
	switch res.Kind {
	case preview.Empty:
		body = res.Message
	case preview.Thumbnail:
		b := res.Image.Bounds()
		body = fmt.Sprintf("%s\n[image %dx%d]", res.InfoText(), b.Dx(), b.Dy())
	default:
		body = strings.TrimRight(res.InfoText()+"\n"+res.Message, "\n")
	}
	return m.styles.Preview.Render(strings.TrimRight(body, "\n"))
}

func pad(s string, width int) string {
	r := []rune(s)
	if len(r) > width {
		return string(r[:width-1]) + "…"
	}
	return s + strings.Repeat(" ", width-len(r))
}
