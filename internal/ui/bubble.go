package ui

import (
	"strings"

	"github.com/ashwch/unforget/internal/picker"
	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

const (
	defaultWidth  = 80
	defaultHeight = 24

	// title, search box, list border, status and help lines
	chromeHeight = 1 + 3 + 2 + 1 + 1

	highlightMark = ">> "
	plainMark     = "   "
)

type bubblePickerModel struct {
	state  picker.State
	keys   Keymap
	help   help.Model
	styles styles
	source string
	width  int
	height int
	offset int
}

func newBubblePickerModel(opts Options, state picker.State) bubblePickerModel {
	return bubblePickerModel{
		state:  state,
		keys:   NewKeymap(opts.Keys),
		help:   help.New(),
		styles: newStyles(ThemeFor(opts.Theme)),
		source: opts.Source,
	}
}

func (m bubblePickerModel) Init() tea.Cmd { return nil }

func (m bubblePickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch k := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = k.Width, k.Height
		m.help.Width = k.Width
	case tea.KeyMsg:
		for _, ev := range m.keys.Events(k.String(), keyRunes(k)) {
			m.state = m.state.Update(ev)
		}
		if m.state.Done() {
			return m, tea.Quit
		}
	}
	m.offset = scrollOffset(m.state.RenderModel().Selected, m.offset, m.listRows())
	return m, nil
}

func keyRunes(k tea.KeyMsg) []rune {
	if k.Alt {
		return nil
	}
	switch k.Type {
	case tea.KeyRunes:
		return k.Runes
	case tea.KeySpace:
		return []rune{' '}
	default:
		return nil
	}
}

func (m bubblePickerModel) View() string {
	if m.state.Done() {
		return ""
	}
	model := m.state.RenderModel()
	width := m.viewWidth()
	inner := width - 2

	title := m.styles.title.Render("unforget")
	if m.source != "" {
		title += m.styles.subtitle.Render("  " + m.source)
	}

	search := m.styles.search.Width(inner).Render(model.Query)

	rows := m.listRows()
	lines := renderRows(model, m.offset, rows, inner)
	for i, line := range lines {
		if model.Selected >= 0 && m.offset+i == model.Selected {
			lines[i] = m.styles.selected.Width(inner).Render(line)
		} else {
			lines[i] = m.styles.item.Render(line)
		}
	}
	if len(lines) == 0 {
		lines = append(lines, m.styles.empty.Render("no matching commands"))
	}
	list := m.styles.list.Width(inner).Height(rows).Render(strings.Join(lines, "\n"))

	status := lipgloss.PlaceHorizontal(width, lipgloss.Center, m.styles.status.Render(model.Status()))

	return lipgloss.JoinVertical(lipgloss.Left, title, search, list, status, m.help.View(m.keys))
}

func (m bubblePickerModel) viewWidth() int {
	if m.width <= 0 {
		return defaultWidth
	}
	return m.width
}

func (m bubblePickerModel) listRows() int {
	height := m.height
	if height <= 0 {
		height = defaultHeight
	}
	return max(1, height-chromeHeight)
}

// scrollOffset keeps selected inside the window [offset, offset+rows).
func scrollOffset(selected, offset, rows int) int {
	if selected < 0 || rows <= 0 {
		return 0
	}
	if selected < offset {
		return selected
	}
	if selected >= offset+rows {
		return selected - rows + 1
	}
	return offset
}

// renderRows returns the unstyled visible rows, marked and cut to width.
func renderRows(model picker.RenderModel, offset, rows, width int) []string {
	if offset < 0 || offset >= len(model.Items) {
		offset = 0
	}
	end := min(len(model.Items), offset+rows)
	textWidth := max(1, width-runewidth.StringWidth(highlightMark))

	lines := make([]string, 0, end-offset)
	for _, item := range model.Items[offset:end] {
		mark := plainMark
		if item.Highlighted {
			mark = highlightMark
		}
		text := strings.ReplaceAll(item.Command, "\t", "    ")
		lines = append(lines, mark+runewidth.Truncate(text, textWidth, "…"))
	}
	return lines
}

func pickWithBubbleTea(opts Options, state picker.State) (picker.Result, error) {
	model := newBubblePickerModel(opts, state)
	final, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
	if err != nil {
		return picker.Result{}, err
	}
	out, ok := final.(bubblePickerModel)
	if !ok {
		return picker.Result{}, nil
	}
	return out.state.Result(), nil
}
