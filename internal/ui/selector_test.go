package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/ashwch/unforget/internal/config"
	"github.com/ashwch/unforget/internal/picker"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/gdamore/tcell/v2"
)

var sampleHistory = []string{"ls -la", "git status", "git commit -m \"fix\""}

func newTestModel() bubblePickerModel {
	return newBubblePickerModel(Options{Keys: config.Default().Keys, Source: "/home/u/.bash_history"}, picker.New(sampleHistory, ""))
}

func send(t *testing.T, m bubblePickerModel, msgs ...tea.Msg) (bubblePickerModel, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, msg := range msgs {
		var next tea.Model
		next, cmd = m.Update(msg)
		out, ok := next.(bubblePickerModel)
		if !ok {
			t.Fatalf("unexpected model type %T", next)
		}
		m = out
	}
	return m, cmd
}

func TestScrollOffsetKeepsSelectionVisible(t *testing.T) {
	if got := scrollOffset(-1, 4, 10); got != 0 {
		t.Fatalf("expected offset 0 without selection, got %d", got)
	}
	if got := scrollOffset(3, 0, 10); got != 0 {
		t.Fatalf("expected offset to stay 0, got %d", got)
	}
	if got := scrollOffset(12, 0, 10); got != 3 {
		t.Fatalf("expected offset 3 to show row 12, got %d", got)
	}
	if got := scrollOffset(2, 5, 10); got != 2 {
		t.Fatalf("expected offset to follow selection up, got %d", got)
	}
}

func TestRenderRowsMarksHighlightAndTruncates(t *testing.T) {
	model := picker.New([]string{"short", strings.Repeat("x", 50)}, "").RenderModel()
	lines := renderRows(model, 0, 5, 20)
	if len(lines) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(lines))
	}
	if lines[0] != highlightMark+"short" {
		t.Fatalf("expected highlighted first row, got %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], plainMark) || !strings.HasSuffix(lines[1], "…") {
		t.Fatalf("expected truncated plain row, got %q", lines[1])
	}
}

func TestRenderRowsRespectsWindow(t *testing.T) {
	model := picker.New([]string{"a", "b", "c", "d"}, "").RenderModel()
	lines := renderRows(model, 2, 5, 20)
	if len(lines) != 2 || !strings.HasSuffix(lines[0], "c") || !strings.HasSuffix(lines[1], "d") {
		t.Fatalf("unexpected window rows %q", lines)
	}
}

func TestBubbleModelTypingFiltersAndConfirmQuits(t *testing.T) {
	m := newTestModel()
	m, cmd := send(t, m,
		tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("git")},
		tea.KeyMsg{Type: tea.KeyDown},
	)
	if cmd != nil {
		t.Fatalf("expected no command before confirm")
	}
	if m.state.Query() != "git" {
		t.Fatalf("expected query git, got %q", m.state.Query())
	}
	if !strings.Contains(m.View(), "2 of 3 commands") {
		t.Fatalf("expected status line in view:\n%s", m.View())
	}

	m, cmd = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatalf("expected quit command after confirm")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg")
	}
	got := m.state.Result()
	if !got.Selected || got.Command != "git commit -m \"fix\"" {
		t.Fatalf("unexpected result %+v", got)
	}
	if m.View() != "" {
		t.Fatalf("expected empty view after exit")
	}
}

func TestBubbleModelEscapeQuitsWithoutSelection(t *testing.T) {
	m, cmd := send(t, newTestModel(), tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if m.state.Result().Selected {
		t.Fatalf("expected no selection")
	}
}

func TestBubbleModelSpaceAndBackspaceEditQuery(t *testing.T) {
	m, _ := send(t, newTestModel(),
		tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("git")},
		tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}},
		tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("s")},
		tea.KeyMsg{Type: tea.KeyBackspace},
	)
	if m.state.Query() != "git " {
		t.Fatalf("expected query %q, got %q", "git ", m.state.Query())
	}
}

func TestBubbleModelScrollsWithSmallWindow(t *testing.T) {
	commands := make([]string, 30)
	for i := range commands {
		commands[i] = "cmd " + strings.Repeat("x", i+1)
	}
	m := newBubblePickerModel(Options{Keys: config.Default().Keys}, picker.New(commands, ""))
	m, _ = send(t, m, tea.WindowSizeMsg{Width: 60, Height: chromeHeight + 5})
	for i := 0; i < 7; i++ {
		m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyDown})
	}
	if m.offset != 3 {
		t.Fatalf("expected offset 3 for selection 7 in 5 rows, got %d", m.offset)
	}
	if !strings.Contains(m.View(), commands[7]) {
		t.Fatalf("expected selected row to be visible")
	}
}

func TestBubbleModelShowsEmptyPlaceholder(t *testing.T) {
	m, _ := send(t, newTestModel(), tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("zzz")})
	view := m.View()
	if !strings.Contains(view, "no matching commands") || !strings.Contains(view, "0 of 3 commands") {
		t.Fatalf("expected empty placeholder, got:\n%s", view)
	}
}

func TestPickPlainListsMatchesWithoutSelection(t *testing.T) {
	var out, errOut bytes.Buffer
	result, err := Pick(Options{Backend: BackendPlain, Out: &out, Err: &errOut}, sampleHistory, "git")
	if err != nil {
		t.Fatalf("plain pick failed: %v", err)
	}
	if result.Selected {
		t.Fatalf("expected plain backend to return no selection")
	}
	if got := out.String(); got != "git status\ngit commit -m \"fix\"\n" {
		t.Fatalf("unexpected listing %q", got)
	}
	if strings.TrimSpace(errOut.String()) != "2 of 3 commands" {
		t.Fatalf("unexpected status %q", errOut.String())
	}
}

func TestTcellKeyNamesMatchBubbleTea(t *testing.T) {
	cases := []struct {
		ev    *tcell.EventKey
		name  string
		runes string
	}{
		{tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone), "q", "q"},
		{tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone), " ", " "},
		{tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModAlt), "alt+x", ""},
		{tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), "enter", ""},
		{tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), "esc", ""},
		{tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone), "backspace", ""},
		{tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), "up", ""},
		{tcell.NewEventKey(tcell.KeyCtrlN, 0, tcell.ModCtrl), "ctrl+n", ""},
		{tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl), "ctrl+c", ""},
	}
	for _, tc := range cases {
		name, runes := tcellKey(tc.ev)
		if name != tc.name || string(runes) != tc.runes {
			t.Fatalf("expected (%q, %q), got (%q, %q)", tc.name, tc.runes, name, string(runes))
		}
	}
}

func TestThemeForFallsBackToMocha(t *testing.T) {
	if got := ThemeFor("solarized").Name; got != "mocha" {
		t.Fatalf("expected mocha fallback, got %q", got)
	}
	latte, mocha := ThemeFor("Latte"), ThemeFor("mocha")
	if latte.Name != "latte" {
		t.Fatalf("expected latte, got %q", latte.Name)
	}
	if latte.Text == mocha.Text {
		t.Fatalf("expected light and dark palettes to differ")
	}
	if !strings.HasPrefix(mocha.Accent, "#") {
		t.Fatalf("expected hex accent, got %q", mocha.Accent)
	}
}

func TestConfirmPlainReadsAnswer(t *testing.T) {
	prevInteractive, prevIn, prevOut := stdinIsInteractive, confirmInput, confirmOutput
	t.Cleanup(func() {
		stdinIsInteractive, confirmInput, confirmOutput = prevInteractive, prevIn, prevOut
	})
	stdinIsInteractive = func() bool { return true }

	var prompt bytes.Buffer
	confirmOutput = &prompt
	confirmInput = strings.NewReader("y\n")
	approved, used, err := ConfirmLaunch(BackendPlain, "mocha", "rm -rf build")
	if err != nil || !used || !approved {
		t.Fatalf("expected approval, got approved=%t used=%t err=%v", approved, used, err)
	}
	if !strings.Contains(prompt.String(), "rm -rf build") {
		t.Fatalf("expected command in prompt, got %q", prompt.String())
	}

	confirmInput = strings.NewReader("\n")
	approved, _, err = ConfirmLaunch(BackendPlain, "mocha", "rm -rf build")
	if err != nil || approved {
		t.Fatalf("expected default no, got approved=%t err=%v", approved, err)
	}
}

func TestConfirmPlainRequiresTerminal(t *testing.T) {
	prev := stdinIsInteractive
	t.Cleanup(func() { stdinIsInteractive = prev })
	stdinIsInteractive = func() bool { return false }

	approved, used, err := ConfirmLaunch(BackendPlain, "mocha", "rm -rf build")
	if err == nil || used || approved {
		t.Fatalf("expected error without terminal, got approved=%t used=%t err=%v", approved, used, err)
	}
}
