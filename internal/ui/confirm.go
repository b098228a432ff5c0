package ui

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/rivo/tview"
	"golang.org/x/term"
)

const confirmTitle = "Run this high-risk command?"

var (
	confirmInput       io.Reader = os.Stdin
	confirmOutput      io.Writer = os.Stderr
	stdinIsInteractive           = func() bool { return term.IsTerminal(int(os.Stdin.Fd())) }
)

// ConfirmLaunch asks before a risky command replaces the process. used is
// false when no front end could ask.
func ConfirmLaunch(backend string, theme string, command string) (approved bool, used bool, err error) {
	var firstErr error
	for _, candidate := range confirmCandidates(backend) {
		var ok bool
		switch candidate {
		case BackendHuh:
			ok, err = confirmWithHuh(command)
		case BackendBubbleTea:
			ok, err = confirmWithBubbleTea(theme, command)
		case BackendTView:
			ok, err = confirmWithTView(command)
		case BackendPlain:
			ok, err = confirmPlain(command)
		default:
			continue
		}
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		return ok, true, nil
	}
	if firstErr != nil {
		return false, false, firstErr
	}
	return false, false, nil
}

type bubbleConfirmModel struct {
	command  string
	styles   styles
	approved bool
	done     bool
}

func (m bubbleConfirmModel) Init() tea.Cmd { return nil }

func (m bubbleConfirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch strings.ToLower(k.String()) {
	case "y":
		m.approved = true
		m.done = true
		return m, tea.Quit
	case "n", "esc", "ctrl+c", "enter", "q":
		m.approved = false
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

func (m bubbleConfirmModel) View() string {
	return fmt.Sprintf(
		"%s\n\n%s\n\n%s",
		m.styles.title.Render(confirmTitle),
		m.styles.search.Render(m.command),
		m.styles.status.Render("[y] run  [n] cancel"),
	)
}

func confirmWithBubbleTea(theme string, command string) (bool, error) {
	model := bubbleConfirmModel{command: strings.TrimSpace(command), styles: newStyles(ThemeFor(theme))}
	final, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
	if err != nil {
		return false, err
	}
	out, ok := final.(bubbleConfirmModel)
	if !ok || !out.done {
		return false, nil
	}
	return out.approved, nil
}

func confirmWithHuh(command string) (bool, error) {
	approved := false
	prompt := huh.NewConfirm().
		Title(confirmTitle).
		Description(strings.TrimSpace(command)).
		Affirmative("Run").
		Negative("Cancel").
		Value(&approved).
		WithTheme(huh.ThemeCatppuccin())
	if err := prompt.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return false, nil
		}
		return false, err
	}
	return approved, nil
}

func confirmWithTView(command string) (bool, error) {
	app := tview.NewApplication()
	approved := false

	modal := tview.NewModal().
		SetText(confirmTitle + "\n\n" + tview.Escape(strings.TrimSpace(command))).
		AddButtons([]string{"Run", "Cancel"}).
		SetDoneFunc(func(_ int, label string) {
			approved = label == "Run"
			app.Stop()
		})

	if err := app.SetRoot(modal, true).Run(); err != nil {
		return false, err
	}
	return approved, nil
}

func confirmPlain(command string) (bool, error) {
	if !stdinIsInteractive() {
		return false, fmt.Errorf("confirmation requires an interactive terminal")
	}
	fmt.Fprintf(confirmOutput, "%s\n  %s\n[y/N]: ", confirmTitle, strings.TrimSpace(command))
	line, err := bufio.NewReader(confirmInput).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes", nil
}
