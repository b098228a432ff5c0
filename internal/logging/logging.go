package logging

import (
	"io"
	"log"
	"os"

	"github.com/ashwch/unforget/internal/appdirs"
	"github.com/ashwch/unforget/internal/safety"
	tea "github.com/charmbracelet/bubbletea"
)

var (
	redactCommands = true
	debugLogPath   = appdirs.DebugLogPath
)

// Enable routes the std logger to the debug log, since the TUI holds the
// terminal while a picker is on screen. The returned file must be closed
// before the process execs or exits.
func Enable(redact bool) (*os.File, error) {
	path, err := debugLogPath()
	if err != nil {
		return nil, err
	}
	f, err := tea.LogToFile(path, "unforget")
	if err != nil {
		return nil, err
	}
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	redactCommands = redact
	return f, nil
}

// Disable drops all log output.
func Disable() {
	log.SetOutput(io.Discard)
}

func Printf(format string, args ...any) {
	log.Printf(format, args...)
}

// Command logs a history command, scrubbing secrets unless redaction is off.
func Command(what string, command string) {
	if redactCommands {
		command = safety.RedactText(command)
	}
	log.Printf("%s: %q", what, command)
}
