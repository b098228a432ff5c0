package history

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// DefaultFiles is the candidate list searched under the home directory.
// Only the first existing file is read.
var DefaultFiles = []string{".bash_history", ".zsh_history"}

// History is the deduplicated command list, most recent first.
type History struct {
	Path     string
	Commands []string
}

func (h History) Len() int { return len(h.Commands) }

// Load reads the first existing candidate under home. No existing candidate
// is not an error and yields an empty History.
func Load(home string, files []string) (History, error) {
	if strings.TrimSpace(home) == "" {
		return History{}, fmt.Errorf("home directory is not set")
	}
	if len(files) == 0 {
		files = DefaultFiles
	}

	for _, name := range files {
		path := name
		if !filepath.IsAbs(path) {
			path = filepath.Join(home, name)
		}
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			continue
		} else if err != nil {
			return History{}, fmt.Errorf("could not stat history file %s: %w", path, err)
		}

		commands, err := loadFile(path)
		if err != nil {
			return History{}, err
		}
		return History{Path: path, Commands: commands}, nil
	}
	return History{}, nil
}

func loadFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open history file: %w", err)
	}
	defer f.Close()

	commands, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("could not read history file %s: %w", path, err)
	}
	return commands, nil
}

// Parse turns raw chronological history lines into the picker order. Lines
// have no length limit.
func Parse(r io.Reader) ([]string, error) {
	var lines []string
	reader := bufio.NewReader(r)
	for {
		line, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, err
		}
		line = strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r")
		if command := normalizeLine(line); strings.TrimSpace(command) != "" {
			lines = append(lines, command)
		}
		if err != nil {
			break
		}
	}

	reverse(lines)
	return dedupe(lines), nil
}

// normalizeLine strips the zsh extended prefix ": <start>:<elapsed>;".
func normalizeLine(line string) string {
	if !strings.HasPrefix(line, ":") {
		return line
	}
	if idx := strings.IndexByte(line, ';'); idx >= 0 {
		return line[idx+1:]
	}
	return line
}

func reverse(lines []string) {
	for i, j := 0, len(lines)-1; i < j; i, j = i+1, j-1 {
		lines[i], lines[j] = lines[j], lines[i]
	}
}

// dedupe keeps the first occurrence, which after reversal is the most recent.
func dedupe(lines []string) []string {
	seen := make(map[string]struct{}, len(lines))
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if _, ok := seen[line]; ok {
			continue
		}
		seen[line] = struct{}{}
		out = append(out, line)
	}
	return out
}
