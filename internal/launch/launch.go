package launch

import (
	"errors"
	"strings"
)

var ErrEmptyCommand = errors.New("command is empty")

// Launcher hands control to another program. Launch only returns on failure.
type Launcher interface {
	Launch(program string, args []string) error
}

// Tokenize splits a history line into a program and its arguments.
//
// A double quote toggles quoting and is dropped; a space outside quotes ends
// the current token. There is no escaping, and an unmatched quote keeps
// quoting on to the end of the input.
func Tokenize(input string) (string, []string) {
	var (
		parts    []string
		current  strings.Builder
		inQuotes bool
	)
	for _, c := range input {
		switch {
		case c == '"':
			inQuotes = !inQuotes
		case c == ' ' && !inQuotes:
			if current.Len() > 0 {
				parts = append(parts, current.String())
				current.Reset()
			}
		default:
			current.WriteRune(c)
		}
	}
	if current.Len() > 0 {
		parts = append(parts, current.String())
	}

	if len(parts) == 0 {
		return "", nil
	}
	return parts[0], parts[1:]
}

// Run tokenizes command and passes it to l.
func Run(l Launcher, command string) error {
	program, args := Tokenize(command)
	if program == "" {
		return ErrEmptyCommand
	}
	return l.Launch(program, args)
}

// HighRisk reports whether command matches a destructive pattern such as
// "rm -rf" or "git reset --hard".
func HighRisk(command string) bool {
	low := strings.ToLower(strings.TrimSpace(command))
	highRiskPatterns := []string{
		"rm -rf",
		"mkfs",
		"dd if=",
		"shutdown",
		"reboot",
		"userdel",
		"chmod 777 /",
		"git push --force",
		"git reset --hard",
	}
	for _, pattern := range highRiskPatterns {
		if strings.Contains(low, pattern) {
			return true
		}
	}
	return false
}
