package launch

import (
	"errors"
	"testing"
)

type recordingLauncher struct {
	calls   int
	program string
	args    []string
	err     error
}

func (r *recordingLauncher) Launch(program string, args []string) error {
	r.calls++
	r.program = program
	r.args = args
	return r.err
}

func assertArgs(t *testing.T, got []string, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("unexpected arg count: got=%q want=%q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("arg[%d] mismatch: got=%q want=%q", i, got[i], want[i])
		}
	}
}

func TestTokenizeSplitsOnSpaces(t *testing.T) {
	program, args := Tokenize("ls   -la  /tmp ")
	if program != "ls" {
		t.Fatalf("expected ls, got %q", program)
	}
	assertArgs(t, args, []string{"-la", "/tmp"})
}

func TestTokenizeQuoteTogglesGrouping(t *testing.T) {
	program, args := Tokenize(`git commit -m "fix bug"`)
	if program != "git" {
		t.Fatalf("expected git, got %q", program)
	}
	assertArgs(t, args, []string{"commit", "-m", "fix bug"})
}

func TestTokenizeQuoteIsNotASeparator(t *testing.T) {
	program, args := Tokenize(`echo a"b c"d`)
	if program != "echo" {
		t.Fatalf("expected echo, got %q", program)
	}
	assertArgs(t, args, []string{"ab cd"})
}

func TestTokenizeEmptyQuotesProduceNoToken(t *testing.T) {
	_, args := Tokenize(`printf "" x`)
	assertArgs(t, args, []string{"x"})
}

func TestTokenizeUnmatchedQuoteRunsToEnd(t *testing.T) {
	program, args := Tokenize(`echo "one two  three`)
	if program != "echo" {
		t.Fatalf("expected echo, got %q", program)
	}
	assertArgs(t, args, []string{"one two  three"})
}

func TestTokenizeHasNoEscapes(t *testing.T) {
	_, args := Tokenize(`echo \"hi there\"`)
	assertArgs(t, args, []string{`\hi there\`})
}

func TestTokenizeOnlySpaceSeparates(t *testing.T) {
	program, args := Tokenize("echo\ta b")
	if program != "echo\ta" {
		t.Fatalf("expected tab to stay inside token, got %q", program)
	}
	assertArgs(t, args, []string{"b"})
}

func TestTokenizeEmptyInput(t *testing.T) {
	program, args := Tokenize("   ")
	if program != "" || len(args) != 0 {
		t.Fatalf("expected empty program, got %q %q", program, args)
	}
}

func TestRunPassesTokensToLauncher(t *testing.T) {
	rec := &recordingLauncher{}
	if err := Run(rec, `grep -r "TODO list" .`); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if rec.calls != 1 || rec.program != "grep" {
		t.Fatalf("unexpected launch %+v", rec)
	}
	assertArgs(t, rec.args, []string{"-r", "TODO list", "."})
}

func TestRunRejectsEmptyCommand(t *testing.T) {
	rec := &recordingLauncher{}
	if err := Run(rec, `""`); !errors.Is(err, ErrEmptyCommand) {
		t.Fatalf("expected ErrEmptyCommand, got %v", err)
	}
	if rec.calls != 0 {
		t.Fatalf("launcher must not be called for empty command")
	}
}

func TestRunReturnsLaunchFailure(t *testing.T) {
	want := errors.New("boom")
	rec := &recordingLauncher{err: want}
	if err := Run(rec, "false"); !errors.Is(err, want) {
		t.Fatalf("expected launch error, got %v", err)
	}
}

func TestHighRisk(t *testing.T) {
	if !HighRisk("sudo RM -RF /var/tmp/x") {
		t.Fatalf("expected rm -rf to be high risk")
	}
	if HighRisk("ls -la") {
		t.Fatalf("did not expect ls to be high risk")
	}
}
