//go:build !unix

package launch

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
)

var exit = os.Exit

// ExecLauncher emulates exec where the platform has none: the child runs with
// inherited streams and this process exits with its status.
type ExecLauncher struct{}

func (ExecLauncher) Launch(program string, args []string) error {
	if program == "" {
		return ErrEmptyCommand
	}
	cmd := exec.Command(program, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = os.Environ()
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("could not start %s: %w", program, err)
	}
	err := cmd.Wait()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		exit(exitErr.ExitCode())
		return nil
	}
	if err != nil {
		return fmt.Errorf("could not wait for %s: %w", program, err)
	}
	exit(0)
	return nil
}
