//go:build unix

package launch

import (
	"fmt"
	"os"
	"os/exec"

	"golang.org/x/sys/unix"
)

var (
	lookPath = exec.LookPath
	execve   = unix.Exec
)

// ExecLauncher replaces the current process image, keeping the environment
// and standard streams.
type ExecLauncher struct{}

func (ExecLauncher) Launch(program string, args []string) error {
	if program == "" {
		return ErrEmptyCommand
	}
	path, err := lookPath(program)
	if err != nil {
		return fmt.Errorf("could not resolve %s: %w", program, err)
	}
	argv := append([]string{program}, args...)
	if err := execve(path, argv, os.Environ()); err != nil {
		return fmt.Errorf("could not exec %s: %w", path, err)
	}
	return nil
}
