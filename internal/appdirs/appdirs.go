package appdirs

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

const AppName = "unforget"

type dirKind struct {
	xdgEnv      string
	xdgFallback []string
	windowsEnv  string
	windowsDir  []string
}

var (
	configKind = dirKind{
		xdgEnv:      "XDG_CONFIG_HOME",
		xdgFallback: []string{".config"},
		windowsEnv:  "APPDATA",
		windowsDir:  []string{"AppData", "Roaming"},
	}
	stateKind = dirKind{
		xdgEnv:      "XDG_STATE_HOME",
		xdgFallback: []string{".local", "state"},
		windowsEnv:  "LOCALAPPDATA",
		windowsDir:  []string{"AppData", "Local"},
	}
)

func (k dirKind) base() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not resolve home directory: %w", err)
	}

	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support"), nil
	case "windows":
		if v := os.Getenv(k.windowsEnv); v != "" {
			return v, nil
		}
		return filepath.Join(append([]string{home}, k.windowsDir...)...), nil
	default:
		if v := os.Getenv(k.xdgEnv); v != "" {
			return v, nil
		}
		return filepath.Join(append([]string{home}, k.xdgFallback...)...), nil
	}
}

func ensurePrivateDir(dir string, what string) (string, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("could not create %s dir: %w", what, err)
	}
	if err := os.Chmod(dir, 0o700); err != nil {
		return "", fmt.Errorf("could not secure %s dir permissions: %w", what, err)
	}
	return dir, nil
}

func ConfigDir() (string, error) {
	base, err := configKind.base()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, AppName), nil
}

func ConfigFilePath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

func EnsureConfigDir() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return ensurePrivateDir(dir, "config")
}

func StateDir() (string, error) {
	base, err := stateKind.base()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, AppName), nil
}

func EnsureStateDir() (string, error) {
	dir, err := StateDir()
	if err != nil {
		return "", err
	}
	return ensurePrivateDir(dir, "state")
}

// DebugLogPath returns the file --debug logs to, creating its directory.
func DebugLogPath() (string, error) {
	dir, err := EnsureStateDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "debug.log"), nil
}
