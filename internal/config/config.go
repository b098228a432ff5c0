package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ashwch/unforget/internal/appdirs"
	"github.com/ashwch/unforget/internal/history"
	"github.com/gofrs/flock"
	"github.com/pelletier/go-toml/v2"
)

type HistoryConfig struct {
	// Files are tried in order relative to the home directory; the first
	// existing one wins.
	Files []string `toml:"files" json:"files"`
}

type UIConfig struct {
	Backend string `toml:"backend" json:"backend"`
	Theme   string `toml:"theme" json:"theme"`
}

type KeysConfig struct {
	Quit    []string `toml:"quit" json:"quit"`
	Up      []string `toml:"up" json:"up"`
	Down    []string `toml:"down" json:"down"`
	Confirm []string `toml:"confirm" json:"confirm"`
}

type SafetyConfig struct {
	ConfirmHighRisk bool `toml:"confirm_high_risk" json:"confirm_high_risk"`
	RedactDebugLog  bool `toml:"redact_debug_log" json:"redact_debug_log"`
}

// Config is the on-disk TOML document.
type Config struct {
	Version int           `toml:"version" json:"version"`
	History HistoryConfig `toml:"history" json:"history"`
	UI      UIConfig      `toml:"ui" json:"ui"`
	Keys    KeysConfig    `toml:"keys" json:"keys"`
	Safety  SafetyConfig  `toml:"safety" json:"safety"`
}

var (
	validBackends = []string{"auto", "bubbletea", "tview", "plain"}
	validThemes   = []string{"mocha", "macchiato", "frappe", "latte"}
)

// Default is the config written on first run.
func Default() Config {
	return Config{
		Version: 1,
		History: HistoryConfig{
			Files: append([]string(nil), history.DefaultFiles...),
		},
		UI: UIConfig{
			Backend: "auto",
			Theme:   "mocha",
		},
		Keys: KeysConfig{
			Quit:    []string{"esc", "ctrl+c"},
			Up:      []string{"up", "ctrl+p", "ctrl+k"},
			Down:    []string{"down", "ctrl+n", "ctrl+j"},
			Confirm: []string{"enter"},
		},
		Safety: SafetyConfig{
			ConfirmHighRisk: false,
			RedactDebugLog:  true,
		},
	}
}

// LoadOrCreate reads the config file, writing defaults on first run.
func LoadOrCreate() (Config, string, error) {
	path, err := appdirs.ConfigFilePath()
	if err != nil {
		return Config{}, "", err
	}

	cfg := Default()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if _, err := appdirs.EnsureConfigDir(); err != nil {
			return Config{}, "", err
		}
		if err := Save(path, cfg); err != nil {
			return Config{}, "", err
		}
		return cfg, path, nil
	} else if err != nil {
		return Config{}, "", fmt.Errorf("could not stat config path: %w", err)
	}

	cfg, err = Load(path)
	if err != nil {
		return Config{}, "", err
	}
	return cfg, path, nil
}

// Load reads path on top of the defaults.
func Load(path string) (Config, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("could not read config file: %w", err)
	}

	cfg := Default()
	if err := toml.Unmarshal(bytes, &cfg); err != nil {
		return Config{}, fmt.Errorf("could not parse config file: %w", err)
	}
	cfg.normalize()
	return cfg, nil
}

// Save writes cfg atomically with owner-only permissions. Concurrent
// invocations serialize on a lock file next to path.
func Save(path string, cfg Config) error {
	cfg.normalize()
	payload, err := Encode(cfg)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("could not create config dir: %w", err)
	}
	lock := flock.New(path + ".lock")
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("could not lock config file: %w", err)
	}
	defer func() { _ = lock.Unlock() }()

	tempFile, err := os.CreateTemp(dir, ".unforget-config-*.toml")
	if err != nil {
		return fmt.Errorf("could not create temp config file: %w", err)
	}
	tempPath := tempFile.Name()
	cleanup := func() {
		_ = os.Remove(tempPath)
	}

	if _, err := tempFile.Write(payload); err != nil {
		_ = tempFile.Close()
		cleanup()
		return fmt.Errorf("could not write temp config file: %w", err)
	}
	if err := tempFile.Chmod(0o600); err != nil {
		_ = tempFile.Close()
		cleanup()
		return fmt.Errorf("could not secure temp config file permissions: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		cleanup()
		return fmt.Errorf("could not close temp config file: %w", err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		cleanup()
		return fmt.Errorf("could not atomically replace config file: %w", err)
	}
	return nil
}

func Encode(cfg Config) ([]byte, error) {
	payload, err := toml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("could not serialize config: %w", err)
	}
	return payload, nil
}

func (c *Config) normalize() {
	defaults := Default()
	if c.Version == 0 {
		c.Version = defaults.Version
	}
	c.History.Files = cleanList(c.History.Files)
	if len(c.History.Files) == 0 {
		c.History.Files = defaults.History.Files
	}
	c.UI.Backend = normalizeChoice(c.UI.Backend, validBackends, defaults.UI.Backend)
	c.UI.Theme = normalizeChoice(c.UI.Theme, validThemes, defaults.UI.Theme)

	c.Keys.Quit = keysOrDefault(c.Keys.Quit, defaults.Keys.Quit)
	c.Keys.Up = keysOrDefault(c.Keys.Up, defaults.Keys.Up)
	c.Keys.Down = keysOrDefault(c.Keys.Down, defaults.Keys.Down)
	c.Keys.Confirm = keysOrDefault(c.Keys.Confirm, defaults.Keys.Confirm)
}

// Set validates and applies one dotted key such as "ui.theme". On error the
// config is left unchanged.
func (c *Config) Set(key, value string) error {
	key = strings.TrimSpace(strings.ToLower(key))
	value = strings.TrimSpace(value)

	switch key {
	case "history.files":
		files := splitCommaList(value)
		if len(files) == 0 {
			return fmt.Errorf("history.files needs at least one file name")
		}
		c.History.Files = files
	case "ui.backend":
		backend := normalizeChoice(value, validBackends, "")
		if backend == "" {
			return fmt.Errorf("ui.backend must be one of %s", strings.Join(validBackends, "|"))
		}
		c.UI.Backend = backend
	case "ui.theme":
		theme := normalizeChoice(value, validThemes, "")
		if theme == "" {
			return fmt.Errorf("ui.theme must be one of %s", strings.Join(validThemes, "|"))
		}
		c.UI.Theme = theme
	case "keys.quit", "keys.up", "keys.down", "keys.confirm":
		keys := normalizeKeys(splitCommaList(value))
		if len(keys) == 0 {
			return fmt.Errorf("%s needs at least one key", key)
		}
		switch key {
		case "keys.quit":
			c.Keys.Quit = keys
		case "keys.up":
			c.Keys.Up = keys
		case "keys.down":
			c.Keys.Down = keys
		default:
			c.Keys.Confirm = keys
		}
	case "safety.confirm_high_risk":
		b, err := parseBool(value)
		if err != nil {
			return fmt.Errorf("safety.confirm_high_risk must be boolean")
		}
		c.Safety.ConfirmHighRisk = b
	case "safety.redact_debug_log":
		b, err := parseBool(value)
		if err != nil {
			return fmt.Errorf("safety.redact_debug_log must be boolean")
		}
		c.Safety.RedactDebugLog = b
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
	c.normalize()
	return nil
}

func (c Config) Get(key string) (string, error) {
	switch strings.TrimSpace(strings.ToLower(key)) {
	case "version":
		return strconv.Itoa(c.Version), nil
	case "history.files":
		return strings.Join(c.History.Files, ","), nil
	case "ui.backend":
		return c.UI.Backend, nil
	case "ui.theme":
		return c.UI.Theme, nil
	case "keys.quit":
		return strings.Join(c.Keys.Quit, ","), nil
	case "keys.up":
		return strings.Join(c.Keys.Up, ","), nil
	case "keys.down":
		return strings.Join(c.Keys.Down, ","), nil
	case "keys.confirm":
		return strings.Join(c.Keys.Confirm, ","), nil
	case "safety.confirm_high_risk":
		return strconv.FormatBool(c.Safety.ConfirmHighRisk), nil
	case "safety.redact_debug_log":
		return strconv.FormatBool(c.Safety.RedactDebugLog), nil
	default:
		return "", fmt.Errorf("unknown config key: %s", key)
	}
}

func parseBool(value string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		return true, nil
	case "0", "false", "no", "off":
		return false, nil
	default:
		return false, fmt.Errorf("invalid bool: %s", value)
	}
}

func splitCommaList(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	return cleanList(strings.Split(value, ","))
}

func cleanList(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		out = append(out, item)
	}
	return out
}

// normalizeKeys lowercases modifier names but keeps single characters as
// typed, so "Q" and "q" stay distinct bindings.
func normalizeKeys(keys []string) []string {
	out := make([]string, 0, len(keys))
	for _, k := range cleanList(keys) {
		if len([]rune(k)) > 1 {
			k = strings.ToLower(k)
		}
		out = append(out, k)
	}
	return out
}

func keysOrDefault(keys []string, fallback []string) []string {
	keys = normalizeKeys(keys)
	if len(keys) == 0 {
		return append([]string(nil), fallback...)
	}
	return keys
}

func normalizeChoice(value string, allowed []string, fallback string) string {
	normalized := strings.ToLower(strings.TrimSpace(value))
	for _, candidate := range allowed {
		if normalized == candidate {
			return normalized
		}
	}
	return strings.ToLower(strings.TrimSpace(fallback))
}
