package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ashwch/unforget/internal/config"
	"github.com/ashwch/unforget/internal/history"
	"github.com/ashwch/unforget/internal/launch"
	"github.com/ashwch/unforget/internal/logging"
	"github.com/ashwch/unforget/internal/picker"
	"github.com/ashwch/unforget/internal/ui"
	"github.com/peterbourgon/ff/v3"
)

var version = "dev"

type options struct {
	UI          string
	Theme       string
	HistoryFile string
	Sets        setFlags
	Print       bool
	Save        bool
	ShowConfig  bool
	Debug       bool
	Version     bool
}

// setFlags collects repeated --set key=value pairs.
type setFlags []string

func (s *setFlags) String() string { return strings.Join(*s, ",") }

func (s *setFlags) Set(value string) error {
	if !strings.Contains(value, "=") {
		return fmt.Errorf("expected key=value, got %q", value)
	}
	*s = append(*s, value)
	return nil
}

// app holds the process boundary so tests can run a whole session without a
// terminal or an exec.
type app struct {
	stdout     io.Writer
	stderr     io.Writer
	loadConfig func() (config.Config, string, error)
	saveConfig func(string, config.Config) error
	home       func() (string, error)
	pick       func(ui.Options, []string, string) (picker.Result, error)
	confirm    func(backend, theme, command string) (bool, bool, error)
	launcher   launch.Launcher
}

func main() {
	a := app{
		stdout:     os.Stdout,
		stderr:     os.Stderr,
		loadConfig: config.LoadOrCreate,
		saveConfig: config.Save,
		home:       os.UserHomeDir,
		pick:       ui.Pick,
		confirm:    ui.ConfirmLaunch,
		launcher:   launch.ExecLauncher{},
	}
	os.Exit(a.run(os.Args[1:]))
}

func parseArgs(args []string) (options, string, error) {
	fs := flag.NewFlagSet("unforget", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var opts options
	fs.StringVar(&opts.UI, "ui", "", "override ui backend: auto|bubbletea|tview|plain")
	fs.StringVar(&opts.Theme, "theme", "", "override theme: mocha|macchiato|frappe|latte")
	fs.StringVar(&opts.HistoryFile, "history-file", "", "read this history file instead of the configured candidates")
	fs.Var(&opts.Sets, "set", "config change key=value (repeatable)")
	fs.BoolVar(&opts.Print, "print", false, "print the chosen command instead of running it")
	fs.BoolVar(&opts.Save, "save", false, "persist --ui, --theme and --set changes")
	fs.BoolVar(&opts.ShowConfig, "show-config", false, "print the effective config and exit")
	fs.BoolVar(&opts.Debug, "debug", false, "write a debug log to the state directory")
	fs.BoolVar(&opts.Version, "version", false, "print version")

	if err := ff.Parse(fs, args, ff.WithEnvVarPrefix("UNFORGET")); err != nil {
		return options{}, "", err
	}
	seed := strings.Join(fs.Args(), " ")
	return opts, seed, nil
}

// configChanges turns flag overrides into config keys, --set pairs last so
// they win.
func configChanges(opts options) ([][2]string, error) {
	var changes [][2]string
	if opts.UI != "" {
		changes = append(changes, [2]string{"ui.backend", opts.UI})
	}
	if opts.Theme != "" {
		changes = append(changes, [2]string{"ui.theme", opts.Theme})
	}
	for _, pair := range opts.Sets {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || strings.TrimSpace(key) == "" {
			return nil, fmt.Errorf("invalid --set %q: expected key=value", pair)
		}
		changes = append(changes, [2]string{strings.TrimSpace(key), value})
	}
	return changes, nil
}

func (a app) run(args []string) int {
	opts, seed, err := parseArgs(args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintln(a.stderr, err)
		return 2
	}
	if opts.Version {
		fmt.Fprintln(a.stdout, version)
		return 0
	}

	cfg, cfgPath, err := a.loadConfig()
	if err != nil {
		fmt.Fprintf(a.stderr, "unforget: could not load config: %v\n", err)
		return 1
	}

	changes, err := configChanges(opts)
	if err != nil {
		fmt.Fprintln(a.stderr, err)
		return 2
	}
	for _, change := range changes {
		if err := cfg.Set(change[0], change[1]); err != nil {
			fmt.Fprintf(a.stderr, "unforget: invalid config change %s=%s: %v\n", change[0], change[1], err)
			return 1
		}
	}
	if opts.Save && len(changes) > 0 {
		if err := a.saveConfig(cfgPath, cfg); err != nil {
			fmt.Fprintf(a.stderr, "unforget: could not save config: %v\n", err)
			return 1
		}
	}

	if opts.ShowConfig {
		payload, err := config.Encode(cfg)
		if err != nil {
			fmt.Fprintf(a.stderr, "unforget: %v\n", err)
			return 1
		}
		fmt.Fprintf(a.stdout, "# %s\n%s", cfgPath, payload)
		return 0
	}

	closeLog := func() {}
	if opts.Debug {
		f, err := logging.Enable(cfg.Safety.RedactDebugLog)
		if err != nil {
			fmt.Fprintf(a.stderr, "unforget: could not open debug log: %v\n", err)
			return 1
		}
		closeLog = func() { _ = f.Close() }
	} else {
		logging.Disable()
	}
	defer func() { closeLog() }()

	home, err := a.home()
	if err != nil {
		fmt.Fprintf(a.stderr, "unforget: could not resolve home directory: %v\n", err)
		return 1
	}
	files := cfg.History.Files
	if opts.HistoryFile != "" {
		files = []string{opts.HistoryFile}
	}
	hist, err := history.Load(home, files)
	if err != nil {
		fmt.Fprintf(a.stderr, "unforget: %v\n", err)
		return 1
	}
	logging.Printf("loaded %d commands from %q", hist.Len(), hist.Path)

	result, err := a.pick(ui.Options{
		Backend: cfg.UI.Backend,
		Theme:   cfg.UI.Theme,
		Keys:    cfg.Keys,
		Source:  hist.Path,
		Out:     a.stdout,
		Err:     a.stderr,
	}, hist.Commands, seed)
	if err != nil {
		fmt.Fprintf(a.stderr, "unforget: picker failed: %v\n", err)
		return 1
	}
	if !result.Selected {
		logging.Printf("no selection")
		return 0
	}
	logging.Command("selected", result.Command)

	if opts.Print {
		fmt.Fprintln(a.stdout, result.Command)
		return 0
	}

	if cfg.Safety.ConfirmHighRisk && launch.HighRisk(result.Command) {
		approved, used, err := a.confirm(cfg.UI.Backend, cfg.UI.Theme, result.Command)
		if err != nil {
			fmt.Fprintf(a.stderr, "unforget: could not confirm high-risk command: %v\n", err)
			return 1
		}
		if !used || !approved {
			logging.Printf("high-risk command declined")
			return 0
		}
	}

	// Exec does not run deferred calls.
	closeLog()
	closeLog = func() {}
	if err := launch.Run(a.launcher, result.Command); err != nil {
		fmt.Fprintf(a.stderr, "unforget: failed to exec: %v\n", err)
		return 1
	}
	return 0
}
