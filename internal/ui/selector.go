package ui

import (
	"io"

	"github.com/ashwch/unforget/internal/config"
	"github.com/ashwch/unforget/internal/logging"
	"github.com/ashwch/unforget/internal/picker"
)

// Options configures a picker session.
type Options struct {
	Backend string
	Theme   string
	Keys    config.KeysConfig
	// Source is the history file path shown in the title.
	Source string
	// Out and Err are used by the plain backend; nil means the process streams.
	Out io.Writer
	Err io.Writer
}

// Pick runs an interactive session over commands, trying each front end of
// the configured backend until one starts. Every front end restores the
// terminal before returning.
func Pick(opts Options, commands []string, seed string) (picker.Result, error) {
	state := picker.New(commands, seed)

	var firstErr error
	for _, candidate := range pickerCandidates(opts.Backend) {
		var (
			result picker.Result
			err    error
		)
		switch candidate {
		case BackendBubbleTea:
			result, err = pickWithBubbleTea(opts, state)
		case BackendTView:
			result, err = pickWithTView(opts, state)
		case BackendPlain:
			result, err = pickPlain(opts, state)
		default:
			continue
		}
		if err != nil {
			logging.Printf("%s picker failed: %v", candidate, err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		logging.Printf("%s picker finished, selected=%t", candidate, result.Selected)
		return result, nil
	}
	if firstErr != nil {
		return picker.Result{}, firstErr
	}
	return picker.Result{}, nil
}
