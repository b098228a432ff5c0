package ui

import (
	"bufio"
	"fmt"
	"os"

	"github.com/ashwch/unforget/internal/picker"
)

// pickPlain lists the matches without interaction. Commands go to Out and
// the count to Err so the listing can be piped.
func pickPlain(opts Options, state picker.State) (picker.Result, error) {
	out, errOut := opts.Out, opts.Err
	if out == nil {
		out = os.Stdout
	}
	if errOut == nil {
		errOut = os.Stderr
	}

	model := state.RenderModel()
	w := bufio.NewWriter(out)
	for _, item := range model.Items {
		if _, err := fmt.Fprintln(w, item.Command); err != nil {
			return picker.Result{}, err
		}
	}
	if err := w.Flush(); err != nil {
		return picker.Result{}, err
	}
	if _, err := fmt.Fprintln(errOut, model.Status()); err != nil {
		return picker.Result{}, err
	}
	return picker.Result{}, nil
}
