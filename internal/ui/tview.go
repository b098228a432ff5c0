package ui

import (
	"strings"

	"github.com/ashwch/unforget/internal/picker"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

func pickWithTView(opts Options, state picker.State) (picker.Result, error) {
	theme := ThemeFor(opts.Theme)
	keys := NewKeymap(opts.Keys)
	app := tview.NewApplication()

	title := tview.NewTextView().SetDynamicColors(true)
	title.SetText("[::b]unforget[::-]  " + tview.Escape(opts.Source))
	title.SetTextColor(tcellColor(theme.Accent))

	search := tview.NewTextView()
	search.SetTextColor(tcellColor(theme.Text))
	search.SetBorder(true)
	search.SetTitle(" Search ")
	search.SetBorderColor(tcellColor(theme.Match))

	listView := tview.NewList().
		ShowSecondaryText(false).
		SetHighlightFullLine(true).
		SetMainTextColor(tcellColor(theme.Text)).
		SetSelectedTextColor(tcellColor(theme.Text)).
		SetSelectedBackgroundColor(tcellColor(theme.Highlight))
	listView.SetBorder(true)
	listView.SetTitle(" Command History ")
	listView.SetBorderColor(tcellColor(theme.Border))

	status := tview.NewTextView().SetTextAlign(tview.AlignCenter)
	status.SetTextColor(tcellColor(theme.Muted))

	render := func() {
		model := state.RenderModel()
		search.SetText(model.Query)
		listView.Clear()
		for _, item := range model.Items {
			listView.AddItem(tview.Escape(strings.ReplaceAll(item.Command, "\t", "    ")), "", 0, nil)
		}
		if model.Selected >= 0 {
			listView.SetCurrentItem(model.Selected)
		}
		status.SetText(model.Status())
	}
	render()

	app.SetInputCapture(func(ev *tcell.EventKey) *tcell.EventKey {
		name, runes := tcellKey(ev)
		for _, e := range keys.Events(name, runes) {
			state = state.Update(e)
		}
		if state.Done() {
			app.Stop()
			return nil
		}
		render()
		return nil
	})

	layout := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(title, 1, 0, false).
		AddItem(search, 3, 0, false).
		AddItem(listView, 0, 1, true).
		AddItem(status, 1, 0, false)

	if err := app.SetRoot(layout, true).SetFocus(listView).Run(); err != nil {
		return picker.Result{}, err
	}
	if !state.Done() {
		return picker.Result{}, nil
	}
	return state.Result(), nil
}

// tcellKey names a tcell key event the way bubbletea spells key strings, so
// both front ends share one Keymap.
func tcellKey(ev *tcell.EventKey) (string, []rune) {
	switch ev.Key() {
	case tcell.KeyRune:
		r := ev.Rune()
		if ev.Modifiers()&tcell.ModAlt != 0 {
			return "alt+" + string(r), nil
		}
		return string(r), []rune{r}
	case tcell.KeyEnter:
		return "enter", nil
	case tcell.KeyEscape:
		return "esc", nil
	case tcell.KeyTab:
		return "tab", nil
	case tcell.KeyBacktab:
		return "shift+tab", nil
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return "backspace", nil
	case tcell.KeyUp:
		return "up", nil
	case tcell.KeyDown:
		return "down", nil
	case tcell.KeyLeft:
		return "left", nil
	case tcell.KeyRight:
		return "right", nil
	}

	if k := ev.Key(); k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ {
		return "ctrl+" + string(rune('a'+int(k-tcell.KeyCtrlA))), nil
	}
	return strings.ToLower(ev.Name()), nil
}
