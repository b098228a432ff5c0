package picker

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// EventKind classifies a key press after the front end has translated it.
type EventKind int

const (
	EventOther EventKind = iota
	EventQuit
	EventMoveUp
	EventMoveDown
	EventAppend
	EventBackspace
	EventConfirm
)

func (k EventKind) String() string {
	switch k {
	case EventQuit:
		return "quit"
	case EventMoveUp:
		return "up"
	case EventMoveDown:
		return "down"
	case EventAppend:
		return "append"
	case EventBackspace:
		return "backspace"
	case EventConfirm:
		return "confirm"
	default:
		return "other"
	}
}

// Event is one input to State.Update.
type Event struct {
	Kind EventKind
	// Char is only meaningful for EventAppend.
	Char rune
}

func Quit() Event { return Event{Kind: EventQuit} }
func MoveUp() Event { return Event{Kind: EventMoveUp} }
func MoveDown() Event { return Event{Kind: EventMoveDown} }
func Backspace() Event { return Event{Kind: EventBackspace} }
func Confirm() Event { return Event{Kind: EventConfirm} }
func Append(c rune) Event { return Event{Kind: EventAppend, Char: c} }

// Result is the outcome of a finished session.
type Result struct {
	Command  string
	Selected bool
}

// State holds the query, the filtered view and the cursor of a session.
// It is a value: Update returns the next state and never mutates the
// receiver, so front ends can treat it as a reducer.
type State struct {
	history  []string
	query    string
	filtered []int
	cursor   int
	done     bool
	result   Result
}

// New builds the initial state. history is shared, not copied, and must not
// be modified afterwards.
func New(history []string, seed string) State {
	s := State{history: history, query: seed}
	s.refilter()
	return s
}

// Update applies ev. Editing the query refilters and moves the cursor to
// the first match; movement wraps. Once Done, events are ignored.
func (s State) Update(ev Event) State {
	if s.done {
		return s
	}

	switch ev.Kind {
	case EventQuit:
		s.done = true
		s.result = Result{}
	case EventMoveDown:
		s.selectNext()
	case EventMoveUp:
		s.selectPrevious()
	case EventAppend:
		s.query += string(ev.Char)
		s.refilter()
	case EventBackspace:
		if _, size := utf8.DecodeLastRuneInString(s.query); size > 0 {
			s.query = s.query[:len(s.query)-size]
		}
		s.refilter()
	case EventConfirm:
		s.result = Result{}
		if idx, ok := s.Cursor(); ok {
			s.result = Result{Command: s.history[s.filtered[idx]], Selected: true}
		}
		s.done = true
	}
	return s
}

func (s State) Query() string { return s.query }

func (s State) Done() bool { return s.done }

// Result is only meaningful once Done reports true.
func (s State) Result() Result { return s.result }

// Filtered returns the history indices currently visible.
func (s State) Filtered() []int {
	return append([]int(nil), s.filtered...)
}

// Cursor returns the position within Filtered, or false when nothing is
// visible.
func (s State) Cursor() (int, bool) {
	if len(s.filtered) == 0 {
		return 0, false
	}
	return s.cursor, true
}

func (s *State) refilter() {
	s.filtered = Filter(s.history, s.query)
	s.cursor = 0
}

func (s *State) selectNext() {
	if len(s.filtered) == 0 {
		return
	}
	if s.cursor >= len(s.filtered)-1 {
		s.cursor = 0
		return
	}
	s.cursor++
}

func (s *State) selectPrevious() {
	if len(s.filtered) == 0 {
		return
	}
	if s.cursor == 0 {
		s.cursor = len(s.filtered) - 1
		return
	}
	s.cursor--
}

// Filter returns the indices of commands containing query, ignoring case,
// in their original order. An empty query matches everything.
func Filter(commands []string, query string) []int {
	out := make([]int, 0, len(commands))
	if query == "" {
		for i := range commands {
			out = append(out, i)
		}
		return out
	}

	needle := strings.ToLower(query)
	for i, cmd := range commands {
		if strings.Contains(strings.ToLower(cmd), needle) {
			out = append(out, i)
		}
	}
	return out
}

// Item is one visible row of the render model.
type Item struct {
	Command     string
	Highlighted bool
}

// RenderModel is the read-only projection a front end draws.
type RenderModel struct {
	Query    string
	Items    []Item
	Selected int // -1 when nothing is highlighted
	Filtered int
	Total    int
}

// Status is the footer line, e.g. "3 of 120 commands".
func (r RenderModel) Status() string {
	return fmt.Sprintf("%d of %d commands", r.Filtered, r.Total)
}

func (s State) RenderModel() RenderModel {
	model := RenderModel{
		Query:    s.query,
		Items:    make([]Item, 0, len(s.filtered)),
		Selected: -1,
		Filtered: len(s.filtered),
		Total:    len(s.history),
	}
	cursor, ok := s.Cursor()
	for pos, idx := range s.filtered {
		highlighted := ok && pos == cursor
		if highlighted {
			model.Selected = pos
		}
		model.Items = append(model.Items, Item{Command: s.history[idx], Highlighted: highlighted})
	}
	return model
}
