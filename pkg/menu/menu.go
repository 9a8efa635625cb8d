// Package menu implements the open/closed state machine behind dropdown
// option pickers. Open state is local to the menu; the selected option is
// bound to the host.
package menu

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/goliatone/go-formwidgets/pkg/binding"
)

// State is a menu state.
type State string

// Event is an input to the state machine.
type Event string

const (
	Closed State = "closed"
	Open   State = "open"
)

const (
	EventToggle  Event = "toggle"
	EventSelect  Event = "select"
	EventDismiss Event = "dismiss"
)

var (
	// ErrNoTransition is returned when an event is not valid in the current state.
	ErrNoTransition = errors.New("menu: no transition available")
	// ErrUnknownOption is returned when selecting a value missing from the options.
	ErrUnknownOption = errors.New("menu: unknown option")
)

// transitions is the complete table: [from][event] -> to.
var transitions = map[State]map[Event]State{
	Closed: {
		EventToggle: Open,
	},
	Open: {
		EventToggle:  Closed,
		EventSelect:  Closed,
		EventDismiss: Closed,
	},
}

// Menu is safe for concurrent use.
type Menu struct {
	mu       sync.RWMutex
	state    State
	options  []string
	selected binding.Value[string]
}

// New returns a closed menu over options bound to selected.
func New(options []string, selected binding.Value[string]) *Menu {
	return &Menu{
		state:    Closed,
		options:  slices.Clone(options),
		selected: selected,
	}
}

// State returns the current state.
func (m *Menu) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// IsOpen reports whether the option list is showing.
func (m *Menu) IsOpen() bool {
	return m.State() == Open
}

// Options returns the options in display order.
func (m *Menu) Options() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.options)
}

// Selected returns the host-supplied selected option.
func (m *Menu) Selected() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.selected.Current
}

// Rebind replaces the selected binding with the host's latest value.
func (m *Menu) Rebind(selected binding.Value[string]) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.selected = selected
}

// SetOptions replaces the option list without touching the open state.
func (m *Menu) SetOptions(options []string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.options = slices.Clone(options)
}

// CanFire reports whether event has a transition from the current state.
func (m *Menu) CanFire(event Event) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := transitions[m.state][event]
	return ok
}

// Fire applies a toggle or dismiss event. Selection goes through Select since
// it carries an option.
func (m *Menu) Fire(event Event) error {
	if event == EventSelect {
		return fmt.Errorf("%w: %s requires an option, use Select", ErrNoTransition, event)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	_, err := m.transition(event)
	return err
}

// Toggle flips between Closed and Open.
func (m *Menu) Toggle() {
	_ = m.Fire(EventToggle)
}

// Dismiss closes an open menu without selecting. It is a no-op when closed.
func (m *Menu) Dismiss() {
	if m.CanFire(EventDismiss) {
		_ = m.Fire(EventDismiss)
	}
}

// Select pushes option to the bound setter and closes the menu. The menu must
// be open and option must be one of Options.
func (m *Menu) Select(option string) error {
	m.mu.Lock()
	if !slices.Contains(m.options, option) {
		m.mu.Unlock()
		return fmt.Errorf("%w: %q", ErrUnknownOption, option)
	}
	if _, err := m.transition(EventSelect); err != nil {
		m.mu.Unlock()
		return err
	}
	selected := m.selected
	m.mu.Unlock()

	// Pushed outside the lock so the host may rebind from its callback.
	selected.Push(option)
	return nil
}

func (m *Menu) transition(event Event) (State, error) {
	to, ok := transitions[m.state][event]
	if !ok {
		return m.state, fmt.Errorf("%w: %s on %s", ErrNoTransition, event, m.state)
	}
	m.state = to
	return to, nil
}
