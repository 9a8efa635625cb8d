package tui

import (
	"fmt"
	"strings"
)

// State collects answers keyed by dotted paths ("search.term" nests term
// under search).
type State struct {
	values map[string]any
}

// NewState seeds the state with prefilled values.
func NewState(prefill map[string]any) *State {
	return &State{values: cloneValues(prefill)}
}

// Values returns the current value map (mutable).
func (s *State) Values() map[string]any {
	if s == nil {
		return nil
	}
	return s.values
}

// GetValue resolves a dotted path into the values map.
func (s *State) GetValue(path string) (any, bool) {
	if s == nil || path == "" {
		return nil, false
	}
	var current any = s.values
	for _, segment := range strings.Split(path, ".") {
		node, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		if current, ok = node[segment]; !ok {
			return nil, false
		}
	}
	return current, true
}

// SetValue writes a value using a dotted path, creating intermediate maps as
// needed. A scalar sitting where a map is needed is an error.
func (s *State) SetValue(path string, value any) error {
	if s == nil {
		return fmt.Errorf("tui: state is nil")
	}
	if path == "" {
		return fmt.Errorf("tui: empty path")
	}
	if s.values == nil {
		s.values = make(map[string]any)
	}

	segments := strings.Split(path, ".")
	node := s.values
	for _, segment := range segments[:len(segments)-1] {
		existing, ok := node[segment]
		if !ok {
			child := make(map[string]any)
			node[segment] = child
			node = child
			continue
		}
		child, ok := existing.(map[string]any)
		if !ok {
			return fmt.Errorf("tui: path %q crosses non-object value at %q", path, segment)
		}
		node = child
	}
	node[segments[len(segments)-1]] = value
	return nil
}

func cloneValues(src map[string]any) map[string]any {
	out := make(map[string]any, len(src))
	for k, v := range src {
		out[k] = deepCopy(v)
	}
	return out
}

func deepCopy(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		clone := make(map[string]any, len(typed))
		for k, v := range typed {
			clone[k] = deepCopy(v)
		}
		return clone
	case []any:
		clone := make([]any, len(typed))
		for i, v := range typed {
			clone[i] = deepCopy(v)
		}
		return clone
	default:
		return typed
	}
}
