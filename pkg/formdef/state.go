package formdef

import (
	"maps"
	"sync"

	"github.com/goliatone/go-formwidgets/pkg/binding"
	"github.com/goliatone/go-formwidgets/pkg/ingest"
)

// State is the host-owned value store a Form binds to. It is safe for
// concurrent use since file ingestion pushes from its own goroutine.
type State struct {
	mu      sync.RWMutex
	values  map[string]string
	files   map[string]ingest.Selection
	version uint64
}

// NewState creates a State seeded with values.
func NewState(values map[string]string) *State {
	s := &State{
		values: make(map[string]string, len(values)),
		files:  make(map[string]ingest.Selection),
	}
	maps.Copy(s.values, values)
	return s
}

// Get returns the value stored under key.
func (s *State) Get(key string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.values[key]
}

// Lookup returns the value stored under key and whether it is set.
func (s *State) Lookup(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok
}

// Set stores value under key.
func (s *State) Set(key, value string) {
	s.mu.Lock()
	s.values[key] = value
	s.version++
	s.mu.Unlock()
}

// Seed stores value only when key is not set yet.
func (s *State) Seed(key, value string) {
	s.mu.Lock()
	if _, ok := s.values[key]; !ok {
		s.values[key] = value
	}
	s.mu.Unlock()
}

// Selection returns the file selection stored under key.
func (s *State) Selection(key string) ingest.Selection {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.files[key]
}

// SetSelection stores a file selection under key.
func (s *State) SetSelection(key string, sel ingest.Selection) {
	s.mu.Lock()
	s.files[key] = sel
	s.version++
	s.mu.Unlock()
}

// Version increases on every write.
func (s *State) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// Bind returns a binding over key carrying its current value.
func (s *State) Bind(key string) binding.Value[string] {
	return binding.Bind(s.Get(key), func(next string) { s.Set(key, next) })
}

// BindSelection returns a binding over the file selection stored under key.
func (s *State) BindSelection(key string) binding.Value[ingest.Selection] {
	return binding.Bind(s.Selection(key), func(next ingest.Selection) { s.SetSelection(key, next) })
}

// Values returns a snapshot of every stored value. File selections appear as
// their data URI in base64 mode and as the file name in raw mode.
func (s *State) Values() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]any, len(s.values)+len(s.files))
	for k, v := range s.values {
		out[k] = v
	}
	for k, sel := range s.files {
		switch {
		case sel.Mode == ingest.ModeBase64:
			out[k] = sel.Encoded
		case sel.Raw != nil:
			out[k] = sel.Raw.Name()
		}
	}
	return out
}
