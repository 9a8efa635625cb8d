package testsupport

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formwidgets/pkg/binding"
)

// Recorder captures every value pushed through a binding callback. It is safe
// to use from ingestion goroutines.
type Recorder[T any] struct {
	mu     sync.Mutex
	values []T
}

// Bind returns a binding whose callback records into r.
func (r *Recorder[T]) Bind(current T) binding.Value[T] {
	return binding.Bind(current, r.Record)
}

// Record appends next.
func (r *Recorder[T]) Record(next T) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values = append(r.values, next)
}

// Values returns a copy of the recorded values in call order.
func (r *Recorder[T]) Values() []T {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]T(nil), r.values...)
}

// Calls returns the number of recorded pushes.
func (r *Recorder[T]) Calls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.values)
}

// Sequence records named events in order, for asserting callback ordering
// across widgets.
type Sequence struct {
	mu     sync.Mutex
	events []string
}

// Add records an event.
func (s *Sequence) Add(event string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
}

// Events returns the recorded events.
func (s *Sequence) Events() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.events...)
}

// AssertDiff fails the test when want and got differ.
func AssertDiff(t *testing.T, label string, want, got any, opts ...cmp.Option) {
	t.Helper()
	if diff := cmp.Diff(want, got, opts...); diff != "" {
		t.Fatalf("%s mismatch (-want +got):\n%s", label, diff)
	}
}

// AssertContains fails the test when any of the fragments is missing from
// output.
func AssertContains(t *testing.T, output string, fragments ...string) {
	t.Helper()
	for _, fragment := range fragments {
		if !strings.Contains(output, fragment) {
			t.Fatalf("expected output to contain %q\noutput:\n%s", fragment, output)
		}
	}
}

// AssertNotContains fails the test when any of the fragments appears in
// output.
func AssertNotContains(t *testing.T, output string, fragments ...string) {
	t.Helper()
	for _, fragment := range fragments {
		if strings.Contains(output, fragment) {
			t.Fatalf("expected output not to contain %q\noutput:\n%s", fragment, output)
		}
	}
}

// WriteFixture writes data under dir and returns its path.
func WriteFixture(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir fixture dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// CaptureTemplateOutput executes a render function that writes to an io.Writer,
// returning both the string result and the writer contents. Tests can assert
// the renderer returns and writes the same payload without duplicating buffer
// setup.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}

	return out, buf.String()
}
