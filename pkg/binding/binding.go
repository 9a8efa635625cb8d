// Package binding models controlled values: a widget displays the value the
// host hands it and reports edits back through a callback, never keeping an
// authoritative copy of its own.
package binding

// Value pairs the caller-owned current value with its upward change callback.
// Widgets read Current and call Push; they never assign Current themselves.
type Value[T any] struct {
	Current  T
	OnChange func(next T)
}

// Bind is a convenience constructor for Value.
func Bind[T any](current T, onChange func(next T)) Value[T] {
	return Value[T]{Current: current, OnChange: onChange}
}

// Static returns a binding without a change callback. Edits against it are
// dropped silently.
func Static[T any](current T) Value[T] {
	return Value[T]{Current: current}
}

// Push forwards next to the host exactly once. It reports false when no
// callback is wired, in which case the edit is not persisted.
func (v Value[T]) Push(next T) bool {
	if v.OnChange == nil {
		return false
	}
	v.OnChange(next)
	return true
}

// ReadOnly reports whether edits are dropped.
func (v Value[T]) ReadOnly() bool {
	return v.OnChange == nil
}

// With returns a copy of the binding carrying a new current value and the same
// callback. Hosts use it when re-rendering after their state changed.
func (v Value[T]) With(current T) Value[T] {
	return Value[T]{Current: current, OnChange: v.OnChange}
}
