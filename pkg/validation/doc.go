// Package validation implements the synchronous, pattern-based check widgets
// run on every change. It is deliberately small: one optional pattern per
// input, evaluated against the current value only.
package validation
