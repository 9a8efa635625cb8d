// Package template defines the renderer-agnostic template seam the HTML
// renderer depends on, so callers can swap in their own engine.
package template
