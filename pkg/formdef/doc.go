// Package formdef builds widget forms from JSON or YAML definitions.
//
// A definition lists fields in order; each field names a widget kind (or lets
// the registry infer one) and overrides only the props it cares about. Omitted
// props keep the widget's documented defaults, while an explicit empty string
// clears them.
//
// The resulting Form binds every widget to a State owned by the host. Widgets
// push edits into the State; calling Sync afterwards hands each widget a fresh
// binding carrying the latest values, which is the re-render step of the
// controlled-input cycle.
package formdef
