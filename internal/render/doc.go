// Package render turns a resolved record into a self-contained HTML document.
//
// A Descriptor pairs a template with named slot providers. Templates call
// {{slot "name"}}; every name a template can reach must have a provider when
// the descriptor is built, so a template/field mismatch surfaces at
// construction rather than as literal placeholder text in the output.
// Rendering evaluates each referenced slot exactly once and fails with
// ErrUnfilledSlot when a provider cannot produce a value from the record.
package render
