package render

import "errors"

var (
	// ErrUnfilledSlot is returned when a slot provider cannot produce a value
	// from the record being rendered.
	ErrUnfilledSlot = errors.New("unfilled slot")

	// ErrUnknownSlot is returned when a template references a slot that has
	// no provider.
	ErrUnknownSlot = errors.New("slot has no provider")

	// ErrUnknownLayout is returned for layout lookups that match no descriptor.
	ErrUnknownLayout = errors.New("unknown layout")
)
