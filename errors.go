package houghlite

import (
	"errors"
)

var (
	// ErrInvalidInput indicates a malformed accumulator grid, such as one
	// containing non-finite vote counts or an empty dimension
	ErrInvalidInput = errors.New("invalid input")

	// ErrConfiguration indicates analysis parameters that fail validation,
	// such as a negative tolerance or non-positive square size
	ErrConfiguration = errors.New("invalid configuration")

	// ErrUnknownStrategy indicates an easing strategy name that has not
	// been registered
	ErrUnknownStrategy = errors.New("unknown easing strategy")

	// ErrUnknownParticle indicates a PDG particle ID with no charge entry
	// and no default charge configured
	ErrUnknownParticle = errors.New("unknown particle type")
)
