package domain

import "errors"

// Sentinel errors used across layers.
var (
	ErrNotFound       = errors.New("not found")
	ErrStepIncomplete = errors.New("step is not complete")
	ErrInvalidInput   = errors.New("invalid input")
	ErrJourneyClosed  = errors.New("journey is closed")
	ErrAlreadyExists  = errors.New("already exists")
)
