package domain

import "errors"

var (
	// ErrInvalidInput is returned for malformed processes or policy parameters
	ErrInvalidInput = errors.New("invalid input")
	// ErrDuplicateIdentity is returned when two processes share a pid
	ErrDuplicateIdentity = errors.New("duplicate process identity")
	// ErrReuseWithoutReset is returned when a process still carries data from a previous run
	ErrReuseWithoutReset = errors.New("process reused without reset")
	// ErrEmptyAggregate is returned when averaging over zero processes
	ErrEmptyAggregate = errors.New("no completed processes to aggregate")
	// ErrRunNotFound is returned when a stored run does not exist
	ErrRunNotFound = errors.New("schedule run not found")
)
