package usecase

import "errors"

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("resource not found")
	// ErrConsistencyFailure marks a standings recompute that could not finish.
	// The surrounding transaction is always rolled back.
	ErrConsistencyFailure = errors.New("standings consistency failure")
)
