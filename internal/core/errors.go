package core

import "errors"

var (
	// ErrWrongCredentials covers every authentication failure, including the
	// zero-match case; callers must not learn which one happened.
	ErrWrongCredentials = errors.New("wrong credentials")

	// ErrUnknownDirection marks a trade direction outside the enumeration.
	ErrUnknownDirection = errors.New("unknown trade direction")
)
