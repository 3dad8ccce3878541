package services

import "errors"

// Preprocessing service errors
var (
	ErrNoInput  = errors.New("no input file given")
	ErrNilTable = errors.New("nil table")
)
