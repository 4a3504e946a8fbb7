package errors

import "errors"

var (
	ErrOrderExists   = errors.New("order exists")
	ErrOrderNotFound = errors.New("order not found")
)
