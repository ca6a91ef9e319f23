package internalerr

import "errors"

// Sentinel errors for common cases
var (
	ErrNotFound      = errors.New("not found")
	ErrInvalidInput  = errors.New("invalid input")
	ErrStructural    = errors.New("malformed input structure")
	ErrInvalidConfig = errors.New("invalid configuration")
)
