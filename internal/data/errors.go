package data

import "errors"

// Shared sentinel errors for data-layer repositories.
var (
	ErrPrintJobRequired   = errors.New("print job is required")
	ErrPrintJobIDRequired = errors.New("print job id is required")
	ErrKeyRequired        = errors.New("key cannot be empty")
)
