package service

import "errors"

// Sentinel errors mapped to HTTP outcomes at the handler boundary.
var (
	ErrNotFound   = errors.New("record not found")
	ErrConflict   = errors.New("conflict")
	ErrValidation = errors.New("validation failed")
)
