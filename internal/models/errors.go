package models

import "errors"

// Custom errors
var (
	ErrNotFound            = errors.New("record not found")
	ErrDuplicateKey        = errors.New("duplicate key violation")
	ErrInsufficientHistory = errors.New("insufficient prior observations")
	ErrNoMatch             = errors.New("no acceptable name match")
	ErrNoLine              = errors.New("no market line available")
	ErrMissingFeatures     = errors.New("required feature columns missing")
)
