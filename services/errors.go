package services

import "errors"

var (
	ErrNotFound          = errors.New("record not found")
	ErrInvalidStatus     = errors.New("invalid order status")
	ErrInvalidTransition = errors.New("status transition not allowed")
	ErrConflict          = errors.New("duplicate record")
)
