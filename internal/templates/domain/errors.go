package domain

import "errors"

var (
	ErrNotFound          = errors.New("template not found")
	ErrInvalidDifficulty = errors.New("invalid difficulty level")
	ErrInvalidCategory   = errors.New("invalid category")
	ErrInvalidHours      = errors.New("estimated hours out of range")
	ErrInvalidStatus     = errors.New("invalid template status")
)
