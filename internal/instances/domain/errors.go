package domain

import "errors"

var (
	ErrNotFound         = errors.New("project instance not found")
	ErrTaskNotFound     = errors.New("instance task not found")
	ErrAlreadyCompleted = errors.New("instance already completed")
	ErrNotCompleted     = errors.New("instance is not completed")
)
