package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingAPIKey means the upstream credential is absent; an
	// operator has to fix configuration, retrying will not help.
	ErrMissingAPIKey = errors.New("OpenAI API key not configured")

	// ErrRateLimited is the user-facing quota rejection. The message is
	// part of the client contract.
	ErrRateLimited = errors.New("Rate limit exceeded. Please try again later.")

	// ErrPreviewNotFound means a preview id is unknown or its TTL lapsed.
	ErrPreviewNotFound = errors.New("preview not found or expired")
)

// UpstreamError wraps failures of the generative model call: transport
// errors, non-2xx statuses, and unparsable response bodies.
type UpstreamError struct {
	Msg string
	Err error
}

func (e *UpstreamError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// ValidationError means the model's output violated the candidate
// contract. The same prompt may be resubmitted; the request is not
// retried automatically.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// PersistError wraps a write failure after generation succeeded. Step
// names which insert failed; rows written before it are not rolled back.
type PersistError struct {
	Step string
	Err  error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("persist %s: %v", e.Step, e.Err)
}

func (e *PersistError) Unwrap() error { return e.Err }
