package usecase

import "errors"

var (
	// ErrInvalidInput marks requests whose fields could not be parsed into domain values.
	ErrInvalidInput = errors.New("invalid input")
	// ErrSubmissionFailed marks downstream failures that may clear on retry.
	ErrSubmissionFailed = errors.New("account submission failed")
	// ErrSubmissionRejected marks a definitive refusal by the accounts API.
	ErrSubmissionRejected = errors.New("account submission rejected")
)
