package service

import "errors"

// Sentinel errors for the operation outcomes the API boundary distinguishes.
// Services wrap these with fmt.Errorf("...: %w", ...) so controllers can map
// them with errors.Is while keeping the context in the message.
var (
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidInput       = errors.New("invalid input")
	ErrAlreadyFinished    = errors.New("submission already finished")
	ErrInvalidCredentials = errors.New("invalid credentials")
)
