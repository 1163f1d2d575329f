package service

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrStale marks a store response that arrived after the request
	// that issued it was cancelled. Stale results are never rendered.
	ErrStale = errors.New("response discarded: request no longer active")

	// ErrRequiredField is returned when a required field of a draft is blank
	ErrRequiredField = errors.New("required field missing")
)

// FetchError wraps a failed store read
type FetchError struct {
	Op  string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// WriteError wraps a failed store write
type WriteError struct {
	Op  string
	Err error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// IsFetchError reports whether err wraps a FetchError
func IsFetchError(err error) bool {
	var fe *FetchError
	return errors.As(err, &fe)
}

// IsWriteError reports whether err wraps a WriteError
func IsWriteError(err error) bool {
	var we *WriteError
	return errors.As(err, &we)
}

// stale reports whether the request behind ctx has gone away
func stale(ctx context.Context) bool {
	return ctx.Err() != nil
}
