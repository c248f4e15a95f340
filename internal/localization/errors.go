// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package localization

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument reports a malformed request.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrRecordNotFound reports a record that is missing or not on the
	// requested page and source language.
	ErrRecordNotFound = errors.New("record not found")
	// ErrTransform reports a record transform that rejected its input, such
	// as an unusable payload path.
	ErrTransform = errors.New("transform failed")
)

// StorageError wraps a failure of the underlying store.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}

func storageErr(op string, err error) error {
	return &StorageError{Op: op, Err: err}
}

// classified reports whether err already carries one of the engine's error
// classes or a context error.
func classified(err error) bool {
	var se *StorageError
	return errors.Is(err, ErrRecordNotFound) ||
		errors.Is(err, ErrInvalidArgument) ||
		errors.Is(err, ErrTransform) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.As(err, &se)
}
