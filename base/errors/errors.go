// Copyright (c) 2026, The NodePointer Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package errors provides the standard library errors functions plus
// helpers for logging and handling errors, so that it can be used as
// a drop-in replacement for the standard errors package.
package errors

import (
	"errors"
	"fmt"
	"log/slog"
	"runtime"
)

// New returns an error that formats as the given text.
// It is equivalent to [errors.New].
func New(text string) error {
	return errors.New(text)
}

// Is reports whether any error in err's tree matches target.
// It is equivalent to [errors.Is].
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's tree that matches target.
// It is equivalent to [errors.As].
func As(err error, target any) bool {
	return errors.As(err, target)
}

// Unwrap returns the result of calling the Unwrap method on err.
// It is equivalent to [errors.Unwrap].
func Unwrap(err error) error {
	return errors.Unwrap(err)
}

// Join returns an error that wraps the given errors.
// It is equivalent to [errors.Join].
func Join(errs ...error) error {
	return errors.Join(errs...)
}

// CallerInfo returns the file, line, and function of the caller
// of the function that calls CallerInfo.
func CallerInfo() string {
	pc, file, line, ok := runtime.Caller(2)
	if !ok {
		return ""
	}
	return fmt.Sprintf("%s (%s:%d)", runtime.FuncForPC(pc).Name(), file, line)
}

// Log logs the given error if it is non-nil, adding information about
// the caller. It returns the error unmodified so that it can be used
// directly in return statements.
func Log(err error) error {
	if err != nil {
		slog.Error(err.Error() + " | " + CallerInfo())
	}
	return err
}

// Log1 is a version of [Log] that takes and returns one additional value,
// so that it can wrap function calls returning a value and an error.
func Log1[T any](v T, err error) T {
	if err != nil {
		slog.Error(err.Error() + " | " + CallerInfo())
	}
	return v
}

// Ignore1 returns the given value, ignoring any error. It is useful
// when the error is known to be irrelevant, such as a missing optional
// metadata key.
func Ignore1[T any](v T, err error) T {
	return v
}

// Must panics if the given error is non-nil.
func Must(err error) {
	if err != nil {
		panic(err)
	}
}

// Must1 returns the given value and panics if the given error is non-nil.
func Must1[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}
