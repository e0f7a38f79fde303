// Package errors provides the structured error taxonomy used across the
// orthogram pipeline.
//
// Every stage of the pipeline (DDF loading, grid building, routing,
// segment optimization, sizing, rendering) reports failures as an *Error
// carrying a machine-readable Code plus a message naming the offending
// entity. Errors surface immediately at the stage boundary; none are
// recovered internally except SizingError, which the sizer retries once
// with relaxed minimums before giving up.
package errors

import (
	"errors"
	"fmt"
)

// Code is a machine-readable error category.
type Code string

const (
	// CodeDefinition covers malformed DDF documents: unknown keys, type
	// mismatches, missing required fields, cyclic or missing includes.
	CodeDefinition Code = "DEFINITION_ERROR"

	// CodeLayout covers grid-building failures: non-rectangular block
	// covers, duplicate block names, tag conflicts, zero-cover blocks.
	CodeLayout Code = "LAYOUT_ERROR"

	// CodeRouting covers connections for which no path satisfying the
	// entry/exit constraints exists.
	CodeRouting Code = "ROUTING_ERROR"

	// CodeSizing covers an infeasible constraint system, reported after
	// the one allowed relaxation retry.
	CodeSizing Code = "SIZING_ERROR"

	// CodeRender covers drawing back-end I/O failures.
	CodeRender Code = "RENDER_ERROR"
)

// Error is a structured error with a code, a human-readable message
// naming the offending entity, and an optional wrapped cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap allows errors.Is/As to see through to Cause.
func (e *Error) Unwrap() error { return e.Cause }

// New creates an *Error with a formatted message and no cause.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates an *Error that wraps an existing cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// Is reports whether err carries the given code anywhere in its chain.
func Is(err error, code Code) bool {
	var e *Error
	for errors.As(err, &e) {
		if e.Code == code {
			return true
		}
		err = e.Cause
	}
	return false
}

// GetCode extracts the Code from err, or "" if err is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}
