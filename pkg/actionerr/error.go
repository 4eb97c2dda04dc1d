// Copyright (c) CodeSee <https://www.codesee.io/>
// SPDX-License-Identifier: MIT

package actionerr

import (
	"errors"
	"fmt"
)

// Kind classifies an orchestration failure.
type Kind int

const (
	MissingRequiredConfig Kind = iota
	InvalidConfig
	UnknownStep
	MalformedEventPayload
	RemoteResolutionFailure
	ExternalToolFailure
)

func (k Kind) String() string {
	switch k {
	case MissingRequiredConfig:
		return "missing required config"
	case InvalidConfig:
		return "invalid config"
	case UnknownStep:
		return "unknown step"
	case MalformedEventPayload:
		return "malformed event payload"
	case RemoteResolutionFailure:
		return "remote resolution failure"
	case ExternalToolFailure:
		return "external tool failure"
	default:
		return "unknown"
	}
}

// Error is returned by the orchestrator for every failure with a defined kind
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func Wrap(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}

// Is reports whether any error in err's chain is an *Error of the given kind.
func Is(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}
