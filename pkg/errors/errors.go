// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

// Package errors provides typed errors for jenkins-action
package errors

import (
	"fmt"
	"sort"
	"strings"
	"time"

	crdb "github.com/cockroachdb/errors"
)

// Kind represents the category of error
type Kind int

const (
	// ErrConfig indicates a missing or invalid configuration value
	ErrConfig Kind = iota
	// ErrJSONParse indicates a malformed JSON parameter or cookie payload
	ErrJSONParse
	// ErrConnect indicates the scheduler could not be reached or authenticated
	ErrConnect
	// ErrSubmission indicates the scheduler rejected the job or its parameters
	ErrSubmission
	// ErrQueueTimeout indicates the queue item never became a build
	ErrQueueTimeout
	// ErrBuildTimeout indicates the build never stopped running
	ErrBuildTimeout
	// ErrUnknownResult indicates the scheduler reported an unrecognized result
	ErrUnknownResult
	// ErrBuildFailed indicates the build finished with a non-success outcome
	ErrBuildFailed
	// ErrPublish indicates a report sink failed; never fatal
	ErrPublish
)

// Exit codes returned by the jenkins-action binary
const (
	ExitSuccess     = 0   // Build succeeded, or was not awaited
	ExitInfraError  = 1   // Configuration, connection or submission error
	ExitBuildFailed = 2   // Build finished with a non-success outcome
	ExitTimeout     = 101 // Queue or build timed out
)

// Error is the base error type for all jenkins-action errors
type Error struct {
	Kind    Kind
	Message string
	Cause   error
	Context map[string]any
}

// Error returns the error message
func (e *Error) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s", e.Kind, e.Message)
	if len(e.Context) > 0 {
		keys := make([]string, 0, len(e.Context))
		for k := range e.Context {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&b, " %s=%v", k, e.Context[k])
		}
	}
	if e.Cause != nil {
		fmt.Fprintf(&b, ": %v", e.Cause)
	}
	return b.String()
}

// Unwrap returns the underlying cause
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error. The cause is wrapped so that its origin stack
// is retained.
func New(kind Kind, message string, cause error) *Error {
	if cause != nil {
		cause = crdb.WithStack(cause)
	}
	return &Error{
		Kind:    kind,
		Message: message,
		Cause:   cause,
		Context: make(map[string]any),
	}
}

// WithContext adds context to the error
func (e *Error) WithContext(key string, value any) *Error {
	e.Context[key] = value
	return e
}

// String returns the label used in error messages.
func (k Kind) String() string {
	switch k {
	case ErrConfig:
		return "CONFIG"
	case ErrJSONParse:
		return "JSON_PARSE"
	case ErrConnect:
		return "CONNECT"
	case ErrSubmission:
		return "SUBMISSION"
	case ErrQueueTimeout:
		return "QUEUE_TIMEOUT"
	case ErrBuildTimeout:
		return "BUILD_TIMEOUT"
	case ErrUnknownResult:
		return "UNKNOWN_RESULT"
	case ErrBuildFailed:
		return "BUILD_FAILED"
	case ErrPublish:
		return "PUBLISH"
	default:
		return "UNKNOWN"
	}
}

// KindOf returns the kind of the first Error in err's chain.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if err == nil || !crdb.As(err, &e) {
		return 0, false
	}
	return e.Kind, true
}

// IsKind checks if an error is of a specific kind
func IsKind(err error, kind Kind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}

// IsFatal reports whether err must terminate the process. Publish
// warnings are the only non-fatal errors.
func IsFatal(err error) bool {
	if err == nil {
		return false
	}
	return !IsKind(err, ErrPublish)
}

// ExitCode maps an error to the process exit status.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	kind, ok := KindOf(err)
	if !ok {
		return ExitInfraError
	}
	switch kind {
	case ErrQueueTimeout, ErrBuildTimeout:
		return ExitTimeout
	case ErrBuildFailed, ErrUnknownResult:
		return ExitBuildFailed
	case ErrPublish:
		return ExitSuccess
	default:
		return ExitInfraError
	}
}

// Convenience functions for common errors

// ConfigError creates a configuration error
func ConfigError(message string, cause error) *Error {
	return New(ErrConfig, message, cause)
}

// JSONParseError creates a JSON payload error for the named input
func JSONParseError(input string, cause error) *Error {
	return New(ErrJSONParse, fmt.Sprintf("`%s` is not valid JSON", input), cause).
		WithContext("input", input)
}

// ConnectError creates a connection error
func ConnectError(message string, cause error) *Error {
	return New(ErrConnect, message, cause)
}

// SubmissionError creates a submission error
func SubmissionError(message string, cause error) *Error {
	return New(ErrSubmission, message, cause)
}

// QueueTimeoutError creates a queue resolution timeout error
func QueueTimeoutError(startTimeout time.Duration, cause error) *Error {
	return New(ErrQueueTimeout,
		fmt.Sprintf("could not obtain build and timed out, waited for %s", startTimeout), cause).
		WithContext("start_timeout", startTimeout)
}

// BuildTimeoutError creates a build completion timeout error
func BuildTimeoutError(timeout time.Duration, cause error) *Error {
	return New(ErrBuildTimeout,
		fmt.Sprintf("build has not finished and timed out, waited for %s", timeout), cause).
		WithContext("timeout", timeout)
}

// UnknownResultError creates an error for an unrecognized build result
func UnknownResultError(result string) *Error {
	return New(ErrUnknownResult, fmt.Sprintf("build returned unknown result %q", result), nil).
		WithContext("result", result)
}

// BuildFailedError creates an error for a build that finished without success
func BuildFailedError(outcome string) *Error {
	return New(ErrBuildFailed, fmt.Sprintf("build status returned %q, build has failed", outcome), nil).
		WithContext("outcome", outcome)
}

// PublishWarning creates a non-fatal report sink error
func PublishWarning(sink string, cause error) *Error {
	return New(ErrPublish, fmt.Sprintf("failed to publish to %s", sink), cause).
		WithContext("sink", sink)
}
