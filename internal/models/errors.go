// Package models defines the core data structures for CareerAI.
//
// It includes the engine's closed error taxonomy, provider types, and the
// job/resume/document records shared across modules.
package models

import (
	"errors"
	"fmt"
)

// ErrorKind identifies a member of the engine's closed error taxonomy.
type ErrorKind string

const (
	// ErrorKindValidation indicates an input value failed its declared schema.
	ErrorKindValidation ErrorKind = "validation"
	// ErrorKindRender indicates a template referenced a required field absent from the value.
	ErrorKindRender ErrorKind = "render"
	// ErrorKindProviderUnavailable indicates the provider call failed for a reason other than rate limiting.
	ErrorKindProviderUnavailable ErrorKind = "provider_unavailable"
	// ErrorKindRateLimited indicates the provider reported quota or throughput exhaustion.
	ErrorKindRateLimited ErrorKind = "rate_limited"
	// ErrorKindOutputMismatch indicates the provider response did not validate against the output schema.
	ErrorKindOutputMismatch ErrorKind = "output_mismatch"
	// ErrorKindDuplicateFlow indicates a flow name was registered twice.
	ErrorKindDuplicateFlow ErrorKind = "duplicate_flow"
	// ErrorKindNotFound indicates a flow lookup for an unregistered name.
	ErrorKindNotFound ErrorKind = "not_found"
)

// ClassifiedError is a failure mapped into the closed taxonomy. It is
// constructed at the point of failure and propagated unchanged to the caller.
type ClassifiedError struct {
	Kind    ErrorKind
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *ClassifiedError) Error() string {
	if e.Message == "" {
		return string(e.Kind)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap exposes the underlying cause for errors.Is/errors.As chains.
func (e *ClassifiedError) Unwrap() error {
	return e.Cause
}

// NewClassifiedError constructs a taxonomy error with an optional cause.
func NewClassifiedError(kind ErrorKind, message string, cause error) *ClassifiedError {
	return &ClassifiedError{Kind: kind, Message: message, Cause: cause}
}

// KindOf extracts the taxonomy kind from an error chain. Errors that never
// passed through the classifier report ErrorKindProviderUnavailable so the
// caller always sees a closed set.
func KindOf(err error) ErrorKind {
	var ce *ClassifiedError
	if errors.As(err, &ce) {
		return ce.Kind
	}
	return ErrorKindProviderUnavailable
}

// IsKind reports whether err carries the given taxonomy kind.
func IsKind(err error, kind ErrorKind) bool {
	var ce *ClassifiedError
	return errors.As(err, &ce) && ce.Kind == kind
}

// ProviderFailure is the structured failure record surfaced by a provider
// adapter. The error classifier acts only on StatusCode and Message, which
// keeps classification provider-agnostic.
type ProviderFailure struct {
	StatusCode int
	Message    string
	Cause      error
}

// Error implements the error interface.
func (f *ProviderFailure) Error() string {
	if f.StatusCode != 0 {
		return fmt.Sprintf("provider failure (status %d): %s", f.StatusCode, f.Message)
	}
	return fmt.Sprintf("provider failure: %s", f.Message)
}

// Unwrap exposes the underlying transport error.
func (f *ProviderFailure) Unwrap() error {
	return f.Cause
}
