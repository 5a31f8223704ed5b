package sources

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net"
)

var (
	// ErrNotFound means the provider ran but has nothing for this movie.
	// This is informational, not a failure.
	ErrNotFound = errors.New("no sources for movie")

	// ErrUnexpectedStatus is wrapped by providers on non-success responses.
	ErrUnexpectedStatus = errors.New("unexpected response status")

	// ErrDecode is wrapped by providers when a response cannot be understood.
	ErrDecode = errors.New("malformed response")
)

// Cause classifies why a provider lookup failed.
type Cause string

const (
	CauseNetwork  Cause = "network"
	CauseProtocol Cause = "protocol"
	CauseTimeout  Cause = "timeout"
	CauseDecode   Cause = "decode"
	CauseInternal Cause = "internal" // provider panicked
)

// Failure is a failed lookup, isolated to a single provider.
type Failure struct {
	Provider string
	Cause    Cause
	Err      error
}

func (f *Failure) Error() string {
	return fmt.Sprintf("provider %s: %s: %v", f.Provider, f.Cause, f.Err)
}

func (f *Failure) Unwrap() error {
	return f.Err
}

// NewFailure wraps err as a Failure of the named provider, classifying the cause.
func NewFailure(provider string, err error) *Failure {
	var f *Failure
	if errors.As(err, &f) {
		return &Failure{Provider: provider, Cause: f.Cause, Err: f.Err}
	}
	return &Failure{Provider: provider, Cause: Classify(err), Err: err}
}

// Classify maps an error returned by a provider to a failure cause.
// Errors that fit no other category are protocol failures.
func Classify(err error) Cause {
	var netErr net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return CauseTimeout
	case errors.As(err, &netErr) && netErr.Timeout():
		return CauseTimeout
	case isDecodeError(err):
		return CauseDecode
	case errors.Is(err, ErrUnexpectedStatus):
		return CauseProtocol
	case errors.As(err, &netErr):
		return CauseNetwork
	default:
		return CauseProtocol
	}
}

func isDecodeError(err error) bool {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	var xmlErr *xml.SyntaxError
	return errors.Is(err, ErrDecode) ||
		errors.Is(err, io.ErrUnexpectedEOF) ||
		errors.As(err, &syntaxErr) ||
		errors.As(err, &typeErr) ||
		errors.As(err, &xmlErr)
}

// DuplicateNameError is returned when registering a provider whose name is taken.
type DuplicateNameError struct {
	Name string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("provider %q already registered", e.Name)
}
