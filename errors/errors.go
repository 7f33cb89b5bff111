// Package errors provides coded errors that carry an HTTP style status code,
// a stable machine readable reason and a message that is safe to return to a
// caller. The underlying cause stays internal.
package errors

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
)

const (
	// UnknownCode is used for errors that were never given a code.
	UnknownCode = 500
	// UnknownReason is the reason of errors that were never given one.
	UnknownReason = ""
)

// Error is a coded error. Values are treated as immutable: every With method
// returns a modified copy.
type Error struct {
	Code     int               `json:"code,omitempty"`
	Reason   string            `json:"reason,omitempty"`
	Message  string            `json:"message,omitempty"`
	Metadata map[string]string `json:"metadata,omitempty"`

	cause error
}

// New creates an error with the given code. The format is used verbatim when
// no args are given so messages containing '%' survive.
func New(code int, format string, args ...any) *Error {
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	return &Error{Code: code, Message: msg}
}

// NewWithReason is New followed by WithReason.
func NewWithReason(code int, reason, format string, args ...any) *Error {
	e := New(code, format, args...)
	e.Reason = reason
	return e
}

// Error renders "code=.., reason=.., message=.., metadata={..}, cause=..".
// Empty parts are left out and metadata keys are sorted.
func (e *Error) Error() string {
	parts := make([]string, 0, 5)
	parts = append(parts, "code="+strconv.Itoa(e.Code))
	if e.Reason != UnknownReason {
		parts = append(parts, "reason="+e.Reason)
	}
	parts = append(parts, "message="+e.Message)
	if len(e.Metadata) > 0 {
		kv := make([]string, 0, len(e.Metadata))
		for _, k := range slices.Sorted(maps.Keys(e.Metadata)) {
			kv = append(kv, k+"="+e.Metadata[k])
		}
		parts = append(parts, "metadata={"+strings.Join(kv, ", ")+"}")
	}
	if e.cause != nil {
		parts = append(parts, "cause="+e.cause.Error())
	}
	return strings.Join(parts, ", ")
}

func (e *Error) Unwrap() error { return e.cause }

// Is reports whether err is an *Error with the same code. When both sides
// have a reason the reasons are compared, otherwise the messages are.
func (e *Error) Is(err error) bool {
	var target *Error
	if !errors.As(err, &target) || target.Code != e.Code {
		return false
	}
	if e.Reason != UnknownReason && target.Reason != UnknownReason {
		return e.Reason == target.Reason
	}
	return e.Message == target.Message
}

func (e *Error) WithReason(reason string) *Error {
	c := e.copy()
	c.Reason = reason
	return c
}

// WithMetadata merges m into a copy of the error. An empty m returns e.
func (e *Error) WithMetadata(m map[string]string) *Error {
	if len(m) == 0 {
		return e
	}
	c := e.copy()
	if c.Metadata == nil {
		c.Metadata = make(map[string]string, len(m))
	}
	maps.Copy(c.Metadata, m)
	return c
}

// WithCause attaches the internal cause. A nil cause returns e.
func (e *Error) WithCause(cause error) *Error {
	if cause == nil {
		return e
	}
	c := e.copy()
	c.cause = cause
	return c
}

func (e *Error) copy() *Error {
	c := *e
	c.Metadata = maps.Clone(e.Metadata)
	return &c
}

func (e *Error) GetCode() int       { return e.Code }
func (e *Error) GetReason() string  { return e.Reason }
func (e *Error) GetMessage() string { return e.Message }
func (e *Error) GetCause() error    { return e.cause }

// GetMetadata returns a copy of the metadata, or nil when there is none.
func (e *Error) GetMetadata() map[string]string {
	if len(e.Metadata) == 0 {
		return nil
	}
	return maps.Clone(e.Metadata)
}

// FromError returns the first *Error in err's chain. Any other error becomes
// an UnknownCode error whose message is err's text and whose cause is err.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return New(UnknownCode, "%v", err).WithCause(err)
}

// Code returns the code carried by err. A nil error is 200.
func Code(err error) int {
	if err == nil {
		return 200
	}
	return FromError(err).Code
}

// Reason returns the reason carried by err, or UnknownReason.
func Reason(err error) string {
	if err == nil {
		return UnknownReason
	}
	return FromError(err).Reason
}

// Wrap attaches err as the cause of a new coded error. Wrap(nil, ...) is nil.
func Wrap(err error, code int, format string, args ...any) *Error {
	if err == nil {
		return nil
	}
	return New(code, format, args...).WithCause(err)
}
