// Package apperr defines the error values the service layer returns to the
// transport boundary. Every failure is tagged with a Kind so handlers can map
// it to a status code without string matching.
package apperr

import (
	"errors"
	"fmt"
	"strings"
)

type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindConflict
	KindExternalResource
)

// Error carries a kind, the failing operation and optional context
// identifiers. It renders to a human-readable string only at the boundary.
type Error struct {
	Kind   Kind
	Op     string   // operation name, e.g. "posts.Delete"
	Msg    string   // human-readable message for the response envelope
	Fields []string // violated fields, KindValidation only
	Caller string   // authenticated caller id, when known
	Target string   // target entity id, when known
	Err    error    // wrapped cause
}

func (e *Error) Error() string {
	var b strings.Builder
	if e.Op != "" {
		b.WriteString(e.Op)
		b.WriteString(": ")
	}
	if e.Msg != "" {
		b.WriteString(e.Msg)
	}
	if len(e.Fields) > 0 {
		fmt.Fprintf(&b, " (%s)", strings.Join(e.Fields, ", "))
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf reports the Kind of err, or KindInternal when err is not an *Error.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindInternal
}

// Message returns the boundary-facing message of err. Internal causes are
// never exposed through it.
func Message(err error) string {
	var ae *Error
	if errors.As(err, &ae) && ae.Msg != "" {
		return ae.Msg
	}
	return "unexpected server error, try again later"
}

// ValidationFields returns the violated-field list when err is a validation
// failure, nil otherwise.
func ValidationFields(err error) []string {
	var ae *Error
	if errors.As(err, &ae) && ae.Kind == KindValidation {
		return ae.Fields
	}
	return nil
}

func Validation(op, msg string, fields []string) *Error {
	return &Error{Kind: KindValidation, Op: op, Msg: msg, Fields: fields}
}

func Unauthorized(op, msg string, cause error) *Error {
	return &Error{Kind: KindUnauthorized, Op: op, Msg: msg, Err: cause}
}

func Forbidden(op, msg, caller, target string) *Error {
	return &Error{Kind: KindForbidden, Op: op, Msg: msg, Caller: caller, Target: target}
}

func NotFound(op, msg, target string) *Error {
	return &Error{Kind: KindNotFound, Op: op, Msg: msg, Target: target}
}

func Conflict(op, msg string) *Error {
	return &Error{Kind: KindConflict, Op: op, Msg: msg}
}

func External(op, msg string, cause error) *Error {
	return &Error{Kind: KindExternalResource, Op: op, Msg: msg, Err: cause}
}

func Internal(op, msg string, cause error) *Error {
	return &Error{Kind: KindInternal, Op: op, Msg: msg, Err: cause}
}
