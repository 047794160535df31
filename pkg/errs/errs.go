// Package errs is the structured error taxonomy shared by every package in
// this module. Errors carry a Kind that callers can branch on
// programmatically, a numeric Code for wire/log correlation, a message, and
// the file:line of the throw site plus an optional back-trace of the
// frames the error crossed on its way up.
package errs

import (
	"fmt"
	"runtime"
)

// Kind classifies the error so callers can branch on intent rather than on
// message text. Kind drives user presentation.
type Kind int

const (
	KindNone Kind = iota
	KindInformation
	KindWarning
	KindError
	KindFatal
	KindCommunication
	KindSystem
	KindSocket
	KindConfiguration
	KindSecurity
	KindMeter
	KindSoftware
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "None"
	case KindInformation:
		return "Information"
	case KindWarning:
		return "Warning"
	case KindError:
		return "Error"
	case KindFatal:
		return "Fatal"
	case KindCommunication:
		return "Communication"
	case KindSystem:
		return "System"
	case KindSocket:
		return "Socket"
	case KindConfiguration:
		return "Configuration"
	case KindSecurity:
		return "Security"
	case KindMeter:
		return "Meter"
	case KindSoftware:
		return "Software"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Code enumerates the specific, programmatically-distinguishable failure
// reasons. Code is independent of Kind: Kind drives presentation, Code
// drives programmatic handling.
type Code int

const (
	CodeNone Code = iota
	CodeBadConversion
	CodeNoValue
	CodeNumberOutOfRange
	CodeIndexOutOfRange
	CodeStringTooLong
	CodeDivisionByZero
	CodeOverflow
	CodeUnderflow
	CodeUnknownItem
	CodeNoSuchProperty
	CodeNoSuchService
	CodeServiceDoesNotHaveNParameters
	CodeClassNotFound
	CodeCannotIndexItem
	CodeUnsupportedType
	CodeCannotReadFromWriteonlyStream
	CodeCannotWriteToReadonlyStream
	CodeBadStreamFlag
	CodeEndOfStream
	CodeRegexpTooManyParens
	CodeRegexpTrailingBackslash
	CodeRegexpEmptyBrackets
	CodeRegexpBadRange
	CodeRegexpUnmatchedParen
	CodeRegexpUnterminatedParen
	CodeRegexpNestedQuantifier
	CodeRegexpQuantifierNoOperand
	CodeRegexpEmptyMatchUnderRepeat
	CodeRegexpProgramTooLarge
	CodeOperationCancelled
	CodeValidationFailed
	CodeSystemError
)

// Frame is one file:line entry in an error's back-trace.
type Frame struct {
	File string
	Line int
}

// Error is the structured exception type used throughout this module.
type Error struct {
	Kind    Kind
	Code    Code
	Message string
	First   Frame
	Stack   []Frame
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Is supports errors.Is against sentinel Kind/Code combinations: two *Error
// values are equivalent for matching purposes when both Kind and Code agree.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || t == nil || e == nil {
		return false
	}
	return e.Kind == t.Kind && e.Code == t.Code
}

// New creates an *Error, capturing the immediate caller's file:line as the
// throw site.
func New(kind Kind, code Code, format string, args ...any) *Error {
	e := &Error{Kind: kind, Code: code, Message: fmt.Sprintf(format, args...)}
	if _, file, line, ok := runtime.Caller(1); ok {
		e.First = Frame{File: file, Line: line}
	}
	return e
}

// Wrap attaches the caller's file:line as a back-trace frame to err and
// returns it unchanged in every other respect.
func Wrap(err *Error) *Error {
	if err == nil {
		return nil
	}
	if _, file, line, ok := runtime.Caller(1); ok {
		err.Stack = append(err.Stack, Frame{File: file, Line: line})
	}
	return err
}

// Quote renders v as a quoted, length-clamped string for embedding the
// offending value in error messages.
func Quote(v any) string {
	s := fmt.Sprintf("%v", v)
	const maxLen = 60
	if len(s) > maxLen {
		s = s[:maxLen] + "..."
	}
	return fmt.Sprintf("%q", s)
}

// Convenience constructors for the most frequently thrown kinds.

func BadConversion(format string, args ...any) *Error {
	return New(KindSoftware, CodeBadConversion, format, args...)
}

func NoValue(format string, args ...any) *Error {
	return New(KindSoftware, CodeNoValue, format, args...)
}

func NumberOutOfRange(format string, args ...any) *Error {
	return New(KindSoftware, CodeNumberOutOfRange, format, args...)
}

func IndexOutOfRange(format string, args ...any) *Error {
	return New(KindSoftware, CodeIndexOutOfRange, format, args...)
}

func DivisionByZero(format string, args ...any) *Error {
	return New(KindSoftware, CodeDivisionByZero, format, args...)
}

func Overflow(format string, args ...any) *Error {
	return New(KindSoftware, CodeOverflow, format, args...)
}

func Underflow(format string, args ...any) *Error {
	return New(KindSoftware, CodeUnderflow, format, args...)
}

func UnknownItem(format string, args ...any) *Error {
	return New(KindSoftware, CodeUnknownItem, format, args...)
}

func NoSuchProperty(format string, args ...any) *Error {
	return New(KindSoftware, CodeNoSuchProperty, format, args...)
}

func NoSuchService(format string, args ...any) *Error {
	return New(KindSoftware, CodeNoSuchService, format, args...)
}

func ServiceDoesNotHaveNParameters(format string, args ...any) *Error {
	return New(KindSoftware, CodeServiceDoesNotHaveNParameters, format, args...)
}

func ClassNotFound(format string, args ...any) *Error {
	return New(KindSoftware, CodeClassNotFound, format, args...)
}

func CannotIndexItem(format string, args ...any) *Error {
	return New(KindSoftware, CodeCannotIndexItem, format, args...)
}

func UnsupportedType(format string, args ...any) *Error {
	return New(KindSoftware, CodeUnsupportedType, format, args...)
}

func CannotReadFromWriteonlyStream() *Error {
	return New(KindSoftware, CodeCannotReadFromWriteonlyStream, "cannot read from a write-only stream")
}

func CannotWriteToReadonlyStream() *Error {
	return New(KindSoftware, CodeCannotWriteToReadonlyStream, "cannot write to a read-only stream")
}

func BadStreamFlag(format string, args ...any) *Error {
	return New(KindSoftware, CodeBadStreamFlag, format, args...)
}

func EndOfStream(format string, args ...any) *Error {
	return New(KindError, CodeEndOfStream, format, args...)
}

func OperationCancelled() *Error {
	return New(KindSoftware, CodeOperationCancelled, "operation cancelled")
}

func ValidationFailed(format string, args ...any) *Error {
	return New(KindSecurity, CodeValidationFailed, format, args...)
}

// System wraps an OS-level failure, decoding its message at throw time.
func System(format string, args ...any) *Error {
	return New(KindSystem, CodeSystemError, format, args...)
}
