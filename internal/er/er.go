// Copyright (c) 2019 Caleb James DeLisle
// Copyright (c) 2026 The libbitcoin-go developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package er implements the typed-error framework used throughout this
// module in place of bare `error` values. Every consensus-relevant package
// defines its own er.ErrorType with a fixed set of er.ErrorCode values (see
// script/scripterr, validate/rules), so a caller can use ErrorCode.Is to
// discriminate a specific failure without string matching.
package er

import (
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/libbitcoin-go/core/internal/buildinfo"
)

// GenericErrorType is for packages with only one or two error codes which
// don't warrant their own named error type.
var GenericErrorType = NewErrorType("er.GenericErrorType")

var ErrUnexpectedEOF = GenericErrorType.CodeWithDefault("ErrUnexpectedEOF", io.ErrUnexpectedEOF)
var EOF = GenericErrorType.CodeWithDefault("EOF", io.EOF)

// ErrorCode identifies a particular kind of fault within an ErrorType.
type ErrorCode struct {
	Detail         string
	Type           *ErrorType
	defaultWrapped error
}

// ErrorType groups a family of related ErrorCodes, e.g. all script-machine
// failures or all validation-pipeline failures.
type ErrorType struct {
	Name  string
	Codes []*ErrorCode
}

// NewErrorType creates a new error type identified by name, e.g.
// "script.Err" or "validate.Err".
func NewErrorType(ident string) ErrorType {
	return ErrorType{Name: ident}
}

// Code registers and returns a new error code under this type.
func (e *ErrorType) Code(info string) *ErrorCode {
	ec := &ErrorCode{Detail: info, Type: e}
	e.Codes = append(e.Codes, ec)
	return ec
}

// CodeWithDetail is like Code but attaches a fixed detail suffix to every
// instance (e.g. the reject-reason string bitcoind would use).
func (e *ErrorType) CodeWithDetail(info, detail string) *ErrorCode {
	ec := &ErrorCode{Detail: info + ": " + detail, Type: e}
	e.Codes = append(e.Codes, ec)
	return ec
}

// CodeWithDefault registers a code that wraps a specific stdlib sentinel
// error by default (see ErrUnexpectedEOF/EOF above).
func (e *ErrorType) CodeWithDefault(info string, defaultError error) *ErrorCode {
	ec := e.Code(info)
	ec.defaultWrapped = defaultError
	return ec
}

// Is reports whether err was produced by this specific code.
func (c *ErrorCode) Is(err R) bool {
	if err == nil {
		return c == nil
	}
	te, ok := err.(typedErr)
	return ok && te.code == c
}

// New builds an R carrying this code, an optional message, and an optional
// wrapped cause.
func (c *ErrorCode) New(info string, cause R) R {
	var messages []string
	if info == "" {
		messages = []string{c.Detail}
	} else {
		messages = []string{c.Detail, info}
	}
	if cause == nil {
		cause = baseErr("")
	} else if te, ok := cause.(typedErr); ok && te.code == c {
		if info != "" {
			te.messages = append(messages, te.messages...)
		}
		return te
	}
	return typedErr{messages: messages, errType: c.Type, code: c, err: cause}
}

// Default builds an R for this code, wrapping the code's default sentinel
// error if one was registered.
func (c *ErrorCode) Default() R {
	if c.defaultWrapped != nil {
		return c.New("", E(c.defaultWrapped))
	}
	return c.New("", nil)
}

// Is reports whether err belongs to this ErrorType at all (any code).
func (e *ErrorType) Is(err R) bool {
	te, ok := err.(typedErr)
	return ok && te.errType == e
}

// Decode extracts the specific ErrorCode from err, or nil if err isn't one
// of this package's typed errors.
func (e *ErrorType) Decode(err R) *ErrorCode {
	te, ok := err.(typedErr)
	if !ok {
		return nil
	}
	return te.code
}

type typedErr struct {
	messages []string
	errType  *ErrorType
	code     *ErrorCode
	err      R
}

func (te typedErr) Message() string {
	inner := te.err.Message()
	if inner == "" {
		return strings.Join(te.messages, ": ")
	}
	return fmt.Sprintf("%s: %s", strings.Join(te.messages, ": "), inner)
}

func (te typedErr) String() string { return buildinfo.Version() + " " + te.Message() }
func (te typedErr) Error() string  { return te.String() }
func (te typedErr) Wrapped0() error {
	return te.err.Wrapped0()
}
func (te typedErr) Native() error { return typedErrAsNative{e: te} }
func (te typedErr) AddMessage(m string) {
	te.messages = append([]string{m}, te.messages...)
}

type typedErrAsNative struct{ e typedErr }

func (t typedErrAsNative) Error() string { return t.e.String() }

// R is the common interface implemented by every error produced by this
// package, typed or not.
type R interface {
	Message() string
	String() string
	Wrapped0() error
	Native() error
	AddMessage(m string)
}

type err struct {
	messages []string
	e        error
}

func baseErr(s string) R { return err{e: errors.New(s)} }

type errAsNative struct{ e err }

func (e errAsNative) Error() string { return e.e.String() }

func (e err) Message() string {
	if e.messages == nil {
		return e.e.Error()
	}
	return strings.Join(e.messages, ", ")
}
func (e err) String() string   { return buildinfo.Version() + " " + e.Message() }
func (e err) Error() string    { return e.String() }
func (e err) Wrapped0() error  { return e.e }
func (e err) Native() error    { return errAsNative{e: e} }
func (e err) AddMessage(m string) {
	if e.messages == nil {
		e.messages = []string{m, e.e.Error()}
	} else {
		e.messages = append([]string{m}, e.messages...)
	}
}

// New builds an untyped R from a plain message, for ad-hoc internal
// consistency failures that don't warrant a dedicated code.
func New(s string) R { return baseErr(s) }

// Errorf is the formatted equivalent of New.
func Errorf(format string, a ...interface{}) R {
	return err{e: fmt.Errorf(format, a...)}
}

// E wraps a stdlib error as an R, recognizing io.EOF/io.ErrUnexpectedEOF
// specially so Wrapped/Equals behave sensibly across the reader boundary.
func E(e error) R {
	if e == nil {
		return nil
	}
	if en, ok := e.(errAsNative); ok {
		return en.e
	}
	if en, ok := e.(typedErrAsNative); ok {
		return en.e
	}
	switch e {
	case io.ErrUnexpectedEOF:
		return ErrUnexpectedEOF.Default()
	case io.EOF:
		return EOF.Default()
	default:
		return err{e: e}
	}
}

// Wrapped returns the underlying stdlib error, if any.
func Wrapped(r R) error {
	if r == nil {
		return nil
	}
	return r.Wrapped0()
}

// Native returns r as a plain stdlib error (implementing the error
// interface) for interop with code that doesn't know about er.R.
func Native(r R) error {
	if r == nil {
		return nil
	}
	return r.Native()
}

// Equals reports whether two er.R values were produced by the same code
// (for typed errors) or wrap the identical underlying error value.
func Equals(e, r R) bool {
	if e == nil || r == nil {
		return e == nil && r == nil
	}
	if te, ok := e.(typedErr); ok {
		tr, ok := r.(typedErr)
		return ok && te.code == tr.code
	}
	if ee, ok := e.(err); ok {
		if rr, ok := r.(err); ok {
			return ee.e != nil && rr.e != nil && ee.e == rr.e
		}
		return false
	}
	panic("er.Equals: unrecognized error type " + reflect.TypeOf(e).String())
}
