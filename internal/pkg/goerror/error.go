package goerror

import (
	"errors"
	"fmt"
	"maps"
	"net/http"
	"slices"
	"strings"
)

var (
	// ErrNotFound is returned by repositories when no row matches.
	ErrNotFound = errors.New("resource not found")

	// ErrConflict is returned by repositories on unique violations.
	ErrConflict = errors.New("resource conflict")
)

// Type groups errors by who is at fault.
type Type int

const (
	TypeServer Type = iota
	TypeBusiness
	TypeValidation
)

func (t Type) String() string {
	switch t {
	case TypeServer:
		return "server"
	case TypeBusiness:
		return "business"
	case TypeValidation:
		return "validation"
	default:
		return "unknown"
	}
}

// Code identifies the failure and decides the HTTP status.
type Code int

const (
	CodeInternal Code = iota
	CodeInvalidFormat
	CodeInvalidInput
	CodeBadRequest
	CodeNotFound
	CodeConflict
	CodeUnauthorized
	CodeForbidden
)

func (c Code) String() string {
	switch c {
	case CodeInvalidFormat:
		return "invalid_format"
	case CodeInvalidInput:
		return "invalid_input"
	case CodeBadRequest:
		return "bad_request"
	case CodeNotFound:
		return "not_found"
	case CodeConflict:
		return "conflict"
	case CodeUnauthorized:
		return "unauthorized"
	case CodeForbidden:
		return "forbidden"
	default:
		return "internal"
	}
}

// Error carries a client-safe message next to the wrapped cause.
//
// The cause is only ever logged. Msg and Fields are what a client sees.
type Error struct {
	err     error
	msg     string
	errType Type
	code    Code
	fields  map[string]string
}

func (e *Error) Error() string {
	if e.err != nil {
		return e.err.Error()
	}

	if e.msg != "" {
		return e.msg
	}

	return e.errType.String() + " error"
}

// String is the verbose form used in logs.
func (e *Error) String() string {
	return fmt.Sprintf("type=%s code=%s msg=%q cause=%v", e.errType, e.code, e.msg, e.err)
}

// Msg returns the client-safe message.
func (e *Error) Msg() string { return e.msg }

// Type returns the error type.
func (e *Error) Type() Type { return e.errType }

// Code returns the error code.
func (e *Error) Code() Code { return e.code }

// Fields returns per-field validation messages, if any.
func (e *Error) Fields() map[string]string { return e.fields }

func (e *Error) Unwrap() error { return e.err }

// StatusCode maps the code to an HTTP status.
func (e *Error) StatusCode() int {
	switch e.code {
	case CodeInvalidFormat, CodeInvalidInput, CodeBadRequest:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeConflict:
		return http.StatusConflict
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// NewServer wraps a storage or infrastructure failure. The optional message
// replaces the default "Internal server error" text shown to clients.
func NewServer(err error, msg ...string) error {
	m := "Internal server error"
	if len(msg) > 0 && msg[0] != "" {
		m = msg[0]
	}

	return &Error{err: err, msg: m, errType: TypeServer, code: CodeInternal}
}

// NewBusiness reports a rule violation with a client-facing message.
func NewBusiness(msg string, code Code) error {
	return &Error{msg: msg, errType: TypeBusiness, code: code}
}

// NewInvalidInput builds a validation error. When err is a FieldError its
// fields are copied; otherwise kv is read as field/message pairs.
func NewInvalidInput(err error, kv ...string) error {
	e := &Error{err: err, errType: TypeValidation, code: CodeInvalidInput}

	var fe FieldError
	if errors.As(err, &fe) {
		e.fields = fe.Fields()
	}

	if len(kv)%2 != 0 {
		return NewInvalidFormat()
	}

	for i := 0; i+1 < len(kv); i += 2 {
		if e.fields == nil {
			e.fields = make(map[string]string, len(kv)/2)
		}
		e.fields[kv[i]] = kv[i+1]
	}

	e.msg = joinFields(e.fields)
	if e.msg == "" {
		e.msg = "Validation error"
	}

	return e
}

// NewInvalidFormat reports a body that could not be decoded.
func NewInvalidFormat(msgs ...string) error {
	if len(msgs) == 0 || msgs[0] == "" {
		return &Error{msg: "Invalid request body", errType: TypeValidation, code: CodeInvalidFormat}
	}

	return &Error{msg: msgs[0], errType: TypeValidation, code: CodeInvalidFormat}
}

// FieldError is implemented by validator errors that know their field names.
type FieldError interface {
	error
	Fields() map[string]string
}

func joinFields(fields map[string]string) string {
	if len(fields) == 0 {
		return ""
	}

	keys := slices.Sorted(maps.Keys(fields))
	msgs := make([]string, 0, len(keys))
	for _, k := range keys {
		msgs = append(msgs, fields[k])
	}

	return strings.Join(msgs, "; ")
}
