// Package apperr carries the error taxonomy shared by services and
// controllers: callers switch on Code(err) rather than on error strings.
package apperr

import (
	"errors"
	"fmt"
)

type ErrCode string

const (
	ErrValidation   ErrCode = "VALIDATION"
	ErrNotFound     ErrCode = "NOT_FOUND"
	ErrIntegrity    ErrCode = "INTEGRITY"
	ErrInvalidCreds ErrCode = "INVALID_CREDENTIALS"
)

type codedError struct {
	code ErrCode
	msg  string
	err  error
}

func (e *codedError) Error() string {
	switch {
	case e.msg != "":
		return e.msg
	case e.err != nil:
		return e.err.Error()
	}
	return string(e.code)
}

func (e *codedError) Code() ErrCode { return e.code }
func (e *codedError) Unwrap() error { return e.err }

// New builds a coded error with a user-facing message.
func New(code ErrCode, format string, args ...any) error {
	return &codedError{code: code, msg: fmt.Sprintf(format, args...)}
}

// Wrap attaches a code and message to err, keeping err reachable via errors.Is/As.
func Wrap(code ErrCode, err error, format string, args ...any) error {
	return &codedError{code: code, msg: fmt.Sprintf(format, args...), err: err}
}

func Validation(format string, args ...any) error { return New(ErrValidation, format, args...) }
func NotFound(format string, args ...any) error   { return New(ErrNotFound, format, args...) }
func Integrity(format string, args ...any) error  { return New(ErrIntegrity, format, args...) }

// Code extracts the error code, or "" for uncoded errors.
func Code(err error) ErrCode {
	var ce interface{ Code() ErrCode }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}

func Is(err error, code ErrCode) bool { return err != nil && Code(err) == code }
