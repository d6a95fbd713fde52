package core

import (
	"errors"
	"fmt"
	"os"
)

// Codes for the kinds of problems font loading may run into. Callers
// usually switch on Code(err) instead of inspecting error chains.
const (
	NOERROR      int = 0
	EMISSING     int = 122 // font file or resource absent
	EINVALID     int = 123 // bytes do not decode to a usable font
	EUNSUPPORTED int = 124 // graphics environment lacks a capability
	EREFUSED     int = 126 // graphics environment declined a font
	EINTERNAL    int = 125 // broken invariant or I/O failure on cleanup
)

func errorText(ecode int) string {
	switch ecode {
	case NOERROR:
		return "OK"
	case EMISSING:
		return "not found"
	case EINVALID:
		return "invalid"
	case EUNSUPPORTED:
		return "unsupported"
	case EREFUSED:
		return "refused"
	case EINTERNAL:
		return "internal error"
	}
	return "undefined error"
}

// AppError is implemented by errors carrying one of the codes above and
// a message fit for end users, e.g. "cannot create the font: cmr10.ttf".
type AppError interface {
	error
	ErrorCode() int
	UserMessage() string
}

type coreError struct {
	error
	code int
	msg  string
}

func (e coreError) Unwrap() error {
	return e.error
}

// Error renders as "[code] message: cause", leaving out the cause if it
// says nothing beyond the message.
func (e coreError) Error() string {
	cause := e.error.Error()
	if e.msg == "" || e.msg == cause {
		return fmt.Sprintf("[%d] %s", e.code, cause)
	}
	return fmt.Sprintf("[%d] %s: %s", e.code, e.msg, cause)
}

func (e coreError) ErrorCode() int {
	return e.code
}

func (e coreError) UserMessage() string {
	return e.msg
}

var _ AppError = coreError{}

// ErrorWithCode classifies err with a code, keeping err as the cause.
// A nil err yields an error holding the code's default text.
func ErrorWithCode(err error, code int) error {
	if err == nil {
		err = errors.New(errorText(code))
	}
	return coreError{err, code, errorText(code)}
}

// WrapError classifies err with a code and attaches a user message.
// A nil err is replaced by the code's default text.
func WrapError(err error, code int, format string, v ...interface{}) error {
	if err == nil {
		err = errors.New(errorText(code))
	}
	msg := fmt.Sprintf(format, v...)
	return coreError{err, code, msg}
}

// Code finds the outermost code in err's chain. Uncoded errors count as
// EINTERNAL; nil is NOERROR.
func Code(err error) (code int) {
	if err == nil {
		return NOERROR
	}
	if e := AppError(nil); errors.As(err, &e) {
		return e.ErrorCode()
	}
	return EINTERNAL
}

// UserMessage finds the outermost user message in err's chain, falling
// back to the default text of err's code. For nil it returns "".
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	if e := AppError(nil); errors.As(err, &e) {
		return e.UserMessage()
	}
	return errorText(Code(err))
}

// Error creates a coded error without an underlying cause.
func Error(code int, format string, v ...interface{}) error {
	msg := fmt.Sprintf(format, v...)
	return coreError{errors.New(msg), code, msg}
}

// UserError prints an error to stderr, preferring the user message of
// an AppError. Used by command line tools.
func UserError(err error) {
	if e := AppError(nil); errors.As(err, &e) {
		fmt.Fprintf(os.Stderr, "[%d] %s\n", e.ErrorCode(), e.UserMessage())
		return
	}
	fmt.Fprintf(os.Stderr, "Error: %s\n", err.Error())
}
