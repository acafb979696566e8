package errorx

import (
	"errors"
	"fmt"
)

type Error struct {
	Code    Code
	Message string
}

func New(code Code, format string, a ...any) Error {
	return Error{Code: code, Message: fmt.Sprintf(format, a...)}
}

func (e Error) Error() string {
	return e.Message
}

func (e Error) IsSoft() bool {
	return softCodes[e.Code]
}

// Is reports whether err is an Error carrying the given code.
func Is(err error, code Code) bool {
	var errx Error
	if errors.As(err, &errx) {
		return errx.Code == code
	}

	return false
}

func IsSoft(err error) bool {
	var errx Error
	if errors.As(err, &errx) {
		return errx.IsSoft()
	}

	return false
}
