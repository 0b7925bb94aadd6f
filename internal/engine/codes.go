package engine

import (
	"errors"
	"io/fs"
)

// Code is the integer result of an exchange.
type Code int

// Result codes
const (
	CodeOK         Code = 0
	CodeNotFound   Code = 1
	CodeInvalid    Code = 2
	CodeExists     Code = 3
	CodePermission Code = 4
	CodeUnknown    Code = 255
)

// String returns a short name for the code.
func (c Code) String() string {
	switch c {
	case CodeOK:
		return "ok"
	case CodeNotFound:
		return "not_found"
	case CodeInvalid:
		return "invalid"
	case CodeExists:
		return "exists"
	case CodePermission:
		return "permission"
	default:
		return "unknown"
	}
}

// Legacy folds codes that older callers do not know. Permission failures
// were reported as invalid input.
func (c Code) Legacy() Code {
	if c == CodePermission {
		return CodeInvalid
	}
	return c
}

// CodeFor returns the result code for err. A nil error is CodeOK.
func CodeFor(err error) Code {
	switch {
	case err == nil:
		return CodeOK
	case errors.Is(err, ErrNotFound):
		return CodeNotFound
	case errors.Is(err, ErrSamePath),
		errors.Is(err, ErrNoParent),
		errors.Is(err, ErrRelativePath):
		return CodeInvalid
	case errors.Is(err, ErrConflict),
		errors.Is(err, ErrDestinationExists):
		return CodeExists
	case errors.Is(err, ErrPermission),
		errors.Is(err, fs.ErrPermission):
		return CodePermission
	default:
		return CodeUnknown
	}
}
