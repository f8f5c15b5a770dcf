package lower

import (
	"errors"
	"fmt"

	"github.com/reusee/taipas/scanner"
)

var (
	ErrUnknownVariable   = errors.New("unknown variable")
	ErrUnknownFunction   = errors.New("unknown function")
	ErrArgumentCount     = errors.New("incorrect number of arguments")
	ErrUnknownOperator   = errors.New("unknown operator")
	ErrRedefinition      = errors.New("function cannot be redefined")
	ErrDuplicateVariable = errors.New("duplicate variable")
	ErrNumericLiteral    = errors.New("invalid numeric literal")
)

// Error is a lowering failure at a source position.
type Error struct {
	Pos    scanner.Pos
	Err    error
	Detail string
}

func (e *Error) Message() string {
	if e.Detail == "" {
		return e.Err.Error()
	}
	return e.Err.Error() + ": " + e.Detail
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Message())
}

func (e *Error) Unwrap() error {
	return e.Err
}
