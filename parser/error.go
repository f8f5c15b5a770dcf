package parser

import (
	"errors"
	"fmt"

	"github.com/reusee/taipas/scanner"
)

var ErrSyntax = errors.New("syntax error")

type SyntaxError struct {
	Pos scanner.Pos
	Msg string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at %s: %s", e.Pos, e.Msg)
}

func (e *SyntaxError) Unwrap() error {
	return ErrSyntax
}
