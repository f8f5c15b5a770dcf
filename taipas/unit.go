package taipas

import (
	"context"

	"github.com/reusee/taipas/ast"
	"github.com/reusee/taipas/diags"
	"github.com/reusee/taipas/ir"
	"github.com/reusee/taipas/parser"
	"github.com/reusee/taipas/scanner"
	"github.com/reusee/taipas/taivm"
)

type UnitKind int

const (
	ProgramUnit UnitKind = iota + 1
	ProcedureUnit
)

func (k UnitKind) String() string {
	switch k {
	case ProgramUnit:
		return "program"
	case ProcedureUnit:
		return "procedure"
	}
	return "unknown"
}

// Unit is one top-level construct on its way through the pipeline.
type Unit struct {
	Context  context.Context
	Kind     UnitKind
	Pos      scanner.Pos
	Reporter diags.Reporter
	Parser   *parser.Parser

	// set by the pipeline steps
	Name      string
	Program   *ast.Program
	Procedure *ast.Function
	Module    *ir.Module
	VM        *taivm.VM
}

// Node returns the parsed construct, nil before parsing.
func (u *Unit) Node() ast.Node {
	switch {
	case u.Program != nil:
		return u.Program
	case u.Procedure != nil:
		return u.Procedure
	}
	return nil
}

// Globals returns the program-level variables after execution.
func (u *Unit) Globals() map[string]int64 {
	if u.VM == nil {
		return nil
	}
	return u.VM.Globals()
}
