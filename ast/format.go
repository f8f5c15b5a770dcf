package ast

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

// format.go converts an AST back to source code

type formatter struct {
	buf     bytes.Buffer
	nindent int
}

// Format renders node as source text that parses back to an equal tree
// under the default operator precedence. An else-less if in the then arm
// of an if with an else is wrapped in begin and end, so the else keeps
// its binding at the cost of an extra compound statement.
func Format(node Node) string {
	var f formatter
	f.visitNode(node)
	return f.buf.String()
}

// binOpPrec mirrors the parser's default table
var binOpPrec = map[rune]int{
	'<': 10,
	'+': 20,
	'-': 20,
	'*': 40,
	'/': 40,
}

func (f *formatter) visitNode(node Node) {
	switch n := node.(type) {
	case Expr:
		f.visitExpr(n, 0)
	case Stmt:
		f.visitStmt(n)
	case *VariableDecl:
		f.visitVariableDecl(n)
	case *Declaration:
		f.visitDeclaration(n)
	case *Block:
		f.visitBlock(n)
	case *Prototype:
		f.visitPrototype(n)
	case *Function:
		f.visitFunction(n)
	case *Program:
		f.visitProgram(n)
	default:
		panic(fmt.Sprintf("unhandled case in formatter.visitNode: %T", node))
	}
}

func (f *formatter) visitExpr(e Expr, prec int) {
	switch e := e.(type) {
	case *IntegerLiteral:
		f.write(strconv.FormatFloat(e.Value, 'f', -1, 64))
	case *BooleanLiteral:
		if e.Value {
			f.write("true")
		} else {
			f.write("false")
		}
	case *VariableRef:
		f.write(e.Name)
	case *BinaryOp:
		op := binOpPrec[e.Op]
		if op < prec {
			f.write("(")
		}
		f.visitExpr(e.Left, op)
		f.write(" " + string(e.Op) + " ")
		// equal precedence on the right needs parentheses to stay left-associative
		f.visitExpr(e.Right, op+1)
		if op < prec {
			f.write(")")
		}
	case *Call:
		f.visitCall(e.Callee, e.Args)
	default:
		panic(fmt.Sprintf("unhandled case in formatter.visitExpr: %T", e))
	}
}

func (f *formatter) visitCall(callee string, args []Expr) {
	f.write(callee + "(")
	for i, a := range args {
		if i != 0 {
			f.write(", ")
		}
		f.visitExpr(a, 0)
	}
	f.write(")")
}

func (f *formatter) visitStmt(s Stmt) {
	switch s := s.(type) {
	case *CompoundStatement:
		if len(s.Statements) == 0 {
			f.write("begin end")
			return
		}
		f.write("begin")
		f.indent()
		for i, stmt := range s.Statements {
			if i != 0 {
				f.write(";")
				f.newline()
			}
			f.visitStmt(stmt)
		}
		f.dedent()
		f.write("end")
	case *Assignment:
		f.write(s.Name + " := ")
		f.visitExpr(s.Value, 0)
	case *ProcedureCallStatement:
		f.visitCall(s.Callee, s.Args)
	case *IfStatement:
		f.write("if ")
		f.visitExpr(s.Cond, 0)
		f.write(" then ")
		if s.Else != nil && openIf(s.Then) {
			f.visitStmt(&CompoundStatement{
				At:         s.Then.Pos(),
				Statements: []Stmt{s.Then},
			})
		} else {
			f.visitStmt(s.Then)
		}
		if s.Else != nil {
			f.write(" else ")
			f.visitStmt(s.Else)
		}
	case *ForStatement:
		f.write("for " + s.Var + " := ")
		f.visitExpr(s.Start, 0)
		f.write(" to ")
		f.visitExpr(s.End, 0)
		f.write(" do ")
		f.visitStmt(s.Body)
	default:
		panic(fmt.Sprintf("unhandled case in formatter.visitStmt: %T", s))
	}
}

func (f *formatter) visitVariableDecl(d *VariableDecl) {
	f.write(strings.Join(d.Names, ", ") + ": " + d.Type.String())
}

func (f *formatter) visitDeclaration(d *Declaration) {
	if len(d.Vars) == 0 {
		return
	}
	f.write("var")
	f.nindent++
	for _, v := range d.Vars {
		f.newline()
		f.visitVariableDecl(v)
		f.write(";")
	}
	f.nindent--
	f.newline()
}

func (f *formatter) visitBlock(b *Block) {
	if b.Decls != nil {
		f.visitDeclaration(b.Decls)
	}
	f.visitStmt(b.Body)
}

func (f *formatter) visitPrototype(p *Prototype) {
	f.write("procedure " + p.Name + "(")
	for i, d := range p.Params {
		if i != 0 {
			f.write("; ")
		}
		f.visitVariableDecl(d)
	}
	f.write(")")
}

func (f *formatter) visitFunction(fn *Function) {
	f.visitPrototype(fn.Proto)
	f.write(";")
	f.newline()
	f.visitBlock(fn.Body)
}

func (f *formatter) visitProgram(p *Program) {
	f.write("program " + p.Name + ";")
	f.newline()
	for _, fn := range p.Functions {
		f.newline()
		f.visitFunction(fn)
		f.write(";")
		f.newline()
	}
	f.newline()
	f.visitBlock(p.Block)
	f.write(".")
	f.newline()
}

func (f *formatter) indent() {
	f.nindent++
	f.newline()
}

func (f *formatter) dedent() {
	f.nindent--
	f.newline()
}

func (f *formatter) newline() {
	f.write("\n")
	for i := 0; i < f.nindent; i++ {
		f.write("  ")
	}
}

func (f *formatter) write(s string) {
	f.buf.WriteString(s)
}

// openIf reports whether stmt ends in an if without an else, which would
// take a following else.
func openIf(stmt Stmt) bool {
	switch s := stmt.(type) {
	case *IfStatement:
		if s.Else == nil {
			return true
		}
		return openIf(s.Else)
	}
	return false
}
