package ast

import "github.com/reusee/taipas/scanner"

type Pos = scanner.Pos

type Node interface {
	Pos() Pos
}

// Expr is one of *IntegerLiteral, *BooleanLiteral, *VariableRef, *BinaryOp, *Call.
type Expr interface {
	Node
	exprNode()
}

// Stmt is one of *CompoundStatement, *Assignment, *ProcedureCallStatement,
// *IfStatement, *ForStatement.
type Stmt interface {
	Node
	stmtNode()
}

type IntegerLiteral struct {
	At Pos
	// as scanned; lowering truncates toward zero
	Value float64
}

type BooleanLiteral struct {
	At    Pos
	Value bool
}

type VariableRef struct {
	At   Pos
	Name string
}

type BinaryOp struct {
	At    Pos
	Op    rune
	Left  Expr
	Right Expr
}

type Call struct {
	At     Pos
	Callee string
	Args   []Expr
}

func (e *IntegerLiteral) Pos() Pos { return e.At }
func (e *BooleanLiteral) Pos() Pos { return e.At }
func (e *VariableRef) Pos() Pos    { return e.At }
func (e *BinaryOp) Pos() Pos       { return e.At }
func (e *Call) Pos() Pos           { return e.At }

func (*IntegerLiteral) exprNode() {}
func (*BooleanLiteral) exprNode() {}
func (*VariableRef) exprNode()    {}
func (*BinaryOp) exprNode()       {}
func (*Call) exprNode()           {}

type CompoundStatement struct {
	At         Pos
	Statements []Stmt
}

type Assignment struct {
	At    Pos
	Name  string
	Value Expr
}

type ProcedureCallStatement struct {
	At     Pos
	Callee string
	Args   []Expr
}

type IfStatement struct {
	At   Pos
	Cond Expr
	Then Stmt
	Else Stmt // nil without an else arm
}

type ForStatement struct {
	At    Pos
	Var   string
	Start Expr
	End   Expr
	Body  *CompoundStatement
}

func (s *CompoundStatement) Pos() Pos      { return s.At }
func (s *Assignment) Pos() Pos             { return s.At }
func (s *ProcedureCallStatement) Pos() Pos { return s.At }
func (s *IfStatement) Pos() Pos            { return s.At }
func (s *ForStatement) Pos() Pos           { return s.At }

func (*CompoundStatement) stmtNode()      {}
func (*Assignment) stmtNode()             {}
func (*ProcedureCallStatement) stmtNode() {}
func (*IfStatement) stmtNode()            {}
func (*ForStatement) stmtNode()           {}

type Type int

const (
	Integer Type = iota
	Boolean
)

func (t Type) String() string {
	switch t {
	case Integer:
		return "integer"
	case Boolean:
		return "boolean"
	}
	return "unknown"
}

type VariableDecl struct {
	At    Pos
	Names []string
	Type  Type
}

type Declaration struct {
	At   Pos
	Vars []*VariableDecl
}

type Block struct {
	At    Pos
	Decls *Declaration
	Body  *CompoundStatement
}

type Prototype struct {
	At     Pos
	Name   string
	Params []*VariableDecl
}

// NumParams counts parameters across all declaration groups.
func (p *Prototype) NumParams() int {
	n := 0
	for _, decl := range p.Params {
		n += len(decl.Names)
	}
	return n
}

func (p *Prototype) ParamNames() []string {
	names := make([]string, 0, p.NumParams())
	for _, decl := range p.Params {
		names = append(names, decl.Names...)
	}
	return names
}

type Function struct {
	At    Pos
	Proto *Prototype
	Body  *Block
}

type Program struct {
	At        Pos
	Name      string
	Functions []*Function
	Block     *Block
}

func (d *VariableDecl) Pos() Pos { return d.At }
func (d *Declaration) Pos() Pos  { return d.At }
func (b *Block) Pos() Pos        { return b.At }
func (p *Prototype) Pos() Pos    { return p.At }
func (f *Function) Pos() Pos     { return f.At }
func (p *Program) Pos() Pos      { return p.At }
