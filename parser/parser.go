package parser

import (
	"context"
	"fmt"
	"io"

	"github.com/reusee/taipas/ast"
	"github.com/reusee/taipas/diags"
	"github.com/reusee/taipas/scanner"
)

type Parser struct {
	scanner  *scanner.Scanner
	tok      scanner.Token
	prec     Precedence
	reporter diags.Reporter
}

type Option func(*Parser)

func WithPrecedence(prec Precedence) Option {
	return func(p *Parser) {
		p.prec = prec
	}
}

// New reads the first token before returning.
func New(s *scanner.Scanner, reporter diags.Reporter, options ...Option) *Parser {
	p := &Parser{
		scanner:  s,
		prec:     DefaultPrecedence,
		reporter: reporter,
	}
	for _, option := range options {
		option(p)
	}
	p.tok = s.Next()
	return p
}

// ParseProgram parses a single program read from r.
func ParseProgram(ctx context.Context, r io.Reader, reporter diags.Reporter) (*ast.Program, error) {
	p := New(scanner.New(r), reporter)
	program, err := p.ParseProgram(ctx)
	if err != nil {
		return nil, err
	}
	if err := p.Err(); err != nil {
		return nil, err
	}
	return program, nil
}

func (p *Parser) Token() scanner.Token {
	return p.tok
}

func (p *Parser) Next() scanner.Token {
	p.tok = p.scanner.Next()
	return p.tok
}

// Err returns the read error of the underlying scanner, if any.
func (p *Parser) Err() error {
	return p.scanner.Err()
}

func (p *Parser) fail(ctx context.Context, pos scanner.Pos, format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	if p.reporter != nil {
		p.reporter.ReportError(ctx, pos, msg)
	}
	return &SyntaxError{
		Pos: pos,
		Msg: msg,
	}
}

func (p *Parser) expectChar(ctx context.Context, c rune, where string) error {
	if !p.tok.Is(c) {
		return p.fail(ctx, p.tok.Pos, "expected '%c' %s, got %s", c, where, p.tok)
	}
	p.Next()
	return nil
}

func (p *Parser) expectKind(ctx context.Context, kind scanner.Kind, where string) (scanner.Token, error) {
	tok := p.tok
	if tok.Kind != kind {
		return tok, p.fail(ctx, tok.Pos, "expected %s %s, got %s", describe(kind), where, tok)
	}
	p.Next()
	return tok, nil
}

func describe(kind scanner.Kind) string {
	if kind.IsKeyword() {
		return "'" + kind.String() + "'"
	}
	return kind.String()
}

func (p *Parser) tokPrecedence() int {
	if p.tok.Kind != scanner.Char {
		return -1
	}
	prec, ok := p.prec[p.tok.Char]
	if !ok || prec <= 0 {
		return -1
	}
	return prec
}

func (p *Parser) ParseExpression(ctx context.Context) (ast.Expr, error) {
	lhs, err := p.ParsePrimary(ctx)
	if err != nil {
		return nil, err
	}
	return p.parseBinOpRHS(ctx, 0, lhs)
}

func (p *Parser) parseBinOpRHS(ctx context.Context, minPrec int, lhs ast.Expr) (ast.Expr, error) {
	for {
		prec := p.tokPrecedence()
		if prec < minPrec {
			return lhs, nil
		}
		op := p.tok
		p.Next()

		rhs, err := p.ParsePrimary(ctx)
		if err != nil {
			return nil, err
		}

		// a tighter operator on the right takes rhs as its left operand
		if prec < p.tokPrecedence() {
			rhs, err = p.parseBinOpRHS(ctx, prec+1, rhs)
			if err != nil {
				return nil, err
			}
		}

		lhs = &ast.BinaryOp{
			At:    op.Pos,
			Op:    op.Char,
			Left:  lhs,
			Right: rhs,
		}
	}
}

func (p *Parser) ParsePrimary(ctx context.Context) (ast.Expr, error) {
	tok := p.tok
	switch {

	case tok.Kind == scanner.Identifier:
		p.Next()
		if !p.tok.Is('(') {
			return &ast.VariableRef{
				At:   tok.Pos,
				Name: tok.Text,
			}, nil
		}
		args, err := p.parseArgs(ctx)
		if err != nil {
			return nil, err
		}
		return &ast.Call{
			At:     tok.Pos,
			Callee: tok.Text,
			Args:   args,
		}, nil

	case tok.Kind == scanner.Number:
		p.Next()
		return &ast.IntegerLiteral{
			At:    tok.Pos,
			Value: tok.Value,
		}, nil

	case tok.Kind == scanner.True, tok.Kind == scanner.False:
		p.Next()
		return &ast.BooleanLiteral{
			At:    tok.Pos,
			Value: tok.Kind == scanner.True,
		}, nil

	case tok.Is('('):
		p.Next()
		expr, err := p.ParseExpression(ctx)
		if err != nil {
			return nil, err
		}
		if err := p.expectChar(ctx, ')', "to close parenthesized expression"); err != nil {
			return nil, err
		}
		return expr, nil

	}

	return nil, p.fail(ctx, tok.Pos, "unknown token when expecting an expression: %s", tok)
}

// parseArgs parses a parenthesized, comma separated argument list.
func (p *Parser) parseArgs(ctx context.Context) ([]ast.Expr, error) {
	if err := p.expectChar(ctx, '(', "to open argument list"); err != nil {
		return nil, err
	}
	var args []ast.Expr
	if p.tok.Is(')') {
		p.Next()
		return args, nil
	}
	for {
		arg, err := p.ParseExpression(ctx)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if p.tok.Is(')') {
			p.Next()
			return args, nil
		}
		if !p.tok.Is(',') {
			return nil, p.fail(ctx, p.tok.Pos, "expected ')' or ',' in argument list, got %s", p.tok)
		}
		p.Next()
	}
}

func (p *Parser) ParseStatement(ctx context.Context) (ast.Stmt, error) {
	tok := p.tok
	switch tok.Kind {

	case scanner.Identifier:
		p.Next()
		switch {
		case p.tok.Is(':'):
			p.Next()
			if err := p.expectChar(ctx, '=', "after ':' in assignment"); err != nil {
				return nil, err
			}
			value, err := p.ParseExpression(ctx)
			if err != nil {
				return nil, err
			}
			return &ast.Assignment{
				At:    tok.Pos,
				Name:  tok.Text,
				Value: value,
			}, nil
		case p.tok.Is('('):
			args, err := p.parseArgs(ctx)
			if err != nil {
				return nil, err
			}
			return &ast.ProcedureCallStatement{
				At:     tok.Pos,
				Callee: tok.Text,
				Args:   args,
			}, nil
		}
		return nil, p.fail(ctx, p.tok.Pos, "expected ':=' or '(' after %s, got %s", tok, p.tok)

	case scanner.Begin:
		return p.ParseCompoundStatement(ctx)

	case scanner.If:
		return p.parseIf(ctx)

	case scanner.For:
		return p.parseFor(ctx)

	}

	return nil, p.fail(ctx, tok.Pos, "expected statement, got %s", tok)
}

func (p *Parser) parseIf(ctx context.Context) (ast.Stmt, error) {
	at := p.tok.Pos
	p.Next() // if

	cond, err := p.ParseExpression(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := p.expectKind(ctx, scanner.Then, "after if condition"); err != nil {
		return nil, err
	}
	then, err := p.ParseStatement(ctx)
	if err != nil {
		return nil, err
	}

	stmt := &ast.IfStatement{
		At:   at,
		Cond: cond,
		Then: then,
	}
	if p.tok.Kind == scanner.Else {
		p.Next()
		stmt.Else, err = p.ParseStatement(ctx)
		if err != nil {
			return nil, err
		}
	}
	return stmt, nil
}

func (p *Parser) parseFor(ctx context.Context) (ast.Stmt, error) {
	at := p.tok.Pos
	p.Next() // for

	name, err := p.expectKind(ctx, scanner.Identifier, "after 'for'")
	if err != nil {
		return nil, err
	}
	if err := p.expectChar(ctx, ':', "after for variable"); err != nil {
		return nil, err
	}
	if err := p.expectChar(ctx, '=', "after ':' in for"); err != nil {
		return nil, err
	}
	start, err := p.ParseExpression(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := p.expectKind(ctx, scanner.To, "after for start value"); err != nil {
		return nil, err
	}
	end, err := p.ParseExpression(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := p.expectKind(ctx, scanner.Do, "after for end value"); err != nil {
		return nil, err
	}
	body, err := p.ParseCompoundStatement(ctx)
	if err != nil {
		return nil, err
	}

	return &ast.ForStatement{
		At:    at,
		Var:   name.Text,
		Start: start,
		End:   end,
		Body:  body,
	}, nil
}

func (p *Parser) ParseCompoundStatement(ctx context.Context) (*ast.CompoundStatement, error) {
	begin, err := p.expectKind(ctx, scanner.Begin, "to start compound statement")
	if err != nil {
		return nil, err
	}
	stmt := &ast.CompoundStatement{
		At: begin.Pos,
	}
	for p.tok.Kind != scanner.End {
		s, err := p.ParseStatement(ctx)
		if err != nil {
			return nil, err
		}
		stmt.Statements = append(stmt.Statements, s)
		if p.tok.Is(';') {
			p.Next()
			continue
		}
		if p.tok.Kind != scanner.End {
			return nil, p.fail(ctx, p.tok.Pos, "expected ';' or 'end' after statement, got %s", p.tok)
		}
	}
	p.Next() // end
	return stmt, nil
}

func (p *Parser) ParseDeclarations(ctx context.Context) (*ast.Declaration, error) {
	decl := &ast.Declaration{
		At: p.tok.Pos,
	}
	for p.tok.Kind == scanner.Var {
		p.Next()
		for {
			v, err := p.ParseVariableDecl(ctx)
			if err != nil {
				return nil, err
			}
			decl.Vars = append(decl.Vars, v)
			if err := p.expectChar(ctx, ';', "after variable declaration"); err != nil {
				return nil, err
			}
			if p.tok.Kind != scanner.Identifier {
				break
			}
		}
	}
	return decl, nil
}

func (p *Parser) ParseVariableDecl(ctx context.Context) (*ast.VariableDecl, error) {
	first, err := p.expectKind(ctx, scanner.Identifier, "in variable declaration")
	if err != nil {
		return nil, err
	}
	decl := &ast.VariableDecl{
		At:    first.Pos,
		Names: []string{first.Text},
	}
	for p.tok.Is(',') {
		p.Next()
		name, err := p.expectKind(ctx, scanner.Identifier, "after ','")
		if err != nil {
			return nil, err
		}
		decl.Names = append(decl.Names, name.Text)
	}
	if err := p.expectChar(ctx, ':', "before type name"); err != nil {
		return nil, err
	}
	switch p.tok.Kind {
	case scanner.Integer:
		decl.Type = ast.Integer
	case scanner.Boolean:
		decl.Type = ast.Boolean
	default:
		return nil, p.fail(ctx, p.tok.Pos, "expected type name, got %s", p.tok)
	}
	p.Next()
	return decl, nil
}

func (p *Parser) ParseBlock(ctx context.Context) (*ast.Block, error) {
	at := p.tok.Pos
	decls, err := p.ParseDeclarations(ctx)
	if err != nil {
		return nil, err
	}
	body, err := p.ParseCompoundStatement(ctx)
	if err != nil {
		return nil, err
	}
	return &ast.Block{
		At:    at,
		Decls: decls,
		Body:  body,
	}, nil
}

func (p *Parser) ParsePrototype(ctx context.Context) (*ast.Prototype, error) {
	at := p.tok.Pos
	if _, err := p.expectKind(ctx, scanner.Procedure, "to start procedure"); err != nil {
		return nil, err
	}
	name, err := p.expectKind(ctx, scanner.Identifier, "as procedure name")
	if err != nil {
		return nil, err
	}
	if err := p.expectChar(ctx, '(', "after procedure name"); err != nil {
		return nil, err
	}
	proto := &ast.Prototype{
		At:   at,
		Name: name.Text,
	}
	if !p.tok.Is(')') {
		for {
			param, err := p.ParseVariableDecl(ctx)
			if err != nil {
				return nil, err
			}
			proto.Params = append(proto.Params, param)
			if !p.tok.Is(';') {
				break
			}
			p.Next()
		}
	}
	if err := p.expectChar(ctx, ')', "to close parameter list"); err != nil {
		return nil, err
	}
	return proto, nil
}

func (p *Parser) ParseProcedure(ctx context.Context) (*ast.Function, error) {
	at := p.tok.Pos
	proto, err := p.ParsePrototype(ctx)
	if err != nil {
		return nil, err
	}
	if err := p.expectChar(ctx, ';', "after procedure heading"); err != nil {
		return nil, err
	}
	body, err := p.ParseBlock(ctx)
	if err != nil {
		return nil, err
	}
	return &ast.Function{
		At:    at,
		Proto: proto,
		Body:  body,
	}, nil
}

// ParseProgram leaves the terminating '.' as the current token, so an
// interactive reader is not asked for more input after a complete program.
func (p *Parser) ParseProgram(ctx context.Context) (*ast.Program, error) {
	at := p.tok.Pos
	if _, err := p.expectKind(ctx, scanner.Program, "to start program"); err != nil {
		return nil, err
	}
	name, err := p.expectKind(ctx, scanner.Identifier, "as program name")
	if err != nil {
		return nil, err
	}
	if err := p.expectChar(ctx, ';', "after program name"); err != nil {
		return nil, err
	}

	program := &ast.Program{
		At:   at,
		Name: name.Text,
	}
	for p.tok.Kind == scanner.Procedure {
		fn, err := p.ParseProcedure(ctx)
		if err != nil {
			return nil, err
		}
		program.Functions = append(program.Functions, fn)
		if err := p.expectChar(ctx, ';', "after procedure"); err != nil {
			return nil, err
		}
	}

	program.Block, err = p.ParseBlock(ctx)
	if err != nil {
		return nil, err
	}
	if p.tok.Kind != scanner.Period {
		return nil, p.fail(ctx, p.tok.Pos, "expected '.' at end of program, got %s", p.tok)
	}
	return program, nil
}
