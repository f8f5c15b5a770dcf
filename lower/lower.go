package lower

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/reusee/taipas/ast"
	"github.com/reusee/taipas/diags"
	"github.com/reusee/taipas/ir"
	"github.com/reusee/taipas/scanner"
	"github.com/reusee/taipas/scopes"
)

const EntryName = ir.EntryName

var Operators = map[rune]ir.Op{
	'+': ir.OpAdd,
	'-': ir.OpSub,
	'*': ir.OpMul,
	'/': ir.OpDiv,
	'<': ir.OpLt,
}

// Lowerer translates AST nodes into calls on an ir.Builder.
// A Lowerer is not safe for concurrent use.
type Lowerer struct {
	builder  ir.Builder
	reporter diags.Reporter
	scope    *scopes.Table[ir.Slot]
	protos   map[string]*prototype

	// names declared in the current activation
	declared map[string]bool
	// declarations of the current activation become module globals
	global bool
}

type prototype struct {
	id        ir.FuncID
	numParams int
	defined   bool
}

func New(builder ir.Builder, reporter diags.Reporter) *Lowerer {
	return &Lowerer{
		builder:  builder,
		reporter: reporter,
		scope:    scopes.New[ir.Slot](),
		protos:   make(map[string]*prototype),
	}
}

func (l *Lowerer) fail(ctx context.Context, pos scanner.Pos, sentinel error, format string, args ...any) error {
	err := &Error{
		Pos:    pos,
		Err:    sentinel,
		Detail: fmt.Sprintf(format, args...),
	}
	l.report(ctx, pos, err.Message())
	return err
}

func (l *Lowerer) report(ctx context.Context, pos scanner.Pos, msg string) {
	if l.reporter != nil {
		l.reporter.ReportError(ctx, pos, msg)
	}
}

// lookupPrototype finds callables declared by this Lowerer, then those
// already known to the builder such as runtime builtins.
func (l *Lowerer) lookupPrototype(name string) (*prototype, bool) {
	if p, ok := l.protos[name]; ok {
		return p, true
	}
	id, n, ok := l.builder.LookupFunction(name)
	if !ok {
		return nil, false
	}
	return &prototype{
		id:        id,
		numParams: n,
		defined:   l.builder.IsDefined(id),
	}, true
}

func (l *Lowerer) beginActivation(global bool) {
	l.scope.Reset()
	l.declared = make(map[string]bool)
	l.global = global
}

// declare allocates fresh zero-initialized storage for name.
func (l *Lowerer) declare(ctx context.Context, pos scanner.Pos, name string) (ir.Slot, error) {
	if l.declared[name] {
		return ir.Slot{}, l.fail(ctx, pos, ErrDuplicateVariable, "%s", name)
	}
	l.declared[name] = true
	var slot ir.Slot
	if l.global {
		slot = l.builder.NewGlobal(name)
	} else {
		slot = l.builder.NewLocal(name)
	}
	l.builder.EmitStore(slot, l.builder.EmitConstant(0))
	l.scope.Bind(name, slot)
	return slot, nil
}

// Function lowers a procedure definition. On failure nothing of the
// procedure is left in the builder.
func (l *Lowerer) Function(ctx context.Context, fn *ast.Function) (ir.FuncID, error) {
	proto := fn.Proto
	if p, ok := l.lookupPrototype(proto.Name); ok && p.defined {
		return ir.NoFunc, l.fail(ctx, proto.Pos(), ErrRedefinition, "%s", proto.Name)
	}

	p := &prototype{
		id:        l.builder.DeclareFunction(proto.Name, proto.NumParams()),
		numParams: proto.NumParams(),
	}
	l.protos[proto.Name] = p

	err := l.functionBody(ctx, p.id, fn)
	if err == nil {
		err = l.builder.FinalizeFunction(p.id)
		if err != nil {
			l.report(ctx, fn.Pos(), err.Error())
		}
	}
	if err != nil {
		l.builder.DiscardFunction(p.id)
		delete(l.protos, proto.Name)
		return ir.NoFunc, err
	}

	p.defined = true
	return p.id, nil
}

func (l *Lowerer) functionBody(ctx context.Context, id ir.FuncID, fn *ast.Function) error {
	l.beginActivation(false)
	l.builder.BeginFunctionBody(id)

	// the procedure name holds its result
	result, err := l.declare(ctx, fn.Proto.Pos(), fn.Proto.Name)
	if err != nil {
		return err
	}

	i := 0
	for _, decl := range fn.Proto.Params {
		for _, name := range decl.Names {
			if l.declared[name] {
				return l.fail(ctx, decl.Pos(), ErrDuplicateVariable, "%s", name)
			}
			l.declared[name] = true
			slot := l.builder.NewLocal(name)
			l.builder.EmitStore(slot, l.builder.Param(i))
			l.scope.Bind(name, slot)
			i++
		}
	}

	if err := l.block(ctx, fn.Body); err != nil {
		return err
	}
	l.builder.EmitReturn(l.builder.EmitLoad(result))
	return nil
}

// Program lowers every procedure, then the program block as the function
// EntryName. A failed procedure does not stop the others from being
// lowered; all failures are joined in the returned error.
func (l *Lowerer) Program(ctx context.Context, program *ast.Program) (ir.FuncID, error) {
	var errs []error
	for _, fn := range program.Functions {
		if _, err := l.Function(ctx, fn); err != nil {
			errs = append(errs, err)
		}
	}

	id, err := l.entry(ctx, program)
	if err != nil {
		errs = append(errs, err)
	}
	return id, errors.Join(errs...)
}

func (l *Lowerer) entry(ctx context.Context, program *ast.Program) (ir.FuncID, error) {
	if p, ok := l.lookupPrototype(EntryName); ok && p.defined {
		return ir.NoFunc, l.fail(ctx, program.Pos(), ErrRedefinition, "%s", EntryName)
	}
	id := l.builder.DeclareFunction(EntryName, 0)

	err := func() error {
		l.beginActivation(true)
		l.builder.BeginFunctionBody(id)
		if err := l.block(ctx, program.Block); err != nil {
			return err
		}
		l.builder.EmitReturn(l.builder.EmitConstant(0))
		if err := l.builder.FinalizeFunction(id); err != nil {
			l.report(ctx, program.Pos(), err.Error())
			return err
		}
		return nil
	}()
	if err != nil {
		l.builder.DiscardFunction(id)
		return ir.NoFunc, err
	}

	l.protos[EntryName] = &prototype{
		id:      id,
		defined: true,
	}
	return id, nil
}

func (l *Lowerer) block(ctx context.Context, block *ast.Block) error {
	if block.Decls != nil {
		for _, decl := range block.Decls.Vars {
			for _, name := range decl.Names {
				if _, err := l.declare(ctx, decl.Pos(), name); err != nil {
					return err
				}
			}
		}
	}
	return l.compound(ctx, block.Body)
}

func (l *Lowerer) compound(ctx context.Context, stmt *ast.CompoundStatement) error {
	for _, s := range stmt.Statements {
		if err := l.stmt(ctx, s); err != nil {
			return err
		}
	}
	return nil
}

func (l *Lowerer) stmt(ctx context.Context, stmt ast.Stmt) error {
	switch stmt := stmt.(type) {

	case *ast.CompoundStatement:
		return l.compound(ctx, stmt)

	case *ast.Assignment:
		slot, ok := l.scope.Lookup(stmt.Name)
		if !ok {
			return l.fail(ctx, stmt.Pos(), ErrUnknownVariable, "%s", stmt.Name)
		}
		value, err := l.expr(ctx, stmt.Value)
		if err != nil {
			return err
		}
		l.builder.EmitStore(slot, value)
		return nil

	case *ast.ProcedureCallStatement:
		_, err := l.call(ctx, stmt.Pos(), stmt.Callee, stmt.Args)
		return err

	case *ast.IfStatement:
		return l.ifStmt(ctx, stmt)

	case *ast.ForStatement:
		return l.forStmt(ctx, stmt)

	}
	panic(fmt.Sprintf("unhandled statement: %T", stmt))
}

func (l *Lowerer) ifStmt(ctx context.Context, stmt *ast.IfStatement) error {
	cond, err := l.expr(ctx, stmt.Cond)
	if err != nil {
		return err
	}
	test := l.builder.EmitBinaryOp(ir.OpNe, cond, l.builder.EmitConstant(0))

	thenBlock := l.builder.NewBlock("then")
	elseBlock := l.builder.NewBlock("else")
	mergeBlock := l.builder.NewBlock("ifcont")
	l.builder.EmitCondBranch(test, thenBlock, elseBlock)

	l.builder.SetInsertPoint(thenBlock)
	if err := l.stmt(ctx, stmt.Then); err != nil {
		return err
	}
	l.builder.EmitBranch(mergeBlock)

	l.builder.SetInsertPoint(elseBlock)
	if stmt.Else != nil {
		if err := l.stmt(ctx, stmt.Else); err != nil {
			return err
		}
	}
	l.builder.EmitBranch(mergeBlock)

	l.builder.SetInsertPoint(mergeBlock)
	return nil
}

// forStmt runs the body for every value from start to end inclusive, and at
// least once. The end test uses the value before incrementing.
func (l *Lowerer) forStmt(ctx context.Context, stmt *ast.ForStatement) error {
	start, err := l.expr(ctx, stmt.Start)
	if err != nil {
		return err
	}
	slot := l.builder.NewLocal(stmt.Var)
	l.builder.EmitStore(slot, start)

	loopBlock := l.builder.NewBlock("loop")
	afterBlock := l.builder.NewBlock("afterloop")
	l.builder.EmitBranch(loopBlock)
	l.builder.SetInsertPoint(loopBlock)

	l.scope.Shadow(stmt.Var, slot)
	cond, err := func() (ir.Value, error) {
		defer l.scope.Restore()
		if err := l.compound(ctx, stmt.Body); err != nil {
			return ir.NoValue, err
		}
		end, err := l.expr(ctx, stmt.End)
		if err != nil {
			return ir.NoValue, err
		}
		cur := l.builder.EmitLoad(slot)
		cond := l.builder.EmitBinaryOp(ir.OpLt, cur, end)
		next := l.builder.EmitBinaryOp(ir.OpAdd, cur, l.builder.EmitConstant(1))
		l.builder.EmitStore(slot, next)
		return cond, nil
	}()
	if err != nil {
		return err
	}

	l.builder.EmitCondBranch(cond, loopBlock, afterBlock)
	l.builder.SetInsertPoint(afterBlock)
	return nil
}

func (l *Lowerer) expr(ctx context.Context, expr ast.Expr) (ir.Value, error) {
	switch expr := expr.(type) {

	case *ast.IntegerLiteral:
		v := expr.Value
		// 2^63 is exactly representable; int64 holds [-2^63, 2^63)
		if math.IsNaN(v) || v >= math.MaxInt64 || v < math.MinInt64 {
			return ir.NoValue, l.fail(ctx, expr.Pos(), ErrNumericLiteral, "%v", v)
		}
		return l.builder.EmitConstant(int64(math.Trunc(v))), nil

	case *ast.BooleanLiteral:
		if expr.Value {
			return l.builder.EmitConstant(1), nil
		}
		return l.builder.EmitConstant(0), nil

	case *ast.VariableRef:
		slot, ok := l.scope.Lookup(expr.Name)
		if !ok {
			return ir.NoValue, l.fail(ctx, expr.Pos(), ErrUnknownVariable, "%s", expr.Name)
		}
		return l.builder.EmitLoad(slot), nil

	case *ast.BinaryOp:
		lhs, err := l.expr(ctx, expr.Left)
		if err != nil {
			return ir.NoValue, err
		}
		rhs, err := l.expr(ctx, expr.Right)
		if err != nil {
			return ir.NoValue, err
		}
		op, ok := Operators[expr.Op]
		if !ok {
			return ir.NoValue, l.fail(ctx, expr.Pos(), ErrUnknownOperator, "%q", expr.Op)
		}
		return l.builder.EmitBinaryOp(op, lhs, rhs), nil

	case *ast.Call:
		return l.call(ctx, expr.Pos(), expr.Callee, expr.Args)

	}
	panic(fmt.Sprintf("unhandled expression: %T", expr))
}

func (l *Lowerer) call(ctx context.Context, pos scanner.Pos, callee string, args []ast.Expr) (ir.Value, error) {
	p, ok := l.lookupPrototype(callee)
	if !ok {
		return ir.NoValue, l.fail(ctx, pos, ErrUnknownFunction, "%s", callee)
	}
	if len(args) != p.numParams {
		return ir.NoValue, l.fail(ctx, pos, ErrArgumentCount,
			"%s takes %d, got %d", callee, p.numParams, len(args))
	}
	values := make([]ir.Value, 0, len(args))
	for _, arg := range args {
		v, err := l.expr(ctx, arg)
		if err != nil {
			return ir.NoValue, err
		}
		values = append(values, v)
	}
	return l.builder.EmitCall(p.id, values), nil
}
