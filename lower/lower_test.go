package lower

import (
	"errors"
	"strings"
	"testing"

	"github.com/reusee/taipas/ast"
	"github.com/reusee/taipas/diags"
	"github.com/reusee/taipas/ir"
	"github.com/reusee/taipas/parser"
	"github.com/reusee/taipas/scanner"
)

type recordingBuilder struct {
	*ir.ModuleBuilder
	calls int
}

func (r *recordingBuilder) EmitCall(fn ir.FuncID, args []ir.Value) ir.Value {
	r.calls++
	return r.ModuleBuilder.EmitCall(fn, args)
}

func newLowerer() (*Lowerer, *recordingBuilder, *diags.Collector) {
	builder := &recordingBuilder{
		ModuleBuilder: ir.NewModuleBuilder("test"),
	}
	builder.DeclareBuiltin("writeln", 1)
	collector := new(diags.Collector)
	return New(builder, collector), builder, collector
}

func lowerProgram(t *testing.T, src string) (*ir.Module, *recordingBuilder, *diags.Collector, error) {
	t.Helper()
	program, err := parser.ParseProgram(t.Context(), strings.NewReader(src), nil)
	if err != nil {
		t.Fatal(err)
	}
	l, builder, collector := newLowerer()
	_, err = l.Program(t.Context(), program)
	return builder.Module(), builder, collector, err
}

func parseProcedure(t *testing.T, src string) *ast.Function {
	t.Helper()
	p := parser.New(scanner.New(strings.NewReader(src)), nil)
	fn, err := p.ParseProcedure(t.Context())
	if err != nil {
		t.Fatal(err)
	}
	return fn
}

func TestLowerProgram(t *testing.T) {
	m, _, collector, err := lowerProgram(t, `program P; var x: integer; begin x := 2 + 3 * 4 end.`)
	if err != nil {
		t.Fatal(err)
	}
	if collector.Len() != 0 {
		t.Fatalf("got %v", collector.Diagnostics())
	}
	if err := m.Verify(); err != nil {
		t.Fatal(err)
	}
	if m.Entry == ir.NoFunc || m.Functions[m.Entry].Name != EntryName {
		t.Fatalf("got %v", m.Entry)
	}
	if len(m.Globals) != 1 || m.Globals[0] != "x" {
		t.Fatalf("got %v", m.Globals)
	}
}

func TestArgumentCountEmitsNoCall(t *testing.T) {
	_, builder, collector, err := lowerProgram(t, `
	program P;
	procedure f(a: integer); begin f := a end;
	begin
		f(1, 2)
	end.
	`)
	if !errors.Is(err, ErrArgumentCount) {
		t.Fatalf("got %v", err)
	}
	if builder.calls != 0 {
		t.Fatalf("got %v calls", builder.calls)
	}
	diagnostics := collector.Diagnostics()
	if len(diagnostics) != 1 {
		t.Fatalf("got %v", diagnostics)
	}
	if !strings.Contains(diagnostics[0].Message, "incorrect number of arguments") {
		t.Fatalf("got %v", diagnostics[0])
	}
	if diagnostics[0].Pos.Line != 5 {
		t.Fatalf("got %v", diagnostics[0].Pos)
	}
}

func TestUnknownVariableHaltsOnlyThatFunction(t *testing.T) {
	m, _, collector, err := lowerProgram(t, `
	program P;
	procedure bad(); begin x := 1 end;
	procedure good(); begin good := 2 end;
	var y: integer;
	begin
		y := good()
	end.
	`)
	if !errors.Is(err, ErrUnknownVariable) {
		t.Fatalf("got %v", err)
	}
	var lowerErr *Error
	if !errors.As(err, &lowerErr) || lowerErr.Detail != "x" {
		t.Fatalf("got %v", err)
	}
	if collector.Len() != 1 {
		t.Fatalf("got %v", collector.Diagnostics())
	}
	if msg := collector.Diagnostics()[0].Message; msg != "unknown variable: x" {
		t.Fatalf("got %q", msg)
	}
	if id, _ := m.Lookup("bad"); id != ir.NoFunc {
		t.Fatal("bad should be discarded")
	}
	if id, _ := m.Lookup("good"); id == ir.NoFunc {
		t.Fatal("good should be lowered")
	}
	if m.Entry == ir.NoFunc {
		t.Fatal("entry should be lowered")
	}
	if err := m.Verify(); err != nil {
		t.Fatal(err)
	}
}

func TestForShadowRestore(t *testing.T) {
	l, _, collector := newLowerer()

	_, err := l.Function(t.Context(), parseProcedure(t, `
	procedure f();
	var i: integer;
	begin
		for i := 1 to 3 do begin i := i end
	end`))
	if err != nil {
		t.Fatal(err)
	}
	// slot 0 holds the result, slot 1 the declared i, slot 2 the loop counter
	slot, ok := l.scope.Lookup("i")
	if !ok || slot != (ir.Slot{Index: 1}) {
		t.Fatalf("got %v %v", slot, ok)
	}
	if l.scope.Depth() != 0 {
		t.Fatalf("got %v", l.scope.Depth())
	}

	_, err = l.Function(t.Context(), parseProcedure(t, `
	procedure g();
	begin
		for j := 1 to 3 do begin g := g + j end
	end`))
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := l.scope.Lookup("j"); ok {
		t.Fatal("loop variable leaked")
	}

	// the loop variable is out of scope after the loop
	_, err = l.Function(t.Context(), parseProcedure(t, `
	procedure h();
	begin
		for k := 1 to 3 do begin end;
		h := k
	end`))
	if !errors.Is(err, ErrUnknownVariable) {
		t.Fatalf("got %v", err)
	}
	if l.scope.Depth() != 0 {
		t.Fatal()
	}

	// a failure inside the body still pops the shadow frame
	_, err = l.Function(t.Context(), parseProcedure(t, `
	procedure e();
	begin
		for k := 1 to 3 do begin e := nope end
	end`))
	if !errors.Is(err, ErrUnknownVariable) {
		t.Fatalf("got %v", err)
	}
	if l.scope.Depth() != 0 {
		t.Fatal()
	}
	if collector.Len() != 2 {
		t.Fatalf("got %v", collector.Diagnostics())
	}
}

func predecessors(fn *ir.Function, target ir.BlockID) int {
	n := 0
	for _, block := range fn.Blocks {
		for _, instr := range block.Instrs {
			for _, t := range instr.Targets {
				if t == target {
					n++
				}
			}
		}
	}
	return n
}

func TestIfSingleMergeBlock(t *testing.T) {
	l, builder, _ := newLowerer()
	_, err := l.Function(t.Context(), parseProcedure(t, `
	procedure f(a: integer);
	begin
		if a < 1 then f := 1;
		if a < 2 then f := 2 else f := 3;
		if a then if a then f := 4 else f := 5
	end`))
	if err != nil {
		t.Fatal(err)
	}
	m := builder.Module()
	_, fn := m.Lookup("f")
	merges := 0
	for i, block := range fn.Blocks {
		if block.Name != "ifcont" {
			continue
		}
		merges++
		if n := predecessors(fn, ir.BlockID(i)); n != 2 {
			t.Fatalf("merge block %d has %d predecessors", i, n)
		}
	}
	if merges != 4 {
		t.Fatalf("got %v", merges)
	}
	for _, name := range []string{"then", "else"} {
		n := 0
		for _, block := range fn.Blocks {
			if block.Name == name {
				n++
			}
		}
		if n != 4 {
			t.Fatalf("got %v %s blocks", n, name)
		}
	}
}

func TestRedefinition(t *testing.T) {
	l, _, collector := newLowerer()
	if _, err := l.Function(t.Context(), parseProcedure(t, `procedure f(); begin end`)); err != nil {
		t.Fatal(err)
	}
	_, err := l.Function(t.Context(), parseProcedure(t, `procedure f(a: integer); begin end`))
	if !errors.Is(err, ErrRedefinition) {
		t.Fatalf("got %v", err)
	}
	_, err = l.Function(t.Context(), parseProcedure(t, `procedure writeln(a: integer); begin end`))
	if !errors.Is(err, ErrRedefinition) {
		t.Fatalf("got %v", err)
	}
	if collector.Len() != 2 {
		t.Fatal()
	}
}

func TestDefineDeclaredFunction(t *testing.T) {
	l, builder, collector := newLowerer()
	declared := builder.DeclareFunction("g", 0)
	id, err := l.Function(t.Context(), parseProcedure(t, `procedure g(); begin g := 1 end`))
	if err != nil {
		t.Fatal(err)
	}
	if collector.Len() != 0 {
		t.Fatal()
	}
	if id == declared || !builder.IsDefined(id) {
		t.Fatalf("got %v", id)
	}
}

func TestFailedFunctionIsForgotten(t *testing.T) {
	l, builder, _ := newLowerer()
	_, err := l.Function(t.Context(), parseProcedure(t, `procedure f(); begin f := x end`))
	if !errors.Is(err, ErrUnknownVariable) {
		t.Fatalf("got %v", err)
	}
	if _, _, ok := builder.LookupFunction("f"); ok {
		t.Fatal()
	}
	if _, err := l.Function(t.Context(), parseProcedure(t, `procedure f(); begin f := 1 end`)); err != nil {
		t.Fatal(err)
	}
}

func TestDuplicateVariable(t *testing.T) {
	_, _, _, err := lowerProgram(t, `program P; var x, x: integer; begin end.`)
	if !errors.Is(err, ErrDuplicateVariable) {
		t.Fatalf("got %v", err)
	}

	l, _, _ := newLowerer()
	_, err = l.Function(t.Context(), parseProcedure(t, `procedure f(a: integer; a: boolean); begin end`))
	if !errors.Is(err, ErrDuplicateVariable) {
		t.Fatalf("got %v", err)
	}
	_, err = l.Function(t.Context(), parseProcedure(t, `procedure g(g: integer); begin end`))
	if !errors.Is(err, ErrDuplicateVariable) {
		t.Fatalf("got %v", err)
	}
}

func TestUnknownFunction(t *testing.T) {
	_, builder, collector, err := lowerProgram(t, `program P; begin nope(1) end.`)
	if !errors.Is(err, ErrUnknownFunction) {
		t.Fatalf("got %v", err)
	}
	if builder.calls != 0 {
		t.Fatal()
	}
	if msg := collector.Diagnostics()[0].Message; msg != "unknown function: nope" {
		t.Fatalf("got %q", msg)
	}
}

func TestUnknownOperator(t *testing.T) {
	l, _, _ := newLowerer()
	_, err := l.Function(t.Context(), &ast.Function{
		Proto: &ast.Prototype{Name: "f"},
		Body: &ast.Block{
			Body: &ast.CompoundStatement{
				Statements: []ast.Stmt{
					&ast.Assignment{
						Name: "f",
						Value: &ast.BinaryOp{
							Op:    '%',
							Left:  &ast.IntegerLiteral{Value: 1},
							Right: &ast.IntegerLiteral{Value: 2},
						},
					},
				},
			},
		},
	})
	if !errors.Is(err, ErrUnknownOperator) {
		t.Fatalf("got %v", err)
	}
}

func TestNumericLiterals(t *testing.T) {
	m, _, _, err := lowerProgram(t, `program P; var x: integer; begin x := 3.7 end.`)
	if err != nil {
		t.Fatal(err)
	}
	found := false
	for _, block := range m.Functions[m.Entry].Blocks {
		for _, instr := range block.Instrs {
			if instr.Op == ir.OpConst && instr.Const == 3 {
				found = true
			}
		}
	}
	if !found {
		t.Fatalf("truncated constant not found in\n%s", m)
	}

	_, _, _, err = lowerProgram(t, `program P; var x: integer; begin x := 99999999999999999999 end.`)
	if !errors.Is(err, ErrNumericLiteral) {
		t.Fatalf("got %v", err)
	}
}
