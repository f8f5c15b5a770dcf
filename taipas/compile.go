package taipas

import (
	"context"
	"io"
	"maps"
	"slices"

	"github.com/reusee/taipas/diags"
	"github.com/reusee/taipas/ir"
	"github.com/reusee/taipas/lower"
	"github.com/reusee/taipas/parser"
	"github.com/reusee/taipas/taivm"
)

// Builtins maps runtime procedures to their parameter counts.
var Builtins = map[string]int{
	"writeln": 1,
}

func newModuleBuilder(name string) *ir.ModuleBuilder {
	b := ir.NewModuleBuilder(name)
	for _, builtin := range slices.Sorted(maps.Keys(Builtins)) {
		b.DeclareBuiltin(builtin, Builtins[builtin])
	}
	return b
}

// Compile parses a single program from r and lowers it into a module.
func Compile(ctx context.Context, name string, r io.Reader, reporter diags.Reporter) (*ir.Module, error) {
	program, err := parser.ParseProgram(ctx, r, reporter)
	if err != nil {
		return nil, err
	}
	if name == "" {
		name = program.Name
	}
	b := newModuleBuilder(name)
	if _, err := lower.New(b, reporter).Program(ctx, program); err != nil {
		return nil, err
	}
	return b.Module(), nil
}

// NewVM compiles a single program from r into a VM ready to run.
// writeln prints to out.
func NewVM(ctx context.Context, name string, r io.Reader, reporter diags.Reporter, out io.Writer, options taivm.Options) (*taivm.VM, error) {
	m, err := Compile(ctx, name, r, reporter)
	if err != nil {
		return nil, err
	}
	program, err := taivm.Compile(m, taivm.DefaultNatives(out))
	if err != nil {
		return nil, err
	}
	vm := taivm.NewVM(program)
	vm.Options = options
	return vm, nil
}
