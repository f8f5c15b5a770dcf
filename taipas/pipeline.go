package taipas

import (
	"fmt"

	"github.com/reusee/taipas/procs"
	"github.com/reusee/taipas/taivm"
)

// pipeline returns the steps of a unit: parse, lower, dump, execute, inspect.
func (d *Driver) pipeline() procs.Procs[*Unit] {
	return procs.Procs[*Unit]{
		procs.Func[*Unit](d.parse),
		procs.Func[*Unit](d.lower),
		procs.Func[*Unit](d.dump),
		procs.Func[*Unit](d.execute),
		procs.Func[*Unit](d.inspect),
	}
}

func (d *Driver) parse(u *Unit) (procs.Proc[*Unit], error) {
	switch u.Kind {

	case ProgramUnit:
		program, err := u.Parser.ParseProgram(u.Context)
		if err != nil {
			return nil, err
		}
		u.Program = program
		u.Name = program.Name

	case ProcedureUnit:
		fn, err := u.Parser.ParseProcedure(u.Context)
		if err != nil {
			return nil, err
		}
		u.Procedure = fn
		u.Name = fn.Proto.Name

	default:
		return nil, fmt.Errorf("unknown unit kind: %v", u.Kind)
	}
	return nil, nil
}

func (d *Driver) lower(u *Unit) (procs.Proc[*Unit], error) {
	var err error
	if u.Program != nil {
		u.Module, err = d.session.Program(u.Context, u.Program, u.Reporter)
	} else {
		u.Module, err = d.session.Define(u.Context, u.Procedure, u.Reporter)
	}
	if err != nil {
		return nil, err
	}
	d.logger.DebugContext(u.Context, "lowered",
		"unit", u.Name,
		"functions", len(u.Module.Functions),
	)
	return nil, nil
}

func (d *Driver) execute(u *Unit) (procs.Proc[*Unit], error) {
	if u.Kind != ProgramUnit {
		return nil, nil
	}

	program, err := taivm.Compile(u.Module, taivm.DefaultNatives(d.output))
	if err != nil {
		return nil, err
	}
	vm := taivm.NewVM(program)
	vm.Options = d.options
	u.VM = vm

	for _, err := range vm.Run {
		if err != nil {
			return nil, fmt.Errorf("run %s: %w", u.Name, err)
		}
		// interrupted
		if err := u.Context.Err(); err != nil {
			return nil, err
		}
	}

	d.logger.DebugContext(u.Context, "executed",
		"unit", u.Name,
		"steps", vm.Steps(),
		"result", vm.Result,
	)
	return nil, nil
}
