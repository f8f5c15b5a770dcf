package taipas

import (
	"fmt"

	"github.com/reusee/taipas/cmds"
	"github.com/reusee/taipas/debugs"
	"github.com/reusee/taipas/procs"
)

// Inspect selects what is done with the globals of each executed program.
type Inspect struct {
	// starlark expressions evaluated over the globals
	Exprs []string
	// start a starlark REPL over the globals
	Tap bool
}

var (
	evalFlag = cmds.Collect[string]("-eval")
	tapFlag  = cmds.Switch("-tap")
)

func (Module) Inspect() Inspect {
	return Inspect{
		Exprs: *evalFlag,
		Tap:   *tapFlag,
	}
}

func (d *Driver) inspect(u *Unit) (procs.Proc[*Unit], error) {
	if u.VM == nil || len(d.inspects.Exprs) == 0 && !d.inspects.Tap {
		return nil, nil
	}
	globals := debugs.Int64s(u.Globals())

	for _, expr := range d.inspects.Exprs {
		value, err := d.eval(u.Context, expr, globals)
		if err != nil {
			return nil, fmt.Errorf("eval %q: %w", expr, err)
		}
		if _, err := fmt.Fprintf(d.output, "%s = %s\n", expr, value); err != nil {
			return nil, err
		}
	}

	if d.inspects.Tap {
		if _, ok := globals["writeln"]; !ok {
			globals["writeln"] = func(v int64) {
				fmt.Fprintln(d.output, v)
			}
		}
		d.tap(u.Context, u.Name, globals)
	}

	return nil, nil
}
