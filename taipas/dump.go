package taipas

import (
	"fmt"
	"io"
	"strconv"

	"github.com/kr/pretty"
	"github.com/olekukonko/tablewriter"
	"github.com/reusee/taipas/ast"
	"github.com/reusee/taipas/ir"
	"github.com/reusee/taipas/procs"
)

func (d *Driver) dump(u *Unit) (procs.Proc[*Unit], error) {
	w := d.output
	if d.dumps.AST {
		if _, err := pretty.Fprintf(w, "%# v\n", u.Node()); err != nil {
			return nil, err
		}
	}
	if d.dumps.Source {
		if _, err := io.WriteString(w, ast.Format(u.Node())); err != nil {
			return nil, err
		}
	}
	if d.dumps.IR {
		if err := ir.Fprint(w, u.Module); err != nil {
			return nil, err
		}
	}
	if d.dumps.Stats {
		FprintStats(w, u.Module)
	}
	return nil, nil
}

// FprintStats writes a table of functions with their block and
// instruction counts.
func FprintStats(w io.Writer, m *ir.Module) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"function", "params", "blocks", "instructions"})
	table.SetBorder(false)
	table.SetAutoWrapText(false)

	var blocks, instrs int
	for id, fn := range m.Functions {
		if fn.Builtin {
			continue
		}
		name := fn.Name
		if ir.FuncID(id) == m.Entry {
			name += " (entry)"
		}
		table.Append([]string{
			name,
			strconv.Itoa(fn.NumParams),
			strconv.Itoa(len(fn.Blocks)),
			strconv.Itoa(fn.NumInstrs()),
		})
		blocks += len(fn.Blocks)
		instrs += fn.NumInstrs()
	}
	table.SetFooter([]string{
		fmt.Sprintf("module %s", m.Name),
		"",
		strconv.Itoa(blocks),
		strconv.Itoa(instrs),
	})
	table.Render()
}
