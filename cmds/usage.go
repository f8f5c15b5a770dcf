package cmds

import (
	"io"
	"os"
	"slices"
	"strings"

	"github.com/olekukonko/tablewriter"
)

func (e *Executor) PrintUsage() {
	e.FprintUsage(os.Stdout)
}

func (e *Executor) FprintUsage(w io.Writer) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"command", "aliases", "description"})
	table.SetBorder(false)
	table.SetAutoWrapText(false)
	appendUsage(table, "", e.commands)
	table.Render()
}

func appendUsage(table *tablewriter.Table, prefix string, commands map[string]*Command) {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	slices.Sort(names)

	seen := make(map[*Command]bool)
	for _, name := range names {
		command := commands[name]
		if command == nil || seen[command] {
			continue
		}
		if slices.Contains(command.Aliases, name) {
			// listed under its primary name
			continue
		}
		seen[command] = true
		usage := prefix + name
		if params := command.Params(); params != "" {
			usage += " " + params
		}
		table.Append([]string{
			usage,
			strings.Join(command.Aliases, " "),
			command.Description,
		})
		if len(command.Subs) > 0 {
			appendUsage(table, prefix+name+" ", command.Subs)
		}
	}
}
