package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/chzyer/readline"
	"github.com/reusee/dscope"
	"github.com/reusee/taipas/cmds"
	"github.com/reusee/taipas/modes"
	"github.com/reusee/taipas/pasconfigs"
	"github.com/reusee/taipas/taipas"
)

func main() {
	// warnings only unless a level is given
	if err := cmds.Execute(append([]string{"-log-warn"}, os.Args[1:]...)); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	var result taipas.Result
	var err error
	dscope.New(
		new(taipas.Module),
		modes.ForProduction(),
	).Call(func(
		runFiles taipas.RunFiles,
		newDriver taipas.NewDriver,
		output taipas.Output,
		prompt pasconfigs.Prompt,
	) {
		switch {
		case len(files) > 0:
			result, err = runFiles(ctx, files)
		case readline.IsTerminal(int(os.Stdin.Fd())):
			result, err = runREPL(ctx, newDriver(output), string(prompt))
		default:
			result, err = newDriver(output).Run(ctx, os.Stdin)
		}
	})

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if result.Failed > 0 {
		os.Exit(1)
	}
}
