package taipas

import (
	"io"
	"os"

	"github.com/reusee/dscope"
	"github.com/reusee/taipas/debugs"
	"github.com/reusee/taipas/diags"
	"github.com/reusee/taipas/logs"
	"github.com/reusee/taipas/pasconfigs"
	"github.com/reusee/taipas/taivm"
)

type Module struct {
	dscope.Module
	Configs pasconfigs.Module
	Logs    logs.Module
	Debugs  debugs.Module
}

// Output receives program output and dumps.
type Output io.Writer

func (Module) Output() Output {
	return os.Stdout
}

func (Module) Reporter(
	logger logs.Logger,
	color pasconfigs.Color,
) diags.Reporter {
	return diags.Fanout{
		diags.TerminalReporter{
			Out:   os.Stderr,
			Color: bool(color),
		},
		diags.LogReporter{
			Logger: logger,
			Quiet:  true,
		},
	}
}

func (Module) Options(
	maxSteps pasconfigs.MaxSteps,
	yieldInterval pasconfigs.YieldInterval,
	maxCallDepth pasconfigs.MaxCallDepth,
) taivm.Options {
	return taivm.Options{
		MaxSteps:     int(maxSteps),
		YieldEvery:   int(yieldInterval),
		MaxCallDepth: int(maxCallDepth),
	}
}
