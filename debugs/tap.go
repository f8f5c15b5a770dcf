package debugs

import (
	"context"
	"maps"
	"slices"

	"github.com/reusee/taipas/logs"
	"go.starlark.net/repl"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Tap starts an interactive starlark REPL over globals. It returns when
// the REPL input ends.
type Tap func(ctx context.Context, unit string, globals map[string]any)

func (Module) Tap(
	logger logs.Logger,
) Tap {
	return func(ctx context.Context, unit string, globals map[string]any) {
		logger.InfoContext(ctx, "tap",
			"unit", unit,
			"globals", slices.Sorted(maps.Keys(globals)),
		)
		defer logger.InfoContext(ctx, "tap end",
			"unit", unit,
		)

		env := make(starlark.StringDict, len(globals))
		for name, value := range globals {
			env[name] = toStarlarkValue(value)
		}

		thread := &starlark.Thread{
			Name: "tap: " + unit,
		}
		repl.REPLOptions(&syntax.FileOptions{
			Set:             true,
			While:           true,
			TopLevelControl: true,
		}, thread, env)
	}
}
