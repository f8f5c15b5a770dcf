package debugs

import (
	"context"

	"github.com/reusee/taipas/logs"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Eval evaluates a starlark expression with globals bound as variables.
type Eval func(ctx context.Context, expr string, globals map[string]any) (starlark.Value, error)

func (Module) Eval(
	logger logs.Logger,
) Eval {
	return func(ctx context.Context, expr string, globals map[string]any) (starlark.Value, error) {
		env := make(starlark.StringDict, len(globals))
		for name, value := range globals {
			env[name] = toStarlarkValue(value)
		}
		thread := &starlark.Thread{
			Name: "eval",
		}
		value, err := starlark.EvalOptions(&syntax.FileOptions{}, thread, "<eval>", expr, env)
		if err != nil {
			logger.DebugContext(ctx, "eval failed",
				"expr", expr,
				"error", err,
			)
			return nil, err
		}
		return value, nil
	}
}

// Int64s widens a map of int64 values for Eval and Tap.
func Int64s(m map[string]int64) map[string]any {
	ret := make(map[string]any, len(m))
	for k, v := range m {
		ret[k] = v
	}
	return ret
}
