package debugs

import (
	"testing"

	"github.com/reusee/dscope"
	"github.com/reusee/taipas/logs"
	"go.starlark.net/starlark"
)

func TestEval(t *testing.T) {
	dscope.New(
		new(logs.Module),
		new(Module),
	).Call(func(
		eval Eval,
	) {
		value, err := eval(t.Context(), "x * 2 + y", Int64s(map[string]int64{
			"x": 14,
			"y": 1,
		}))
		if err != nil {
			t.Fatal(err)
		}
		if eq, _ := starlark.Equal(value, starlark.MakeInt(29)); !eq {
			t.Fatalf("got %v", value)
		}

		_, err = eval(t.Context(), "z", nil)
		if err == nil {
			t.Fatal("should error")
		}
	})
}
