package cmds

import (
	"bytes"
	"strings"
	"testing"
)

func TestUsage(t *testing.T) {
	e := NewExecutor()
	DefineVar[int](e, "-max-steps")
	e.Define("dump", Sub(map[string]*Command{
		"ir": Func(func() {}).Desc("IR listing"),
		"table": Sub(map[string]*Command{
			"stats": Func(func(width *int) {}).Desc("function table"),
		}).Desc("tables"),
	}).Desc("dump forms"))

	buf := new(bytes.Buffer)
	e.FprintUsage(buf)
	out := buf.String()
	for _, want := range []string{
		"-max-steps <int>",
		"!-max-steps",
		"dump forms", "IR listing", "tables", "function table",
		"dump table stats [int]",
		"print this usage",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in %s", want, out)
		}
	}
	if strings.Count(out, "print this usage") != 1 {
		t.Fatalf("got %s", out)
	}
}
