package pasconfigs

import (
	"testing"

	"github.com/reusee/dscope"
	"github.com/reusee/taipas/configs"
	"github.com/reusee/taipas/logs"
	"github.com/reusee/taipas/modes"
)

func TestDefaults(t *testing.T) {
	dscope.New(
		modes.ForTest(t),
		new(logs.Module),
		new(Module),
	).Call(func(
		dumps Dumps,
		maxSteps MaxSteps,
		yieldInterval YieldInterval,
		prompt Prompt,
		parallel Parallel,
	) {
		if dumps != (Dumps{}) {
			t.Fatalf("got %+v", dumps)
		}
		if maxSteps != 0 {
			t.Fatalf("got %v", maxSteps)
		}
		if yieldInterval != DefaultYieldInterval {
			t.Fatalf("got %v", yieldInterval)
		}
		if prompt != DefaultPrompt {
			t.Fatalf("got %q", prompt)
		}
		if parallel != DefaultParallel {
			t.Fatalf("got %v", parallel)
		}
	})
}

func TestConfigFile(t *testing.T) {
	dscope.New(
		modes.ForTest(t),
		new(logs.Module),
		new(Module),
	).Fork(
		func() configs.Loader {
			return configs.NewLoader([]string{"testdata/taipas.cue"}, schema)
		},
	).Call(func(
		dumps Dumps,
		maxSteps MaxSteps,
		prompt Prompt,
		color Color,
		parallel Parallel,
	) {
		if !dumps.IR || dumps.AST {
			t.Fatalf("got %+v", dumps)
		}
		if maxSteps != 1000 {
			t.Fatalf("got %v", maxSteps)
		}
		if prompt != "pas> " {
			t.Fatalf("got %q", prompt)
		}
		if color {
			t.Fatal()
		}
		if parallel != 2 {
			t.Fatalf("got %v", parallel)
		}
	})
}

func TestSchemaRejectsUnknownKeys(t *testing.T) {
	loader := configs.NewLoader([]string{"testdata/bad.cue"}, schema)
	var v int
	if err := loader.Decode("max_steps", &v); err == nil {
		t.Fatal("should error")
	}
}
