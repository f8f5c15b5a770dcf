package configs

import (
	"errors"
	"os"
	"slices"
	"testing"
)

var testSchema = `
prompt?:    string
max_steps?: int
dumps?:     [...string]
`

func TestLoaderDecode(t *testing.T) {
	loader := NewLoader([]string{"test.cue"}, testSchema)

	var prompt string
	if err := loader.Decode("prompt", &prompt); err != nil {
		t.Fatal(err)
	}
	if prompt != "first> " {
		t.Fatalf("got %q", prompt)
	}

	var dumps []string
	if err := loader.Decode("dumps", &dumps); err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(dumps, []string{"ast", "ir"}) {
		t.Fatalf("got %v", dumps)
	}

	err := loader.Decode("not", &dumps)
	if !errors.Is(err, ErrValueNotFound) {
		t.Fatalf("got %v", err)
	}
}

func TestLoaderPrecedence(t *testing.T) {
	loader := NewLoader([]string{
		"test2.cue",
		"test.cue",
	}, testSchema)

	var prompts []string
	for value, err := range loader.Values("prompt") {
		if err != nil {
			t.Fatal(err)
		}
		var s string
		if err := value.Decode(&s); err != nil {
			t.Fatal(err)
		}
		prompts = append(prompts, s)
	}
	if !slices.Equal(prompts, []string{"second> ", "first> "}) {
		t.Fatalf("got %v", prompts)
	}

	// only set in the later file
	steps, ok := First[int](loader, "max_steps")
	if !ok || steps != 100 {
		t.Fatalf("got %v %v", steps, ok)
	}

	if !slices.Equal(loader.Paths(), []string{"test2.cue", "test.cue"}) {
		t.Fatalf("got %v", loader.Paths())
	}
}

func TestUnknownField(t *testing.T) {
	loader := NewLoader([]string{
		"bad.cue",
	}, testSchema)
	var prompt string
	err := loader.Decode("prompt", &prompt)
	if err == nil || errors.Is(err, ErrValueNotFound) {
		t.Fatalf("got %v", err)
	}
}

func TestMissingFile(t *testing.T) {
	loader := NewLoader([]string{"missing.cue"}, testSchema)
	var prompt string
	if err := loader.Decode("prompt", &prompt); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("got %v", err)
	}
}
