package configs

import "testing"

type testPrompt string

var _ Configurable = testPrompt("")

func (testPrompt) ConfigKey() string {
	return "prompt"
}

type testMissing int

func (testMissing) ConfigKey() string {
	return "missing"
}

func TestLookup(t *testing.T) {
	loader := NewLoader([]string{"test2.cue", "test.cue"}, testSchema+"\nmissing?: int\n")

	prompt, ok := Lookup[testPrompt](loader)
	if !ok || prompt != "second> " {
		t.Fatalf("got %q %v", prompt, ok)
	}

	n, ok := Lookup[testMissing](loader)
	if ok || n != 0 {
		t.Fatalf("got %v %v", n, ok)
	}
}
