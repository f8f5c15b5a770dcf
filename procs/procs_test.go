package procs

import (
	"errors"
	"testing"
)

func TestProcs(t *testing.T) {
	var trace []string
	step := func(name string) Proc[*[]string] {
		return Func[*[]string](func(ctx *[]string) (Proc[*[]string], error) {
			*ctx = append(*ctx, name)
			return nil, nil
		})
	}

	n := 0
	var again Func[*[]string]
	again = func(ctx *[]string) (Proc[*[]string], error) {
		*ctx = append(*ctx, "again")
		n++
		if n < 3 {
			return again, nil
		}
		return nil, nil
	}

	err := Run(&trace, Procs[*[]string]{
		step("a"),
		again,
		step("b"),
	})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"a", "again", "again", "again", "b"}
	if len(trace) != len(want) {
		t.Fatalf("got %v", trace)
	}
	for i := range want {
		if trace[i] != want[i] {
			t.Fatalf("got %v", trace)
		}
	}
}

func TestProcsError(t *testing.T) {
	errFoo := errors.New("foo")
	ran := false
	err := Run(0, Procs[int]{
		Func[int](func(int) (Proc[int], error) {
			return nil, errFoo
		}),
		Func[int](func(int) (Proc[int], error) {
			ran = true
			return nil, nil
		}),
	})
	if !errors.Is(err, errFoo) {
		t.Fatalf("got %v", err)
	}
	if ran {
		t.Fatal("should stop at the first error")
	}
}

func TestRunNil(t *testing.T) {
	if err := Run[int](0, nil); err != nil {
		t.Fatal(err)
	}
	if err := Run(0, Procs[int]{}); err != nil {
		t.Fatal(err)
	}
}

func TestProcsNotModified(t *testing.T) {
	var trace []string
	done := Func[*[]string](func(ctx *[]string) (Proc[*[]string], error) {
		*ctx = append(*ctx, "done")
		return nil, nil
	})
	first := Func[*[]string](func(ctx *[]string) (Proc[*[]string], error) {
		*ctx = append(*ctx, "first")
		return done, nil
	})
	pipeline := Procs[*[]string]{first}
	for range 2 {
		if err := Run(&trace, pipeline); err != nil {
			t.Fatal(err)
		}
	}
	if len(trace) != 4 || trace[0] != "first" || trace[2] != "first" {
		t.Fatalf("got %v", trace)
	}
}
