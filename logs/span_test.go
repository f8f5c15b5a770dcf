package logs

import (
	"context"
	"errors"
	"testing"
)

func TestWrapSpan(t *testing.T) {
	errBad := errors.New("bad")

	if err := WrapSpan(context.Background(), errBad); err != errBad {
		t.Fatalf("got %v", err)
	}
	if err := WrapSpan(context.Background(), nil); err != nil {
		t.Fatalf("got %v", err)
	}

	ctx := context.WithValue(context.Background(), SpanKey, Span("abc"))
	err := WrapSpan(ctx, errBad)
	if !errors.Is(err, errBad) {
		t.Fatalf("got %v", err)
	}
	if err.Error() != "bad (span abc)" {
		t.Fatalf("got %q", err.Error())
	}

	// wrapped once per span
	if again := WrapSpan(ctx, err); again != err {
		t.Fatalf("got %v", again)
	}
}
