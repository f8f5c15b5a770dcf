package logs

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/reusee/dscope"
)

func TestLoggerSpan(t *testing.T) {
	buf := new(bytes.Buffer)
	dscope.New(new(Module)).Fork(
		func() Writer {
			return buf
		},
	).Call(func(
		logger Logger,
	) {
		ctx := context.WithValue(context.Background(), SpanKey, Span("abc"))
		logger.With("unit", "P").InfoContext(ctx, "unit done")
		logger.InfoContext(context.Background(), "no span")
	})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %q", buf.String())
	}
	if !strings.Contains(lines[0], "unit=P") || !strings.Contains(lines[0], "span=abc") {
		t.Fatalf("got %v", lines[0])
	}
	if strings.Contains(lines[1], "span=") {
		t.Fatalf("got %v", lines[1])
	}
}

func TestToJournalKey(t *testing.T) {
	for key, want := range map[string]string{
		"span":      "SPAN",
		"unit.name": "UNIT_NAME",
		"max-steps": "MAX_STEPS",
		"x1":        "X1",
	} {
		if got := toJournalKey(key); got != want {
			t.Fatalf("%s: got %s", key, got)
		}
	}
}
