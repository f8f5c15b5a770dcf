package diags

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/reusee/dscope"
	"github.com/reusee/taipas/logs"
	"github.com/reusee/taipas/scanner"
)

func TestCollector(t *testing.T) {
	c := new(Collector)
	c.ReportError(t.Context(), scanner.Pos{Line: 1, Col: 2}, "foo")
	c.ReportError(t.Context(), scanner.Pos{Line: 3, Col: 4}, "bar")
	if c.Len() != 2 {
		t.Fatalf("got %v", c.Len())
	}
	if s := c.Diagnostics()[1].String(); s != "3:4: bar" {
		t.Fatalf("got %q", s)
	}
	c.Reset()
	if c.Len() != 0 {
		t.Fatal()
	}
}

func TestTerminalReporter(t *testing.T) {
	buf := new(bytes.Buffer)
	r := TerminalReporter{Out: buf}
	r.ReportError(t.Context(), scanner.Pos{Line: 2, Col: 7}, "unknown variable")
	if s := buf.String(); s != "Error: 2:7: unknown variable\n" {
		t.Fatalf("got %q", s)
	}

	buf.Reset()
	r.Color = true
	r.ReportError(t.Context(), scanner.Pos{Line: 2, Col: 7}, "unknown variable")
	if s := buf.String(); !strings.Contains(s, "\x1b[") || !strings.HasSuffix(s, " 2:7: unknown variable\n") {
		t.Fatalf("got %q", s)
	}
}

func TestLogReporter(t *testing.T) {
	buf := new(bytes.Buffer)
	dscope.New(new(logs.Module)).Fork(
		func() logs.Writer {
			return buf
		},
	).Call(func(
		logger logs.Logger,
	) {
		LogReporter{Logger: logger}.ReportError(context.Background(), scanner.Pos{Line: 1, Col: 1}, "bad")
	})
	if s := buf.String(); !strings.Contains(s, "msg=bad") || !strings.Contains(s, "pos=1:1") {
		t.Fatalf("got %q", s)
	}
}

func TestFanout(t *testing.T) {
	a := new(Collector)
	b := new(Collector)
	var n int
	f := Fanout{a, nil, b, ReporterFunc(func(context.Context, scanner.Pos, string) {
		n++
	})}
	f.ReportError(t.Context(), scanner.Pos{}, "x")
	if a.Len() != 1 || b.Len() != 1 || n != 1 {
		t.Fatal()
	}
}

func TestQuietLogReporter(t *testing.T) {
	buf := new(bytes.Buffer)
	dscope.New(new(logs.Module)).Fork(
		func() logs.Writer {
			return buf
		},
	).Call(func(
		logger logs.Logger,
	) {
		LogReporter{Logger: logger, Quiet: true}.ReportError(context.Background(), scanner.Pos{Line: 2, Col: 3}, "bad")
	})
	if strings.Contains(buf.String(), "msg=bad") {
		t.Fatalf("got %q", buf.String())
	}
}
