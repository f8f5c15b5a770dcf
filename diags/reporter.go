package diags

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/fatih/color"
	"github.com/reusee/taipas/logs"
	"github.com/reusee/taipas/scanner"
)

// Reporter receives one message per failed construct.
type Reporter interface {
	ReportError(ctx context.Context, pos scanner.Pos, msg string)
}

type ReporterFunc func(ctx context.Context, pos scanner.Pos, msg string)

var _ Reporter = ReporterFunc(nil)

func (f ReporterFunc) ReportError(ctx context.Context, pos scanner.Pos, msg string) {
	f(ctx, pos, msg)
}

type Diagnostic struct {
	Pos     scanner.Pos
	Message string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s", d.Pos, d.Message)
}

type Collector struct {
	mu          sync.Mutex
	diagnostics []Diagnostic
}

var _ Reporter = new(Collector)

func (c *Collector) ReportError(_ context.Context, pos scanner.Pos, msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.diagnostics = append(c.diagnostics, Diagnostic{
		Pos:     pos,
		Message: msg,
	})
}

func (c *Collector) Diagnostics() []Diagnostic {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Diagnostic(nil), c.diagnostics...)
}

func (c *Collector) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.diagnostics)
}

func (c *Collector) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.diagnostics = nil
}

type LogReporter struct {
	Logger logs.Logger
	// Quiet logs at debug level, for diagnostics already shown elsewhere.
	Quiet bool
}

var _ Reporter = LogReporter{}

func (l LogReporter) ReportError(ctx context.Context, pos scanner.Pos, msg string) {
	level := slog.LevelError
	if l.Quiet {
		level = slog.LevelDebug
	}
	l.Logger.Log(ctx, level, msg,
		"pos", pos.String(),
	)
}

// TerminalReporter prints "Error: line:col: msg" lines.
type TerminalReporter struct {
	Out   io.Writer
	Color bool
}

var _ Reporter = TerminalReporter{}

func (t TerminalReporter) ReportError(_ context.Context, pos scanner.Pos, msg string) {
	c := color.New(color.FgRed, color.Bold)
	if t.Color {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	c.Fprint(t.Out, "Error:")
	fmt.Fprintf(t.Out, " %s: %s\n", pos, msg)
}

type Fanout []Reporter

var _ Reporter = Fanout{}

func (f Fanout) ReportError(ctx context.Context, pos scanner.Pos, msg string) {
	for _, r := range f {
		if r == nil {
			continue
		}
		r.ReportError(ctx, pos, msg)
	}
}
