package taipas

import (
	"context"
	"errors"
	"io"

	"github.com/reusee/taipas/debugs"
	"github.com/reusee/taipas/diags"
	"github.com/reusee/taipas/logs"
	"github.com/reusee/taipas/parser"
	"github.com/reusee/taipas/pasconfigs"
	"github.com/reusee/taipas/procs"
	"github.com/reusee/taipas/scanner"
	"github.com/reusee/taipas/taivm"
)

// Driver reads top-level constructs from a stream and runs each through
// the unit pipeline. A Driver is not safe for concurrent use.
type Driver struct {
	logger   logs.Logger
	newSpan  logs.NewSpan
	reporter diags.Reporter
	dumps    pasconfigs.Dumps
	options  taivm.Options
	inspects Inspect
	eval     debugs.Eval
	tap      debugs.Tap
	output   io.Writer

	session   *Session
	collector *diags.Collector
}

type NewDriver func(output io.Writer) *Driver

func (Module) NewDriver(
	logger logs.Logger,
	newSpan logs.NewSpan,
	reporter diags.Reporter,
	dumps pasconfigs.Dumps,
	options taivm.Options,
	inspects Inspect,
	eval debugs.Eval,
	tap debugs.Tap,
) NewDriver {
	return func(output io.Writer) *Driver {
		return &Driver{
			logger:    logger,
			newSpan:   newSpan,
			reporter:  reporter,
			dumps:     dumps,
			options:   options,
			inspects:  inspects,
			eval:      eval,
			tap:       tap,
			output:    output,
			session:   NewSession(),
			collector: new(diags.Collector),
		}
	}
}

func (d *Driver) Session() *Session {
	return d.session
}

type Result struct {
	Units  int
	Failed int
	Errors []error
}

func (r Result) Err() error {
	return errors.Join(r.Errors...)
}

// Run returns when r is exhausted or ctx is done. Failed units are
// counted in Result; the returned error is for reading and cancellation.
func (d *Driver) Run(ctx context.Context, r io.Reader) (result Result, err error) {
	reporter := diags.Fanout{d.reporter, d.collector}
	p := parser.New(scanner.New(r), reporter)

	for {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		tok := p.Token()
		var kind UnitKind
		switch {

		case tok.Kind == scanner.EOF:
			return result, p.Err()

		case tok.Kind == scanner.Period, tok.Is(';'):
			p.Next()
			continue

		case tok.Kind == scanner.Program:
			kind = ProgramUnit

		case tok.Kind == scanner.Procedure:
			kind = ProcedureUnit

		default:
			msg := "expected 'program' or 'procedure', got " + tok.String()
			reporter.ReportError(ctx, tok.Pos, msg)
			result.Units++
			result.Failed++
			result.Errors = append(result.Errors, &parser.SyntaxError{
				Pos: tok.Pos,
				Msg: msg,
			})
			d.resync(p)
			continue
		}

		result.Units++
		if err := d.unit(ctx, kind, p, reporter); err != nil {
			result.Failed++
			result.Errors = append(result.Errors, err)
			if errors.Is(err, parser.ErrSyntax) {
				// a unit that parsed leaves the parser at the next construct
				d.resync(p)
			}
		}
	}
}

func (d *Driver) unit(ctx context.Context, kind UnitKind, p *parser.Parser, reporter diags.Reporter) error {
	ctx, _ = d.newSpan(ctx, "", "kind", kind)
	d.collector.Reset()

	u := &Unit{
		Context:  ctx,
		Kind:     kind,
		Pos:      p.Token().Pos,
		Reporter: reporter,
		Parser:   p,
	}
	err := procs.Run(u, d.pipeline())
	if err == nil {
		d.logger.InfoContext(ctx, "unit done",
			"kind", kind,
			"unit", u.Name,
		)
		return nil
	}

	if d.collector.Len() == 0 {
		// not reported by the parser or the lowering pass
		reporter.ReportError(ctx, u.Pos, err.Error())
	}
	d.logger.DebugContext(ctx, "unit failed",
		"kind", kind,
		"unit", u.Name,
		"error", err,
	)
	return logs.WrapSpan(ctx, err)
}

// resync skips the current token, then everything up to the next
// construct start.
func (d *Driver) resync(p *parser.Parser) {
	tok := p.Next()
	for tok.Kind != scanner.EOF &&
		tok.Kind != scanner.Program &&
		tok.Kind != scanner.Procedure {
		tok = p.Next()
	}
}
