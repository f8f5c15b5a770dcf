package logs

import (
	"context"
	"errors"
)

// Span identifies one unit of work in logs. It is carried by contexts.
type Span string

type spanKey struct{}

var SpanKey spanKey

func SpanFrom(ctx context.Context) (Span, bool) {
	span, ok := ctx.Value(SpanKey).(Span)
	return span, ok && span != ""
}

type SpanError struct {
	Span Span
	Err  error
}

func (e *SpanError) Error() string {
	return e.Err.Error() + " (span " + string(e.Span) + ")"
}

func (e *SpanError) Unwrap() error {
	return e.Err
}

// WrapSpan attaches the span of ctx to err.
func WrapSpan(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}
	span, ok := SpanFrom(ctx)
	if !ok {
		return err
	}
	var spanErr *SpanError
	if errors.As(err, &spanErr) && spanErr.Span == span {
		return err
	}
	return &SpanError{
		Span: span,
		Err:  err,
	}
}
