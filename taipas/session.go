package taipas

import (
	"context"
	"sync"

	"github.com/reusee/taipas/ast"
	"github.com/reusee/taipas/diags"
	"github.com/reusee/taipas/ir"
	"github.com/reusee/taipas/lower"
)

// Session keeps procedures defined at top level. Every program is lowered
// into a fresh module together with them.
type Session struct {
	mu         sync.Mutex
	procedures []*ast.Function
}

func NewSession() *Session {
	return new(Session)
}

func (s *Session) Procedures() []*ast.Function {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*ast.Function(nil), s.procedures...)
}

// prepare returns a lowerer over a builder holding the builtins and every
// procedure of the session.
func (s *Session) prepare(ctx context.Context, name string, reporter diags.Reporter) (*ir.ModuleBuilder, *lower.Lowerer, error) {
	b := newModuleBuilder(name)
	l := lower.New(b, reporter)
	for _, fn := range s.Procedures() {
		if _, err := l.Function(ctx, fn); err != nil {
			return nil, nil, err
		}
	}
	return b, l, nil
}

// Define lowers fn against the session's procedures and keeps it on
// success. The returned module holds fn and everything it may call.
func (s *Session) Define(ctx context.Context, fn *ast.Function, reporter diags.Reporter) (*ir.Module, error) {
	b, l, err := s.prepare(ctx, fn.Proto.Name, reporter)
	if err != nil {
		return nil, err
	}
	if _, err := l.Function(ctx, fn); err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.procedures = append(s.procedures, fn)
	s.mu.Unlock()
	return b.Module(), nil
}

// Program lowers program into a fresh module.
func (s *Session) Program(ctx context.Context, program *ast.Program, reporter diags.Reporter) (*ir.Module, error) {
	b, l, err := s.prepare(ctx, program.Name, reporter)
	if err != nil {
		return nil, err
	}
	if _, err := l.Program(ctx, program); err != nil {
		return nil, err
	}
	return b.Module(), nil
}
