package taipas

import (
	"strings"
	"testing"

	"github.com/reusee/taipas/ast"
	"github.com/reusee/taipas/parser"
	"github.com/reusee/taipas/scanner"
)

func parseProcedure(t *testing.T, src string) *ast.Function {
	t.Helper()
	p := parser.New(scanner.New(strings.NewReader(src)), nil)
	fn, err := p.ParseProcedure(t.Context())
	if err != nil {
		t.Fatal(err)
	}
	return fn
}
