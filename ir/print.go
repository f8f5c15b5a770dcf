package ir

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

func (m *Module) String() string {
	var b strings.Builder
	Fprint(&b, m)
	return b.String()
}

// Fprint writes a readable listing of m.
func Fprint(w io.Writer, m *Module) error {
	p := &printer{
		w: w,
		m: m,
	}
	p.module()
	return p.err
}

type printer struct {
	w   io.Writer
	m   *Module
	fn  *Function
	err error
}

func (p *printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

func (p *printer) module() {
	p.printf("module %s\n", p.m.Name)
	for _, name := range p.m.Globals {
		p.printf("global @%s\n", name)
	}
	for i, fn := range p.m.Functions {
		p.printf("\n")
		if fn.Builtin {
			p.printf("builtin %s(%d)\n", fn.Name, fn.NumParams)
			continue
		}
		entry := ""
		if FuncID(i) == p.m.Entry {
			entry = " entry"
		}
		p.printf("func %s(%d)%s {\n", fn.Name, fn.NumParams, entry)
		p.function(fn)
		p.printf("}\n")
	}
}

func (p *printer) function(fn *Function) {
	p.fn = fn
	if len(fn.Locals) > 0 {
		locals := make([]string, len(fn.Locals))
		for i := range fn.Locals {
			locals[i] = p.slot(Slot{Index: i})
		}
		p.printf("  local %s\n", strings.Join(locals, " "))
	}
	for i, block := range fn.Blocks {
		p.printf("%s:\n", blockLabel(fn, BlockID(i)))
		for _, instr := range block.Instrs {
			p.printf("  %s\n", p.instr(instr))
		}
	}
}

func blockLabel(fn *Function, id BlockID) string {
	if id < 0 || int(id) >= len(fn.Blocks) {
		return "?" + strconv.Itoa(int(id))
	}
	return fn.Blocks[id].Name + "." + strconv.Itoa(int(id))
}

func (p *printer) slot(s Slot) string {
	if s.Global {
		if s.Index >= 0 && s.Index < len(p.m.Globals) {
			return "@" + p.m.Globals[s.Index]
		}
		return "@" + strconv.Itoa(s.Index)
	}
	if s.Index >= 0 && s.Index < len(p.fn.Locals) {
		return "$" + p.fn.Locals[s.Index] + "." + strconv.Itoa(s.Index)
	}
	return "$" + strconv.Itoa(s.Index)
}

func (p *printer) funcName(id FuncID) string {
	if id >= 0 && int(id) < len(p.m.Functions) {
		return p.m.Functions[id].Name
	}
	return "?" + strconv.Itoa(int(id))
}

func values(vs []Value) string {
	strs := make([]string, len(vs))
	for i, v := range vs {
		strs[i] = "%" + strconv.Itoa(int(v))
	}
	return strings.Join(strs, ", ")
}

func (p *printer) instr(instr Instr) string {
	var rhs string
	switch instr.Op {
	case OpConst, OpParam:
		rhs = fmt.Sprintf("%v %d", instr.Op, instr.Const)
	case OpLoad:
		rhs = fmt.Sprintf("load %s", p.slot(instr.Slot))
	case OpStore:
		return fmt.Sprintf("store %s, %s", p.slot(instr.Slot), values(instr.Args))
	case OpCall:
		rhs = fmt.Sprintf("call %s(%s)", p.funcName(instr.Func), values(instr.Args))
	case OpBr:
		return "br " + blockLabel(p.fn, instr.Targets[0])
	case OpCondBr:
		return fmt.Sprintf("condbr %s, %s, %s",
			values(instr.Args),
			blockLabel(p.fn, instr.Targets[0]),
			blockLabel(p.fn, instr.Targets[1]),
		)
	case OpRet:
		return "ret " + values(instr.Args)
	default:
		rhs = fmt.Sprintf("%v %s", instr.Op, values(instr.Args))
	}
	return fmt.Sprintf("%%%d = %s", instr.Result, rhs)
}
