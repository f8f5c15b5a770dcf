package taivm

import (
	"errors"
	"fmt"

	"github.com/reusee/taipas/ir"
)

var (
	ErrNoEntry       = errors.New("module has no entry function")
	ErrMissingNative = errors.New("missing native function")
)

const maxArg = 1<<23 - 1

type callTarget struct {
	native bool
	index  int
}

// Compile translates a verified IR module into VM code.
func Compile(m *ir.Module, natives map[string]NativeFunc) (*Program, error) {
	if err := m.Verify(); err != nil {
		return nil, err
	}
	if m.Entry == ir.NoFunc {
		return nil, ErrNoEntry
	}

	program := &Program{
		Name:    m.Name,
		Globals: append([]string(nil), m.Globals...),
		Entry:   -1,
	}

	targets := make([]callTarget, len(m.Functions))
	for id, fn := range m.Functions {
		if fn.Builtin {
			native, ok := natives[fn.Name]
			if !ok || native.IsMissing() {
				return nil, fmt.Errorf("%w: %s", ErrMissingNative, fn.Name)
			}
			if native.NumParams != fn.NumParams {
				return nil, fmt.Errorf("native function %s takes %d arguments, declared with %d",
					fn.Name, native.NumParams, fn.NumParams)
			}
			targets[id] = callTarget{
				native: true,
				index:  len(program.Natives),
			}
			program.Natives = append(program.Natives, native)
			continue
		}
		targets[id] = callTarget{
			index: len(program.Functions),
		}
		program.Functions = append(program.Functions, nil)
	}

	for id, fn := range m.Functions {
		if fn.Builtin {
			continue
		}
		c := newCompiler(fn, targets)
		compiled, err := c.compile()
		if err != nil {
			return nil, err
		}
		program.Functions[targets[id].index] = compiled
	}
	program.Entry = targets[m.Entry].index

	return program, nil
}

type compiler struct {
	src     *ir.Function
	targets []callTarget

	code       []OpCode
	constants  []int64
	constMap   map[int64]int
	blockStart []int
	jumps      []pendingJump
}

type pendingJump struct {
	ip     int
	target ir.BlockID
}

func newCompiler(src *ir.Function, targets []callTarget) *compiler {
	return &compiler{
		src:        src,
		targets:    targets,
		constMap:   make(map[int64]int),
		blockStart: make([]int, len(src.Blocks)),
	}
}

func (c *compiler) numLocals() int {
	return c.src.NumParams + c.src.NumValues + len(c.src.Locals)
}

func (c *compiler) value(v ir.Value) int {
	return c.src.NumParams + int(v)
}

func (c *compiler) slot(s ir.Slot) int {
	return c.src.NumParams + c.src.NumValues + s.Index
}

func (c *compiler) addConst(val int64) int {
	if idx, ok := c.constMap[val]; ok {
		return idx
	}
	idx := len(c.constants)
	c.constants = append(c.constants, val)
	c.constMap[val] = idx
	return idx
}

func (c *compiler) emit(op OpCode) {
	c.code = append(c.code, op)
}

func (c *compiler) currentIP() int {
	return len(c.code)
}

func (c *compiler) patchJump(ip int, target int) {
	offset := target - ip - 1
	op := c.code[ip] & 0xff
	c.code[ip] = op.With(offset)
}

func (c *compiler) jump(op OpCode, target ir.BlockID) {
	c.jumps = append(c.jumps, pendingJump{
		ip:     c.currentIP(),
		target: target,
	})
	c.emit(op)
}

func (c *compiler) compile() (*Function, error) {
	if c.numLocals() > maxArg {
		return nil, fmt.Errorf("function %s: too many locals", c.src.Name)
	}

	for i, block := range c.src.Blocks {
		c.blockStart[i] = c.currentIP()
		next := ir.BlockID(i + 1)
		for _, instr := range block.Instrs {
			if err := c.instr(instr, next); err != nil {
				return nil, fmt.Errorf("function %s: block %s: %w", c.src.Name, block.Name, err)
			}
		}
	}

	for _, jump := range c.jumps {
		c.patchJump(jump.ip, c.blockStart[jump.target])
	}

	return &Function{
		Name:      c.src.Name,
		NumParams: c.src.NumParams,
		NumLocals: c.numLocals(),
		Code:      c.code,
		Constants: c.constants,
	}, nil
}

var binaryOps = map[ir.Op]OpCode{
	ir.OpAdd: OpAdd,
	ir.OpSub: OpSub,
	ir.OpMul: OpMul,
	ir.OpDiv: OpDiv,
	ir.OpLt:  OpLt,
	ir.OpNe:  OpNe,
}

// instr compiles one instruction. next is the block laid out after the
// current one; branches to it fall through.
func (c *compiler) instr(instr ir.Instr, next ir.BlockID) error {
	switch instr.Op {

	case ir.OpConst:
		c.emit(OpLoadConst.With(c.addConst(instr.Const)))
		c.emit(OpSetLocal.With(c.value(instr.Result)))

	case ir.OpParam:
		c.emit(OpGetLocal.With(int(instr.Const)))
		c.emit(OpSetLocal.With(c.value(instr.Result)))

	case ir.OpLoad:
		if instr.Slot.Global {
			c.emit(OpGetGlobal.With(instr.Slot.Index))
		} else {
			c.emit(OpGetLocal.With(c.slot(instr.Slot)))
		}
		c.emit(OpSetLocal.With(c.value(instr.Result)))

	case ir.OpStore:
		c.emit(OpGetLocal.With(c.value(instr.Args[0])))
		if instr.Slot.Global {
			c.emit(OpSetGlobal.With(instr.Slot.Index))
		} else {
			c.emit(OpSetLocal.With(c.slot(instr.Slot)))
		}

	case ir.OpAdd, ir.OpSub, ir.OpMul, ir.OpDiv, ir.OpLt, ir.OpNe:
		c.emit(OpGetLocal.With(c.value(instr.Args[0])))
		c.emit(OpGetLocal.With(c.value(instr.Args[1])))
		c.emit(binaryOps[instr.Op])
		c.emit(OpSetLocal.With(c.value(instr.Result)))

	case ir.OpCall:
		for _, arg := range instr.Args {
			c.emit(OpGetLocal.With(c.value(arg)))
		}
		target := c.targets[instr.Func]
		if target.native {
			c.emit(OpCallNative.With(target.index))
		} else {
			c.emit(OpCall.With(target.index))
		}
		c.emit(OpSetLocal.With(c.value(instr.Result)))

	case ir.OpBr:
		if instr.Targets[0] != next {
			c.jump(OpJump, instr.Targets[0])
		}

	case ir.OpCondBr:
		c.emit(OpGetLocal.With(c.value(instr.Args[0])))
		c.jump(OpJumpFalse, instr.Targets[1])
		if instr.Targets[0] != next {
			c.jump(OpJump, instr.Targets[0])
		}

	case ir.OpRet:
		c.emit(OpGetLocal.With(c.value(instr.Args[0])))
		c.emit(OpReturn)

	default:
		return fmt.Errorf("unsupported instruction: %v", instr.Op)
	}
	return nil
}
