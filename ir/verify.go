package ir

import (
	"errors"
	"fmt"
)

var ErrInvalid = errors.New("invalid IR")

func invalid(fn *Function, format string, args ...any) error {
	return fmt.Errorf("%w: function %s: %s", ErrInvalid, fn.Name, fmt.Sprintf(format, args...))
}

// Verify checks that every block of fn ends in exactly one terminator and
// that all operands and branch targets refer to existing values and blocks.
func Verify(fn *Function) error {
	if fn.Builtin {
		if len(fn.Blocks) > 0 {
			return invalid(fn, "builtin has a body")
		}
		return nil
	}
	if len(fn.Blocks) == 0 {
		return invalid(fn, "no blocks")
	}

	defined := make([]bool, fn.NumValues)
	for _, block := range fn.Blocks {
		if len(block.Instrs) == 0 {
			return invalid(fn, "block %s is empty", block.Name)
		}
		for i, instr := range block.Instrs {
			last := i == len(block.Instrs)-1
			if instr.Op.IsTerminator() && !last {
				return invalid(fn, "block %s: instruction after %v", block.Name, instr.Op)
			}
			if last && !instr.Op.IsTerminator() {
				return invalid(fn, "block %s: missing terminator", block.Name)
			}
			for _, target := range instr.Targets {
				if target < 0 || int(target) >= len(fn.Blocks) {
					return invalid(fn, "block %s: branch to unknown block %d", block.Name, target)
				}
			}
			for _, arg := range instr.Args {
				if arg < 0 || int(arg) >= fn.NumValues {
					return invalid(fn, "block %s: unknown value %%%d", block.Name, arg)
				}
			}
			if instr.Op == OpLoad || instr.Op == OpStore {
				if !instr.Slot.Global && (instr.Slot.Index < 0 || instr.Slot.Index >= len(fn.Locals)) {
					return invalid(fn, "block %s: unknown local %d", block.Name, instr.Slot.Index)
				}
			}
			if instr.Result != NoValue && instr.Result >= 0 && int(instr.Result) < fn.NumValues {
				if defined[instr.Result] {
					return invalid(fn, "block %s: value %%%d defined twice", block.Name, instr.Result)
				}
				defined[instr.Result] = true
			}
		}
	}
	return nil
}

// Verify checks every function and the call targets between them.
func (m *Module) Verify() error {
	for _, fn := range m.Functions {
		if err := Verify(fn); err != nil {
			return err
		}
		for _, block := range fn.Blocks {
			for _, instr := range block.Instrs {
				if instr.Op != OpCall {
					continue
				}
				if instr.Func < 0 || int(instr.Func) >= len(m.Functions) {
					return invalid(fn, "call to unknown function %d", instr.Func)
				}
				callee := m.Functions[instr.Func]
				if len(instr.Args) != callee.NumParams {
					return invalid(fn, "call to %s with %d arguments, want %d", callee.Name, len(instr.Args), callee.NumParams)
				}
			}
		}
	}
	if m.Entry != NoFunc && (m.Entry < 0 || int(m.Entry) >= len(m.Functions)) {
		return fmt.Errorf("%w: unknown entry %d", ErrInvalid, m.Entry)
	}
	for i, name := range m.Globals {
		for _, other := range m.Globals[:i] {
			if other == name {
				return fmt.Errorf("%w: global %s declared twice", ErrInvalid, name)
			}
		}
	}
	return nil
}
