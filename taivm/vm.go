package taivm

import "errors"

var (
	ErrStepLimit      = errors.New("step limit exceeded")
	ErrCallDepth      = errors.New("call depth exceeded")
	ErrDivisionByZero = errors.New("division by zero")
)

type Options struct {
	// MaxSteps stops the run with ErrStepLimit. Zero means unlimited.
	MaxSteps int
	// YieldEvery yields an Interrupt after that many steps. Zero disables it.
	YieldEvery int
	// MaxCallDepth stops the run with ErrCallDepth. Zero means DefaultMaxCallDepth.
	MaxCallDepth int
}

const DefaultMaxCallDepth = 1 << 16

// Frame saves the caller state of an active call.
type Frame struct {
	Fun      *Function
	ReturnIP int
	BP       int
}

type VM struct {
	Program    *Program
	Options    Options
	CurrentFun *Function
	IP         int
	Stack      []int64
	SP         int
	BP         int
	CallStack  []Frame
	// Result is the value returned by the entry function.
	Result int64
	Done   bool

	globals []int64
	steps   int
}

func NewVM(program *Program) *VM {
	entry := program.Functions[program.Entry]
	vm := &VM{
		Program:    program,
		CurrentFun: entry,
		Stack:      make([]int64, max(1024, entry.NumLocals*2)),
		CallStack:  make([]Frame, 0, 64),
		globals:    make([]int64, len(program.Globals)),
	}
	vm.SP = entry.NumLocals
	return vm
}

func (v *VM) Steps() int {
	return v.steps
}

func (v *VM) Global(name string) (int64, bool) {
	for i, n := range v.Program.Globals {
		if n == name {
			return v.globals[i], true
		}
	}
	return 0, false
}

// Globals returns the current values of program-level variables.
func (v *VM) Globals() map[string]int64 {
	ret := make(map[string]int64, len(v.globals))
	for i, name := range v.Program.Globals {
		ret[name] = v.globals[i]
	}
	return ret
}

func (v *VM) ensureStack(n int) {
	if v.SP+n <= len(v.Stack) {
		return
	}
	newCap := len(v.Stack) * 2
	for newCap < v.SP+n {
		newCap *= 2
	}
	newStack := make([]int64, newCap)
	copy(newStack, v.Stack[:v.SP])
	v.Stack = newStack
}

func (v *VM) push(val int64) {
	if v.SP >= len(v.Stack) {
		v.ensureStack(1)
	}
	v.Stack[v.SP] = val
	v.SP++
}

func (v *VM) pop() int64 {
	v.SP--
	return v.Stack[v.SP]
}
