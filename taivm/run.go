package taivm

import "fmt"

// Run executes until the entry function returns or an error is yielded.
// Errors end the run; interrupts resume it when yield returns true.
func (v *VM) Run(yield func(*Interrupt, error) bool) {
	maxDepth := v.Options.MaxCallDepth
	if maxDepth <= 0 {
		maxDepth = DefaultMaxCallDepth
	}

	for !v.Done {
		if v.IP < 0 || v.IP >= len(v.CurrentFun.Code) {
			yield(nil, fmt.Errorf("function %s: instruction pointer out of range: %d", v.CurrentFun.Name, v.IP))
			return
		}

		v.steps++
		if v.Options.MaxSteps > 0 && v.steps > v.Options.MaxSteps {
			yield(nil, ErrStepLimit)
			return
		}
		if v.Options.YieldEvery > 0 && v.steps%v.Options.YieldEvery == 0 {
			if !yield(&Interrupt{
				Yield: true,
				Steps: v.steps,
			}, nil) {
				return
			}
		}

		inst := v.CurrentFun.Code[v.IP]
		v.IP++

		switch inst.Op() {

		case OpLoadConst:
			v.push(v.CurrentFun.Constants[inst.Arg()])

		case OpGetLocal:
			v.push(v.Stack[v.BP+inst.Arg()])

		case OpSetLocal:
			v.Stack[v.BP+inst.Arg()] = v.pop()

		case OpGetGlobal:
			v.push(v.globals[inst.Arg()])

		case OpSetGlobal:
			v.globals[inst.Arg()] = v.pop()

		case OpJump:
			v.IP += inst.Arg()

		case OpJumpFalse:
			if v.pop() == 0 {
				v.IP += inst.Arg()
			}

		case OpAdd, OpSub, OpMul, OpDiv, OpLt, OpNe:
			b := v.pop()
			a := v.pop()
			var res int64
			switch inst.Op() {
			case OpAdd:
				res = a + b
			case OpSub:
				res = a - b
			case OpMul:
				res = a * b
			case OpDiv:
				if b == 0 {
					yield(nil, fmt.Errorf("function %s: %w", v.CurrentFun.Name, ErrDivisionByZero))
					return
				}
				res = a / b
			case OpLt:
				if a < b {
					res = 1
				}
			case OpNe:
				if a != b {
					res = 1
				}
			}
			v.push(res)

		case OpCall:
			fn := v.Program.Functions[inst.Arg()]
			if len(v.CallStack) >= maxDepth {
				yield(nil, fmt.Errorf("calling %s: %w", fn.Name, ErrCallDepth))
				return
			}
			v.CallStack = append(v.CallStack, Frame{
				Fun:      v.CurrentFun,
				ReturnIP: v.IP,
				BP:       v.BP,
			})
			// arguments on the stack become the first locals
			bp := v.SP - fn.NumParams
			v.ensureStack(fn.NumLocals - fn.NumParams)
			clear(v.Stack[v.SP : bp+fn.NumLocals])
			v.SP = bp + fn.NumLocals
			v.BP = bp
			v.CurrentFun = fn
			v.IP = 0

		case OpCallNative:
			native := v.Program.Natives[inst.Arg()]
			args := make([]int64, native.NumParams)
			copy(args, v.Stack[v.SP-native.NumParams:v.SP])
			v.SP -= native.NumParams
			ret, err := native.Call(v, args)
			if err != nil {
				yield(nil, fmt.Errorf("native function %s: %w", native.Name, err))
				return
			}
			v.push(ret)

		case OpReturn:
			ret := v.pop()
			n := len(v.CallStack)
			if n == 0 {
				v.Result = ret
				v.Done = true
				return
			}
			frame := v.CallStack[n-1]
			v.CallStack = v.CallStack[:n-1]
			// drop the callee frame, arguments included
			v.SP = v.BP
			v.BP = frame.BP
			v.CurrentFun = frame.Fun
			v.IP = frame.ReturnIP
			v.push(ret)

		default:
			yield(nil, fmt.Errorf("unknown opcode: %v", inst))
			return
		}
	}
}
