package taivm

import "strconv"

type OpCode uint32

const (
	OpLoadConst OpCode = iota + 8
	OpGetLocal
	OpSetLocal
	OpGetGlobal
	OpSetGlobal
	OpJump
	OpJumpFalse
	OpCall
	OpCallNative
	OpReturn
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpLt
	OpNe
)

var opNames = map[OpCode]string{
	OpLoadConst:  "load_const",
	OpGetLocal:   "get_local",
	OpSetLocal:   "set_local",
	OpGetGlobal:  "get_global",
	OpSetGlobal:  "set_global",
	OpJump:       "jump",
	OpJumpFalse:  "jump_false",
	OpCall:       "call",
	OpCallNative: "call_native",
	OpReturn:     "return",
	OpAdd:        "add",
	OpSub:        "sub",
	OpMul:        "mul",
	OpDiv:        "div",
	OpLt:         "lt",
	OpNe:         "ne",
}

// With packs arg into the upper 24 bits.
func (o OpCode) With(arg int) OpCode {
	return o | (OpCode(arg) << 8)
}

func (o OpCode) Op() OpCode {
	return o & 0xff
}

// Arg returns the sign-extended argument.
func (o OpCode) Arg() int {
	return int(int32(o) >> 8)
}

func (o OpCode) String() string {
	name, ok := opNames[o.Op()]
	if !ok {
		name = "unknown"
	}
	switch o.Op() {
	case OpReturn, OpAdd, OpSub, OpMul, OpDiv, OpLt, OpNe:
		return name
	}
	return name + " " + strconv.Itoa(o.Arg())
}
