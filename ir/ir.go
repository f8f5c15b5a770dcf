package ir

import "strconv"

// Value names the result of one instruction inside a function.
type Value int

const NoValue Value = -1

type FuncID int

const NoFunc FuncID = -1

type BlockID int

// Slot is a mutable storage location: a frame local or a module global.
type Slot struct {
	Global bool
	Index  int
}

// EntryName is the name of the synthesized function that runs a program block.
// It is not a legal identifier, so it never collides with user procedures.
const EntryName = "__main"

type Op int

const (
	OpConst Op = iota
	OpParam
	OpLoad
	OpStore
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpLt
	OpNe
	OpCall
	OpBr
	OpCondBr
	OpRet
)

var opNames = [...]string{
	OpConst:  "const",
	OpParam:  "param",
	OpLoad:   "load",
	OpStore:  "store",
	OpAdd:    "add",
	OpSub:    "sub",
	OpMul:    "mul",
	OpDiv:    "div",
	OpLt:     "lt",
	OpNe:     "ne",
	OpCall:   "call",
	OpBr:     "br",
	OpCondBr: "condbr",
	OpRet:    "ret",
}

func (o Op) String() string {
	if o >= 0 && int(o) < len(opNames) {
		return opNames[o]
	}
	return "Op(" + strconv.Itoa(int(o)) + ")"
}

func (o Op) IsTerminator() bool {
	return o == OpBr || o == OpCondBr || o == OpRet
}

func (o Op) IsBinary() bool {
	return o >= OpAdd && o <= OpNe
}

// Instr is a single instruction. Which fields are meaningful depends on Op.
type Instr struct {
	Op      Op
	Result  Value
	Args    []Value
	Const   int64 // OpConst value, OpParam index
	Slot    Slot
	Func    FuncID
	Targets []BlockID
}

type Block struct {
	Name   string
	Instrs []Instr
}

func (b *Block) Terminated() bool {
	return len(b.Instrs) > 0 && b.Instrs[len(b.Instrs)-1].Op.IsTerminator()
}

type Function struct {
	Name      string
	NumParams int
	Blocks    []*Block
	Locals    []string
	NumValues int
	// Builtin functions have no body and are provided by the runtime.
	Builtin bool
}

func (f *Function) NumInstrs() int {
	n := 0
	for _, block := range f.Blocks {
		n += len(block.Instrs)
	}
	return n
}

type Module struct {
	Name      string
	Functions []*Function
	Globals   []string
	Entry     FuncID
}

func (m *Module) Lookup(name string) (FuncID, *Function) {
	for i, fn := range m.Functions {
		if fn.Name == name {
			return FuncID(i), fn
		}
	}
	return NoFunc, nil
}
