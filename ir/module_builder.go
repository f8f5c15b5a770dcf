package ir

import "fmt"

// ModuleBuilder builds a Module one function at a time.
type ModuleBuilder struct {
	name      string
	functions []*funcState
	names     map[string]FuncID
	globals   []string

	current *funcState
	block   BlockID
}

type funcState struct {
	fn        *Function
	defined   bool
	discarded bool
}

var _ Builder = new(ModuleBuilder)

func NewModuleBuilder(name string) *ModuleBuilder {
	return &ModuleBuilder{
		name:  name,
		names: make(map[string]FuncID),
	}
}

func (b *ModuleBuilder) DeclareFunction(name string, numParams int) FuncID {
	id := FuncID(len(b.functions))
	b.functions = append(b.functions, &funcState{
		fn: &Function{
			Name:      name,
			NumParams: numParams,
		},
	})
	b.names[name] = id
	return id
}

// DeclareBuiltin registers a function implemented by the runtime.
func (b *ModuleBuilder) DeclareBuiltin(name string, numParams int) FuncID {
	id := b.DeclareFunction(name, numParams)
	state := b.functions[id]
	state.fn.Builtin = true
	state.defined = true
	return id
}

func (b *ModuleBuilder) LookupFunction(name string) (FuncID, int, bool) {
	id, ok := b.names[name]
	if !ok {
		return NoFunc, 0, false
	}
	return id, b.functions[id].fn.NumParams, true
}

// IsDefined reports whether fn has a finalized body or is a builtin.
func (b *ModuleBuilder) IsDefined(fn FuncID) bool {
	return b.state(fn).defined
}

func (b *ModuleBuilder) state(fn FuncID) *funcState {
	if fn < 0 || int(fn) >= len(b.functions) {
		panic(fmt.Errorf("invalid function id %d", fn))
	}
	return b.functions[fn]
}

func (b *ModuleBuilder) BeginFunctionBody(fn FuncID) {
	state := b.state(fn)
	if state.defined || state.discarded {
		panic(fmt.Errorf("function %s cannot take a body", state.fn.Name))
	}
	state.fn.Blocks = nil
	state.fn.Locals = nil
	state.fn.NumValues = 0
	b.current = state
	b.block = b.NewBlock("entry")
}

func (b *ModuleBuilder) fn() *Function {
	if b.current == nil {
		panic("no function body in progress")
	}
	return b.current.fn
}

func (b *ModuleBuilder) emit(instr Instr) {
	fn := b.fn()
	block := fn.Blocks[b.block]
	block.Instrs = append(block.Instrs, instr)
}

func (b *ModuleBuilder) emitValue(instr Instr) Value {
	fn := b.fn()
	instr.Result = Value(fn.NumValues)
	fn.NumValues++
	b.emit(instr)
	return instr.Result
}

func (b *ModuleBuilder) Param(i int) Value {
	if i < 0 || i >= b.fn().NumParams {
		panic(fmt.Errorf("parameter index out of range: %d", i))
	}
	return b.emitValue(Instr{
		Op:    OpParam,
		Const: int64(i),
	})
}

func (b *ModuleBuilder) NewLocal(name string) Slot {
	fn := b.fn()
	fn.Locals = append(fn.Locals, name)
	return Slot{
		Index: len(fn.Locals) - 1,
	}
}

func (b *ModuleBuilder) NewGlobal(name string) Slot {
	b.globals = append(b.globals, name)
	return Slot{
		Global: true,
		Index:  len(b.globals) - 1,
	}
}

func (b *ModuleBuilder) EmitConstant(v int64) Value {
	return b.emitValue(Instr{
		Op:    OpConst,
		Const: v,
	})
}

func (b *ModuleBuilder) EmitBinaryOp(op Op, lhs, rhs Value) Value {
	if !op.IsBinary() {
		panic(fmt.Errorf("not a binary operator: %v", op))
	}
	return b.emitValue(Instr{
		Op:   op,
		Args: []Value{lhs, rhs},
	})
}

func (b *ModuleBuilder) EmitCall(fn FuncID, args []Value) Value {
	b.state(fn)
	return b.emitValue(Instr{
		Op:   OpCall,
		Func: fn,
		Args: append([]Value(nil), args...),
	})
}

func (b *ModuleBuilder) EmitLoad(slot Slot) Value {
	return b.emitValue(Instr{
		Op:   OpLoad,
		Slot: slot,
	})
}

func (b *ModuleBuilder) EmitStore(slot Slot, v Value) {
	b.emit(Instr{
		Op:     OpStore,
		Result: NoValue,
		Slot:   slot,
		Args:   []Value{v},
	})
}

func (b *ModuleBuilder) NewBlock(name string) BlockID {
	fn := b.fn()
	fn.Blocks = append(fn.Blocks, &Block{
		Name: name,
	})
	return BlockID(len(fn.Blocks) - 1)
}

func (b *ModuleBuilder) SetInsertPoint(block BlockID) {
	if block < 0 || int(block) >= len(b.fn().Blocks) {
		panic(fmt.Errorf("invalid block id %d", block))
	}
	b.block = block
}

func (b *ModuleBuilder) EmitBranch(target BlockID) {
	b.emit(Instr{
		Op:      OpBr,
		Result:  NoValue,
		Targets: []BlockID{target},
	})
}

func (b *ModuleBuilder) EmitCondBranch(cond Value, then, els BlockID) {
	b.emit(Instr{
		Op:      OpCondBr,
		Result:  NoValue,
		Args:    []Value{cond},
		Targets: []BlockID{then, els},
	})
}

func (b *ModuleBuilder) EmitReturn(v Value) {
	b.emit(Instr{
		Op:     OpRet,
		Result: NoValue,
		Args:   []Value{v},
	})
}

func (b *ModuleBuilder) FinalizeFunction(fn FuncID) error {
	state := b.state(fn)
	if b.current == state {
		b.current = nil
	}
	if err := Verify(state.fn); err != nil {
		return err
	}
	state.defined = true
	return nil
}

// DiscardFunction drops a partially built function and forgets its name.
func (b *ModuleBuilder) DiscardFunction(fn FuncID) {
	state := b.state(fn)
	if b.current == state {
		b.current = nil
	}
	state.discarded = true
	state.fn.Blocks = nil
	if id, ok := b.names[state.fn.Name]; ok && id == fn {
		delete(b.names, state.fn.Name)
	}
}

// Module returns the defined functions. Discarded and body-less declarations
// are dropped and call targets renumbered. Entry is the function named
// EntryName, or NoFunc.
func (b *ModuleBuilder) Module() *Module {
	m := &Module{
		Name:    b.name,
		Globals: append([]string(nil), b.globals...),
		Entry:   NoFunc,
	}

	remap := make(map[FuncID]FuncID)
	for i, state := range b.functions {
		if !state.defined || state.discarded {
			continue
		}
		remap[FuncID(i)] = FuncID(len(m.Functions))
		m.Functions = append(m.Functions, cloneFunction(state.fn))
	}

	for _, fn := range m.Functions {
		for _, block := range fn.Blocks {
			for i, instr := range block.Instrs {
				if instr.Op != OpCall {
					continue
				}
				if id, ok := remap[instr.Func]; ok {
					block.Instrs[i].Func = id
				} else {
					block.Instrs[i].Func = NoFunc
				}
			}
		}
	}

	if id, ok := b.names[EntryName]; ok {
		if newID, ok := remap[id]; ok {
			m.Entry = newID
		}
	}

	return m
}

func cloneFunction(fn *Function) *Function {
	ret := *fn
	ret.Locals = append([]string(nil), fn.Locals...)
	ret.Blocks = make([]*Block, len(fn.Blocks))
	for i, block := range fn.Blocks {
		ret.Blocks[i] = &Block{
			Name:   block.Name,
			Instrs: append([]Instr(nil), block.Instrs...),
		}
	}
	return &ret
}
