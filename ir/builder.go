package ir

// Builder is the code generation contract used by the lowering pass.
// Handles returned by one Builder are only meaningful to that Builder.
type Builder interface {
	DeclareFunction(name string, numParams int) FuncID
	LookupFunction(name string) (id FuncID, numParams int, ok bool)
	IsDefined(fn FuncID) bool
	// BeginFunctionBody creates the entry block and makes it the insertion point.
	BeginFunctionBody(fn FuncID)
	Param(i int) Value
	NewLocal(name string) Slot
	NewGlobal(name string) Slot

	EmitConstant(v int64) Value
	EmitBinaryOp(op Op, lhs, rhs Value) Value
	EmitCall(fn FuncID, args []Value) Value
	EmitLoad(slot Slot) Value
	EmitStore(slot Slot, v Value)

	NewBlock(name string) BlockID
	SetInsertPoint(block BlockID)
	EmitBranch(target BlockID)
	EmitCondBranch(cond Value, then, els BlockID)
	EmitReturn(v Value)

	FinalizeFunction(fn FuncID) error
	DiscardFunction(fn FuncID)
}
