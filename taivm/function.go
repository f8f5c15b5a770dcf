package taivm

import (
	"strconv"
	"strings"
)

// Function is compiled code. Locals hold parameters first, then one
// cell per IR value, then the function's variables.
type Function struct {
	Name      string
	NumParams int
	NumLocals int
	Code      []OpCode
	Constants []int64
}

func (f *Function) Disassemble() string {
	var b strings.Builder
	b.WriteString(f.Name)
	b.WriteString(":\n")
	for ip, inst := range f.Code {
		b.WriteString("  ")
		b.WriteString(strconv.Itoa(ip))
		b.WriteString("\t")
		b.WriteString(inst.String())
		b.WriteString("\n")
	}
	return b.String()
}

type Program struct {
	Name      string
	Functions []*Function
	Natives   []NativeFunc
	Globals   []string
	Entry     int
}
