package taivm

import (
	"fmt"
	"io"
)

type NativeFunc struct {
	Name      string
	NumParams int
	Func      func(vm *VM, args []int64) (int64, error)
}

func (n NativeFunc) IsMissing() bool {
	return n.Func == nil
}

func (n NativeFunc) Call(vm *VM, args []int64) (int64, error) {
	if n.Func == nil {
		return 0, fmt.Errorf("native function %s is missing", n.Name)
	}
	return n.Func(vm, args)
}

// Writeln prints its single argument and a newline.
func Writeln(w io.Writer) NativeFunc {
	return NativeFunc{
		Name:      "writeln",
		NumParams: 1,
		Func: func(_ *VM, args []int64) (int64, error) {
			if _, err := fmt.Fprintln(w, args[0]); err != nil {
				return 0, err
			}
			return 0, nil
		},
	}
}

func DefaultNatives(w io.Writer) map[string]NativeFunc {
	writeln := Writeln(w)
	return map[string]NativeFunc{
		writeln.Name: writeln,
	}
}
