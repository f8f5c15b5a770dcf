package cmds

// Var defines name to set the returned value, and !name to reset it.
func Var[T any](name string) *T {
	return DefineVar[T](GlobalExecutor, name)
}

func DefineVar[T any](e *Executor, name string) *T {
	value := new(T)
	e.Define(name, Func(func(v T) {
		*value = v
	}))
	e.Define("!"+name, Func(func() {
		var zero T
		*value = zero
	}))
	return value
}

// Switch defines name to turn the returned value on, and !name to turn it off.
func Switch(name string) *bool {
	return DefineSwitch(GlobalExecutor, name)
}

func DefineSwitch(e *Executor, name string) *bool {
	value := new(bool)
	e.Define(name, Func(func() {
		*value = true
	}))
	e.Define("!"+name, Func(func() {
		*value = false
	}))
	return value
}

// Collect defines name to append to the returned list, and !name to clear it.
func Collect[T any](name string) *[]T {
	return DefineCollect[T](GlobalExecutor, name)
}

func DefineCollect[T any](e *Executor, name string) *[]T {
	values := new([]T)
	e.Define(name, Func(func(v T) {
		*values = append(*values, v)
	}))
	e.Define("!"+name, Func(func() {
		*values = nil
	}))
	return values
}
