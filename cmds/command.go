package cmds

import (
	"fmt"
	"reflect"
	"strings"
)

type Command struct {
	Description string
	Aliases     []string
	Subs        map[string]*Command

	fn     reflect.Value
	params []reflect.Type
}

var errorType = reflect.TypeFor[error]()

// Func wraps fn as a command. Each parameter of fn takes one argument;
// pointer parameters are optional. fn may return an error.
func Func(fn any) *Command {
	value := reflect.ValueOf(fn)
	if value.Kind() != reflect.Func {
		panic(fmt.Errorf("command must be a function, got %T", fn))
	}
	t := value.Type()
	if t.NumOut() > 1 || t.NumOut() == 1 && t.Out(0) != errorType {
		panic(fmt.Errorf("command function may only return an error, got %v", t))
	}
	command := &Command{
		fn: value,
	}
	for i := range t.NumIn() {
		command.params = append(command.params, t.In(i))
	}
	return command
}

func Sub(subs map[string]*Command) *Command {
	return &Command{
		Subs: subs,
	}
}

func (c *Command) Desc(desc string) *Command {
	c.Description = desc
	return c
}

func (c *Command) Alias(names ...string) *Command {
	c.Aliases = append(c.Aliases, names...)
	return c
}

// Params describes the arguments of c, like "<int> [string]".
func (c *Command) Params() string {
	var parts []string
	for _, t := range c.params {
		if t.Kind() == reflect.Pointer {
			parts = append(parts, "["+t.Elem().Kind().String()+"]")
		} else {
			parts = append(parts, "<"+t.Kind().String()+">")
		}
	}
	return strings.Join(parts, " ")
}

// call consumes the arguments of c from args and returns the rest.
func (c *Command) call(name string, args []string) ([]string, error) {
	if !c.fn.IsValid() {
		return args, nil
	}
	in := make([]reflect.Value, 0, len(c.params))
	for _, t := range c.params {
		if len(args) == 0 {
			if t.Kind() != reflect.Pointer {
				return nil, fmt.Errorf("%s: expecting %s argument, got nothing", name, t)
			}
			in = append(in, reflect.New(t.Elem()))
			continue
		}
		value, err := parseArg(t, args[0])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		in = append(in, value)
		args = args[1:]
	}
	out := c.fn.Call(in)
	if len(out) > 0 && !out[0].IsNil() {
		return nil, out[0].Interface().(error)
	}
	return args, nil
}
