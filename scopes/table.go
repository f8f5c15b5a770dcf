package scopes

import (
	"maps"
	"slices"
)

// Table maps names to storage handles. Shadow frames temporarily replace a
// binding and are undone in LIFO order by Restore.
type Table[S any] struct {
	bindings map[string]S
	frames   []frame[S]
}

type frame[S any] struct {
	name     string
	previous S
	existed  bool
}

func New[S any]() *Table[S] {
	return &Table[S]{
		bindings: make(map[string]S),
	}
}

func (t *Table[S]) Bind(name string, s S) {
	if t.bindings == nil {
		t.bindings = make(map[string]S)
	}
	t.bindings[name] = s
}

func (t *Table[S]) Lookup(name string) (S, bool) {
	s, ok := t.bindings[name]
	return s, ok
}

// Reset drops all bindings and pending shadow frames.
func (t *Table[S]) Reset() {
	clear(t.bindings)
	t.frames = t.frames[:0]
}

func (t *Table[S]) Shadow(name string, s S) {
	previous, existed := t.bindings[name]
	t.frames = append(t.frames, frame[S]{
		name:     name,
		previous: previous,
		existed:  existed,
	})
	t.Bind(name, s)
}

// Restore undoes the newest Shadow. It is a no-op without pending frames.
func (t *Table[S]) Restore() {
	if len(t.frames) == 0 {
		return
	}
	f := t.frames[len(t.frames)-1]
	t.frames = t.frames[:len(t.frames)-1]
	if f.existed {
		t.bindings[f.name] = f.previous
	} else {
		delete(t.bindings, f.name)
	}
}

func (t *Table[S]) Depth() int {
	return len(t.frames)
}

func (t *Table[S]) Names() []string {
	return slices.Sorted(maps.Keys(t.bindings))
}
