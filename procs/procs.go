package procs

// Procs runs its steps in order. A step returning a continuation is
// replaced by it; the receiver is never modified.
type Procs[C any] []Proc[C]

var _ Proc[any] = Procs[any]{}

func (p Procs[C]) Run(ctx C) (Proc[C], error) {
	if len(p) == 0 {
		return nil, nil
	}
	next, err := p[0].Run(ctx)
	if err != nil {
		return nil, err
	}
	rest := p[1:]
	if next != nil {
		return append(Procs[C]{next}, rest...), nil
	}
	if len(rest) == 0 {
		return nil, nil
	}
	return rest, nil
}
