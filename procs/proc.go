package procs

// Proc is a step of work. Run returns the step that continues it, or nil
// when it is done.
type Proc[C any] interface {
	Run(ctx C) (Proc[C], error)
}
