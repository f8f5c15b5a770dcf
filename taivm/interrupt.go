package taivm

// Interrupt is yielded with a nil error when the VM pauses voluntarily.
type Interrupt struct {
	Yield bool
	// Steps executed so far
	Steps int
}
