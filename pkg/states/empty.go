package states

// Empty is a state with no behaviour.
type Empty struct {
	_ byte // distinct instances must have distinct addresses
}

// NewEmpty returns a new Empty state.
func NewEmpty() *Empty {
	return &Empty{}
}

func (*Empty) Enter() error         { return nil }
func (*Empty) Update(float64) error { return nil }
func (*Empty) Exit() error          { return nil }
func (*Empty) Destroy() error       { return nil }
