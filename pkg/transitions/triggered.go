package transitions

// Triggered fires once per Trigger call.
//
// Trigger sets a latch that stays set across polls until the transition is taken,
// at which point PassThrough clears it.
type Triggered struct {
	latched bool
}

// NewTriggered returns an unarmed Triggered transition.
func NewTriggered() *Triggered {
	return &Triggered{}
}

// Trigger arms the transition.
func (t *Triggered) Trigger() {
	t.latched = true
}

// Reset disarms the transition without taking it.
func (t *Triggered) Reset() {
	t.latched = false
}

// Armed reports whether Trigger was called since the last traversal.
func (t *Triggered) Armed() bool {
	return t.latched
}

func (t *Triggered) ShouldTransition() bool { return t.latched }
func (t *Triggered) PassThrough()           { t.latched = false }
func (t *Triggered) Destroy()               { t.latched = false }
