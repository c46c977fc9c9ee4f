package percent

// Control is a named percent bar that can be packed into a box.
type Control struct {
	*Bar
	name string
}

// NewControl returns a control with the given logical range.
func NewControl(name string, rng int) *Control {
	return &Control{Bar: New(rng), name: name}
}

// Name identifies the control.
func (c *Control) Name() string { return c.name }

// Fraction returns the stored position as 0..1.
func (c *Control) Fraction() float64 {
	return float64(c.Fixed()) / Scale
}
